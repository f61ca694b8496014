package keys

import (
	"testing"

	"github.com/yungbote/careergraph-backend/internal/domain/resume"
)

func strp(s string) *string { return &s }

func TestEducationNullAndEmptyShareKey(t *testing.T) {
	a, ok := Education(resume.EducationEntry{University: strp("MIT"), Degree: nil, Major: strp("CS")})
	if !ok {
		t.Fatalf("Education: expected resolvable entry")
	}
	b, ok := Education(resume.EducationEntry{University: strp("MIT"), Degree: strp(""), Major: strp("CS"), GraduationDate: strp("")})
	if !ok {
		t.Fatalf("Education: expected resolvable entry")
	}
	if a.EducationKey != b.EducationKey {
		t.Fatalf("keys differ: %+v vs %+v", a.EducationKey, b.EducationKey)
	}
}

func TestEducationMissingAnchor(t *testing.T) {
	for name, e := range map[string]resume.EducationEntry{
		"nil":        {Degree: strp("BSc")},
		"empty":      {University: strp("")},
		"whitespace": {University: strp("  ")},
	} {
		if _, ok := Education(e); ok {
			t.Fatalf("%s: expected unidentifiable", name)
		}
	}
}

func TestExperienceKeyVerbatim(t *testing.T) {
	node, ok := Experience(resume.ExperienceEntry{Company: strp("Acme "), Description: strp("built things")})
	if !ok {
		t.Fatalf("Experience: expected resolvable entry")
	}
	if node.Company != "Acme " || node.Position != "" {
		t.Fatalf("key: got=%+v", node.ExperienceKey)
	}
	if node.Description == nil || *node.Description != "built things" {
		t.Fatalf("Description: got=%v", node.Description)
	}
	if _, ok := Experience(resume.ExperienceEntry{Position: strp("Intern")}); ok {
		t.Fatalf("Experience without company should be unidentifiable")
	}
}

func TestSkillAndCertification(t *testing.T) {
	if name, ok := Skill("Go"); !ok || name != "Go" {
		t.Fatalf("Skill: got=%q ok=%v", name, ok)
	}
	if _, ok := Skill(" "); ok {
		t.Fatalf("blank skill should be unidentifiable")
	}
	if _, ok := Certification(""); ok {
		t.Fatalf("empty certification should be unidentifiable")
	}
}

func TestNewPlanCollectsWarningsWithDocumentIndexes(t *testing.T) {
	doc := &resume.Document{
		Email: "a@x.com",
		Education: []resume.EducationEntry{
			{University: strp("MIT")},
			{Degree: strp("MSc")},
		},
		Experience: []resume.ExperienceEntry{{}, {Company: strp("Acme")}},
		Skills:     []string{"Go", "", "Python"},
		Warnings:   []resume.UnresolvableEntityWarning{{Entity: resume.EntityCertification, Index: -1, Reason: "certifications is not a list"}},
	}

	p := NewPlan(doc)
	if p.User.Email != "a@x.com" {
		t.Fatalf("User.Email: got=%q", p.User.Email)
	}
	if len(p.Education) != 1 || len(p.Experience) != 1 || len(p.Skills) != 2 {
		t.Fatalf("plan sizes: education=%d experience=%d skills=%d", len(p.Education), len(p.Experience), len(p.Skills))
	}

	want := []resume.UnresolvableEntityWarning{
		{Entity: resume.EntityCertification, Index: -1, Reason: "certifications is not a list"},
		{Entity: resume.EntityEducation, Index: 1, Reason: "missing university"},
		{Entity: resume.EntityExperience, Index: 0, Reason: "missing company"},
		{Entity: resume.EntitySkill, Index: 1, Reason: "empty skill name"},
	}
	if len(p.Warnings) != len(want) {
		t.Fatalf("Warnings: want=%v got=%v", want, p.Warnings)
	}
	for i := range want {
		if p.Warnings[i] != want[i] {
			t.Fatalf("Warnings[%d]: want=%+v got=%+v", i, want[i], p.Warnings[i])
		}
	}
}
