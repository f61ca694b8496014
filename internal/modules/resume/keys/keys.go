package keys

import (
	"strings"

	"github.com/yungbote/careergraph-backend/internal/domain/resume"
)

// User maps the document header onto the User node. The validator has
// already guaranteed a non-empty email.
func User(doc *resume.Document) resume.UserNode {
	return resume.UserNode{
		Email:      doc.Email,
		FirstName:  doc.FirstName,
		MiddleName: doc.MiddleName,
		LastName:   doc.LastName,
		ContactNo:  doc.ContactNo,
	}
}

// Education resolves an entry to its node. ok is false when the entry has no
// university and must be skipped.
func Education(e resume.EducationEntry) (node resume.EducationNode, ok bool) {
	if absent(e.University) {
		return resume.EducationNode{}, false
	}
	return resume.EducationNode{
		EducationKey: resume.EducationKey{
			University:     *e.University,
			Degree:         orEmpty(e.Degree),
			Major:          orEmpty(e.Major),
			GraduationDate: orEmpty(e.GraduationDate),
		},
		CGPA:  e.CGPA,
		Scale: e.Scale,
		Minor: e.Minor,
	}, true
}

// Experience resolves an entry to its node. ok is false when the entry has no
// company.
func Experience(x resume.ExperienceEntry) (node resume.ExperienceNode, ok bool) {
	if absent(x.Company) {
		return resume.ExperienceNode{}, false
	}
	return resume.ExperienceNode{
		ExperienceKey: resume.ExperienceKey{
			Company:  *x.Company,
			Position: orEmpty(x.Position),
		},
		Description: x.Description,
		StartDate:   x.StartDate,
		EndDate:     x.EndDate,
	}, true
}

// Skill keys are the verbatim string.
func Skill(name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	return name, true
}

func Certification(name string) (string, bool) {
	return Skill(name)
}

// Plan is a fully resolved submission: every node the write transaction will
// merge, in document order, and every entry that was skipped.
type Plan struct {
	User           resume.UserNode
	Education      []resume.EducationNode
	Experience     []resume.ExperienceNode
	Skills         []string
	Certifications []string
	Warnings       []resume.UnresolvableEntityWarning
}

func NewPlan(doc *resume.Document) Plan {
	p := Plan{
		User:           User(doc),
		Education:      make([]resume.EducationNode, 0, len(doc.Education)),
		Experience:     make([]resume.ExperienceNode, 0, len(doc.Experience)),
		Skills:         make([]string, 0, len(doc.Skills)),
		Certifications: make([]string, 0, len(doc.Certifications)),
	}
	p.Warnings = append(p.Warnings, doc.Warnings...)

	for i, e := range doc.Education {
		node, ok := Education(e)
		if !ok {
			p.skip(resume.EntityEducation, i, "missing university")
			continue
		}
		p.Education = append(p.Education, node)
	}
	for i, x := range doc.Experience {
		node, ok := Experience(x)
		if !ok {
			p.skip(resume.EntityExperience, i, "missing company")
			continue
		}
		p.Experience = append(p.Experience, node)
	}
	for i, s := range doc.Skills {
		name, ok := Skill(s)
		if !ok {
			p.skip(resume.EntitySkill, i, "empty skill name")
			continue
		}
		p.Skills = append(p.Skills, name)
	}
	for i, c := range doc.Certifications {
		name, ok := Certification(c)
		if !ok {
			p.skip(resume.EntityCertification, i, "empty certification name")
			continue
		}
		p.Certifications = append(p.Certifications, name)
	}
	return p
}

func (p *Plan) skip(kind resume.EntityKind, index int, reason string) {
	p.Warnings = append(p.Warnings, resume.UnresolvableEntityWarning{Entity: kind, Index: index, Reason: reason})
}

func absent(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
