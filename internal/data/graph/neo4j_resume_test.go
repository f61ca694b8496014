package graph

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/yungbote/careergraph-backend/internal/domain/resume"
	"github.com/yungbote/careergraph-backend/internal/modules/resume/keys"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
	"github.com/yungbote/careergraph-backend/internal/platform/neo4jdb"
)

type recordedRun struct {
	cypher string
	params map[string]any
}

type runRecorder struct {
	runs   []recordedRun
	failAt int
}

func (r *runRecorder) run(ctx context.Context, cypher string, params map[string]any) error {
	r.runs = append(r.runs, recordedRun{cypher: cypher, params: params})
	if r.failAt > 0 && len(r.runs) == r.failAt {
		return errBoom
	}
	return nil
}

func TestCypherTxSendsNullForAbsentAttributes(t *testing.T) {
	rec := &runRecorder{}
	tx := &cypherTx{run: rec.run}

	if err := tx.MergeUser(context.Background(), resume.UserNode{Email: "ada@example.com", FirstName: sp("Ada")}); err != nil {
		t.Fatalf("MergeUser: %v", err)
	}
	p := rec.runs[0].params
	if p["email"] != "ada@example.com" || p["first_name"] != "Ada" {
		t.Fatalf("params: got=%v", p)
	}
	for _, k := range []string{"middle_name", "last_name", "contact_no"} {
		v, ok := p[k]
		if !ok {
			t.Fatalf("param %q missing", k)
		}
		if v != nil {
			t.Fatalf("param %q: want nil got=%#v", k, v)
		}
	}
}

func TestCypherTxEducationKeyUsesEmptyString(t *testing.T) {
	rec := &runRecorder{}
	tx := &cypherTx{run: rec.run}
	node, ok := keys.Education(resume.EducationEntry{University: sp("MIT"), Minor: []string{}})
	if !ok {
		t.Fatalf("keys.Education: not ok")
	}
	if err := tx.MergeEducation(context.Background(), "ada@example.com", node); err != nil {
		t.Fatalf("MergeEducation: %v", err)
	}
	p := rec.runs[0].params
	if p["university"] != "MIT" || p["degree"] != "" || p["major"] != "" || p["graduation_date"] != "" {
		t.Fatalf("key params: got=%v", p)
	}
	if p["cgpa"] != nil || p["scale"] != nil {
		t.Fatalf("cgpa/scale: want nil got=%v/%v", p["cgpa"], p["scale"])
	}
	if got, ok := p["minor"].([]string); !ok || got == nil || len(got) != 0 {
		t.Fatalf("minor: want empty list got=%#v", p["minor"])
	}
}

func TestApplyPlanOrderAndAbort(t *testing.T) {
	plan := keys.NewPlan(sampleDoc())

	rec := &runRecorder{}
	if err := applyPlan(context.Background(), &cypherTx{run: rec.run}, plan); err != nil {
		t.Fatalf("applyPlan: %v", err)
	}
	want := []string{
		cypherMergeUser,
		cypherMergeEducation,
		cypherMergeExperience,
		cypherMergeSkill,
		cypherMergeSkill,
		cypherMergeCertification,
	}
	if len(rec.runs) != len(want) {
		t.Fatalf("statements: want=%d got=%d", len(want), len(rec.runs))
	}
	for i, w := range want {
		if rec.runs[i].cypher != w {
			t.Fatalf("statement %d out of order", i)
		}
	}

	rec = &runRecorder{failAt: 3}
	err := applyPlan(context.Background(), &cypherTx{run: rec.run}, plan)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got=%v", err)
	}
	if len(rec.runs) != 3 {
		t.Fatalf("statements after failure: want=3 got=%d", len(rec.runs))
	}
}

func TestProfileFromValues(t *testing.T) {
	user := map[string]any{"email": "ada@example.com", "first_name": "Ada"}
	education := []any{
		map[string]any{"university": "Yale", "degree": "PhD", "major": "", "graduation_date": "", "cgpa": int64(4)},
		map[string]any{"university": "MIT", "degree": "BSc", "major": "CS", "graduation_date": "2020", "cgpa": 3.9, "scale": 4.0, "minor": []any{"Math"}},
	}
	experience := []any{
		map[string]any{"company": "Zeta", "position": "", "start_date": "2021"},
		map[string]any{"company": "Acme", "position": "SRE"},
	}
	p := profileFromValues(user, education, experience, []any{"Go", "Cypher"}, nil)

	if p.User.Email != "ada@example.com" || *p.User.FirstName != "Ada" || p.User.LastName != nil {
		t.Fatalf("user: got=%+v", p.User)
	}
	if p.Education[0].University != "MIT" || p.Education[1].University != "Yale" {
		t.Fatalf("education order: got=%+v", p.Education)
	}
	if !reflect.DeepEqual(p.Education[0].Minor, []string{"Math"}) {
		t.Fatalf("minor: got=%v", p.Education[0].Minor)
	}
	if p.Education[1].CGPA == nil || *p.Education[1].CGPA != 4 {
		t.Fatalf("integer cgpa: got=%v", p.Education[1].CGPA)
	}
	if p.Education[1].Scale != nil {
		t.Fatalf("scale: want nil got=%v", *p.Education[1].Scale)
	}
	if p.Experience[0].Company != "Acme" || p.Experience[1].StartDate == nil {
		t.Fatalf("experience: got=%+v", p.Experience)
	}
	if !reflect.DeepEqual(p.Skills, []string{"Cypher", "Go"}) {
		t.Fatalf("skills: got=%v", p.Skills)
	}
	if p.Certifications == nil || len(p.Certifications) != 0 {
		t.Fatalf("certifications: want empty got=%#v", p.Certifications)
	}
}

func TestNeo4jStoreWithoutClient(t *testing.T) {
	if _, err := NewNeo4jStore(nil).NewSession(context.Background()); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got=%v", err)
	}
}

// Runs against a live database when CG_RUN_NEO4J_SMOKE=1 and NEO4J_URI is set.
func TestNeo4jSmoke(t *testing.T) {
	if os.Getenv("CG_RUN_NEO4J_SMOKE") != "1" {
		t.Skip("set CG_RUN_NEO4J_SMOKE=1 to run")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := neo4jdb.NewFromEnv(ctx, logger.NewNop())
	if err != nil {
		t.Fatalf("neo4jdb.NewFromEnv: %v", err)
	}
	defer client.Close(context.Background())

	g := NewResumeGraph(NewNeo4jStore(client), logger.NewNop())
	doc := sampleDoc()
	doc.Email = "smoke-" + time.Now().UTC().Format("20060102150405.000000000") + "@example.com"

	for i := 0; i < 2; i++ {
		if _, err := g.InsertResume(ctx, doc); err != nil {
			t.Fatalf("InsertResume #%d: %v", i+1, err)
		}
	}
	p, err := g.ProfileByEmail(ctx, doc.Email)
	if err != nil || p == nil {
		t.Fatalf("ProfileByEmail: p=%v err=%v", p, err)
	}
	if len(p.Education) != 1 || len(p.Experience) != 1 || len(p.Skills) != 2 || len(p.Certifications) != 1 {
		t.Fatalf("profile after resubmit: %+v", p)
	}
}
