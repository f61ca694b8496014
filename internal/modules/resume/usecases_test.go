package resume

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/careergraph-backend/internal/platform/redis"
	"github.com/yungbote/careergraph-backend/internal/data/graph"
	"github.com/yungbote/careergraph-backend/internal/platform/apierr"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

const adaJSON = `{
  "first_name": "Ada", "middle_name": null, "last_name": "Lovelace",
  "contact_no": null, "email": "ada@example.com",
  "education": [{"university": "University of London", "degree": "BSc", "cgpa": 3.5}],
  "experience": [{"company": "Analytical Engine Co", "position": "Programmer"}],
  "skills": ["Go", "Cypher"],
  "certifications": [],
  "career_path": "Data Engineer"
}`

type fakeAI struct {
	out   string
	err   error
	calls int
	user  string
}

func (f *fakeAI) GenerateJSONText(ctx context.Context, system string, user string) (string, error) {
	f.calls++
	f.user = user
	return f.out, f.err
}

func (f *fakeAI) Model() string { return "fake" }

type brokenStore struct{}

func (brokenStore) NewSession(context.Context) (graph.Session, error) {
	return nil, errors.New("connection refused")
}

func newUsecases(store graph.Store, ai *fakeAI, cache redis.ParseCache) Usecases {
	deps := UsecasesDeps{
		Log:   logger.NewNop(),
		Graph: graph.NewResumeGraph(store, logger.NewNop()),
		Cache: cache,
	}
	if ai != nil {
		deps.AI = ai
	}
	return New(deps)
}

func wantAPIErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got=%T (%v)", err, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("api error: want=%d/%s got=%d/%s", status, code, ae.Status, ae.Code)
	}
}

func TestSubmitStoresDocument(t *testing.T) {
	store := graph.NewMemoryStore()
	uc := newUsecases(store, nil, nil)

	out, err := uc.Submit(context.Background(), []byte(adaJSON))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.CareerPath == nil || *out.CareerPath != "Data Engineer" {
		t.Fatalf("CareerPath: got=%v", out.CareerPath)
	}
	if out.Report.Skills != 2 || out.Report.Education != 1 {
		t.Fatalf("report: got=%+v", out.Report)
	}
	p, err := uc.Profile(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if *p.User.LastName != "Lovelace" {
		t.Fatalf("last_name: got=%q", *p.User.LastName)
	}
}

func TestSubmitRejectsBeforeTouchingStore(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"missing email", `{"first_name": "Ada", "skills": ["Go"]}`, "missing_required_field"},
		{"null email", `{"email": null}`, "missing_required_field"},
		{"blank email", `{"email": "  "}`, "missing_required_field"},
		{"not json", `{"email": `, "malformed_resume"},
		{"array", `[{"email": "ada@example.com"}]`, "malformed_resume"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := graph.NewMemoryStore()
			uc := newUsecases(store, nil, nil)
			_, err := uc.Submit(context.Background(), []byte(tc.body))
			wantAPIErr(t, err, http.StatusBadRequest, tc.code)
			if store.SessionsOpened() != 0 {
				t.Fatalf("sessions opened: want=0 got=%d", store.SessionsOpened())
			}
		})
	}
}

func TestSubmitPersistenceFailure(t *testing.T) {
	uc := newUsecases(brokenStore{}, nil, nil)
	_, err := uc.Submit(context.Background(), []byte(adaJSON))
	wantAPIErr(t, err, http.StatusInternalServerError, "persistence_failed")
}

func TestProfileNotFound(t *testing.T) {
	uc := newUsecases(graph.NewMemoryStore(), nil, nil)
	_, err := uc.Profile(context.Background(), "nobody@example.com")
	wantAPIErr(t, err, http.StatusNotFound, "profile_not_found")

	_, err = uc.Profile(context.Background(), " ")
	wantAPIErr(t, err, http.StatusBadRequest, "missing_required_field")
}

func TestParseWithoutModel(t *testing.T) {
	uc := newUsecases(graph.NewMemoryStore(), nil, nil)
	_, err := uc.Parse(context.Background(), ParseInput{Filename: "cv.txt", Data: []byte("Ada Lovelace")})
	wantAPIErr(t, err, http.StatusServiceUnavailable, "parser_not_configured")
}

func TestParseCleansModelOutputAndCaches(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	defer mr.Close()
	cache := redis.NewParseCacheWithClient(logger.NewNop(), goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), time.Hour)
	defer cache.Close()

	ai := &fakeAI{out: "```json\n{\"email\": \"ada@example.com\"}\n```"}
	uc := newUsecases(graph.NewMemoryStore(), ai, cache)
	in := ParseInput{Filename: "cv.txt", Mime: "text/plain", Data: []byte("Ada Lovelace\nada@example.com")}

	out, err := uc.Parse(context.Background(), in)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if string(out.Document) != `{"email": "ada@example.com"}` || out.Cached {
		t.Fatalf("Parse: got=%s cached=%v", out.Document, out.Cached)
	}
	if ai.user != "Resume text:\nAda Lovelace\nada@example.com" {
		t.Fatalf("prompt: got=%q", ai.user)
	}

	again, err := uc.Parse(context.Background(), in)
	if err != nil {
		t.Fatalf("Parse (cached): %v", err)
	}
	if !again.Cached || string(again.Document) != string(out.Document) {
		t.Fatalf("Parse (cached): got=%s cached=%v", again.Document, again.Cached)
	}
	if ai.calls != 1 {
		t.Fatalf("model calls: want=1 got=%d", ai.calls)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		ai     *fakeAI
		in     ParseInput
		status int
		code   string
	}{
		{"unsupported file", &fakeAI{}, ParseInput{Filename: "cv.png", Mime: "image/png", Data: []byte{0x89, 'P', 'N', 'G', 0x00}}, http.StatusBadRequest, "unreadable_resume"},
		{"empty file", &fakeAI{}, ParseInput{Filename: "cv.txt", Mime: "text/plain"}, http.StatusBadRequest, "unreadable_resume"},
		{"model error", &fakeAI{err: errors.New("quota")}, ParseInput{Filename: "cv.txt", Data: []byte("Ada")}, http.StatusBadGateway, "parse_failed"},
		{"model prose", &fakeAI{out: "Sorry, I cannot help."}, ParseInput{Filename: "cv.txt", Data: []byte("Ada")}, http.StatusBadGateway, "parse_failed"},
		{"model array", &fakeAI{out: "[]"}, ParseInput{Filename: "cv.txt", Data: []byte("Ada")}, http.StatusBadGateway, "parse_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newUsecases(graph.NewMemoryStore(), tc.ai, nil)
			_, err := uc.Parse(context.Background(), tc.in)
			wantAPIErr(t, err, tc.status, tc.code)
		})
	}
}

func TestPlanDoesNotWrite(t *testing.T) {
	store := graph.NewMemoryStore()
	uc := newUsecases(store, nil, nil)
	plan, err := uc.Plan([]byte(`{"email":"ada@example.com","skills":["Go",""],"education":[{"degree":"BSc"}]}`))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan.Skills) != 1 || len(plan.Education) != 0 || len(plan.Warnings) != 2 {
		t.Fatalf("plan: got=%+v", plan)
	}
	if store.SessionsOpened() != 0 {
		t.Fatalf("sessions opened: want=0 got=%d", store.SessionsOpened())
	}

	_, err = uc.Plan([]byte(`{}`))
	wantAPIErr(t, err, http.StatusBadRequest, "missing_required_field")
}
