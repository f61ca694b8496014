package resume

import (
	"context"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/careergraph-backend/internal/platform/gemini"
	"github.com/yungbote/careergraph-backend/internal/platform/redis"
	"github.com/yungbote/careergraph-backend/internal/data/graph"
	domain "github.com/yungbote/careergraph-backend/internal/domain/resume"
	"github.com/yungbote/careergraph-backend/internal/modules/resume/keys"
	"github.com/yungbote/careergraph-backend/internal/modules/resume/validation"
	"github.com/yungbote/careergraph-backend/internal/platform/apierr"
	"github.com/yungbote/careergraph-backend/internal/platform/doctext"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

var tracer = otel.Tracer("careergraph.modules.resume")

type UsecasesDeps struct {
	Log   *logger.Logger
	Graph *graph.ResumeGraph

	// Optional: upload parsing is disabled without a model client.
	AI gemini.Client
	// Optional: parse output is not cached without it.
	Cache redis.ParseCache
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	return Usecases{deps: deps}
}

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}

type SubmitOutput struct {
	CareerPath *string
	Report     *graph.InsertReport
}

// Submit validates a parsed résumé and merges it into the graph. A document
// that fails validation never reaches the store.
func (u Usecases) Submit(ctx context.Context, raw []byte) (SubmitOutput, error) {
	doc, err := validation.Validate(raw)
	if err != nil {
		return SubmitOutput{}, classify(err)
	}
	report, err := u.deps.Graph.InsertResume(ctx, doc)
	if err != nil {
		return SubmitOutput{}, classify(err)
	}
	return SubmitOutput{CareerPath: validation.CareerPath(raw), Report: report}, nil
}

// Plan resolves a document without writing it.
func (u Usecases) Plan(raw []byte) (keys.Plan, error) {
	doc, err := validation.Validate(raw)
	if err != nil {
		return keys.Plan{}, classify(err)
	}
	return keys.NewPlan(doc), nil
}

func (u Usecases) Profile(ctx context.Context, email string) (*domain.Profile, error) {
	p, err := u.deps.Graph.ProfileByEmail(ctx, email)
	if err != nil {
		return nil, classify(err)
	}
	if p == nil {
		return nil, apierr.New(http.StatusNotFound, "profile_not_found", errors.New("no profile for this email"))
	}
	return p, nil
}

type ParseInput struct {
	Filename string
	Mime     string
	Data     []byte
}

type ParseOutput struct {
	// Document is the parsed JSON object, not yet validated or stored.
	Document []byte
	Cached   bool
}

// Parse extracts the text of an uploaded résumé and asks the model for the
// structured document.
func (u Usecases) Parse(ctx context.Context, in ParseInput) (ParseOutput, error) {
	if u.deps.AI == nil {
		return ParseOutput{}, apierr.New(http.StatusServiceUnavailable, "parser_not_configured", gemini.ErrNotConfigured)
	}
	mime := doctext.DetectMime(in.Filename, in.Mime, in.Data)

	ctx, span := tracer.Start(ctx, "ParseResume")
	defer span.End()
	span.SetAttributes(attribute.String("mime", mime), attribute.Int("bytes", len(in.Data)))

	log := u.deps.Log.With("filename", in.Filename, "mime", mime)

	if u.deps.Cache != nil {
		hit, ok, err := u.deps.Cache.Get(ctx, in.Data)
		if err != nil {
			log.Warn("parse cache read failed (continuing)", "error", err)
		} else if ok {
			span.SetAttributes(attribute.Bool("cached", true))
			return ParseOutput{Document: []byte(hit), Cached: true}, nil
		}
	}

	text, err := doctext.Extract(mime, in.Data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract failed")
		return ParseOutput{}, apierr.New(http.StatusBadRequest, "unreadable_resume", err)
	}

	out, err := u.deps.AI.GenerateJSONText(ctx, parseSystemPrompt, parseUserPrompt(text))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model call failed")
		log.Error("resume parse failed", "error", err)
		return ParseOutput{}, apierr.New(http.StatusBadGateway, "parse_failed", err)
	}
	obj, err := validation.Object([]byte(gemini.CleanJSON(out)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model output not an object")
		log.Warn("model returned non-object output", "chars", len(out))
		return ParseOutput{}, apierr.New(http.StatusBadGateway, "parse_failed", err)
	}

	if u.deps.Cache != nil {
		if err := u.deps.Cache.Put(ctx, in.Data, string(obj)); err != nil {
			log.Warn("parse cache write failed (continuing)", "error", err)
		}
	}
	log.Info("resume parsed", "chars", len(text), "model", u.deps.AI.Model())
	return ParseOutput{Document: obj}, nil
}

// classify maps domain errors onto API errors.
func classify(err error) error {
	var missing *domain.MissingRequiredFieldError
	var persist *domain.PersistenceError
	switch {
	case errors.As(err, &missing):
		return apierr.New(http.StatusBadRequest, "missing_required_field", err)
	case errors.Is(err, domain.ErrMalformedDocument):
		return apierr.New(http.StatusBadRequest, "malformed_resume", err)
	case errors.As(err, &persist):
		return apierr.New(http.StatusInternalServerError, "persistence_failed", err)
	default:
		return apierr.New(http.StatusInternalServerError, "internal_error", err)
	}
}
