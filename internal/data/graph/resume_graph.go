package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/careergraph-backend/internal/domain/resume"
	"github.com/yungbote/careergraph-backend/internal/modules/resume/keys"
	"github.com/yungbote/careergraph-backend/internal/platform/ctxutil"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

var resumeTracer = otel.Tracer("careergraph.graph.resume")

// InsertReport summarizes one committed submission. Counts are entities
// merged, not entities created.
type InsertReport struct {
	SubmissionID   string                             `json:"submission_id"`
	Users          int                                `json:"users"`
	Education      int                                `json:"education"`
	Experience     int                                `json:"experience"`
	Skills         int                                `json:"skills"`
	Certifications int                                `json:"certifications"`
	Warnings       []resume.UnresolvableEntityWarning `json:"warnings"`
}

// ResumeGraph is the upsert engine. Each InsertResume call is one session
// and one write transaction.
type ResumeGraph struct {
	store Store
	log   *logger.Logger
}

func NewResumeGraph(store Store, log *logger.Logger) *ResumeGraph {
	if log == nil {
		log = logger.NewNop()
	}
	return &ResumeGraph{store: store, log: log.With("component", "ResumeGraph")}
}

// InsertResume merges a validated document into the graph. Keys are resolved
// before the transaction opens, so a retried transaction replays exactly the
// same statements. Either every entity is written or none is.
func (g *ResumeGraph) InsertResume(ctx context.Context, doc *resume.Document) (*InsertReport, error) {
	if doc == nil || strings.TrimSpace(doc.Email) == "" {
		return nil, &resume.MissingRequiredFieldError{Field: "email"}
	}

	plan := keys.NewPlan(doc)
	report := &InsertReport{
		SubmissionID: uuid.NewString(),
		Warnings:     plan.Warnings,
	}
	ctx = ctxutil.WithSubmissionID(ctx, report.SubmissionID)
	log := g.log.With(append(ctxutil.LogFields(ctx), "email", plan.User.Email)...)
	for _, w := range plan.Warnings {
		log.Warn("resume entry skipped", "entity", w.Entity, "index", w.Index, "reason", w.Reason)
	}

	ctx, span := resumeTracer.Start(ctx, "InsertResume")
	defer span.End()
	span.SetAttributes(
		attribute.String("submission_id", report.SubmissionID),
		attribute.Int("education", len(plan.Education)),
		attribute.Int("experience", len(plan.Experience)),
		attribute.Int("skills", len(plan.Skills)),
		attribute.Int("certifications", len(plan.Certifications)),
		attribute.Int("warnings", len(plan.Warnings)),
	)

	err := WithSession(ctx, g.store, func(s Session) error {
		return s.ExecuteWrite(ctx, func(tx WriteTx) error {
			return applyPlan(ctx, tx, plan)
		})
	})
	if err != nil {
		pe := asPersistenceError(err, resume.OpWriteResume)
		span.RecordError(pe)
		span.SetStatus(codes.Error, "write failed")
		log.Error("resume write failed", "op", pe.Op, "retryable", pe.Retryable, "error", pe.Cause)
		return nil, pe
	}

	report.Users = 1
	report.Education = len(plan.Education)
	report.Experience = len(plan.Experience)
	report.Skills = len(plan.Skills)
	report.Certifications = len(plan.Certifications)
	log.Info("resume committed",
		"education", report.Education,
		"experience", report.Experience,
		"skills", report.Skills,
		"certifications", report.Certifications,
		"warnings", len(report.Warnings),
	)
	return report, nil
}

// The user is merged first; every other statement matches on it.
func applyPlan(ctx context.Context, tx WriteTx, plan keys.Plan) error {
	if err := tx.MergeUser(ctx, plan.User); err != nil {
		return fmt.Errorf("merge user: %w", err)
	}
	email := plan.User.Email
	for i, e := range plan.Education {
		if err := tx.MergeEducation(ctx, email, e); err != nil {
			return fmt.Errorf("merge education %d: %w", i, err)
		}
	}
	for i, x := range plan.Experience {
		if err := tx.MergeExperience(ctx, email, x); err != nil {
			return fmt.Errorf("merge experience %d: %w", i, err)
		}
	}
	for _, name := range plan.Skills {
		if err := tx.MergeSkill(ctx, email, name); err != nil {
			return fmt.Errorf("merge skill %q: %w", name, err)
		}
	}
	for _, name := range plan.Certifications {
		if err := tx.MergeCertification(ctx, email, name); err != nil {
			return fmt.Errorf("merge certification %q: %w", name, err)
		}
	}
	return nil
}

// ProfileByEmail reads back everything linked to a user. It returns nil, nil
// for an unknown email.
func (g *ResumeGraph) ProfileByEmail(ctx context.Context, email string) (*resume.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &resume.MissingRequiredFieldError{Field: "email"}
	}
	var out *resume.Profile
	err := WithSession(ctx, g.store, func(s Session) error {
		return s.ExecuteRead(ctx, func(tx ReadTx) error {
			p, err := tx.LoadProfile(ctx, email)
			if err != nil {
				return err
			}
			out = p
			return nil
		})
	})
	if err != nil {
		pe := asPersistenceError(err, resume.OpReadProfile)
		g.log.Error("profile read failed", "email", email, "retryable", pe.Retryable, "error", pe.Cause)
		return nil, pe
	}
	return out, nil
}
