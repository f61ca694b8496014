package graph

import (
	"context"
	"errors"

	"github.com/yungbote/careergraph-backend/internal/domain/resume"
)

const (
	LabelUser          = "User"
	LabelEducation     = "Education"
	LabelExperience    = "Experience"
	LabelSkill         = "Skill"
	LabelCertification = "Certification"

	RelHasEducation     = "HAS_EDUCATION"
	RelHasExperience    = "HAS_EXPERIENCE"
	RelHasSkill         = "HAS_SKILL"
	RelHasCertification = "HAS_CERTIFICATION"
)

var (
	ErrNoStore       = errors.New("graph: store not configured")
	ErrSessionClosed = errors.New("graph: session closed")
)

// WriteTx is one merge operation per entity. Every method is idempotent:
// nodes are matched by natural key, attributes are null-coalesced, and the
// owning relationship is created only if absent. Methods that link to a user
// are no-ops when the user does not exist.
type WriteTx interface {
	MergeUser(ctx context.Context, u resume.UserNode) error
	MergeEducation(ctx context.Context, email string, e resume.EducationNode) error
	MergeExperience(ctx context.Context, email string, x resume.ExperienceNode) error
	MergeSkill(ctx context.Context, email string, name string) error
	MergeCertification(ctx context.Context, email string, name string) error
}

type ReadTx interface {
	// LoadProfile returns nil, nil when no user has this email.
	LoadProfile(ctx context.Context, email string) (*resume.Profile, error)
}

// Session runs transactions. ExecuteWrite commits when fn returns nil and
// rolls everything back otherwise; fn may be invoked more than once if the
// store retries a transient failure.
type Session interface {
	ExecuteWrite(ctx context.Context, fn func(tx WriteTx) error) error
	ExecuteRead(ctx context.Context, fn func(tx ReadTx) error) error
	Close(ctx context.Context) error
}

type Store interface {
	NewSession(ctx context.Context) (Session, error)
}

// WithSession opens one session, hands it to fn and closes it on every exit
// path, panics included. A close failure is only reported when fn succeeded.
func WithSession(ctx context.Context, store Store, fn func(s Session) error) (err error) {
	if store == nil {
		return ErrNoStore
	}
	sess, err := store.NewSession(ctx)
	if err != nil {
		return &resume.PersistenceError{Op: resume.OpOpenSession, Retryable: retryable(err), Cause: err}
	}
	defer func() {
		cerr := sess.Close(context.WithoutCancel(ctx))
		if cerr != nil && err == nil {
			err = &resume.PersistenceError{Op: resume.OpCloseSession, Retryable: retryable(cerr), Cause: cerr}
		}
	}()
	return fn(sess)
}

func asPersistenceError(err error, op resume.PersistenceOp) *resume.PersistenceError {
	var pe *resume.PersistenceError
	if errors.As(err, &pe) {
		return pe
	}
	return &resume.PersistenceError{Op: op, Retryable: retryable(err), Cause: err}
}
