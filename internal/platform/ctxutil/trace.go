package ctxutil

import "context"

type requestMetaKey struct{}

// RequestMeta identifies one inbound request or ingest submission.
type RequestMeta struct {
	TraceID      string
	RequestID    string
	SubmissionID string
}

func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

func RequestMetaFrom(ctx context.Context) (RequestMeta, bool) {
	if ctx == nil {
		return RequestMeta{}, false
	}
	m, ok := ctx.Value(requestMetaKey{}).(RequestMeta)
	return m, ok
}

// WithSubmissionID keeps any trace and request ids already on ctx.
func WithSubmissionID(ctx context.Context, id string) context.Context {
	m, _ := RequestMetaFrom(ctx)
	m.SubmissionID = id
	return WithRequestMeta(ctx, m)
}

// LogFields returns the non-empty ids on ctx as logger key/value pairs.
func LogFields(ctx context.Context) []any {
	m, ok := RequestMetaFrom(ctx)
	if !ok {
		return nil
	}
	var kv []any
	if m.RequestID != "" {
		kv = append(kv, "request_id", m.RequestID)
	}
	if m.TraceID != "" {
		kv = append(kv, "trace_id", m.TraceID)
	}
	if m.SubmissionID != "" {
		kv = append(kv, "submission_id", m.SubmissionID)
	}
	return kv
}
