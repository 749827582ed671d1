package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// contextExtractor extracts string values from context.
// It returns (value, found) where found indicates if extraction succeeded.
type contextExtractor func(context.Context) (string, bool)

// Logger records security-relevant events. The isolation core only
// emits events; durable storage and querying belong to the platform's
// observability pipeline, which consumes the structured log stream.
type Logger struct {
	log                  *slog.Logger
	tenantIDExtractor    contextExtractor
	principalIDExtractor contextExtractor
}

// Option configures the logger.
type Option func(*Logger)

// WithTenantIDExtractor registers a function that pulls the tenant id
// from context so callers don't repeat it on every event.
func WithTenantIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.tenantIDExtractor = fn
	}
}

// WithPrincipalIDExtractor registers a function that pulls the
// principal id from context.
func WithPrincipalIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.principalIDExtractor = fn
	}
}

// NewLogger creates an audit logger that emits events through the given
// structured logger.
func NewLogger(log *slog.Logger, opts ...Option) *Logger {
	if log == nil {
		log = slog.Default()
	}
	l := &Logger{log: log}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log records a successful action.
func (l *Logger) Log(ctx context.Context, action string, opts ...EventOption) {
	event := l.eventFromContext(ctx)
	event.Action = action
	event.Result = ResultSuccess
	event.Severity = SeverityInfo
	l.emit(ctx, event, opts)
}

// LogError records a failed action.
func (l *Logger) LogError(ctx context.Context, action string, err error, opts ...EventOption) {
	event := l.eventFromContext(ctx)
	event.Action = action
	event.Result = ResultFailure
	event.Severity = SeverityInfo
	if err != nil {
		event.Error = err.Error()
	}
	l.emit(ctx, event, opts)
}

// Security records a critical security event, such as a connection
// being destroyed because its tenant state could not be cleared.
func (l *Logger) Security(ctx context.Context, action string, err error, opts ...EventOption) {
	event := l.eventFromContext(ctx)
	event.Action = action
	event.Result = ResultFailure
	event.Severity = SeverityCritical
	if err != nil {
		event.Error = err.Error()
	}
	l.emit(ctx, event, opts)
}

func (l *Logger) emit(ctx context.Context, event Event, opts []EventOption) {
	event.ID = uuid.New().String()
	event.CreatedAt = time.Now()

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		l.log.ErrorContext(ctx, "audit event dropped", slog.Any("error", err))
		return
	}

	level := slog.LevelInfo
	if event.Severity == SeverityCritical {
		level = slog.LevelError
	}

	attrs := []slog.Attr{
		slog.String("audit_id", event.ID),
		slog.String("action", event.Action),
		slog.String("result", string(event.Result)),
		slog.String("severity", string(event.Severity)),
	}
	if event.TenantID != "" {
		attrs = append(attrs, slog.String("tenant_id", event.TenantID))
	}
	if event.PrincipalID != "" {
		attrs = append(attrs, slog.String("principal_id", event.PrincipalID))
	}
	if event.Resource != "" {
		attrs = append(attrs, slog.String("resource", event.Resource))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", event.Metadata))
	}

	l.log.LogAttrs(ctx, level, "audit: "+event.Action, attrs...)
}

// eventFromContext extracts event data from context.
func (l *Logger) eventFromContext(ctx context.Context) Event {
	event := Event{}
	if l.tenantIDExtractor != nil {
		if v, ok := l.tenantIDExtractor(ctx); ok {
			event.TenantID = v
		}
	}
	if l.principalIDExtractor != nil {
		if v, ok := l.principalIDExtractor(ctx); ok {
			event.PrincipalID = v
		}
	}
	return event
}
