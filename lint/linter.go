// Package lint generates and validates directory trees against an api.Schema.
//
// Both walks are sequential and recursive: sibling subtrees are processed one
// after another and every level records into the same result value, so the
// engine needs no locks. All I/O goes through the api.Backend handed to New.
package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/HenryVilani/directory-lint/api"
	"github.com/HenryVilani/directory-lint/internal/ctxlog"
)

const tracerName = "github.com/HenryVilani/directory-lint/lint"

var (
	// ErrRegexNotSupported is returned when a generation schema uses a /regex/ key.
	ErrRegexNotSupported = errors.New("regex not supported in generation schema")

	ErrInvalidStructure = api.ErrInvalidStructure
	ErrInvalidContent   = api.ErrInvalidContent
)

// PatternError reports a schema key the engine cannot use.
type PatternError struct {
	Path    string // directory the key belongs to
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Linter runs schema walks against one backend.
type Linter struct {
	backend api.Backend
	tracer  trace.Tracer
	logger  *slog.Logger
}

// Option configures a Linter.
type Option func(*Linter)

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(l *Linter) { l.tracer = t }
}

// WithLogger pins a logger. Without it the logger comes from the call context.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) { l.logger = logger }
}

// New returns a Linter operating on backend.
func New(backend api.Backend, opts ...Option) *Linter {
	l := &Linter{
		backend: backend,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Backend returns the storage the linter walks.
func (l *Linter) Backend() api.Backend {
	return l.backend
}

func (l *Linter) log(ctx context.Context) *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return ctxlog.FromContext(ctx)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// patternPath places a schema key under dir without cleaning it, so regex
// keys keep their slashes.
func patternPath(dir, pattern string) string {
	return strings.TrimSuffix(dir, "/") + "/" + pattern
}
