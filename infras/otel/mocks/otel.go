package mocks

import (
	"carepoint/infras/otel"
	"context"
	"sync"
)

// Recorder is an otel.Otel that keeps every scope it opens so tests can inspect what was traced.
type Recorder struct {
	mu     sync.Mutex
	scopes []*Scope
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	scope := newScope(name)

	r.mu.Lock()
	r.scopes = append(r.scopes, scope)
	r.mu.Unlock()

	return ctx, scope
}

// Shutdown implements otel.Otel.
func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Scopes returns the scopes opened under name, in opening order.
func (r *Recorder) Scopes(name string) []*Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []*Scope

	for _, s := range r.scopes {
		if s.Name == name {
			found = append(found, s)
		}
	}

	return found
}

func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{}
}
