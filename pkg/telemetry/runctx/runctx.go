// Package runctx carries the identity of a migration run through a context.
package runctx

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"
)

type key struct{}

// Run identifies one evaluation run. Label is the human name used for
// artifact file names.
type Run struct {
	ID    string
	Label string
}

// With stores run on ctx. A run without an id leaves ctx untouched.
func With(ctx context.Context, run Run) context.Context {
	run.ID = strings.TrimSpace(run.ID)
	if run.ID == "" {
		return ctx
	}
	run.Label = strings.TrimSpace(run.Label)
	return context.WithValue(ctx, key{}, run)
}

// From returns the run stored on ctx, or the zero Run.
func From(ctx context.Context) Run {
	if ctx == nil {
		return Run{}
	}
	run, _ := ctx.Value(key{}).(Run)
	return run
}

// Ensure stores a run on ctx. An empty id keeps the id already on ctx, or
// falls back to a fresh ULID.
func Ensure(ctx context.Context, id, label string) (context.Context, Run) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = From(ctx).ID
	}
	if id == "" {
		id = ulid.Make().String()
	}
	run := Run{ID: id, Label: strings.TrimSpace(label)}
	return With(ctx, run), run
}
