package runctx

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureGeneratesULID(t *testing.T) {
	ctx, run := Ensure(context.Background(), "", "q1")
	require.NotEmpty(t, run.ID)

	_, err := ulid.Parse(run.ID)
	require.NoError(t, err)
	assert.Equal(t, Run{ID: run.ID, Label: "q1"}, From(ctx))
}

func TestEnsurePrefersExplicitID(t *testing.T) {
	ctx := With(context.Background(), Run{ID: "run-1"})

	_, run := Ensure(ctx, " run-2 ", "")
	assert.Equal(t, "run-2", run.ID)

	_, run = Ensure(ctx, "", "q2")
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "q2", run.Label)
}

func TestWithIgnoresEmptyID(t *testing.T) {
	ctx := With(context.Background(), Run{Label: "orphan"})
	assert.Equal(t, Run{}, From(ctx))
}
