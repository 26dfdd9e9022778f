package agent

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithBreaker_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	inner := &scriptedProvider{decideErr: errors.New("unavailable")}
	p := WithBreaker(inner, "test-provider", slog.Default())

	for i := 0; i < 5; i++ {
		_, err := p.Decide(context.Background(), nil)
		require.Error(t, err)
	}
	require.Equal(t, 5, inner.decideCalls)

	_, err := p.Decide(context.Background(), nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, inner.decideCalls)
}

func TestWithBreaker_PassesThrough(t *testing.T) {
	t.Parallel()

	inner := &scriptedProvider{decide: "d", finalize: "f"}
	p := WithBreaker(inner, "ok-provider", slog.Default())

	out, err := p.Decide(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "d", out)

	out, err = p.Finalize(context.Background(), nil, Action{Type: ActionNone}, nil)
	require.NoError(t, err)
	assert.Equal(t, "f", out)
}
