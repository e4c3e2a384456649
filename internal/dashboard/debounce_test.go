package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_OnlyLatestGenerationIsCurrent(t *testing.T) {
	var d Debouncer

	// Three rapid keystrokes.
	g1 := d.Bump()
	g2 := d.Bump()
	g3 := d.Bump()

	assert.False(t, d.Current(g1))
	assert.False(t, d.Current(g2))
	assert.True(t, d.Current(g3), "only the last keystroke's timer may fire")
}

func TestInflight_StartCancelsPrevious(t *testing.T) {
	var f Inflight

	ctx1, g1 := f.Start(context.Background())
	assert.NoError(t, ctx1.Err())

	ctx2, g2 := f.Start(context.Background())
	assert.ErrorIs(t, ctx1.Err(), context.Canceled, "starting a new request aborts the old one")
	assert.NoError(t, ctx2.Err())

	assert.False(t, f.Current(g1), "stale completion must be dropped")
	assert.True(t, f.Current(g2))
}

func TestInflight_Cancel(t *testing.T) {
	var f Inflight

	ctx, gen := f.Start(context.Background())
	f.Cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	// The generation is still the latest; Cancel aborts without superseding.
	assert.True(t, f.Current(gen))
}
