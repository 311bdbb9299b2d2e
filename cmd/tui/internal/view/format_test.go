package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTimeout(t *testing.T) {
	SetTimeout(5 * time.Second)
	defer SetTimeout(30 * time.Second)

	ctx, cancel := ApiCtx()
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)

	// Zero and negative values keep the previous deadline.
	SetTimeout(0)

	ctx2, cancel2 := ApiCtx()
	defer cancel2()

	deadline2, ok := ctx2.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline2, time.Second)
}
