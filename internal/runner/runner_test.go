package runner

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type countingPass struct {
	calls int32
	err   error
}

func (p *countingPass) RunDuePass(ctx context.Context, now time.Time) error {
	atomic.AddInt32(&p.calls, 1)
	return p.err
}

type panickingPass struct{}

func (panickingPass) RunDuePass(ctx context.Context, now time.Time) error {
	panic("boom")
}

func TestStartTicksImmediately(t *testing.T) {
	pass := &countingPass{}
	r := New(zerolog.Nop(), time.Hour, pass)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The first tick runs before the loop starts waiting on the ticker.
	r.Start(ctx)
	require.Equal(t, int32(1), atomic.LoadInt32(&pass.calls))
}

func TestStartTicksOnInterval(t *testing.T) {
	pass := &countingPass{}
	r := New(zerolog.Nop(), 5*time.Millisecond, pass)

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	r.Start(ctx)
	require.GreaterOrEqual(t, atomic.LoadInt32(&pass.calls), int32(2))
}

func TestPanicDoesNotStopOtherPasses(t *testing.T) {
	after := &countingPass{}
	r := New(zerolog.Nop(), time.Hour, panickingPass{}, after)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r.Start(ctx)
	require.Equal(t, int32(1), atomic.LoadInt32(&after.calls))
}

func TestPassErrorDoesNotStopLoop(t *testing.T) {
	failing := &countingPass{err: context.DeadlineExceeded}
	r := New(zerolog.Nop(), 5*time.Millisecond, failing)

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	r.Start(ctx)
	require.GreaterOrEqual(t, atomic.LoadInt32(&failing.calls), int32(2))
}
