package calsync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medtrack/medtrack/internal/tracker"
)

func TestMockGoogle_SyncNow(t *testing.T) {
	m := NewMockGoogle(10*time.Millisecond, zap.NewNop())

	start := time.Now()
	err := m.SyncNow(context.Background())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestMockGoogle_SyncNowCancelled(t *testing.T) {
	m := NewMockGoogle(time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.SyncNow(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sync did not stop after cancellation")
	}
}

func TestMockGoogle_DefaultDelay(t *testing.T) {
	m := NewMockGoogle(0, zap.NewNop())
	assert.Equal(t, DefaultSyncDelay, m.delay)
}

type countingSyncer struct {
	calls atomic.Int64
}

func (c *countingSyncer) SyncNow(ctx context.Context) error {
	c.calls.Add(1)
	return nil
}

func setupRunner(t *testing.T, autoSync bool) (*Runner, *tracker.Tracker, *countingSyncer) {
	tr := tracker.New(nil, zap.NewNop(), tracker.Options{})
	if autoSync {
		tr.ConnectGoogleAccount(tracker.GoogleAccount{Email: "carlos@example.com"})
	}

	syncer := &countingSyncer{}
	r := NewRunner(Config{Interval: 5 * time.Millisecond}, tr, syncer, zap.NewNop())
	t.Cleanup(r.Stop)
	return r, tr, syncer
}

func TestRunner_AutoSyncs(t *testing.T) {
	r, tr, syncer := setupRunner(t, true)

	require.NoError(t, r.Start())
	assert.True(t, r.IsRunning())

	assert.Eventually(t, func() bool {
		return syncer.calls.Load() >= 1
	}, time.Second, 5*time.Millisecond)

	r.Stop()
	assert.False(t, r.IsRunning())
	assert.NotNil(t, tr.GetSettings().LastSync)
}

func TestRunner_RespectsDisabledSync(t *testing.T) {
	r, _, syncer := setupRunner(t, false)

	require.NoError(t, r.Start())
	time.Sleep(50 * time.Millisecond)
	r.Stop()

	assert.Zero(t, syncer.calls.Load())
}

func TestRunner_StartTwice(t *testing.T) {
	r, _, _ := setupRunner(t, false)

	require.NoError(t, r.Start())
	assert.Error(t, r.Start())
}

func TestRunner_StopWithoutStart(t *testing.T) {
	r, _, _ := setupRunner(t, false)
	r.Stop() // must not panic or block
}

func TestRunner_DefaultInterval(t *testing.T) {
	tr := tracker.New(nil, zap.NewNop(), tracker.Options{})
	r := NewRunner(Config{}, tr, &countingSyncer{}, zap.NewNop())

	assert.Equal(t, 15*time.Minute, r.config.Interval)
}
