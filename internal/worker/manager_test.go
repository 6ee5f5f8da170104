package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// loopWorker крутится до остановки
type loopWorker struct {
	*BaseWorker
	started chan struct{}
}

func newLoopWorker(name string) *loopWorker {
	return &loopWorker{
		BaseWorker: NewBaseWorker(name, "group", zap.NewNop()),
		started:    make(chan struct{}),
	}
}

func (w *loopWorker) Start(ctx context.Context) error {
	close(w.started)
	for w.Pause(ctx, time.Hour) {
	}
	return nil
}

// stuckWorker игнорирует Stop
type stuckWorker struct {
	*BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(time.Second, zap.NewNop())
	a, b := newLoopWorker("a"), newLoopWorker("b")
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	<-a.started
	<-b.started

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())

	// повторная остановка безопасна
	assert.NoError(t, a.Stop())
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := NewWorkerManager(0, zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_ShutdownTimeout(t *testing.T) {
	m := NewWorkerManager(50*time.Millisecond, zap.NewNop())
	w := &stuckWorker{BaseWorker: NewBaseWorker("stuck", "group", zap.NewNop()), release: make(chan struct{})}
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Stop())

	close(w.release)
	m.Wait()
}

func TestBaseWorker_PauseInterruptedByContext(t *testing.T) {
	w := NewBaseWorker("pause", "group", zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, w.Pause(ctx, time.Hour))
	assert.True(t, w.Pause(context.Background(), time.Millisecond))
	assert.NotEmpty(t, w.ConsumerName())
}
