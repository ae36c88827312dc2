package monitoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type fakeChecker struct {
	healthy atomic.Bool
	calls   atomic.Int32
}

func (f *fakeChecker) HealthCheck(context.Context) bool {
	f.calls.Add(1)
	return f.healthy.Load()
}

func TestMonitorModelHealthProbesImmediately(t *testing.T) {
	checker := &fakeChecker{}
	checker.healthy.Store(true)

	var healthy atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		MonitorModelHealth(ctx, checker, &healthy)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for !healthy.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !healthy.Load() {
		t.Error("expected model to be marked healthy")
	}
	if n := checker.calls.Load(); n != 1 {
		t.Errorf("checker called %d times before the first tick", n)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop on cancel")
	}
}
