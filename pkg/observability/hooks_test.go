package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	f := NoopFetchHooks{}
	f.OnFetchStart(ctx, "skeleton", "16")
	f.OnFetchComplete(ctx, "skeleton", "16", 1024, time.Second, nil)

	tr := NoopTransformHooks{}
	tr.OnTransformStart(ctx, "downsample", 16)
	tr.OnTransformComplete(ctx, "downsample", 16, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "skeleton")
	c.OnCacheMiss(ctx, "volume")
	c.OnCacheSet(ctx, "connectors", 1024)
}

type countingTransformHooks struct {
	starts, completes int
}

func (h *countingTransformHooks) OnTransformStart(context.Context, string, int64) { h.starts++ }
func (h *countingTransformHooks) OnTransformComplete(context.Context, string, int64, time.Duration, error) {
	h.completes++
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Transform().(NoopTransformHooks); !ok {
		t.Error("Transform() should return NoopTransformHooks by default")
	}
	if _, ok := Fetch().(NoopFetchHooks); !ok {
		t.Error("Fetch() should return NoopFetchHooks by default")
	}

	h := &countingTransformHooks{}
	SetTransformHooks(h)
	Transform().OnTransformStart(context.Background(), "reroot", 16)
	Transform().OnTransformComplete(context.Background(), "reroot", 16, time.Second, nil)
	if h.starts != 1 || h.completes != 1 {
		t.Errorf("hooks saw %d starts, %d completes; want 1, 1", h.starts, h.completes)
	}

	// nil registrations keep the current hooks.
	SetTransformHooks(nil)
	if _, ok := Transform().(*countingTransformHooks); !ok {
		t.Error("SetTransformHooks(nil) replaced the registered hooks")
	}

	Reset()
	if _, ok := Transform().(NoopTransformHooks); !ok {
		t.Error("Reset() should restore noop hooks")
	}
}
