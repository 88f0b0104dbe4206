package notify

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mavropro/mavro-api/internal/models"
)

func TestFeedPushAndList(t *testing.T) {
	t.Parallel()
	f := NewFeed(time.Minute, zap.NewNop())
	defer f.Close()

	id1 := f.Push("s1", "First", "one", models.ToastSeverityInfo)
	id2 := f.Push("s1", "Second", "two", models.ToastSeveritySuccess)
	if id1 == "" || id2 == "" || id1 == id2 {
		t.Fatalf("bad toast ids: %q, %q", id1, id2)
	}

	toasts := f.List("s1")
	if len(toasts) != 2 {
		t.Fatalf("List len = %d, want 2", len(toasts))
	}
	// Most recent first.
	if toasts[0].ID != id2 || toasts[1].ID != id1 {
		t.Errorf("List order = [%s, %s], want [%s, %s]", toasts[0].ID, toasts[1].ID, id2, id1)
	}
}

func TestFeedSessionIsolation(t *testing.T) {
	t.Parallel()
	f := NewFeed(time.Minute, zap.NewNop())
	defer f.Close()

	f.Push("s1", "A", "a", models.ToastSeverityInfo)
	if got := f.List("s2"); len(got) != 0 {
		t.Errorf("other session sees %d toasts, want 0", len(got))
	}
}

func TestFeedManualDismiss(t *testing.T) {
	t.Parallel()
	f := NewFeed(time.Minute, zap.NewNop())
	defer f.Close()

	id := f.Push("s1", "T", "m", models.ToastSeverityWarning)
	f.Dismiss("s1", id)
	if got := f.List("s1"); len(got) != 0 {
		t.Errorf("after dismiss List len = %d, want 0", len(got))
	}

	// Unknown id and repeat dismiss are no-ops.
	f.Dismiss("s1", id)
	f.Dismiss("s1", "does-not-exist")
}

func TestFeedDismissFromOtherSessionKeepsTimer(t *testing.T) {
	t.Parallel()
	f := NewFeed(20*time.Millisecond, zap.NewNop())
	defer f.Close()

	id := f.Push("s1", "T", "m", models.ToastSeverityInfo)

	// A different session dismissing the same id must neither remove the
	// toast nor cancel its auto-dismiss timer.
	f.Dismiss("s2", id)
	if got := f.List("s1"); len(got) != 1 {
		t.Fatalf("after foreign dismiss List len = %d, want 1", len(got))
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(f.List("s1")) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("toast was not auto-dismissed after a foreign dismiss attempt")
}

func TestFeedAutoDismiss(t *testing.T) {
	t.Parallel()
	f := NewFeed(20*time.Millisecond, zap.NewNop())
	defer f.Close()

	f.Push("s1", "T", "m", models.ToastSeverityError)
	if got := f.List("s1"); len(got) != 1 {
		t.Fatalf("before timeout List len = %d, want 1", len(got))
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(f.List("s1")) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("toast was not auto-dismissed after timeout")
}

func TestFeedDropSession(t *testing.T) {
	t.Parallel()
	f := NewFeed(time.Minute, zap.NewNop())
	defer f.Close()

	f.Push("s1", "A", "a", models.ToastSeverityInfo)
	f.Push("s1", "B", "b", models.ToastSeverityInfo)
	f.DropSession("s1")
	if got := f.List("s1"); len(got) != 0 {
		t.Errorf("after DropSession List len = %d, want 0", len(got))
	}
}

func TestFeedClosedRejectsPush(t *testing.T) {
	t.Parallel()
	f := NewFeed(time.Minute, zap.NewNop())
	f.Close()
	if id := f.Push("s1", "T", "m", models.ToastSeverityInfo); id != "" {
		t.Errorf("Push on closed feed returned id %q, want empty", id)
	}
	// Close is idempotent.
	f.Close()
}
