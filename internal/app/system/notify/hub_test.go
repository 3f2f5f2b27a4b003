package notify_test

import (
	"testing"

	"github.com/campushub/campushub/internal/app/system/notify"
	"github.com/campushub/campushub/internal/app/system/taskboard"
	"go.uber.org/zap"
)

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub := notify.NewHub(zap.NewNop())

	ch1, cancel1 := hub.Subscribe()
	ch2, cancel2 := hub.Subscribe()
	defer cancel1()
	defer cancel2()

	hub.Broadcast(taskboard.Change{TaskID: "t1", Kind: taskboard.ChangeCreated})

	for i, ch := range []<-chan taskboard.Change{ch1, ch2} {
		select {
		case got := <-ch:
			if got.TaskID != "t1" {
				t.Errorf("subscriber %d: got task %q, want t1", i, got.TaskID)
			}
		default:
			t.Errorf("subscriber %d: no event delivered", i)
		}
	}
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	hub := notify.NewHub(zap.NewNop())

	ch, cancel := hub.Subscribe()
	cancel()

	if _, open := <-ch; open {
		t.Error("expected channel closed after cancel")
	}
	if got := hub.SubscriberCount(); got != 0 {
		t.Errorf("subscriber count: got %d, want 0", got)
	}

	// Broadcasting after cancel must not panic.
	hub.Broadcast(taskboard.Change{TaskID: "t1", Kind: taskboard.ChangeUpdated})
}

func TestHub_SlowSubscriberDropped(t *testing.T) {
	hub := notify.NewHub(zap.NewNop())

	ch, cancel := hub.Subscribe()
	defer cancel()

	// Overflow the buffer without draining.
	for i := 0; i < 32; i++ {
		hub.Broadcast(taskboard.Change{TaskID: "t1", Kind: taskboard.ChangeUpdated})
	}

	if got := hub.SubscriberCount(); got != 0 {
		t.Errorf("expected slow subscriber dropped, count %d", got)
	}

	// Buffered events remain readable, then the channel closes.
	n := 0
	for range ch {
		n++
	}
	if n == 0 {
		t.Error("expected buffered events before close")
	}
}

func TestHub_CancelAfterDropIsSafe(t *testing.T) {
	hub := notify.NewHub(zap.NewNop())

	_, cancel := hub.Subscribe()
	for i := 0; i < 32; i++ {
		hub.Broadcast(taskboard.Change{TaskID: "t1", Kind: taskboard.ChangeUpdated})
	}
	// The hub already closed the channel; cancel must be a no-op.
	cancel()
}
