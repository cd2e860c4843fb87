package boxcar

import (
	"errors"
	"testing"
	"time"
)

func recvTimeout[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an update")
		panic("unreachable")
	}
}

func TestWatchedDeliversWrites(t *testing.T) {
	w := NewWatched(NewMutex(0))
	defer w.Close()

	sub := w.Subscribe()

	w.Set(1)
	if got := recvTimeout(t, sub); got != 1 {
		t.Errorf("received %d, want 1", got)
	}

	w.Update(func(v *int) { *v += 10 })
	if got := recvTimeout(t, sub); got != 11 {
		t.Errorf("received %d, want 11", got)
	}

	if err := w.UpdateE(func(v *int) error { *v++; return nil }); err != nil {
		t.Fatalf("UpdateE() error: %v", err)
	}
	if got := recvTimeout(t, sub); got != 12 {
		t.Errorf("received %d, want 12", got)
	}
}

func TestWatchedSkipsFailedUpdates(t *testing.T) {
	w := NewWatched(NewMutex(0))
	defer w.Close()

	sub := w.Subscribe()

	boom := errors.New("boom")
	if err := w.UpdateE(func(v *int) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("UpdateE() error = %v, want %v", err, boom)
	}

	select {
	case v := <-sub:
		t.Errorf("received %d after a failed update, want nothing", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatchedDropsWhenSubscriberLags(t *testing.T) {
	w := NewWatched(NewMutex(0))
	defer w.Close()

	sub := w.Subscribe()

	// Nobody drains: writes beyond the buffer must not block.
	for i := 1; i <= watchBuffer+5; i++ {
		w.Set(i)
	}

	// The buffered prefix survives, the overflow was dropped.
	for i := 1; i <= watchBuffer; i++ {
		if got := recvTimeout(t, sub); got != i {
			t.Fatalf("received %d, want %d", got, i)
		}
	}
	select {
	case v := <-sub:
		t.Errorf("received %d past the buffer, want nothing", v)
	default:
	}
}

func TestWatchedUnsubscribeClosesChannel(t *testing.T) {
	w := NewWatched(NewMutex(0))
	defer w.Close()

	a := w.Subscribe()
	b := w.Subscribe()
	w.Unsubscribe(a)

	if _, ok := <-a; ok {
		t.Error("unsubscribed channel still open")
	}

	// The other subscription keeps receiving.
	w.Set(5)
	if got := recvTimeout(t, b); got != 5 {
		t.Errorf("received %d, want 5", got)
	}
}

func TestWatchedCloseLeavesContainerUsable(t *testing.T) {
	w := NewWatched(NewMutex(0))

	a := w.Subscribe()
	b := w.Subscribe()
	w.Close()

	if _, ok := <-a; ok {
		t.Error("channel a still open after Close")
	}
	if _, ok := <-b; ok {
		t.Error("channel b still open after Close")
	}

	w.Set(9)
	if got := w.Get(); got != 9 {
		t.Errorf("Get() after Close = %d, want 9", got)
	}
}
