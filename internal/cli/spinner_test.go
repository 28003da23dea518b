package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinner(context.Background(), "Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()

	// Stop multiple times should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Testing with context...")
	s.Start()

	// Cancel the parent context and give the goroutine time to notice
	cancel()
	time.Sleep(100 * time.Millisecond)

	// Stop after cancellation must still return promptly
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinner(ctx, "Testing with timeout...")
	s.Start()

	// Wait past the timeout, then stop
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner(context.Background(), "Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")
}

func TestSpinnerSetMessage(t *testing.T) {
	s := newSpinner(context.Background(), "Resolving packages... 0/8")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.SetMessage("Resolving packages... 8/8")
	// Shrinking the message must still clear the longer line on stop.
	s.SetMessage("done")
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}
