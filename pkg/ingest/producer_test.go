package ingest

import (
	"context"
	"testing"
	"time"
)

func TestProducerForwardsStdout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := make(chan string, 16)
	errs := make(chan error, 1)
	go runProducer(ctx, "echo hello world", lines, errs, discardLogger())

	select {
	case line := <-lines:
		if line != "hello world" {
			t.Errorf("line = %q, want %q", line, "hello world")
		}
	case err := <-errs:
		t.Fatalf("unexpected producer error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no line forwarded")
	}
}

func TestProducerReportsSpawnFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := make(chan string, 1)
	errs := make(chan error, 1)
	go runProducer(ctx, "tailview-no-such-binary-anywhere --flag", lines, errs, discardLogger())

	select {
	case err := <-errs:
		if err == nil {
			t.Fatal("nil error reported")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("spawn failure not reported")
	}
}

func TestProducerEmptyCommandExitsSilently(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := make(chan string, 1)
	errs := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		runProducer(ctx, "   ", lines, errs, discardLogger())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer did not exit on empty command")
	}
	select {
	case err := <-errs:
		t.Fatalf("unexpected error %v for empty command", err)
	default:
	}
}

func TestProducerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// unbuffered channel: the producer will be blocked mid-send or
	// mid-read when cancel arrives
	lines := make(chan string)
	errs := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		runProducer(ctx, "yes", lines, errs, discardLogger())
		close(done)
	}()

	select {
	case <-lines:
	case <-time.After(3 * time.Second):
		t.Fatal("yes produced nothing")
	}

	cancel()
	select {
	case <-done:
	case <-lines:
		// one more buffered send may race the cancel; drain and re-check
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Fatal("producer kept running after cancel")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("producer kept running after cancel")
	}
}
