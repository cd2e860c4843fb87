package stress

import (
	"context"
	"testing"
	"time"
)

func tinyConfig() *Config {
	return &Config{
		Writers:       4,
		OpsPerWriter:  500,
		Readers:       2,
		OpsPerReader:  500,
		Backends:      []string{"mutex", "rwmutex", "serial", "barrier", "spin"},
		SampleEveryMS: 10,
	}
}

func TestRunnerVerifiesEveryBackend(t *testing.T) {
	cfg := tinyConfig()
	r := NewRunner(cfg)

	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(results) != len(cfg.Backends) {
		t.Fatalf("got %d results, want %d", len(results), len(cfg.Backends))
	}

	for i, res := range results {
		if res.Backend != cfg.Backends[i] {
			t.Errorf("results[%d].Backend = %q, want %q", i, res.Backend, cfg.Backends[i])
		}
		if !res.Verified {
			t.Errorf("%s: counter not exact: got %d, want %d", res.Backend, res.Got, res.Expected)
		}
		if !res.CompoundOK {
			t.Errorf("%s: compound scenario broken", res.Backend)
		}
		want := uint64(cfg.Writers * cfg.OpsPerWriter)
		if res.Expected != want {
			t.Errorf("%s: Expected = %d, want %d", res.Backend, res.Expected, want)
		}
		if res.OpsPerSec <= 0 {
			t.Errorf("%s: OpsPerSec = %f, want positive", res.Backend, res.OpsPerSec)
		}
	}
}

func TestRunnerPublishesSnapshots(t *testing.T) {
	cfg := tinyConfig()
	cfg.Backends = []string{"mutex"}
	r := NewRunner(cfg)

	sub := r.Subscribe()

	done := make(chan error, 1)
	go func() {
		_, err := r.Run(context.Background())
		done <- err
	}()

	var sawFinal bool
	for snap := range sub {
		if snap.Backend != "mutex" {
			t.Errorf("snapshot backend = %q, want mutex", snap.Backend)
		}
		if snap.Done {
			sawFinal = true
		}
	}
	if !sawFinal {
		t.Error("never saw a final snapshot")
	}

	if err := <-done; err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestRunnerHonorsCancellation(t *testing.T) {
	cfg := &Config{
		Writers:       2,
		OpsPerWriter:  50_000_000, // far more than can finish quickly
		Readers:       0,
		OpsPerReader:  1,
		Backends:      []string{"mutex"},
		SampleEveryMS: 10,
	}
	r := NewRunner(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := r.Run(ctx)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Run() error = nil after cancellation, want context error")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestNewContainerRejectsUnknownBackend(t *testing.T) {
	if _, _, err := newContainer("bogus", 0); err == nil {
		t.Error("newContainer(bogus) error = nil, want an error")
	}
	if knownBackend("bogus") {
		t.Error("knownBackend(bogus) = true")
	}
	for _, name := range DefaultConfig().Backends {
		if !knownBackend(name) {
			t.Errorf("knownBackend(%s) = false", name)
		}
	}
}
