package stress

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/billie-coop/boxcar"
	"golang.org/x/sync/errgroup"
)

// Snapshot is a point-in-time view of one backend's progress.
type Snapshot struct {
	Backend string
	Writes  uint64
	Reads   uint64
	Elapsed time.Duration
	Done    bool
}

// Result summarizes one backend after its scenarios finished.
type Result struct {
	Backend   string
	Writes    uint64
	Reads     uint64
	Elapsed   time.Duration
	OpsPerSec float64

	// Verified reports whether the counter came out exact: every
	// increment applied once, none lost.
	Verified bool
	Expected uint64
	Got      uint64

	// CompoundOK reports whether concurrent slice appends and pops
	// accounted for every element exactly once.
	CompoundOK bool
}

// Runner drives the configured scenarios backend by backend and
// publishes live progress through a watched container.
type Runner struct {
	cfg      *Config
	progress *boxcar.Watched[Snapshot]
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg *Config) *Runner {
	return &Runner{
		cfg:      cfg,
		progress: boxcar.NewWatched(boxcar.NewRWMutex(Snapshot{})),
	}
}

// Subscribe returns a channel of live progress snapshots. The channel
// closes when the run finishes.
func (r *Runner) Subscribe() <-chan Snapshot {
	return r.progress.Subscribe()
}

// Run executes every configured backend scenario in order.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	defer r.progress.Close()

	results := make([]Result, 0, len(r.cfg.Backends))
	for _, name := range r.cfg.Backends {
		res, err := r.runBackend(ctx, name)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// runBackend runs the counter scenario and the compound slice scenario
// on a single backend.
func (r *Runner) runBackend(ctx context.Context, name string) (Result, error) {
	counter, cleanup, err := newContainer(name, uint64(0))
	if err != nil {
		return Result{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	var reads, writes atomic.Uint64
	start := time.Now()

	// Sampler publishes live snapshots until the workers are done.
	samplerDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(r.cfg.SampleInterval())
		defer ticker.Stop()
		for {
			select {
			case <-samplerDone:
				return
			case <-ticker.C:
				r.progress.Set(Snapshot{
					Backend: name,
					Writes:  writes.Load(),
					Reads:   reads.Load(),
					Elapsed: time.Since(start),
				})
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Writers; i++ {
		g.Go(func() error {
			for n := 0; n < r.cfg.OpsPerWriter; n++ {
				if n%1024 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				counter.Update(func(v *uint64) { *v++ })
				writes.Add(1)
			}
			return nil
		})
	}
	for i := 0; i < r.cfg.Readers; i++ {
		g.Go(func() error {
			for n := 0; n < r.cfg.OpsPerReader; n++ {
				if n%1024 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				counter.Get()
				reads.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	close(samplerDone)
	if err != nil {
		return Result{}, err
	}

	elapsed := time.Since(start)
	got := counter.Get()
	expected := uint64(r.cfg.Writers) * uint64(r.cfg.OpsPerWriter)

	compoundOK, err := r.runCompound(ctx, name)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Backend:    name,
		Writes:     writes.Load(),
		Reads:      reads.Load(),
		Elapsed:    elapsed,
		OpsPerSec:  float64(writes.Load()+reads.Load()) / elapsed.Seconds(),
		Verified:   got == expected,
		Expected:   expected,
		Got:        got,
		CompoundOK: compoundOK,
	}

	r.progress.Set(Snapshot{
		Backend: name,
		Writes:  writes.Load(),
		Reads:   reads.Load(),
		Elapsed: elapsed,
		Done:    true,
	})
	return res, nil
}

// runCompound hammers a slice seated on the backend with concurrent
// appends and pops, then checks that every element is accounted for
// exactly once.
func (r *Runner) runCompound(ctx context.Context, name string) (bool, error) {
	backing, cleanup, err := newContainer[[]uint64](name, nil)
	if err != nil {
		return false, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	list := boxcar.NewSliceUsing(backing)

	ops := r.cfg.OpsPerWriter / 10
	if ops < 100 {
		ops = 100
	}

	var popped atomic.Uint64
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Writers; i++ {
		g.Go(func() error {
			for n := 0; n < ops; n++ {
				if n%1024 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				list.Append(uint64(n))
			}
			return nil
		})
		g.Go(func() error {
			for n := 0; n < ops; n++ {
				if n%1024 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				if _, ok := list.Pop(); ok {
					popped.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	appended := uint64(r.cfg.Writers) * uint64(ops)
	remaining := uint64(list.Len())
	return remaining+popped.Load() == appended, nil
}

// newContainer builds the container under test. cleanup is non-nil
// only for the queue backends, which own goroutines.
func newContainer[T any](name string, v T) (boxcar.Container[T], func(), error) {
	switch name {
	case "mutex":
		return boxcar.NewMutex(v), nil, nil
	case "rwmutex":
		return boxcar.NewRWMutex(v), nil, nil
	case "serial":
		c := boxcar.NewSerial(v)
		return c, c.Close, nil
	case "barrier":
		c := boxcar.NewBarrier(v)
		return c, c.Close, nil
	case "spin":
		return boxcar.NewSpin(v), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend: %s", name)
	}
}

func knownBackend(name string) bool {
	switch name {
	case "mutex", "rwmutex", "serial", "barrier", "spin":
		return true
	}
	return false
}
