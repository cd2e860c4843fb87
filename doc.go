// Package boxcar provides thread-safe containers for single values.
//
// A container guards one value of any type and exposes the same five
// operations no matter how the guarding is done: Get, Read, Set, Update
// and UpdateE. Five interchangeable backends cover the usual
// synchronization trade-offs:
//
//   - Mutex: one exclusive lock for everything. The safe default.
//   - RWMutex: concurrent reads, exclusive writes.
//   - Serial: a single worker applies operations strictly in FIFO order.
//   - Barrier: a worker pool runs reads concurrently; writes run alone
//     as barriers, and Set has a fire-and-forget sibling, SetAsync.
//   - Spin: a minimal spinlock for very short critical sections.
//
// The point of the shared contract is Update: a read-modify-write that
// happens under a single acquisition, so check-then-act sequences can't
// interleave with other goroutines.
//
// Example usage:
//
//	// A guarded counter
//	counter := boxcar.NewMutex(0)
//	counter.Update(func(v *int) { *v++ })
//	fmt.Println(counter.Get())
//
//	// Compound state stays consistent under one acquisition
//	stats := boxcar.NewRWMutex(Stats{})
//	stats.Update(func(s *Stats) {
//		s.Hits++
//		s.LastSeen = time.Now()
//	})
//
// The package also ships Slice and Map collections that seat the same
// guarantee on any backend, a Guarded struct field for declaring
// protected state inline, and a Watched decorator that publishes every
// write to subscribers.
//
// All operations are safe for concurrent use by multiple goroutines
// without additional synchronization.
package boxcar
