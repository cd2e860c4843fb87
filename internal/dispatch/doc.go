// Package dispatch provides the task queues behind the queue-backed
// containers.
//
// # Overview
//
// A Queue admits tasks in strict FIFO order from a single scheduler
// goroutine. Ordinary tasks fan out to a bounded set of worker slots
// and may run concurrently with each other; barrier tasks wait for
// every in-flight task to finish, run alone, and hold back admission
// until they are done. A serial queue is a concurrent queue with one
// slot, which collapses to "one task at a time, in submission order".
//
// # Failure handling
//
// A panic inside a task is captured on the worker and re-raised in the
// goroutine that submitted it, so callers see failures at the call
// site exactly like a plain function call. Fire-and-forget barrier
// tasks have no caller left to hand a panic to; theirs are dropped.
//
// # Example
//
//	q := dispatch.NewConcurrent(4)
//	defer q.Close()
//
//	q.Sync(func() { /* runs alongside other ordinary tasks */ })
//	q.Barrier(func() { /* runs alone */ })
package dispatch
