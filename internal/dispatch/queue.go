package dispatch

import (
	"sync"
	"sync/atomic"
)

// Queue runs submitted tasks with bounded concurrency and barrier
// support. Admission order is the order tasks arrive; how much overlap
// execution gets depends on the number of worker slots.
//
// Used by: the Serial and Barrier containers.
// Thread-safe: Yes (tasks may be submitted from any goroutine).
type Queue struct {
	tasks chan *task
	slots chan struct{} // bounds how many ordinary tasks run at once
	wg    sync.WaitGroup

	closed atomic.Bool
	done   chan struct{} // closed when the scheduler exits
	once   sync.Once
}

// NewSerial creates a queue that runs one task at a time in submission
// order.
func NewSerial() *Queue {
	return NewConcurrent(1)
}

// NewConcurrent creates a queue that runs up to workers ordinary tasks
// at once. Barrier tasks still run alone.
func NewConcurrent(workers int) *Queue {
	if workers < 1 {
		workers = 1
	}

	q := &Queue{
		tasks: make(chan *task),
		slots: make(chan struct{}, workers),
		done:  make(chan struct{}),
	}
	go q.schedule()
	return q
}

// Sync submits fn as an ordinary task and waits until it ran.
func (q *Queue) Sync(fn func()) {
	q.submit(fn, false).wait()
}

// Barrier submits fn as a barrier task and waits until it ran. The
// task runs alone: everything in flight finishes first, and nothing
// admitted later starts before fn returns.
func (q *Queue) Barrier(fn func()) {
	q.submit(fn, true).wait()
}

// BarrierAsync submits fn as a barrier task without waiting. Tasks
// submitted afterwards still run after fn (admission is FIFO). A panic
// in fn is dropped, since no caller is left to hand it to.
func (q *Queue) BarrierAsync(fn func()) {
	q.submit(fn, true)
}

// Close waits for every submitted task to finish, then releases the
// scheduler. Close is idempotent. Submitting after Close panics.
func (q *Queue) Close() {
	q.once.Do(func() {
		q.closed.Store(true)
		q.tasks <- &task{stop: true}
		<-q.done
	})
}

func (q *Queue) submit(fn func(), barrier bool) *task {
	if q.closed.Load() {
		panic("dispatch: submit on closed queue")
	}

	t := &task{fn: fn, barrier: barrier, done: make(chan struct{})}
	q.tasks <- t
	return t
}

// schedule is the queue's only admission point. Running it on a single
// goroutine is what makes admission strictly FIFO.
func (q *Queue) schedule() {
	defer close(q.done)

	for t := range q.tasks {
		switch {
		case t.stop:
			q.wg.Wait()
			return

		case t.barrier:
			// Drain everything in flight, then run alone. Later
			// tasks sit in the channel until this returns.
			q.wg.Wait()
			t.run()

		default:
			// Blocks while all slots are busy, which also keeps
			// admission from racing ahead of execution capacity.
			q.slots <- struct{}{}
			q.wg.Add(1)
			go q.runSlot(t)
		}
	}
}

func (q *Queue) runSlot(t *task) {
	defer q.wg.Done()
	defer func() { <-q.slots }()
	t.run()
}
