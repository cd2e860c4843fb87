package dispatch

// task is a single unit of work submitted to a Queue.
//
// The submitting goroutine may wait on done; the worker records a
// captured panic in recovered before closing done, so the waiter can
// re-raise it on its own stack.
type task struct {
	fn        func()
	barrier   bool
	stop      bool
	done      chan struct{}
	recovered any
}

// run executes the task body, capturing a panic for the waiter.
func (t *task) run() {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			t.recovered = r
		}
	}()
	t.fn()
}

// wait blocks until the task ran, then re-raises its panic if any.
func (t *task) wait() {
	<-t.done
	if t.recovered != nil {
		panic(t.recovered)
	}
}
