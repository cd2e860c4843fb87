package boxcar

// Container is the contract shared by every backend in this package.
// One container guards one value of type T and all access goes through
// these methods.
//
// Get returns a snapshot of the value. For reference types (slices,
// maps, pointers) the snapshot shares backing storage with the guarded
// value, so treat it as read-only and do element mutation through
// Update.
//
// Read runs fn with a snapshot while the container's read side is held.
// Backends with shared read access (RWMutex, Barrier) may run several
// Read bodies at once, so fn must not write through the snapshot.
//
// Set replaces the value.
//
// Update applies fn to the value under a single exclusive acquisition.
// That single acquisition is what makes read-modify-write safe: nothing
// else can run between the read and the write. UpdateE is the same,
// except the error returned by fn is handed back to the caller
// unchanged after the container is released.
//
// A panic in fn releases the container and propagates to the caller on
// every backend, so a failed body never wedges the container. Calling
// back into the same container from inside fn deadlocks.
type Container[T any] interface {
	Get() T
	Read(fn func(v T))
	Set(v T)
	Update(fn func(v *T))
	UpdateE(fn func(v *T) error) error
}

// Ensure every backend implements the contract.
var (
	_ Container[int] = (*Mutex[int])(nil)
	_ Container[int] = (*RWMutex[int])(nil)
	_ Container[int] = (*Serial[int])(nil)
	_ Container[int] = (*Barrier[int])(nil)
	_ Container[int] = (*Spin[int])(nil)
	_ Container[int] = (*Guarded[int])(nil)
	_ Container[int] = (*Watched[int])(nil)
)
