package port

import (
	"sync/atomic"
)

// --------------------------------------------------------------------------
// Read Guard
// --------------------------------------------------------------------------

// ReadGuard holds a read lock on a port value until Release is called.
// Many read guards may be held on the same value at once, but none while a WriteGuard is held.
//
// A ReadGuard must not be used after Release.
type ReadGuard[T any] struct {
	handle   *Handle
	cell     *VersionedCell[T]
	released atomic.Bool
}

// newReadGuard acquires a read lock on h.
// With block set, the call waits for the lock, otherwise it fails with ErrIsLocked.
func newReadGuard[T any](h *Handle, block bool) (*ReadGuard[T], error) {
	// the tag is immutable, so the downcast needs no lock
	cell, err := Downcast[T](h.cell)
	if err != nil {
		return nil, err
	}

	if block {
		h.mu.RLock()
	} else if !h.mu.TryRLock() {
		guardsLocked.Inc()
		plog.Debugf("read guard on %s: value is locked", h.typ)
		return nil, NewError(ErrCIsLocked, h.typ.String())
	}

	if !cell.ok {
		h.mu.RUnlock()
		guardsEmpty.Inc()
		return nil, NewError(ErrCNoValueSet, h.typ.String())
	}

	readGuardsAcquired.Inc()
	return &ReadGuard[T]{handle: h, cell: cell}, nil
}

// Value returns a copy of the guarded value, made with Clone if T implements Cloner.
// Values of other reference types (slices, maps, pointers) still share memory with the
// port and must not be modified through the copy.
func (g *ReadGuard[T]) Value() T {
	if g.released.Load() {
		panic("port: read guard used after release")
	}
	return cloneValue(g.cell.value)
}

// SequenceNumber returns the version of the guarded value.
func (g *ReadGuard[T]) SequenceNumber() uint32 {
	if g.released.Load() {
		panic("port: read guard used after release")
	}
	return g.cell.Version()
}

// Release gives up the read lock. Calling it more than once has no effect.
func (g *ReadGuard[T]) Release() {
	if g.released.CompareAndSwap(false, true) {
		g.handle.mu.RUnlock()
	}
}

// --------------------------------------------------------------------------
// Write Guard
// --------------------------------------------------------------------------

// WriteGuard holds the write lock on a port value until Release is called.
// No other guard can be acquired on the value while it is held.
//
// Mutable access through Mut or Set marks the guard as modified. On Release a
// modified guard increments the value's sequence number exactly once.
//
// A WriteGuard must not be used after Release and must not be shared between goroutines.
type WriteGuard[T any] struct {
	handle   *Handle
	cell     *VersionedCell[T]
	modified bool
	released atomic.Bool
}

// newWriteGuard acquires the write lock on h.
// With block set, the call waits for the lock, otherwise it fails with ErrIsLocked.
func newWriteGuard[T any](h *Handle, block bool) (*WriteGuard[T], error) {
	cell, err := Downcast[T](h.cell)
	if err != nil {
		return nil, err
	}

	if block {
		h.mu.Lock()
	} else if !h.mu.TryLock() {
		guardsLocked.Inc()
		plog.Debugf("write guard on %s: value is locked", h.typ)
		return nil, NewError(ErrCIsLocked, h.typ.String())
	}

	if !cell.ok {
		h.mu.Unlock()
		guardsEmpty.Inc()
		return nil, NewError(ErrCNoValueSet, h.typ.String())
	}

	writeGuardsAcquired.Inc()
	return &WriteGuard[T]{handle: h, cell: cell}, nil
}

// Value returns a copy of the guarded value without marking the guard as modified.
// The copy is made like ReadGuard.Value does, use Mut or Set to change the value.
func (g *WriteGuard[T]) Value() T {
	g.mustHold()
	return cloneValue(g.cell.value)
}

// Mut returns a pointer to the guarded value and marks the guard as modified.
// The pointer must not be used after Release.
func (g *WriteGuard[T]) Mut() *T {
	g.mustHold()
	g.modified = true
	return &g.cell.value
}

// Set overwrites the guarded value and marks the guard as modified.
func (g *WriteGuard[T]) Set(value T) {
	g.mustHold()
	g.modified = true
	g.cell.value = value
}

// Modified reports whether mutable access happened during the guard's lifetime.
func (g *WriteGuard[T]) Modified() bool {
	return g.modified
}

// SequenceNumber returns the version of the guarded value.
// Pending modifications are not yet counted.
func (g *WriteGuard[T]) SequenceNumber() uint32 {
	g.mustHold()
	return g.cell.Version()
}

// Release bumps the version if the value was modified and gives up the write lock.
// Calling it more than once has no effect.
func (g *WriteGuard[T]) Release() {
	if !g.released.CompareAndSwap(false, true) {
		return
	}
	if g.modified {
		g.cell.version.Increment()
		versionsBumped.Inc()
	}
	g.handle.mu.Unlock()
}

func (g *WriteGuard[T]) mustHold() {
	if g.released.Load() {
		panic("port: write guard used after release")
	}
}
