package port

import (
	"reflect"
	"sync"
)

// Handle is the shared, lock protected storage of a port.
// Bound ports hold the same *Handle and thereby observe the same cell.
// The cell pointer and its type tag never change after creation,
// only the cell's contents do, and only while mu is held.
type Handle struct {
	mu   sync.RWMutex
	cell AnyValue
	typ  reflect.Type
}

func newHandle[T any](cell *VersionedCell[T]) *Handle {
	return &Handle{
		cell: cell,
		typ:  cell.Type(),
	}
}

// Type returns the type tag of the stored value.
func (h *Handle) Type() reflect.Type {
	return h.typ
}

// SequenceNumber returns the version of the stored cell.
func (h *Handle) SequenceNumber() uint32 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cell.Version()
}

// IsSome reports whether the stored cell holds a value.
func (h *Handle) IsSome() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cell.IsSome()
}
