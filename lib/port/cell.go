package port

import "reflect"

// Cloner can be implemented by value types that need a deep copy when handed out by Get.
// Types not implementing it are copied by plain assignment.
type Cloner[T any] interface {
	Clone() T
}

// VersionedCell holds an optional value of type T together with its SequenceNumber.
// It is the unit of storage behind every port.
//
// A VersionedCell is not synchronised itself, the Handle owning it is.
type VersionedCell[T any] struct {
	value   T
	ok      bool
	version SequenceNumber
}

// NewCell creates an empty cell with version 0.
func NewCell[T any]() *VersionedCell[T] {
	return &VersionedCell[T]{}
}

// NewCellWithValue creates a cell holding value with version 1.
func NewCellWithValue[T any](value T) *VersionedCell[T] {
	c := &VersionedCell[T]{}
	c.Set(value)
	return c
}

// Get returns a copy of the value and whether one is set.
func (c *VersionedCell[T]) Get() (T, bool) {
	if !c.ok {
		var zero T
		return zero, false
	}
	return cloneValue(c.value), true
}

// Set overwrites the value.
func (c *VersionedCell[T]) Set(value T) {
	c.value = value
	c.ok = true
	c.version.Increment()
}

// Replace overwrites the value and returns the previous one.
func (c *VersionedCell[T]) Replace(value T) (T, bool) {
	old, had := c.value, c.ok
	c.Set(value)
	return old, had
}

// Take removes the value and returns it, leaving the cell empty.
func (c *VersionedCell[T]) Take() (T, bool) {
	var zero T
	old, had := c.value, c.ok
	c.value = zero
	c.ok = false
	c.version.Increment()
	return old, had
}

// IsSome reports whether a value is set.
func (c *VersionedCell[T]) IsSome() bool {
	return c.ok
}

// IsNone reports whether the cell is empty.
func (c *VersionedCell[T]) IsNone() bool {
	return !c.ok
}

// Version returns the current sequence number.
func (c *VersionedCell[T]) Version() uint32 {
	return c.version.Value()
}

// Type returns the type identity of T.
func (c *VersionedCell[T]) Type() reflect.Type {
	return TypeOf[T]()
}

func (c *VersionedCell[T]) anyValue() {}

func cloneValue[T any](v T) T {
	if cl, ok := any(v).(Cloner[T]); ok {
		return cl.Clone()
	}
	return v
}
