package collection

import (
	"github.com/ValentinKolb/dPort/lib/port"
)

// --------------------------------------------------------------------------
// Lookup
// --------------------------------------------------------------------------

// ContainsName reports whether c holds a port with the given name.
func ContainsName(c IPortCollection, name string) bool {
	_, ok := c.Find(name)
	return ok
}

// Contains reports whether c holds a port with the given name storing a T.
// It returns false if the name is absent and port.ErrWrongDataType if the port stores another type.
func Contains[T any](c IPortCollection, name string) (bool, error) {
	v, ok := c.Find(name)
	if !ok {
		return false, nil
	}
	if !port.Holds[T](v) {
		return false, port.NameError(port.ErrCWrongDataType, name)
	}
	return true, nil
}

// SequenceNumber returns the change sequence number of the named port.
func SequenceNumber(c IPortCollection, name string) (uint32, error) {
	v, ok := c.Find(name)
	if !ok {
		return 0, port.NameError(port.ErrCNotFound, name)
	}
	return v.SequenceNumber(), nil
}

func in(c IPortCollection, name string) (port.BindIn, error) {
	v, ok := c.Find(name)
	if !ok {
		return nil, port.NameError(port.ErrCNotFound, name)
	}
	p, err := v.In()
	return p, withName(err, name)
}

func out(c IPortCollection, name string) (port.BindOut, error) {
	v, ok := c.Find(name)
	if !ok {
		return nil, port.NameError(port.ErrCNotFound, name)
	}
	p, err := v.Out()
	return p, withName(err, name)
}

func inOut(c IPortCollection, name string) (port.BindInOut, error) {
	v, ok := c.Find(name)
	if !ok {
		return nil, port.NameError(port.ErrCNotFound, name)
	}
	p, err := v.InOut()
	return p, withName(err, name)
}

// --------------------------------------------------------------------------
// Value access
// --------------------------------------------------------------------------

// Get returns a copy of the value of the named port and whether a value is set.
func Get[T any](c IPortCollection, name string) (T, bool, error) {
	p, err := in(c, name)
	if err != nil {
		var zero T
		return zero, false, err
	}
	value, ok, err := port.Get[T](p)
	return value, ok, withName(err, name)
}

// Read returns a read guard on the named port, waiting for writers.
func Read[T any](c IPortCollection, name string) (*port.ReadGuard[T], error) {
	p, err := in(c, name)
	if err != nil {
		return nil, err
	}
	g, err := port.Read[T](p)
	return g, withName(err, name)
}

// TryRead returns a read guard on the named port without waiting.
func TryRead[T any](c IPortCollection, name string) (*port.ReadGuard[T], error) {
	p, err := in(c, name)
	if err != nil {
		return nil, err
	}
	g, err := port.TryRead[T](p)
	return g, withName(err, name)
}

// Set overwrites the value of the named port.
func Set[T any](c IPortCollection, name string, value T) error {
	p, err := out(c, name)
	if err != nil {
		return err
	}
	return withName(port.Set(p, value), name)
}

// Write returns a write guard on the named port, waiting for other guards.
func Write[T any](c IPortCollection, name string) (*port.WriteGuard[T], error) {
	p, err := out(c, name)
	if err != nil {
		return nil, err
	}
	g, err := port.Write[T](p)
	return g, withName(err, name)
}

// TryWrite returns a write guard on the named port without waiting.
func TryWrite[T any](c IPortCollection, name string) (*port.WriteGuard[T], error) {
	p, err := out(c, name)
	if err != nil {
		return nil, err
	}
	g, err := port.TryWrite[T](p)
	return g, withName(err, name)
}

// Replace sets a new value on the named port and returns the previous one.
func Replace[T any](c IPortCollection, name string, value T) (T, bool, error) {
	p, err := inOut(c, name)
	if err != nil {
		var zero T
		return zero, false, err
	}
	old, ok, err := port.Replace(p, value)
	return old, ok, withName(err, name)
}

// Take removes the value from the named port and returns it.
func Take[T any](c IPortCollection, name string) (T, bool, error) {
	p, err := inOut(c, name)
	if err != nil {
		var zero T
		return zero, false, err
	}
	value, ok, err := port.Take[T](p)
	return value, ok, withName(err, name)
}

// --------------------------------------------------------------------------
// Binding
// --------------------------------------------------------------------------

// Connect binds the named port to the storage of other.
func Connect(c IPortCollection, name string, other port.BindCommons) error {
	v, ok := c.Find(name)
	if !ok {
		return port.NameError(port.ErrCNotFound, name)
	}
	if err := v.BindTo(other); err != nil {
		plog.Debugf("connect %s failed: %v", name, err)
		return withName(err, name)
	}
	return nil
}

// ConnectWith binds the named port of c to the port otherName of other.
// Fails with port.ErrOtherNotFound if other has no such port.
func ConnectWith(c IPortCollection, name string, other IPortCollection, otherName string) error {
	src, ok := other.Find(otherName)
	if !ok {
		return port.NameError(port.ErrCOtherNotFound, otherName)
	}
	return Connect(c, name, src)
}

// GiveTo is the reverse of ConnectWith: the port otherName of other is bound
// to the named port of c.
func GiveTo(c IPortCollection, name string, other IPortCollection, otherName string) error {
	src, ok := c.Find(name)
	if !ok {
		return port.NameError(port.ErrCNotFound, name)
	}
	dst, ok := other.Find(otherName)
	if !ok {
		return port.NameError(port.ErrCOtherNotFound, otherName)
	}
	return withName(dst.BindTo(src), otherName)
}

// --------------------------------------------------------------------------
// Removal
// --------------------------------------------------------------------------

// Remove takes the named port out of c and returns its current value.
// Fails with port.ErrNotFound if the name is absent and with
// port.ErrWrongDataType if the port does not store a T, in which case c is unchanged.
func Remove[T any](c IDynamicPortCollection, name string) (T, bool, error) {
	var zero T
	found, err := Contains[T](c, name)
	if err != nil {
		return zero, false, err
	}
	if !found {
		return zero, false, port.NameError(port.ErrCNotFound, name)
	}

	v, err := c.RemoveVariant(name)
	if err != nil {
		// Contains succeeded, so the name must be present
		panic("collection: port vanished during removal: " + name)
	}
	value, ok, err := port.Extract[T](v)
	return value, ok, withName(err, name)
}
