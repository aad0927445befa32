package collection

import (
	"errors"

	"github.com/ValentinKolb/dPort/lib/port"
)

// --------------------------------------------------------------------------
// Interfaces
// --------------------------------------------------------------------------

// IPortCollection is a read-only view of named ports.
type IPortCollection interface {
	// Find returns the port with the given name.
	Find(name string) (v port.Variant, ok bool)
	// FindMut returns a pointer to the stored port so it can be replaced in place.
	// The pointer stays valid across later insertions, but writes through it have no
	// effect once the port was removed.
	FindMut(name string) (v *port.Variant, ok bool)
	// Names returns the port names in iteration order.
	Names() (names []string)
	// Len returns the number of ports.
	Len() (n int)
}

// IDynamicPortCollection is a collection that ports can be added to and removed from.
type IDynamicPortCollection interface {
	IPortCollection
	// Insert adds a port. Fails with port.ErrAlreadyInCollection if the name is taken.
	Insert(name string, v port.Variant) (err error)
	// RemoveVariant removes and returns the port. Fails with port.ErrNotFound.
	RemoveVariant(name string) (v port.Variant, err error)
}

// IPortProvider is implemented by components that expose their ports.
type IPortProvider interface {
	Ports() IPortCollection
}

// --------------------------------------------------------------------------
// Entries
// --------------------------------------------------------------------------

// Entry is a named port used to construct collections.
type Entry struct {
	Name string
	Port port.Variant
}

// ReadOnlyEntry creates an entry with an empty read-only port.
func ReadOnlyEntry[T any](name string) Entry {
	return Entry{Name: name, Port: port.NewReadOnlyVariant[T]()}
}

// ReadOnlyEntryWithValue creates an entry with a pre-filled read-only port.
func ReadOnlyEntryWithValue[T any](name string, value T) Entry {
	return Entry{Name: name, Port: port.ReadOnlyVariantWithValue(value)}
}

// WriteOnlyEntry creates an entry with an empty write-only port.
func WriteOnlyEntry[T any](name string) Entry {
	return Entry{Name: name, Port: port.NewWriteOnlyVariant[T]()}
}

// WriteOnlyEntryWithValue creates an entry with a pre-filled write-only port.
func WriteOnlyEntryWithValue[T any](name string, value T) Entry {
	return Entry{Name: name, Port: port.WriteOnlyVariantWithValue(value)}
}

// ReadWriteEntry creates an entry with an empty read-write port.
func ReadWriteEntry[T any](name string) Entry {
	return Entry{Name: name, Port: port.NewReadWriteVariant[T]()}
}

// ReadWriteEntryWithValue creates an entry with a pre-filled read-write port.
func ReadWriteEntryWithValue[T any](name string, value T) Entry {
	return Entry{Name: name, Port: port.ReadWriteVariantWithValue(value)}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// withName attaches the port name to errors returned by package port.
func withName(err error, name string) error {
	var perr *port.Error
	if errors.As(err, &perr) && perr.Name == "" {
		return &port.Error{Code: perr.Code, Name: name, Msg: perr.Msg}
	}
	return err
}
