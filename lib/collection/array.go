package collection

import (
	"github.com/ValentinKolb/dPort/lib/port"
)

// Array is a fixed collection of ports. The set of names cannot change after construction.
type Array struct {
	entries []Entry
}

// NewArray creates an Array from the given entries.
// Fails with port.ErrAlreadyInCollection if a name occurs twice.
func NewArray(entries ...Entry) (*Array, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Name]; dup {
			return nil, port.NameError(port.ErrCAlreadyInCollection, e.Name)
		}
		seen[e.Name] = struct{}{}
	}

	a := &Array{entries: make([]Entry, len(entries))}
	copy(a.entries, entries)
	return a, nil
}

// EmptyArray returns an Array without ports.
func EmptyArray() *Array {
	return &Array{}
}

func (a *Array) Find(name string) (port.Variant, bool) {
	for _, e := range a.entries {
		if e.Name == name {
			return e.Port, true
		}
	}
	return port.Variant{}, false
}

func (a *Array) FindMut(name string) (*port.Variant, bool) {
	for i := range a.entries {
		if a.entries[i].Name == name {
			return &a.entries[i].Port, true
		}
	}
	return nil, false
}

func (a *Array) Names() []string {
	names := make([]string, len(a.entries))
	for i, e := range a.entries {
		names[i] = e.Name
	}
	return names
}

func (a *Array) Len() int {
	return len(a.entries)
}
