package collection

import (
	"github.com/ValentinKolb/dPort/lib/port"
)

// List is a growable collection of ports that keeps insertion order.
type List struct {
	entries []*Entry
}

// NewList creates a List from the given entries.
// Later entries with an already used name are dropped.
func NewList(entries ...Entry) *List {
	l := &List{entries: make([]*Entry, 0, len(entries))}
	for _, e := range entries {
		if err := l.Insert(e.Name, e.Port); err != nil {
			plog.Warningf("dropping duplicate port %s", e.Name)
		}
	}
	return l
}

func (l *List) index(name string) int {
	for i, e := range l.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

func (l *List) Find(name string) (port.Variant, bool) {
	if i := l.index(name); i >= 0 {
		return l.entries[i].Port, true
	}
	return port.Variant{}, false
}

func (l *List) FindMut(name string) (*port.Variant, bool) {
	if i := l.index(name); i >= 0 {
		return &l.entries[i].Port, true
	}
	return nil, false
}

func (l *List) Names() []string {
	names := make([]string, len(l.entries))
	for i, e := range l.entries {
		names[i] = e.Name
	}
	return names
}

func (l *List) Len() int {
	return len(l.entries)
}

func (l *List) Insert(name string, v port.Variant) error {
	if l.index(name) >= 0 {
		return port.NameError(port.ErrCAlreadyInCollection, name)
	}
	l.entries = append(l.entries, &Entry{Name: name, Port: v})
	return nil
}

func (l *List) RemoveVariant(name string) (port.Variant, error) {
	i := l.index(name)
	if i < 0 {
		return port.Variant{}, port.NameError(port.ErrCNotFound, name)
	}
	v := l.entries[i].Port
	copy(l.entries[i:], l.entries[i+1:])
	l.entries[len(l.entries)-1] = nil
	l.entries = l.entries[:len(l.entries)-1]
	return v, nil
}
