package collection

import (
	"github.com/ValentinKolb/dPort/lib/port"
	"github.com/google/btree"
)

// btreeDegree is the degree of the B-tree backing Map.
// Port collections are small, so a low degree keeps nodes compact.
const btreeDegree = 8

// Map is a growable collection of ports kept sorted by name.
type Map struct {
	tree *btree.BTreeG[*Entry]
}

func lessEntry(a, b *Entry) bool {
	return a.Name < b.Name
}

// NewMap creates a Map from the given entries.
// Later entries with an already used name are dropped.
func NewMap(entries ...Entry) *Map {
	m := &Map{tree: btree.NewG[*Entry](btreeDegree, lessEntry)}
	for _, e := range entries {
		if err := m.Insert(e.Name, e.Port); err != nil {
			plog.Warningf("dropping duplicate port %s", e.Name)
		}
	}
	return m
}

func (m *Map) Find(name string) (port.Variant, bool) {
	if e, ok := m.tree.Get(&Entry{Name: name}); ok {
		return e.Port, true
	}
	return port.Variant{}, false
}

func (m *Map) FindMut(name string) (*port.Variant, bool) {
	if e, ok := m.tree.Get(&Entry{Name: name}); ok {
		return &e.Port, true
	}
	return nil, false
}

// Names returns the port names in ascending order.
func (m *Map) Names() []string {
	names := make([]string, 0, m.tree.Len())
	m.tree.Ascend(func(e *Entry) bool {
		names = append(names, e.Name)
		return true
	})
	return names
}

func (m *Map) Len() int {
	return m.tree.Len()
}

func (m *Map) Insert(name string, v port.Variant) error {
	key := &Entry{Name: name, Port: v}
	if m.tree.Has(key) {
		return port.NameError(port.ErrCAlreadyInCollection, name)
	}
	m.tree.ReplaceOrInsert(key)
	return nil
}

func (m *Map) RemoveVariant(name string) (port.Variant, error) {
	e, ok := m.tree.Delete(&Entry{Name: name})
	if !ok {
		return port.Variant{}, port.NameError(port.ErrCNotFound, name)
	}
	return e.Port, nil
}
