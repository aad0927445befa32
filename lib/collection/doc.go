/*
Package collection provides named containers of port variants.

A component usually owns several ports, each identified by a unique name.
The collections in this package store those ports and give access to them by
name, while all value handling is delegated to package port.

# Collection Types

  - Array: a fixed set of ports. Duplicate names are rejected at construction,
    afterwards no ports can be added or removed.
  - List: a growable collection that keeps insertion order.
  - Map: a growable collection kept sorted by name, backed by a B-tree.

All three implement IPortCollection, List and Map additionally implement
IDynamicPortCollection.

# Accessors

The package level functions mirror the accessors of package port but take a
collection and a name:

	c := collection.NewList(
		collection.ReadOnlyEntry[int]("in"),
		collection.WriteOnlyEntryWithValue("out", "idle"),
	)
	if err := collection.Set(c, "out", "busy"); err != nil {
		// port.ErrNotFound, port.ErrWrongPortType or port.ErrWrongDataType
	}

A missing name results in port.ErrNotFound, a missing name in the counterpart
collection of ConnectWith or GiveTo in port.ErrOtherNotFound.

# Thread Safety

Structural changes (Insert, Remove) are not synchronised and must not run
concurrently with other operations on the same collection. Value access through
the ports is synchronised by the ports themselves.
*/
package collection
