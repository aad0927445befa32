// Package port implements typed, named value slots ("ports") that can be bound to each
// other so that independent components share values without knowing each other's
// concrete types.
//
// Core Concepts:
//
//   - SequenceNumber: A wrap-around counter attached to every value. It starts at 0
//     ("never written"), is incremented by exactly one per logical mutation and wraps
//     from math.MaxUint32 to 1, so 0 stays a reliable "untouched" marker.
//
//   - VersionedCell: An optional value of type T together with its SequenceNumber.
//     Every Set, Replace and Take increments the version exactly once.
//
//   - AnyValue: The type-erased view of a VersionedCell. It carries a runtime type tag
//     (reflect.Type) that is checked before every downcast. A mismatch is reported as
//     ErrWrongDataType instead of a panic.
//
//   - Handle: The shared storage behind ports. A Handle owns one cell and a
//     sync.RWMutex protecting it. Binding two ports means making them hold the same
//     Handle, so a write through one port is visible through all others.
//
//   - ReadGuard / WriteGuard: Scoped access tokens. A guard acquires the lock of a
//     Handle once and holds it until Release is called. A WriteGuard records whether
//     the value was accessed mutably and bumps the version exactly once on release if
//     it was, no matter how often the value was touched in between.
//
// Port Variants:
//
//	Three port personalities exist, each defined by the capability interfaces it
//	implements:
//
//	- ReadOnlyPort:  BindCommons + BindIn
//	- WriteOnlyPort: BindCommons + BindOut
//	- ReadWritePort: BindCommons + BindIn + BindOut + BindInOut
//
//	Typed operations are package level functions constrained by capability, e.g.
//	Get[T](BindIn) or Set[T](BindOut, T). Calling Set with a read-only port therefore
//	does not compile. Where the kind of port is only known at runtime, a Variant wraps
//	any of the three and projects it onto a capability with In, Out or InOut, returning
//	ErrWrongPortType if the port does not support it.
//
// Binding Rules:
//
//	Any variant may adopt the storage of any other variant as long as the stored value
//	types match. Binding shares the live cell including its current sequence number;
//	it never copies values. Re-binding an already bound port silently replaces its
//	handle. The swap itself is atomic, but it is not synchronised with guards that are
//	already held on the previous handle: such a guard keeps operating on the old cell
//	until it is released.
//
// Usage Example:
//
//	out := port.NewWriteOnlyPortWithValue(10)
//	in := port.NewReadOnlyPort[int]()
//
//	if err := in.BindTo(out); err != nil {
//	    // ErrWrongDataType if the value types differ
//	}
//
//	_ = port.Set(out, 20)
//	value, ok, _ := port.Get[int](in) // 20, true
//
//	guard, err := port.Write[int](out)
//	if err == nil {
//	    *guard.Mut() += 1
//	    guard.Release() // version is bumped once
//	}
//
// Thread Safety:
//
//	All value operations are safe for concurrent use. Many readers or one writer may
//	access a cell at any time. Blocking acquisitions (Read, Write) cannot be cancelled;
//	callers that need bounded waiting use TryRead/TryWrite and retry on ErrIsLocked.
package port
