package port

// --------------------------------------------------------------------------
// BindIn operations
// --------------------------------------------------------------------------

// Get returns a copy of the value of p and whether a value is set.
// Fails with ErrWrongDataType if p does not store a T.
func Get[T any](p BindIn) (T, bool, error) {
	h, err := storage(p)
	if err != nil {
		var zero T
		return zero, false, err
	}
	cell, err := Downcast[T](h.cell)
	if err != nil {
		var zero T
		return zero, false, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	value, ok := cell.Get()
	return value, ok, nil
}

// Read returns a ReadGuard on the value of p, waiting until no writer holds it.
// Fails with ErrWrongDataType or ErrNoValueSet.
func Read[T any](p BindIn) (*ReadGuard[T], error) {
	h, err := storage(p)
	if err != nil {
		return nil, err
	}
	return newReadGuard[T](h, true)
}

// TryRead returns a ReadGuard on the value of p without waiting.
// Fails with ErrWrongDataType, ErrIsLocked or ErrNoValueSet.
func TryRead[T any](p BindIn) (*ReadGuard[T], error) {
	h, err := storage(p)
	if err != nil {
		return nil, err
	}
	return newReadGuard[T](h, false)
}

// --------------------------------------------------------------------------
// BindOut operations
// --------------------------------------------------------------------------

// Set overwrites the value of p.
// Fails with ErrWrongDataType if p does not store a T.
func Set[T any](p BindOut, value T) error {
	h, err := storage(p)
	if err != nil {
		return err
	}
	cell, err := Downcast[T](h.cell)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	cell.Set(value)
	versionsBumped.Inc()
	return nil
}

// Write returns a WriteGuard on the value of p, waiting until no other guard holds it.
// Fails with ErrWrongDataType or ErrNoValueSet.
func Write[T any](p BindOut) (*WriteGuard[T], error) {
	h, err := storage(p)
	if err != nil {
		return nil, err
	}
	return newWriteGuard[T](h, true)
}

// TryWrite returns a WriteGuard on the value of p without waiting.
// Fails with ErrWrongDataType, ErrIsLocked or ErrNoValueSet.
func TryWrite[T any](p BindOut) (*WriteGuard[T], error) {
	h, err := storage(p)
	if err != nil {
		return nil, err
	}
	return newWriteGuard[T](h, false)
}

// Update runs fn on the value of p within a single write guard session.
// The version is bumped once, even if fn returns an error.
func Update[T any](p BindOut, fn func(value *T) error) error {
	guard, err := Write[T](p)
	if err != nil {
		return err
	}
	defer guard.Release()
	return fn(guard.Mut())
}

// --------------------------------------------------------------------------
// BindInOut operations
// --------------------------------------------------------------------------

// Replace sets a new value and returns the previous one, if any.
func Replace[T any](p BindInOut, value T) (T, bool, error) {
	h, err := storage(p)
	if err != nil {
		var zero T
		return zero, false, err
	}
	cell, err := Downcast[T](h.cell)
	if err != nil {
		var zero T
		return zero, false, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	old, ok := cell.Replace(value)
	versionsBumped.Inc()
	return old, ok, nil
}

// Take removes the value from p and returns it, if any.
func Take[T any](p BindInOut) (T, bool, error) {
	return take[T](p)
}

// --------------------------------------------------------------------------
// BindCommons operations
// --------------------------------------------------------------------------

// Extract removes the value from any port variant and returns it.
// It is meant for owners that drop a port, e.g. a collection removing an entry,
// and is not restricted by the port's capabilities.
func Extract[T any](p BindCommons) (T, bool, error) {
	return take[T](p)
}

// Holds reports whether p stores values of type T.
func Holds[T any](p BindCommons) bool {
	h, err := storage(p)
	return err == nil && h.typ == TypeOf[T]()
}

// SameStorage reports whether a and b are bound to the same storage.
func SameStorage(a, b BindCommons) bool {
	ha, errA := storage(a)
	hb, errB := storage(b)
	return errA == nil && errB == nil && ha == hb
}

func take[T any](p BindCommons) (T, bool, error) {
	var zero T
	h, err := storage(p)
	if err != nil {
		return zero, false, err
	}
	cell, err := Downcast[T](h.cell)
	if err != nil {
		return zero, false, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	old, ok := cell.Take()
	versionsBumped.Inc()
	return old, ok, nil
}

// storage returns the handle of p. Nil ports, ports created without a constructor
// and the zero Variant have none and fail with ErrWrongPortType.
func storage(p BindCommons) (*Handle, error) {
	var h *Handle
	switch q := p.(type) {
	case nil:
	case *ReadOnlyPort:
		if q != nil {
			h = q.handle()
		}
	case *WriteOnlyPort:
		if q != nil {
			h = q.handle()
		}
	case *ReadWritePort:
		if q != nil {
			h = q.handle()
		}
	default:
		h = p.handle()
	}
	if h == nil {
		return nil, NewError(ErrCWrongPortType, "port has no storage")
	}
	return h, nil
}
