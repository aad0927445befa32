package port

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// --------------------------------------------------------------------------
// Shared binding behaviour
// --------------------------------------------------------------------------

// bound is embedded by all port variants. It owns the current handle.
type bound struct {
	ptr atomic.Pointer[Handle]
}

func (b *bound) handle() *Handle {
	return b.ptr.Load()
}

// SequenceNumber returns the change sequence number of the current storage,
// 0 for a port created without a constructor.
func (b *bound) SequenceNumber() uint32 {
	h := b.handle()
	if h == nil {
		return 0
	}
	return h.SequenceNumber()
}

// Type returns the type identity of the stored value, nil for a port created without a constructor.
func (b *bound) Type() reflect.Type {
	h := b.handle()
	if h == nil {
		return nil
	}
	return h.Type()
}

// BindTo adopts the storage of other if the stored value types match.
// An already bound port is silently re-bound.
func (b *bound) BindTo(other BindCommons) error {
	src, err := storage(other)
	if err != nil {
		return err
	}

	own := b.handle()
	if own == nil {
		return NewError(ErrCWrongPortType, "port has no storage, use a constructor")
	}
	if own.typ != src.typ {
		bindErrors.Inc()
		plog.Debugf("refused to bind %s port to %s storage", own.typ, src.typ)
		return NewError(ErrCWrongDataType, fmt.Sprintf("cannot bind %s to %s", own.typ, src.typ))
	}

	b.ptr.Store(src)
	bindsTotal.Inc()
	return nil
}

// --------------------------------------------------------------------------
// Read-only port
// --------------------------------------------------------------------------

// ReadOnlyPort is a bound port whose value can only be read.
// It implements BindCommons and BindIn.
type ReadOnlyPort struct {
	bound
}

// NewReadOnlyPort creates an unbound read-only port with an empty value of type T.
func NewReadOnlyPort[T any]() *ReadOnlyPort {
	p := &ReadOnlyPort{}
	p.ptr.Store(newHandle(NewCell[T]()))
	return p
}

// NewReadOnlyPortWithValue creates a read-only port pre-filled with value (version 1).
func NewReadOnlyPortWithValue[T any](value T) *ReadOnlyPort {
	p := &ReadOnlyPort{}
	p.ptr.Store(newHandle(NewCellWithValue(value)))
	return p
}

// Clone returns a new read-only port sharing the storage of p.
func (p *ReadOnlyPort) Clone() *ReadOnlyPort {
	c := &ReadOnlyPort{}
	c.ptr.Store(p.handle())
	return c
}

func (p *ReadOnlyPort) readable() {}

// --------------------------------------------------------------------------
// Write-only port
// --------------------------------------------------------------------------

// WriteOnlyPort is a bound port whose value can only be written.
// It implements BindCommons and BindOut.
type WriteOnlyPort struct {
	bound
}

// NewWriteOnlyPort creates an unbound write-only port with an empty value of type T.
func NewWriteOnlyPort[T any]() *WriteOnlyPort {
	p := &WriteOnlyPort{}
	p.ptr.Store(newHandle(NewCell[T]()))
	return p
}

// NewWriteOnlyPortWithValue creates a write-only port pre-filled with value (version 1).
func NewWriteOnlyPortWithValue[T any](value T) *WriteOnlyPort {
	p := &WriteOnlyPort{}
	p.ptr.Store(newHandle(NewCellWithValue(value)))
	return p
}

// Clone returns a new write-only port sharing the storage of p.
func (p *WriteOnlyPort) Clone() *WriteOnlyPort {
	c := &WriteOnlyPort{}
	c.ptr.Store(p.handle())
	return c
}

func (p *WriteOnlyPort) writable() {}

// --------------------------------------------------------------------------
// Read-write port
// --------------------------------------------------------------------------

// ReadWritePort is a bound port whose value can be read and written.
// It implements BindCommons, BindIn, BindOut and BindInOut.
type ReadWritePort struct {
	bound
}

// NewReadWritePort creates an unbound read-write port with an empty value of type T.
func NewReadWritePort[T any]() *ReadWritePort {
	p := &ReadWritePort{}
	p.ptr.Store(newHandle(NewCell[T]()))
	return p
}

// NewReadWritePortWithValue creates a read-write port pre-filled with value (version 1).
func NewReadWritePortWithValue[T any](value T) *ReadWritePort {
	p := &ReadWritePort{}
	p.ptr.Store(newHandle(NewCellWithValue(value)))
	return p
}

// Clone returns a new read-write port sharing the storage of p.
func (p *ReadWritePort) Clone() *ReadWritePort {
	c := &ReadWritePort{}
	c.ptr.Store(p.handle())
	return c
}

func (p *ReadWritePort) readable() {}
func (p *ReadWritePort) writable() {}
