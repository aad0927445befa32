package port

import (
	"fmt"
	"reflect"
)

// Kind identifies the personality of a port.
type Kind uint8

const (
	KindReadOnly  Kind = iota + 1 // only readable
	KindWriteOnly                 // only writeable
	KindReadWrite                 // read- & writeable
)

func (k Kind) String() string {
	switch k {
	case KindReadOnly:
		return "ReadOnly"
	case KindWriteOnly:
		return "WriteOnly"
	case KindReadWrite:
		return "ReadWrite"
	default:
		return "Invalid"
	}
}

// Variant is a tagged union over the three bound port kinds.
// It is used wherever the kind of port is only known at runtime,
// e.g. in collections or when binding ports of different components.
//
// A Variant refers to its port, copies of a Variant therefore share the port.
// The zero Variant holds no port and fails all operations with ErrWrongPortType.
type Variant struct {
	kind Kind
	port BindCommons
}

// NewVariant wraps a bound port. Passing a Variant returns it unchanged;
// any other value, including a nil port pointer, results in the zero Variant.
func NewVariant(p BindCommons) Variant {
	switch p := p.(type) {
	case *ReadOnlyPort:
		if p == nil {
			return Variant{}
		}
		return Variant{kind: KindReadOnly, port: p}
	case *WriteOnlyPort:
		if p == nil {
			return Variant{}
		}
		return Variant{kind: KindWriteOnly, port: p}
	case *ReadWritePort:
		if p == nil {
			return Variant{}
		}
		return Variant{kind: KindReadWrite, port: p}
	case Variant:
		return p
	default:
		return Variant{}
	}
}

// NewReadOnlyVariant creates a Variant around an empty read-only port.
func NewReadOnlyVariant[T any]() Variant {
	return NewVariant(NewReadOnlyPort[T]())
}

// NewWriteOnlyVariant creates a Variant around an empty write-only port.
func NewWriteOnlyVariant[T any]() Variant {
	return NewVariant(NewWriteOnlyPort[T]())
}

// NewReadWriteVariant creates a Variant around an empty read-write port.
func NewReadWriteVariant[T any]() Variant {
	return NewVariant(NewReadWritePort[T]())
}

// ReadOnlyVariantWithValue creates a Variant around a pre-filled read-only port.
func ReadOnlyVariantWithValue[T any](value T) Variant {
	return NewVariant(NewReadOnlyPortWithValue(value))
}

// WriteOnlyVariantWithValue creates a Variant around a pre-filled write-only port.
func WriteOnlyVariantWithValue[T any](value T) Variant {
	return NewVariant(NewWriteOnlyPortWithValue(value))
}

// ReadWriteVariantWithValue creates a Variant around a pre-filled read-write port.
func ReadWriteVariantWithValue[T any](value T) Variant {
	return NewVariant(NewReadWritePortWithValue(value))
}

// Kind returns the kind of the wrapped port, 0 for the zero Variant.
func (v Variant) Kind() Kind {
	return v.kind
}

// Port returns the wrapped port, nil for the zero Variant.
func (v Variant) Port() BindCommons {
	return v.port
}

// IsValid reports whether the Variant wraps a port.
func (v Variant) IsValid() bool {
	return v.port != nil
}

// In returns the wrapped port if it is readable.
func (v Variant) In() (BindIn, error) {
	if in, ok := v.port.(BindIn); ok {
		return in, nil
	}
	return nil, v.wrongPortType("read")
}

// Out returns the wrapped port if it is writeable.
func (v Variant) Out() (BindOut, error) {
	if out, ok := v.port.(BindOut); ok {
		return out, nil
	}
	return nil, v.wrongPortType("write")
}

// InOut returns the wrapped port if it is read- and writeable.
func (v Variant) InOut() (BindInOut, error) {
	if inOut, ok := v.port.(BindInOut); ok {
		return inOut, nil
	}
	return nil, v.wrongPortType("replace or take")
}

// BindTo makes the wrapped port adopt the storage of other.
func (v Variant) BindTo(other BindCommons) error {
	if v.port == nil {
		return NewError(ErrCWrongPortType, "cannot bind an empty port variant")
	}
	return v.port.BindTo(other)
}

// SequenceNumber returns the change sequence number, 0 for the zero Variant.
func (v Variant) SequenceNumber() uint32 {
	if v.port == nil {
		return 0
	}
	return v.port.SequenceNumber()
}

// Type returns the type identity of the stored value, nil for the zero Variant.
func (v Variant) Type() reflect.Type {
	if v.port == nil {
		return nil
	}
	return v.port.Type()
}

// Equal reports whether both variants are of the same kind and store the same type.
// It does not compare storage, see SameStorage for that.
func (v Variant) Equal(other Variant) bool {
	return v.kind == other.kind && v.Type() == other.Type()
}

func (v Variant) String() string {
	if v.port == nil {
		return "Invalid"
	}
	return fmt.Sprintf("%s<%s>", v.kind, v.Type())
}

func (v Variant) handle() *Handle {
	if v.port == nil {
		return nil
	}
	return v.port.handle()
}

func (v Variant) wrongPortType(op string) *Error {
	return NewError(ErrCWrongPortType, fmt.Sprintf("cannot %s %s port", op, v.kind))
}
