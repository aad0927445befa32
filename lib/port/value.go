package port

import (
	"fmt"
	"reflect"
)

// AnyValue is the type-erased view of a VersionedCell.
// It is implemented by *VersionedCell[T] only.
type AnyValue interface {
	// Type returns the runtime type tag of the stored value.
	Type() reflect.Type
	// Version returns the sequence number of the cell.
	Version() uint32
	// IsSome reports whether the cell holds a value.
	IsSome() bool

	anyValue()
}

// TypeOf returns the type tag used for values of type T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Downcast recovers the concrete cell behind an AnyValue.
// The type tag is checked first, a mismatch returns ErrWrongDataType.
func Downcast[T any](v AnyValue) (*VersionedCell[T], error) {
	if v == nil {
		return nil, NewError(ErrCWrongDataType, "no value cell")
	}
	if want := TypeOf[T](); v.Type() != want {
		return nil, NewError(ErrCWrongDataType, fmt.Sprintf("expected %s, found %s", want, v.Type()))
	}
	cell, ok := v.(*VersionedCell[T])
	if !ok {
		// the tag matched, so the cell must be of this type
		panic(fmt.Sprintf("port: cell tagged %s is %T", v.Type(), v))
	}
	return cell, nil
}
