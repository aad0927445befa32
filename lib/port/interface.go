package port

import (
	"fmt"
	"reflect"
)

// --------------------------------------------------------------------------
// Capability Interfaces
// --------------------------------------------------------------------------

// BindCommons is implemented by every bound port and by Variant.
type BindCommons interface {
	// BindTo makes the port share the storage of other.
	// Fails with ErrWrongDataType if the stored value types differ, leaving the port unchanged.
	BindTo(other BindCommons) (err error)
	// SequenceNumber returns the change sequence number of the current storage.
	// A value of 0 means the value has never been set or changed.
	SequenceNumber() (seq uint32)
	// Type returns the type identity of the stored value.
	Type() (typ reflect.Type)

	handle() *Handle
}

// BindIn is implemented by ports whose value can be read.
type BindIn interface {
	BindCommons
	readable()
}

// BindOut is implemented by ports whose value can be written.
type BindOut interface {
	BindCommons
	writable()
}

// BindInOut is implemented by ports that can be read and written,
// which additionally allows Replace and Take.
type BindInOut interface {
	BindIn
	BindOut
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the error type returned by all fallible operations of this module.
// It wraps an error code and an optional message.
type Error struct {
	Code ErrCode // The error code
	Name string  // Name of the port involved, if known
	Msg  string  // Additional message
}

// Error implements the error interface.
func (e *Error) Error() string {
	s := fmt.Sprintf("PortError (code %s)", e.Code)
	if e.Name != "" {
		s += fmt.Sprintf(" for port '%s'", e.Name)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

// Is reports whether target is an *Error with the same code.
// This allows errors.Is(err, port.ErrNotFound) regardless of name and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// NameError creates a new Error with the given code for the named port.
func NameError(code ErrCode, name string) *Error {
	return &Error{
		Code: code,
		Name: name,
	}
}

// --------------------------------------------------------------------------
// Error Codes
// --------------------------------------------------------------------------

type ErrCode uint64

const (
	ErrCWrongDataType       ErrCode = iota + 1 // 1: Stored value type does not match the requested type.
	ErrCWrongPortType                          // 2: Operation is not supported by the port variant.
	ErrCNotFound                               // 3: Name is not in the queried collection.
	ErrCOtherNotFound                          // 4: Name is not in the counterpart collection.
	ErrCAlreadyInCollection                    // 5: Name is already used in the collection.
	ErrCIsLocked                               // 6: Non-blocking guard acquisition found the lock held.
	ErrCNoValueSet                             // 7: Guard requested on an empty cell.
)

func (c ErrCode) String() string {
	switch c {
	case ErrCWrongDataType:
		return "WrongDataType"
	case ErrCWrongPortType:
		return "WrongPortType"
	case ErrCNotFound:
		return "NotFound"
	case ErrCOtherNotFound:
		return "OtherNotFound"
	case ErrCAlreadyInCollection:
		return "AlreadyInCollection"
	case ErrCIsLocked:
		return "IsLocked"
	case ErrCNoValueSet:
		return "NoValueSet"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrWrongDataType       = &Error{Code: ErrCWrongDataType}
	ErrWrongPortType       = &Error{Code: ErrCWrongPortType}
	ErrNotFound            = &Error{Code: ErrCNotFound}
	ErrOtherNotFound       = &Error{Code: ErrCOtherNotFound}
	ErrAlreadyInCollection = &Error{Code: ErrCAlreadyInCollection}
	ErrIsLocked            = &Error{Code: ErrCIsLocked}
	ErrNoValueSet          = &Error{Code: ErrCNoValueSet}
)
