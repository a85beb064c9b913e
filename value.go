package godbc

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies the canonical scalar kind held by a Value.
type ValueKind uint

const (
	NullKind ValueKind = iota
	BoolKind
	Int32Kind
	UInt32Kind
	Int64Kind
	Float64Kind
	Utf8Kind
	BinaryKind
)

func (k ValueKind) String() string {
	switch k {
	case NullKind:
		return "Null"
	case BoolKind:
		return "Bool"
	case Int32Kind:
		return "Int32"
	case UInt32Kind:
		return "UInt32"
	case Int64Kind:
		return "Int64"
	case Float64Kind:
		return "Float64"
	case Utf8Kind:
		return "Utf8"
	case BinaryKind:
		return "Binary"
	default:
		return "Error"
	}
}

// Value is a canonical database value passed across the contract boundary.
// A Value is immutable once constructed.
type Value struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
	raw  []byte
}

// NewNullValue returns the SQL NULL value.
func NewNullValue() Value {
	return Value{kind: NullKind}
}

// NewBoolValue returns a boolean Value.
func NewBoolValue(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

// NewInt32Value returns a 32-bit signed integer Value.
func NewInt32Value(n int32) Value {
	return Value{kind: Int32Kind, i: int64(n)}
}

// NewUInt32Value returns a 32-bit unsigned integer Value.
func NewUInt32Value(n uint32) Value {
	return Value{kind: UInt32Kind, i: int64(n)}
}

// NewInt64Value returns a 64-bit signed integer Value.
func NewInt64Value(n int64) Value {
	return Value{kind: Int64Kind, i: n}
}

// NewFloat64Value returns a double-precision Value.
func NewFloat64Value(f float64) Value {
	return Value{kind: Float64Kind, f: f}
}

// NewUtf8Value returns a UTF-8 text Value.
func NewUtf8Value(s string) Value {
	return Value{kind: Utf8Kind, s: s}
}

// NewBinaryValue returns a binary Value. The byte slice is copied so the
// Value stays immutable if the caller reuses the buffer.
func NewBinaryValue(b []byte) Value {
	raw := make([]byte, len(b))
	copy(raw, b)
	return Value{kind: BinaryKind, raw: raw}
}

// Kind returns the canonical scalar kind of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is SQL NULL.
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// String renders the value as a SQL literal. Text values are single-quoted
// with embedded quotes doubled so the rendering can be spliced into SQL by
// the substitution-based rewriting path.
//
// The substitution path is NOT safe against adversarial input. It exists
// only for trusted, internally generated SQL; untrusted input must go
// through a dialect with native parameter binding.
func (v Value) String() string {
	switch v.kind {
	case NullKind:
		return "NULL"
	case BoolKind:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case Int32Kind, Int64Kind:
		return strconv.FormatInt(v.i, 10)
	case UInt32Kind:
		return strconv.FormatUint(uint64(uint32(v.i)), 10)
	case Float64Kind:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Utf8Kind:
		return "'" + strings.ReplaceAll(v.s, "'", "''") + "'"
	case BinaryKind:
		return fmt.Sprintf("X'%X'", v.raw)
	default:
		return "NULL"
	}
}

// Native returns the representation handed to a native client library with
// parameter binding. Integer kinds widen to int64, which every database/sql
// driver accepts.
func (v Value) Native() any {
	switch v.kind {
	case NullKind:
		return nil
	case BoolKind:
		return v.b
	case Int32Kind, UInt32Kind, Int64Kind:
		return v.i
	case Float64Kind:
		return v.f
	case Utf8Kind:
		return v.s
	case BinaryKind:
		return v.raw
	default:
		return nil
	}
}

// NativeArgs converts a canonical parameter list into native bind arguments.
func NativeArgs(params []Value) []any {
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p.Native()
	}
	return args
}
