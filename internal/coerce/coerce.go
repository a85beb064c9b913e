// Package coerce converts scanned native values into the canonical typed
// accessor results. SQL NULL is absence from every accessor regardless of
// the requested kind. Non-null conversions are strict: a value that does
// not fit the requested kind is an ErrTypeConversion, never a truncation
// or a bitwise reinterpretation.
package coerce

import (
	"database/sql"
	"math"
	"strconv"
	"time"

	"github.com/eatonphil/godbc"
)

// Holders returns one scan destination per column, chosen by canonical
// type. Nullable holders keep SQL NULL distinguishable from zero values.
func Holders(types []godbc.DataType) []any {
	dest := make([]any, len(types))
	for i, t := range types {
		switch t {
		case godbc.Bool:
			dest[i] = new(sql.NullBool)
		case godbc.Byte, godbc.Short, godbc.Integer:
			dest[i] = new(sql.NullInt64)
		case godbc.Float, godbc.Double:
			dest[i] = new(sql.NullFloat64)
		case godbc.Decimal, godbc.Utf8:
			dest[i] = new(sql.NullString)
		case godbc.Date, godbc.Time, godbc.Datetime:
			dest[i] = new(sql.NullTime)
		case godbc.Binary:
			dest[i] = new([]byte)
		default:
			dest[i] = new(sql.NullString)
		}
	}
	return dest
}

// isNull reports whether the holder carries SQL NULL.
func isNull(h any) bool {
	switch v := h.(type) {
	case *sql.NullBool:
		return !v.Valid
	case *sql.NullInt64:
		return !v.Valid
	case *sql.NullFloat64:
		return !v.Valid
	case *sql.NullString:
		return !v.Valid
	case *sql.NullTime:
		return !v.Valid
	case *[]byte:
		return *v == nil
	}
	return false
}

func conversionErr(h any, want string) error {
	return godbc.NewError(godbc.ErrTypeConversion, "cannot convert %T to %s", h, want)
}

// Bool coerces a holder to a boolean. Integer holders accept 0 and 1,
// covering backends that surface boolean columns as tiny integers.
func Bool(h any) (*bool, error) {
	if isNull(h) {
		return nil, nil
	}
	switch v := h.(type) {
	case *sql.NullBool:
		b := v.Bool
		return &b, nil
	case *sql.NullInt64:
		switch v.Int64 {
		case 0:
			b := false
			return &b, nil
		case 1:
			b := true
			return &b, nil
		}
		return nil, godbc.NewError(godbc.ErrTypeConversion, "integer %d is not a boolean", v.Int64)
	}
	return nil, conversionErr(h, "bool")
}

// Int32 coerces a holder to a 32-bit signed integer with a range check.
func Int32(h any) (*int32, error) {
	if isNull(h) {
		return nil, nil
	}
	v, ok := h.(*sql.NullInt64)
	if !ok {
		return nil, conversionErr(h, "int32")
	}
	if v.Int64 < math.MinInt32 || v.Int64 > math.MaxInt32 {
		return nil, godbc.NewError(godbc.ErrTypeConversion, "value %d overflows int32", v.Int64)
	}
	n := int32(v.Int64)
	return &n, nil
}

// UInt32 coerces a holder to a 32-bit unsigned integer with a range check.
func UInt32(h any) (*uint32, error) {
	if isNull(h) {
		return nil, nil
	}
	v, ok := h.(*sql.NullInt64)
	if !ok {
		return nil, conversionErr(h, "uint32")
	}
	if v.Int64 < 0 || v.Int64 > math.MaxUint32 {
		return nil, godbc.NewError(godbc.ErrTypeConversion, "value %d overflows uint32", v.Int64)
	}
	n := uint32(v.Int64)
	return &n, nil
}

// Int64 coerces a holder to a 64-bit signed integer.
func Int64(h any) (*int64, error) {
	if isNull(h) {
		return nil, nil
	}
	v, ok := h.(*sql.NullInt64)
	if !ok {
		return nil, conversionErr(h, "int64")
	}
	n := v.Int64
	return &n, nil
}

// Float64 coerces a holder to a double. Decimal columns arrive as text and
// are parsed; a malformed numeric string is a conversion error.
func Float64(h any) (*float64, error) {
	if isNull(h) {
		return nil, nil
	}
	switch v := h.(type) {
	case *sql.NullFloat64:
		f := v.Float64
		return &f, nil
	case *sql.NullString:
		f, err := strconv.ParseFloat(v.String, 64)
		if err != nil {
			return nil, godbc.WrapError(godbc.ErrTypeConversion, err, "cannot parse %q as float64", v.String)
		}
		return &f, nil
	}
	return nil, conversionErr(h, "float64")
}

// String coerces a holder to text.
func String(h any) (*string, error) {
	if isNull(h) {
		return nil, nil
	}
	switch v := h.(type) {
	case *sql.NullString:
		s := v.String
		return &s, nil
	case *[]byte:
		s := string(*v)
		return &s, nil
	}
	return nil, conversionErr(h, "string")
}

// Bytes coerces a holder to raw bytes. The returned slice is a copy.
func Bytes(h any) ([]byte, error) {
	if isNull(h) {
		return nil, nil
	}
	switch v := h.(type) {
	case *[]byte:
		b := make([]byte, len(*v))
		copy(b, *v)
		return b, nil
	case *sql.NullString:
		return []byte(v.String), nil
	}
	return nil, conversionErr(h, "bytes")
}

// Time coerces a holder to a timestamp.
func Time(h any) (*time.Time, error) {
	if isNull(h) {
		return nil, nil
	}
	v, ok := h.(*sql.NullTime)
	if !ok {
		return nil, conversionErr(h, "time")
	}
	t := v.Time
	return &t, nil
}
