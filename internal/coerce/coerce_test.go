package coerce

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eatonphil/godbc"
)

func TestHolders(t *testing.T) {
	dest := Holders([]godbc.DataType{
		godbc.Bool, godbc.Integer, godbc.Double, godbc.Decimal,
		godbc.Utf8, godbc.Datetime, godbc.Binary,
	})

	assert.IsType(t, &sql.NullBool{}, dest[0])
	assert.IsType(t, &sql.NullInt64{}, dest[1])
	assert.IsType(t, &sql.NullFloat64{}, dest[2])
	assert.IsType(t, &sql.NullString{}, dest[3])
	assert.IsType(t, &sql.NullString{}, dest[4])
	assert.IsType(t, &sql.NullTime{}, dest[5])
	assert.IsType(t, new([]byte), dest[6])
}

func TestInt32(t *testing.T) {
	n, err := Int32(&sql.NullInt64{Int64: 123, Valid: true})
	assert.Nil(t, err)
	assert.Equal(t, int32(123), *n)

	// NULL is absence, not an error.
	n, err = Int32(&sql.NullInt64{})
	assert.Nil(t, err)
	assert.Nil(t, n)
}

func TestInt32_overflow(t *testing.T) {
	_, err := Int32(&sql.NullInt64{Int64: 1 << 40, Valid: true})
	assert.True(t, godbc.IsKind(err, godbc.ErrTypeConversion))

	_, err = Int32(&sql.NullInt64{Int64: -(1 << 40), Valid: true})
	assert.True(t, godbc.IsKind(err, godbc.ErrTypeConversion))
}

func TestInt32_wrongHolder(t *testing.T) {
	_, err := Int32(&sql.NullString{String: "123", Valid: true})
	assert.True(t, godbc.IsKind(err, godbc.ErrTypeConversion))
}

func TestUInt32(t *testing.T) {
	n, err := UInt32(&sql.NullInt64{Int64: 4294967295, Valid: true})
	assert.Nil(t, err)
	assert.Equal(t, uint32(4294967295), *n)

	_, err = UInt32(&sql.NullInt64{Int64: -1, Valid: true})
	assert.True(t, godbc.IsKind(err, godbc.ErrTypeConversion))

	_, err = UInt32(&sql.NullInt64{Int64: 1 << 33, Valid: true})
	assert.True(t, godbc.IsKind(err, godbc.ErrTypeConversion))
}

func TestInt64(t *testing.T) {
	n, err := Int64(&sql.NullInt64{Int64: -9000000000, Valid: true})
	assert.Nil(t, err)
	assert.Equal(t, int64(-9000000000), *n)
}

func TestBool(t *testing.T) {
	b, err := Bool(&sql.NullBool{Bool: true, Valid: true})
	assert.Nil(t, err)
	assert.True(t, *b)

	// Tiny-integer booleans accept 0 and 1 only.
	b, err = Bool(&sql.NullInt64{Int64: 1, Valid: true})
	assert.Nil(t, err)
	assert.True(t, *b)

	b, err = Bool(&sql.NullInt64{Int64: 0, Valid: true})
	assert.Nil(t, err)
	assert.False(t, *b)

	_, err = Bool(&sql.NullInt64{Int64: 2, Valid: true})
	assert.True(t, godbc.IsKind(err, godbc.ErrTypeConversion))
}

func TestFloat64(t *testing.T) {
	f, err := Float64(&sql.NullFloat64{Float64: 1.5, Valid: true})
	assert.Nil(t, err)
	assert.Equal(t, 1.5, *f)

	// Decimal columns arrive as text and parse.
	f, err = Float64(&sql.NullString{String: "2.25", Valid: true})
	assert.Nil(t, err)
	assert.Equal(t, 2.25, *f)

	_, err = Float64(&sql.NullString{String: "not-a-number", Valid: true})
	assert.True(t, godbc.IsKind(err, godbc.ErrTypeConversion))
}

func TestString(t *testing.T) {
	s, err := String(&sql.NullString{String: "Bob", Valid: true})
	assert.Nil(t, err)
	assert.Equal(t, "Bob", *s)

	s, err = String(&sql.NullString{})
	assert.Nil(t, err)
	assert.Nil(t, s)

	raw := []byte("bytes")
	s, err = String(&raw)
	assert.Nil(t, err)
	assert.Equal(t, "bytes", *s)
}

func TestBytes(t *testing.T) {
	raw := []byte{1, 2, 3}
	b, err := Bytes(&raw)
	assert.Nil(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	// The returned slice is a copy.
	b[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, raw)

	var nilRaw []byte
	b, err = Bytes(&nilRaw)
	assert.Nil(t, err)
	assert.Nil(t, b)
}

// A NULL cell is absent from every accessor, even one of the wrong kind.
func TestNull_absentFromEveryAccessor(t *testing.T) {
	h := &sql.NullInt64{}

	s, err := String(h)
	assert.Nil(t, err)
	assert.Nil(t, s)

	b, err := Bool(h)
	assert.Nil(t, err)
	assert.Nil(t, b)

	f, err := Float64(h)
	assert.Nil(t, err)
	assert.Nil(t, f)

	ts, err := Time(h)
	assert.Nil(t, err)
	assert.Nil(t, ts)
}

func TestTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ts, err := Time(&sql.NullTime{Time: now, Valid: true})
	assert.Nil(t, err)
	assert.Equal(t, now, *ts)

	ts, err = Time(&sql.NullTime{})
	assert.Nil(t, err)
	assert.Nil(t, ts)

	_, err = Time(&sql.NullInt64{Int64: 1, Valid: true})
	assert.True(t, godbc.IsKind(err, godbc.ErrTypeConversion))
}
