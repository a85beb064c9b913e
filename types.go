package godbc

// DataType is the canonical enumeration of column kinds. Every backend
// adapter must map each native column type it claims to support onto
// exactly one DataType; an unmapped native type is a configuration error
// surfaced as ErrUnsupportedType, never a silent default.
type DataType uint

const (
	// Bool is used for columns holding boolean data.
	Bool DataType = iota
	// Byte is used for 8-bit integer columns.
	Byte
	// Short is used for 16-bit integer columns.
	Short
	// Integer is used for 32-bit and wider integer columns.
	Integer
	// Float is used for single-precision floating point columns.
	Float
	// Double is used for double-precision floating point columns.
	Double
	// Decimal is used for exact numeric columns.
	Decimal
	// Date is used for calendar date columns.
	Date
	// Time is used for time-of-day columns.
	Time
	// Datetime is used for combined date and time columns.
	Datetime
	// Utf8 is used for columns holding textual data.
	Utf8
	// Binary is used for columns holding raw bytes.
	Binary
)

func (t DataType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case Byte:
		return "Byte"
	case Short:
		return "Short"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case Decimal:
		return "Decimal"
	case Date:
		return "Date"
	case Time:
		return "Time"
	case Datetime:
		return "Datetime"
	case Utf8:
		return "Utf8"
	case Binary:
		return "Binary"
	default:
		return "Error"
	}
}

// Column contains the metadata of one projected column.
type Column struct {
	Name string
	Type DataType
}

// NewColumn creates column metadata.
func NewColumn(name string, t DataType) Column {
	return Column{Name: name, Type: t}
}

// ResultSetMetaData describes the shape of a result set: an ordered
// sequence of columns matching the query's select-list order. Indexes are
// 0-based. Metadata is available before the first row advance and does not
// change while the cursor moves.
type ResultSetMetaData interface {
	NumColumns() int
	ColumnName(i int) (string, error)
	ColumnType(i int) (DataType, error)
}

// Columns implements ResultSetMetaData directly for a column slice.
type Columns []Column

func (c Columns) NumColumns() int {
	return len(c)
}

func (c Columns) ColumnName(i int) (string, error) {
	if i < 0 || i >= len(c) {
		return "", NewError(ErrStatement, "column index %d out of range for %d columns", i, len(c))
	}
	return c[i].Name, nil
}

func (c Columns) ColumnType(i int) (DataType, error) {
	if i < 0 || i >= len(c) {
		return 0, NewError(ErrStatement, "column index %d out of range for %d columns", i, len(c))
	}
	return c[i].Type, nil
}
