package sqlite

import (
	"context"
	"strings"

	"github.com/eatonphil/godbc"
	"github.com/eatonphil/godbc/internal/sqladapter"

	_ "github.com/mattn/go-sqlite3" // native client library
)

// Dialect for the SQLite family: the engine binds positionally against the
// canonical `?` sentinel, so placeholders pass through untouched. SQLite
// also accepts backtick-quoted identifiers.
var Dialect = godbc.Dialect{
	Name:                "sqlite",
	Placeholders:        godbc.Question,
	BacktickIdentifiers: true,
}

func init() {
	godbc.Register("sqlite", NewDriver())
}

// Driver opens SQLite connections. The connection URL passes through to
// go-sqlite3 unchanged: a file path, a file: URI, or ":memory:".
type Driver struct {
	cfg *godbc.Config
}

// NewDriver creates a SQLite driver with the given options.
func NewDriver(opts ...godbc.Option) *Driver {
	return &Driver{cfg: godbc.NewConfig(opts...)}
}

func (d *Driver) Connect(ctx context.Context, url string) (godbc.Connection, error) {
	return sqladapter.Connect(ctx, sqladapter.Backend{
		DriverName: "sqlite3",
		Dialect:    Dialect,
		MapType:    mapType,
	}, url, d.cfg)
}

// declTypes maps SQLite declared column types onto canonical types. SQLite
// reports whatever type name the table declared, so the table covers the
// standard affinity spellings; a declared type outside it is rejected, not
// defaulted.
var declTypes = map[string]godbc.DataType{
	// Expression columns carry no declared type; sqlite's own fallback
	// affinity for those is text.
	"":                 godbc.Utf8,
	"BOOL":             godbc.Bool,
	"BOOLEAN":          godbc.Bool,
	"TINYINT":          godbc.Byte,
	"SMALLINT":         godbc.Short,
	"INT2":             godbc.Short,
	"MEDIUMINT":        godbc.Integer,
	"INT":              godbc.Integer,
	"INTEGER":          godbc.Integer,
	"BIGINT":           godbc.Integer,
	"INT8":             godbc.Integer,
	"FLOAT":            godbc.Float,
	"REAL":             godbc.Double,
	"DOUBLE":           godbc.Double,
	"DOUBLE PRECISION": godbc.Double,
	"NUMERIC":          godbc.Decimal,
	"DECIMAL":          godbc.Decimal,
	"CHAR":             godbc.Utf8,
	"CHARACTER":        godbc.Utf8,
	"NCHAR":            godbc.Utf8,
	"VARCHAR":          godbc.Utf8,
	"NVARCHAR":         godbc.Utf8,
	"TEXT":             godbc.Utf8,
	"CLOB":             godbc.Utf8,
	"BLOB":             godbc.Binary,
	"DATE":             godbc.Date,
	"TIME":             godbc.Time,
	"DATETIME":         godbc.Datetime,
	"TIMESTAMP":        godbc.Datetime,
}

func mapType(name string) (godbc.DataType, error) {
	base := name
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}
	base = strings.ToUpper(strings.TrimSpace(base))

	if dt, ok := declTypes[base]; ok {
		return dt, nil
	}
	return 0, godbc.NewError(godbc.ErrUnsupportedType, "sqlite type %q has no canonical mapping", name)
}
