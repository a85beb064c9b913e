package mysql

import (
	"context"
	"strings"

	"github.com/eatonphil/godbc"
	"github.com/eatonphil/godbc/internal/sqladapter"

	_ "github.com/go-sql-driver/mysql" // native client library
)

// Dialect for the MySQL family: the engine binds positionally against the
// canonical `?` sentinel. Identifiers quote with backticks.
var Dialect = godbc.Dialect{
	Name:                "mysql",
	Placeholders:        godbc.Question,
	BacktickIdentifiers: true,
}

func init() {
	godbc.Register("mysql", NewDriver())
}

// Driver opens MySQL connections. The connection URL passes through to
// go-sql-driver/mysql unchanged; DSNs should carry parseTime=true so
// date and time columns scan as timestamps.
type Driver struct {
	cfg *godbc.Config
}

// NewDriver creates a MySQL driver with the given options.
func NewDriver(opts ...godbc.Option) *Driver {
	return &Driver{cfg: godbc.NewConfig(opts...)}
}

func (d *Driver) Connect(ctx context.Context, url string) (godbc.Connection, error) {
	return sqladapter.Connect(ctx, sqladapter.Backend{
		DriverName: "mysql",
		Dialect:    Dialect,
		MapType:    mapType,
	}, url, d.cfg)
}

// mysqlTypes maps the type names go-sql-driver/mysql reports onto
// canonical types. YEAR is deliberately absent: it has no canonical kind,
// so it is rejected rather than silently widened.
var mysqlTypes = map[string]godbc.DataType{
	"TINYINT":    godbc.Byte,
	"SMALLINT":   godbc.Short,
	"MEDIUMINT":  godbc.Integer,
	"INT":        godbc.Integer,
	"BIGINT":     godbc.Integer,
	"FLOAT":      godbc.Float,
	"DOUBLE":     godbc.Double,
	"DECIMAL":    godbc.Decimal,
	"CHAR":       godbc.Utf8,
	"VARCHAR":    godbc.Utf8,
	"TINYTEXT":   godbc.Utf8,
	"TEXT":       godbc.Utf8,
	"MEDIUMTEXT": godbc.Utf8,
	"LONGTEXT":   godbc.Utf8,
	"JSON":       godbc.Utf8,
	"BINARY":     godbc.Binary,
	"VARBINARY":  godbc.Binary,
	"TINYBLOB":   godbc.Binary,
	"BLOB":       godbc.Binary,
	"MEDIUMBLOB": godbc.Binary,
	"LONGBLOB":   godbc.Binary,
	"BIT":        godbc.Bool,
	"DATE":       godbc.Date,
	"TIME":       godbc.Time,
	"DATETIME":   godbc.Datetime,
	"TIMESTAMP":  godbc.Datetime,
}

func mapType(name string) (godbc.DataType, error) {
	// The driver reports unsigned columns as e.g. "UNSIGNED INT".
	base := strings.TrimPrefix(name, "UNSIGNED ")

	if dt, ok := mysqlTypes[base]; ok {
		return dt, nil
	}
	return 0, godbc.NewError(godbc.ErrUnsupportedType, "mysql type %q has no canonical mapping", name)
}
