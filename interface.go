package godbc

import (
	"context"
	"time"
)

// Driver is a process-wide factory that opens Connections for one backend
// family. Drivers are stateless beyond configuration and safe for
// concurrent use.
type Driver interface {
	// Connect opens one session to the database identified by url. The
	// URL format is opaque to this layer and passes through verbatim to
	// the native client library. Connection failures are reported, never
	// retried internally.
	Connect(ctx context.Context, url string) (Connection, error)
}

// Connection is one live session to a database instance. A Connection is
// not safe for concurrent use from multiple goroutines without external
// mutual exclusion: it owns a single native session.
//
// Close a Connection only after every Statement and ResultSet it produced
// has been closed.
type Connection interface {
	// Create builds a Statement whose SQL is validated by the backend at
	// execution time.
	Create(ctx context.Context, sql string) (Statement, error)

	// Prepare asks the backend to parse and plan the statement now,
	// failing fast on syntax errors. The prepared statement binds
	// parameter slots on each execution.
	Prepare(ctx context.Context, sql string) (Statement, error)

	// Ping verifies the session is alive.
	Ping(ctx context.Context) error

	Close() error
}

// Statement is a SQL command bound to a Connection, reusable across
// executions. SQL uses the canonical `?` placeholder syntax; the
// statement's dialect rewrite runs before anything reaches the backend.
//
// A Statement produces at most one live ResultSet at a time: starting a
// new execution invalidates the cursor of the previous ResultSet.
type Statement interface {
	// ExecuteQuery runs a statement expected to return rows. A mismatch
	// between the placeholder count and len(params) is an
	// ErrParameterCount error raised before any native call.
	ExecuteQuery(ctx context.Context, params ...Value) (ResultSet, error)

	// ExecuteUpdate runs a statement expected to modify rows and returns
	// the number of affected rows.
	ExecuteUpdate(ctx context.Context, params ...Value) (uint64, error)

	Close() error
}

// ResultSet is a forward-only, single-pass cursor over the rows produced
// by a query. Accessors read the row the cursor currently points to;
// before the first Next, and after Next has returned false, every accessor
// yields an absent value rather than failing.
//
// Column indexes are 0-based. A nil result from a typed accessor means SQL
// NULL or an unpositioned cursor; a value the backend cannot coerce to the
// requested kind is an ErrTypeConversion error, never a silent truncation.
type ResultSet interface {
	// MetaData describes the result shape. It may be called at any point
	// before or during iteration without disturbing the cursor.
	MetaData() (ResultSetMetaData, error)

	// Next advances to the next row and reports whether one exists. Once
	// it returns false it keeps returning false; the cursor never rewinds.
	Next() bool

	GetBool(i int) (*bool, error)
	GetInt32(i int) (*int32, error)
	GetUInt32(i int) (*uint32, error)
	GetInt64(i int) (*int64, error)
	GetFloat64(i int) (*float64, error)
	GetString(i int) (*string, error)
	GetBytes(i int) ([]byte, error)
	GetTime(i int) (*time.Time, error)

	Close() error
}
