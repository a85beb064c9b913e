// Package sqladapter implements the godbc contract over database/sql. The
// per-engine adapter packages supply a Backend descriptor (native driver
// name, placeholder dialect, column type mapping) and this package does the
// rest: placeholder rewriting, parameter-count checks, metadata buffering
// and row scanning.
package sqladapter

import (
	"context"
	"database/sql"
	"time"

	"github.com/eatonphil/godbc"
	"github.com/eatonphil/godbc/internal/coerce"
)

// Backend describes one engine family to the adapter core.
type Backend struct {
	// DriverName is the database/sql driver to open.
	DriverName string

	// Dialect drives placeholder rewriting for this engine.
	Dialect godbc.Dialect

	// MapType converts a native column type name into the canonical
	// DataType. It must be total over the types the adapter claims to
	// support; an unmapped name is an ErrUnsupportedType error.
	MapType func(databaseTypeName string) (godbc.DataType, error)
}

// Connect opens one native session and wraps it in the contract.
func Connect(ctx context.Context, b Backend, url string, cfg *godbc.Config) (godbc.Connection, error) {
	if cfg == nil {
		cfg = godbc.DefaultConfig()
	}

	db, err := sql.Open(b.DriverName, url)
	if err != nil {
		return nil, godbc.WrapError(godbc.ErrConnection, err, "open %s connection", b.Dialect.Name)
	}

	// A Connection owns exactly one underlying native session.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, godbc.WrapError(godbc.ErrConnection, err, "connect to %s", b.Dialect.Name)
	}

	cfg.Logger.Debug("connected", "dialect", b.Dialect.Name)
	return &Conn{backend: b, db: db, cfg: cfg}, nil
}

// Conn is one live session. Not safe for concurrent use. The native
// session belongs to the open cursor: while a ResultSet is live, other
// statements on this connection fail instead of queueing behind it.
type Conn struct {
	backend Backend
	db      *sql.DB
	cfg     *godbc.Config
	closed  bool
	active  *Rows
}

func (c *Conn) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.QueryTimeout > 0 {
		return context.WithTimeout(ctx, c.cfg.QueryTimeout)
	}
	return ctx, func() {}
}

// Create builds a statement whose SQL the backend validates at execution
// time. The placeholder rewrite still runs now, so malformed SQL text is
// caught here.
func (c *Conn) Create(_ context.Context, sqlText string) (godbc.Statement, error) {
	if c.closed {
		return nil, godbc.NewError(godbc.ErrConnection, "connection is closed")
	}

	rewritten, nparams, err := godbc.RewritePositional(c.backend.Dialect, sqlText)
	if err != nil {
		return nil, err
	}

	c.cfg.Logger.Debug("create statement", "sql", sqlText, "params", nparams)
	return &Stmt{conn: c, raw: sqlText, sql: rewritten, nparams: nparams}, nil
}

// Prepare asks the backend to parse and plan the statement immediately,
// failing fast on syntax errors. Substitution dialects cannot plan ahead
// of knowing the values, so for them Prepare degrades to Create.
func (c *Conn) Prepare(ctx context.Context, sqlText string) (godbc.Statement, error) {
	if c.closed {
		return nil, godbc.NewError(godbc.ErrConnection, "connection is closed")
	}
	if c.active != nil {
		return nil, godbc.NewError(godbc.ErrStatement, "cannot prepare while a result set is open on this connection")
	}

	rewritten, nparams, err := godbc.RewritePositional(c.backend.Dialect, sqlText)
	if err != nil {
		return nil, err
	}

	stmt := &Stmt{conn: c, raw: sqlText, sql: rewritten, nparams: nparams}
	if c.backend.Dialect.Placeholders == godbc.Substitution {
		c.cfg.Logger.Debug("prepare deferred to execution", "sql", sqlText)
		return stmt, nil
	}

	opCtx, cancel := c.opContext(ctx)
	defer cancel()
	native, err := c.db.PrepareContext(opCtx, rewritten)
	if err != nil {
		return nil, godbc.WrapError(godbc.ErrStatement, err, "prepare statement")
	}

	c.cfg.Logger.Debug("prepared statement", "sql", sqlText, "params", nparams)
	stmt.prepared = native
	return stmt, nil
}

func (c *Conn) Ping(ctx context.Context) error {
	if c.closed {
		return godbc.NewError(godbc.ErrConnection, "connection is closed")
	}
	opCtx, cancel := c.opContext(ctx)
	defer cancel()
	if err := c.db.PingContext(opCtx); err != nil {
		return godbc.WrapError(godbc.ErrConnection, err, "ping")
	}
	return nil
}

func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.db.Close(); err != nil {
		return godbc.WrapError(godbc.ErrConnection, err, "close connection")
	}
	return nil
}

// Stmt is a statement bound to its parent Conn for its lifetime. At most
// one ResultSet produced by a Stmt is live at a time: each execution
// invalidates the previous cursor.
type Stmt struct {
	conn     *Conn
	raw      string // canonical placeholder form, kept for substitution dialects
	sql      string // dialect-rewritten form
	nparams  int
	prepared *sql.Stmt
	last     *Rows
}

func (s *Stmt) check(supplied int) error {
	if s.conn.closed {
		return godbc.NewError(godbc.ErrStatement, "statement used after connection close")
	}
	if s.conn.active != nil && s.conn.active != s.last {
		return godbc.NewError(godbc.ErrStatement, "another statement holds an open result set on this connection")
	}
	return godbc.CheckParamCount(s.nparams, supplied)
}

func (s *Stmt) invalidateLast() {
	if s.last != nil {
		s.last.Close()
		s.last = nil
	}
}

func (s *Stmt) ExecuteQuery(ctx context.Context, params ...godbc.Value) (godbc.ResultSet, error) {
	if err := s.check(len(params)); err != nil {
		return nil, err
	}
	s.invalidateLast()

	opCtx, cancel := s.conn.opContext(ctx)

	var rows *sql.Rows
	var err error
	switch {
	case s.conn.backend.Dialect.Placeholders == godbc.Substitution:
		spliced, serr := godbc.RewriteLiteral(s.conn.backend.Dialect, s.raw, params)
		if serr != nil {
			cancel()
			return nil, serr
		}
		rows, err = s.conn.db.QueryContext(opCtx, spliced)
	case s.prepared != nil:
		rows, err = s.prepared.QueryContext(opCtx, godbc.NativeArgs(params)...)
	default:
		rows, err = s.conn.db.QueryContext(opCtx, s.sql, godbc.NativeArgs(params)...)
	}
	if err != nil {
		cancel()
		return nil, godbc.WrapError(godbc.ErrBackend, err, "execute query")
	}

	meta, holders, err := describe(s.conn.backend, rows)
	if err != nil {
		rows.Close()
		cancel()
		return nil, err
	}

	rs := &Rows{conn: s.conn, rows: rows, meta: meta, holders: holders, cancel: cancel}
	s.last = rs
	s.conn.active = rs
	return rs, nil
}

func (s *Stmt) ExecuteUpdate(ctx context.Context, params ...godbc.Value) (uint64, error) {
	if err := s.check(len(params)); err != nil {
		return 0, err
	}
	s.invalidateLast()

	opCtx, cancel := s.conn.opContext(ctx)
	defer cancel()

	var res sql.Result
	var err error
	switch {
	case s.conn.backend.Dialect.Placeholders == godbc.Substitution:
		spliced, serr := godbc.RewriteLiteral(s.conn.backend.Dialect, s.raw, params)
		if serr != nil {
			return 0, serr
		}
		res, err = s.conn.db.ExecContext(opCtx, spliced)
	case s.prepared != nil:
		res, err = s.prepared.ExecContext(opCtx, godbc.NativeArgs(params)...)
	default:
		res, err = s.conn.db.ExecContext(opCtx, s.sql, godbc.NativeArgs(params)...)
	}
	if err != nil {
		return 0, godbc.WrapError(godbc.ErrBackend, err, "execute update")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, godbc.WrapError(godbc.ErrBackend, err, "affected row count")
	}
	return uint64(n), nil
}

func (s *Stmt) Close() error {
	s.invalidateLast()
	if s.prepared != nil {
		if err := s.prepared.Close(); err != nil {
			return godbc.WrapError(godbc.ErrStatement, err, "close statement")
		}
		s.prepared = nil
	}
	return nil
}

// describe buffers the native column descriptors so metadata queries can
// be answered before the first row is fetched, and picks scan holders by
// canonical type.
func describe(b Backend, rows *sql.Rows) (godbc.Columns, []any, error) {
	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, godbc.WrapError(godbc.ErrBackend, err, "column metadata")
	}

	cols := make(godbc.Columns, len(cts))
	types := make([]godbc.DataType, len(cts))
	for i, ct := range cts {
		dt, err := b.MapType(ct.DatabaseTypeName())
		if err != nil {
			return nil, nil, err
		}
		cols[i] = godbc.NewColumn(ct.Name(), dt)
		types[i] = dt
	}

	return cols, coerce.Holders(types), nil
}

// Rows is a forward-only cursor over a native result.
type Rows struct {
	conn       *Conn
	rows       *sql.Rows
	meta       godbc.Columns
	holders    []any
	cancel     context.CancelFunc
	positioned bool
	done       bool
	scanErr    error
}

// release gives the native session back to the connection once the cursor
// is exhausted or closed.
func (r *Rows) release() {
	if r.conn.active == r {
		r.conn.active = nil
	}
}

func (r *Rows) MetaData() (godbc.ResultSetMetaData, error) {
	return r.meta, nil
}

// Next advances the cursor. Once the rows are exhausted, or a scan fails,
// it keeps returning false; the failure, if any, surfaces through the
// accessors.
func (r *Rows) Next() bool {
	if r.done {
		return false
	}
	if !r.rows.Next() {
		r.done = true
		r.positioned = false
		r.release()
		if err := r.rows.Err(); err != nil {
			r.scanErr = godbc.WrapError(godbc.ErrBackend, err, "advance cursor")
		}
		return false
	}
	if err := r.rows.Scan(r.holders...); err != nil {
		r.done = true
		r.positioned = false
		r.release()
		r.scanErr = godbc.WrapError(godbc.ErrBackend, err, "scan row")
		return false
	}
	r.positioned = true
	return true
}

// holder returns the scan cell for column i, or nil when the cursor is not
// positioned on a row. Accessors map the nil holder to an absent value.
func (r *Rows) holder(i int) (any, error) {
	if r.scanErr != nil {
		return nil, r.scanErr
	}
	if !r.positioned {
		return nil, nil
	}
	if i < 0 || i >= len(r.holders) {
		return nil, godbc.NewError(godbc.ErrStatement, "column index %d out of range for %d columns", i, len(r.holders))
	}
	return r.holders[i], nil
}

func (r *Rows) GetBool(i int) (*bool, error) {
	h, err := r.holder(i)
	if h == nil || err != nil {
		return nil, err
	}
	return coerce.Bool(h)
}

func (r *Rows) GetInt32(i int) (*int32, error) {
	h, err := r.holder(i)
	if h == nil || err != nil {
		return nil, err
	}
	return coerce.Int32(h)
}

func (r *Rows) GetUInt32(i int) (*uint32, error) {
	h, err := r.holder(i)
	if h == nil || err != nil {
		return nil, err
	}
	return coerce.UInt32(h)
}

func (r *Rows) GetInt64(i int) (*int64, error) {
	h, err := r.holder(i)
	if h == nil || err != nil {
		return nil, err
	}
	return coerce.Int64(h)
}

func (r *Rows) GetFloat64(i int) (*float64, error) {
	h, err := r.holder(i)
	if h == nil || err != nil {
		return nil, err
	}
	return coerce.Float64(h)
}

func (r *Rows) GetString(i int) (*string, error) {
	h, err := r.holder(i)
	if h == nil || err != nil {
		return nil, err
	}
	return coerce.String(h)
}

func (r *Rows) GetBytes(i int) ([]byte, error) {
	h, err := r.holder(i)
	if h == nil || err != nil {
		return nil, err
	}
	return coerce.Bytes(h)
}

func (r *Rows) GetTime(i int) (*time.Time, error) {
	h, err := r.holder(i)
	if h == nil || err != nil {
		return nil, err
	}
	return coerce.Time(h)
}

func (r *Rows) Close() error {
	r.done = true
	r.positioned = false
	r.release()
	r.cancel()
	if err := r.rows.Close(); err != nil {
		return godbc.WrapError(godbc.ErrBackend, err, "close result set")
	}
	return nil
}
