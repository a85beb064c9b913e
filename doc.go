// Package godbc provides a database-agnostic connectivity API in the
// spirit of ODBC and JDBC: a small set of contracts (Driver, Connection,
// Statement, ResultSet) that let calling code issue SQL against
// heterogeneous relational backends through one uniform surface.
//
// Callers write SQL with a canonical placeholder syntax, a single `?` per
// bind position. A tokenizer-based rewriter translates that syntax into
// each backend's native bound-parameter form (`$1` for Postgres, `?` for
// MySQL and SQLite) without ever touching placeholder-like characters
// inside string literals, quoted identifiers or comments.
//
// # Basic Usage
//
//	import (
//	    "github.com/eatonphil/godbc"
//	    _ "github.com/eatonphil/godbc/adapter/sqlite"
//	)
//
//	conn, err := godbc.Connect(ctx, "sqlite", ":memory:")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	stmt, err := conn.Prepare(ctx, "SELECT a FROM test WHERE a = ?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stmt.Close()
//
//	rs, err := stmt.ExecuteQuery(ctx, godbc.NewInt32Value(123))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rs.Close()
//
//	for rs.Next() {
//	    a, err := rs.GetInt32(0)
//	    ...
//	}
//
// # Concurrency
//
// A Driver is safe to share across goroutines. A Connection owns one
// native session and must be confined to one goroutine or guarded by an
// external lock. Statements and ResultSets borrow their Connection and
// must be closed before it.
//
// # Errors
//
// Every fallible operation returns a *godbc.Error carrying an ErrorKind;
// nothing is retried inside this layer. SQL NULL is represented as an
// absent value (nil pointer), never as an error.
package godbc
