// Package sqlite implements the godbc contract over the mattn/go-sqlite3
// client library. It is the reference adapter: everything it needs from an
// engine is expressed through the contract, and the contract tests run
// against it with an in-memory database.
//
// # Usage
//
//	import (
//	    "github.com/eatonphil/godbc"
//	    _ "github.com/eatonphil/godbc/adapter/sqlite"
//	)
//
//	conn, err := godbc.Connect(ctx, "sqlite", ":memory:")
package sqlite
