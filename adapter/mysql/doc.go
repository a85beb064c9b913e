// Package mysql implements the godbc contract over the
// go-sql-driver/mysql client library. The engine accepts the canonical `?`
// placeholder natively, so the dialect leaves statements untouched.
//
// # Usage
//
//	import (
//	    "github.com/eatonphil/godbc"
//	    _ "github.com/eatonphil/godbc/adapter/mysql"
//	)
//
//	conn, err := godbc.Connect(ctx, "mysql", "user:pass@tcp(localhost:3306)/db?parseTime=true")
package mysql
