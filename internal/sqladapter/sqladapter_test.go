package sqladapter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"

	"github.com/eatonphil/godbc"
)

// A substitution dialect has no native bind protocol: values splice into
// the SQL text as literals at execution time. sqlite serves as the engine
// underneath, it executes the spliced text like any other statement.
var substDialect = godbc.Dialect{Name: "subst", Placeholders: godbc.Substitution}

func substMapType(name string) (godbc.DataType, error) {
	switch strings.ToUpper(name) {
	case "INTEGER":
		return godbc.Integer, nil
	case "", "TEXT":
		return godbc.Utf8, nil
	}
	return 0, godbc.NewError(godbc.ErrUnsupportedType, "type %q has no canonical mapping", name)
}

func substConnect(t *testing.T) godbc.Connection {
	t.Helper()
	conn, err := Connect(context.Background(), Backend{
		DriverName: "sqlite3",
		Dialect:    substDialect,
		MapType:    substMapType,
	}, ":memory:", nil)
	require.Nil(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestSubstitution_roundTrip(t *testing.T) {
	ctx := context.Background()
	conn := substConnect(t)

	stmt, err := conn.Create(ctx, "CREATE TABLE test (a INTEGER, b TEXT)")
	require.Nil(t, err)
	_, err = stmt.ExecuteUpdate(ctx)
	require.Nil(t, err)
	stmt.Close()

	insert, err := conn.Create(ctx, "INSERT INTO test (a, b) VALUES (?, ?)")
	require.Nil(t, err)
	defer insert.Close()

	// Quote doubling in the splice must survive the engine.
	n, err := insert.ExecuteUpdate(ctx, godbc.NewInt32Value(123), godbc.NewUtf8Value("it's Bob"))
	require.Nil(t, err)
	assert.Equal(t, uint64(1), n)

	query, err := conn.Prepare(ctx, "SELECT b FROM test WHERE a = ?")
	require.Nil(t, err)
	defer query.Close()

	rs, err := query.ExecuteQuery(ctx, godbc.NewInt32Value(123))
	require.Nil(t, err)
	defer rs.Close()

	require.True(t, rs.Next())
	b, err := rs.GetString(0)
	require.Nil(t, err)
	assert.Equal(t, "it's Bob", *b)
}

func TestSubstitution_paramCountMismatch(t *testing.T) {
	ctx := context.Background()
	conn := substConnect(t)

	stmt, err := conn.Create(ctx, "SELECT ? + ?")
	require.Nil(t, err)
	defer stmt.Close()

	_, err = stmt.ExecuteQuery(ctx, godbc.NewInt32Value(1))
	assert.True(t, godbc.IsKind(err, godbc.ErrParameterCount))

	_, err = stmt.ExecuteUpdate(ctx, godbc.NewInt32Value(1), godbc.NewInt32Value(2), godbc.NewInt32Value(3))
	assert.True(t, godbc.IsKind(err, godbc.ErrParameterCount))
}

// Without a bind protocol there is nothing to plan ahead of the values, so
// Prepare defers validation to execution the way Create does.
func TestSubstitution_prepareDefersValidation(t *testing.T) {
	ctx := context.Background()
	conn := substConnect(t)

	stmt, err := conn.Prepare(ctx, "SELECT FROM WHERE")
	require.Nil(t, err)
	defer stmt.Close()

	_, err = stmt.ExecuteQuery(ctx)
	assert.True(t, godbc.IsKind(err, godbc.ErrBackend))
}

// A placeholder inside a string literal is not a splice position.
func TestSubstitution_literalUntouched(t *testing.T) {
	ctx := context.Background()
	conn := substConnect(t)

	stmt, err := conn.Create(ctx, "SELECT '?', ?")
	require.Nil(t, err)
	defer stmt.Close()

	rs, err := stmt.ExecuteQuery(ctx, godbc.NewUtf8Value("bound"))
	require.Nil(t, err)
	defer rs.Close()

	require.True(t, rs.Next())
	literal, err := rs.GetString(0)
	require.Nil(t, err)
	assert.Equal(t, "?", *literal)
	bound, err := rs.GetString(1)
	require.Nil(t, err)
	assert.Equal(t, "bound", *bound)
}
