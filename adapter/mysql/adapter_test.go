package mysql

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eatonphil/godbc"
)

func TestDialect(t *testing.T) {
	assert.Equal(t, godbc.Question, Dialect.Placeholders)
	assert.True(t, Dialect.BacktickIdentifiers)
}

// The engine binds `?` natively, so rewriting only validates and counts.
func TestRewrite(t *testing.T) {
	sql := "SELECT `a` FROM `t` WHERE b = ? -- trailing ?"
	rewritten, n, err := godbc.RewritePositional(Dialect, sql)
	assert.Nil(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, sql, rewritten)
}

func TestMapType(t *testing.T) {
	tests := []struct {
		name string
		want godbc.DataType
	}{
		{"TINYINT", godbc.Byte},
		{"SMALLINT", godbc.Short},
		{"MEDIUMINT", godbc.Integer},
		{"INT", godbc.Integer},
		{"BIGINT", godbc.Integer},
		{"UNSIGNED INT", godbc.Integer},
		{"UNSIGNED BIGINT", godbc.Integer},
		{"FLOAT", godbc.Float},
		{"DOUBLE", godbc.Double},
		{"DECIMAL", godbc.Decimal},
		{"VARCHAR", godbc.Utf8},
		{"LONGTEXT", godbc.Utf8},
		{"JSON", godbc.Utf8},
		{"VARBINARY", godbc.Binary},
		{"LONGBLOB", godbc.Binary},
		{"BIT", godbc.Bool},
		{"DATE", godbc.Date},
		{"TIME", godbc.Time},
		{"DATETIME", godbc.Datetime},
		{"TIMESTAMP", godbc.Datetime},
	}

	for _, test := range tests {
		got, err := mapType(test.name)
		assert.Nil(t, err, test.name)
		assert.Equal(t, test.want, got, test.name)
	}
}

func TestMapType_unmapped(t *testing.T) {
	// YEAR has no canonical kind.
	_, err := mapType("YEAR")
	assert.True(t, godbc.IsKind(err, godbc.ErrUnsupportedType))

	_, err = mapType("GEOMETRY")
	assert.True(t, godbc.IsKind(err, godbc.ErrUnsupportedType))
}

// Runs against a live server when GODBC_MYSQL_URL is set, e.g.
// "root:password@tcp(localhost:3306)/test?parseTime=true".
func TestIntegration(t *testing.T) {
	url := os.Getenv("GODBC_MYSQL_URL")
	if url == "" {
		t.Skip("GODBC_MYSQL_URL not set")
	}

	ctx := context.Background()
	conn, err := NewDriver().Connect(ctx, url)
	require.Nil(t, err)
	defer conn.Close()

	require.Nil(t, conn.Ping(ctx))

	for _, sql := range []string{
		"DROP TABLE IF EXISTS godbc_test",
		"CREATE TABLE godbc_test (a INT NOT NULL, b VARCHAR(32))",
	} {
		stmt, err := conn.Create(ctx, sql)
		require.Nil(t, err)
		_, err = stmt.ExecuteUpdate(ctx)
		require.Nil(t, err)
		stmt.Close()
	}

	insert, err := conn.Prepare(ctx, "INSERT INTO godbc_test (a, b) VALUES (?, ?)")
	require.Nil(t, err)
	n, err := insert.ExecuteUpdate(ctx, godbc.NewInt32Value(123), godbc.NewUtf8Value("hello"))
	require.Nil(t, err)
	assert.Equal(t, uint64(1), n)
	insert.Close()

	query, err := conn.Prepare(ctx, "SELECT a, b FROM godbc_test WHERE a = ?")
	require.Nil(t, err)
	defer query.Close()

	rs, err := query.ExecuteQuery(ctx, godbc.NewInt32Value(123))
	require.Nil(t, err)
	defer rs.Close()

	require.True(t, rs.Next())
	a, err := rs.GetInt32(0)
	require.Nil(t, err)
	assert.Equal(t, int32(123), *a)
	b, err := rs.GetString(1)
	require.Nil(t, err)
	assert.Equal(t, "hello", *b)

	assert.False(t, rs.Next())
}
