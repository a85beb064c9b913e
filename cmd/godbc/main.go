package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/olekukonko/tablewriter"

	"github.com/eatonphil/godbc"
	"github.com/eatonphil/godbc/adapter/mysql"
	"github.com/eatonphil/godbc/adapter/postgres"
	"github.com/eatonphil/godbc/adapter/sqlite"
)

func main() {
	driverName := flag.String("driver", "", "driver name (sqlite, postgres, mysql)")
	url := flag.String("url", "", "database connection URL")
	verbose := flag.Bool("verbose", false, "log driver diagnostics to stderr")
	flag.Parse()

	if *driverName == "" || *url == "" {
		fmt.Fprintf(os.Stderr, "usage: godbc -driver <%s> -url <connection-url>\n", strings.Join(godbc.Drivers(), "|"))
		os.Exit(1)
	}

	var opts []godbc.Option
	if *verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, godbc.WithLogger(godbc.SlogLogger{L: slog.New(handler)}))
	}

	var driver godbc.Driver
	switch *driverName {
	case "sqlite":
		driver = sqlite.NewDriver(opts...)
	case "postgres":
		driver = postgres.NewDriver(opts...)
	case "mysql":
		driver = mysql.NewDriver(opts...)
	default:
		fmt.Fprintf(os.Stderr, "invalid driver %q (have: %s)\n", *driverName, strings.Join(godbc.Drivers(), ", "))
		os.Exit(1)
	}

	ctx := context.Background()
	fmt.Printf("Connecting to %s with url: %s\n", *driverName, *url)
	conn, err := driver.Connect(ctx, *url)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer conn.Close()

	runRepl(ctx, conn)
}

func runRepl(ctx context.Context, conn godbc.Connection) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     filepath.Join(os.TempDir(), "godbc_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer l.Close()

	fmt.Println("Welcome to godbc.")

	var query strings.Builder
repl:
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if query.Len() == 0 && len(line) == 0 {
				break
			}
			query.Reset()
			continue repl
		} else if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Println("Error while reading line:", err)
			continue repl
		}

		trimmed := strings.TrimSpace(line)
		if query.Len() == 0 {
			if trimmed == "" {
				continue repl
			}
			if trimmed == "quit" || trimmed == "exit" || trimmed == `\q` {
				break
			}
		}

		// Statements accumulate until a line ends with a semicolon.
		query.WriteString(line)
		if !strings.HasSuffix(trimmed, ";") {
			query.WriteString(" ")
			continue repl
		}

		sqlText := query.String()
		query.Reset()

		// A bad statement must not kill the session.
		if err := execute(ctx, conn, sqlText); err != nil {
			fmt.Println("Error:", err)
			continue repl
		}
	}
}

func execute(ctx context.Context, conn godbc.Connection, sqlText string) error {
	stmt, err := conn.Create(ctx, sqlText)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if !returnsRows(sqlText) {
		n, err := stmt.ExecuteUpdate(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("(%d rows affected)\n", n)
		return nil
	}

	rs, err := stmt.ExecuteQuery(ctx)
	if err != nil {
		return err
	}
	defer rs.Close()

	return render(rs)
}

func returnsRows(sqlText string) bool {
	fields := strings.Fields(strings.ToLower(sqlText))
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "select", "values", "with", "show", "explain", "pragma", "describe", "table":
		return true
	}
	return false
}

func render(rs godbc.ResultSet) error {
	meta, err := rs.MetaData()
	if err != nil {
		return err
	}

	header := []string{}
	for i := 0; i < meta.NumColumns(); i++ {
		name, err := meta.ColumnName(i)
		if err != nil {
			return err
		}
		header = append(header, name)
	}

	rows := [][]string{}
	for rs.Next() {
		row := []string{}
		for i := 0; i < meta.NumColumns(); i++ {
			t, err := meta.ColumnType(i)
			if err != nil {
				return err
			}
			cell, err := formatCell(rs, i, t)
			if err != nil {
				return err
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		fmt.Println("(no results)")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()

	if len(rows) == 1 {
		fmt.Println("(1 result)")
	} else {
		fmt.Printf("(%d results)\n", len(rows))
	}

	return nil
}

// formatCell renders the current row's cell at column i through the typed
// accessor matching the column's canonical type. SQL NULL renders empty.
func formatCell(rs godbc.ResultSet, i int, t godbc.DataType) (string, error) {
	switch t {
	case godbc.Bool:
		b, err := rs.GetBool(i)
		if err != nil || b == nil {
			return "", err
		}
		if *b {
			return "t", nil
		}
		return "f", nil
	case godbc.Byte, godbc.Short, godbc.Integer:
		n, err := rs.GetInt64(i)
		if err != nil || n == nil {
			return "", err
		}
		return strconv.FormatInt(*n, 10), nil
	case godbc.Float, godbc.Double:
		f, err := rs.GetFloat64(i)
		if err != nil || f == nil {
			return "", err
		}
		return strconv.FormatFloat(*f, 'g', -1, 64), nil
	case godbc.Date, godbc.Time, godbc.Datetime:
		ts, err := rs.GetTime(i)
		if err != nil || ts == nil {
			return "", err
		}
		return ts.Format(time.RFC3339), nil
	case godbc.Binary:
		b, err := rs.GetBytes(i)
		if err != nil || b == nil {
			return "", err
		}
		return fmt.Sprintf(`\x%x`, b), nil
	default: // Decimal, Utf8
		s, err := rs.GetString(i)
		if err != nil || s == nil {
			return "", err
		}
		return *s, nil
	}
}
