package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/bawdo/exprel/compilers"
)

var driverName = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

const maxRows = 1000

type schemaCache struct {
	tables  []string
	columns map[string][]string // table name -> column names
}

type dbConn struct {
	db     *sql.DB
	dsn    string
	engine string
	schema schemaCache
}

func connect(engine, dsn string) (*dbConn, error) {
	driver, ok := driverName[engine]
	if !ok {
		return nil, fmt.Errorf("no driver for engine %q", engine)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	conn := &dbConn{db: db, dsn: dsn, engine: engine}
	conn.schema.columns = make(map[string][]string)
	if err := conn.loadSchema(); err != nil {
		// Non-fatal: schema introspection is best-effort for autocomplete.
		fmt.Fprintf(os.Stderr, "  Note: schema introspection failed: %v\n", err)
	}
	return conn, nil
}

func (c *dbConn) close() error {
	return c.db.Close()
}

// bindArgs converts extracted parameters into driver arguments. SQLite
// statements carry named @P placeholders; the other engines are positional.
func bindArgs(engine string, params []compilers.Param) []any {
	args := make([]any, len(params))
	for i, p := range params {
		if engine == "sqlite" {
			args[i] = sql.Named(p.Name, p.Value)
		} else {
			args[i] = p.Value
		}
	}
	return args
}

func (c *dbConn) execQuery(engine, sqlStr string, params []compilers.Param) (string, error) {
	rows, err := c.db.Query(sqlStr, bindArgs(engine, params)...)
	if err != nil {
		return "", fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return formatRows(rows)
}

func formatRows(rows *sql.Rows) (string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("columns: %w", err)
	}

	var data [][]string
	truncated := false
	for rows.Next() {
		if len(data) >= maxRows {
			truncated = true
			break
		}
		vals := make([]*sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range vals {
			vals[i] = &sql.NullString{}
			ptrs[i] = vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(columns))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("rows: %w", err)
	}

	result := formatTable(columns, data)
	if truncated {
		result += fmt.Sprintf("(truncated at %d rows)\n", maxRows)
	}
	return result, nil
}

func formatTable(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return "(0 rows)\n"
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
		sb.WriteString("\n")
	}
	writeRow(columns)
	for i := range columns {
		if i > 0 {
			sb.WriteString("-+-")
		}
		sb.WriteString(strings.Repeat("-", widths[i]))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	sb.WriteString(fmt.Sprintf("(%d rows)\n", len(rows)))
	return sb.String()
}

// loadSchema fills the schema cache used by the completer and the tables
// command.
func (c *dbConn) loadSchema() error {
	var query string
	switch c.engine {
	case "sqlite":
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'"
	case "mysql":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = database()"
	case "postgres":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema()"
	default:
		return fmt.Errorf("no schema query for engine %q", c.engine)
	}
	rows, err := c.db.Query(query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	c.schema.tables = nil
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		c.schema.tables = append(c.schema.tables, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, table := range c.schema.tables {
		cols, err := c.loadColumns(table)
		if err != nil {
			return err
		}
		c.schema.columns[table] = cols
	}
	return nil
}

func (c *dbConn) loadColumns(table string) ([]string, error) {
	var query string
	var args []any
	switch c.engine {
	case "sqlite":
		// PRAGMA table_info does not accept placeholders.
		query = fmt.Sprintf("PRAGMA table_info(%q)", table)
	case "mysql":
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = database() AND table_name = ?"
		args = []any{table}
	case "postgres":
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1"
		args = []any{table}
	}
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cols []string
	if c.engine == "sqlite" {
		// PRAGMA table_info: cid, name, type, notnull, dflt_value, pk
		for rows.Next() {
			var cid int
			var name, ctype string
			var notnull, pk int
			var dflt sql.NullString
			if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
				return nil, err
			}
			cols = append(cols, name)
		}
		return cols, rows.Err()
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}
