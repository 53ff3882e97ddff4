package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bawdo/exprel/builders"
	"github.com/bawdo/exprel/compilers"
	"github.com/bawdo/exprel/exprs"
	"github.com/bawdo/exprel/rewrite/softdelete"
)

// Session holds the interactive state: the chosen engine, the query under
// construction, the rewriter toggles and an optional live connection.
type Session struct {
	engine string
	query  *builders.SelectBuilder
	joins  map[string]*exprs.TableSource // alias and table name -> source
	soft   *softdelete.SoftDelete
	conn   *dbConn
}

// NewSession creates a Session for the given engine.
func NewSession(engine string) *Session {
	return &Session{engine: engine}
}

func (s *Session) compiler() compilers.Compiler {
	switch s.engine {
	case "postgres":
		return compilers.NewPostgresCompiler()
	case "mysql":
		return compilers.NewMySQLCompiler()
	default:
		return compilers.NewSQLiteCompiler()
	}
}

// Execute runs one REPL command line.
func (s *Session) Execute(line string) error {
	cmd, rest := splitCommand(line)
	switch cmd {
	case "help":
		fmt.Print(helpText)
		return nil
	case "engine":
		return s.cmdEngine(rest)
	case "connect":
		return s.cmdConnect(rest)
	case "tables":
		return s.cmdTables()
	case "from":
		return s.cmdFrom(rest)
	case "select":
		return s.cmdSelect(rest)
	case "where":
		return s.cmdWhere(rest)
	case "join":
		return s.cmdJoin(rest, exprs.JoinInner)
	case "leftjoin":
		return s.cmdJoin(rest, exprs.JoinLeft)
	case "orderby":
		return s.cmdOrderBy(rest)
	case "groupby":
		return s.cmdGroupBy(rest)
	case "limit":
		return s.cmdLimit(rest)
	case "offset":
		return s.cmdOffset(rest)
	case "distinct":
		return s.cmdDistinct()
	case "plugin":
		return s.cmdPlugin(rest)
	case "sql":
		return s.cmdSQL()
	case "run":
		return s.cmdRun()
	case "reset":
		s.query = nil
		s.joins = nil
		return nil
	}
	return fmt.Errorf("unknown command %q (try 'help')", cmd)
}

const helpText = `Commands:
  engine <sqlite|mysql|postgres>   switch target dialect
  connect <dsn>                    open a database connection
  tables                           list tables on the connection
  from <table>                     start a query
  select <col>[, <col>...]         set the projection
  where <col> <op> <value>         add a filter (= != < <= > >= like)
  join <table> on <col> = <col>    inner join; leftjoin for left
  orderby <col> [desc]             add ordering
  groupby <col>[, <col>...]        add grouping
  limit <n> / offset <n>           page the result
  distinct                         de-duplicate rows
  plugin softdelete [column]       hide soft-deleted rows
  plugin off                       drop the rewriter
  sql                              print the compiled SQL and parameters
  run                              execute against the connection
  reset                            discard the query under construction
  exit                             leave
`

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return cmd, ""
	}
	return cmd, strings.TrimSpace(parts[1])
}

func (s *Session) cmdEngine(rest string) error {
	switch rest {
	case "sqlite", "mysql", "postgres":
		s.engine = rest
		fmt.Printf("  engine: %s\n", rest)
		return nil
	}
	return fmt.Errorf("unknown engine %q", rest)
}

func (s *Session) cmdConnect(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("usage: connect <dsn>")
	}
	if s.conn != nil {
		_ = s.conn.close()
		s.conn = nil
	}
	conn, err := connect(s.engine, dsn)
	if err != nil {
		return err
	}
	s.conn = conn
	fmt.Printf("  connected (%s)\n", s.engine)
	return nil
}

func (s *Session) cmdTables() error {
	if s.conn == nil {
		return fmt.Errorf("not connected")
	}
	names := append([]string(nil), s.conn.schema.tables...)
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %s\n", n)
	}
	return nil
}

func (s *Session) cmdFrom(table string) error {
	if table == "" {
		return fmt.Errorf("usage: from <table>")
	}
	s.query = builders.NewSelect(table)
	s.joins = map[string]*exprs.TableSource{
		table: s.query.Table(),
		s.query.Table().Alias: s.query.Table(),
	}
	return nil
}

// resolveColumn turns "name" or "table.name" into a column reference against
// the known sources.
func (s *Session) resolveColumn(ref string) (*exprs.Column, error) {
	if s.query == nil {
		return nil, fmt.Errorf("no query; start with 'from <table>'")
	}
	if table, name, ok := strings.Cut(ref, "."); ok {
		src, found := s.joins[table]
		if !found {
			return nil, fmt.Errorf("unknown table %q", table)
		}
		return src.Col(name), nil
	}
	return s.query.Table().Col(ref), nil
}

func (s *Session) cmdSelect(rest string) error {
	if s.query == nil {
		return fmt.Errorf("no query; start with 'from <table>'")
	}
	if rest == "" {
		return fmt.Errorf("usage: select <col>[, <col>...]")
	}
	items := make([]exprs.Expr, 0, 4)
	for _, ref := range strings.Split(rest, ",") {
		col, err := s.resolveColumn(strings.TrimSpace(ref))
		if err != nil {
			return err
		}
		items = append(items, col)
	}
	if len(items) == 1 {
		s.query.Select(items[0])
	} else {
		s.query.Select(&exprs.CollectionShape{Items: items})
	}
	return nil
}

func (s *Session) cmdWhere(rest string) error {
	cond, err := s.parseCondition(rest)
	if err != nil {
		return err
	}
	s.query.Where(cond)
	return nil
}

func (s *Session) cmdJoin(rest string, kind exprs.JoinKind) error {
	if s.query == nil {
		return fmt.Errorf("no query; start with 'from <table>'")
	}
	table, onClause, ok := strings.Cut(rest, " on ")
	if !ok {
		return fmt.Errorf("usage: join <table> on <col> = <col>")
	}
	table = strings.TrimSpace(table)
	ctx := s.query.Join(table, kind)
	s.joins[table] = ctx.Table()
	s.joins[ctx.Table().Alias] = ctx.Table()
	left, right, ok := strings.Cut(onClause, "=")
	if !ok {
		return fmt.Errorf("join condition must be <col> = <col>")
	}
	lcol, err := s.resolveColumn(strings.TrimSpace(left))
	if err != nil {
		return err
	}
	rcol, err := s.resolveColumn(strings.TrimSpace(right))
	if err != nil {
		return err
	}
	ctx.On(lcol.Eq(rcol))
	return nil
}

func (s *Session) cmdOrderBy(rest string) error {
	if s.query == nil {
		return fmt.Errorf("no query; start with 'from <table>'")
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return fmt.Errorf("usage: orderby <col> [desc]")
	}
	col, err := s.resolveColumn(fields[0])
	if err != nil {
		return err
	}
	if len(fields) > 1 && strings.EqualFold(fields[1], "desc") {
		s.query.OrderBy(col.Desc())
	} else {
		s.query.OrderBy(col.Asc())
	}
	return nil
}

func (s *Session) cmdGroupBy(rest string) error {
	if s.query == nil {
		return fmt.Errorf("no query; start with 'from <table>'")
	}
	for _, ref := range strings.Split(rest, ",") {
		col, err := s.resolveColumn(strings.TrimSpace(ref))
		if err != nil {
			return err
		}
		s.query.GroupBy(col)
	}
	return nil
}

func (s *Session) cmdLimit(rest string) error {
	n, err := parsePositive(rest)
	if err != nil {
		return fmt.Errorf("usage: limit <n>")
	}
	if s.query == nil {
		return fmt.Errorf("no query; start with 'from <table>'")
	}
	s.query.Limit(n)
	return nil
}

func (s *Session) cmdOffset(rest string) error {
	n, err := parsePositive(rest)
	if err != nil {
		return fmt.Errorf("usage: offset <n>")
	}
	if s.query == nil {
		return fmt.Errorf("no query; start with 'from <table>'")
	}
	s.query.Offset(n)
	return nil
}

func (s *Session) cmdDistinct() error {
	if s.query == nil {
		return fmt.Errorf("no query; start with 'from <table>'")
	}
	s.query.Distinct()
	return nil
}

func (s *Session) cmdPlugin(rest string) error {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return fmt.Errorf("usage: plugin softdelete [column] | plugin off")
	}
	switch fields[0] {
	case "off":
		s.soft = nil
		fmt.Println("  rewriters: none")
		return nil
	case "softdelete":
		var opts []softdelete.Option
		if len(fields) > 1 {
			opts = append(opts, softdelete.WithColumn(fields[1]))
		}
		s.soft = softdelete.New(opts...)
		fmt.Printf("  rewriters: softdelete (%s)\n", s.soft.Column)
		return nil
	}
	return fmt.Errorf("unknown plugin %q", fields[0])
}

// compile runs the rewriter toggle over a cloned tree and renders it, so
// repeated sql/run commands never stack duplicate filters.
func (s *Session) compile() (string, []compilers.Param, error) {
	if s.query == nil {
		return "", nil, fmt.Errorf("no query; start with 'from <table>'")
	}
	sel, err := s.query.Selection()
	if err != nil {
		return "", nil, err
	}
	if s.soft != nil {
		sel, err = s.soft.RewriteSelect(sel)
		if err != nil {
			return "", nil, err
		}
	}
	return s.compiler().Select(sel)
}

func (s *Session) cmdSQL() error {
	sql, params, err := s.compile()
	if err != nil {
		return err
	}
	fmt.Printf("  %s\n", sql)
	for _, p := range params {
		fmt.Printf("    %s = %v\n", p.Name, p.Value)
	}
	return nil
}

func (s *Session) cmdRun() error {
	if s.conn == nil {
		return fmt.Errorf("not connected")
	}
	sql, params, err := s.compile()
	if err != nil {
		return err
	}
	out, err := s.conn.execQuery(s.engine, sql, params)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
