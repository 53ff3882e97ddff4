package main

import "strings"

// replCompleter offers tab completion for command names and, when a
// connection is open, table names from the schema cache.
type replCompleter struct {
	sess *Session
}

var commandNames = []string{
	"engine", "connect", "tables", "from", "select", "where", "join",
	"leftjoin", "orderby", "groupby", "limit", "offset", "distinct",
	"plugin", "sql", "run", "reset", "help", "exit", "quit",
}

// Do implements readline.AutoCompleter.
func (c *replCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields := strings.Fields(text)

	// Completing the command word itself.
	if len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(text, " ")) {
		prefix := ""
		if len(fields) == 1 {
			prefix = strings.ToLower(fields[0])
		}
		return candidates(commandNames, prefix), len(prefix)
	}

	// Completing a table name argument.
	cmd := strings.ToLower(fields[0])
	switch cmd {
	case "from", "join", "leftjoin":
		prefix := ""
		if !strings.HasSuffix(text, " ") {
			prefix = fields[len(fields)-1]
		}
		if c.sess.conn == nil {
			return nil, len(prefix)
		}
		return candidates(c.sess.conn.schema.tables, prefix), len(prefix)
	}
	return nil, 0
}

func candidates(options []string, prefix string) [][]rune {
	var out [][]rune
	for _, opt := range options {
		if strings.HasPrefix(opt, prefix) {
			out = append(out, []rune(opt[len(prefix):]+" "))
		}
	}
	return out
}
