package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/exprel/exprs"
)

// parseCondition parses "<col> <op> <value>" into a predicate expression.
// Supported operators: = != < <= > >= like.
func (s *Session) parseCondition(rest string) (exprs.Expr, error) {
	fields := strings.SplitN(rest, " ", 3)
	if len(fields) != 3 {
		return nil, fmt.Errorf("usage: where <col> <op> <value>")
	}
	col, err := s.resolveColumn(fields[0])
	if err != nil {
		return nil, err
	}
	val, err := parseLiteral(strings.TrimSpace(fields[2]))
	if err != nil {
		return nil, err
	}
	switch fields[1] {
	case "=":
		return col.Eq(val), nil
	case "!=", "<>":
		return col.NotEq(val), nil
	case "<":
		return col.Lt(val), nil
	case "<=":
		return col.LtEq(val), nil
	case ">":
		return col.Gt(val), nil
	case ">=":
		return col.GtEq(val), nil
	case "like":
		return col.Like(val), nil
	}
	return nil, fmt.Errorf("unknown operator %q", fields[1])
}

// parseLiteral turns a token into a Go value: 'quoted' or "quoted" strings,
// integers, floats, null, true, false. Anything else is taken as a string.
func parseLiteral(tok string) (any, error) {
	if tok == "" {
		return nil, fmt.Errorf("missing value")
	}
	if len(tok) >= 2 {
		if (tok[0] == '\'' && tok[len(tok)-1] == '\'') ||
			(tok[0] == '"' && tok[len(tok)-1] == '"') {
			return tok[1 : len(tok)-1], nil
		}
	}
	switch strings.ToLower(tok) {
	case "null":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if n, err := strconv.Atoi(tok); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f, nil
	}
	return tok, nil
}

func parsePositive(tok string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(tok))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("expected a non-negative integer")
	}
	return n, nil
}
