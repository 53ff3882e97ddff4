package compilers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bawdo/exprel/exprs"
)

// Param is one extracted statement parameter: a deterministic name (P0,
// P1, ... in insertion order) and the constant value bound to it.
type Param struct {
	Name  string
	Value any
}

// placeholderStyle selects the dialect spelling of a placeholder.
type placeholderStyle int

const (
	styleNamed    placeholderStyle = iota // @P0 (SQLite)
	styleQuestion                         // ? (MySQL, positional)
	styleDollar                           // $1 (PostgreSQL)
)

// Params accumulates constant values during one statement compilation.
// In parametric mode equal values share one placeholder (dedup by value
// equality; positional ? placeholders cannot be reused and disable dedup).
// In non-parametric mode Add returns a dialect-escaped inline literal and
// retains nothing. A Params instance belongs to exactly one compilation.
type Params struct {
	parametric bool
	style      placeholderStyle
	escape     func(string) string
	list       []Param
	byValue    map[any]string
}

func newParams(parametric bool, style placeholderStyle, escape func(string) string) *Params {
	return &Params{
		parametric: parametric,
		style:      style,
		escape:     escape,
		byValue:    make(map[any]string),
	}
}

// Reset clears accumulated parameters for the next statement.
func (p *Params) Reset() {
	p.list = nil
	p.byValue = make(map[any]string)
}

// Add registers a constant value and returns the SQL token that stands for
// it: a placeholder in parametric mode, an inline literal otherwise. Only
// basic scalar values are accepted.
func (p *Params) Add(v any) (string, error) {
	if !exprs.BasicValue(v) {
		return "", &exprs.InvalidShapeError{Reason: fmt.Sprintf("non-basic constant of type %T", v)}
	}
	if v == nil {
		return "null", nil
	}
	if !p.parametric {
		return inlineLiteral(v, p.escape), nil
	}
	dedup := p.style != styleQuestion
	if dedup {
		if ph, ok := p.byValue[v]; ok {
			return ph, nil
		}
	}
	name := "P" + strconv.Itoa(len(p.list))
	p.list = append(p.list, Param{Name: name, Value: v})
	ph := p.spell(name, len(p.list))
	if dedup {
		p.byValue[v] = ph
	}
	return ph, nil
}

func (p *Params) spell(name string, ordinal int) string {
	switch p.style {
	case styleQuestion:
		return "?"
	case styleDollar:
		return "$" + strconv.Itoa(ordinal)
	default:
		return "@" + name
	}
}

// List returns the accumulated parameters in insertion order.
func (p *Params) List() []Param {
	return p.list
}

// inlineLiteral renders a basic value as a dialect-escaped SQL literal.
// Booleans render 1/0: the target dialects store booleans as integers.
func inlineLiteral(v any, escape func(string) string) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return "'" + escape(val) + "'"
	case bool:
		if val {
			return "1"
		}
		return "0"
	case time.Time:
		return "'" + val.Format("2006-01-02 15:04:05") + "'"
	default:
		return fmt.Sprintf("%v", val)
	}
}
