package exprs

// Column references a column of an aliased source: alias plus column name.
// Type optionally carries the mapped SQL type tag ("text", "integer", ...)
// used by the string-sensitive compilation rules (concatenation, collation).
type Column struct {
	Predications
	Arithmetics
	Combinable
	Source string // source alias, e.g. "T0"
	Name   string
	Type   string
}

// Col creates a Column bound to the given source alias.
func Col(source, name string) *Column {
	c := &Column{Source: source, Name: name}
	c.Predications.self = c
	c.Arithmetics.self = c
	c.Combinable.self = c
	return c
}

// Typed returns a copy of the Column with the SQL type tag set.
func (n *Column) Typed(typeName string) *Column {
	c := Col(n.Source, n.Name)
	c.Type = typeName
	return c
}

func (n *Column) AsValue(c Compiler) (Text, error)     { return c.ValueColumn(n) }
func (n *Column) AsPredicate(c Compiler) (Text, error) { return c.PredicateColumn(n) }

// QuoteColumn is a back-reference to an aliased output column produced by a
// sibling or ancestor source. It is used when correlated expressions are
// rewritten against a generated column alias instead of the original column.
type QuoteColumn struct {
	Predications
	Arithmetics
	Combinable
	Source string // source alias
	Name   string // generated column alias
	Type   string
}

// Quote creates a QuoteColumn referencing the aliased output column.
func Quote(source, name string) *QuoteColumn {
	c := &QuoteColumn{Source: source, Name: name}
	c.Predications.self = c
	c.Arithmetics.self = c
	c.Combinable.self = c
	return c
}

func (n *QuoteColumn) AsValue(c Compiler) (Text, error)     { return c.ValueQuoteColumn(n) }
func (n *QuoteColumn) AsPredicate(c Compiler) (Text, error) { return c.PredicateQuoteColumn(n) }
