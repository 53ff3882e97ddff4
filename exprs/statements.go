package exprs

// Statement value types consumed by the statement generators. UPDATE and
// DELETE carry both the statement target and the FROM source so that the
// generator can enforce the single-table restriction of the target dialects.

// Assign is one column = value pair in a SET clause.
type Assign struct {
	Column string
	Value  Expr
}

// Insert is the values form of an INSERT: one value expression per column.
type Insert struct {
	Table   string
	Columns []string
	Values  []Expr
}

// Update is a single-table UPDATE. Target must be identical to From (or
// From nil); anything else is a DialectRestriction at compile time.
type Update struct {
	Target *TableSource
	From   Source
	Sets   []Assign
	Where  Expr
}

// Delete is a single-table DELETE with the same target restriction.
type Delete struct {
	Target *TableSource
	From   Source
	Where  Expr
}
