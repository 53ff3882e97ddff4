package exprs

// Target tags the declaring type of a method call. Dispatch in the compiler
// narrows on (Target, Func, argument count) against a closed catalog; any
// combination outside it is an UnsupportedConstructError naming both tags.
type Target int

const (
	TargetString Target = iota
	TargetMath
	TargetDate
	TargetAggregate
	TargetConvert
)

var targetNames = [...]string{
	TargetString:    "String",
	TargetMath:      "Math",
	TargetDate:      "Date",
	TargetAggregate: "Aggregate",
	TargetConvert:   "Convert",
}

func (t Target) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return "Target?"
}

// Func tags a catalog function.
type Func int

const (
	FuncSubstring Func = iota
	FuncIndexOf
	FuncTrim
	FuncToUpper
	FuncToLower
	FuncStartsWith
	FuncEndsWith
	FuncContains
	FuncReplace
	FuncRound
	FuncFloor
	FuncCeiling
	FuncAbs
	FuncRandomInt
	FuncCount
	FuncSum
	FuncAvg
	FuncMin
	FuncMax
	FuncAddYears
	FuncAddMonths
	FuncAddDays
	FuncAddHours
	FuncAddMinutes
	FuncAddSeconds
	FuncDiffYears
	FuncDiffMonths
	FuncDiffDays
	FuncDiffHours
	FuncDiffMinutes
	FuncDiffSeconds
	FuncToString
	FuncParseInt
	FuncParseFloat
)

var funcNames = [...]string{
	FuncSubstring:   "Substring",
	FuncIndexOf:     "IndexOf",
	FuncTrim:        "Trim",
	FuncToUpper:     "ToUpper",
	FuncToLower:     "ToLower",
	FuncStartsWith:  "StartsWith",
	FuncEndsWith:    "EndsWith",
	FuncContains:    "Contains",
	FuncReplace:     "Replace",
	FuncRound:       "Round",
	FuncFloor:       "Floor",
	FuncCeiling:     "Ceiling",
	FuncAbs:         "Abs",
	FuncRandomInt:   "RandomInt",
	FuncCount:       "Count",
	FuncSum:         "Sum",
	FuncAvg:         "Avg",
	FuncMin:         "Min",
	FuncMax:         "Max",
	FuncAddYears:    "AddYears",
	FuncAddMonths:   "AddMonths",
	FuncAddDays:     "AddDays",
	FuncAddHours:    "AddHours",
	FuncAddMinutes:  "AddMinutes",
	FuncAddSeconds:  "AddSeconds",
	FuncDiffYears:   "DiffYears",
	FuncDiffMonths:  "DiffMonths",
	FuncDiffDays:    "DiffDays",
	FuncDiffHours:   "DiffHours",
	FuncDiffMinutes: "DiffMinutes",
	FuncDiffSeconds: "DiffSeconds",
	FuncToString:    "ToString",
	FuncParseInt:    "ParseInt",
	FuncParseFloat:  "ParseFloat",
}

func (f Func) String() string {
	if int(f) < len(funcNames) {
		return funcNames[f]
	}
	return "Func?"
}

// Call is a method or function invocation against the closed catalog.
// Object is the call target for instance calls and nil for static calls.
type Call struct {
	Predications
	Arithmetics
	Combinable
	Target Target
	Func   Func
	Object Expr
	Args   []Expr
}

// NewCall creates a Call with properly initialised embedded structs.
func NewCall(target Target, fn Func, object Expr, args ...Expr) *Call {
	n := &Call{Target: target, Func: fn, Object: object, Args: args}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *Call) AsValue(c Compiler) (Text, error)     { return c.ValueCall(n) }
func (n *Call) AsPredicate(c Compiler) (Text, error) { return c.PredicateCall(n) }

// --- Aggregate constructors ---

// CountStar creates a count(*) aggregate.
func CountStar() *Call { return NewCall(TargetAggregate, FuncCount, nil) }

// Count creates a count(expr) aggregate.
func Count(expr Expr) *Call { return NewCall(TargetAggregate, FuncCount, nil, expr) }

// Sum creates a sum(expr) aggregate.
func Sum(expr Expr) *Call { return NewCall(TargetAggregate, FuncSum, nil, expr) }

// Avg creates an avg(expr) aggregate.
func Avg(expr Expr) *Call { return NewCall(TargetAggregate, FuncAvg, nil, expr) }

// Min creates a min(expr) aggregate.
func Min(expr Expr) *Call { return NewCall(TargetAggregate, FuncMin, nil, expr) }

// Max creates a max(expr) aggregate.
func Max(expr Expr) *Call { return NewCall(TargetAggregate, FuncMax, nil, expr) }
