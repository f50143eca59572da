package term

// Operator is the closed set of built-in operations.
type Operator int

const (
	Debug Operator = iota
	Print
	Cut
	ForAll
	Dot
	New
	In
	Isa
	Mul
	Div
	Mod
	Rem
	Add
	Sub
	Eq
	Neq
	Leq
	Geq
	Lt
	Gt
	Unify
	Assign
	Not
	And
	Or
)

var operatorNames = map[Operator]string{
	Debug:  "debug",
	Print:  "print",
	Cut:    "cut",
	ForAll: "forall",
	Dot:    ".",
	New:    "new",
	In:     "in",
	Isa:    "matches",
	Mul:    "*",
	Div:    "/",
	Mod:    "mod",
	Rem:    "rem",
	Add:    "+",
	Sub:    "-",
	Eq:     "==",
	Neq:    "!=",
	Leq:    "<=",
	Geq:    ">=",
	Lt:     "<",
	Gt:     ">",
	Unify:  "=",
	Assign: ":=",
	Not:    "not",
	And:    "and",
	Or:     "or",
}

// String returns the operator as written in source.
func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "unknown"
}

// Operation applies an operator to an ordered list of operands.
type Operation struct {
	Operator Operator
	Args     []*Term
}

// NewOperation builds an operation value.
func NewOperation(op Operator, args ...*Term) *Operation {
	if args == nil {
		args = []*Term{}
	}
	return &Operation{Operator: op, Args: args}
}

// IsOperation reports whether v is an operation with the given operator.
func IsOperation(v Value, op Operator) (*Operation, bool) {
	o, ok := v.(*Operation)
	if !ok || o.Operator != op {
		return nil, false
	}
	return o, true
}
