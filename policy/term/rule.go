package term

// Parameter is one argument position of a rule head.
type Parameter struct {
	Parameter   *Term
	Specializer *Term // nil when unspecialized
}

// Rule is a named clause. Body is always an And operation; a fact has an
// And with no arguments.
type Rule struct {
	Name   Symbol
	Params []Parameter
	Body   *Term
	Span   Span
}

// IsFact reports whether the rule has an empty body.
func (r *Rule) IsFact() bool {
	op, ok := IsOperation(r.Body.Value(), And)
	return ok && len(op.Args) == 0
}

// Arity returns the number of parameters.
func (r *Rule) Arity() int {
	return len(r.Params)
}

// Line is one top-level item of a policy file.
type Line interface {
	isLine()
	String() string
}

// RuleType declares a rule signature. It has no executable body.
type RuleType struct {
	Rule *Rule
}

// Query is a top-level `?= term;` goal.
type Query struct {
	Term *Term
}

// ResourceBlock is declarative authorization shorthand expanded into rules
// by a later pass. Keyword is nil when omitted.
type ResourceBlock struct {
	Keyword     *Term
	Resource    *Term
	Productions []Production
	Span        Span
}

func (*Rule) isLine()          {}
func (*RuleType) isLine()      {}
func (*Query) isLine()         {}
func (*ResourceBlock) isLine() {}

// Production is one item inside a resource block.
type Production interface {
	isProduction()
	String() string
}

// Declaration binds a name to a list of strings (roles, permissions) or a
// dictionary of type variables (relations).
type Declaration struct {
	Name  *Term
	Value *Term
}

// Relation is the `on "relation"` clause of a shorthand rule. On is the
// connecting variable as written.
type Relation struct {
	On   *Term
	Name *Term
}

// ShorthandRule is `"head" if "implier" [on "relation"];`.
type ShorthandRule struct {
	Head     *Term
	Implier  *Term
	Relation *Relation // nil when absent
}

func (*Declaration) isProduction()   {}
func (*ShorthandRule) isProduction() {}
