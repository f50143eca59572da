// Package term defines the abstract syntax tree produced by the policy parser.
package term

// Symbol is an identifier name. Symbols compare by name.
type Symbol string

// Term is an immutable AST node: a Value plus the span of the syntax that
// produced it.
type Term struct {
	span  Span
	value Value
}

// Wrap wraps a value in a Term without source information.
func Wrap(v Value) *Term {
	return &Term{value: v}
}

// NewFromParser attaches span metadata to a value.
func NewFromParser(src *Source, start, end int, v Value) *Term {
	return &Term{
		span:  Span{Source: src, Start: start, End: end},
		value: v,
	}
}

// CloneWithValue returns a new Term with the same span carrying v.
func (t *Term) CloneWithValue(v Value) *Term {
	return &Term{span: t.span, value: v}
}

// Value returns the payload of the term.
func (t *Term) Value() Value {
	return t.value
}

// Span returns where the term came from.
func (t *Term) Span() Span {
	return t.span
}

// Source returns the originating source unit, or nil.
func (t *Term) Source() *Source {
	return t.span.Source
}

// Start returns the start byte offset.
func (t *Term) Start() int {
	return t.span.Start
}

// End returns the end byte offset.
func (t *Term) End() int {
	return t.span.End
}

// Value is the payload of a Term. The set of implementations is closed.
type Value interface {
	isValue()
	String() string
}

// Number is an integer or floating point literal.
type Number struct {
	Integer int64
	Float   float64
	IsFloat bool
}

// String literal.
type String string

// Boolean literal.
type Boolean bool

// Variable references a binding by name.
type Variable Symbol

// RestVariable binds the remaining elements of a list (`*name`).
type RestVariable Symbol

// List is an ordered sequence of terms. A RestVariable may only appear as
// the final element.
type List []*Term

// Dictionary maps symbols to terms. Keys are unique and iterate in sorted
// order, see Keys.
type Dictionary struct {
	Fields map[Symbol]*Term
}

// Call applies a name to positional and optional keyword arguments.
// KwArgs is nil when no keyword arguments were written.
type Call struct {
	Name   Symbol
	Args   []*Term
	KwArgs *Dictionary
}

func (Number) isValue()       {}
func (String) isValue()       {}
func (Boolean) isValue()      {}
func (Variable) isValue()     {}
func (RestVariable) isValue() {}
func (List) isValue()         {}
func (*Dictionary) isValue()  {}
func (*Call) isValue()        {}
func (*Operation) isValue()   {}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{Fields: make(map[Symbol]*Term)}
}

// Len returns the number of fields.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Fields)
}

// Get looks up a field.
func (d *Dictionary) Get(key Symbol) (*Term, bool) {
	if d == nil {
		return nil, false
	}
	t, ok := d.Fields[key]
	return t, ok
}

// Insert adds a field, reporting false if the key was already present.
// An existing field is never overwritten.
func (d *Dictionary) Insert(key Symbol, t *Term) bool {
	if d.Fields == nil {
		d.Fields = make(map[Symbol]*Term)
	}
	if _, exists := d.Fields[key]; exists {
		return false
	}
	d.Fields[key] = t
	return true
}

// SymbolOf returns the name of a Variable or RestVariable value.
func SymbolOf(v Value) (Symbol, bool) {
	switch v := v.(type) {
	case Variable:
		return Symbol(v), true
	case RestVariable:
		return Symbol(v), true
	}
	return "", false
}
