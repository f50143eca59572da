package term

import "fmt"

// Helpers for constructing span-less trees, mostly in tests.

// Var builds a variable term.
func Var(name string) *Term { return Wrap(Variable(name)) }

// Rest builds a rest variable term.
func Rest(name string) *Term { return Wrap(RestVariable(name)) }

// Str builds a string term.
func Str(s string) *Term { return Wrap(String(s)) }

// Int builds an integer term.
func Int(i int64) *Term { return Wrap(Number{Integer: i}) }

// Float builds a floating point term.
func Float(f float64) *Term { return Wrap(Number{Float: f, IsFloat: true}) }

// Bool builds a boolean term.
func Bool(b bool) *Term { return Wrap(Boolean(b)) }

// ListOf builds a list term.
func ListOf(items ...*Term) *Term { return Wrap(List(items)) }

// Op builds an operation term.
func Op(op Operator, args ...*Term) *Term { return Wrap(NewOperation(op, args...)) }

// CallOf builds a call term without keyword arguments.
func CallOf(name string, args ...*Term) *Term {
	if args == nil {
		args = []*Term{}
	}
	return Wrap(&Call{Name: Symbol(name), Args: args})
}

// Fields builds a dictionary from alternating key, term pairs. Keys may be
// strings or Symbols. It panics on a repeated key or a malformed pair list.
func Fields(pairs ...interface{}) *Dictionary {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("term.Fields: odd number of arguments (%d)", len(pairs)))
	}
	d := NewDictionary()
	for i := 0; i < len(pairs); i += 2 {
		var key Symbol
		switch k := pairs[i].(type) {
		case string:
			key = Symbol(k)
		case Symbol:
			key = k
		default:
			panic(fmt.Sprintf("term.Fields: key %v is %T, not a string", k, k))
		}
		value, ok := pairs[i+1].(*Term)
		if !ok {
			panic(fmt.Sprintf("term.Fields: value for %q is %T, not *Term", key, pairs[i+1]))
		}
		if !d.Insert(key, value) {
			panic(fmt.Sprintf("term.Fields: duplicate key %q", key))
		}
	}
	return d
}

// Dict builds a dictionary term.
func Dict(pairs ...interface{}) *Term { return Wrap(Fields(pairs...)) }

// Instance builds an instance pattern term.
func Instance(tag string, pairs ...interface{}) *Term {
	return Wrap(&InstanceLiteral{Tag: Symbol(tag), Fields: Fields(pairs...)})
}

// DictPattern builds a dictionary pattern term.
func DictPattern(pairs ...interface{}) *Term {
	return Wrap(&DictionaryPattern{Fields: Fields(pairs...)})
}

// Param builds an unspecialized parameter.
func Param(t *Term) Parameter { return Parameter{Parameter: t} }

// Specialized builds a parameter named name with a specializer.
func Specialized(name string, spec *Term) Parameter {
	return Parameter{Parameter: Var(name), Specializer: spec}
}

// RuleOf builds a rule whose body is the conjunction of body.
func RuleOf(name string, params []Parameter, body ...*Term) *Rule {
	if params == nil {
		params = []Parameter{}
	}
	return &Rule{Name: Symbol(name), Params: params, Body: Op(And, body...)}
}

// Fact builds a rule with an empty body.
func Fact(name string, params ...Parameter) *Rule {
	return RuleOf(name, params)
}
