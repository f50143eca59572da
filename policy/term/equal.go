package term

// Equal compares two terms structurally. Spans are ignored.
func Equal(a, b *Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	return EqualValues(a.Value(), b.Value())
}

// EqualValues compares two values structurally.
func EqualValues(a, b Value) bool {
	switch a := a.(type) {
	case Number, String, Boolean, Variable, RestVariable:
		return a == b
	case List:
		b, ok := b.(List)
		return ok && equalTerms(a, b)
	case *Dictionary:
		b, ok := b.(*Dictionary)
		return ok && equalDicts(a, b)
	case *Call:
		b, ok := b.(*Call)
		return ok && a.Name == b.Name && equalTerms(a.Args, b.Args) &&
			(a.KwArgs == nil) == (b.KwArgs == nil) && equalDicts(a.KwArgs, b.KwArgs)
	case *Operation:
		b, ok := b.(*Operation)
		return ok && a.Operator == b.Operator && equalTerms(a.Args, b.Args)
	case *DictionaryPattern:
		b, ok := b.(*DictionaryPattern)
		return ok && equalDicts(a.Fields, b.Fields)
	case *InstanceLiteral:
		b, ok := b.(*InstanceLiteral)
		return ok && a.Tag == b.Tag && equalDicts(a.Fields, b.Fields)
	}
	return false
}

func equalTerms(a, b []*Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalDicts(a, b *Dictionary) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Keys() {
		other, ok := b.Get(k)
		if !ok || !Equal(a.Fields[k], other) {
			return false
		}
	}
	return true
}

// EqualRules compares two rules structurally.
func EqualRules(a, b *Rule) bool {
	if a.Name != b.Name || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !Equal(a.Params[i].Parameter, b.Params[i].Parameter) ||
			!Equal(a.Params[i].Specializer, b.Params[i].Specializer) {
			return false
		}
	}
	return Equal(a.Body, b.Body)
}
