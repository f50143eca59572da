package term

import (
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Keys returns the dictionary keys in sorted order.
func (d *Dictionary) Keys() []Symbol {
	if d == nil {
		return nil
	}
	keys := maps.Keys(d.Fields)
	slices.Sort(keys)
	return keys
}

// String renders the term as policy source.
func (t *Term) String() string {
	if t == nil || t.value == nil {
		return ""
	}
	return t.value.String()
}

func (n Number) String() string {
	if !n.IsFloat {
		return strconv.FormatInt(n.Integer, 10)
	}
	s := strconv.FormatFloat(n.Float, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	"\x00", `\0`,
)

func (s String) String() string {
	return `"` + stringEscaper.Replace(string(s)) + `"`
}

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

func (v Variable) String() string {
	return string(v)
}

func (v RestVariable) String() string {
	return "*" + string(v)
}

func (l List) String() string {
	return "[" + joinTerms(l) + "]"
}

func (d *Dictionary) String() string {
	return "{" + d.fieldsString() + "}"
}

func (d *Dictionary) fieldsString() string {
	parts := make([]string, 0, d.Len())
	for _, k := range d.Keys() {
		parts = append(parts, string(k)+": "+d.Fields[k].String())
	}
	return strings.Join(parts, ", ")
}

func (c *Call) String() string {
	args := joinTerms(c.Args)
	if c.KwArgs.Len() > 0 {
		if args != "" {
			args += ", "
		}
		args += c.KwArgs.fieldsString()
	}
	return string(c.Name) + "(" + args + ")"
}

func (p *DictionaryPattern) String() string {
	return p.Fields.String()
}

func (i *InstanceLiteral) String() string {
	return string(i.Tag) + i.Fields.String()
}

// precedence mirrors the grammar levels; atoms bind tightest.
func precedence(t *Term) int {
	op, ok := t.Value().(*Operation)
	if !ok {
		return 10
	}
	switch op.Operator {
	case Or, And:
		// a single-goal chain renders as its goal
		if len(op.Args) == 1 {
			return precedence(op.Args[0])
		}
	}
	switch op.Operator {
	case Or:
		return 1
	case And:
		return 2
	case Not:
		return 3
	case Unify, Assign:
		return 4
	case Eq, Neq, Leq, Geq, Lt, Gt:
		return 5
	case Add, Sub:
		return 6
	case Mul, Div, Mod, Rem:
		return 7
	case In, Isa:
		return 8
	case Dot:
		return 9
	}
	return 10
}

func operand(t *Term, min int) string {
	if precedence(t) < min {
		return "(" + t.String() + ")"
	}
	return t.String()
}

func (o *Operation) String() string {
	switch o.Operator {
	case Debug, Print, ForAll:
		return o.Operator.String() + "(" + joinTerms(o.Args) + ")"
	case Cut:
		return "cut"
	case New:
		return "new " + joinTerms(o.Args)
	case Not:
		return "not " + operand(o.Args[0], 3)
	case Dot:
		return operand(o.Args[0], 9) + "." + dotKey(o.Args[1])
	case And, Or:
		if len(o.Args) == 0 {
			return strconv.FormatBool(o.Operator == And)
		}
		if len(o.Args) == 1 {
			return o.Args[0].String()
		}
		level := precedence(Wrap(o))
		parts := make([]string, len(o.Args))
		for i, arg := range o.Args {
			parts[i] = operand(arg, level+1)
		}
		return strings.Join(parts, " "+o.Operator.String()+" ")
	}
	if len(o.Args) != 2 {
		return o.Operator.String() + "(" + joinTerms(o.Args) + ")"
	}
	level := precedence(Wrap(o))
	left, right := level, level+1
	switch level {
	case 4, 5:
		left = level + 1
	case 8:
		right = 9
	}
	rhs := operand(o.Args[1], right)
	if o.Operator == Isa {
		rhs = o.Args[1].String()
	}
	return operand(o.Args[0], left) + " " + o.Operator.String() + " " + rhs
}

func dotKey(t *Term) string {
	switch v := t.Value().(type) {
	case String:
		if isIdentifier(string(v)) {
			return string(v)
		}
		return "(" + v.String() + ")"
	case Variable:
		return "(" + v.String() + ")"
	}
	return t.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}

func joinTerms(terms []*Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func (p Parameter) String() string {
	if p.Specializer == nil {
		return p.Parameter.String()
	}
	return p.Parameter.String() + ": " + p.Specializer.String()
}

func (r *Rule) head() string {
	params := make([]string, len(r.Params))
	for i, p := range r.Params {
		params[i] = p.String()
	}
	return string(r.Name) + "(" + strings.Join(params, ", ") + ")"
}

func (r *Rule) String() string {
	if r.IsFact() {
		return r.head() + ";"
	}
	return r.head() + " if " + r.Body.String() + ";"
}

func (r *RuleType) String() string {
	return "type " + r.Rule.head() + ";"
}

func (q *Query) String() string {
	return "?= " + q.Term.String() + ";"
}

func (b *ResourceBlock) String() string {
	var sb strings.Builder
	if b.Keyword != nil {
		sb.WriteString(b.Keyword.String())
		sb.WriteString(" ")
	}
	sb.WriteString(b.Resource.String())
	sb.WriteString(" {\n")
	for _, p := range b.Productions {
		sb.WriteString("  ")
		sb.WriteString(p.String())
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (d *Declaration) String() string {
	return d.Name.String() + " = " + d.Value.String() + ";"
}

func (s *ShorthandRule) String() string {
	out := s.Head.String() + " if " + s.Implier.String()
	if s.Relation != nil {
		out += " " + s.Relation.On.String() + " " + s.Relation.Name.String()
	}
	return out + ";"
}
