package term

// Pattern is a Value that describes a data shape. Pattern fields hold only
// literals, variables, lists and nested patterns.
type Pattern interface {
	Value
	isPattern()
}

// DictionaryPattern matches any value carrying at least the given fields.
type DictionaryPattern struct {
	Fields *Dictionary
}

// InstanceLiteral matches instances of Tag carrying the given fields.
type InstanceLiteral struct {
	Tag    Symbol
	Fields *Dictionary
}

func (*DictionaryPattern) isValue()   {}
func (*DictionaryPattern) isPattern() {}
func (*InstanceLiteral) isValue()     {}
func (*InstanceLiteral) isPattern()   {}

// NewInstance returns an instance pattern with no fields.
func NewInstance(tag Symbol) *InstanceLiteral {
	return &InstanceLiteral{Tag: tag, Fields: NewDictionary()}
}
