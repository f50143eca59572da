package migration

import (
	"fmt"

	"github.com/dangerclosesec/polar/policy/term"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Definition kinds stored per signature
const (
	KindRule          = "rule"
	KindRuleType      = "rule_type"
	KindResourceBlock = "resource_block"
)

// PolicyModel indexes a parsed policy by definition signature. Each
// signature maps to the sorted rendered source of its definitions, so two
// models compare equal regardless of definition order or formatting.
type PolicyModel struct {
	Rules          map[string][]string // name/arity
	RuleTypes      map[string][]string // name/arity
	ResourceBlocks map[string][]string // [keyword ]Resource
	Source         string
	SourceID       uuid.UUID
}

// NewPolicyModel creates an empty policy model
func NewPolicyModel() *PolicyModel {
	return &PolicyModel{
		Rules:          make(map[string][]string),
		RuleTypes:      make(map[string][]string),
		ResourceBlocks: make(map[string][]string),
	}
}

// BuildModel indexes parsed lines. Queries are not definitions and are skipped.
func BuildModel(lines []term.Line, src *term.Source) *PolicyModel {
	m := NewPolicyModel()
	if src != nil {
		m.Source = src.Filename
		m.SourceID = src.ID
	}
	for _, line := range lines {
		switch l := line.(type) {
		case *term.Rule:
			m.add(KindRule, Signature(l), l.String())
		case *term.RuleType:
			m.add(KindRuleType, Signature(l.Rule), l.String())
		case *term.ResourceBlock:
			m.add(KindResourceBlock, BlockName(l), l.String())
		}
	}
	return m
}

// Section returns the definitions of one kind
func (m *PolicyModel) Section(kind string) map[string][]string {
	switch kind {
	case KindRule:
		return m.Rules
	case KindRuleType:
		return m.RuleTypes
	case KindResourceBlock:
		return m.ResourceBlocks
	}
	return nil
}

// Add records a rendered definition under a signature
func (m *PolicyModel) add(kind, signature, text string) {
	section := m.Section(kind)
	defs := append(section[signature], text)
	slices.Sort(defs)
	section[signature] = defs
}

// Signature identifies a rule group by name and arity
func Signature(r *term.Rule) string {
	return fmt.Sprintf("%s/%d", r.Name, r.Arity())
}

// BlockName identifies a resource block
func BlockName(b *term.ResourceBlock) string {
	if b.Keyword == nil {
		return b.Resource.String()
	}
	return b.Keyword.String() + " " + b.Resource.String()
}
