// Package report summarizes parsed policy lines for display.
package report

import (
	"fmt"

	"github.com/dangerclosesec/polar/policy/term"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Line kinds
const (
	KindRule          = "rule"
	KindRuleType      = "rule_type"
	KindQuery         = "query"
	KindResourceBlock = "resource_block"
)

// LineReport describes one top-level line
type LineReport struct {
	Kind   string `json:"kind"`
	Name   string `json:"name,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

// Summarize reports each line in source order
func Summarize(lines []term.Line) []LineReport {
	reports := make([]LineReport, 0, len(lines))
	for _, line := range lines {
		reports = append(reports, summarize(line))
	}
	return reports
}

func summarize(line term.Line) LineReport {
	var r LineReport
	var span term.Span

	switch l := line.(type) {
	case *term.Rule:
		r.Kind = KindRule
		r.Name = fmt.Sprintf("%s/%d", l.Name, l.Arity())
		span = l.Span
	case *term.RuleType:
		r.Kind = KindRuleType
		r.Name = fmt.Sprintf("%s/%d", l.Rule.Name, l.Rule.Arity())
		span = l.Rule.Span
	case *term.Query:
		r.Kind = KindQuery
		span = l.Term.Span()
	case *term.ResourceBlock:
		r.Kind = KindResourceBlock
		r.Name = l.Resource.String()
		span = l.Span
	}

	r.Line, r.Column = span.Line(), span.Column()
	r.Text = line.String()
	return r
}

// Counts tallies reports by kind
func Counts(reports []LineReport) map[string]int {
	counts := make(map[string]int)
	for _, r := range reports {
		counts[r.Kind]++
	}
	return counts
}

// SortedKinds returns the kinds present in counts in a stable order
func SortedKinds(counts map[string]int) []string {
	kinds := maps.Keys(counts)
	slices.Sort(kinds)
	return kinds
}
