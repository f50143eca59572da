package parser

import (
	"testing"

	"github.com/dangerclosesec/polar/policy/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShorthandRuleWithoutRelation(t *testing.T) {
	lines := mustParseLines(t, `Org { "read" if "owner"; }`)
	require.Len(t, lines, 1)

	block, ok := lines[0].(*term.ResourceBlock)
	require.True(t, ok, "line should be a resource block")
	assert.Nil(t, block.Keyword)
	assert.Equal(t, term.Variable("Org"), block.Resource.Value())
	require.Len(t, block.Productions, 1)

	rule, ok := block.Productions[0].(*term.ShorthandRule)
	require.True(t, ok, "production should be a shorthand rule")
	assert.Equal(t, term.String("read"), rule.Head.Value())
	assert.Equal(t, term.String("owner"), rule.Implier.Value())
	assert.Nil(t, rule.Relation)
}

func TestResourceBlock(t *testing.T) {
	lines := mustParseLines(t, `resource Repository {
    permissions = ["read", "push",];
    roles = ["contributor", "maintainer"];
    relations = {parent: Organization, owner: User};

    "read" if "contributor";
    "push" if "maintainer";
    "contributor" if "member" on "parent";
}`)
	require.Len(t, lines, 1)
	block := lines[0].(*term.ResourceBlock)
	assert.Equal(t, term.Variable("resource"), block.Keyword.Value())
	assert.Equal(t, term.Variable("Repository"), block.Resource.Value())
	assert.Equal(t, 1, block.Span.Line())
	require.Len(t, block.Productions, 6)

	permissions := block.Productions[0].(*term.Declaration)
	assert.Equal(t, term.Variable("permissions"), permissions.Name.Value())
	assert.Equal(t, `["read", "push"]`, permissions.Value.String())

	relations := block.Productions[2].(*term.Declaration)
	dict, ok := relations.Value.Value().(*term.Dictionary)
	require.True(t, ok)
	assert.Equal(t, []term.Symbol{"owner", "parent"}, dict.Keys())
	parent, _ := dict.Get("parent")
	assert.Equal(t, term.Variable("Organization"), parent.Value())

	related := block.Productions[5].(*term.ShorthandRule)
	require.NotNil(t, related.Relation)
	assert.Equal(t, term.Variable("on"), related.Relation.On.Value())
	assert.Equal(t, term.String("parent"), related.Relation.Name.Value())
	assert.Equal(t, `"contributor" if "member" on "parent";`, related.String())
}

func TestResourceBlockErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"number in role list", `R { roles = [1]; }`, KindUnrecognizedToken},
		{"string relation type", `R { relations = {parent: "Org"}; }`, KindUnrecognizedToken},
		{"relation shorthand", `R { relations = {parent}; }`, KindUnrecognizedToken},
		{"duplicate relation", `R { relations = {a: A, a: B}; }`, KindDuplicateKey},
		{"other value", `R { roles = "admin"; }`, KindUnrecognizedToken},
		{"missing semicolon", `R { "a" if "b" }`, KindUnrecognizedToken},
		{"relation without name", `R { "a" if "b" on; }`, KindUnrecognizedToken},
		{"unterminated", `R { "a" if "b";`, KindUnrecognizedEOF},
		{"expression production", `R { x > 1; }`, KindUnrecognizedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseLinesError(t, tt.input)
			assert.Equal(t, tt.kind, perr.Kind)
		})
	}
}

func TestShorthandRelationWord(t *testing.T) {
	lines := mustParseLines(t, `R { "a" if "b" via "p"; }`)
	block := lines[0].(*term.ResourceBlock)
	rule := block.Productions[0].(*term.ShorthandRule)

	require.NotNil(t, rule.Relation)
	assert.Equal(t, term.Variable("via"), rule.Relation.On.Value())
	assert.Equal(t, 15, rule.Relation.On.Start())
	assert.Equal(t, 18, rule.Relation.On.End())
	assert.Equal(t, term.String("p"), rule.Relation.Name.Value())
}
