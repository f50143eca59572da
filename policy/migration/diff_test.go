package migration

import (
	"testing"

	"github.com/dangerclosesec/polar/policy/parser"
	"github.com/dangerclosesec/polar/policy/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildModel(t *testing.T, policy string) *PolicyModel {
	t.Helper()
	src := term.NewSource("policy.polar", policy)
	lines, err := parser.ParseString(src)
	require.NoError(t, err)
	return BuildModel(lines, src)
}

func TestBuildModel(t *testing.T) {
	model := buildModel(t, `
		allow(actor, "read", resource) if has_role(actor, "reader", resource);
		allow(actor, "write", _resource) if actor.admin;
		type has_role(actor: User, role: String, resource: Repo);
		?= allow(1, "read", 2);
		resource Repo { roles = ["reader"]; }
	`)

	assert.Equal(t, "policy.polar", model.Source)
	require.Len(t, model.Rules["allow/3"], 2)
	assert.Equal(t, `allow(actor, "read", resource) if has_role(actor, "reader", resource);`, model.Rules["allow/3"][0])
	assert.Len(t, model.RuleTypes["has_role/3"], 1)
	assert.Equal(t, []string{"resource Repo {\n  roles = [\"reader\"];\n}"}, model.ResourceBlocks["resource Repo"])
	assert.Len(t, model.Rules, 1)
}

func TestGenerateDiffIgnoresOrderAndFormatting(t *testing.T) {
	old := buildModel(t, "f(1);\nf(2);\ng(x) if x > 1;")
	reordered := buildModel(t, "g(x) if\n    x > 1;\nf(2); f(1);")

	diff := GenerateDiff(old, reordered)
	assert.True(t, diff.IsEmpty())
	assert.Equal(t, "Policy Changes:\n\nNo changes detected.\n", diff.String())
}

func TestGenerateDiff(t *testing.T) {
	old := buildModel(t, `
		f(1);
		g(x) if x > 1;
		type h(x: User);
		A {}
	`)
	updated := buildModel(t, `
		f(1);
		g(x) if x > 2;
		k();
		B {}
	`)

	diff := GenerateDiff(old, updated)
	require.False(t, diff.IsEmpty())

	assert.Equal(t, []string{"k/0"}, diff.Rules.Added)
	assert.Empty(t, diff.Rules.Removed)
	require.Contains(t, diff.Rules.Modified, "g/1")
	assert.Equal(t, []string{"g(x) if x > 2;"}, diff.Rules.Modified["g/1"].New)

	assert.Equal(t, []string{"h/1"}, diff.RuleTypes.Removed)
	assert.Equal(t, []string{"B"}, diff.ResourceBlocks.Added)
	assert.Equal(t, []string{"A"}, diff.ResourceBlocks.Removed)

	expected := `Policy Changes:

Rules:
  + k/0
  * g/1:
      - g(x) if x > 1;
      + g(x) if x > 2;

Rule Types:
  - h/1

Resource Blocks:
  + B
  - A

`
	assert.Equal(t, expected, diff.String())
}
