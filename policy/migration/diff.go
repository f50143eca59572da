package migration

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ModelDiff represents the differences between two policy models
type ModelDiff struct {
	Rules          *SectionDiff
	RuleTypes      *SectionDiff
	ResourceBlocks *SectionDiff
}

// SectionDiff represents the differences within one kind of definition
type SectionDiff struct {
	Added    []string
	Removed  []string
	Modified map[string]*DefinitionDiff
}

// DefinitionDiff holds the old and new rendered definitions of a signature
type DefinitionDiff struct {
	Old []string
	New []string
}

// GenerateDiff generates a diff between two policy models
func GenerateDiff(oldModel, newModel *PolicyModel) *ModelDiff {
	return &ModelDiff{
		Rules:          compareSection(oldModel.Rules, newModel.Rules),
		RuleTypes:      compareSection(oldModel.RuleTypes, newModel.RuleTypes),
		ResourceBlocks: compareSection(oldModel.ResourceBlocks, newModel.ResourceBlocks),
	}
}

func compareSection(oldDefs, newDefs map[string][]string) *SectionDiff {
	diff := &SectionDiff{
		Modified: make(map[string]*DefinitionDiff),
	}

	for name, defs := range newDefs {
		old, exists := oldDefs[name]
		if !exists {
			diff.Added = append(diff.Added, name)
			continue
		}
		if !slices.Equal(old, defs) {
			diff.Modified[name] = &DefinitionDiff{Old: old, New: defs}
		}
	}

	for name := range oldDefs {
		if _, exists := newDefs[name]; !exists {
			diff.Removed = append(diff.Removed, name)
		}
	}

	slices.Sort(diff.Added)
	slices.Sort(diff.Removed)
	return diff
}

// IsEmpty returns true if the section has no changes
func (d *SectionDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Removed) == 0 &&
		len(d.Modified) == 0
}

// IsEmpty returns true if the diff contains no changes
func (d *ModelDiff) IsEmpty() bool {
	return d.Rules.IsEmpty() &&
		d.RuleTypes.IsEmpty() &&
		d.ResourceBlocks.IsEmpty()
}

// String returns a string representation of the model diff
func (d *ModelDiff) String() string {
	var sb strings.Builder

	sb.WriteString("Policy Changes:\n\n")

	if d.IsEmpty() {
		sb.WriteString("No changes detected.\n")
		return sb.String()
	}

	d.Rules.write(&sb, "Rules")
	d.RuleTypes.write(&sb, "Rule Types")
	d.ResourceBlocks.write(&sb, "Resource Blocks")

	return sb.String()
}

func (d *SectionDiff) write(sb *strings.Builder, title string) {
	if d.IsEmpty() {
		return
	}

	sb.WriteString(title + ":\n")
	for _, name := range d.Added {
		sb.WriteString(fmt.Sprintf("  + %s\n", name))
	}
	for _, name := range d.Removed {
		sb.WriteString(fmt.Sprintf("  - %s\n", name))
	}

	modified := maps.Keys(d.Modified)
	slices.Sort(modified)
	for _, name := range modified {
		defs := d.Modified[name]
		sb.WriteString(fmt.Sprintf("  * %s:\n", name))
		for _, text := range defs.Old {
			if !slices.Contains(defs.New, text) {
				sb.WriteString(fmt.Sprintf("      - %s\n", text))
			}
		}
		for _, text := range defs.New {
			if !slices.Contains(defs.Old, text) {
				sb.WriteString(fmt.Sprintf("      + %s\n", text))
			}
		}
	}
	sb.WriteString("\n")
}
