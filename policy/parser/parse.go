package parser

import (
	"fmt"
	"os"

	"github.com/dangerclosesec/polar/policy/term"
)

// ParseString lexes and parses a whole source unit
func ParseString(src *term.Source) ([]term.Line, error) {
	return ParseLines(NewLexer(src), src)
}

// ParseFile parses a policy file. The returned source unit is shared by
// every term in the lines.
func ParseFile(filePath string) ([]term.Line, *term.Source, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", filePath, err)
	}

	src := term.NewSource(filePath, string(content))
	lines, err := ParseString(src)
	if err != nil {
		return nil, src, err
	}
	return lines, src, nil
}
