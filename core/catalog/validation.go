// Package catalog - Catalog lint
// Codes are only required to be unique. These rules flag codes that would
// break the fixed-width identifier layout; they are advisory, never enforced.
package catalog

import (
	"fmt"
	"regexp"
)

// Finding is one lint result
type Finding struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Name    string `json:"name" yaml:"name"`
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// LintRule is a catalog lint rule
type LintRule func(Kind, Entry) error

var codeShapes = map[Kind]struct {
	pattern *regexp.Regexp
	desc    string
}{
	KindVendor:   {regexp.MustCompile(`^[A-Z0-9]{1,2}$`), "1-2 uppercase letters or digits"},
	KindType:     {regexp.MustCompile(`^[A-Z]$`), "a single uppercase letter"},
	KindSector:   {regexp.MustCompile(`^[0-9]{2}$`), "exactly two digits"},
	KindLocation: {regexp.MustCompile(`^[0-9]$`), "a single digit"},
}

// DefaultLintRules returns the standard lint rules
func DefaultLintRules() []LintRule {
	return []LintRule{
		lintCodeShape,
		lintVendorWidth,
	}
}

// Lint checks every entry against rules
func (c *Catalog) Lint(rules []LintRule) []Finding {
	var findings []Finding

	for _, entry := range c.Entries() {
		for _, rule := range rules {
			if err := rule(c.kind, entry); err != nil {
				findings = append(findings, Finding{
					Kind:    c.kind,
					Name:    entry.Name,
					Code:    entry.Code,
					Message: err.Error(),
				})
			}
		}
	}

	return findings
}

// lintCodeShape ensures the code fits its fixed-width slot
func lintCodeShape(kind Kind, e Entry) error {
	shape, ok := codeShapes[kind]
	if !ok {
		return nil
	}
	if !shape.pattern.MatchString(e.Code) {
		return fmt.Errorf("code %q should be %s to keep identifiers decodable", e.Code, shape.desc)
	}
	return nil
}

// lintVendorWidth flags two-character vendor codes, which widen the identifier
func lintVendorWidth(kind Kind, e Entry) error {
	if kind == KindVendor && len(e.Code) == 2 {
		return fmt.Errorf("code %q is two characters wide; identifiers for this vendor are one character longer", e.Code)
	}
	return nil
}
