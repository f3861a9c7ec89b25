// Package validator checks hostnames against a network naming convention.
//
// Validation never fails: every finding is returned as data. Errors come from
// structural rules (length, character set, label shape, problematic patterns)
// and make a hostname invalid. Warnings and suggestions come from style rules
// (reserved words, genericity, specificity, case, underscores, leading digit)
// and never affect validity.
package validator

import (
	"strings"
)

// Report is the outcome of validating one hostname
type Report struct {
	IsValid     bool     `json:"is_valid" yaml:"is_valid"`
	Errors      []string `json:"errors" yaml:"errors"`
	Warnings    []string `json:"warnings" yaml:"warnings"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

func newReport() *Report {
	return &Report{
		IsValid:     true,
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}
}

func (r *Report) addError(msg string) {
	r.IsValid = false
	r.Errors = append(r.Errors, msg)
}

func (r *Report) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *Report) addSuggestion(msg string) {
	r.Suggestions = append(r.Suggestions, msg)
}

// Validate runs every rule against hostname. It is deterministic and total.
func Validate(hostname string) Report {
	r := newReport()
	if hostname == "" {
		r.addError("Hostname is required")
		return *r
	}

	labels := strings.Split(hostname, ".")
	for _, c := range checks {
		c(hostname, labels, r)
	}
	return *r
}

// Result pairs an input with its report
type Result struct {
	Hostname   string `json:"hostname" yaml:"hostname"`
	Validation Report `json:"validation" yaml:"validation"`
}

// ValidateMultiple validates each hostname, preserving order and repeats
func ValidateMultiple(hostnames []string) []Result {
	results := make([]Result, len(hostnames))
	for i, h := range hostnames {
		results[i] = Result{Hostname: h, Validation: Validate(h)}
	}
	return results
}

// Duplicate is a hostname that repeats an earlier one
type Duplicate struct {
	Hostname   string `json:"hostname" yaml:"hostname"`
	Index      int    `json:"index" yaml:"index"`
	FirstIndex int    `json:"first_index" yaml:"first_index"`
	Message    string `json:"message" yaml:"message"`
}

// CheckDuplicates flags every hostname that case-insensitively repeats an
// earlier one, at the index of the repeat. First occurrences are never flagged.
func CheckDuplicates(hostnames []string) []Duplicate {
	seen := make(map[string]int, len(hostnames))
	duplicates := []Duplicate{}

	for i, h := range hostnames {
		key := strings.ToLower(h)
		if first, ok := seen[key]; ok {
			duplicates = append(duplicates, Duplicate{
				Hostname:   h,
				Index:      i,
				FirstIndex: first,
				Message:    "Duplicate hostname found",
			})
			continue
		}
		seen[key] = i
	}
	return duplicates
}

// GenerateSuggestions returns the report's suggestions when it carries
// warnings, followed by readability hints.
func GenerateSuggestions(hostname string) []string {
	suggestions := []string{}
	report := Validate(hostname)

	if len(report.Warnings) > 0 {
		suggestions = append(suggestions, report.Suggestions...)
	}
	if len(hostname) > 20 {
		suggestions = append(suggestions, "Consider abbreviating for readability")
	}
	if !strings.Contains(hostname, "-") && len(hostname) > 8 {
		suggestions = append(suggestions, "Consider using hyphens to separate words")
	}
	return suggestions
}
