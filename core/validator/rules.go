package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// MaxLength is the maximum total hostname length
	MaxLength = 253

	// MaxLabelLength is the maximum length of one dot-separated label
	MaxLabelLength = 63

	maxLabels         = 4
	maxReadableLength = 30
)

var hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// ReservedWords are first labels that collide with well-known service or environment names
var ReservedWords = []string{
	"www", "ftp", "mail", "smtp", "pop", "imap", "admin", "root",
	"administrator", "test", "dev", "development", "staging", "prod",
	"production", "localhost", "local", "internal", "private",
}

// GenericWords are whole hostnames that say nothing about the machine
var GenericWords = []string{"server", "host", "machine", "computer", "node", "box"}

type pattern struct {
	re      *regexp.Regexp
	message string
}

// problematicPatterns are checked in order; each match adds its own error.
var problematicPatterns = []pattern{
	{regexp.MustCompile(`^[0-9]+$`), "Hostname cannot consist of digits only"},
	{regexp.MustCompile(`^[0-9]+-`), "Avoid starting with digits followed by a hyphen"},
	{regexp.MustCompile(`--+`), "Avoid consecutive hyphens"},
	{regexp.MustCompile(`^-`), "Hostname cannot start with a hyphen"},
	{regexp.MustCompile(`-$`), "Hostname cannot end with a hyphen"},
	{regexp.MustCompile(`\.$`), "Hostname cannot end with a dot"},
	{regexp.MustCompile(`^\.`), "Hostname cannot start with a dot"},
}

// check is one evaluation step. Structural checks report through
// Report.addError; advisory checks only add warnings and suggestions.
type check func(hostname string, labels []string, r *Report)

// checks run in this order, all of them, on every non-empty input.
var checks = []check{
	// structural
	checkBlank,
	checkLength,
	checkFormat,
	checkPatterns,
	checkLabels,
	// advisory
	checkReserved,
	checkGeneric,
	checkSpecific,
	checkStyle,
}

func checkBlank(hostname string, _ []string, r *Report) {
	if strings.TrimSpace(hostname) == "" {
		r.addError("Hostname cannot be blank")
	}
}

func checkLength(hostname string, _ []string, r *Report) {
	if utf8.RuneCountInString(hostname) > MaxLength {
		r.addError(fmt.Sprintf("Hostname too long (maximum %d characters)", MaxLength))
	}
}

func checkFormat(hostname string, _ []string, r *Report) {
	if !hostnamePattern.MatchString(hostname) {
		r.addError("Invalid hostname format")
	}
}

func checkPatterns(hostname string, _ []string, r *Report) {
	for _, p := range problematicPatterns {
		if p.re.MatchString(hostname) {
			r.addError(p.message)
		}
	}
}

func checkLabels(_ string, labels []string, r *Report) {
	for _, label := range labels {
		if utf8.RuneCountInString(label) > MaxLabelLength {
			r.addError(fmt.Sprintf("Label %q too long (maximum %d characters)", label, MaxLabelLength))
		}
		if label == "" {
			r.addError("Empty label found")
		}
	}
}

func checkReserved(_ string, labels []string, r *Report) {
	first := labels[0]
	if slices.Contains(ReservedWords, strings.ToLower(first)) {
		r.addWarning(fmt.Sprintf("%q is a commonly reserved word", first))
		r.addSuggestion(fmt.Sprintf("Consider using a prefix, e.g. %q", "my-"+first))
	}
}

func checkGeneric(hostname string, _ []string, r *Report) {
	if isTooGeneric(hostname) {
		r.addWarning("Hostname is too generic")
		r.addSuggestion("Consider adding more context (environment, location, etc.)")
	}
}

func checkSpecific(hostname string, labels []string, r *Report) {
	if len(labels) > maxLabels || utf8.RuneCountInString(hostname) > maxReadableLength {
		r.addWarning("Hostname is too specific")
		r.addSuggestion("Consider simplifying for readability")
	}
}

func checkStyle(hostname string, _ []string, r *Report) {
	if strings.IndexFunc(hostname, isASCIIUpper) >= 0 {
		r.addWarning("Hostnames should use lowercase letters only")
		r.addSuggestion("Convert to lowercase: " + strings.ToLower(hostname))
	}
	if strings.Contains(hostname, "_") {
		r.addWarning("Hostnames should use hyphens instead of underscores")
		r.addSuggestion("Replace underscores with hyphens: " + strings.ReplaceAll(hostname, "_", "-"))
	}
	if hostname[0] >= '0' && hostname[0] <= '9' {
		r.addWarning("Avoid starting hostnames with a digit")
		r.addSuggestion("Add an alphabetic prefix")
	}
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isTooGeneric(hostname string) bool {
	return slices.Contains(GenericWords, strings.ToLower(hostname))
}
