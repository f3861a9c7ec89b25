package engine

import (
	"hostforge/core/validator"
	"hostforge/internal/metrics"
)

// Validate checks one hostname against the naming convention
func (e *Engine) Validate(hostname string) validator.Report {
	report := validator.Validate(hostname)
	metrics.Validations.WithLabelValues(metrics.ValidationResult(report.IsValid)).Inc()
	return report
}

// ValidateMultiple checks each hostname independently, in input order
func (e *Engine) ValidateMultiple(hostnames []string) []validator.Result {
	results := validator.ValidateMultiple(hostnames)
	for _, r := range results {
		metrics.Validations.WithLabelValues(metrics.ValidationResult(r.Validation.IsValid)).Inc()
	}
	return results
}

// CheckDuplicates reports repeated hostnames
func (e *Engine) CheckDuplicates(hostnames []string) []validator.Duplicate {
	return validator.CheckDuplicates(hostnames)
}

// Suggestions returns improvement hints for a hostname
func (e *Engine) Suggestions(hostname string) []string {
	return validator.GenerateSuggestions(hostname)
}
