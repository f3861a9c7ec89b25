package hclcatalog

import (
	"hostforge/core/catalog"
	"hostforge/internal/errors"
)

// Adder receives imported entries
type Adder interface {
	Add(kind catalog.Kind, name, code string) error
}

// Outcome records what happened to one imported entry
type Outcome struct {
	Entry  Entry  `json:"entry" yaml:"entry"`
	Added  bool   `json:"added" yaml:"added"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Apply adds entries in order. An entry that fails is skipped with its
// error type as the reason; later entries are still tried.
func Apply(target Adder, entries []Entry) []Outcome {
	outcomes := make([]Outcome, 0, len(entries))
	for _, e := range entries {
		o := Outcome{Entry: e}
		if err := target.Add(e.Kind, e.Name, e.Code); err != nil {
			o.Reason = string(errors.TypeOf(err))
			if appErr, ok := errors.As(err); ok {
				o.Reason = appErr.Message
			}
		} else {
			o.Added = true
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// Counts returns the number of added and skipped outcomes
func Counts(outcomes []Outcome) (added, skipped int) {
	for _, o := range outcomes {
		if o.Added {
			added++
		} else {
			skipped++
		}
	}
	return added, skipped
}
