// Package hclcatalog loads catalog entries from HCL files.
//
// A catalog file holds labelled blocks, one per entry:
//
//	vendor "acme" {
//	  code = "AC"
//	}
//
//	sector "juridico" {
//	  code        = "04"
//	  description = "legal department"
//	}
//
// Block types are vendor, type, sector and location.
package hclcatalog

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"hostforge/core/catalog"
)

// Entry is one catalog block
type Entry struct {
	Kind        catalog.Kind `json:"kind" yaml:"kind"`
	Name        string       `json:"name" yaml:"name"`
	Code        string       `json:"code" yaml:"code"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	File        string       `json:"file" yaml:"file"`
	Line        int          `json:"line" yaml:"line"`
}

// ParseError is a diagnostic raised while reading a catalog file
type ParseError struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Result holds the entries and diagnostics of one file
type Result struct {
	Entries []Entry      `json:"entries" yaml:"entries"`
	Errors  []ParseError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// HasErrors reports whether any diagnostic was raised
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

type entryBody struct {
	Code        string `hcl:"code"`
	Description string `hcl:"description,optional"`
}

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: string(catalog.KindVendor), LabelNames: []string{"name"}},
		{Type: string(catalog.KindType), LabelNames: []string{"name"}},
		{Type: string(catalog.KindSector), LabelNames: []string{"name"}},
		{Type: string(catalog.KindLocation), LabelNames: []string{"name"}},
	},
}

// Loader parses catalog files
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new catalog loader
func NewLoader() *Loader {
	return &Loader{
		parser: hclparse.NewParser(),
	}
}

// LoadFile reads and parses a catalog file
func (l *Loader) LoadFile(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return l.Parse(src, path), nil
}

// Parse parses catalog source. Blocks with errors are reported and left out
// of Entries; the rest are kept in file order.
func (l *Loader) Parse(src []byte, filename string) *Result {
	result := &Result{}

	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		result.Errors = append(result.Errors, diagErrors(filename, diags)...)
		return result
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		result.Errors = append(result.Errors, diagErrors(filename, diags)...)
	}
	if content == nil {
		return result
	}

	for _, block := range content.Blocks {
		var body entryBody
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			result.Errors = append(result.Errors, diagErrors(filename, diags)...)
			continue
		}
		result.Entries = append(result.Entries, Entry{
			Kind:        catalog.Kind(block.Type),
			Name:        block.Labels[0],
			Code:        body.Code,
			Description: body.Description,
			File:        filename,
			Line:        block.DefRange.Start.Line,
		})
	}
	return result
}

func diagErrors(filename string, diags hcl.Diagnostics) []ParseError {
	var errs []ParseError
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		errs = append(errs, ParseError{File: filename, Line: line, Message: msg})
	}
	return errs
}
