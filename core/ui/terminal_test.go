package ui

import (
	"bytes"
	"strings"
	"testing"

	"hostforge/core/generator"
	"hostforge/core/validator"
)

func TestReport_NoColor(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Report("Web_01", validator.Validate("Web_01"))
	out := buf.String()

	if !strings.Contains(out, "✗ Web_01") {
		t.Errorf("Expected failure verdict, got %q", out)
	}
	if !strings.Contains(out, "error: Invalid hostname format") {
		t.Errorf("Expected format error, got %q", out)
	}
	if !strings.Contains(out, "warning: Hostnames should use lowercase letters only") {
		t.Errorf("Expected lowercase warning, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Error("Expected no ANSI sequences with colour disabled")
	}
}

func TestReport_QuietHidesSuggestions(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.SetVerbosity(0)

	w.Report("Web-01", validator.Validate("Web-01"))
	if strings.Contains(buf.String(), "hint:") {
		t.Errorf("Expected no hints in quiet mode, got %q", buf.String())
	}
}

func TestReports_Summary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Reports(validator.ValidateMultiple([]string{"web-prod-01", "-bad"}))
	if !strings.Contains(buf.String(), "1/2 valid") {
		t.Errorf("Expected summary 1/2 valid, got %q", buf.String())
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, false)

	w.Success("done")
	if !strings.Contains(buf.String(), Green) {
		t.Errorf("Expected green marker, got %q", buf.String())
	}
}

func TestDecoded_UnknownCode(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	w.Decoded(&generator.Decoded{
		Hostname: "CNL-9L011-001",
		Type:     "laptop",
		Sector:   "ti",
		Location: "fabrica",
		Number:   1,
		Codes:    generator.Codes{Vendor: "9", Type: "L", Sector: "01", Location: "1"},
	})
	out := buf.String()
	if !strings.Contains(out, "9 (unknown)") {
		t.Errorf("Expected unknown vendor code, got %q", out)
	}
	if !strings.Contains(out, "laptop (L)") {
		t.Errorf("Expected laptop (L), got %q", out)
	}
	if !strings.Contains(out, "not in the current catalogs") {
		t.Errorf("Expected incomplete warning, got %q", out)
	}
}
