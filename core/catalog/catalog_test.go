package catalog

import (
	"slices"
	"testing"

	"hostforge/internal/errors"
)

func TestNewDefaultHasBuiltins(t *testing.T) {
	c := NewDefault(KindSector)
	if c.Len() != 3 {
		t.Fatalf("Expected 3 builtin sectors, got %d", c.Len())
	}
	code, ok := c.Code("TI")
	if !ok || code != "01" {
		t.Errorf("Expected case-insensitive lookup of TI to give 01, got %q (%v)", code, ok)
	}
	if len(c.Custom()) != 0 {
		t.Errorf("Expected no custom entries, got %v", c.Custom())
	}
}

func TestAddStoresLowercasedName(t *testing.T) {
	c := NewDefault(KindVendor)
	if err := c.Add("  AcmeCorp ", "7"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	names := c.Names()
	if names[len(names)-1] != "acmecorp" {
		t.Errorf("Expected last name acmecorp, got %v", names)
	}
	if name, ok := c.Name("7"); !ok || name != "acmecorp" {
		t.Errorf("Expected reverse lookup of 7 to give acmecorp, got %q", name)
	}
	if got := c.Custom(); got["acmecorp"] != "7" || len(got) != 1 {
		t.Errorf("Expected custom {acmecorp:7}, got %v", got)
	}
}

func TestAddDuplicateNameLeavesCatalogUnchanged(t *testing.T) {
	c := NewDefault(KindVendor)
	before := c.Entries()

	err := c.Add("VENDOR1", "9")
	if !errors.IsType(err, errors.TypeDuplicateName) {
		t.Fatalf("Expected %s, got %v", errors.TypeDuplicateName, err)
	}
	if !slices.Equal(before, c.Entries()) {
		t.Error("Catalog changed after rejected add")
	}
	if _, ok := c.Name("9"); ok {
		t.Error("Code index changed after rejected add")
	}
}

func TestAddDuplicateCodeLeavesCatalogUnchanged(t *testing.T) {
	c := NewDefault(KindType)
	before := c.Entries()

	err := c.Add("tablet", "L")
	if !errors.IsType(err, errors.TypeDuplicateCode) {
		t.Fatalf("Expected %s, got %v", errors.TypeDuplicateCode, err)
	}
	if !slices.Equal(before, c.Entries()) {
		t.Error("Catalog changed after rejected add")
	}
	if c.Has("tablet") {
		t.Error("tablet must not be present")
	}
}

func TestAddRejectsBlankInput(t *testing.T) {
	c := New(KindLocation)
	if err := c.Add("   ", "5"); !errors.IsType(err, errors.TypeValidation) {
		t.Errorf("Expected validation error for blank name, got %v", err)
	}
	if err := c.Add("annex", ""); !errors.IsType(err, errors.TypeValidation) {
		t.Errorf("Expected validation error for blank code, got %v", err)
	}
}

func TestRemoveKeepsIndexConsistent(t *testing.T) {
	c := NewDefault(KindLocation)
	if !c.Remove("Deposito") {
		t.Fatal("Expected Remove to find deposito")
	}
	if c.Remove("deposito") {
		t.Error("Expected second Remove to report absence")
	}
	if _, ok := c.Name("4"); ok {
		t.Error("Expected code 4 to be released")
	}
	if err := c.Add("annex", "4"); err != nil {
		t.Errorf("Expected freed code to be reusable, got %v", err)
	}
}

func TestMergeNeverOverwrites(t *testing.T) {
	c := NewDefault(KindSector)
	skipped := c.Merge(map[string]string{
		"TI":        "99",
		"compras":   "04",
		"marketing": "01",
	})

	if code, _ := c.Code("ti"); code != "01" {
		t.Errorf("Expected builtin ti to keep 01, got %s", code)
	}
	if code, _ := c.Code("compras"); code != "04" {
		t.Errorf("Expected compras to be added with 04, got %s", code)
	}
	if !slices.Equal(skipped, []string{"marketing"}) {
		t.Errorf("Expected marketing to be skipped for code collision, got %v", skipped)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"vendor", KindVendor},
		{"Vendors", KindVendor},
		{"fornecedores", KindVendor},
		{"tipos", KindType},
		{"setor", KindSector},
		{"locais", KindLocation},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("ParseKind(%q) = %q, %v; expected %q", tt.input, got, err, tt.want)
		}
	}
	if _, err := ParseKind("owner"); !errors.IsType(err, errors.TypeValidation) {
		t.Errorf("Expected validation error for unknown kind, got %v", err)
	}
}

func TestLintFlagsMisshapenCodes(t *testing.T) {
	c := NewDefault(KindSector)
	if err := c.Add("compras", "4"); err != nil {
		t.Fatal(err)
	}
	findings := c.Lint(DefaultLintRules())
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d: %v", len(findings), findings)
	}
	if findings[0].Name != "compras" {
		t.Errorf("Expected finding for compras, got %s", findings[0].Name)
	}
}

func TestBuiltinsPassLint(t *testing.T) {
	for _, kind := range Kinds() {
		if findings := NewDefault(kind).Lint(DefaultLintRules()); len(findings) != 0 {
			t.Errorf("Expected builtin %s catalog to lint clean, got %v", kind, findings)
		}
	}
}

func TestIsDefault(t *testing.T) {
	if !IsDefault(KindType, "Laptop") {
		t.Error("Expected laptop to be a builtin type")
	}
	if IsDefault(KindType, "tablet") {
		t.Error("Did not expect tablet to be builtin")
	}
}
