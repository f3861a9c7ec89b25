package generator

import (
	"encoding/json"
	"testing"

	"hostforge/internal/errors"
)

func TestValidateFormat(t *testing.T) {
	g := newTestGenerator()
	tests := []struct {
		hostname string
		want     bool
	}{
		{"CNL-1L011-001", true},
		{"CNL-ABL011-042", true},
		{"CNL-1L011-1000", true},
		{"CNL-1l011-001", false},
		{"CNL-1L11-001", false},
		{"CNL-1L011-01", false},
		{"XYZ-1L011-001", false},
		{"cnl-1L011-001", false},
		{"CNL-ABCL011-001", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := g.ValidateFormat(tt.hostname); got != tt.want {
			t.Errorf("ValidateFormat(%q) = %v, expected %v", tt.hostname, got, tt.want)
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	g := newTestGenerator()
	if err := g.AddVendor("globex", "GX"); err != nil {
		t.Fatal(err)
	}
	requests := []Request{
		{Vendor: "Vendor3", Type: "servidor", Sector: "financeiro", Location: "escritorio", Count: 2},
		{Vendor: "globex", Type: "celular", Sector: "rh", Location: "deposito", Count: 1},
	}
	for _, req := range requests {
		for _, id := range mustGenerate(t, g, req) {
			d, ok := g.Decode(id.Hostname)
			if !ok {
				t.Fatalf("Expected %s to decode", id.Hostname)
			}
			if d.Vendor != id.Vendor || d.Type != id.Type || d.Sector != id.Sector || d.Location != id.Location {
				t.Errorf("Round trip mismatch for %s: %+v vs %+v", id.Hostname, d, id)
			}
			if d.Number != id.Number {
				t.Errorf("Expected number %d, got %d", id.Number, d.Number)
			}
			if !g.IsAllocated(id.Hostname) {
				t.Errorf("Expected %s to be recorded as allocated", id.Hostname)
			}
		}
	}
}

func TestDecodeSplitsFromTheRight(t *testing.T) {
	g := newTestGenerator()
	d, ok := g.Decode("CNL-5S032-017")
	if !ok {
		t.Fatal("Expected decode to succeed")
	}
	want := Codes{Vendor: "5", Type: "S", Sector: "03", Location: "2"}
	if d.Codes != want {
		t.Errorf("Expected codes %+v, got %+v", want, d.Codes)
	}
	if d.Vendor != "vendor5" || d.Type != "servidor" || d.Sector != "financeiro" || d.Location != "escritorio" {
		t.Errorf("Unexpected names: %+v", d)
	}
	if d.Number != 17 {
		t.Errorf("Expected 17, got %d", d.Number)
	}
	if g.IsAllocated("CNL-5S032-017") {
		t.Error("Decodable but unallocated hostname must not report allocated")
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	g := newTestGenerator()
	if d, ok := g.Decode("web-01.example.com"); ok || d != nil {
		t.Errorf("Expected nil/false, got %+v/%v", d, ok)
	}
}

func TestDecodeUnknownCodes(t *testing.T) {
	g := newTestGenerator()
	d, ok := g.Decode("CNL-9Z999-001")
	if !ok {
		t.Fatal("Expected format check to pass")
	}
	if d.Vendor != "" || d.Type != "" || d.Sector != "" || d.Location != "" {
		t.Errorf("Expected empty names for unknown codes, got %+v", d)
	}
}

func TestEncode(t *testing.T) {
	g := newTestGenerator()
	got, err := g.Encode(EncodeRequest{Vendor: "vendor2", Type: "impressora", Sector: "rh", Location: "fabrica", Number: 12})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != "CNL-2I021-012" {
		t.Errorf("Expected CNL-2I021-012, got %s", got)
	}
	if g.NextAvailable("rh") != 1 {
		t.Error("Encode must not allocate")
	}

	if _, err := g.Encode(EncodeRequest{Vendor: "vendor2", Type: "impressora", Sector: "rh", Location: "fabrica"}); !errors.IsType(err, errors.TypeValidation) {
		t.Errorf("Expected validation error for number 0, got %v", err)
	}
	if _, err := g.Encode(EncodeRequest{Vendor: "initech", Type: "impressora", Sector: "rh", Location: "fabrica", Number: 1}); !errors.IsType(err, errors.TypeValidation) {
		t.Errorf("Expected validation error for unknown vendor, got %v", err)
	}
}

func TestCustomPrefix(t *testing.T) {
	g := newTestGenerator(WithPrefix("LAB.X"))
	ids := mustGenerate(t, g, Request{Vendor: "vendor1", Type: "laptop", Sector: "ti", Location: "fabrica", Count: 1})
	if ids[0].Hostname != "LAB.X-1L011-001" {
		t.Fatalf("Expected LAB.X-1L011-001, got %s", ids[0].Hostname)
	}
	if !g.ValidateFormat(ids[0].Hostname) {
		t.Error("Expected prefixed identifier to validate")
	}
	if g.ValidateFormat("LABXX-1L011-001") {
		t.Error("Expected prefix to be matched literally")
	}
}

func TestSnapshotJSONKeys(t *testing.T) {
	g := newTestGenerator()
	if err := g.AddLocation("annex", "5"); err != nil {
		t.Fatal(err)
	}
	mustGenerate(t, g, Request{Vendor: "vendor1", Type: "laptop", Sector: "ti", Location: "annex", Count: 1})

	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"vendors", "types", "sectors", "locations", "allocations"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected key %q in snapshot JSON %s", key, data)
		}
	}

	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	restored, report := NewFromSnapshot(&back)
	if !report.Clean() {
		t.Errorf("Expected clean restore, got %+v", report)
	}
	if restored.NextAvailable("ti") != 2 {
		t.Errorf("Expected restored next 2, got %d", restored.NextAvailable("ti"))
	}
}

func TestSnapshotLegacyKeys(t *testing.T) {
	legacy := `{
		"fornecedores": {"acme": "7"},
		"tipos": {},
		"setores": {"compras": "04"},
		"locais": {"annex": "5"},
		"maquinas": {"compras": {"001": "CNL-7L045-001"}}
	}`
	var snap Snapshot
	if err := json.Unmarshal([]byte(legacy), &snap); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	g, _ := NewFromSnapshot(&snap)

	if _, ok := g.catalogs["vendor"].Code("acme"); !ok {
		t.Error("Expected legacy vendor to be restored")
	}
	if g.NextAvailable("compras") != 2 {
		t.Errorf("Expected legacy allocations restored, next=%d", g.NextAvailable("compras"))
	}
}
