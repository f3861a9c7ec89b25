package generator

import (
	"hostforge/core/catalog"
	"hostforge/internal/errors"
)

// Decoded is an identifier split back into catalog names
type Decoded struct {
	Hostname string `json:"hostname" yaml:"hostname"`
	Vendor   string `json:"vendor" yaml:"vendor"`
	Type     string `json:"type" yaml:"type"`
	Sector   string `json:"sector" yaml:"sector"`
	Location string `json:"location" yaml:"location"`
	Number   int    `json:"number" yaml:"number"`
	Codes    Codes  `json:"codes" yaml:"codes"`
}

// Complete reports whether every code resolved to a catalog name
func (d *Decoded) Complete() bool {
	return d.Vendor != "" && d.Type != "" && d.Sector != "" && d.Location != ""
}

// ValidateFormat reports whether hostname has the identifier shape
func (g *Generator) ValidateFormat(hostname string) bool {
	return g.format.Match(hostname)
}

// Decode splits hostname and reverse-looks-up each code. It returns false
// when the format check fails. Codes no longer present in a catalog decode
// to an empty name.
func (g *Generator) Decode(hostname string) (*Decoded, bool) {
	codes, number, ok := g.format.Split(hostname)
	if !ok {
		return nil, false
	}
	d := &Decoded{
		Hostname: hostname,
		Number:   number,
		Codes:    codes,
	}
	d.Vendor, _ = g.catalogs[catalog.KindVendor].Name(codes.Vendor)
	d.Type, _ = g.catalogs[catalog.KindType].Name(codes.Type)
	d.Sector, _ = g.catalogs[catalog.KindSector].Name(codes.Sector)
	d.Location, _ = g.catalogs[catalog.KindLocation].Name(codes.Location)
	return d, true
}

// EncodeRequest names the attributes and number of one identifier
type EncodeRequest struct {
	Vendor   string `json:"vendor" yaml:"vendor"`
	Type     string `json:"type" yaml:"type"`
	Sector   string `json:"sector" yaml:"sector"`
	Location string `json:"location" yaml:"location"`
	Number   int    `json:"number" yaml:"number"`
}

// Encode renders the identifier for catalog names and a number without
// allocating anything.
func (g *Generator) Encode(req EncodeRequest) (string, error) {
	codes, _, err := g.resolve(req.Vendor, req.Type, req.Sector, req.Location)
	if err != nil {
		return "", err
	}
	if req.Number < 1 {
		return "", errors.Validationf("number must be at least 1, got %d", req.Number).WithContext("number", req.Number)
	}
	return g.format.Render(codes, req.Number), nil
}

// IsAllocated reports whether hostname decodes to a number recorded in its
// sector bucket under exactly this hostname.
func (g *Generator) IsAllocated(hostname string) bool {
	d, ok := g.Decode(hostname)
	if !ok || d.Sector == "" {
		return false
	}
	recorded, ok := g.table.Hostname(d.Sector, d.Number)
	return ok && recorded == hostname
}
