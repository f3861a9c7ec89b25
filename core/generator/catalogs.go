package generator

import (
	"hostforge/core/catalog"
)

// Add inserts a custom catalog entry. Fails with a DUPLICATE_NAME error if the
// lowercased name exists, or DUPLICATE_CODE if the code is taken; the catalog
// is unchanged on failure.
func (g *Generator) Add(kind catalog.Kind, name, code string) error {
	c, err := g.catalog(kind)
	if err != nil {
		return err
	}
	return c.Add(name, code)
}

// AddVendor adds a vendor
func (g *Generator) AddVendor(name, code string) error {
	return g.Add(catalog.KindVendor, name, code)
}

// AddType adds an asset type
func (g *Generator) AddType(name, code string) error {
	return g.Add(catalog.KindType, name, code)
}

// AddSector adds a sector
func (g *Generator) AddSector(name, code string) error {
	return g.Add(catalog.KindSector, name, code)
}

// AddLocation adds a location
func (g *Generator) AddLocation(name, code string) error {
	return g.Add(catalog.KindLocation, name, code)
}

// Remove deletes a name from a catalog and reports whether it existed.
// Allocations made with the entry are kept.
func (g *Generator) Remove(kind catalog.Kind, name string) bool {
	c, err := g.catalog(kind)
	if err != nil {
		return false
	}
	return c.Remove(name)
}

// RemoveItem is Remove keyed by a category name ("vendor", "setores", ...).
// Unknown categories report false.
func (g *Generator) RemoveItem(category, name string) bool {
	kind, err := catalog.ParseKind(category)
	if err != nil {
		return false
	}
	return g.Remove(kind, name)
}

// Names lists a catalog's names in enumeration order
func (g *Generator) Names(kind catalog.Kind) []string {
	if c, err := g.catalog(kind); err == nil {
		return c.Names()
	}
	return nil
}

// Entries lists a catalog's entries in enumeration order
func (g *Generator) Entries(kind catalog.Kind) []catalog.Entry {
	if c, err := g.catalog(kind); err == nil {
		return c.Entries()
	}
	return nil
}

// Vendors lists vendor names
func (g *Generator) Vendors() []string { return g.Names(catalog.KindVendor) }

// Types lists asset type names
func (g *Generator) Types() []string { return g.Names(catalog.KindType) }

// SectorNames lists sector names
func (g *Generator) SectorNames() []string { return g.Names(catalog.KindSector) }

// Locations lists location names
func (g *Generator) Locations() []string { return g.Names(catalog.KindLocation) }

// Lint runs the catalog lint rules over all four catalogs
func (g *Generator) Lint() []catalog.Finding {
	var findings []catalog.Finding
	rules := catalog.DefaultLintRules()
	for _, kind := range catalog.Kinds() {
		findings = append(findings, g.catalogs[kind].Lint(rules)...)
	}
	return findings
}

// Stats returns per-catalog statistics in identifier order
func (g *Generator) Stats() []catalog.CatalogStats {
	result := make([]catalog.CatalogStats, 0, 4)
	for _, kind := range catalog.Kinds() {
		result = append(result, g.catalogs[kind].Stats())
	}
	return result
}

// Snapshot exports the non-builtin catalog entries and the full allocation
// table for the caller to persist.
func (g *Generator) Snapshot() *Snapshot {
	snap := &Snapshot{Allocations: g.table.Snapshot()}
	for _, kind := range catalog.Kinds() {
		snap.setAdditions(kind, g.catalogs[kind].Custom())
	}
	return snap
}

func (g *Generator) catalog(kind catalog.Kind) (*catalog.Catalog, error) {
	c, ok := g.catalogs[kind]
	if !ok {
		return nil, catalog.UnknownKind(string(kind))
	}
	return c, nil
}
