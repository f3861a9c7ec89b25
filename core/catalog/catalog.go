// Package catalog - Category catalogs for the identifier scheme
// Each catalog maps a case-insensitive name to a short code for one attribute
// (vendor, type, sector, location). Codes are unique within a catalog.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hostforge/core/determinism"
	"hostforge/internal/errors"
)

// Kind identifies which attribute a catalog describes
type Kind string

const (
	KindVendor   Kind = "vendor"
	KindType     Kind = "type"
	KindSector   Kind = "sector"
	KindLocation Kind = "location"
)

// Kinds returns the four catalog kinds in identifier order
func Kinds() []Kind {
	return []Kind{KindVendor, KindType, KindSector, KindLocation}
}

// Plural returns the snapshot key for the kind
func (k Kind) Plural() string {
	return string(k) + "s"
}

// String returns string representation
func (k Kind) String() string {
	return string(k)
}

var kindAliases = map[string]Kind{
	"vendor": KindVendor, "vendors": KindVendor, "fornecedor": KindVendor, "fornecedores": KindVendor,
	"type": KindType, "types": KindType, "tipo": KindType, "tipos": KindType,
	"sector": KindSector, "sectors": KindSector, "setor": KindSector, "setores": KindSector,
	"location": KindLocation, "locations": KindLocation, "local": KindLocation, "locais": KindLocation,
}

// ParseKind resolves a category name, singular or plural, to a Kind
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", UnknownKind(s)
}

// UnknownKind returns the error for an unrecognised category name
func UnknownKind(s string) error {
	return errors.Validationf("unknown category: %q", s).WithContext("category", s)
}

// NormalizeName folds a catalog name to its stored key
func NormalizeName(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

// Entry is a single name/code pair
type Entry struct {
	Name    string `json:"name" yaml:"name"`
	Code    string `json:"code" yaml:"code"`
	Builtin bool   `json:"builtin" yaml:"builtin"`
}

// Catalog is one name→code mapping with a code→name index
type Catalog struct {
	kind    Kind
	entries *determinism.OrderedMap[string, Entry]
	byCode  map[string]string
}

// New creates an empty catalog
func New(kind Kind) *Catalog {
	return &Catalog{
		kind:    kind,
		entries: determinism.NewOrderedMap[string, Entry](),
		byCode:  make(map[string]string),
	}
}

// Kind returns the attribute this catalog describes
func (c *Catalog) Kind() Kind {
	return c.kind
}

// Add inserts a custom entry. The name is stored lowercased.
// The catalog is left unchanged on error.
func (c *Catalog) Add(name, code string) error {
	return c.insert(name, code, false)
}

func (c *Catalog) insert(name, code string, builtin bool) error {
	key := NormalizeName(name)
	code = strings.TrimSpace(code)
	if key == "" {
		return errors.Validationf("%s name is required", c.kind)
	}
	if code == "" {
		return errors.Validationf("%s code is required", c.kind)
	}
	if c.entries.Has(key) {
		return errors.DuplicateName(string(c.kind), key)
	}
	if owner, taken := c.byCode[code]; taken {
		return errors.DuplicateCode(string(c.kind), code, owner)
	}

	c.entries.Set(key, Entry{Name: key, Code: code, Builtin: builtin})
	c.byCode[code] = key
	return nil
}

// Remove deletes a name and reports whether it existed
func (c *Catalog) Remove(name string) bool {
	key := NormalizeName(name)
	entry, ok := c.entries.Get(key)
	if !ok {
		return false
	}
	c.entries.Delete(key)
	delete(c.byCode, entry.Code)
	return true
}

// Merge adds entries that are not already present, never overwriting.
// Entries whose name exists are ignored; entries whose code is taken are
// skipped and returned so the caller can report them.
func (c *Catalog) Merge(additions map[string]string) (skipped []string) {
	names := make([]string, 0, len(additions))
	for name := range additions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if c.Has(name) {
			continue
		}
		if err := c.Add(name, additions[name]); err != nil {
			skipped = append(skipped, name)
		}
	}
	return skipped
}

// Has reports whether name is present (case-insensitive)
func (c *Catalog) Has(name string) bool {
	return c.entries.Has(NormalizeName(name))
}

// Code returns the code for a name (case-insensitive)
func (c *Catalog) Code(name string) (string, bool) {
	entry, ok := c.entries.Get(NormalizeName(name))
	if !ok {
		return "", false
	}
	return entry.Code, true
}

// Name returns the stored name owning an exact code
func (c *Catalog) Name(code string) (string, bool) {
	name, ok := c.byCode[code]
	return name, ok
}

// Get returns the full entry for a name
func (c *Catalog) Get(name string) (Entry, bool) {
	return c.entries.Get(NormalizeName(name))
}

// Names returns stored names in enumeration order
func (c *Catalog) Names() []string {
	return c.entries.Keys()
}

// Entries returns all entries in enumeration order
func (c *Catalog) Entries() []Entry {
	result := make([]Entry, 0, c.entries.Len())
	c.entries.Range(func(_ string, e Entry) bool {
		result = append(result, e)
		return true
	})
	return result
}

// Custom returns the non-builtin entries as name→code
func (c *Catalog) Custom() map[string]string {
	result := make(map[string]string)
	c.entries.Range(func(name string, e Entry) bool {
		if !e.Builtin {
			result[name] = e.Code
		}
		return true
	})
	return result
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return c.entries.Len()
}

// Stats returns catalog statistics
func (c *Catalog) Stats() CatalogStats {
	stats := CatalogStats{Kind: c.kind}
	c.entries.Range(func(_ string, e Entry) bool {
		stats.Total++
		if e.Builtin {
			stats.Builtin++
		} else {
			stats.Custom++
		}
		return true
	})
	return stats
}

// CatalogStats holds catalog statistics
type CatalogStats struct {
	Kind    Kind `json:"kind"`
	Total   int  `json:"total"`
	Builtin int  `json:"builtin"`
	Custom  int  `json:"custom"`
}
