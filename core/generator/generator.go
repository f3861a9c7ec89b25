// Package generator allocates structured, collision-free identifiers.
//
// An identifier is PREFIX-<vendor><type><sector><location>-<seq>, where the
// four codes come from category catalogs and seq is the lowest free number in
// the sector's bucket. Numbering is scoped per sector regardless of the other
// three attributes.
//
// A Generator is not safe for concurrent use. Callers that share one must
// serialize access to keep allocated numbers unique.
package generator

import (
	"strings"
	"time"

	"hostforge/core/allocation"
	"hostforge/core/catalog"
	"hostforge/internal/errors"
)

// Request describes one generate call
type Request struct {
	Vendor   string `json:"vendor" yaml:"vendor"`
	Type     string `json:"type" yaml:"type"`
	Sector   string `json:"sector" yaml:"sector"`
	Location string `json:"location" yaml:"location"`
	Count    int    `json:"count" yaml:"count"`
}

// Identifier is one allocated hostname and the attributes it was built from
type Identifier struct {
	Hostname     string    `json:"hostname" yaml:"hostname"`
	Vendor       string    `json:"vendor" yaml:"vendor"`
	Type         string    `json:"type" yaml:"type"`
	Sector       string    `json:"sector" yaml:"sector"`
	Location     string    `json:"location" yaml:"location"`
	Number       int       `json:"number" yaml:"number"`
	IndexInBatch int       `json:"index_in_batch" yaml:"index_in_batch"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// Option configures a Generator
type Option func(*Generator)

// WithPrefix sets the identifier prefix
func WithPrefix(prefix string) Option {
	return func(g *Generator) {
		g.format = NewFormat(prefix)
	}
}

// WithClock overrides the allocation timestamp source
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithMaxBatch caps the count of a single generate call. Zero means no cap.
func WithMaxBatch(n int) Option {
	return func(g *Generator) {
		g.maxBatch = n
	}
}

// Generator holds the four catalogs and the allocation table
type Generator struct {
	catalogs map[catalog.Kind]*catalog.Catalog
	table    *allocation.Table
	format   Format
	now      func() time.Time
	maxBatch int
}

// New creates a generator with builtin catalogs and an empty allocation table
func New(opts ...Option) *Generator {
	g := &Generator{
		catalogs: make(map[catalog.Kind]*catalog.Catalog, 4),
		table:    allocation.NewTable(),
		format:   NewFormat(DefaultPrefix),
		now:      time.Now,
	}
	for _, kind := range catalog.Kinds() {
		g.catalogs[kind] = catalog.NewDefault(kind)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewFromSnapshot creates a generator and merges a saved snapshot into the
// builtin state. Builtin names are never overwritten. A nil snapshot is the
// same as New.
func NewFromSnapshot(snap *Snapshot, opts ...Option) (*Generator, RestoreReport) {
	g := New(opts...)
	var report RestoreReport
	if snap == nil {
		return g, report
	}

	for _, kind := range catalog.Kinds() {
		for _, name := range g.catalogs[kind].Merge(snap.Additions(kind)) {
			report.SkippedEntries = append(report.SkippedEntries, string(kind)+"/"+name)
		}
	}
	if snap.Allocations != nil {
		g.table, report.DroppedAllocations = allocation.FromSnapshot(snap.Allocations, catalog.NormalizeName)
	}
	return g, report
}

// Format returns the identifier format in use
func (g *Generator) Format() Format {
	return g.format
}

// Generate allocates req.Count identifiers in the sector bucket. Either the
// whole batch is allocated or nothing is.
func (g *Generator) Generate(req Request) ([]Identifier, error) {
	codes, names, err := g.resolve(req.Vendor, req.Type, req.Sector, req.Location)
	if err != nil {
		return nil, err
	}
	if req.Count < 1 {
		return nil, errors.Validationf("count must be at least 1, got %d", req.Count).WithContext("count", req.Count)
	}
	if g.maxBatch > 0 && req.Count > g.maxBatch {
		return nil, errors.Validationf("count must be at most %d, got %d", g.maxBatch, req.Count).WithContext("count", req.Count)
	}

	createdAt := g.now().UTC()
	numbers := g.table.Allocate(names.Sector, req.Count, func(n int) string {
		return g.format.Render(codes, n)
	})

	result := make([]Identifier, len(numbers))
	for i, n := range numbers {
		hostname, _ := g.table.Hostname(names.Sector, n)
		result[i] = Identifier{
			Hostname:     hostname,
			Vendor:       names.Vendor,
			Type:         names.Type,
			Sector:       names.Sector,
			Location:     names.Location,
			Number:       n,
			IndexInBatch: i + 1,
			CreatedAt:    createdAt,
		}
	}
	return result, nil
}

// NextAvailable returns the number the next generate call in sector would
// start from. Unknown or unseen sectors return 1.
func (g *Generator) NextAvailable(sector string) int {
	return g.table.NextFree(g.bucketKey(sector))
}

// Preview returns the numbers a generate call of count would allocate
func (g *Generator) Preview(sector string, count int) []int {
	if count < 1 {
		return nil
	}
	return g.table.Preview(g.bucketKey(sector), count)
}

func (g *Generator) bucketKey(sector string) string {
	return catalog.NormalizeName(sector)
}

// resolve checks presence and catalog membership of all four attributes.
// Names come back in their stored (lowercased) form.
func (g *Generator) resolve(vendor, typ, sector, location string) (Codes, Codes, error) {
	values := []struct {
		kind  catalog.Kind
		value string
	}{
		{catalog.KindVendor, vendor},
		{catalog.KindType, typ},
		{catalog.KindSector, sector},
		{catalog.KindLocation, location},
	}

	var missing []string
	for _, v := range values {
		if strings.TrimSpace(v.value) == "" {
			missing = append(missing, string(v.kind))
		}
	}
	if len(missing) > 0 {
		return Codes{}, Codes{}, errors.Validationf("all fields are required, missing: %s", strings.Join(missing, ", ")).
			WithContext("missing", missing)
	}

	var codes, names [4]string
	for i, v := range values {
		entry, ok := g.catalogs[v.kind].Get(v.value)
		if !ok {
			return Codes{}, Codes{}, errors.Validationf("unknown %s: %s", v.kind, v.value).
				WithContext("kind", string(v.kind)).
				WithContext("value", v.value)
		}
		codes[i] = entry.Code
		names[i] = entry.Name
	}
	return Codes{Vendor: codes[0], Type: codes[1], Sector: codes[2], Location: codes[3]},
		Codes{Vendor: names[0], Type: names[1], Sector: names[2], Location: names[3]},
		nil
}
