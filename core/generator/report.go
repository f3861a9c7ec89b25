package generator

import (
	"hostforge/core/allocation"
	"hostforge/core/catalog"
)

// SectorReport summarizes one sector bucket with at least one allocation
type SectorReport struct {
	allocation.Summary `yaml:",inline"`

	// Code is the sector's catalog code, empty if the sector was removed
	Code string `json:"code" yaml:"code"`
}

// Sectors reports every non-empty sector bucket, sorted by name
func (g *Generator) Sectors() []SectorReport {
	summaries := g.table.Summarize()
	result := make([]SectorReport, len(summaries))
	for i, s := range summaries {
		code, _ := g.catalogs[catalog.KindSector].Code(s.Sector)
		result[i] = SectorReport{Summary: s, Code: code}
	}
	return result
}
