package allocation

import (
	"github.com/shopspring/decimal"
)

// Capacity is the size of the sequence space at the minimum pad width (001-999)
const Capacity = 999

// Summary describes one non-empty bucket
type Summary struct {
	Sector    string   `json:"sector" yaml:"sector"`
	Count     int      `json:"count" yaml:"count"`
	Hostnames []string `json:"hostnames" yaml:"hostnames"`
	Next      int      `json:"next" yaml:"next"`

	// Utilization is the percentage of the three-digit range in use.
	// Buckets that spilled past 999 report more than 100.
	Utilization decimal.Decimal `json:"utilization" yaml:"utilization"`
}

// Summarize reports every bucket that has at least one allocation
func (t *Table) Summarize() []Summary {
	var result []Summary
	for _, sector := range t.Sectors() {
		count := t.Count(sector)
		if count == 0 {
			continue
		}
		result = append(result, Summary{
			Sector:      sector,
			Count:       count,
			Hostnames:   t.Listing(sector),
			Next:        t.NextFree(sector),
			Utilization: Utilization(count),
		})
	}
	return result
}

// Utilization returns count as a percentage of Capacity, rounded to two places
func Utilization(count int) decimal.Decimal {
	return decimal.NewFromInt(int64(count)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(Capacity)).
		Round(2)
}
