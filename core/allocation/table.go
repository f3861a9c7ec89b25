// Package allocation tracks which sequence numbers are taken in each sector bucket.
// Numbers are positive, unique within a bucket, and never reclaimed.
package allocation

import (
	"fmt"
	"sort"
	"strconv"

	"hostforge/core/determinism"
)

// PadWidth is the minimum number of digits a sequence number renders with
const PadWidth = 3

// PadNumber renders n zero-padded to PadWidth. Wider numbers are not truncated.
func PadNumber(n int) string {
	return fmt.Sprintf("%0*d", PadWidth, n)
}

// Table maps a bucket key (sector name) to its allocated numbers and the
// hostname recorded for each.
type Table struct {
	buckets map[string]map[int]string
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{buckets: make(map[string]map[int]string)}
}

// FromSnapshot rebuilds a table from its serialized form
// (sector → padded number → hostname). Sector keys are folded with fold, so
// buckets saved under differently cased names merge into one. Keys that are
// not positive integers, or that collide with an earlier key for the same
// number, are dropped and returned as "sector/key". A nil fold keeps keys as-is.
func FromSnapshot(raw map[string]map[string]string, fold func(string) string) (*Table, []string) {
	t := NewTable()
	var dropped []string

	for _, sector := range determinism.SortedKeys(raw) {
		name := sector
		if fold != nil {
			name = fold(sector)
		}
		bucket := t.Ensure(name)
		for _, key := range determinism.SortedKeys(raw[sector]) {
			n, err := strconv.Atoi(key)
			if err != nil || n < 1 {
				dropped = append(dropped, sector+"/"+key)
				continue
			}
			if _, dup := bucket[n]; dup {
				dropped = append(dropped, sector+"/"+key)
				continue
			}
			bucket[n] = raw[sector][key]
		}
	}
	return t, dropped
}

// Ensure creates the bucket for sector if absent and returns it
func (t *Table) Ensure(sector string) map[int]string {
	bucket, ok := t.buckets[sector]
	if !ok {
		bucket = make(map[int]string)
		t.buckets[sector] = bucket
	}
	return bucket
}

// Numbers returns the allocated numbers of a bucket in ascending order
func (t *Table) Numbers(sector string) []int {
	return determinism.SortedKeys(t.buckets[sector])
}

// Has reports whether n is allocated in sector
func (t *Table) Has(sector string, n int) bool {
	_, ok := t.buckets[sector][n]
	return ok
}

// Count returns how many numbers are allocated in sector
func (t *Table) Count(sector string) int {
	return len(t.buckets[sector])
}

// NextFree returns the smallest positive integer not allocated in sector.
// It does not mutate the table.
func (t *Table) NextFree(sector string) int {
	return lowestFree(t.Numbers(sector), 1)[0]
}

// Preview returns the count lowest free numbers without allocating them
func (t *Table) Preview(sector string, count int) []int {
	return lowestFree(t.Numbers(sector), count)
}

// Allocate reserves the count lowest free numbers of sector, in ascending
// order, recording render(n) as the hostname for each.
func (t *Table) Allocate(sector string, count int, render func(n int) string) []int {
	bucket := t.Ensure(sector)
	numbers := lowestFree(t.Numbers(sector), count)
	for _, n := range numbers {
		bucket[n] = render(n)
	}
	return numbers
}

// Hostname returns the hostname recorded for n in sector
func (t *Table) Hostname(sector string, n int) (string, bool) {
	h, ok := t.buckets[sector][n]
	return h, ok
}

// Listing returns recorded hostnames of sector ordered by number
func (t *Table) Listing(sector string) []string {
	numbers := t.Numbers(sector)
	result := make([]string, len(numbers))
	for i, n := range numbers {
		result[i] = t.buckets[sector][n]
	}
	return result
}

// Sectors returns every bucket key, including empty buckets, sorted
func (t *Table) Sectors() []string {
	keys := make([]string, 0, len(t.buckets))
	for k := range t.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns the serialized form: sector → padded number → hostname
func (t *Table) Snapshot() map[string]map[string]string {
	result := make(map[string]map[string]string, len(t.buckets))
	for sector, bucket := range t.buckets {
		out := make(map[string]string, len(bucket))
		for n, hostname := range bucket {
			out[PadNumber(n)] = hostname
		}
		result[sector] = out
	}
	return result
}

// lowestFree walks a candidate counter upward from 1, skipping every number
// in used (ascending), until count free numbers are collected.
func lowestFree(used []int, count int) []int {
	result := make([]int, 0, count)
	candidate := 1
	i := 0
	for len(result) < count {
		for i < len(used) && used[i] < candidate {
			i++
		}
		if i < len(used) && used[i] == candidate {
			candidate++
			continue
		}
		result = append(result, candidate)
		candidate++
	}
	return result
}
