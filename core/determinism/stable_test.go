package determinism

import (
	"slices"
	"testing"
)

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)
	m.Set("zeta", 4)

	want := []string{"zeta", "alpha", "mid"}
	if got := m.Keys(); !slices.Equal(got, want) {
		t.Errorf("Expected keys %v, got %v", want, got)
	}
	if v, _ := m.Get("zeta"); v != 4 {
		t.Errorf("Expected updated value 4, got %d", v)
	}
}

func TestOrderedMapDelete(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	if !m.Delete("b") {
		t.Fatal("Expected Delete to report presence")
	}
	if m.Delete("b") {
		t.Error("Expected second Delete to report absence")
	}
	if got := m.Keys(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Expected [a c], got %v", got)
	}
	if m.Len() != 2 {
		t.Errorf("Expected len 2, got %d", m.Len())
	}
}

func TestOrderedMapRangeStops(t *testing.T) {
	m := NewOrderedMap[int, string]()
	for i := 0; i < 5; i++ {
		m.Set(i, "x")
	}
	visited := 0
	m.Range(func(k int, _ string) bool {
		visited++
		return k < 1
	})
	if visited != 2 {
		t.Errorf("Expected range to stop after 2 visits, got %d", visited)
	}
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[int]bool{12: true, 3: true, 1000: true, 7: true})
	want := []int{3, 7, 12, 1000}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
