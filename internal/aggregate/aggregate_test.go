package aggregate

import (
	"reflect"
	"testing"
)

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)
	want := Metric{}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate(nil) = %+v, want all-zero", got)
	}
}

func TestAggregate_Single(t *testing.T) {
	got := Aggregate([]float64{42})
	if got.Min != 42 || got.Max != 42 || got.Median != 42 || got.Variance != 0 {
		t.Errorf("Aggregate([42]) = %+v, want min=median=max=42, variance=0", got)
	}
}

// S4 — Aggregator determinism (spec §8).
func TestAggregate_S4Determinism(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	got := Aggregate(values)
	if got.Median != 50 || got.P75 != 80 || got.P95 != 100 || got.Min != 10 || got.Max != 100 {
		t.Errorf("Aggregate(S4) = %+v, want median=50 p75=80 p95=100 min=10 max=100", got)
	}
}

func TestAggregate_LowerMedianOnEvenCount(t *testing.T) {
	got := Aggregate([]float64{1, 2, 3, 4})
	if got.Median != 2 {
		t.Errorf("Median = %v, want 2 (lower-median convention)", got.Median)
	}
}

func TestAggregate_ValuesPreservesInputOrder(t *testing.T) {
	values := []float64{5, 1, 3}
	got := Aggregate(values)
	if !reflect.DeepEqual(got.Values, values) {
		t.Errorf("Values = %v, want %v (input order, not sorted)", got.Values, values)
	}
}

// Invariant 1 (spec §8): min <= median <= p75 <= p95 <= max.
func TestAggregate_OrderingInvariant(t *testing.T) {
	cases := [][]float64{
		{1},
		{1, 2},
		{3, 1, 2},
		{9, 1, 5, 3, 7, 2, 8, 4, 6},
		{100, 100, 100},
	}
	for _, values := range cases {
		got := Aggregate(values)
		if !(got.Min <= got.Median && got.Median <= got.P75 && got.P75 <= got.P95 && got.P95 <= got.Max) {
			t.Errorf("ordering invariant violated for %v: %+v", values, got)
		}
	}
}

func TestNullable_AllAbsent(t *testing.T) {
	m, ok := Nullable([]*float64{nil, nil})
	if ok || m != nil {
		t.Errorf("Nullable(all absent) = (%v, %v), want (nil, false)", m, ok)
	}
}

func TestNullable_SomePresent(t *testing.T) {
	a, b := 10.0, 20.0
	m, ok := Nullable([]*float64{nil, &a, &b})
	if !ok || m == nil {
		t.Fatalf("Nullable() ok = %v, want true", ok)
	}
	if len(m.Values) != 2 {
		t.Errorf("Values = %v, want len 2 (absent filtered out)", m.Values)
	}
}

func TestNullable_Empty(t *testing.T) {
	m, ok := Nullable(nil)
	if ok || m != nil {
		t.Errorf("Nullable(nil) = (%v, %v), want (nil, false)", m, ok)
	}
}
