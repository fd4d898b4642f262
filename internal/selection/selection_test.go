package selection

import (
	"reflect"
	"testing"
)

func TestSet_DoesNotMutateInput(t *testing.T) {
	m := Map{"a": true}
	next := Set(m, "b", true)

	if m["b"] {
		t.Error("input map was mutated")
	}
	if !next["a"] || !next["b"] {
		t.Errorf("unexpected result map: %v", next)
	}
}

func TestSet_RoundTrip(t *testing.T) {
	m := Map{}
	on := Set(m, "x", true)
	off := Set(on, "x", false)

	if on["x"] != true {
		t.Error("expected x selected after set")
	}
	if off["x"] != false {
		t.Error("expected x deselected after round trip")
	}
	if Any(off) {
		t.Error("expected no selection after round trip")
	}
}

func TestPaths(t *testing.T) {
	tests := []struct {
		name string
		m    Map
		want []string
	}{
		{"empty", Map{}, nil},
		{"all false", Map{"a": false, "b": false}, nil},
		{"mixed", Map{"b": true, "a": true, "c": false}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Paths(tt.m); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paths(%v) = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestAnyAndCount(t *testing.T) {
	m := Map{}
	if Any(m) || Count(m) != 0 {
		t.Error("empty map should have no selection")
	}
	m = Set(m, "a", true)
	m = Set(m, "b", false)
	if !Any(m) || Count(m) != 1 {
		t.Errorf("expected one selected, got Any=%v Count=%d", Any(m), Count(m))
	}
}
