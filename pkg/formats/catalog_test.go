package formats

import "testing"

func TestCatalogRoundTrip(t *testing.T) {
	for _, d := range All() {
		got, ok := Lookup(d.Name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", d.Name)
		}
		if got != d {
			t.Errorf("Lookup(%q) = %+v, want %+v", d.Name, got, d)
		}
		got, ok = LookupMode(d.Group, d.Mode)
		if !ok || got != d {
			t.Errorf("LookupMode(%d, %d) = %+v, %t, want %+v", d.Group, d.Mode, got, ok, d)
		}
	}
}

func TestCatalogUnique(t *testing.T) {
	names := make(map[string]bool)
	modes := make(map[[2]int]bool)
	for _, d := range All() {
		if names[d.Name] {
			t.Errorf("duplicate name %q", d.Name)
		}
		names[d.Name] = true
		key := [2]int{d.Group, d.Mode}
		if modes[key] {
			t.Errorf("duplicate (group, mode) pair (%d, %d)", d.Group, d.Mode)
		}
		modes[key] = true
	}
}

func TestRateLadder(t *testing.T) {
	want := []float64{1.875, 3.75, 7.5, 15, 30, 60, 120, 240}
	rates := Rates()
	if len(rates) != len(want) {
		t.Fatalf("Rates() has %d entries, want %d", len(rates), len(want))
	}
	for i, r := range rates {
		if r.Index != i {
			t.Errorf("rates[%d].Index = %d, want %d", i, r.Index, i)
		}
		if r.FPS != want[i] {
			t.Errorf("rates[%d].FPS = %g, want %g", i, r.FPS, want[i])
		}
	}
}

func TestRateIndex(t *testing.T) {
	idx, ok := RateIndex(30)
	if !ok || idx != 4 {
		t.Errorf("RateIndex(30) = %d, %t, want 4, true", idx, ok)
	}
	if _, ok := RateIndex(29); ok {
		t.Error("RateIndex(29) = ok, want not found")
	}
	if _, ok := RateByIndex(8); ok {
		t.Error("RateByIndex(8) = ok, want not found")
	}
	r, ok := RateByIndex(0)
	if !ok || r.FPS != 1.875 {
		t.Errorf("RateByIndex(0) = %+v, %t, want 1.875 fps", r, ok)
	}
}
