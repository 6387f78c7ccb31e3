package emotion

import "testing"

func TestCatalogWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range Catalog {
		if e.Name == "" {
			t.Fatal("catalog entry with empty name")
		}
		if seen[e.Name] {
			t.Fatalf("duplicate catalog name %q", e.Name)
		}
		seen[e.Name] = true
		if len(e.IntensityLevels) != 4 {
			t.Errorf("%s: want 4 intensity levels, got %d", e.Name, len(e.IntensityLevels))
		}
		if len(e.Tips) == 0 {
			t.Errorf("%s: no coping tips", e.Name)
		}
		if e.Emoji == "" || e.Color == "" {
			t.Errorf("%s: missing emoji or color", e.Name)
		}
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("Joy")
	if !ok {
		t.Fatal("Joy not found")
	}
	if e.IntensityLevels[3] != "Ecstatic" {
		t.Errorf("Joy top intensity = %q, want Ecstatic", e.IntensityLevels[3])
	}
	if _, ok := Lookup("Boredom"); ok {
		t.Error("unexpected catalog hit for Boredom")
	}
}

func TestIntensityLabel(t *testing.T) {
	if got := IntensityLabel("Joy", 3); got != "Ecstatic" {
		t.Errorf("IntensityLabel(Joy, 3) = %q", got)
	}
	if got := IntensityLabel("Joy", 7); got != "" {
		t.Errorf("out of range index returned %q", got)
	}
	if got := IntensityLabel("Nope", 0); got != "" {
		t.Errorf("unknown emotion returned %q", got)
	}
}

func TestNamesOrder(t *testing.T) {
	names := Names()
	if len(names) != len(Catalog) {
		t.Fatalf("Names() length %d, catalog %d", len(names), len(Catalog))
	}
	for i, e := range Catalog {
		if names[i] != e.Name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], e.Name)
		}
	}
}
