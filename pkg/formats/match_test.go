package formats

import (
	"errors"
	"testing"
)

var monoSet = []string{
	"800x600 Mono 8-bit",
	"800x600 Mono 16-bit",
	"800x600 YUV 4:2:2",
	"640x480 Mono 8-bit",
}

func TestResolveUnique(t *testing.T) {
	d, err := Resolve("800x600 mono 8-bit", monoSet)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if d.Name != "800x600 Mono 8-bit" {
		t.Errorf("resolved %q, want %q", d.Name, "800x600 Mono 8-bit")
	}
}

func TestResolveTokenOrder(t *testing.T) {
	a, err := Resolve("mono 800x600 8-bit", monoSet)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	b, err := Resolve("8-bit 800x600 mono", monoSet)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if a != b {
		t.Errorf("token order changed the result: %+v vs %+v", a, b)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	d, err := Resolve("800X600 MONO 8-BIT", monoSet)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if d.Name != "800x600 Mono 8-bit" {
		t.Errorf("resolved %q, want %q", d.Name, "800x600 Mono 8-bit")
	}
}

func TestResolveAmbiguous(t *testing.T) {
	_, err := Resolve("800x600 mono", monoSet)
	if !errors.Is(err, ErrAmbiguous) {
		t.Errorf("Resolve(\"800x600 mono\") = %v, want ErrAmbiguous", err)
	}
}

func TestResolveNoMatch(t *testing.T) {
	_, err := Resolve("1920x1080", monoSet)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Resolve(\"1920x1080\") = %v, want ErrNoMatch", err)
	}
}

func TestResolveShortToken(t *testing.T) {
	_, err := Resolve("zz", monoSet)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("Resolve(\"zz\") = %v, want ErrInvalidQuery", err)
	}
	_, err = Resolve("800x600 8", monoSet)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("Resolve(\"800x600 8\") = %v, want ErrInvalidQuery", err)
	}
}

func TestResolveEmpty(t *testing.T) {
	_, err := Resolve("   ", monoSet)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("Resolve(blank) = %v, want ErrInvalidQuery", err)
	}
}

func TestResolveOutsideCatalog(t *testing.T) {
	// A name the camera reports but the catalog does not know stays
	// unresolvable even when the tokens single it out.
	_, err := Resolve("vendor special", []string{"Vendor Special 1234x567"})
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Resolve uncatalogued name = %v, want ErrNoMatch", err)
	}
}
