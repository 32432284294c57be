package language

import (
	"sort"
	"testing"
)

func TestResolveKnownNames(t *testing.T) {
	cases := map[string]string{
		"French":   "fr",
		"french":   "fr",
		"FRENCH":   "fr",
		" German ": "de",
		"Hebrew":   "iw",
	}
	for name, want := range cases {
		code, ok := Resolve(name)
		if !ok {
			t.Fatalf("Resolve(%q) rejected a catalog language", name)
		}
		if code != want {
			t.Fatalf("Resolve(%q) = %q, want %q", name, code, want)
		}
	}
}

func TestResolveRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "Klingon", "Auto", "en"} {
		if code, ok := Resolve(name); ok {
			t.Fatalf("Resolve(%q) unexpectedly accepted with code %q", name, code)
		}
	}
}

func TestResolveHint(t *testing.T) {
	for _, hint := range []string{"", "Auto", "auto", "  AUTO "} {
		code, ok := ResolveHint(hint)
		if !ok || code != "" {
			t.Fatalf("ResolveHint(%q) = (%q, %v), want empty auto", hint, code, ok)
		}
	}
	code, ok := ResolveHint("Japanese")
	if !ok || code != "ja" {
		t.Fatalf("ResolveHint(Japanese) = (%q, %v)", code, ok)
	}
	if _, ok := ResolveHint("Klingon"); ok {
		t.Fatal("ResolveHint accepted an unknown language")
	}
}

func TestNameForCode(t *testing.T) {
	if got := NameForCode("fr"); got != "French" {
		t.Fatalf("NameForCode(fr) = %q", got)
	}
	if got := NameForCode(""); got != "Unknown" {
		t.Fatalf("NameForCode(empty) = %q", got)
	}
	if got := NameForCode("xx"); got != "XX" {
		t.Fatalf("NameForCode(xx) = %q", got)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("catalog is empty")
	}
	if !sort.StringsAreSorted(names) {
		t.Fatal("Names() is not sorted")
	}
	for _, name := range names {
		if _, ok := Resolve(name); !ok {
			t.Fatalf("catalog name %q does not resolve", name)
		}
	}
}
