package guard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlaceholder_Deterministic(t *testing.T) {
	if Placeholder("Google Chrome") != Placeholder("Google Chrome") {
		t.Fatal("Placeholder not deterministic")
	}
	if Placeholder("Google Chrome") == Placeholder("Google") {
		t.Fatal("Placeholder collision")
	}
	if len(Placeholder("x")) != 32 {
		t.Errorf("len = %d, want 32", len(Placeholder("x")))
	}
}

func TestProtect_HidesLiterals(t *testing.T) {
	g := New([]string{"Chromium OS"})
	got, err := g.Protect(`<message name="IDS_X">Chromium OS and Chromium</message>`)
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if strings.Contains(got, "Chromium OS") {
		t.Errorf("literal still present: %q", got)
	}
	if !strings.Contains(got, "and Chromium") {
		t.Errorf("non-reserved text changed: %q", got)
	}
	if !strings.Contains(got, Placeholder("Chromium OS")) {
		t.Errorf("placeholder missing: %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	g := New([]string{"Chromium", "Chromium OS", "Google", "", "Google"})
	inputs := []string{
		"",
		"nothing reserved here",
		"Chromium OS is built on Chromium by Google",
		`<message name="IDS_ABOUT" desc="Google">About Chromium OS</message>`,
		"GoogleGoogleChromium",
	}
	for _, in := range inputs {
		protected, err := g.Protect(in)
		if err != nil {
			t.Fatalf("Protect(%q): %v", in, err)
		}
		if got := g.Restore(protected); got != in {
			t.Errorf("round trip of %q = %q", in, got)
		}
	}
	if g.Len() != 3 {
		t.Errorf("Len = %d, want 3", g.Len())
	}
}

func TestProtect_LongestLiteralWins(t *testing.T) {
	g := New([]string{"Chromium", "Chromium OS"})
	got, err := g.Protect("Chromium OS")
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if got != Placeholder("Chromium OS") {
		t.Errorf("Protect = %q, want placeholder of the longer literal", got)
	}
}

func TestProtect_RejectsExistingPlaceholder(t *testing.T) {
	g := New([]string{"Chromium"})
	_, err := g.Protect("text " + Placeholder("Chromium"))
	if !errors.Is(err, ErrPlaceholderInContent) {
		t.Fatalf("expected ErrPlaceholderInContent, got %v", err)
	}
}

func TestEmptyGuard(t *testing.T) {
	g := New(nil)
	got, err := g.Protect("abc")
	if err != nil || got != "abc" {
		t.Fatalf("Protect = %q, %v", got, err)
	}
	if g.Restore("abc") != "abc" {
		t.Fatal("Restore changed content")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grd_reserved.txt")
	if err := os.WriteFile(path, []byte("Chromium OS\n\n  Chrome Web Store \n"), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	toks := g.Tokens()
	if len(toks) != 2 || toks[0].Literal != "Chromium OS" || toks[1].Literal != "Chrome Web Store" {
		t.Errorf("Tokens = %#v", toks)
	}
}
