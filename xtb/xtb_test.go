package xtb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minios-linux/rebrand/tranid"
)

func TestRewrite_DeduplicatesAfterRemap(t *testing.T) {
	in := `<translation id="100">T1</translation><translation id="200">T1</translation>`
	remap := tranid.Remap{"100": "201", "200": "201"}

	res := Rewrite(in, remap)
	want := `<translation id="201">T1</translation>`
	if res.Content != want {
		t.Errorf("Content = %q, want %q", res.Content, want)
	}
	if res.Renamed != 1 || res.Dropped != 1 || !res.Changed() {
		t.Errorf("Renamed=%d Dropped=%d Changed=%v", res.Renamed, res.Dropped, res.Changed())
	}
}

const bundle = `<?xml version="1.0" ?>
<!DOCTYPE translationbundle>
<translationbundle lang="de">
<translation id="7337881442233988129">Chromium</translation>
<translation id="1185134272377778587">Über Chromium</translation>
<translation id="42">Andere</translation>
</translationbundle>
`

func TestRewrite_RenamesAndPreserves(t *testing.T) {
	remap := tranid.Remap{
		"7337881442233988129": "4949335353915176743",
		"1185134272377778587": "5465408803043934759",
	}
	res := Rewrite(bundle, remap)

	want := `<?xml version="1.0" ?>
<!DOCTYPE translationbundle>
<translationbundle lang="de">
<translation id="4949335353915176743">Chromium</translation>
<translation id="5465408803043934759">Über Chromium</translation>
<translation id="42">Andere</translation>
</translationbundle>
`
	if res.Content != want {
		t.Errorf("Content =\n%s\nwant\n%s", res.Content, want)
	}
	if res.Renamed != 2 || res.Dropped != 0 {
		t.Errorf("Renamed=%d Dropped=%d", res.Renamed, res.Dropped)
	}
}

func TestRewrite_EmptyRemapIsNoop(t *testing.T) {
	res := Rewrite(bundle, nil)
	if res.Content != bundle || res.Changed() {
		t.Errorf("empty remap changed content")
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	in := "<translation id=\"100\">A</translation>\n<translation id=\"200\">A</translation>\n<translation id=\"300\">B</translation>\n"
	remap := tranid.Remap{"100": "201", "200": "201"}

	first := Rewrite(in, remap)
	second := Rewrite(first.Content, remap)
	if second.Content != first.Content {
		t.Errorf("second pass changed content:\n%s\nvs\n%s", second.Content, first.Content)
	}
	if second.Changed() {
		t.Error("second pass reported a change")
	}
}

func TestRewrite_UnmappedDuplicateOfNewID(t *testing.T) {
	// 300 keeps its id; 100 is renamed onto 300 and is dropped because 300
	// was emitted first.
	in := `<translation id="300">X</translation><translation id="100">Y</translation>`
	res := Rewrite(in, tranid.Remap{"100": "300"})
	if res.Content != `<translation id="300">X</translation>` {
		t.Errorf("Content = %q", res.Content)
	}
	if res.Changed() {
		t.Error("dropping without renaming must not count as a change")
	}
}

func TestRewrite_TolerantIDAttribute(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"single quotes", `<translation id='1'>a</translation>`, `<translation id='2'>a</translation>`},
		{"spaces around equals", `<translation id = "1">a</translation>`, `<translation id = "2">a</translation>`},
		{"other attribute first", `<translation xid="1" id="1">a</translation>`, `<translation xid="1" id="2">a</translation>`},
		{"newline before id", "<translation\nid=\"1\">a</translation>", "<translation\nid=\"2\">a</translation>"},
	}
	for _, tc := range tests {
		res := Rewrite(tc.in, tranid.Remap{"1": "2"})
		if res.Content != tc.want {
			t.Errorf("%s: Content = %q, want %q", tc.name, res.Content, tc.want)
		}
	}
}

func TestRewrite_GtInAttribute(t *testing.T) {
	in := `<translation desc="a > b" id="1">a</translation>`
	res := Rewrite(in, tranid.Remap{"1": "2"})
	want := `<translation desc="a > b" id="2">a</translation>`
	if res.Content != want {
		t.Errorf("Content = %q, want %q", res.Content, want)
	}
}

func TestRewrite_SelfClosingDuplicate(t *testing.T) {
	in := `<translation id="1"/><translation id="2"/><translation id="3">keep</translation>`
	res := Rewrite(in, tranid.Remap{"2": "1"})
	want := `<translation id="1"/><translation id="3">keep</translation>`
	if res.Content != want {
		t.Errorf("Content = %q, want %q", res.Content, want)
	}
}

func TestRewrite_TruncatedInput(t *testing.T) {
	in := `<translation id="1">a</translation><translation id="1`
	res := Rewrite(in, tranid.Remap{"1": "9"})
	want := `<translation id="9">a</translation><translation id="1`
	if res.Content != want {
		t.Errorf("Content = %q, want %q", res.Content, want)
	}
}

func TestRewriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated_resources_de.xtb")
	if err := os.WriteFile(path, []byte(bundle), 0644); err != nil {
		t.Fatal(err)
	}
	info, _ := os.Stat(path)
	mtime := info.ModTime()

	res, err := RewriteFile(path, tranid.Remap{"nope": "x"})
	if err != nil {
		t.Fatalf("RewriteFile: %v", err)
	}
	if res.Changed() {
		t.Fatal("unexpected change")
	}
	info, _ = os.Stat(path)
	if !info.ModTime().Equal(mtime) {
		t.Error("file written although nothing changed")
	}

	if _, err := RewriteFile(path, tranid.Remap{"42": "43"}); err != nil {
		t.Fatalf("RewriteFile: %v", err)
	}
	data, _ := os.ReadFile(path)
	if want := `<translation id="43">Andere</translation>`; !strings.Contains(string(data), want) {
		t.Errorf("file does not contain %q:\n%s", want, data)
	}
}
