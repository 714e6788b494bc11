package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const grd = `<?xml version="1.0" encoding="UTF-8"?>
<grit base_dir="." latest_public_release="0" current_release="1" output_all_resource_defines="false">
  <outputs>
    <output filename="grit/chromium_strings.h" type="rc_header">
      <emit emit_type='prepend'></emit>
    </output>
  </outputs>
  <translations>
    <file path="resources/chromium_strings_de.xtb" lang="de" />
    <if expr="is_android">
      <file path="resources/chromium_strings_fr.xtb" lang="fr" />
    </if>
  </translations>
  <release seq="1" allow_pseudo="false">
    <messages fallback_to_english="true">
      <part file="settings_chromium_strings.grdp" />
      <message name="IDS_PRODUCT_NAME" desc="The Chrome application name">
        Chromium
      </message>
    </messages>
  </release>
</grit>
`

func TestParse(t *testing.T) {
	path := filepath.Join("chrome", "app", "chromium_strings.grd")
	m, err := Parse(path, []byte(grd))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	wantBundles := []string{
		filepath.Join("chrome", "app", "resources", "chromium_strings_de.xtb"),
		filepath.Join("chrome", "app", "resources", "chromium_strings_fr.xtb"),
	}
	if !reflect.DeepEqual(m.Bundles, wantBundles) {
		t.Errorf("Bundles = %v, want %v", m.Bundles, wantBundles)
	}

	wantParts := []string{filepath.Join("chrome", "app", "settings_chromium_strings.grdp")}
	if !reflect.DeepEqual(m.Parts, wantParts) {
		t.Errorf("Parts = %v, want %v", m.Parts, wantParts)
	}

	wantFiles := append([]string{path}, wantParts...)
	if !reflect.DeepEqual(m.Files(), wantFiles) {
		t.Errorf("Files = %v, want %v", m.Files(), wantFiles)
	}
}

func TestParse_NoTranslations(t *testing.T) {
	m, err := Parse("a.grd", []byte(`<grit><release seq="1"><messages/></release></grit>`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(m.Bundles) != 0 || len(m.Parts) != 0 {
		t.Errorf("unexpected references: %#v", m)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse("bad.grd", []byte(`<grit><release>`)); err == nil {
		t.Error("expected error for malformed manifest")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.grd")
	if err := os.WriteFile(path, []byte(grd), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(m.Bundles) != 2 || m.Bundles[0] != filepath.Join(dir, "resources", "chromium_strings_de.xtb") {
		t.Errorf("Bundles = %v", m.Bundles)
	}
}
