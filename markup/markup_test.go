package markup

import (
	"strings"
	"testing"
)

func fooToBar(text string) string {
	return strings.ReplaceAll(text, "Foo", "Bar")
}

func TestRewrite_OnlyTrackedElements(t *testing.T) {
	in := `<message id="x">Foo</message><other>Foo</other>`
	want := `<message id="x">Bar</message><other>Foo</other>`
	if got := Rewrite(in, fooToBar); got != want {
		t.Errorf("Rewrite = %q, want %q", got, want)
	}
}

func TestRewrite_NeverTouchesTags(t *testing.T) {
	in := `<message name="IDS_Foo" desc="Foo">Foo <ph name="Foo">$1<ex>Foo</ex></ph></message>`
	want := `<message name="IDS_Foo" desc="Foo">Bar <ph name="Foo">$1<ex>Bar</ex></ph></message>`
	if got := Rewrite(in, fooToBar); got != want {
		t.Errorf("Rewrite =\n%s\nwant\n%s", got, want)
	}
}

func TestRewrite_Cases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare open tag",
			in:   "<translation>Foo</translation>Foo",
			want: "<translation>Bar</translation>Foo",
		},
		{
			name: "translation with attributes",
			in:   `<translation id="123">Foo</translation>`,
			want: `<translation id="123">Bar</translation>`,
		},
		{
			name: "attributes on next line",
			in:   "<message\n  name=\"IDS_A\">Foo</message>",
			want: "<message\n  name=\"IDS_A\">Bar</message>",
		},
		{
			name: "similar element name is not tracked",
			in:   "<messages>Foo</messages>",
			want: "<messages>Foo</messages>",
		},
		{
			name: "close tag with whitespace",
			in:   "<message name=\"a\">Foo</message >Foo",
			want: "<message name=\"a\">Bar</message >Foo",
		},
		{
			name: "self-closing tracked tag opens nothing",
			in:   "<message name=\"a\"/>Foo",
			want: "<message name=\"a\"/>Foo",
		},
		{
			name: "close of other kind keeps region open",
			in:   "<message name=\"a\">Foo</translation>Foo</message>Foo",
			want: "<message name=\"a\">Bar</translation>Bar</message>Foo",
		},
		{
			name: "multiple messages",
			in:   "Foo<message name=\"a\">Foo</message>\n  Foo\n<message name=\"b\">x Foo</message>",
			want: "Foo<message name=\"a\">Bar</message>\n  Foo\n<message name=\"b\">x Bar</message>",
		},
		{
			name: "truncated tag",
			in:   "<message name=\"a\">Foo<ph name=\"x\"",
			want: "<message name=\"a\">Bar<ph name=\"x\"",
		},
		{
			name: "truncated text",
			in:   "<message name=\"a\">Foo",
			want: "<message name=\"a\">Bar",
		},
		{
			name: "gt inside attribute value",
			in:   `<message name="a" desc="Foo > Foo">Foo</message>`,
			want: `<message name="a" desc="Foo > Foo">Bar</message>`,
		},
		{
			name: "apostrophe outside a value",
			in:   "<message name=\"a\" don't>Foo</message>",
			want: "<message name=\"a\" don't>Bar</message>",
		},
		{
			name: "comment with gt",
			in:   "<message name=\"a\">Foo<!-- Foo > Foo -->Foo</message>",
			want: "<message name=\"a\">Bar<!-- Foo > Foo -->Bar</message>",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tc := range tests {
		if got := Rewrite(tc.in, fooToBar); got != tc.want {
			t.Errorf("%s: Rewrite = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRewrite_IdentityPreservesInput(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8"?>
<grit latest_public_release="0" current_release="1">
  <release seq="1">
    <messages fallback_to_english="true">
      <message name="IDS_PRODUCT_NAME" desc="The Chrome application name">
        Chromium
      </message>
      <!-- a comment -->
      <message name="IDS_EMPTY" desc="empty"/>
    </messages>
  </release>
</grit>
`
	if got := Rewrite(in, func(s string) string { return s }); got != in {
		t.Errorf("identity rewrite changed input:\n%s", got)
	}
}

func TestRewrite_CalledOncePerTextRun(t *testing.T) {
	var runs []string
	Rewrite(`<message name="a">one<ph name="X">two</ph>three</message>four`, func(s string) string {
		runs = append(runs, s)
		return s
	})
	want := []string{"one", "two", "three"}
	if strings.Join(runs, "|") != strings.Join(want, "|") {
		t.Errorf("runs = %q, want %q", runs, want)
	}
}

func TestTagEnd(t *testing.T) {
	tests := []struct {
		in  string
		end int
		ok  bool
	}{
		{`<a>`, 3, true},
		{`<a b="x>y">z`, 11, true},
		{`<a b='x>y'/>z`, 12, true},
		{`<!-- x > y -->z`, 14, true},
		{`<a b="x>`, 8, false},
		{`<!-- x`, 6, false},
	}
	for _, tc := range tests {
		end, ok := TagEnd(tc.in, 0)
		if end != tc.end || ok != tc.ok {
			t.Errorf("TagEnd(%q) = %d, %v; want %d, %v", tc.in, end, ok, tc.end, tc.ok)
		}
	}
}
