package page

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/revealyaml/pkg/deck"
	"github.com/matzehuels/revealyaml/pkg/markup"
)

func str(s string) *string { return &s }

func boolp(b bool) *bool { return &b }

// find returns the first descendant of n matching pred.
func find(n *markup.Node, pred func(*markup.Node) bool) *markup.Node {
	var found *markup.Node
	markup.Walk(n, func(c *markup.Node, _ int) {
		if found == nil && pred(c) {
			found = c
		}
	})
	return found
}

func byMeta(name string) func(*markup.Node) bool {
	return func(n *markup.Node) bool {
		v, _ := n.Attr("name")
		return n.Tag() == "meta" && v == name
	}
}

func byHref(href string) func(*markup.Node) bool {
	return func(n *markup.Node) bool {
		v, _ := n.Attr("href")
		return n.Tag() == "link" && v == href
	}
}

func TestHeadDefaults(t *testing.T) {
	head := Head(&deck.Metadata{})

	if cs, _ := head.Child(0).Attr("charset"); cs != "utf-8" {
		t.Errorf("charset = %q, want utf-8", cs)
	}
	if find(head, func(n *markup.Node) bool { return n.Tag() == "title" }) != nil {
		t.Error("title should be omitted without presentation metadata")
	}
	if find(head, byMeta("viewport")) == nil {
		t.Error("mobile metas should be present by default")
	}
	theme := find(head, byHref("css/theme/night.css"))
	if theme == nil {
		t.Fatal("default theme link missing")
	}
	if id, _ := theme.Attr("id"); id != "theme" {
		t.Errorf("theme id = %q, want theme", id)
	}
	if find(head, byHref("lib/css/zenburn.css")) == nil {
		t.Error("default code theme link missing")
	}

	var scripts int
	for _, c := range head.Children() {
		if c.Tag() == "script" {
			scripts++
		}
	}
	if scripts != 2 {
		t.Errorf("scripts = %d, want print and fullscreen", scripts)
	}
}

func TestHeadMetadata(t *testing.T) {
	md := &deck.Metadata{
		Charset:      "latin-1",
		Author:       &deck.Author{Name: str("Ada")},
		Presentation: &deck.Presentation{Title: str("Engines"), Description: str("History")},
		Theme:        deck.Theme{General: "sky", Code: "monokai"},
		Custom: deck.Custom{
			CSS:  []string{"extra.css"},
			JS:   []string{"extra.js"},
			Font: "Fira Sans",
		},
		Mobile:    boolp(false),
		Printable: boolp(false),
	}
	head := Head(md)

	if cs, _ := head.Child(0).Attr("charset"); cs != "latin-1" {
		t.Errorf("charset = %q", cs)
	}
	if title := find(head, func(n *markup.Node) bool { return n.Tag() == "title" }); title == nil || title.Text() != "Engines" {
		t.Errorf("title = %v", title)
	}
	if desc := find(head, byMeta("description")); desc == nil {
		t.Error("description meta missing")
	} else if v, _ := desc.Attr("content"); v != "History" {
		t.Errorf("description = %q", v)
	}
	if author := find(head, byMeta("author")); author == nil {
		t.Error("author meta missing")
	}
	if find(head, byMeta("viewport")) != nil {
		t.Error("mobile metas should be omitted when mobile is false")
	}
	if find(head, byHref("css/theme/sky.css")) == nil || find(head, byHref("lib/css/monokai.css")) == nil {
		t.Error("theme overrides not applied")
	}
	if find(head, byHref("extra.css")) == nil {
		t.Error("custom css missing")
	}
	js := find(head, func(n *markup.Node) bool {
		v, _ := n.Attr("src")
		return v == "extra.js"
	})
	if js == nil || js.Text() != "// do nothing" {
		t.Errorf("custom js = %v", js)
	}
	style := find(head, func(n *markup.Node) bool { return n.Tag() == "style" })
	if style == nil || style.Text() != "html * { font-family: 'Fira Sans', serif !important; }" {
		t.Errorf("font style = %v", style)
	}
	if last := head.Last(); last.Tag() != "script" || !strings.Contains(last.Text(), "toggleFullScreen") {
		t.Error("fullscreen script should close the head")
	}
	if find(head, func(n *markup.Node) bool { return strings.Contains(n.Text(), "print-pdf") }) != nil {
		t.Error("print script should be omitted when printable is false")
	}
}

func TestRevealOptions(t *testing.T) {
	got := RevealOptions(map[string]string{
		"transition": "Fade",
		"controls":   "false",
		"zeta":       "1",
		"alpha":      "x",
	})
	want := []Option{
		{"controls", "false"},
		{"progress", "true"},
		{"history", "true"},
		{"center", "true"},
		{"transition", "Fade"},
		{"touch", "true"},
		{"alpha", "x"},
		{"zeta", "1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RevealOptions() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(DefaultRevealOptions, RevealOptions(nil)); diff != "" {
		t.Errorf("RevealOptions(nil) should equal defaults:\n%s", diff)
	}
}

func TestHeadFontEscaping(t *testing.T) {
	head := Head(&deck.Metadata{Custom: deck.Custom{Font: `O'Brien\</style>`}})

	style := find(head, func(n *markup.Node) bool { return n.Tag() == "style" })
	want := `html * { font-family: 'O\'Brien\\\3c /style>', serif !important; }`
	if style == nil || style.Text() != want {
		t.Errorf("font style = %v, want %q", style, want)
	}
}

func TestInitScriptEscaping(t *testing.T) {
	s := InitScript([]Option{{"transition", `it's\</script>`}})
	if want := `transition: 'it\'s\\\x3c/script>',`; !strings.Contains(s, want) {
		t.Errorf("InitScript() missing %q in:\n%s", want, s)
	}
}

func TestInitScript(t *testing.T) {
	s := InitScript([]Option{{"controls", "TRUE"}, {"transition", "Fade"}})

	for _, want := range []string{
		"Reveal.initialize({controls: true,\n\ttransition: 'fade',\n\t// Optional reveal.js plugins",
		"plugin/notes/notes.js",
		"102: 'toggleFullScreen'",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("InitScript() missing %q in:\n%s", want, s)
		}
	}
}

func TestBuild(t *testing.T) {
	slides := markup.New("div", markup.Class("slides"))
	html := Build(&deck.Document{}, slides)

	if html.Tag() != "html" {
		t.Fatalf("root = %s, want html", html.Tag())
	}
	if lang, _ := html.Attr("lang"); lang != "en" {
		t.Errorf("lang = %q", lang)
	}
	if html.Len() != 2 || html.Child(0).Tag() != "head" || html.Child(1).Tag() != "body" {
		t.Fatalf("html children = %v", html.Children())
	}

	body := html.Child(1)
	reveal := body.Child(0)
	if cls, _ := reveal.Attr("class"); cls != "reveal" || reveal.Child(0) != slides {
		t.Error("body should open with div.reveal holding the slides")
	}
	srcs := []string{}
	for _, c := range body.Children()[1:3] {
		v, _ := c.Attr("src")
		srcs = append(srcs, v)
	}
	if diff := cmp.Diff([]string{"lib/js/head.min.js", "js/reveal.js"}, srcs); diff != "" {
		t.Errorf("body scripts mismatch:\n%s", diff)
	}
	if !strings.Contains(body.Last().Text(), "Reveal.initialize") {
		t.Error("init script should close the body")
	}
}

func TestBuildRenders(t *testing.T) {
	var b strings.Builder
	doc := &deck.Document{Metadata: deck.Metadata{Presentation: &deck.Presentation{Title: str("A & B")}}}
	if err := markup.RenderDocument(&b, Build(doc, markup.New("div"))); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.HasPrefix(out, "<!doctype html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"/>") {
		t.Errorf("unexpected prefix: %.80s", out)
	}
	if !strings.Contains(out, "<title>A &amp; B</title>") {
		t.Error("title should be escaped")
	}
	if !strings.Contains(out, "window.location.search.match( /print-pdf/gi ) ? 'css/print/pdf.css'") {
		t.Error("script text should not be escaped")
	}
}
