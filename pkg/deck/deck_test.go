package deck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/revealyaml/pkg/errors"
)

const sampleDeck = `
metadata:
  author:
    name: Ada Lovelace
    email: ada@example.org
  presentation:
    title: Engines
    description: A short history
  reveal:
    transition: fade
    controls: false
  mobile: false
slides:
  - title: Intro
    content: Hello
  - type: code
    title: Example
    content: |
      x := 1
  - children:
      - type: ul
        items: [a, b]
      - type: fragment
        fragments: [one, two]
      - type: file
        filename: appendix.md
        separator:
          horizontal: "^---$"
  - type: bogus
    notes: ""
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDeck))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if got := *doc.Metadata.Author.Name; got != "Ada Lovelace" {
		t.Errorf("author name = %q", got)
	}
	if doc.Metadata.Author.Website != nil {
		t.Errorf("absent website should be nil, got %q", *doc.Metadata.Author.Website)
	}
	if got := doc.Metadata.Reveal["controls"]; got != "false" {
		t.Errorf("reveal controls = %q, want %q", got, "false")
	}
	if doc.Metadata.Mobile == nil || *doc.Metadata.Mobile {
		t.Error("mobile should be present and false")
	}
	if doc.Metadata.Printable != nil {
		t.Error("printable should be absent")
	}

	if len(doc.Slides) != 4 {
		t.Fatalf("len(Slides) = %d, want 4", len(doc.Slides))
	}
	if doc.Slides[0].Type != nil {
		t.Error("first slide type should be absent")
	}
	if doc.Slides[0].Kind() != KindText {
		t.Errorf("absent type kind = %v, want text", doc.Slides[0].Kind())
	}
	if got := *doc.Slides[1].Content; got != "x := 1\n" {
		t.Errorf("code content = %q", got)
	}

	container := doc.Slides[2]
	if !container.IsContainer() {
		t.Fatal("third slide should be a container")
	}
	if got := container.Children[1].ListItems(); len(got) != 2 || got[0] != "one" {
		t.Errorf("fragments alias = %v", got)
	}
	sep := container.Children[2].Separator
	if sep == nil || sep.Horizontal == nil || *sep.Horizontal != "^---$" || sep.Vertical != nil {
		t.Errorf("separator = %+v", sep)
	}

	bogus := doc.Slides[3]
	if bogus.Kind() != KindUnknown {
		t.Errorf("bogus kind = %v", bogus.Kind())
	}
	if bogus.Notes == nil || *bogus.Notes != "" {
		t.Error("empty notes should be present")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidInput},
		{"whitespace", "  \n\t\n", errors.ErrCodeInvalidInput},
		{"children not a sequence", "slides:\n  - children: nope\n", errors.ErrCodeInvalidShape},
		{"slides not a sequence", "slides: 3\n", errors.ErrCodeInvalidShape},
		{"top level list", "- a\n- b\n", errors.ErrCodeInvalidShape},
		{"items not a sequence", "slides:\n  - type: ul\n    items: {a: b}\n", errors.ErrCodeInvalidShape},
		{"broken yaml", "slides: [\n", errors.ErrCodeInvalidShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestParseRejectsRecursiveAlias(t *testing.T) {
	input := "slides:\n  - &loop\n    children:\n      - *loop\n"
	if _, err := Parse([]byte(input)); err == nil {
		t.Error("recursive alias should fail to decode")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	if err := os.WriteFile(path, []byte(sampleDeck), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(doc.Slides) != 4 {
		t.Errorf("len(Slides) = %d, want 4", len(doc.Slides))
	}

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("slides: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if !errors.Is(err, errors.ErrCodeInvalidShape) {
		t.Errorf("Load(bad) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidShape)
	}
	if !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("Load(bad) error should name the file: %v", err)
	}
}

func TestValidateDepth(t *testing.T) {
	build := func(depth int) []Slide {
		leaf := Slide{}
		for i := 1; i < depth; i++ {
			leaf = Slide{Children: []Slide{leaf}}
		}
		return []Slide{leaf}
	}

	ok := &Document{Slides: build(MaxDepth)}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() at MaxDepth error: %v", err)
	}

	tooDeep := &Document{Slides: build(MaxDepth + 1)}
	err := tooDeep.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidShape) {
		t.Errorf("Validate() beyond MaxDepth code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidShape)
	}
}

func TestStats(t *testing.T) {
	doc, err := Parse([]byte(sampleDeck))
	if err != nil {
		t.Fatal(err)
	}

	st := doc.Stats()
	want := Stats{Slides: 7, Containers: 1, Leaves: 6, Unknown: 1, MaxDepth: 2}
	if st != want {
		t.Errorf("Stats() = %+v, want %+v", st, want)
	}
}

func TestWalkOrderAndPaths(t *testing.T) {
	slides := []Slide{
		{Children: []Slide{{}, {Children: []Slide{{}}}}},
		{},
	}

	var paths []string
	Walk(slides, func(p Path, s *Slide) bool {
		paths = append(paths, p.String())
		return true
	})

	want := "1,1.1,1.2,1.2.1,2"
	if got := strings.Join(paths, ","); got != want {
		t.Errorf("Walk paths = %s, want %s", got, want)
	}
}

func TestWalkStops(t *testing.T) {
	slides := []Slide{{}, {}, {}}
	visited := 0
	Walk(slides, func(p Path, s *Slide) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Errorf("visited = %d, want 2", visited)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"text", KindText},
		{"md", KindMarkdown},
		{"markdown", KindMarkdown},
		{"code", KindCode},
		{"file", KindFile},
		{"fragment", KindFragments},
		{"fragments", KindFragments},
		{"fragment-list", KindFragments},
		{"list", KindList},
		{"ul", KindList},
		{"ol", KindList},
		{"", KindUnknown},
		{"Text", KindUnknown},
		{"bogus", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseKind(tt.name); got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsOrdered(t *testing.T) {
	str := func(s string) *string { return &s }
	yes, no := true, false

	tests := []struct {
		name  string
		slide Slide
		want  bool
	}{
		{"ol", Slide{Type: str("ol")}, true},
		{"ul", Slide{Type: str("ul")}, false},
		{"ul ignores flag", Slide{Type: str("ul"), Ordered: &yes}, false},
		{"list ordered", Slide{Type: str("list"), Ordered: &yes}, true},
		{"list unordered", Slide{Type: str("list"), Ordered: &no}, false},
		{"list default", Slide{Type: str("list")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.slide.IsOrdered(); got != tt.want {
				t.Errorf("IsOrdered() = %v, want %v", got, tt.want)
			}
		})
	}
}
