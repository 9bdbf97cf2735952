package markup

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewKeepsAttributeOrder(t *testing.T) {
	n := New("section",
		Attr("data-markdown", "deck.md"),
		Attr("data-separator", "X"),
		Attr("data-charset", "utf-8"),
	)

	want := []Attribute{
		{"data-markdown", "deck.md"},
		{"data-separator", "X"},
		{"data-charset", "utf-8"},
	}
	got := n.Attrs()
	if len(got) != len(want) {
		t.Fatalf("Attrs() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Attrs()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAttrReplacesInPlace(t *testing.T) {
	n := New("p", Attr("a", "1"), Attr("b", "2"), Attr("a", "3"))

	attrs := n.Attrs()
	if len(attrs) != 2 {
		t.Fatalf("Attrs() length = %d, want 2", len(attrs))
	}
	if attrs[0] != (Attribute{"a", "3"}) {
		t.Errorf("Attrs()[0] = %v, want a=3", attrs[0])
	}
}

func TestChildrenSkipsNil(t *testing.T) {
	var missing *Node
	n := New("section", Children(New("h2"), missing, New("p")))

	if n.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", n.Len())
	}
	if n.Child(0).Tag() != "h2" || n.Child(1).Tag() != "p" {
		t.Errorf("children = %s, %s; want h2, p", n.Child(0).Tag(), n.Child(1).Tag())
	}
	if n.Last().Tag() != "p" {
		t.Errorf("Last() = %s, want p", n.Last().Tag())
	}
}

func TestNilOptionsIgnored(t *testing.T) {
	var none Option
	n := New("p", none, Text("x"), Options(none, Class("c")))

	if n.Text() != "x" {
		t.Errorf("Text() = %q, want x", n.Text())
	}
	if v, ok := n.Attr("class"); !ok || v != "c" {
		t.Errorf("Attr(class) = %q, %v", v, ok)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	n := New("ul", Attr("class", "x"), Children(New("li")))

	attrs := n.Attrs()
	attrs[0].Val = "changed"
	children := n.Children()
	children[0] = New("p")

	if v, _ := n.Attr("class"); v != "x" {
		t.Errorf("attribute mutated through copy: %q", v)
	}
	if n.Child(0).Tag() != "li" {
		t.Errorf("child mutated through copy: %q", n.Child(0).Tag())
	}
}

func TestEqual(t *testing.T) {
	build := func() *Node {
		return New("section",
			Children(
				New("h2", Text("Intro")),
				New("p", Text("Hello")),
			),
		)
	}

	if !build().Equal(build()) {
		t.Error("identical trees should be equal")
	}

	other := New("section", Children(New("h2", Text("Intro"))))
	if build().Equal(other) {
		t.Error("trees with different children should differ")
	}

	var nilNode *Node
	if !nilNode.Equal(nil) {
		t.Error("nil should equal nil")
	}
	if build().Equal(nil) {
		t.Error("node should not equal nil")
	}
}

func TestWalk(t *testing.T) {
	root := New("div", Children(
		New("section", Children(New("h2"), New("p"))),
		New("section"),
	))

	var tags []string
	var depths []int
	Walk(root, func(n *Node, depth int) {
		tags = append(tags, n.Tag())
		depths = append(depths, depth)
	})

	if got := strings.Join(tags, ","); got != "div,section,h2,p,section" {
		t.Errorf("Walk order = %s", got)
	}
	wantDepths := []int{0, 1, 2, 2, 1}
	for i, d := range wantDepths {
		if depths[i] != d {
			t.Errorf("depth[%d] = %d, want %d", i, depths[i], d)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "text is escaped",
			node: New("p", Text("a < b & c")),
			want: "<p>a &lt; b &amp; c</p>",
		},
		{
			name: "empty attribute",
			node: New("code", Attr("data-trim", ""), Text("x := 1")),
			want: `<code data-trim="">x := 1</code>`,
		},
		{
			name: "script is raw",
			node: New("script", Attr("type", "text/template"), Text("## Title\n<b>bold</b>")),
			want: "<script type=\"text/template\">## Title\n<b>bold</b></script>",
		},
		{
			name: "nested",
			node: New("ol", Children(New("li", Text("a")), New("li", Text("b")))),
			want: "<ol><li>a</li><li>b</li></ol>",
		},
		{
			name: "text before children",
			node: New("div", Text("lead"), Children(New("span", Text("x")))),
			want: "<div>lead<span>x</span></div>",
		},
		{
			name: "void element",
			node: New("meta", Attr("charset", "utf-8")),
			want: `<meta charset="utf-8"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, tt.node); err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDocument(&buf, New("html", Attr("lang", "en"))); err != nil {
		t.Fatalf("RenderDocument() error: %v", err)
	}

	want := "<!doctype html>\n<html lang=\"en\"></html>\n"
	if got := buf.String(); got != want {
		t.Errorf("RenderDocument() = %q, want %q", got, want)
	}
}
