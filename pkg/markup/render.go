package markup

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Doctype is written before the root element by [RenderDocument].
const Doctype = "<!doctype html>\n"

// Render serializes n as HTML. Attributes appear in insertion order, text is
// escaped, and the content of raw-text elements such as script and style is
// written verbatim.
func Render(w io.Writer, n *Node) error {
	return html.Render(w, n.toHTML())
}

// RenderDocument writes the doctype, the tree rooted at n and a final newline.
func RenderDocument(w io.Writer, n *Node) error {
	if _, err := io.WriteString(w, Doctype); err != nil {
		return err
	}
	if err := Render(w, n); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (n *Node) toHTML() *html.Node {
	hn := &html.Node{
		Type:     html.ElementNode,
		Data:     n.tag,
		DataAtom: atom.Lookup([]byte(n.tag)),
	}
	if len(n.attrs) > 0 {
		hn.Attr = make([]html.Attribute, len(n.attrs))
		for i, a := range n.attrs {
			hn.Attr[i] = html.Attribute{Key: a.Key, Val: a.Val}
		}
	}
	if n.text != "" {
		hn.AppendChild(&html.Node{Type: html.TextNode, Data: n.text})
	}
	for _, c := range n.children {
		hn.AppendChild(c.toHTML())
	}
	return hn
}
