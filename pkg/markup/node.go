package markup

import (
	"slices"
	"strings"
)

// Attribute is a single name/value pair on a [Node].
type Attribute struct {
	Key string
	Val string
}

// Node is an element of the rendered markup tree.
//
// A Node is immutable once [New] returns it: every accessor hands out copies,
// so a parent can never observe changes to a child it owns. Trees are built
// bottom-up and are acyclic.
type Node struct {
	tag      string
	attrs    []Attribute
	text     string
	children []*Node
}

// Option configures a Node under construction.
type Option func(*Node)

// New builds a node with the given tag. Options are applied in order, so
// attributes and children keep the order in which they were given. Nil
// options are ignored.
func New(tag string, opts ...Option) *Node {
	n := &Node{tag: tag}
	apply(n, opts)
	return n
}

func apply(n *Node, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
}

// Attr appends an attribute. A repeated key replaces the earlier value in place.
func Attr(key, val string) Option {
	return func(n *Node) {
		for i := range n.attrs {
			if n.attrs[i].Key == key {
				n.attrs[i].Val = val
				return
			}
		}
		n.attrs = append(n.attrs, Attribute{Key: key, Val: val})
	}
}

// Class sets the class attribute.
func Class(class string) Option { return Attr("class", class) }

// Text sets the text content that precedes any children.
func Text(s string) Option {
	return func(n *Node) { n.text = s }
}

// Children appends child nodes. Nil entries are skipped, which lets callers
// pass the result of an optional constructor directly.
func Children(children ...*Node) Option {
	return func(n *Node) {
		for _, c := range children {
			if c != nil {
				n.children = append(n.children, c)
			}
		}
	}
}

// Options combines several options into one.
func Options(opts ...Option) Option {
	return func(n *Node) { apply(n, opts) }
}

// Tag returns the element name.
func (n *Node) Tag() string { return n.tag }

// Text returns the text content.
func (n *Node) Text() string { return n.text }

// Attrs returns a copy of the attributes in insertion order.
func (n *Node) Attrs() []Attribute { return slices.Clone(n.attrs) }

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// Last returns the final child, or nil when there is none.
func (n *Node) Last() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// Equal reports whether two trees have the same tags, attributes (in order),
// text and children.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.tag != other.tag || n.text != other.text {
		return false
	}
	if !slices.Equal(n.attrs, other.attrs) {
		return false
	}
	return slices.EqualFunc(n.children, other.children, (*Node).Equal)
}

// Walk calls fn for n and every descendant in document order.
// Depth is 0 for n itself.
func Walk(n *Node, fn func(n *Node, depth int)) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int)) {
	if n == nil {
		return
	}
	fn(n, depth)
	for _, c := range n.children {
		walk(c, depth+1, fn)
	}
}

// String renders the node as HTML. Rendering errors are reported inline.
func (n *Node) String() string {
	var b strings.Builder
	if err := Render(&b, n); err != nil {
		return "<!-- " + err.Error() + " -->"
	}
	return b.String()
}
