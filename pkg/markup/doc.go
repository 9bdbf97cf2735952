// Package markup provides the immutable element tree produced by the slide
// transformer and its HTML serializer.
//
// Nodes are created with [New] and a list of options:
//
//	p := markup.New("p",
//	    markup.Class("fragment"),
//	    markup.Attr("data-fragment-index", "1"),
//	    markup.Text("First point"),
//	)
//	section := markup.New("section", markup.Children(title, p))
//
// Serialization is delegated to golang.org/x/net/html, which escapes text and
// attribute values and leaves script and style content untouched:
//
//	var buf bytes.Buffer
//	err := markup.RenderDocument(&buf, root)
package markup
