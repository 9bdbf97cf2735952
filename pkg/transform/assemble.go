package transform

import (
	"strings"

	"github.com/matzehuels/revealyaml/pkg/config"
	"github.com/matzehuels/revealyaml/pkg/deck"
	"github.com/matzehuels/revealyaml/pkg/errors"
	"github.com/matzehuels/revealyaml/pkg/markup"
)

// Assemble builds the deck container: the title slide, every top-level slide
// that produces a node, and the contact slide, inside div.slides.
//
// The title slide needs presentation.title, presentation.description and
// author.name; a missing one fails the whole deck with
// [errors.ErrCodeMissingField].
func Assemble(doc *deck.Document, cfg config.Config, opts ...Option) (*markup.Node, error) {
	main := cfg.HTML.Main

	title, err := mainSlide(&doc.Metadata, main)
	if err != nil {
		return nil, err
	}

	t := New(cfg, opts...)
	slides := make([]*markup.Node, 0, len(doc.Slides)+2)
	slides = append(slides, title)
	for i := range doc.Slides {
		slides = append(slides, t.TransformAt(deck.Path{i + 1}, &doc.Slides[i]))
	}
	slides = append(slides, contactSlide(&doc.Metadata, main))

	return markup.New("div", markup.Class("slides"), markup.Children(slides...)), nil
}

func mainSlide(md *deck.Metadata, tags config.Main) (*markup.Node, error) {
	var title, desc, name *string
	if p := md.Presentation; p != nil {
		title, desc = p.Title, p.Description
	}
	if a := md.Author; a != nil {
		name = a.Name
	}

	required := []struct {
		field string
		val   *string
	}{
		{"metadata.presentation.title", title},
		{"metadata.presentation.description", desc},
		{"metadata.author.name", name},
	}
	for _, r := range required {
		if r.val == nil {
			return nil, errors.New(errors.ErrCodeMissingField, "%s is required for the title slide", r.field)
		}
	}

	return markup.New("section", markup.Children(
		markup.New(tags.Title, markup.Text(*title)),
		markup.New(tags.Description, markup.Text(*desc)),
		markup.New(tags.Author, markup.Text(*name)),
	)), nil
}

func contactSlide(md *deck.Metadata, tags config.Main) *markup.Node {
	a := md.Author
	if a == nil {
		return markup.New("section")
	}

	var name, email, website *markup.Node
	if a.Name != nil {
		name = markup.New(tags.Title, markup.Text(*a.Name))
	}
	if a.Email != nil {
		email = markup.New("a", markup.Attr("href", "mailto:"+*a.Email), markup.Text(*a.Email))
	}
	if a.Website != nil {
		website = markup.New("a", markup.Attr("href", *a.Website), markup.Text(stripScheme(*a.Website)))
	}
	return markup.New("section", markup.Children(name, email, website))
}

// stripScheme removes a leading http:// or https:// for display.
func stripScheme(url string) string {
	for _, scheme := range []string{"https://", "http://"} {
		if rest, ok := strings.CutPrefix(url, scheme); ok {
			return rest
		}
	}
	return url
}
