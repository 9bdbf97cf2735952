package transform

import (
	"regexp"
	"strconv"

	"github.com/matzehuels/revealyaml/pkg/config"
	"github.com/matzehuels/revealyaml/pkg/deck"
	"github.com/matzehuels/revealyaml/pkg/markup"
)

// Defaults for external markdown slides (type "file"). The separators are
// regular expressions evaluated by reveal.js, so the backslashes are literal.
const (
	DefaultHorizontalSeparator = `^\n\n\n`
	DefaultVerticalSeparator   = `^\n\n`
	DefaultNotesSeparator      = `^Note:`
	DefaultCharset             = "utf-8"
)

// scriptEnd matches closing script tags inside markdown templates. reveal.js
// turns ScriptEndMarker back into </script> when it loads the template.
var scriptEnd = regexp.MustCompile(`(?i)</script\s*>`)

// ScriptEndMarker replaces </script> in inline markdown.
const ScriptEndMarker = "__SCRIPT_END__"

// SkipFunc is called for every leaf slide that produces no node.
type SkipFunc func(path deck.Path, s *deck.Slide)

// Transformer converts slide descriptions into markup. It holds only the
// read-only tag configuration, so one Transformer may be shared.
type Transformer struct {
	tags   config.Slides
	onSkip SkipFunc
}

// Option configures a [Transformer].
type Option func(*Transformer)

// WithSkipFunc registers a callback for dropped slides.
func WithSkipFunc(fn SkipFunc) Option {
	return func(t *Transformer) { t.onSkip = fn }
}

// New returns a Transformer emitting the slide tags of cfg.
func New(cfg config.Config, opts ...Option) *Transformer {
	t := &Transformer{tags: cfg.HTML.Slides}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform converts one slide. It returns nil when the slide is a leaf with
// an unrecognized type. A container slide always yields a section, even when
// none of its children produce a node.
func (t *Transformer) Transform(s *deck.Slide) *markup.Node {
	return t.transform(deck.Path{1}, s)
}

// TransformAt is Transform with the slide's position in the deck, which is
// reported to the skip callback.
func (t *Transformer) TransformAt(path deck.Path, s *deck.Slide) *markup.Node {
	return t.transform(path, s)
}

func (t *Transformer) transform(path deck.Path, s *deck.Slide) *markup.Node {
	if s.IsContainer() {
		children := make([]*markup.Node, 0, len(s.Children))
		for i := range s.Children {
			children = append(children, t.transform(path.Child(i+1), &s.Children[i]))
		}
		return markup.New("section", markup.Children(children...))
	}

	st, ok := strategies[s.Kind()]
	if !ok {
		if t.onSkip != nil {
			t.onSkip(path, s)
		}
		return nil
	}

	var notes markup.Option
	if st.attachNotes && s.Notes != nil {
		notes = markup.Children(markup.New("aside", markup.Class("notes"), markup.Text(*s.Notes)))
	}
	return markup.New("section", st.render(t, s), notes)
}

// strategy renders the body of a leaf slide. Kinds that keep their notes
// elsewhere leave attachNotes unset.
type strategy struct {
	render      func(t *Transformer, s *deck.Slide) markup.Option
	attachNotes bool
}

// strategies has no entry for deck.KindUnknown: those slides are dropped.
var strategies = map[deck.Kind]strategy{
	deck.KindText:      {(*Transformer).text, true},
	deck.KindMarkdown:  {(*Transformer).markdown, true},
	deck.KindCode:      {(*Transformer).code, true},
	deck.KindFile:      {(*Transformer).file, false},
	deck.KindFragments: {(*Transformer).fragments, true},
	deck.KindList:      {(*Transformer).list, true},
}

func (t *Transformer) text(s *deck.Slide) markup.Option {
	var content *markup.Node
	if s.Content != nil {
		content = markup.New(t.tags.Content, markup.Text(*s.Content))
	}
	return markup.Children(t.title(s), content)
}

func (t *Transformer) markdown(s *deck.Slide) markup.Option {
	if s.Content == nil {
		return nil
	}
	return markup.Children(markup.New("section",
		markup.Attr("data-markdown", ""),
		markup.Children(markup.New("script",
			markup.Attr("type", "text/template"),
			markup.Text(scriptEnd.ReplaceAllString(*s.Content, ScriptEndMarker)),
		)),
	))
}

func (t *Transformer) code(s *deck.Slide) markup.Option {
	var pre *markup.Node
	if s.Content != nil && *s.Content != "" {
		pre = markup.New("pre", markup.Children(
			markup.New("code", markup.Attr("data-trim", ""), markup.Text(*s.Content)),
		))
	}
	return markup.Children(t.title(s), pre)
}

func (t *Transformer) file(s *deck.Slide) markup.Option {
	if s.Filename == nil {
		return nil
	}

	horizontal, vertical, notes := DefaultHorizontalSeparator, DefaultVerticalSeparator, DefaultNotesSeparator
	if sep := s.Separator; sep != nil {
		horizontal = valueOr(sep.Horizontal, horizontal)
		vertical = valueOr(sep.Vertical, vertical)
		notes = valueOr(sep.Notes, notes)
	}
	notes = valueOr(s.Notes, notes)
	charset := valueOr(s.Charset, DefaultCharset)

	return markup.Options(
		markup.Attr("data-markdown", *s.Filename),
		markup.Attr("data-separator", horizontal),
		markup.Attr("data-separator-vertical", vertical),
		markup.Attr("data-separator-notes", notes),
		markup.Attr("data-charset", charset),
	)
}

func (t *Transformer) fragments(s *deck.Slide) markup.Option {
	items := s.ListItems()
	nodes := make([]*markup.Node, 0, len(items)+1)
	nodes = append(nodes, t.title(s))
	for i, item := range items {
		nodes = append(nodes, markup.New("p",
			markup.Class("fragment"),
			markup.Attr("data-fragment-index", strconv.Itoa(i+1)),
			markup.Text(item),
		))
	}
	return markup.Children(nodes...)
}

func (t *Transformer) list(s *deck.Slide) markup.Option {
	tag := "ul"
	if s.IsOrdered() {
		tag = "ol"
	}
	items := s.ListItems()
	lis := make([]*markup.Node, len(items))
	for i, item := range items {
		lis[i] = markup.New("li", markup.Text(item))
	}
	return markup.Children(t.title(s), markup.New(tag, markup.Children(lis...)))
}

// title returns the heading for s, or nil when the title is absent or empty.
func (t *Transformer) title(s *deck.Slide) *markup.Node {
	if s.Title == nil || *s.Title == "" {
		return nil
	}
	return markup.New(t.tags.Title, markup.Text(*s.Title))
}

func valueOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
