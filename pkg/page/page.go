// Package page wraps the slide markup in a complete reveal.js HTML page.
//
// The page references reveal.js assets by relative path (css/reveal.css,
// js/reveal.js, lib/..., plugin/...), so the generated file is meant to live
// in the root of a reveal.js checkout.
package page

import (
	"sort"
	"strings"

	"github.com/matzehuels/revealyaml/pkg/deck"
	"github.com/matzehuels/revealyaml/pkg/markup"
)

// Defaults applied when the deck metadata leaves a field out.
const (
	DefaultCharset   = "utf-8"
	DefaultTheme     = "night"
	DefaultCodeTheme = "zenburn"
)

// DefaultRevealOptions are the Reveal.initialize settings before the deck's
// own overrides are applied, in output order.
var DefaultRevealOptions = []Option{
	{"controls", "true"},
	{"progress", "true"},
	{"history", "true"},
	{"center", "true"},
	{"transition", "convex"},
	{"touch", "true"},
}

// Option is one Reveal.initialize setting.
type Option struct {
	Key, Value string
}

// Build returns the html element for doc with slides as the deck container.
func Build(doc *deck.Document, slides *markup.Node) *markup.Node {
	return markup.New("html",
		markup.Attr("lang", "en"),
		markup.Children(Head(&doc.Metadata), Body(&doc.Metadata, slides)),
	)
}

// Head builds the head element: metadata, stylesheets and helper scripts.
func Head(md *deck.Metadata) *markup.Node {
	var nodes []*markup.Node
	add := func(n ...*markup.Node) { nodes = append(nodes, n...) }

	charset := md.Charset
	if charset == "" {
		charset = DefaultCharset
	}
	add(markup.New("meta", markup.Attr("charset", charset)))

	if p := md.Presentation; p != nil {
		add(markup.New("title", markup.Text(deref(p.Title))))
		add(meta("description", deref(p.Description)))
	}
	if a := md.Author; a != nil && a.Name != nil {
		add(meta("author", *a.Name))
	}

	if enabled(md.Mobile) {
		add(
			meta("apple-mobile-web-app-capable", "yes"),
			meta("apple-mobile-web-app-status-bar-style", "black-translucent"),
			meta("viewport", "width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no, minimal-ui"),
		)
	}

	theme, codeTheme := md.Theme.General, md.Theme.Code
	if theme == "" {
		theme = DefaultTheme
	}
	if codeTheme == "" {
		codeTheme = DefaultCodeTheme
	}
	add(
		stylesheet("css/reveal.css"),
		stylesheet("css/theme/"+theme+".css", markup.Attr("id", "theme")),
		stylesheet("lib/css/"+codeTheme+".css"),
	)

	for _, css := range md.Custom.CSS {
		add(stylesheet(css))
	}
	for _, js := range md.Custom.JS {
		add(script(js))
	}
	if md.Custom.Font != "" {
		add(markup.New("style", markup.Text("html * { font-family: '"+cssString.Replace(md.Custom.Font)+"', serif !important; }")))
	}

	if enabled(md.Printable) {
		add(markup.New("script", markup.Text(printScript)))
	}
	add(markup.New("script", markup.Text(fullscreenScript)))

	return markup.New("head", markup.Children(nodes...))
}

// Body builds the body element: the slides inside div.reveal followed by the
// reveal.js bootstrap.
func Body(md *deck.Metadata, slides *markup.Node) *markup.Node {
	return markup.New("body", markup.Children(
		markup.New("div", markup.Class("reveal"), markup.Children(slides)),
		script("lib/js/head.min.js"),
		script("js/reveal.js"),
		markup.New("script",
			markup.Attr("type", "text/javascript"),
			markup.Text(InitScript(RevealOptions(md.Reveal))),
		),
	))
}

// RevealOptions overlays overrides on [DefaultRevealOptions]. Overridden
// defaults keep their position; new keys follow in sorted order.
func RevealOptions(overrides map[string]string) []Option {
	opts := make([]Option, len(DefaultRevealOptions))
	copy(opts, DefaultRevealOptions)

	known := make(map[string]bool, len(opts))
	for i := range opts {
		known[opts[i].Key] = true
		if v, ok := overrides[opts[i].Key]; ok {
			opts[i].Value = v
		}
	}

	extra := make([]string, 0, len(overrides))
	for k := range overrides {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		opts = append(opts, Option{k, overrides[k]})
	}
	return opts
}

// InitScript renders the Reveal.initialize call. Values are lower-cased;
// true and false are emitted bare and everything else as a quoted string.
func InitScript(opts []Option) string {
	var b strings.Builder
	b.WriteString(initPrefix)
	for _, o := range opts {
		v := strings.ToLower(o.Value)
		b.WriteString(o.Key)
		b.WriteString(": ")
		if v == "true" || v == "false" {
			b.WriteString(v)
		} else {
			b.WriteString("'" + jsString.Replace(v) + "'")
		}
		b.WriteString(",\n\t")
	}
	b.WriteString(initDependencies)
	b.WriteString(initSuffix)
	b.WriteString(fullscreenBinding)
	return b.String()
}

// Escapers for values placed inside single-quoted strings. "<" is escaped
// so a value cannot close the surrounding script or style element.
var (
	jsString  = strings.NewReplacer(`\`, `\\`, "'", `\'`, "\n", `\n`, "<", `\x3c`)
	cssString = strings.NewReplacer(`\`, `\\`, "'", `\'`, "\n", `\a `, "<", `\3c `)
)

func meta(name, content string) *markup.Node {
	return markup.New("meta", markup.Attr("name", name), markup.Attr("content", content))
}

func stylesheet(href string, opts ...markup.Option) *markup.Node {
	return markup.New("link",
		markup.Attr("rel", "stylesheet"),
		markup.Attr("href", href),
		markup.Attr("type", "text/css"),
		markup.Options(opts...),
	)
}

func script(src string) *markup.Node {
	return markup.New("script",
		markup.Attr("type", "text/javascript"),
		markup.Attr("src", src),
		markup.Text("// do nothing"),
	)
}

// enabled treats an absent flag as true.
func enabled(flag *bool) bool { return flag == nil || *flag }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
