// Package outline draws the structure of a deck as a Graphviz diagram.
//
// The graph is a top-down tree: the deck root, then the title slide, every
// slide in document order and the contact slide. Containers are drawn as
// folders; slides the transformer would drop (unknown types) are dashed and
// grey so they stand out.
package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/revealyaml/pkg/deck"
)

// Format is an outline output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown outline format %q (want dot or svg)", s)
	}
}

// maxLabel bounds the title part of a node label.
const maxLabel = 40

// ToDOT converts a deck to Graphviz DOT.
func ToDOT(doc *deck.Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Deck {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	deckLabel := "deck"
	if p := doc.Metadata.Presentation; p != nil && p.Title != nil {
		deckLabel = truncate(*p.Title)
	}
	fmt.Fprintf(&buf, "  %q [label=%q, shape=doubleoctagon];\n", "deck", deckLabel)
	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", "title", "title slide")
	fmt.Fprintf(&buf, "  %q -> %q;\n", "deck", "title")

	deck.Walk(doc.Slides, func(p deck.Path, s *deck.Slide) bool {
		id := nodeID(p)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(p, s), ", "))
		fmt.Fprintf(&buf, "  %q -> %q;\n", parentID(p), id)
		return true
	})

	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", "contact", "contact slide")
	fmt.Fprintf(&buf, "  %q -> %q;\n", "deck", "contact")

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(p deck.Path) string { return "s" + p.String() }

func parentID(p deck.Path) string {
	if len(p) == 1 {
		return "deck"
	}
	return nodeID(p[:len(p)-1])
}

// Label returns "<kind>: <title>" for a slide, or just the kind when the
// slide has no title.
func Label(s *deck.Slide) string {
	kind := s.Kind().String()
	switch {
	case s.IsContainer():
		kind = fmt.Sprintf("group (%d)", len(s.Children))
	case s.Kind() == deck.KindUnknown:
		kind = "unknown " + strconv.Quote(s.TypeName())
	}
	if title := s.TitleText(); title != "" && !s.IsContainer() {
		return kind + ": " + truncate(title)
	}
	return kind
}

func fmtAttrs(p deck.Path, s *deck.Slide) []string {
	attrs := []string{fmt.Sprintf("label=%q", p.String()+"  "+Label(s))}
	switch {
	case s.IsContainer():
		attrs = append(attrs, "shape=folder", "style=filled", "fillcolor=\"#f4f1de\"")
	case s.Kind() == deck.KindUnknown:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=gray40")
	case s.Notes != nil && s.Kind() != deck.KindFile:
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxLabel {
		return string(r[:maxLabel-1]) + "…"
	}
	return s
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one sized
// from the viewBox, so the diagram scales when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// Render produces the outline of doc in the requested format.
func Render(ctx context.Context, doc *deck.Document, format Format) ([]byte, error) {
	dot := ToDOT(doc)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	default:
		return nil, fmt.Errorf("unknown outline format %q", format)
	}
}
