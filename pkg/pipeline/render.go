package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/revealyaml/pkg/config"
	"github.com/matzehuels/revealyaml/pkg/deck"
	"github.com/matzehuels/revealyaml/pkg/markup"
	"github.com/matzehuels/revealyaml/pkg/observability"
	"github.com/matzehuels/revealyaml/pkg/page"
	"github.com/matzehuels/revealyaml/pkg/transform"
)

// Assembled is the output of the assemble stage.
type Assembled struct {
	Slides   *markup.Node // div.slides
	Rendered int
	Dropped  int
}

// Assemble builds the slide container. Dropped slides are logged at warn
// level with their position.
func Assemble(ctx context.Context, doc *deck.Document, cfg config.Config, logger *log.Logger) (*Assembled, error) {
	hooks := observability.Pipeline()
	hooks.OnAssembleStart(ctx, len(doc.Slides))
	start := time.Now()

	dropped := 0
	slides, err := transform.Assemble(doc, cfg, transform.WithSkipFunc(func(p deck.Path, s *deck.Slide) {
		dropped++
		logger.Warn("dropped slide", "slide", p.String(), "type", s.TypeName(), "title", s.TitleText())
	}))

	rendered := 0
	if err == nil {
		// title and contact slides are not counted
		rendered = slides.Len() - 2
	}
	hooks.OnAssembleComplete(ctx, rendered, dropped, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &Assembled{Slides: slides, Rendered: rendered, Dropped: dropped}, nil
}

// Render wraps the slides in the page shell and serializes the page.
func Render(ctx context.Context, doc *deck.Document, slides *markup.Node) (*markup.Node, []byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx)
	start := time.Now()

	root := page.Build(doc, slides)
	var buf bytes.Buffer
	err := markup.RenderDocument(&buf, root)

	hooks.OnRenderComplete(ctx, buf.Len(), time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return root, buf.Bytes(), nil
}
