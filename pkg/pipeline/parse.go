package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/revealyaml/pkg/deck"
	"github.com/matzehuels/revealyaml/pkg/observability"
)

// Parse decodes and validates the deck in opts.
func Parse(ctx context.Context, opts Options) (*deck.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Source)
	start := time.Now()

	doc, err := deck.Parse(opts.Deck)
	if err == nil {
		err = doc.Validate()
	}

	slides := 0
	if err == nil {
		slides = len(doc.Slides)
	}
	hooks.OnParseComplete(ctx, opts.Source, slides, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
