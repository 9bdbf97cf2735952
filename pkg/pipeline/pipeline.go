// Package pipeline provides the deck conversion pipeline for revealyaml.
//
// This package implements the complete parse → assemble → render pipeline
// used by the build, serve and outline commands. Centralizing it keeps the
// caching, logging and metrics behaviour identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode the YAML deck and check its nesting depth
//  2. Assemble: transform every slide and add the title and contact slides
//  3. Render: wrap the slides in the reveal.js page and serialize it
//
// Each stage can be run on its own ([Parse], [Assemble], [Render]) or as
// part of [Runner.Execute], which also caches the rendered page.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source: "talk.yaml",
//	    Deck:   data,
//	    Config: config.Default(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("talk.html", result.HTML, 0o644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/revealyaml/pkg/cache"
	"github.com/matzehuels/revealyaml/pkg/config"
	"github.com/matzehuels/revealyaml/pkg/deck"
	"github.com/matzehuels/revealyaml/pkg/errors"
	"github.com/matzehuels/revealyaml/pkg/markup"
)

// Options contains all input for one pipeline run.
type Options struct {
	// Source names the deck in logs and metrics (usually its path).
	Source string

	// Deck is the raw YAML document.
	Deck []byte

	// Config maps slide roles to tags. The zero value is replaced by
	// [config.Default].
	Config config.Config

	// Refresh ignores cached pages but still stores the new result.
	Refresh bool

	// Logger receives stage logs. Defaults to a discarding logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// HTML is the serialized page, doctype included.
	HTML []byte

	// Document is the parsed deck.
	Document *deck.Document

	// Page is the assembled markup tree. It is nil on a cache hit.
	Page *markup.Node

	// DeckHash is the content hash of the raw deck.
	DeckHash string

	// Stats contains timing and slide counts.
	Stats Stats

	// CacheHit reports whether HTML came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Slides       int // top-level slides in the deck
	Rendered     int // top-level slides that produced a section
	Dropped      int // leaf slides dropped anywhere in the tree
	ParseTime    time.Duration
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Deck) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "deck is empty")
	}
	if o.Source == "" {
		o.Source = "<stdin>"
	}
	if o.Config == (config.Config{}) {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the rendered page.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		ConfigHash: o.Config.Hash(),
		Version:    FormatVersion,
	}
}

// FormatVersion changes whenever the generated markup changes, so pages
// cached by an older build are not served.
const FormatVersion = "1"
