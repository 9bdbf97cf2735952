package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/revealyaml/pkg/cache"
	"github.com/matzehuels/revealyaml/pkg/deck"
	"github.com/matzehuels/revealyaml/pkg/observability"
	"github.com/matzehuels/revealyaml/pkg/outline"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options, which the preview server relies on.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → assemble → render pipeline. The deck is
// always parsed; assembling and rendering are skipped when the page for this
// deck and configuration is cached.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{DeckHash: cache.Hash(opts.Deck)}

	// Stage 1: Parse
	parseStart := time.Now()
	doc, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Document = doc
	result.Stats.Slides = len(doc.Slides)
	result.Stats.ParseTime = time.Since(parseStart)

	st := doc.Stats()
	opts.Logger.Debug("parsed deck",
		"source", opts.Source,
		"slides", st.Slides,
		"containers", st.Containers,
		"depth", st.MaxDepth,
		"duration", result.Stats.ParseTime)

	cacheKey := r.Keyer.ArtifactKey(result.DeckHash, opts.ArtifactKeyOpts())
	if !opts.Refresh {
		if data, ok := r.lookup(ctx, cacheKey, "page"); ok {
			result.HTML = data
			result.CacheHit = true
			result.Stats.Rendered, result.Stats.Dropped = cachedCounts(doc, st)
			opts.Logger.Info("using cached page", "source", opts.Source, "bytes", len(data))
			return result, nil
		}
	}

	// Stage 2: Assemble
	assembleStart := time.Now()
	assembled, err := Assemble(ctx, doc, opts.Config, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	result.Stats.Rendered = assembled.Rendered
	result.Stats.Dropped = assembled.Dropped
	result.Stats.AssembleTime = time.Since(assembleStart)

	opts.Logger.Info("assembled slides",
		"rendered", assembled.Rendered,
		"dropped", assembled.Dropped,
		"duration", result.Stats.AssembleTime)

	// Stage 3: Render
	renderStart := time.Now()
	root, html, err := Render(ctx, doc, assembled.Slides)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Page = root
	result.HTML = html
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered page",
		"bytes", len(html),
		"duration", result.Stats.RenderTime)

	r.store(ctx, cacheKey, "page", html, cache.TTLArtifact)
	return result, nil
}

// Outline parses the deck and renders its outline diagram, caching the
// result like a page.
func (r *Runner) Outline(ctx context.Context, opts Options, format outline.Format) ([]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	doc, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	cacheKey := r.Keyer.OutlineKey(cache.Hash(opts.Deck), cache.OutlineKeyOpts{Format: string(format)})
	if !opts.Refresh {
		if data, ok := r.lookup(ctx, cacheKey, "outline"); ok {
			return data, nil
		}
	}

	data, err := outline.Render(ctx, doc, format)
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	r.store(ctx, cacheKey, "outline", data, cache.TTLOutline)
	return data, nil
}

// lookup reads from the cache. Backend errors degrade to a miss.
func (r *Runner) lookup(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key_type", keyType, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// store writes to the cache. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key_type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// cachedCounts recovers the assemble counts for a cached page. Only
// unknown leaves produce no section, so they follow from the parsed deck.
func cachedCounts(doc *deck.Document, st deck.Stats) (rendered, dropped int) {
	rendered = len(doc.Slides)
	for i := range doc.Slides {
		s := &doc.Slides[i]
		if !s.IsContainer() && s.Kind() == deck.KindUnknown {
			rendered--
		}
	}
	return rendered, st.Unknown
}
