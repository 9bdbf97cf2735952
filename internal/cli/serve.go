package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/revealyaml/pkg/errors"
	"github.com/matzehuels/revealyaml/pkg/observability"
	"github.com/matzehuels/revealyaml/pkg/outline"
	"github.com/matzehuels/revealyaml/pkg/pipeline"
)

const (
	defaultServeAddr = "localhost:8000"
	shutdownTimeout  = 5 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string
	assets     string // reveal.js checkout served under /
	configPath string
	cache      cacheFlags
}

// serveCommand creates the serve command for previewing a deck over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [deck.yaml]",
		Short: "Preview a deck in the browser",
		Long: `Preview a deck in the browser.

The deck is read and rendered on every request to /, so edits show up on
reload. Every other path is served from --assets (default: the deck's
directory), which should hold a reveal.js checkout.

Additional endpoints:
  /outline.svg   slide tree diagram
  /metrics       Prometheus metrics for rendering, cache and requests`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.assets == "" {
				opts.assets = filepath.Dir(args[0])
			}
			return c.runServe(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "listen", "l", defaultServeAddr, "address to listen on")
	cmd.Flags().StringVar(&opts.assets, "assets", "", "reveal.js directory served alongside the deck")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "tag configuration file")
	opts.cache.register(cmd)

	return cmd
}

// runServe serves the preview until ctx is cancelled, then shuts down
// gracefully.
func (c *CLI) runServe(ctx context.Context, input string, opts serveOpts) error {
	reg := prometheus.NewRegistry()
	hooks := observability.NewPrometheusHooks(reg)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p := &preview{
		runner:     runner,
		logger:     c.Logger,
		deckPath:   input,
		configPath: opts.configPath,
	}
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newPreviewHandler(p, opts.assets, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printSuccess("Serving %s", input)
	printDetail("Assets: %s", opts.assets)
	fmt.Fprintln(stdout, "  "+StyleLink.Render("http://"+opts.addr+"/"))

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ctx.Err()
}

// preview renders the deck on demand.
type preview struct {
	runner     *pipeline.Runner
	logger     *log.Logger
	deckPath   string
	configPath string
}

// newPreviewHandler builds the preview router. reg may be nil to disable
// the /metrics endpoint.
func newPreviewHandler(p *preview, assets string, reg prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/", p.serveDeck)
	r.Get("/outline.svg", p.serveOutline)
	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	if assets != "" {
		r.Handle("/*", http.FileServer(http.Dir(assets)))
	}
	return r
}

func (p *preview) options() (pipeline.Options, error) {
	cfg, _, err := loadConfig(p.configPath, p.deckPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	data, err := readDeck(p.deckPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Source: p.deckPath,
		Deck:   data,
		Config: cfg,
		Logger: p.logger,
	}, nil
}

func (p *preview) serveDeck(w http.ResponseWriter, r *http.Request) {
	opts, err := p.options()
	if err != nil {
		p.fail(w, err)
		return
	}
	res, err := p.runner.Execute(r.Context(), opts)
	if err != nil {
		p.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(res.HTML)
}

func (p *preview) serveOutline(w http.ResponseWriter, r *http.Request) {
	opts, err := p.options()
	if err != nil {
		p.fail(w, err)
		return
	}
	svg, err := p.runner.Outline(r.Context(), opts, outline.FormatSVG)
	if err != nil {
		p.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(svg)
}

// fail maps pipeline errors to a status code and a plain-text body.
func (p *preview) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		p.logger.Error("render failed", "error", err)
	} else {
		p.logger.Warn("deck rejected", "error", errors.UserMessage(err))
	}
	http.Error(w, errors.UserMessage(err), status)
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidShape, errors.ErrCodeMissingField,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		return http.StatusUnprocessableEntity
	}
	if stderrors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// instrument reports every request to the HTTP hooks, labelled by route
// pattern rather than raw path.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}
