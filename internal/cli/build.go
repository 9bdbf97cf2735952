package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/revealyaml/pkg/config"
	"github.com/matzehuels/revealyaml/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output     string // output HTML path; "-" for stdout
	configPath string // explicit config file; discovered next to the deck when empty
	refresh    bool   // ignore cached pages
	watch      bool   // rebuild whenever the deck or config changes
	cache      cacheFlags
}

// buildCommand creates the build command, which converts a deck to HTML.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [deck.yaml]",
		Short: "Convert a YAML deck into a reveal.js HTML page",
		Long: `Convert a YAML deck into a reveal.js HTML page.

The page is written next to the deck (talk.yaml becomes talk.html) unless
--output is given; use "-o -" to write to stdout and "-" as the deck to read
from stdin. The page references reveal.js by relative path, so place it in the
root of a reveal.js checkout.

Slides with an unknown type are skipped with a warning. A deck missing its
presentation title, description or author name fails without writing output.

Rendered pages are cached locally (or in Redis with --cache-url) keyed by the
deck and configuration contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: deck path with .html)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "tag configuration file (default: parser_conf.* next to the deck)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached pages")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rebuild when the deck or config changes")
	opts.cache.register(cmd)

	return cmd
}

// runBuild builds once, or keeps rebuilding in watch mode until ctx ends.
func (c *CLI) runBuild(ctx context.Context, input string, opts buildOpts) error {
	if opts.watch && input == stdio {
		return fmt.Errorf("--watch needs a deck file, not stdin")
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	err = c.buildOnce(ctx, runner, input, opts)
	if !opts.watch {
		return err
	}
	if err != nil {
		printError("%v", err)
	}

	w, err := newDeckWatcher(c.Logger, watchPaths(input, opts.configPath), defaultDebounce, func(ctx context.Context) error {
		prog := newProgress(c.Logger)
		if err := c.buildOnce(ctx, runner, input, opts); err != nil {
			return err
		}
		prog.done("Rebuilt " + outputPath(input, opts.output))
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	printInfo("Watching %s for changes (Ctrl+C to stop)", input)
	return w.Run(ctx)
}

// watchPaths lists the files whose changes trigger a rebuild: the deck and
// either the explicit config or every file config discovery would pick up,
// including ones that do not exist yet.
func watchPaths(input, configPath string) []string {
	paths := []string{input}
	if configPath != "" {
		return append(paths, configPath)
	}
	for _, name := range config.DiscoverNames {
		paths = append(paths, filepath.Join(filepath.Dir(input), name))
	}
	return paths
}

// buildOnce runs the pipeline for input and writes the page.
func (c *CLI) buildOnce(ctx context.Context, runner *pipeline.Runner, input string, opts buildOpts) error {
	cfg, cfgPath, err := loadConfig(opts.configPath, input)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		c.Logger.Debug("loaded config", "path", cfgPath)
	}

	data, err := readDeck(input)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, os.Stderr, "Building "+input+"...")
	spinner.Start()

	res, err := runner.Execute(ctx, pipeline.Options{
		Source:  input,
		Deck:    data,
		Config:  cfg,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	out := outputPath(input, opts.output)
	if err := writeOutput(out, res.HTML); err != nil {
		return err
	}
	if out == stdio {
		return nil
	}

	printSuccess("Built %s", input)
	printFile(out)
	printStats(res.Stats, res.CacheHit)
	if res.Stats.Dropped > 0 {
		printWarning("%s skipped (unknown type, see log)", plural(res.Stats.Dropped, "slide"))
	}
	return nil
}
