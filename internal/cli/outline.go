package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/revealyaml/pkg/outline"
	"github.com/matzehuels/revealyaml/pkg/pipeline"
)

// outlineCommand creates the outline command for drawing the slide tree.
func (c *CLI) outlineCommand() *cobra.Command {
	var (
		output    string
		formatStr string
		refresh   bool
		flags     cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "outline [deck.yaml]",
		Short: "Draw the slide tree as a diagram",
		Long: `Draw the slide tree as a diagram.

The outline shows the generated title slide, every slide in deck order with
nested slides grouped under their container, and the contact slide. Slides
that will be dropped are drawn dashed; slides with speaker notes get a double
border.

Output is Graphviz DOT by default, or SVG with --format svg. Without --output
the diagram is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outline.ParseFormat(formatStr)
			if err != nil {
				return err
			}
			return c.runOutline(cmd.Context(), args[0], format, output, refresh, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&formatStr, "format", "f", string(outline.FormatDOT), "output format: dot, svg")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached diagrams")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runOutline(ctx context.Context, input string, format outline.Format, output string, refresh bool, flags cacheFlags) error {
	data, err := readDeck(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	out, err := runner.Outline(ctx, pipeline.Options{
		Source:  input,
		Deck:    data,
		Refresh: refresh,
		Logger:  c.Logger,
	}, format)
	if err != nil {
		return err
	}

	if err := writeOutput(output, out); err != nil {
		return err
	}
	if output != "" && output != stdio {
		prog.done(fmt.Sprintf("Generated %s outline", format))
		printFile(output)
	}
	return nil
}
