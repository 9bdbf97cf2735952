package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/revealyaml/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The --verbose flag switches the shared logger to debug level before any
// subcommand runs, and the logger is attached to the command context so
// helpers that only see a context.Context can reach it via loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "revealyaml turns YAML slide decks into reveal.js presentations",
		Long: `revealyaml is a CLI tool for writing reveal.js presentations as YAML.

A deck lists its author, title and slides; revealyaml turns it into a single
HTML page that runs inside a reveal.js checkout, with a generated title slide
and contact slide around your content.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
