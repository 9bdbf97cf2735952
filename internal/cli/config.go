package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/revealyaml/pkg/config"
	"github.com/matzehuels/revealyaml/pkg/errors"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the tag configuration",
		Long: `Show or create the tag configuration.

The configuration chooses which HTML elements carry slide titles, slide
content and the title-slide fields. It is read from --config, or from the
first of ` + fmt.Sprint(config.DiscoverNames) + ` found next to the deck.`,
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show [deck.yaml]",
		Short: "Print the configuration in effect for a deck",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckPath := filepath.Join(".", "deck.yaml")
			if len(args) == 1 {
				deckPath = args[0]
			}
			cfg, source, err := loadConfig(path, deckPath)
			if err != nil {
				return err
			}
			if source == "" {
				source = "built-in defaults"
			}
			printInfo("Source: %s", source)
			printNewline()
			fmt.Fprint(stdout, cfg.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "configuration file to show")
	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a configuration file with the default tags",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, err := writeDefaultConfig(dir, config.Format(format), force)
			if err != nil {
				return err
			}
			printSuccess("Wrote default configuration")
			printFile(path)
			printNextStep("Build a deck with it", appName+" build talk.yaml")
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatTOML), "file format: toml, yaml")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// writeDefaultConfig writes the default configuration into dir and returns
// the file path. An existing file is only replaced with force.
func writeDefaultConfig(dir string, format config.Format, force bool) (string, error) {
	var (
		name string
		buf  bytes.Buffer
	)
	switch format {
	case config.FormatTOML:
		name = config.DiscoverNames[0]
		if err := config.Write(&buf, config.Default()); err != nil {
			return "", err
		}
	case config.FormatYAML:
		name = config.DiscoverNames[1]
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(config.Default()); err != nil {
			return "", err
		}
		enc.Close()
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown config format %q (must be 'toml' or 'yaml')", format)
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
