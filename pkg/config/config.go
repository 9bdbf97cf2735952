// Package config holds the rendering configuration: the mapping from logical
// slide roles to the HTML tags emitted for them.
//
// The configuration file is optional. When no file is found the documented
// default applies:
//
//	[html.slides]
//	title = "h2"
//	content = "p"
//
//	[html.main]
//	title = "h1"
//	description = "h3"
//	author = "div"
//
// Files ending in .yaml or .yml are read as YAML with the same structure;
// everything else is read as TOML. Fields missing from a file keep their
// default value.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/revealyaml/pkg/cache"
	"github.com/matzehuels/revealyaml/pkg/errors"
)

// DiscoverNames are the file names [Discover] looks for, in order.
var DiscoverNames = []string{"parser_conf.toml", "parser_conf.yaml", "parser_conf.yml"}

// Config is the rendering configuration.
type Config struct {
	HTML HTML `toml:"html" yaml:"html" json:"html"`
}

// HTML groups the tag roles by slide family.
type HTML struct {
	Slides Slides `toml:"slides" yaml:"slides" json:"slides"`
	Main   Main   `toml:"main" yaml:"main" json:"main"`
}

// Slides holds the tags used for content slides.
type Slides struct {
	Title   string `toml:"title" yaml:"title" json:"title"`
	Content string `toml:"content" yaml:"content" json:"content"`
}

// Main holds the tags used for the title and contact slides.
type Main struct {
	Title       string `toml:"title" yaml:"title" json:"title"`
	Description string `toml:"description" yaml:"description" json:"description"`
	Author      string `toml:"author" yaml:"author" json:"author"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTML: HTML{
			Slides: Slides{Title: "h2", Content: "p"},
			Main:   Main{Title: "h1", Description: "h3", Author: "div"},
		},
	}
}

// Load reads the configuration file at path. The format is chosen by the
// file extension.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Decode(data, formatOf(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Format is a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Decode parses data in the given format over the defaults and validates
// the result.
func Decode(data []byte, format Format) (Config, error) {
	cfg := Default()

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	case FormatTOML:
		_, err = toml.Decode(string(data), &cfg)
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidFormat, "unknown config format %q", format)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s config", format)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Discover looks for a configuration file in dir. It returns the default
// configuration and an empty path when none exists.
func Discover(dir string) (Config, string, error) {
	for _, name := range DiscoverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			return Config{}, "", err
		}
		return cfg, path, nil
	}
	return Default(), "", nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// voidElements cannot hold text, so no role may map to them. Same set as
// the x/net/html renderer.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Keygen: true, atom.Link: true, atom.Meta: true, atom.Param: true,
	atom.Source: true, atom.Track: true, atom.Wbr: true,
}

// Validate checks that every role maps to a usable tag name.
func (c Config) Validate() error {
	roles := []struct {
		role, tag string
	}{
		{"html.slides.title", c.HTML.Slides.Title},
		{"html.slides.content", c.HTML.Slides.Content},
		{"html.main.title", c.HTML.Main.Title},
		{"html.main.description", c.HTML.Main.Description},
		{"html.main.author", c.HTML.Main.Author},
	}
	for _, r := range roles {
		if err := errors.ValidateTagName(r.role, r.tag); err != nil {
			return err
		}
		if voidElements[atom.Lookup([]byte(strings.ToLower(r.tag)))] {
			return errors.New(errors.ErrCodeInvalidConfig, "tag %q for role %q cannot hold text", r.tag, r.role)
		}
	}
	return nil
}

// Hash returns a stable digest of the configuration for cache keys.
func (c Config) Hash() string {
	data, _ := json.Marshal(c)
	return cache.Hash(data)
}

// fillDefaults restores roles that a file set to the empty string.
func (c *Config) fillDefaults() {
	d := Default()
	setDefault(&c.HTML.Slides.Title, d.HTML.Slides.Title)
	setDefault(&c.HTML.Slides.Content, d.HTML.Slides.Content)
	setDefault(&c.HTML.Main.Title, d.HTML.Main.Title)
	setDefault(&c.HTML.Main.Description, d.HTML.Main.Description)
	setDefault(&c.HTML.Main.Author, d.HTML.Main.Author)
}

func setDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

// String renders the configuration as TOML.
func (c Config) String() string {
	var buf bytes.Buffer
	_ = Write(&buf, c)
	return buf.String()
}
