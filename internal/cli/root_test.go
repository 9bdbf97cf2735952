package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/revealyaml/pkg/config"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := testCLI().RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	sort.Strings(names)

	want := []string{"build", "cache", "completion", "config", "inspect", "outline", "serve"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("subcommands mismatch (-want +got):\n%s", diff)
	}
}

func TestRootCommandVerbose(t *testing.T) {
	captureOutput(t)
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	deckPath := filepath.Join(t.TempDir(), "talk.yaml")
	writeFile(t, deckPath, testDeck)

	root := c.RootCommand()
	root.SetArgs([]string{"build", deckPath, "--no-cache", "-v"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
	if !strings.Contains(logs.String(), "parsed deck") {
		t.Errorf("debug log missing:\n%s", logs.String())
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(deckPath), "talk.html")); err != nil {
		t.Errorf("page not written: %v", err)
	}
}

func TestRootCommandOutline(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "talk.yaml")
	outPath := filepath.Join(dir, "talk.dot")
	writeFile(t, deckPath, testDeck)

	root := testCLI().RootCommand()
	root.SetArgs([]string{"outline", deckPath, "--no-cache", "-o", outPath})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	dot, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "digraph Deck") {
		t.Errorf("outline = %.40q", dot)
	}
}

func TestRootCommandOutlineBadFormat(t *testing.T) {
	root := testCLI().RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"outline", "talk.yaml", "-f", "png"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("unknown outline format should fail")
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	tests := []struct {
		format config.Format
		name   string
	}{
		{config.FormatTOML, "parser_conf.toml"},
		{config.FormatYAML, "parser_conf.yaml"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			dir := t.TempDir()
			path, err := writeDefaultConfig(dir, tt.format, false)
			if err != nil {
				t.Fatalf("writeDefaultConfig() error: %v", err)
			}
			if filepath.Base(path) != tt.name {
				t.Errorf("path = %q, want %q", path, tt.name)
			}

			cfg, err := config.Load(path)
			if err != nil {
				t.Fatalf("written config does not load: %v", err)
			}
			if cfg != config.Default() {
				t.Errorf("written config = %+v, want defaults", cfg)
			}

			if _, err := writeDefaultConfig(dir, tt.format, false); err == nil {
				t.Error("second write without force should fail")
			}
			if _, err := writeDefaultConfig(dir, tt.format, true); err != nil {
				t.Errorf("write with force: %v", err)
			}
		})
	}

	if _, err := writeDefaultConfig(t.TempDir(), "json", false); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestCacheCommands(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv(cacheURLEnv, "")
	deckPath := filepath.Join(t.TempDir(), "talk.yaml")
	writeFile(t, deckPath, testDeck)
	c := testCLI()

	captureOutput(t)
	if err := c.runBuild(context.Background(), deckPath, buildOpts{}); err != nil {
		t.Fatal(err)
	}

	out := captureOutput(t)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "info"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), filepath.Join(cacheHome, appName)) {
		t.Errorf("cache info missing directory:\n%s", out.String())
	}

	out = captureOutput(t)
	root = c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cleared 1 cached entries") {
		t.Errorf("cache clear output:\n%s", out.String())
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
