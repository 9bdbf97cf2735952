package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/revealyaml/pkg/deck"
)

const (
	statusOK      = "ok"
	statusDropped = "dropped"
	maxCellWidth  = 32
)

// inspectCommand creates the inspect command, which prints the slide tree.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		preview bool
		width   int
	)

	cmd := &cobra.Command{
		Use:   "inspect [deck.yaml]",
		Short: "Show the slides of a deck",
		Long: `Show the slides of a deck.

Prints one row per slide with its position, resolved type, title and the
number of list items, and marks slides that will be dropped because of an
unknown type. With --preview the slides are rendered as markdown in the
terminal instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], preview, width)
		},
	}

	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "render slides in the terminal")
	cmd.Flags().IntVar(&width, "width", 80, "word wrap width for --preview")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, preview bool, width int) error {
	data, err := readDeck(input)
	if err != nil {
		return err
	}
	doc, err := deck.Parse(data)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	if preview {
		out, err := renderPreview(previewMarkdown(doc), width)
		if err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		fmt.Fprint(stdout, out)
		return nil
	}

	loggerFromContext(ctx).Debug("inspecting deck", "source", input)
	printDeckHeader(doc)
	fmt.Fprintln(stdout, slideTable(inspectRows(doc)))

	st := doc.Stats()
	fmt.Fprintln(stdout, StyleDim.Render(fmt.Sprintf("%s · %d containers · %d leaves · depth %d",
		plural(st.Slides, "slide"), st.Containers, st.Leaves, st.MaxDepth)))
	if st.Unknown > 0 {
		printWarning("%s will be dropped", plural(st.Unknown, "slide"))
	}
	return nil
}

// =============================================================================
// Table
// =============================================================================

// inspectRow is one line of the slide table.
type inspectRow struct {
	path   string
	kind   string
	title  string
	items  string
	notes  string
	status string
}

func (r inspectRow) cells() []string {
	return []string{r.path, r.kind, r.title, r.items, r.notes, r.status}
}

// inspectRows lists every slide in depth-first order.
func inspectRows(doc *deck.Document) []inspectRow {
	var rows []inspectRow
	deck.Walk(doc.Slides, func(p deck.Path, s *deck.Slide) bool {
		row := inspectRow{
			path:   p.String(),
			title:  truncateCell(s.TitleText()),
			status: statusOK,
		}
		if s.Notes != nil {
			row.notes = "yes"
		}

		switch {
		case s.IsContainer():
			row.kind = "container"
			row.items = strconv.Itoa(len(s.Children)) + " children"
		case s.Kind() == deck.KindUnknown:
			row.kind = strconv.Quote(s.TypeName())
			row.status = statusDropped
		default:
			row.kind = s.Kind().String()
			if k := s.Kind(); k == deck.KindList || k == deck.KindFragments {
				row.items = strconv.Itoa(len(s.ListItems()))
			}
			if s.Kind() == deck.KindFile && s.Filename != nil {
				row.title = truncateCell(*s.Filename)
			}
		}
		rows = append(rows, row)
		return true
	})
	return rows
}

func slideTable(rows []inspectRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = r.cells()
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Slide", "Type", "Title", "Items", "Notes", "Status").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if row < len(rows) && rows[row].status == statusDropped {
				return styleTableCell.Foreground(colorRed)
			}
			if col == 0 {
				return styleTableCell.Foreground(colorGray)
			}
			return styleTableCell
		}).
		Render()
}

func printDeckHeader(doc *deck.Document) {
	md := doc.Metadata
	if p := md.Presentation; p != nil && p.Title != nil {
		fmt.Fprintln(stdout, StyleTitle.Render(*p.Title))
	}
	if a := md.Author; a != nil && a.Name != nil {
		printKeyValue("Author", *a.Name)
	}
	if md.Theme.General != "" {
		printKeyValue("Theme", md.Theme.General)
	}
}

// truncateCell shortens s to maxCellWidth runes on its first line.
func truncateCell(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-1]) + "…"
}

// =============================================================================
// Terminal Preview
// =============================================================================

// previewMarkdown approximates each slide as markdown. Slides are separated
// by horizontal rules; nested slides get one heading level more.
func previewMarkdown(doc *deck.Document) string {
	var b strings.Builder
	md := doc.Metadata
	if p := md.Presentation; p != nil {
		if p.Title != nil {
			fmt.Fprintf(&b, "# %s\n\n", *p.Title)
		}
		if p.Description != nil {
			fmt.Fprintf(&b, "*%s*\n\n", *p.Description)
		}
	}

	deck.Walk(doc.Slides, func(p deck.Path, s *deck.Slide) bool {
		b.WriteString("\n---\n\n")
		heading := strings.Repeat("#", min(len(p)+1, 6))
		title := s.TitleText()
		if title == "" {
			title = "Slide " + p.String()
		}
		fmt.Fprintf(&b, "%s %s\n\n", heading, title)

		if s.IsContainer() {
			fmt.Fprintf(&b, "*%s*\n", plural(len(s.Children), "nested slide"))
			return true
		}
		writeSlideBody(&b, s)
		if s.Notes != nil && s.Kind() != deck.KindFile {
			fmt.Fprintf(&b, "\n> Note: %s\n", *s.Notes)
		}
		return true
	})
	return b.String()
}

func writeSlideBody(b *strings.Builder, s *deck.Slide) {
	content := ""
	if s.Content != nil {
		content = *s.Content
	}

	switch s.Kind() {
	case deck.KindText, deck.KindMarkdown:
		b.WriteString(content + "\n")
	case deck.KindCode:
		fmt.Fprintf(b, "```\n%s\n```\n", content)
	case deck.KindFile:
		fmt.Fprintf(b, "*external markdown: %s*\n", valueOrEmpty(s.Filename))
	case deck.KindFragments:
		for _, item := range s.ListItems() {
			b.WriteString(item + "\n\n")
		}
	case deck.KindList:
		for i, item := range s.ListItems() {
			if s.IsOrdered() {
				fmt.Fprintf(b, "%d. %s\n", i+1, item)
			} else {
				fmt.Fprintf(b, "- %s\n", item)
			}
		}
	default:
		fmt.Fprintf(b, "*dropped: unknown type %q*\n", s.TypeName())
	}
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// renderPreview renders markdown for the terminal, adapting to a light or
// dark background.
func renderPreview(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
