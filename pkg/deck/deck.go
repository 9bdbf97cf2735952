package deck

// MaxDepth is the deepest slide nesting accepted by [Document.Validate].
// The top-level slide list is depth 1.
const MaxDepth = 64

// Document is a parsed deck: metadata plus the ordered top-level slides.
type Document struct {
	Metadata Metadata `yaml:"metadata"`
	Slides   []Slide  `yaml:"slides"`
}

// Metadata describes the deck as a whole. Only the title-slide fields are
// required; everything else has a default.
type Metadata struct {
	Author       *Author           `yaml:"author"`
	Presentation *Presentation     `yaml:"presentation"`
	Theme        Theme             `yaml:"theme"`
	Reveal       map[string]string `yaml:"reveal"`
	Custom       Custom            `yaml:"custom"`
	Charset      string            `yaml:"charset"`
	Mobile       *bool             `yaml:"mobile"`
	Printable    *bool             `yaml:"printable"`
}

// Author identifies the presenter.
type Author struct {
	Name    *string `yaml:"name"`
	Email   *string `yaml:"email"`
	Website *string `yaml:"website"`
}

// Presentation holds the deck title and description.
type Presentation struct {
	Title       *string `yaml:"title"`
	Description *string `yaml:"description"`
}

// Theme selects the reveal.js theme and the code highlighting theme.
type Theme struct {
	General string `yaml:"general"`
	Code    string `yaml:"code"`
}

// Custom lists additional assets to include in the page head.
type Custom struct {
	CSS  []string `yaml:"css"`
	JS   []string `yaml:"js"`
	Font string   `yaml:"font"`
}

// Slide is one slide description. Pointer fields distinguish "absent" from
// "present but empty".
type Slide struct {
	Title     *string    `yaml:"title"`
	Type      *string    `yaml:"type"`
	Ordered   *bool      `yaml:"ordered"`
	Content   *string    `yaml:"content"`
	Items     []string   `yaml:"items"`
	Fragments []string   `yaml:"fragments"`
	Notes     *string    `yaml:"notes"`
	Children  []Slide    `yaml:"children"`
	Filename  *string    `yaml:"filename"`
	Separator *Separator `yaml:"separator"`
	Charset   *string    `yaml:"charset"`
}

// Separator overrides the slide separators of an external markdown file.
type Separator struct {
	Horizontal *string `yaml:"horizontal"`
	Vertical   *string `yaml:"vertical"`
	Notes      *string `yaml:"notes"`
}

// IsContainer reports whether the slide has children. A container's own
// type, content and items are never rendered.
func (s *Slide) IsContainer() bool { return len(s.Children) > 0 }

// Kind resolves the slide type. An absent type is [KindText].
func (s *Slide) Kind() Kind {
	if s.Type == nil {
		return KindText
	}
	return ParseKind(*s.Type)
}

// ListItems returns the entries of a list or fragment slide. The legacy
// "fragments" key is used when "items" is absent.
func (s *Slide) ListItems() []string {
	if s.Items != nil {
		return s.Items
	}
	return s.Fragments
}

// IsOrdered reports whether a list slide renders as an ordered list.
// "ol" and "ul" decide on their own; "list" consults the ordered flag.
func (s *Slide) IsOrdered() bool {
	if s.Type != nil {
		switch *s.Type {
		case "ol":
			return true
		case "ul":
			return false
		}
	}
	return s.Ordered != nil && *s.Ordered
}

// TypeName returns the raw type string, or "" when absent.
func (s *Slide) TypeName() string { return deref(s.Type) }

// TitleText returns the title, or "" when absent.
func (s *Slide) TitleText() string { return deref(s.Title) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
