package deck

// Kind is the closed set of slide rendering strategies.
type Kind int

const (
	KindUnknown   Kind = iota // unrecognized type; the slide is dropped
	KindText                  // title + paragraph
	KindMarkdown              // inline markdown rendered by reveal.js
	KindCode                  // title + pre/code block
	KindFile                  // external markdown file
	KindFragments             // paragraphs revealed one at a time
	KindList                  // ordered or unordered list
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMarkdown:
		return "markdown"
	case KindCode:
		return "code"
	case KindFile:
		return "file"
	case KindFragments:
		return "fragment-list"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// ParseKind maps a type name to its Kind. Names match exactly.
func ParseKind(name string) Kind {
	switch name {
	case "text":
		return KindText
	case "md", "markdown":
		return KindMarkdown
	case "code":
		return KindCode
	case "file":
		return KindFile
	case "fragment", "fragments", "fragment-list":
		return KindFragments
	case "list", "ul", "ol":
		return KindList
	default:
		return KindUnknown
	}
}
