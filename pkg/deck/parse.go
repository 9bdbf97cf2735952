package deck

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/revealyaml/pkg/errors"
)

// Parse decodes a YAML deck. Absent fields are left nil; a value of the
// wrong shape (for example a scalar where a list of children is expected)
// fails with [errors.ErrCodeInvalidShape].
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "deck is empty")
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidShape, err, "decode deck")
	}
	return &doc, nil
}

// Load reads and parses the deck at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) || err == fs.ErrNotExist {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read deck %s", path)
		}
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks structural limits that YAML decoding cannot express.
// Field presence is not checked here; missing metadata is reported when the
// title slide is assembled.
func (d *Document) Validate() error {
	var err error
	Walk(d.Slides, func(p Path, s *Slide) bool {
		if len(p) > MaxDepth {
			err = errors.New(errors.ErrCodeInvalidShape, "slide %s nested deeper than %d levels", p, MaxDepth)
			return false
		}
		return true
	})
	return err
}

// Stats summarizes a deck for logging.
type Stats struct {
	Slides     int // every slide description, containers included
	Containers int
	Leaves     int
	Unknown    int // leaves with an unrecognized type
	MaxDepth   int
}

// Stats counts the slides of d.
func (d *Document) Stats() Stats {
	var st Stats
	Walk(d.Slides, func(p Path, s *Slide) bool {
		st.Slides++
		if len(p) > st.MaxDepth {
			st.MaxDepth = len(p)
		}
		switch {
		case s.IsContainer():
			st.Containers++
		case s.Kind() == KindUnknown:
			st.Leaves++
			st.Unknown++
		default:
			st.Leaves++
		}
		return true
	})
	return st
}
