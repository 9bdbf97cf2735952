package deck

import (
	"strconv"
	"strings"
)

// Path locates a slide by its 1-based position at each nesting level.
type Path []int

// String formats the path as "2.1.3".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Child returns a new path one level below p.
func (p Path) Child(n int) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = n
	return c
}

// Walk visits slides depth-first in document order. Returning false from fn
// stops the walk entirely. Children of a container are visited after it.
func Walk(slides []Slide, fn func(p Path, s *Slide) bool) {
	walk(slides, nil, fn)
}

func walk(slides []Slide, parent Path, fn func(Path, *Slide) bool) bool {
	for i := range slides {
		p := parent.Child(i + 1)
		if !fn(p, &slides[i]) {
			return false
		}
		if !walk(slides[i].Children, p, fn) {
			return false
		}
	}
	return true
}
