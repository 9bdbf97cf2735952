// Package deck defines the slide deck document and its YAML loader.
//
// A deck file has two top-level keys:
//
//	metadata:
//	  author: {name: Ada, email: ada@example.org, website: https://ada.dev}
//	  presentation: {title: Engines, description: A short history}
//	  theme: {general: night, code: zenburn}
//	slides:
//	  - title: Intro
//	    content: Hello
//	  - children:
//	      - {type: code, title: Example, content: "x := 1"}
//	      - {type: ol, items: [one, two]}
//	      - {type: file, filename: appendix.md}
//
// Slides nest through "children". A slide with children is a container and
// only its children are rendered. Every other slide is a leaf whose "type"
// selects a [Kind]; the type defaults to "text".
//
// Optional fields are pointers so that an absent field can be told apart from
// an empty one. The loader performs no validation beyond YAML shape and
// nesting depth.
package deck
