// Package transform turns a parsed deck into the reveal.js slide markup.
//
// [Transformer.Transform] handles a single slide. Container slides (those
// with children) become a section holding their transformed children; leaf
// slides are rendered by one strategy per [deck.Kind]:
//
//	text        title, content paragraph
//	markdown    section[data-markdown] > script[type=text/template]
//	code        title, pre > code[data-trim]
//	file        data-markdown and separator attributes on the section itself
//	fragment    title, p.fragment[data-fragment-index=1..n]
//	list        title, ul or ol > li
//
// Presenter notes become a trailing aside.notes on every leaf except file
// slides, whose notes field sets the notes separator instead. A leaf with an
// unrecognized type produces no node and is reported to the [SkipFunc], if
// any.
//
// [Assemble] wraps the transformed slides with a title slide and a contact
// slide built from the deck metadata. Both functions are pure: the same
// input always yields an equal tree.
package transform
