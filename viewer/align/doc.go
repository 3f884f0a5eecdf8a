// Package align maps a character diff between two documents onto the documents' lines.
//
// The diff is an ordered list of [Op]s as produced by a diff provider that was called with the
// right document first and the left document second: Delete text exists only in the right
// document, Insert text only in the left one. Walking the list once, the package locates every
// changed span as an [Extent] in the document that owns it and produces the [Highlight]s and
// [Connector]s a renderer needs to draw both documents side by side with the gutter between them.
//
// Offsets and columns count characters (runes). A line terminator is a single '\n' and counts as
// one character; see [SplitLines].
//
// Every run is a pure function of the two texts and the diff. The [Engine] additionally keeps
// the markers of its last successful run in a [MarkerSink] and replaces them as a whole.
package align
