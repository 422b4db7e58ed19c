// Package twine converts dialogue graphs to and from the Twine interactive
// fiction interchange format.
//
// Two serializations are supported: Twine's JSON story format and its HTML
// archive format (tw-storydata / tw-passagedata elements). [Read] sniffs the
// format from the first non-whitespace byte ('{' for JSON, '<' for HTML) and
// anything else fails with an INVALID_FORMAT error.
//
// A story is a flat list of passages; a passage is an Entry iff it carries
// the "entry" tag, otherwise a Reply. Links between passages use Twine's
// bracket markup inside the passage text: [[Display->Target]] or [[Target]].
//
// Story-level data with no graph equivalent (visual style, story script, tag
// colors, format name and version) is serialized as JSON into the dialog's
// free-text comment field, so a graph-centric round trip preserves it. A
// malformed or missing sidecar degrades to defaults and never fails.
package twine
