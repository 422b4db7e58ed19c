// Package render draws dialogue graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz:
// entries and replies appear as colored boxes connected by arrows, with
// starter nodes marked by a doubled outline. It exists for inspecting the
// shape of a conversation - branch points, merges, and loops - without
// loading it into a game editor.
//
// # Usage
//
// Convert a dialog to DOT format, then render to SVG:
//
//	dot := render.ToDOT(d, render.Options{Detailed: true})
//	svg, err := render.SVG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [SVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Node identifiers in the DOT output are the structural addresses used by
// dialogue tooling ("EntryList/0", "ReplyList/3"), so a node in the diagram
// can be located in the serialized file directly.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package render
