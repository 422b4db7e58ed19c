package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dlgraph/pkg/dlg"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds delay and condition-script annotations. When false,
	// nodes show only the speaker and a text excerpt.
	Detailed bool

	// MaxTextLen truncates node text in labels; 0 means the default of 40.
	MaxTextLen int
}

// ToDOT converts a dialogue graph to Graphviz DOT format.
//
// Entries render as blue boxes, replies as grey ones; starter targets get a
// doubled outline. Child links (IsChild) render dashed, and conditional
// links are labeled with their script when Detailed is set.
func ToDOT(d *dlg.Dialog, opts Options) string {
	maxLen := opts.MaxTextLen
	if maxLen <= 0 {
		maxLen = 40
	}

	entries := d.AllEntries(true)
	replies := d.AllReplies(true)

	addr := make(map[*dlg.Node]string, len(entries)+len(replies))
	for i, n := range entries {
		addr[n] = fmt.Sprintf("EntryList/%d", i)
	}
	for i, n := range replies {
		addr[n] = fmt.Sprintf("ReplyList/%d", i)
	}

	starters := make(map[*dlg.Node]bool, len(d.Starters))
	for _, l := range d.Starters {
		if l.Target != nil {
			starters[l.Target] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph dialog {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeNodes := func(nodes []*dlg.Node, fill string) {
		for _, n := range nodes {
			attrs := []string{
				fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed, maxLen)),
				fmt.Sprintf("fillcolor=%q", fill),
			}
			if starters[n] {
				attrs = append(attrs, "peripheries=2")
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", addr[n], strings.Join(attrs, ", "))
		}
	}
	writeNodes(entries, "lightblue")
	writeNodes(replies, "lightgrey")

	buf.WriteString("\n")
	for _, n := range append(append([]*dlg.Node{}, entries...), replies...) {
		for _, l := range n.Links {
			if l.Target == nil {
				continue
			}
			var attrs []string
			if l.IsChild {
				attrs = append(attrs, "style=dashed")
			}
			if opts.Detailed && l.Active1 != "" {
				attrs = append(attrs, fmt.Sprintf("label=%q", l.Active1))
			}
			if len(attrs) > 0 {
				fmt.Fprintf(&buf, "  %q -> %q [%s];\n", addr[n], addr[l.Target], strings.Join(attrs, ", "))
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", addr[n], addr[l.Target])
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *dlg.Node, detailed bool, maxLen int) string {
	var parts []string
	if n.IsEntry() && n.Speaker != "" {
		parts = append(parts, n.Speaker)
	}
	parts = append(parts, truncate(n.Text, maxLen))
	if detailed {
		if n.Delay != -1 {
			parts = append(parts, fmt.Sprintf("delay: %d", n.Delay))
		}
		if n.Script1 != "" {
			parts = append(parts, "script: "+n.Script1)
		}
	}
	return strings.Join(parts, "\n")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
