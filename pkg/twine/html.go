package twine

import (
	"fmt"
	"html"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/errors"
)

// parseHTML decodes a Twine HTML archive. Real-world exports are HTML, not
// XML, so parsing is tolerant: the story is whatever the first tw-storydata
// element contains. A document without one is a format error.
func parseHTML(r io.Reader) (*Story, error) {
	doc, err := xhtml.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse story HTML")
	}

	storyNode := findElement(doc, "tw-storydata")
	if storyNode == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no tw-storydata element found")
	}

	story := &Story{
		Metadata: Metadata{
			Name:           attr(storyNode, "name"),
			IFID:           attr(storyNode, "ifid"),
			Format:         attr(storyNode, "format"),
			FormatVersion:  attr(storyNode, "format-version"),
			Creator:        attr(storyNode, "creator"),
			CreatorVersion: attr(storyNode, "creator-version"),
		},
	}
	if z, err := strconv.ParseFloat(attr(storyNode, "zoom"), 64); err == nil {
		story.Metadata.Zoom = z
	}
	startNode, _ := strconv.Atoi(attr(storyNode, "startnode"))

	for c := storyNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xhtml.ElementNode {
			continue
		}
		switch c.Data {
		case "style":
			if attr(c, "type") == "text/twine-css" {
				story.Metadata.Style = text(c)
			}
		case "script":
			if attr(c, "type") == "text/twine-javascript" {
				story.Metadata.Script = text(c)
			}
		case "tw-tag":
			if story.Metadata.TagColors == nil {
				story.Metadata.TagColors = make(map[string]string)
			}
			story.Metadata.TagColors[attr(c, "name")] = attr(c, "color")
		case "tw-passagedata":
			story.Passages = append(story.Passages, parsePassageData(c))
		}
	}

	story.StartPID = startNode
	return story, nil
}

func parsePassageData(n *xhtml.Node) *Passage {
	p := &Passage{
		Name: attr(n, "name"),
		Meta: PassageMeta{
			Position: attr(n, "position"),
			Size:     attr(n, "size"),
		},
	}
	if tags := attr(n, "tags"); tags != "" {
		p.Tags = strings.Fields(tags)
	}
	p.Kind = passageKind(p.Tags)
	p.PID, _ = strconv.Atoi(attr(n, "pid"))
	p.Text, p.Links = parseLinks(text(n))
	// HTML has no per-passage sidecar slot; the speaker of an entry is
	// recoverable from the passage name.
	if p.Kind == dlg.KindEntry {
		p.KotOR.Speaker = p.Name
	}
	return p
}

// findElement returns the first element named name, depth-first.
func findElement(n *xhtml.Node, name string) *xhtml.Node {
	if n.Type == xhtml.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// attr returns the value of the named attribute, or "".
func attr(n *xhtml.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// text concatenates the direct text children of n.
func text(n *xhtml.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// writeHTML encodes a story as a Twine HTML archive.
func writeHTML(story *Story, w io.Writer) error {
	var b strings.Builder
	m := story.Metadata

	zoom := m.Zoom
	if zoom == 0 {
		zoom = 1
	}

	b.WriteString("<!DOCTYPE html>\n<html>\n<body>\n")
	fmt.Fprintf(&b,
		`<tw-storydata name="%s" ifid="%s" format="%s" format-version="%s" zoom="%s" creator="%s" creator-version="%s" startnode="%d">`,
		html.EscapeString(m.Name), html.EscapeString(m.IFID),
		html.EscapeString(m.Format), html.EscapeString(m.FormatVersion),
		strconv.FormatFloat(zoom, 'g', -1, 64),
		html.EscapeString(m.Creator), html.EscapeString(m.CreatorVersion),
		story.StartPID)
	b.WriteString("\n")

	fmt.Fprintf(&b, `<style role="stylesheet" id="twine-user-stylesheet" type="text/twine-css">%s</style>`,
		html.EscapeString(m.Style))
	b.WriteString("\n")
	fmt.Fprintf(&b, `<script role="script" id="twine-user-script" type="text/twine-javascript">%s</script>`,
		html.EscapeString(m.Script))
	b.WriteString("\n")

	for _, tag := range slices.Sorted(maps.Keys(m.TagColors)) {
		fmt.Fprintf(&b, `<tw-tag name="%s" color="%s"></tw-tag>`,
			html.EscapeString(tag), html.EscapeString(m.TagColors[tag]))
		b.WriteString("\n")
	}

	for i, p := range story.Passages {
		fmt.Fprintf(&b,
			`<tw-passagedata pid="%d" name="%s" tags="%s" position="%s" size="%s">%s</tw-passagedata>`,
			p.PID, html.EscapeString(p.Name),
			html.EscapeString(strings.Join(p.Tags, " ")),
			html.EscapeString(defaultPosition(p.Meta.Position, i)),
			html.EscapeString(defaultSize(p.Meta.Size)),
			html.EscapeString(renderText(p)))
		b.WriteString("\n")
	}

	b.WriteString("</tw-storydata>\n</body>\n</html>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write story HTML")
	}
	return nil
}

// defaultPosition lays unplaced passages out on a simple grid so Twine's
// editor does not stack them at the origin.
func defaultPosition(position string, i int) string {
	if position != "" {
		return position
	}
	return fmt.Sprintf("%d,%d", 100+(i%8)*200, 100+(i/8)*200)
}

func defaultSize(size string) string {
	if size != "" {
		return size
	}
	return "100,100"
}
