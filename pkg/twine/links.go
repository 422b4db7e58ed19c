package twine

import (
	"fmt"
	"regexp"
	"strings"
)

// linkPattern matches Twine bracket links: [[Display->Target]] or
// [[Target]]. The inner text may not contain closing brackets.
var linkPattern = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)

// parseLinks scans passage text for bracket links. It returns the text with
// all link markup removed (trimmed of trailing whitespace) and the links in
// order of appearance. A link without an explicit display text uses the
// target as display.
func parseLinks(text string) (string, []Link) {
	var links []Link
	for _, m := range linkPattern.FindAllStringSubmatch(text, -1) {
		inner := m[1]
		display, target := inner, inner
		if i := strings.Index(inner, "->"); i >= 0 {
			display = inner[:i]
			target = inner[i+len("->"):]
		}
		links = append(links, Link{Display: display, Target: target})
	}
	clean := linkPattern.ReplaceAllString(text, "")
	return strings.TrimRight(clean, " \t\n"), links
}

// formatLink renders one bracket link. The short form is used when the
// display text matches the target.
func formatLink(l Link) string {
	if l.Display == "" || l.Display == l.Target {
		return fmt.Sprintf("[[%s]]", l.Target)
	}
	return fmt.Sprintf("[[%s->%s]]", l.Display, l.Target)
}

// renderText rebuilds the serialized passage body: the clean text followed
// by one bracket link per line.
func renderText(p *Passage) string {
	if len(p.Links) == 0 {
		return p.Text
	}
	var b strings.Builder
	b.WriteString(p.Text)
	if p.Text != "" {
		b.WriteString("\n\n")
	}
	for i, l := range p.Links {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatLink(l))
	}
	return b.String()
}
