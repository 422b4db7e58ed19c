package twine

import (
	"fmt"

	"github.com/matzehuels/dlgraph/pkg/dlg"
)

// DialogToStory flattens a dialogue graph into a passage list.
//
// The walk is depth-first from each starter with a pointer-keyed processed
// set, so cyclic graphs terminate and every reachable node becomes exactly
// one passage. Entry passages are named after their speaker (falling back to
// a counter when the speaker is blank); reply passages always use a counter.
// The first starter's passage becomes the story start.
//
// Story-level sidecar fields previously smuggled into the dialog comment are
// restored into the returned story's metadata.
func DialogToStory(d *dlg.Dialog, meta Metadata) *Story {
	decodeSidecar(d.Comment, &meta)
	story := &Story{Metadata: meta}

	processed := make(map[*dlg.Node]*Passage)
	nextPID := 1
	entryCount, replyCount := 0, 0

	var walk func(n *dlg.Node) *Passage
	walk = func(n *dlg.Node) *Passage {
		if p, ok := processed[n]; ok {
			return p
		}
		p := &Passage{
			Kind: n.Kind,
			PID:  nextPID,
			Tags: []string{kindTag(n.Kind)},
			Text: n.Text,
			KotOR: KotORMeta{
				Camera: n.CameraAngle,
				Fade:   n.FadeType,
				Quest:  n.Quest,
				Sound:  n.Sound,
				VO:     n.VOResRef,
			},
		}
		if len(n.Animations) > 0 {
			p.KotOR.Animation = n.Animations[0].ID
		}
		switch n.Kind {
		case dlg.KindEntry:
			p.KotOR.Speaker = n.Speaker
			if n.Speaker != "" {
				p.Name = n.Speaker
			} else {
				p.Name = fmt.Sprintf("Entry_%d", entryCount)
			}
			entryCount++
		default:
			p.Name = fmt.Sprintf("Reply_%d", replyCount)
			replyCount++
		}
		nextPID++
		processed[n] = p
		story.Passages = append(story.Passages, p)

		for _, l := range n.Links {
			if l.Target == nil {
				continue
			}
			target := walk(l.Target)
			p.Links = append(p.Links, Link{
				Display: target.Name,
				Target:  target.Name,
				IsChild: l.IsChild,
				Active:  l.Active1,
			})
		}
		return p
	}

	for i, starter := range d.Starters {
		if starter.Target == nil {
			continue
		}
		p := walk(starter.Target)
		if i == 0 {
			story.StartPID = p.PID
		}
	}
	return story
}

// StoryToDialog rebuilds a dialogue graph from a passage list.
//
// Pass one creates one node per passage, keyed by passage name; a duplicate
// name silently replaces the earlier node (last write wins - existing
// behavior, kept as is). Pass two resolves each link's target name and
// appends a graph link; links to unknown passages are silently skipped. The
// designated start passage becomes the sole starter.
//
// Interchange-only story metadata is stored as JSON in the dialog comment.
func StoryToDialog(s *Story) *dlg.Dialog {
	d := dlg.NewDialog()
	d.Comment = encodeSidecar(s.Metadata)

	nodes := make(map[string]*dlg.Node, len(s.Passages))
	for _, p := range s.Passages {
		var n *dlg.Node
		if p.Kind == dlg.KindEntry {
			n = dlg.NewEntry()
			n.Speaker = p.KotOR.Speaker
		} else {
			n = dlg.NewReply()
		}
		n.Text = p.Text
		n.CameraAngle = p.KotOR.Camera
		n.FadeType = p.KotOR.Fade
		n.Quest = p.KotOR.Quest
		n.Sound = p.KotOR.Sound
		n.SoundExists = p.KotOR.Sound != ""
		n.VOResRef = p.KotOR.VO
		if p.KotOR.Animation != 0 {
			n.Animations = append(n.Animations, dlg.Animation{ID: p.KotOR.Animation})
		}
		nodes[p.Name] = n
	}

	for _, p := range s.Passages {
		n := nodes[p.Name]
		for _, l := range p.Links {
			target, ok := nodes[l.Target]
			if !ok {
				continue
			}
			gl := n.AddLink(target)
			gl.IsChild = l.IsChild
			gl.Active1 = l.Active
		}
	}

	if start := s.startPassage(); start != nil {
		d.AddStarter(nodes[start.Name])
	}
	return d
}

// startPassage resolves the story start: the passage with the start pid,
// falling back to the first passage.
func (s *Story) startPassage() *Passage {
	for _, p := range s.Passages {
		if p.PID == s.StartPID {
			return p
		}
	}
	if len(s.Passages) > 0 {
		return s.Passages[0]
	}
	return nil
}
