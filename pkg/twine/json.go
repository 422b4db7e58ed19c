package twine

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/errors"
)

// jsonStory mirrors the Twine JSON story format.
type jsonStory struct {
	Name           string            `json:"name,omitempty"`
	IFID           string            `json:"ifid,omitempty"`
	Format         string            `json:"format,omitempty"`
	FormatVersion  string            `json:"format-version,omitempty"`
	Zoom           float64           `json:"zoom,omitempty"`
	Creator        string            `json:"creator,omitempty"`
	CreatorVersion string            `json:"creator-version,omitempty"`
	Style          string            `json:"style,omitempty"`
	Script         string            `json:"script,omitempty"`
	TagColors      map[string]string `json:"tag-colors,omitempty"`
	StartNode      int               `json:"startnode,omitempty"`
	Passages       []jsonPassage     `json:"passages"`
}

type jsonPassage struct {
	Name     string           `json:"name"`
	Text     string           `json:"text"`
	Tags     []string         `json:"tags,omitempty"`
	PID      int              `json:"pid"`
	Metadata *jsonPassageMeta `json:"metadata,omitempty"`
}

// jsonPassageMeta is the passage editor metadata. The kotor object is the
// per-passage sidecar for dialogue fields Twine has no slot for.
type jsonPassageMeta struct {
	Position string     `json:"position,omitempty"`
	Size     string     `json:"size,omitempty"`
	KotOR    *KotORMeta `json:"kotor,omitempty"`
}

// parseJSON decodes a Twine JSON story.
func parseJSON(r io.Reader) (*Story, error) {
	var data jsonStory
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode story JSON")
	}

	story := &Story{
		Metadata: Metadata{
			Name:           data.Name,
			IFID:           data.IFID,
			Format:         data.Format,
			FormatVersion:  data.FormatVersion,
			Zoom:           data.Zoom,
			Creator:        data.Creator,
			CreatorVersion: data.CreatorVersion,
			Style:          data.Style,
			Script:         data.Script,
			TagColors:      data.TagColors,
		},
		StartPID: data.StartNode,
	}
	for _, jp := range data.Passages {
		p := &Passage{
			Name: jp.Name,
			PID:  jp.PID,
			Tags: jp.Tags,
			Kind: passageKind(jp.Tags),
		}
		if jp.Metadata != nil {
			p.Meta = PassageMeta{Position: jp.Metadata.Position, Size: jp.Metadata.Size}
			if jp.Metadata.KotOR != nil {
				p.KotOR = *jp.Metadata.KotOR
			}
		}
		p.Text, p.Links = parseLinks(jp.Text)
		story.Passages = append(story.Passages, p)
	}
	return story, nil
}

// writeJSON encodes a story in the Twine JSON format.
func writeJSON(story *Story, w io.Writer) error {
	data := jsonStory{
		Name:           story.Metadata.Name,
		IFID:           story.Metadata.IFID,
		Format:         story.Metadata.Format,
		FormatVersion:  story.Metadata.FormatVersion,
		Zoom:           story.Metadata.Zoom,
		Creator:        story.Metadata.Creator,
		CreatorVersion: story.Metadata.CreatorVersion,
		Style:          story.Metadata.Style,
		Script:         story.Metadata.Script,
		TagColors:      story.Metadata.TagColors,
		StartNode:      story.StartPID,
		Passages:       make([]jsonPassage, 0, len(story.Passages)),
	}
	for i, p := range story.Passages {
		jp := jsonPassage{
			Name: p.Name,
			Text: renderText(p),
			Tags: p.Tags,
			PID:  p.PID,
		}
		meta := jsonPassageMeta{
			Position: defaultPosition(p.Meta.Position, i),
			Size:     defaultSize(p.Meta.Size),
		}
		if !p.KotOR.isZero() {
			k := p.KotOR
			meta.KotOR = &k
		}
		jp.Metadata = &meta
		data.Passages = append(data.Passages, jp)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode story JSON")
	}
	return nil
}

// passageKind maps tags to the node variant: a passage is an entry iff it
// carries the "entry" tag, otherwise a reply.
func passageKind(tags []string) dlg.NodeKind {
	if slices.Contains(tags, "entry") {
		return dlg.KindEntry
	}
	return dlg.KindReply
}
