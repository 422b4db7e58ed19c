package twine

import (
	"encoding/json"

	"github.com/matzehuels/dlgraph/pkg/dlg"
)

// Format selects a Twine serialization.
type Format string

const (
	// FormatJSON is the Twine JSON story format.
	FormatJSON Format = "json"
	// FormatHTML is the Twine HTML archive format.
	FormatHTML Format = "html"
)

// Metadata is story-level information. Everything except Name has no graph
// equivalent and survives graph round trips through the sidecar.
type Metadata struct {
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
}

// Story is a passage-based rendering of a dialogue graph.
type Story struct {
	Metadata Metadata
	Passages []*Passage
	// StartPID is the pid of the opening passage.
	StartPID int
}

// PassageMeta is the Twine editor metadata attached to a passage.
type PassageMeta struct {
	Position string `json:"position,omitempty"`
	Size     string `json:"size,omitempty"`
}

// KotORMeta carries per-node dialogue fields that Twine has no slot for.
// The JSON serialization stores it inside the passage metadata object; the
// HTML format cannot carry it and restores defaults.
type KotORMeta struct {
	Speaker   string `json:"speaker,omitempty"`
	Animation uint16 `json:"animation,omitempty"`
	Camera    uint32 `json:"camera,omitempty"`
	Fade      uint8  `json:"fade,omitempty"`
	Quest     string `json:"quest,omitempty"`
	Sound     string `json:"sound,omitempty"`
	VO        string `json:"vo,omitempty"`
}

func (m KotORMeta) isZero() bool {
	return m == KotORMeta{}
}

// Passage is one node of the story.
type Passage struct {
	Name string
	// Text is the passage body without link markup; links are re-appended
	// as [[...]] lines when serializing.
	Text  string
	Kind  dlg.NodeKind
	PID   int
	Tags  []string
	Meta  PassageMeta
	KotOR KotORMeta
	Links []Link
}

// Link is one outgoing edge of a passage.
type Link struct {
	// Display is the text shown for the link; defaults to Target.
	Display string
	// Target is the name of the destination passage.
	Target string
	// IsChild and Active mirror the graph link's child flag and condition
	// script. They are carried in memory only; the text markup cannot
	// express them, so they restore to defaults on read.
	IsChild bool
	Active  string
}

// kindTag returns the passage tag marking the node variant.
func kindTag(kind dlg.NodeKind) string {
	if kind == dlg.KindEntry {
		return "entry"
	}
	return "reply"
}

// sidecar is the story-level metadata smuggled through the dialog comment
// field so it survives graph-centric round trips.
type sidecar struct {
	Style         string            `json:"style,omitempty"`
	Script        string            `json:"script,omitempty"`
	TagColors     map[string]string `json:"tag-colors,omitempty"`
	Format        string            `json:"format,omitempty"`
	FormatVersion string            `json:"format-version,omitempty"`
}

func (s sidecar) isZero() bool {
	return s.Style == "" && s.Script == "" && len(s.TagColors) == 0 &&
		s.Format == "" && s.FormatVersion == ""
}

// encodeSidecar renders the sidecar as JSON, or "" when empty.
func encodeSidecar(m Metadata) string {
	sc := sidecar{
		Style:         m.Style,
		Script:        m.Script,
		TagColors:     m.TagColors,
		Format:        m.Format,
		FormatVersion: m.FormatVersion,
	}
	if sc.isZero() {
		return ""
	}
	data, err := json.Marshal(sc)
	if err != nil {
		return ""
	}
	return string(data)
}

// decodeSidecar restores sidecar fields from a dialog comment. Anything that
// is not valid sidecar JSON degrades to defaults without error.
func decodeSidecar(comment string, m *Metadata) {
	var sc sidecar
	if err := json.Unmarshal([]byte(comment), &sc); err != nil {
		return
	}
	m.Style = sc.Style
	m.Script = sc.Script
	m.TagColors = sc.TagColors
	m.Format = sc.Format
	m.FormatVersion = sc.FormatVersion
}
