package twine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/errors"
)

const storyJSON = `{
  "name": "tat17_talk",
  "ifid": "F2277A49-95C9-4021-A0D5-1C0C7D0F51E9",
  "format": "Harlowe",
  "format-version": "3.3.9",
  "zoom": 1,
  "creator": "dlgraph",
  "tag-colors": {"entry": "green"},
  "passages": [
    {
      "name": "Komad",
      "text": "The beast is close.\n\n[[Reply_0]]",
      "tags": ["entry"],
      "pid": 1,
      "metadata": {
        "position": "100,100",
        "size": "100,100",
        "kotor": {"speaker": "Komad", "sound": "n_komad_01", "camera": 3}
      }
    },
    {
      "name": "Reply_0",
      "text": "Then let's hunt.",
      "tags": ["reply"],
      "pid": 2
    }
  ]
}`

func TestParseJSON(t *testing.T) {
	story, err := parseJSON(strings.NewReader(storyJSON))
	if err != nil {
		t.Fatalf("parseJSON() error = %v", err)
	}

	if story.Metadata.Name != "tat17_talk" {
		t.Errorf("name = %q, want tat17_talk", story.Metadata.Name)
	}
	if story.Metadata.TagColors["entry"] != "green" {
		t.Errorf("tag colors = %v", story.Metadata.TagColors)
	}
	if len(story.Passages) != 2 {
		t.Fatalf("passages = %d, want 2", len(story.Passages))
	}

	p := story.Passages[0]
	if p.Kind != dlg.KindEntry {
		t.Errorf("kind = %v, want entry", p.Kind)
	}
	if p.Text != "The beast is close." {
		t.Errorf("text = %q (link markup should be stripped)", p.Text)
	}
	if len(p.Links) != 1 || p.Links[0].Target != "Reply_0" {
		t.Errorf("links = %+v, want one link to Reply_0", p.Links)
	}
	if p.KotOR.Speaker != "Komad" || p.KotOR.Sound != "n_komad_01" || p.KotOR.Camera != 3 {
		t.Errorf("kotor sidecar = %+v", p.KotOR)
	}
	if p.Meta.Position != "100,100" {
		t.Errorf("position = %q, want 100,100", p.Meta.Position)
	}
}

func TestParseJSONMalformed(t *testing.T) {
	_, err := parseJSON(strings.NewReader(`{"name": "x", "passages": [`))
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("error code = %v, want PARSE_ERROR", errors.GetCode(err))
	}
}

func TestWriteJSONCarriesKotORSidecar(t *testing.T) {
	src, err := parseJSON(strings.NewReader(storyJSON))
	if err != nil {
		t.Fatalf("parseJSON() error = %v", err)
	}

	var buf bytes.Buffer
	if err := writeJSON(src, &buf); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}
	got, err := parseJSON(&buf)
	if err != nil {
		t.Fatalf("re-parse error = %v", err)
	}

	p := got.Passages[0]
	if p.KotOR != src.Passages[0].KotOR {
		t.Errorf("kotor sidecar = %+v, want %+v", p.KotOR, src.Passages[0].KotOR)
	}
	if p.Text != src.Passages[0].Text || len(p.Links) != 1 {
		t.Errorf("passage body lost: %+v", p)
	}
}
