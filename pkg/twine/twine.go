package twine

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/errors"
)

// Default story format metadata used when the caller supplies none.
const (
	DefaultStoryFormat        = "Harlowe"
	DefaultStoryFormatVersion = "3.3.9"
)

// Read loads a Twine story file and converts it to a dialogue graph.
//
// The format is sniffed from the first non-whitespace byte: '{' means JSON,
// '<' means HTML. Anything else fails with an INVALID_FORMAT error; a
// missing file fails with FILE_NOT_FOUND.
func Read(path string) (*dlg.Dialog, error) {
	story, err := ReadStory(path)
	if err != nil {
		return nil, err
	}
	return StoryToDialog(story), nil
}

// ReadStory loads a Twine story file without converting it to a graph.
func ReadStory(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return ParseStory(data)
}

// ParseStory decodes story content in either supported format, sniffing
// which one from the first non-whitespace byte.
func ParseStory(data []byte) (*Story, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty story content")
	}
	switch trimmed[0] {
	case '{':
		return parseJSON(bytes.NewReader(trimmed))
	case '<':
		return parseHTML(bytes.NewReader(trimmed))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"content is neither JSON nor HTML (starts with %q)", rune(trimmed[0]))
	}
}

// Marshal converts a dialogue graph to a story and encodes it in the given
// format. An unrecognized format fails with an INVALID_VALUE error.
//
// Metadata defaults are filled in before encoding: a generated IFID, the
// default story format, and a zoom of 1.
func Marshal(d *dlg.Dialog, format Format, meta Metadata) ([]byte, error) {
	story := DialogToStory(d, meta)
	fillMetadataDefaults(&story.Metadata)

	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		if err := writeJSON(story, &buf); err != nil {
			return nil, err
		}
	case FormatHTML:
		if err := writeHTML(story, &buf); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidValue, "unsupported story format %q", format)
	}
	return buf.Bytes(), nil
}

// Write converts a dialogue graph to a story and writes it to path in the
// given format. See [Marshal] for format and metadata handling.
func Write(d *dlg.Dialog, path string, format Format, meta Metadata) error {
	data, err := Marshal(d, format, meta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func fillMetadataDefaults(m *Metadata) {
	if m.IFID == "" {
		// Twine IFIDs are uppercase UUIDs.
		m.IFID = strings.ToUpper(uuid.NewString())
	}
	if m.Format == "" {
		m.Format = DefaultStoryFormat
	}
	if m.FormatVersion == "" {
		m.FormatVersion = DefaultStoryFormatVersion
	}
	if m.Zoom == 0 {
		m.Zoom = 1
	}
}
