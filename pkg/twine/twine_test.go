package twine

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/matzehuels/dlgraph/pkg/errors"
)

func TestParseStoryUnrecognizedContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain text", "once upon a time"},
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"markdown", "# not a story"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStory([]byte(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %v, want INVALID_FORMAT", errors.GetCode(err))
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.html"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	err := Write(buildCyclicDialog(), filepath.Join(t.TempDir(), "out"), Format("yaml"), Metadata{})
	if !errors.Is(err, errors.ErrCodeInvalidValue) {
		t.Errorf("error code = %v, want INVALID_VALUE", errors.GetCode(err))
	}
}

func TestFileRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatHTML} {
		t.Run(string(format), func(t *testing.T) {
			src := buildCyclicDialog()
			path := filepath.Join(t.TempDir(), "story."+string(format))

			if err := Write(src, path, format, Metadata{Name: "roundtrip"}); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			got, err := Read(path)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}

			want, gotStats := src.Stats(), got.Stats()
			if gotStats.Entries != want.Entries || gotStats.Replies != want.Replies {
				t.Errorf("nodes = %d/%d, want %d/%d",
					gotStats.Entries, gotStats.Replies, want.Entries, want.Replies)
			}
			if gotStats.Links != want.Links {
				t.Errorf("links = %d, want %d", gotStats.Links, want.Links)
			}

			start := got.Starters[0].Target
			if start.Speaker != "Carth" {
				t.Errorf("speaker = %q, want Carth", start.Speaker)
			}
			if start.Text != "We need to talk." {
				t.Errorf("text = %q, want %q", start.Text, "We need to talk.")
			}
		})
	}
}

func TestWriteGeneratesIFID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.json")
	if err := Write(buildCyclicDialog(), path, FormatJSON, Metadata{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	story, err := ReadStory(path)
	if err != nil {
		t.Fatalf("ReadStory() error = %v", err)
	}

	ifid := regexp.MustCompile(`^[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}$`)
	if !ifid.MatchString(story.Metadata.IFID) {
		t.Errorf("IFID = %q, want uppercase UUID", story.Metadata.IFID)
	}
	if story.Metadata.Format != DefaultStoryFormat {
		t.Errorf("format = %q, want %q", story.Metadata.Format, DefaultStoryFormat)
	}
}

func TestReadSniffsByLeadingByte(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "leading-space.json")
	content := "  \n" + `{"name":"s","passages":[{"name":"A","text":"hi","tags":["entry"],"pid":1}]}`
	if err := os.WriteFile(jsonPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Read(jsonPath)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got := d.Stats().Entries; got != 1 {
		t.Errorf("entries = %d, want 1", got)
	}
}
