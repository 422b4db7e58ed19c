package gff

import (
	"strings"
	"testing"

	"github.com/matzehuels/dlgraph/pkg/errors"
)

// buildSample covers every field kind plus nesting.
func buildSample() *Struct {
	s := NewStruct(0xFFFFFFFF)
	s.SetUint8("Skippable", 1)
	s.SetUint16("CamVidEffect", 3)
	s.SetUint32("NumWords", 42)
	s.SetInt32("NextNodeID", -1)
	s.SetFloat32("FadeDelay", 0.25)
	s.SetString("Tag", "conv_tag")
	s.SetResRef("EndConversation", "k_end")
	s.SetLocString("Text", "Hello there.")
	s.SetVector("FadeColor", Vector{X: 1, Y: 0.5, Z: 0.25})
	l := s.SetList("EntryList")
	e := l.Append(0)
	e.SetLocString("Text", "nested")
	inner := e.SetList("RepliesList")
	inner.Append(0).SetUint32("Index", 1)
	return s
}

func TestJSONRoundTrip(t *testing.T) {
	src := buildSample()

	data, err := Marshal(src)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !src.Equal(got) {
		t.Error("round trip: decoded struct differs from source")
	}

	// Second generation must be byte-identical to the first.
	data2, err := Marshal(got)
	if err != nil {
		t.Fatalf("second Marshal() error = %v", err)
	}
	if string(data) != string(data2) {
		t.Error("round trip: second marshal not byte-identical")
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{
			name:  "malformed JSON",
			input: "{not json",
			code:  errors.ErrCodeParse,
		},
		{
			name:  "unknown field kind",
			input: `{"id":0,"fields":[{"name":"X","kind":"quaternion","value":1}]}`,
			code:  errors.ErrCodeParse,
		},
		{
			name:  "value does not match kind",
			input: `{"id":0,"fields":[{"name":"X","kind":"dword","value":"nope"}]}`,
			code:  errors.ErrCodeParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Read() error = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestWriteReadFile(t *testing.T) {
	path := t.TempDir() + "/sample.dlg.json"
	src := buildSample()

	if err := WriteFile(src, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !src.Equal(got) {
		t.Error("file round trip: decoded struct differs from source")
	}

	if _, err := ReadFile(path + ".missing"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestEncodeUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown field kind")
		}
	}()
	s := NewStruct(0)
	s.set("Bogus", FieldKind(99), 1)
	_, _ = Marshal(s)
}
