package gff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/dlgraph/pkg/errors"
)

// jsonStruct is the wire shape of a struct: type id plus ordered fields.
type jsonStruct struct {
	ID     uint32      `json:"id"`
	Fields []jsonField `json:"fields"`
}

// jsonField carries one field with a kind tag. Scalars serialize as JSON
// numbers/strings, vectors as [x, y, z], structs and lists recursively.
type jsonField struct {
	Name  string          `json:"name"`
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// Marshal encodes a container tree as indented JSON. Field order is
// preserved, so marshal/unmarshal round trips are order-stable.
func Marshal(s *Struct) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a container tree as JSON to w.
func Write(s *Struct, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(encodeStruct(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a container tree to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(s *Struct, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f)
}

// Unmarshal decodes a JSON container tree.
func Unmarshal(data []byte) (*Struct, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes a JSON container tree from r.
// Returns a PARSE_ERROR for malformed JSON or an unrecognized field kind.
func Read(r io.Reader) (*Struct, error) {
	var data jsonStruct
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode container")
	}
	return decodeStruct(data)
}

// ReadFile reads a JSON container file.
func ReadFile(path string) (*Struct, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

func encodeStruct(s *Struct) jsonStruct {
	out := jsonStruct{ID: s.ID, Fields: make([]jsonField, 0, len(s.fields))}
	for _, f := range s.fields {
		out.Fields = append(out.Fields, jsonField{
			Name:  f.Name,
			Kind:  kindNames[f.Kind],
			Value: encodeValue(f),
		})
	}
	return out
}

func encodeValue(f Field) json.RawMessage {
	var v any
	switch f.Kind {
	case KindByte, KindWord, KindDWord, KindInt, KindFloat,
		KindString, KindResRef, KindLocString:
		v = f.Value
	case KindVector:
		vec := f.Value.(Vector)
		v = [3]float32{vec.X, vec.Y, vec.Z}
	case KindStruct:
		v = encodeStruct(f.Value.(*Struct))
	case KindList:
		l := f.Value.(*List)
		items := make([]jsonStruct, 0, l.Len())
		for _, s := range l.Structs() {
			items = append(items, encodeStruct(s))
		}
		v = items
	default:
		// Field kinds are a closed set; an unknown kind here means the
		// struct was built through something other than the typed setters.
		panic(fmt.Sprintf("gff: cannot serialize field %q with unknown kind %d", f.Name, f.Kind))
	}
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("gff: marshal field %q: %v", f.Name, err))
	}
	return raw
}

func decodeStruct(data jsonStruct) (*Struct, error) {
	s := NewStruct(data.ID)
	for _, f := range data.Fields {
		if err := decodeField(s, f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeField(s *Struct, f jsonField) error {
	fail := func(err error) error {
		return errors.Wrap(errors.ErrCodeParse, err, "field %q (%s)", f.Name, f.Kind)
	}

	switch f.Kind {
	case "byte":
		var v uint8
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return fail(err)
		}
		s.SetUint8(f.Name, v)
	case "word":
		var v uint16
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return fail(err)
		}
		s.SetUint16(f.Name, v)
	case "dword":
		var v uint32
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return fail(err)
		}
		s.SetUint32(f.Name, v)
	case "int":
		var v int32
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return fail(err)
		}
		s.SetInt32(f.Name, v)
	case "float":
		var v float32
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return fail(err)
		}
		s.SetFloat32(f.Name, v)
	case "string":
		var v string
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return fail(err)
		}
		s.SetString(f.Name, v)
	case "resref":
		var v string
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return fail(err)
		}
		s.SetResRef(f.Name, v)
	case "locstring":
		var v string
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return fail(err)
		}
		s.SetLocString(f.Name, v)
	case "vector":
		var v [3]float32
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return fail(err)
		}
		s.SetVector(f.Name, Vector{X: v[0], Y: v[1], Z: v[2]})
	case "struct":
		var v jsonStruct
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return fail(err)
		}
		child, err := decodeStruct(v)
		if err != nil {
			return err
		}
		s.set(f.Name, KindStruct, child)
	case "list":
		var items []jsonStruct
		if err := json.Unmarshal(f.Value, &items); err != nil {
			return fail(err)
		}
		l := s.SetList(f.Name)
		for _, item := range items {
			child, err := decodeStruct(item)
			if err != nil {
				return err
			}
			l.structs = append(l.structs, child)
		}
	default:
		return errors.New(errors.ErrCodeParse, "field %q has unrecognized kind %q", f.Name, f.Kind)
	}
	return nil
}
