// Package gff models the generic named-field, nested-struct, ordered-list
// container used by the game's structured resource files.
//
// The container is a tree: a struct holds an ordered set of named, typed
// fields; a field may hold a scalar, a nested struct, or a list of structs.
// The byte-level encoding of this tree is handled elsewhere - this package
// provides the in-memory primitives the dialogue codec is written against
// (read-field-or-default access, existence checks, typed writes, ordered
// list iteration) plus a field-ordered JSON form for on-disk storage.
//
// # Read-or-default contract
//
// Every getter takes a default that stands in when the field is absent or
// holds a different kind. Older resource files omit many fields, so readers
// must never treat a missing field as an error:
//
//	delay := s.Uint32("Delay", 0)
//	if s.Exists("CameraID") {
//	    id := s.Int32("CameraID", 0)
//	    // ...
//	}
//
// Field order is preserved exactly as written, which keeps serialization
// round trips byte-stable.
package gff

// FieldKind identifies the value type a container field holds.
type FieldKind int

// Field kinds. The numeric scalars mirror the width/signedness split of the
// underlying resource format.
const (
	KindByte FieldKind = iota
	KindWord
	KindDWord
	KindInt
	KindFloat
	KindString
	KindResRef
	KindLocString
	KindVector
	KindStruct
	KindList
)

// kindNames maps field kinds to their JSON tags.
var kindNames = map[FieldKind]string{
	KindByte:      "byte",
	KindWord:      "word",
	KindDWord:     "dword",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "string",
	KindResRef:    "resref",
	KindLocString: "locstring",
	KindVector:    "vector",
	KindStruct:    "struct",
	KindList:      "list",
}

// Vector is a three-component float value (used for color fields).
type Vector struct {
	X, Y, Z float32
}

// Field is a single named, typed value inside a struct.
type Field struct {
	Name  string
	Kind  FieldKind
	Value any // uint8 | uint16 | uint32 | int32 | float32 | string | Vector | *Struct | *List
}

// Struct is an ordered collection of named fields plus a type id.
// Field insertion order is preserved; setting an existing name replaces the
// value in place without moving the field.
type Struct struct {
	ID     uint32
	fields []Field
	index  map[string]int
}

// NewStruct creates an empty struct with the given type id.
func NewStruct(id uint32) *Struct {
	return &Struct{ID: id, index: make(map[string]int)}
}

// Exists reports whether the struct has a field with the given name.
func (s *Struct) Exists(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Fields returns the fields in insertion order. The slice is shared; callers
// must not modify it.
func (s *Struct) Fields() []Field {
	return s.fields
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	return len(s.fields)
}

func (s *Struct) set(name string, kind FieldKind, value any) {
	if i, ok := s.index[name]; ok {
		s.fields[i] = Field{Name: name, Kind: kind, Value: value}
		return
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, Field{Name: name, Kind: kind, Value: value})
}

func (s *Struct) get(name string, kind FieldKind) (any, bool) {
	i, ok := s.index[name]
	if !ok || s.fields[i].Kind != kind {
		return nil, false
	}
	return s.fields[i].Value, true
}

// SetUint8 stores a byte field.
func (s *Struct) SetUint8(name string, v uint8) { s.set(name, KindByte, v) }

// SetUint16 stores a word field.
func (s *Struct) SetUint16(name string, v uint16) { s.set(name, KindWord, v) }

// SetUint32 stores a dword field.
func (s *Struct) SetUint32(name string, v uint32) { s.set(name, KindDWord, v) }

// SetInt32 stores a signed int field.
func (s *Struct) SetInt32(name string, v int32) { s.set(name, KindInt, v) }

// SetFloat32 stores a float field.
func (s *Struct) SetFloat32(name string, v float32) { s.set(name, KindFloat, v) }

// SetString stores a string field.
func (s *Struct) SetString(name string, v string) { s.set(name, KindString, v) }

// SetResRef stores a resource-reference field.
func (s *Struct) SetResRef(name string, v string) { s.set(name, KindResRef, v) }

// SetLocString stores a localized-string field. Localization machinery is
// out of scope here; the value is carried as a plain string.
func (s *Struct) SetLocString(name string, v string) { s.set(name, KindLocString, v) }

// SetVector stores a three-float field.
func (s *Struct) SetVector(name string, v Vector) { s.set(name, KindVector, v) }

// SetStruct stores a nested struct field and returns the new struct.
func (s *Struct) SetStruct(name string, id uint32) *Struct {
	child := NewStruct(id)
	s.set(name, KindStruct, child)
	return child
}

// SetList stores an empty list field and returns it for appending.
func (s *Struct) SetList(name string) *List {
	l := &List{}
	s.set(name, KindList, l)
	return l
}

// Uint8 returns the named byte field, or def when absent.
func (s *Struct) Uint8(name string, def uint8) uint8 {
	if v, ok := s.get(name, KindByte); ok {
		return v.(uint8)
	}
	return def
}

// Uint16 returns the named word field, or def when absent.
func (s *Struct) Uint16(name string, def uint16) uint16 {
	if v, ok := s.get(name, KindWord); ok {
		return v.(uint16)
	}
	return def
}

// Uint32 returns the named dword field, or def when absent.
func (s *Struct) Uint32(name string, def uint32) uint32 {
	if v, ok := s.get(name, KindDWord); ok {
		return v.(uint32)
	}
	return def
}

// Int32 returns the named int field, or def when absent.
func (s *Struct) Int32(name string, def int32) int32 {
	if v, ok := s.get(name, KindInt); ok {
		return v.(int32)
	}
	return def
}

// Float32 returns the named float field, or def when absent.
func (s *Struct) Float32(name string, def float32) float32 {
	if v, ok := s.get(name, KindFloat); ok {
		return v.(float32)
	}
	return def
}

// String returns the named string field, or def when absent.
func (s *Struct) String(name string, def string) string {
	if v, ok := s.get(name, KindString); ok {
		return v.(string)
	}
	return def
}

// ResRef returns the named resource-reference field, or def when absent.
func (s *Struct) ResRef(name string, def string) string {
	if v, ok := s.get(name, KindResRef); ok {
		return v.(string)
	}
	return def
}

// LocString returns the named localized-string field, or def when absent.
func (s *Struct) LocString(name string, def string) string {
	if v, ok := s.get(name, KindLocString); ok {
		return v.(string)
	}
	return def
}

// Vector returns the named vector field and whether it was present.
func (s *Struct) Vector(name string) (Vector, bool) {
	if v, ok := s.get(name, KindVector); ok {
		return v.(Vector), true
	}
	return Vector{}, false
}

// Struct returns the named nested struct, or nil when absent.
func (s *Struct) Struct(name string) *Struct {
	if v, ok := s.get(name, KindStruct); ok {
		return v.(*Struct)
	}
	return nil
}

// List returns the named list field. When the field is absent an empty list
// is returned so callers can iterate unconditionally.
func (s *Struct) List(name string) *List {
	if v, ok := s.get(name, KindList); ok {
		return v.(*List)
	}
	return &List{}
}

// Equal reports deep equality of two structs: same id, same fields in the
// same order, same kinds and values (lists and nested structs recursively).
func (s *Struct) Equal(other *Struct) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.ID != other.ID || len(s.fields) != len(other.fields) {
		return false
	}
	for i, f := range s.fields {
		g := other.fields[i]
		if f.Name != g.Name || f.Kind != g.Kind {
			return false
		}
		switch f.Kind {
		case KindStruct:
			if !f.Value.(*Struct).Equal(g.Value.(*Struct)) {
				return false
			}
		case KindList:
			if !f.Value.(*List).Equal(g.Value.(*List)) {
				return false
			}
		default:
			if f.Value != g.Value {
				return false
			}
		}
	}
	return true
}

// List is an ordered sequence of structs.
type List struct {
	structs []*Struct
}

// Append adds a new empty struct with the given type id and returns it.
func (l *List) Append(structID uint32) *Struct {
	s := NewStruct(structID)
	l.structs = append(l.structs, s)
	return s
}

// Len returns the number of structs in the list.
func (l *List) Len() int {
	return len(l.structs)
}

// At returns the i-th struct.
func (l *List) At(i int) *Struct {
	return l.structs[i]
}

// Structs returns the structs in order. The slice is shared; callers must
// not modify it.
func (l *List) Structs() []*Struct {
	return l.structs
}

// Equal reports deep equality of two lists.
func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.structs) != len(other.structs) {
		return false
	}
	for i := range l.structs {
		if !l.structs[i].Equal(other.structs[i]) {
			return false
		}
	}
	return true
}
