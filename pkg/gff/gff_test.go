package gff

import "testing"

func TestReadOrDefault(t *testing.T) {
	s := NewStruct(0)
	s.SetUint32("Delay", 500)
	s.SetString("Comment", "hello")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"present dword", s.Uint32("Delay", 0), uint32(500)},
		{"absent dword", s.Uint32("Missing", 77), uint32(77)},
		{"present string", s.String("Comment", ""), "hello"},
		{"absent string", s.String("Missing", "def"), "def"},
		{"kind mismatch falls back to default", s.Int32("Delay", -5), int32(-5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestExists(t *testing.T) {
	s := NewStruct(0)
	s.SetFloat32("FadeDelay", 0.5)

	if !s.Exists("FadeDelay") {
		t.Error("Exists(FadeDelay) = false, want true")
	}
	if s.Exists("FadeLength") {
		t.Error("Exists(FadeLength) = true, want false")
	}
}

func TestFieldOrderPreserved(t *testing.T) {
	s := NewStruct(0)
	s.SetUint32("A", 1)
	s.SetUint32("B", 2)
	s.SetUint32("C", 3)
	s.SetUint32("B", 20) // replace must not move the field

	want := []string{"A", "B", "C"}
	fields := s.Fields()
	if len(fields) != len(want) {
		t.Fatalf("len(Fields()) = %d, want %d", len(fields), len(want))
	}
	for i, name := range want {
		if fields[i].Name != name {
			t.Errorf("fields[%d].Name = %q, want %q", i, fields[i].Name, name)
		}
	}
	if got := s.Uint32("B", 0); got != 20 {
		t.Errorf("B = %d, want 20", got)
	}
}

func TestListAppend(t *testing.T) {
	s := NewStruct(0xFFFFFFFF)
	l := s.SetList("EntryList")
	l.Append(0).SetLocString("Text", "first")
	l.Append(1).SetLocString("Text", "second")

	if got := s.List("EntryList").Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if got := s.List("EntryList").At(1).LocString("Text", ""); got != "second" {
		t.Errorf("At(1).Text = %q, want %q", got, "second")
	}
	if got := s.List("EntryList").At(0).ID; got != 0 {
		t.Errorf("At(0).ID = %d, want 0", got)
	}
}

func TestListAbsentIsEmpty(t *testing.T) {
	s := NewStruct(0)
	if got := s.List("StuntList").Len(); got != 0 {
		t.Errorf("absent list Len() = %d, want 0", got)
	}
}

func TestEqual(t *testing.T) {
	build := func() *Struct {
		s := NewStruct(7)
		s.SetUint8("Skippable", 1)
		s.SetVector("FadeColor", Vector{X: 1, Y: 0.5, Z: 0})
		l := s.SetList("StartingList")
		l.Append(0).SetUint32("Index", 2)
		return s
	}

	a, b := build(), build()
	if !a.Equal(b) {
		t.Error("identical structs: Equal() = false, want true")
	}

	b.List("StartingList").At(0).SetUint32("Index", 3)
	if a.Equal(b) {
		t.Error("differing nested value: Equal() = true, want false")
	}

	c := build()
	c.SetUint8("Extra", 0)
	if a.Equal(c) {
		t.Error("extra field: Equal() = true, want false")
	}
}
