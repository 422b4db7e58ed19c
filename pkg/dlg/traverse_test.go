package dlg

import (
	"slices"
	"testing"
)

// buildCyclic builds the reference graph:
//
//	starters = [entry0, entry2]
//	entry0 -> reply0, reply1
//	reply0 -> entry0 (cycle)
//	reply1 -> entry1
//	entry2 -> (nothing)
func buildCyclic() (d *Dialog, entries [3]*Node, replies [2]*Node) {
	d = NewDialog()
	for i := range entries {
		entries[i] = NewEntry()
	}
	for i := range replies {
		replies[i] = NewReply()
	}
	d.AddStarter(entries[0])
	d.AddStarter(entries[2])
	entries[0].AddLink(replies[0])
	entries[0].AddLink(replies[1])
	replies[0].AddLink(entries[0])
	replies[1].AddLink(entries[1])
	return d, entries, replies
}

func TestAllEntriesAllRepliesCyclic(t *testing.T) {
	d, entries, replies := buildCyclic()

	gotEntries := d.AllEntries(false)
	if len(gotEntries) != 3 {
		t.Fatalf("AllEntries() returned %d nodes, want 3", len(gotEntries))
	}
	for _, want := range entries {
		if !slices.Contains(gotEntries, want) {
			t.Errorf("AllEntries() missing entry %p", want)
		}
	}

	gotReplies := d.AllReplies(false)
	if len(gotReplies) != 2 {
		t.Fatalf("AllReplies() returned %d nodes, want 2", len(gotReplies))
	}
	for _, want := range replies {
		if !slices.Contains(gotReplies, want) {
			t.Errorf("AllReplies() missing reply %p", want)
		}
	}
}

func TestAllEntriesSorted(t *testing.T) {
	d := NewDialog()
	a, b, c := NewEntry(), NewEntry(), NewEntry()
	a.ListIndex = 2
	b.ListIndex = -1
	c.ListIndex = 0

	r := NewReply()
	d.AddStarter(a)
	a.AddLink(r)
	r.AddLink(b)
	r.AddLink(c)

	got := d.AllEntries(true)
	want := []*Node{c, a, b} // 0, 2, then unassigned last
	if !slices.Equal(got, want) {
		t.Errorf("AllEntries(sorted) order = %v, want indices [0 2 -1] order", indices(got))
	}
}

func indices(nodes []*Node) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.ListIndex
	}
	return out
}

func TestSortLinks(t *testing.T) {
	a, b, c := NewLink(nil), NewLink(nil), NewLink(nil)
	a.ListIndex = 2
	b.ListIndex = -1
	c.ListIndex = 0

	got := SortLinks([]*Link{a, b, c})
	want := []*Link{c, a, b}
	if !slices.Equal(got, want) {
		t.Errorf("SortLinks order wrong: got indices %v, want [0 2 -1]", linkIndices(got))
	}

	// Input slice must not be reordered.
	if a.ListIndex != 2 || b.ListIndex != -1 {
		t.Error("SortLinks mutated link indices")
	}
}

func linkIndices(links []*Link) []int {
	out := make([]int, len(links))
	for i, l := range links {
		out[i] = l.ListIndex
	}
	return out
}

func TestLinksDistinctIdentity(t *testing.T) {
	target := NewEntry()
	a, b := NewLink(target), NewLink(target)

	set := map[*Link]bool{a: true, b: true}
	if len(set) != 2 {
		t.Errorf("two links to the same target collapsed in a set: len = %d, want 2", len(set))
	}
}

func TestFindPaths(t *testing.T) {
	d, entries, replies := buildCyclic()
	// Flattened order is traversal order since all indices are -1:
	// entries [entry0, entry2, entry1], replies [reply0, reply1].

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"entry0", d.FindPathsToNode(entries[0]), []string{"EntryList/0"}},
		{"entry1", d.FindPathsToNode(entries[1]), []string{"EntryList/2"}},
		{"reply1", d.FindPathsToNode(replies[1]), []string{"ReplyList/1"}},
		{"unreachable node", d.FindPathsToNode(NewEntry()), nil},
		{"starter link", d.FindPathsToLink(d.Starters[1]), []string{"StartingList/1"}},
		{"node link", d.FindPathsToLink(entries[0].Links[1]), []string{"EntryList/0/RepliesList/1"}},
		{"cycle link", d.FindPathsToLink(replies[0].Links[0]), []string{"ReplyList/0/EntriesList/0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Equal(tt.got, tt.want) {
				t.Errorf("paths = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLinkParent(t *testing.T) {
	d, entries, replies := buildCyclic()

	parent, ok := d.LinkParent(d.Starters[0])
	if !ok || parent != nil {
		t.Errorf("starter parent = (%v, %v), want (nil, true)", parent, ok)
	}

	parent, ok = d.LinkParent(replies[1].Links[0])
	if !ok || parent != replies[1] {
		t.Errorf("link parent = (%p, %v), want (%p, true)", parent, ok, replies[1])
	}

	if _, ok := d.LinkParent(NewLink(entries[0])); ok {
		t.Error("orphan link: LinkParent ok = true, want false")
	}
}
