package codec

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/gff"
)

func discard() *log.Logger {
	return log.New(io.Discard)
}

// buildSampleDialog builds a small but representative graph: a cycle, a
// second starter, optional camera fields, animations, and a stunt.
func buildSampleDialog() *dlg.Dialog {
	d := dlg.NewDialog()
	d.WordCount = 12
	d.OnEnd = "k_end"
	d.OnAbort = "k_abort"
	d.VOID = "tat17_example"
	d.Skippable = true
	d.Stunts = append(d.Stunts, dlg.Stunt{Participant: "p_carth", StuntModel: "stunt_carth"})

	e0 := dlg.NewEntry()
	e0.Speaker = "carth"
	e0.Text = "We need to talk."
	e0.Delay = 250
	fov := float32(55)
	e0.CameraFOV = &fov
	e0.FadeColor = &dlg.Color{R: 1, G: 0.5, B: 0}
	e0.Animations = append(e0.Animations, dlg.Animation{ID: 23, Participant: "carth"})

	e1 := dlg.NewEntry()
	e1.Speaker = "carth"
	e1.Text = "Forget it."

	r0 := dlg.NewReply()
	r0.Text = "Say that again?"
	r1 := dlg.NewReply()
	r1.Text = "Fine."

	d.AddStarter(e0)
	l := e0.AddLink(r0)
	l.Active1 = "k_act_talked"
	l.IsChild = true
	l.Comment = "repeat loop"
	e0.AddLink(r1)
	r0.AddLink(e0) // cycle back to the opening line
	r1.AddLink(e1)
	return d
}

func TestRoundTripFixedPoint(t *testing.T) {
	for _, game := range []dlg.Game{dlg.GameK1, dlg.GameK2} {
		name := "K1"
		if game == dlg.GameK2 {
			name = "K2"
		}
		t.Run(name, func(t *testing.T) {
			first := Dismantle(buildSampleDialog(), game, true)
			second := Dismantle(Construct(first, discard()), game, true)
			if !first.Equal(second) {
				t.Error("dismantle(construct(dismantle(G))) differs from dismantle(G)")
			}
		})
	}
}

func TestConstructCycleSafe(t *testing.T) {
	c := Dismantle(buildSampleDialog(), dlg.GameK2, true)
	d := Construct(c, discard())

	if got := len(d.AllEntries(false)); got != 2 {
		t.Errorf("entries = %d, want 2", got)
	}
	if got := len(d.AllReplies(false)); got != 2 {
		t.Errorf("replies = %d, want 2", got)
	}
	if !d.Stats().Cyclic {
		t.Error("cycle lost through round trip")
	}
}

func TestDelaySentinel(t *testing.T) {
	d := dlg.NewDialog()
	e := dlg.NewEntry() // Delay defaults to -1
	d.AddStarter(e)

	c := Dismantle(d, dlg.GameK1, false)
	entry := c.List("EntryList").At(0)
	if got := entry.Uint32("Delay", 0); got != 0xFFFFFFFF {
		t.Errorf("serialized Delay = %#x, want 0xFFFFFFFF", got)
	}

	back := Construct(c, discard())
	if got := back.AllEntries(false)[0].Delay; got != -1 {
		t.Errorf("restored Delay = %d, want -1", got)
	}
}

func TestLinkOrdering(t *testing.T) {
	d := dlg.NewDialog()
	e := dlg.NewEntry()
	d.AddStarter(e)

	r0, r1, r2 := dlg.NewReply(), dlg.NewReply(), dlg.NewReply()
	r0.Text = "two"
	r1.Text = "unassigned"
	r2.Text = "zero"
	e.AddLink(r0).ListIndex = 2
	e.AddLink(r1).ListIndex = -1
	e.AddLink(r2).ListIndex = 0

	c := Dismantle(d, dlg.GameK1, false)
	replies := c.List("ReplyList")
	links := c.List("EntryList").At(0).List("RepliesList")
	if links.Len() != 3 {
		t.Fatalf("link count = %d, want 3", links.Len())
	}

	var texts []string
	for _, ls := range links.Structs() {
		idx := ls.Uint32("Index", 999)
		texts = append(texts, replies.At(int(idx)).LocString("Text", ""))
	}
	want := []string{"zero", "two", "unassigned"}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("link %d targets %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestVersionGating(t *testing.T) {
	d := buildSampleDialog()
	d.NextNodeID = 7

	base := Dismantle(d, dlg.GameK1, false)
	ext := Dismantle(d, dlg.GameK2, false)

	rootGated := []string{"AlienRaceOwner", "PostProcOwner", "RecordNoVO", "NextNodeID"}
	for _, name := range rootGated {
		if base.Exists(name) {
			t.Errorf("base game wrote extended root field %s", name)
		}
		if !ext.Exists(name) {
			t.Errorf("extended game missing root field %s", name)
		}
	}

	baseEntry := base.List("EntryList").At(0)
	extEntry := ext.List("EntryList").At(0)
	nodeGated := []string{"Script2", "ActionParam1", "ActionParamStrB", "Emotion", "NodeID", "RecordNoVOOverri"}
	for _, name := range nodeGated {
		if baseEntry.Exists(name) {
			t.Errorf("base game wrote extended node field %s", name)
		}
		if !extEntry.Exists(name) {
			t.Errorf("extended game missing node field %s", name)
		}
	}

	baseLink := baseEntry.List("RepliesList").At(0)
	extLink := extEntry.List("RepliesList").At(0)
	linkGated := []string{"Active2", "Logic", "Not", "Not2", "Param1", "ParamStrA", "Param1b", "ParamStrB"}
	for _, name := range linkGated {
		if baseLink.Exists(name) {
			t.Errorf("base game wrote extended link field %s", name)
		}
		if !extLink.Exists(name) {
			t.Errorf("extended game missing link field %s", name)
		}
	}
	if !baseLink.Exists("Active") || !baseLink.Exists("IsChild") {
		t.Error("base game missing core link fields")
	}
}

func TestDeprecatedGating(t *testing.T) {
	d := buildSampleDialog()
	d.OldHitCheck = true

	with := Dismantle(d, dlg.GameK2, true)
	without := Dismantle(d, dlg.GameK2, false)

	if !with.Exists("OldHitCheck") {
		t.Error("useDeprecated=true omitted OldHitCheck")
	}
	if without.Exists("OldHitCheck") {
		t.Error("useDeprecated=false wrote OldHitCheck")
	}
	if without.List("EntryList").At(0).Exists("PlotIndex") {
		t.Error("useDeprecated=false wrote PlotIndex")
	}
	if !with.List("EntryList").At(0).Exists("PlotIndex") {
		t.Error("useDeprecated=true omitted PlotIndex")
	}
}

func TestOptionalFieldsOmitted(t *testing.T) {
	d := dlg.NewDialog()
	e := dlg.NewEntry()
	d.AddStarter(e)

	entry := Dismantle(d, dlg.GameK2, true).List("EntryList").At(0)
	for _, name := range []string{"QuestEntry", "FadeDelay", "FadeLength", "CameraID",
		"CameraAnimation", "CamFieldOfView", "CamHeightOffset", "CamVidEffect",
		"TarHeightOffset", "FadeColor"} {
		if entry.Exists(name) {
			t.Errorf("unset optional field %s was written", name)
		}
	}
}

func TestAnimationIDOffset(t *testing.T) {
	src := gff.NewStruct(rootStructID)
	entryList := src.SetList("EntryList")
	e := entryList.Append(0)
	anims := e.SetList("AnimList")
	high := anims.Append(0)
	high.SetUint16("Animation", 10023)
	low := anims.Append(0)
	low.SetUint16("Animation", 8)
	starting := src.SetList("StartingList")
	starting.Append(0).SetUint32("Index", 0)

	d := Construct(src, discard())
	got := d.AllEntries(false)[0].Animations
	if len(got) != 2 {
		t.Fatalf("animations = %d, want 2", len(got))
	}
	if got[0].ID != 23 {
		t.Errorf("high animation id = %d, want 23", got[0].ID)
	}
	if got[1].ID != 8 {
		t.Errorf("low animation id = %d, want 8", got[1].ID)
	}

	// Writing re-applies the offset.
	out := Dismantle(d, dlg.GameK1, false)
	outAnims := out.List("EntryList").At(0).List("AnimList")
	if got := outAnims.At(0).Uint16("Animation", 0); got != 10023 {
		t.Errorf("written high animation id = %d, want 10023", got)
	}
	if got := outAnims.At(1).Uint16("Animation", 0); got != 10008 {
		t.Errorf("written low animation id = %d, want 10008", got)
	}
}

func TestOutOfRangeIndicesDropped(t *testing.T) {
	src := gff.NewStruct(rootStructID)
	entryList := src.SetList("EntryList")
	e := entryList.Append(0)
	replies := e.SetList("RepliesList")
	replies.Append(0).SetUint32("Index", 99) // no such reply
	src.SetList("ReplyList")

	starting := src.SetList("StartingList")
	starting.Append(0).SetUint32("Index", 0)
	starting.Append(1).SetUint32("Index", 42) // no such entry

	d := Construct(src, discard())
	if got := len(d.Starters); got != 1 {
		t.Errorf("starters = %d, want 1 (malformed starter dropped)", got)
	}
	if got := len(d.AllEntries(false)[0].Links); got != 0 {
		t.Errorf("entry links = %d, want 0 (malformed link dropped)", got)
	}
}

func TestDismantleInvalidKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for node with invalid kind")
		}
	}()
	d := dlg.NewDialog()
	bad := &dlg.Node{} // bypasses NewEntry/NewReply
	d.AddStarter(bad)
	Dismantle(d, dlg.GameK1, false)
}
