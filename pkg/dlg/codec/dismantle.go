package codec

import (
	"fmt"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/gff"
)

// rootStructID is the container type id of a top-level resource struct.
const rootStructID uint32 = 0xFFFFFFFF

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Dismantle writes a dialogue graph into its container form.
//
// Node order is taken from a fresh sorted traversal; every link's Index
// field is recomputed from the current position of its target, and each
// collection of links is re-sorted by ListIndex (-1 last) before positions
// are assigned. Extended-format fields are written only for game ==
// [dlg.GameK2]; deprecated legacy fields only when useDeprecated is set.
//
// Dismantle panics if the graph contains a node that was not created with
// [dlg.NewEntry] or [dlg.NewReply].
func Dismantle(d *dlg.Dialog, game dlg.Game, useDeprecated bool) *gff.Struct {
	entries := d.AllEntries(true)
	replies := d.AllReplies(true)

	entryIndex := make(map[*dlg.Node]int, len(entries))
	for i, n := range entries {
		entryIndex[n] = i
	}
	replyIndex := make(map[*dlg.Node]int, len(replies))
	for i, n := range replies {
		replyIndex[n] = i
	}
	targetIndex := func(n *dlg.Node) int {
		switch n.Kind {
		case dlg.KindEntry:
			return entryIndex[n]
		case dlg.KindReply:
			return replyIndex[n]
		default:
			panic(fmt.Sprintf("codec: node with invalid kind %d; use dlg.NewEntry or dlg.NewReply", n.Kind))
		}
	}

	root := gff.NewStruct(rootStructID)
	dismantleRoot(root, d, game, useDeprecated)

	stuntList := root.SetList("StuntList")
	for _, st := range d.Stunts {
		s := stuntList.Append(0)
		s.SetResRef("Participant", st.Participant)
		s.SetResRef("StuntModel", st.StuntModel)
	}

	startingList := root.SetList("StartingList")
	for i, link := range dlg.SortLinks(d.Starters) {
		if link.Target == nil {
			continue
		}
		s := startingList.Append(uint32(i))
		dismantleLinkConditions(s, link, game)
		s.SetUint32("Index", uint32(targetIndex(link.Target)))
	}

	entryList := root.SetList("EntryList")
	for i, n := range entries {
		dismantleNode(entryList.Append(uint32(i)), n, game, useDeprecated, targetIndex)
	}
	replyList := root.SetList("ReplyList")
	for i, n := range replies {
		dismantleNode(replyList.Append(uint32(i)), n, game, useDeprecated, targetIndex)
	}

	return root
}

func dismantleRoot(root *gff.Struct, d *dlg.Dialog, game dlg.Game, useDeprecated bool) {
	root.SetUint32("NumWords", d.WordCount)
	root.SetResRef("EndConverAbort", d.OnAbort)
	root.SetResRef("EndConversation", d.OnEnd)
	root.SetUint8("Skippable", boolByte(d.Skippable))
	root.SetResRef("AmbientTrack", d.AmbientTrack)
	root.SetUint8("AnimatedCut", d.AnimatedCut)
	root.SetResRef("CameraModel", d.CameraModel)
	root.SetUint8("ComputerType", uint8(d.ComputerType))
	root.SetInt32("ConversationType", int32(d.ConversationType))
	if useDeprecated {
		root.SetUint8("OldHitCheck", boolByte(d.OldHitCheck))
	}
	root.SetUint8("UnequipHItem", boolByte(d.UnequipHands))
	root.SetUint8("UnequipItems", boolByte(d.UnequipItems))
	root.SetString("VO_ID", d.VOID)
	if game == dlg.GameK2 {
		root.SetInt32("AlienRaceOwner", d.AlienRaceOwner)
		root.SetInt32("PostProcOwner", d.PostProcOwner)
		root.SetUint8("RecordNoVO", boolByte(d.RecordNoVO))
		root.SetInt32("NextNodeID", d.NextNodeID)
	}
	root.SetUint32("DelayEntry", d.DelayEntry)
	root.SetUint32("DelayReply", d.DelayReply)
	if d.Comment != "" {
		root.SetString("Comment", d.Comment)
	}
}

func dismantleNode(s *gff.Struct, n *dlg.Node, game dlg.Game, useDeprecated bool, targetIndex func(*dlg.Node) int) {
	switch n.Kind {
	case dlg.KindEntry:
		s.SetString("Speaker", n.Speaker)
	case dlg.KindReply:
		// no entry-only fields
	default:
		panic(fmt.Sprintf("codec: node with invalid kind %d; use dlg.NewEntry or dlg.NewReply", n.Kind))
	}

	s.SetString("Listener", n.Listener)
	s.SetLocString("Text", n.Text)
	s.SetResRef("VO_ResRef", n.VOResRef)
	s.SetResRef("Script", n.Script1)

	delay := delaySentinel
	if n.Delay != -1 {
		delay = uint32(n.Delay)
	}
	s.SetUint32("Delay", delay)

	s.SetString("Comment", n.Comment)
	s.SetResRef("Sound", n.Sound)
	s.SetString("Quest", n.Quest)
	if useDeprecated {
		s.SetInt32("PlotIndex", n.PlotIndex)
		s.SetFloat32("PlotXPPercentage", n.PlotXPPercentage)
	}
	s.SetUint32("WaitFlags", n.WaitFlags)
	s.SetUint32("CameraAngle", n.CameraAngle)
	s.SetUint8("FadeType", n.FadeType)
	s.SetUint8("SoundExists", boolByte(n.SoundExists))

	animList := s.SetList("AnimList")
	for _, a := range n.Animations {
		as := animList.Append(0)
		as.SetUint16("Animation", a.ID+animationIDOffset)
		as.SetResRef("Participant", a.Participant)
	}

	if game == dlg.GameK2 {
		s.SetResRef("Script2", n.Script2)
		dismantleScriptParams(s, "ActionParam", "", "ActionParamStrA", n.Script1Params)
		dismantleScriptParams(s, "ActionParam", "b", "ActionParamStrB", n.Script2Params)
		s.SetInt32("Emotion", n.Emotion)
		s.SetInt32("FacialAnim", n.FacialAnim)
		s.SetInt32("NodeID", n.NodeID)
		s.SetUint8("NodeUnskippable", boolByte(n.NodeUnskippable))
		s.SetInt32("PostProcNode", n.PostProcNode)
		s.SetUint8("RecordNoVOOverri", boolByte(n.RecordNoVOOverride))
		s.SetUint8("RecordVO", boolByte(n.RecordVO))
		s.SetUint8("VOTextChanged", boolByte(n.VOTextChanged))
		s.SetInt32("AlienRaceNode", n.AlienRaceNode)
	}

	// Optional fields are written only when present so round trips never
	// introduce fields absent from the source.
	if n.QuestEntry != nil {
		s.SetUint32("QuestEntry", *n.QuestEntry)
	}
	if n.FadeDelay != nil {
		s.SetFloat32("FadeDelay", *n.FadeDelay)
	}
	if n.FadeLength != nil {
		s.SetFloat32("FadeLength", *n.FadeLength)
	}
	if n.CameraAnimation != nil {
		s.SetInt32("CameraAnimation", *n.CameraAnimation)
	}
	if n.CameraID != nil {
		s.SetInt32("CameraID", *n.CameraID)
	}
	if n.CameraFOV != nil {
		s.SetFloat32("CamFieldOfView", *n.CameraFOV)
	}
	if n.CameraHeightOffset != nil {
		s.SetFloat32("CamHeightOffset", *n.CameraHeightOffset)
	}
	if n.CameraVidEffect != nil {
		s.SetInt32("CamVidEffect", *n.CameraVidEffect)
	}
	if n.TargetHeightOffset != nil {
		s.SetFloat32("TarHeightOffset", *n.TargetHeightOffset)
	}
	if n.FadeColor != nil {
		s.SetVector("FadeColor", gff.Vector{X: n.FadeColor.R, Y: n.FadeColor.G, Z: n.FadeColor.B})
	}

	links := s.SetList(sublistName(n))
	for j, link := range dlg.SortLinks(n.Links) {
		if link.Target == nil {
			continue
		}
		ls := links.Append(uint32(j))
		dismantleLinkConditions(ls, link, game)
		ls.SetUint32("Index", uint32(targetIndex(link.Target)))
		ls.SetUint8("IsChild", boolByte(link.IsChild))
		ls.SetString("LinkComment", link.Comment)
	}
}

// dismantleLinkConditions writes the condition fields shared by starter and
// node-held links. The alternate condition and its parameters are an
// extended-format addition.
func dismantleLinkConditions(s *gff.Struct, link *dlg.Link, game dlg.Game) {
	s.SetResRef("Active", link.Active1)
	if game != dlg.GameK2 {
		return
	}
	s.SetResRef("Active2", link.Active2)
	s.SetUint8("Logic", boolByte(link.Logic))
	s.SetUint8("Not", boolByte(link.Not1))
	s.SetUint8("Not2", boolByte(link.Not2))
	dismantleScriptParams(s, "Param", "", "ParamStrA", link.Active1Params)
	dismantleScriptParams(s, "Param", "b", "ParamStrB", link.Active2Params)
}

func dismantleScriptParams(s *gff.Struct, prefix, suffix, strName string, p dlg.ScriptParams) {
	num := func(i byte) string {
		return prefix + string('0'+i) + suffix
	}
	s.SetInt32(num(1), p.P1)
	s.SetInt32(num(2), p.P2)
	s.SetInt32(num(3), p.P3)
	s.SetInt32(num(4), p.P4)
	s.SetInt32(num(5), p.P5)
	s.SetString(strName, p.String)
}
