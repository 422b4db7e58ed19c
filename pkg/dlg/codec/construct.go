package codec

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/gff"
)

// delaySentinel is the on-disk encoding of "no delay". The all-ones dword
// maps to -1 in the model and back; whether this is engine convention or
// accident is unverified, so the mapping is preserved exactly.
const delaySentinel uint32 = 0xFFFFFFFF

// animationIDOffset is a historical compatibility quirk: dialogue animation
// ids are stored offset by 10000. Ids above the offset are reduced on read
// and the offset is re-applied on write.
const animationIDOffset uint16 = 10000

// Construct builds a dialogue graph from its container form.
//
// Out-of-range link indices are logged through logger and the malformed
// link is dropped; the rest of the file still loads. A nil logger falls
// back to log.Default().
func Construct(root *gff.Struct, logger *log.Logger) *dlg.Dialog {
	if logger == nil {
		logger = log.Default()
	}

	d := dlg.NewDialog()

	// Links reference nodes by position before those nodes are populated,
	// so both arrays must exist up front at the container list lengths.
	entryList := root.List("EntryList")
	replyList := root.List("ReplyList")
	entries := make([]*dlg.Node, entryList.Len())
	for i := range entries {
		entries[i] = dlg.NewEntry()
	}
	replies := make([]*dlg.Node, replyList.Len())
	for i := range replies {
		replies[i] = dlg.NewReply()
	}

	constructRoot(root, d)

	for _, s := range root.List("StuntList").Structs() {
		d.Stunts = append(d.Stunts, dlg.Stunt{
			Participant: s.ResRef("Participant", ""),
			StuntModel:  s.ResRef("StuntModel", ""),
		})
	}

	for i, s := range root.List("StartingList").Structs() {
		idx := int(s.Uint32("Index", 0))
		if idx < 0 || idx >= len(entries) {
			logger.Warn("dropping starter with out-of-range entry index",
				"position", i, "index", idx, "entries", len(entries))
			continue
		}
		link := dlg.NewLink(entries[idx])
		link.ListIndex = i
		constructLinkConditions(s, link)
		d.Starters = append(d.Starters, link)
	}

	for i, s := range entryList.Structs() {
		constructNode(s, entries[i], i, replies, logger)
	}
	for i, s := range replyList.Structs() {
		constructNode(s, replies[i], i, entries, logger)
	}

	return d
}

func constructRoot(root *gff.Struct, d *dlg.Dialog) {
	d.WordCount = root.Uint32("NumWords", 0)
	d.OnAbort = root.ResRef("EndConverAbort", "")
	d.OnEnd = root.ResRef("EndConversation", "")
	d.Skippable = root.Uint8("Skippable", 0) != 0
	d.AmbientTrack = root.ResRef("AmbientTrack", "")
	d.AnimatedCut = root.Uint8("AnimatedCut", 0)
	d.CameraModel = root.ResRef("CameraModel", "")
	d.ComputerType = dlg.ComputerType(root.Uint8("ComputerType", 0))
	d.ConversationType = dlg.ConversationType(root.Int32("ConversationType", 0))
	d.OldHitCheck = root.Uint8("OldHitCheck", 0) != 0
	d.UnequipHands = root.Uint8("UnequipHItem", 0) != 0
	d.UnequipItems = root.Uint8("UnequipItems", 0) != 0
	d.VOID = root.String("VO_ID", "")
	d.AlienRaceOwner = root.Int32("AlienRaceOwner", 0)
	d.PostProcOwner = root.Int32("PostProcOwner", 0)
	d.RecordNoVO = root.Uint8("RecordNoVO", 0) != 0
	d.NextNodeID = root.Int32("NextNodeID", 0)
	d.DelayEntry = root.Uint32("DelayEntry", 0)
	d.DelayReply = root.Uint32("DelayReply", 0)
	d.Comment = root.String("Comment", "")
}

// constructNode populates one node from its list struct. targets is the
// opposite-variant node array the sub-link list indexes into: entries hold
// a "RepliesList", replies hold an "EntriesList".
func constructNode(s *gff.Struct, n *dlg.Node, position int, targets []*dlg.Node, logger *log.Logger) {
	n.ListIndex = position

	if n.IsEntry() {
		n.Speaker = s.String("Speaker", "")
	}
	n.Listener = s.String("Listener", "")
	n.Text = s.LocString("Text", "")
	n.VOResRef = s.ResRef("VO_ResRef", "")
	n.Script1 = s.ResRef("Script", "")
	n.Comment = s.String("Comment", "")
	n.Sound = s.ResRef("Sound", "")
	n.SoundExists = s.Uint8("SoundExists", 0) != 0
	n.Quest = s.String("Quest", "")
	n.PlotIndex = s.Int32("PlotIndex", -1)
	n.PlotXPPercentage = s.Float32("PlotXPPercentage", 0)
	n.WaitFlags = s.Uint32("WaitFlags", 0)
	n.CameraAngle = s.Uint32("CameraAngle", 0)
	n.FadeType = s.Uint8("FadeType", 0)

	if delay := s.Uint32("Delay", delaySentinel); delay == delaySentinel {
		n.Delay = -1
	} else {
		n.Delay = int32(delay)
	}

	// Extended-format fields; absent in base-game files, defaults apply.
	n.Script2 = s.ResRef("Script2", "")
	n.Script1Params = constructScriptParams(s, "ActionParam", "", "ActionParamStrA")
	n.Script2Params = constructScriptParams(s, "ActionParam", "b", "ActionParamStrB")
	n.Emotion = s.Int32("Emotion", 0)
	n.FacialAnim = s.Int32("FacialAnim", 0)
	n.NodeID = s.Int32("NodeID", 0)
	n.NodeUnskippable = s.Uint8("NodeUnskippable", 0) != 0
	n.PostProcNode = s.Int32("PostProcNode", 0)
	n.RecordNoVOOverride = s.Uint8("RecordNoVOOverri", 0) != 0
	n.RecordVO = s.Uint8("RecordVO", 0) != 0
	n.VOTextChanged = s.Uint8("VOTextChanged", 0) != 0
	n.AlienRaceNode = s.Int32("AlienRaceNode", 0)

	// Optional fields keep presence information: nil means absent.
	if s.Exists("QuestEntry") {
		v := s.Uint32("QuestEntry", 0)
		n.QuestEntry = &v
	}
	if s.Exists("FadeDelay") {
		v := s.Float32("FadeDelay", 0)
		n.FadeDelay = &v
	}
	if s.Exists("FadeLength") {
		v := s.Float32("FadeLength", 0)
		n.FadeLength = &v
	}
	if s.Exists("CameraAnimation") {
		v := s.Int32("CameraAnimation", 0)
		n.CameraAnimation = &v
	}
	if s.Exists("CameraID") {
		v := s.Int32("CameraID", 0)
		n.CameraID = &v
	}
	if s.Exists("CamFieldOfView") {
		v := s.Float32("CamFieldOfView", 0)
		n.CameraFOV = &v
	}
	if s.Exists("CamHeightOffset") {
		v := s.Float32("CamHeightOffset", 0)
		n.CameraHeightOffset = &v
	}
	if s.Exists("CamVidEffect") {
		v := s.Int32("CamVidEffect", 0)
		n.CameraVidEffect = &v
	}
	if s.Exists("TarHeightOffset") {
		v := s.Float32("TarHeightOffset", 0)
		n.TargetHeightOffset = &v
	}
	if vec, ok := s.Vector("FadeColor"); ok {
		n.FadeColor = &dlg.Color{R: vec.X, G: vec.Y, B: vec.Z}
	}

	for _, as := range s.List("AnimList").Structs() {
		id := as.Uint16("Animation", 0)
		if id > animationIDOffset {
			id -= animationIDOffset
		}
		n.Animations = append(n.Animations, dlg.Animation{
			ID:          id,
			Participant: as.ResRef("Participant", ""),
		})
	}

	for j, ls := range s.List(sublistName(n)).Structs() {
		idx := int(ls.Uint32("Index", 0))
		if idx < 0 || idx >= len(targets) {
			logger.Warn("dropping link with out-of-range index",
				"node", n.Kind.String(), "position", position,
				"link", j, "index", idx, "targets", len(targets))
			continue
		}
		link := dlg.NewLink(targets[idx])
		link.ListIndex = j
		link.IsChild = ls.Uint8("IsChild", 0) != 0
		link.Comment = ls.String("LinkComment", "")
		constructLinkConditions(ls, link)
		n.Links = append(n.Links, link)
	}
}

// constructLinkConditions reads the condition fields shared by starter and
// node-held links. IsChild and LinkComment are node-held extras and are not
// read here.
func constructLinkConditions(s *gff.Struct, link *dlg.Link) {
	link.Active1 = s.ResRef("Active", "")
	link.Active2 = s.ResRef("Active2", "")
	link.Logic = s.Uint8("Logic", 0) != 0
	link.Not1 = s.Uint8("Not", 0) != 0
	link.Not2 = s.Uint8("Not2", 0) != 0
	link.Active1Params = constructScriptParams(s, "Param", "", "ParamStrA")
	link.Active2Params = constructScriptParams(s, "Param", "b", "ParamStrB")
}

// constructScriptParams reads the five integer parameters named
// prefix1..prefix5 (with suffix, e.g. "Param1b") plus the string parameter.
func constructScriptParams(s *gff.Struct, prefix, suffix, strName string) dlg.ScriptParams {
	num := func(i byte) string {
		return prefix + string('0'+i) + suffix
	}
	return dlg.ScriptParams{
		P1:     s.Int32(num(1), 0),
		P2:     s.Int32(num(2), 0),
		P3:     s.Int32(num(3), 0),
		P4:     s.Int32(num(4), 0),
		P5:     s.Int32(num(5), 0),
		String: s.String(strName, ""),
	}
}

// sublistName returns the container field holding a node's links: entries
// store links to replies and vice versa.
func sublistName(n *dlg.Node) string {
	if n.IsEntry() {
		return "RepliesList"
	}
	return "EntriesList"
}
