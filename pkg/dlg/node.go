package dlg

// NodeKind identifies the node variant. The set is closed: a node is either
// an Entry or a Reply, and a zero-kind node is a construction bug that the
// codecs fail on immediately.
type NodeKind int

const (
	// KindNone is the invalid zero value. Nodes must be created with
	// NewEntry or NewReply, never as bare structs.
	KindNone NodeKind = iota
	// KindEntry is a line spoken by an NPC.
	KindEntry
	// KindReply is a response chosen by the player.
	KindReply
)

// String returns "entry", "reply", or "invalid".
func (k NodeKind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindReply:
		return "reply"
	default:
		return "invalid"
	}
}

// ScriptParams are the five integer and one string parameter passed to a
// condition or action script slot (extended format only).
type ScriptParams struct {
	P1, P2, P3, P4, P5 int32
	String             string
}

// Node is a single line of conversation. Entries link to replies and replies
// link to entries. Node identity is the pointer; field values never
// participate in equality.
//
// Optional fields are pointers: nil means the field was absent from the
// source and is omitted when serializing, which keeps round trips stable.
type Node struct {
	Kind NodeKind

	// Speaker tags the entry's speaking character. Meaningful for entries
	// only; replies are always spoken by the player.
	Speaker string

	// Links are the outgoing edges, ordered by storage position.
	Links []*Link

	// ListIndex is the node's position in flattened storage; -1 means
	// unassigned and sorts after every real index.
	ListIndex int

	Text     string
	Listener string
	Comment  string

	Script1 string
	Script2 string // extended format
	// Script1Params and Script2Params are written for the extended format
	// only ("ActionParam..." fields).
	Script1Params ScriptParams
	Script2Params ScriptParams

	// Delay before the node is shown; -1 means no delay. The serialized
	// form stores -1 as the all-ones 32-bit sentinel.
	Delay     int32
	WaitFlags uint32
	FadeType  uint8

	Sound       string
	SoundExists bool
	VOResRef    string

	Quest            string
	QuestEntry       *uint32
	PlotIndex        int32
	PlotXPPercentage float32

	CameraAngle        uint32
	CameraID           *int32
	CameraAnimation    *int32
	CameraFOV          *float32
	CameraHeightOffset *float32
	CameraVidEffect    *int32
	TargetHeightOffset *float32

	FadeDelay  *float32
	FadeLength *float32
	FadeColor  *Color

	// Extended-format fields (GameK2 only).
	Emotion            int32
	FacialAnim         int32
	NodeID             int32
	NodeUnskippable    bool
	PostProcNode       int32
	RecordNoVOOverride bool
	RecordVO           bool
	VOTextChanged      bool
	AlienRaceNode      int32

	Animations []Animation
}

func newNode(kind NodeKind) *Node {
	return &Node{
		Kind:      kind,
		ListIndex: -1,
		Delay:     -1,
		PlotIndex: -1,
	}
}

// NewEntry creates an empty NPC line.
func NewEntry() *Node {
	return newNode(KindEntry)
}

// NewReply creates an empty player response.
func NewReply() *Node {
	return newNode(KindReply)
}

// IsEntry reports whether the node is an NPC line.
func (n *Node) IsEntry() bool { return n.Kind == KindEntry }

// IsReply reports whether the node is a player response.
func (n *Node) IsReply() bool { return n.Kind == KindReply }

// AddLink appends a link from n to target and returns it.
func (n *Node) AddLink(target *Node) *Link {
	l := NewLink(target)
	n.Links = append(n.Links, l)
	return l
}
