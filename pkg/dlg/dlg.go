package dlg

// Game selects the target game variant for serialization. The second game
// extends the format with alternate conditions, extra script parameters, and
// several per-node production fields; those are only written for GameK2.
type Game int

const (
	// GameK1 is the base game format.
	GameK1 Game = iota + 1
	// GameK2 is the extended format.
	GameK2
)

// ConversationType distinguishes normal dialogue from computer terminals.
type ConversationType int32

const (
	ConversationHuman    ConversationType = 0
	ConversationComputer ConversationType = 1
)

// ComputerType selects the terminal screen style for computer conversations.
type ComputerType uint8

const (
	ComputerModern  ComputerType = 0
	ComputerAncient ComputerType = 1
)

// Color is an RGB triple in the 0..1 range, used for fade colors.
type Color struct {
	R, G, B float32
}

// Stunt names a participant performing a stunt model during a cutscene.
type Stunt struct {
	Participant string
	StuntModel  string
}

// Animation is one animation played by a participant while a node is shown.
type Animation struct {
	ID          uint16
	Participant string
}

// Dialog is the root of a dialogue graph. It owns the starter links and the
// conversation-level metadata; every node is reachable (if at all) through
// Starters.
type Dialog struct {
	// Starters are the links marking valid conversation entry points.
	// Starter links carry no IsChild flag or comment.
	Starters []*Link

	// Stunts lists cutscene stunt participants.
	Stunts []Stunt

	WordCount        uint32
	OnAbort          string // script fired when the conversation is aborted
	OnEnd            string // script fired when the conversation ends normally
	Skippable        bool
	AmbientTrack     string
	AnimatedCut      uint8
	CameraModel      string
	ComputerType     ComputerType
	ConversationType ConversationType
	OldHitCheck      bool
	UnequipHands     bool
	UnequipItems     bool
	VOID             string
	DelayEntry       uint32
	DelayReply       uint32

	// Extended-format fields (GameK2 only).
	AlienRaceOwner int32
	PostProcOwner  int32
	RecordNoVO     bool
	NextNodeID     int32

	// Comment is free text. It doubles as the sidecar carrier for
	// interchange-only story metadata, so converters may store JSON here.
	Comment string
}

// NewDialog creates an empty dialog with skipping enabled.
func NewDialog() *Dialog {
	return &Dialog{Skippable: true}
}

// Stats summarizes a dialog for inspection tooling.
type Stats struct {
	Entries  int
	Replies  int
	Links    int
	Starters int
	Stunts   int
	Cyclic   bool
}

// Stats walks the reachable graph once and returns node, link, and starter
// counts plus whether the graph contains a cycle.
func (d *Dialog) Stats() Stats {
	st := Stats{
		Starters: len(d.Starters),
		Stunts:   len(d.Stunts),
	}
	for _, n := range d.allNodes() {
		switch n.Kind {
		case KindEntry:
			st.Entries++
		case KindReply:
			st.Replies++
		}
		st.Links += len(n.Links)
	}
	st.Cyclic = d.hasCycle()
	return st
}

// hasCycle detects cycles with depth-first search using white/gray/black
// coloring over the reachable node set.
func (d *Dialog) hasCycle() bool {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS path
		black = 2 // fully explored
	)
	color := make(map[*Node]int)

	var visit func(n *Node) bool
	visit = func(n *Node) bool {
		color[n] = gray
		for _, l := range n.Links {
			if l.Target == nil {
				continue
			}
			switch color[l.Target] {
			case gray:
				return true
			case white:
				if visit(l.Target) {
					return true
				}
			}
		}
		color[n] = black
		return false
	}

	for _, starter := range d.Starters {
		if starter.Target != nil && color[starter.Target] == white {
			if visit(starter.Target) {
				return true
			}
		}
	}
	return false
}
