package dlg

// Link is a directed edge to a node, carrying optional condition-script
// metadata. Links have their own identity: two links to the same target are
// distinct edges and never compare equal, so links can key maps and sets
// directly.
type Link struct {
	// Target is the node the link points at. Edges never own their target;
	// the same node may be targeted by many links, including links that
	// close a cycle back to an ancestor.
	Target *Node

	// ListIndex is the link's position within the owning collection; -1
	// means unassigned and sorts after every real index.
	ListIndex int

	// IsChild and Comment are stored only for links held by a node, never
	// for starters.
	IsChild bool
	Comment string

	// Active1 is the condition script gating this link; Active2 is the
	// alternate condition (extended format). Each can be independently
	// negated, and Logic selects how the two combine.
	Active1 string
	Active2 string
	Logic   bool
	Not1    bool
	Not2    bool

	// Active1Params and Active2Params are written for the extended format
	// only.
	Active1Params ScriptParams
	Active2Params ScriptParams
}

// NewLink creates a link to target with an unassigned list index.
func NewLink(target *Node) *Link {
	return &Link{Target: target, ListIndex: -1}
}

// AddStarter appends a starter link to target and returns it.
func (d *Dialog) AddStarter(target *Node) *Link {
	l := NewLink(target)
	d.Starters = append(d.Starters, l)
	return l
}
