package dlg

import (
	"fmt"
	"slices"
)

// allNodes returns every node reachable from Starters, breadth-first, using
// a pointer-keyed seen set so cyclic graphs terminate. Cost is O(V+E).
func (d *Dialog) allNodes() []*Node {
	seen := make(map[*Node]bool)
	var order []*Node

	queue := make([]*Node, 0, len(d.Starters))
	for _, l := range d.Starters {
		if l.Target != nil && !seen[l.Target] {
			seen[l.Target] = true
			queue = append(queue, l.Target)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, l := range n.Links {
			if l.Target != nil && !seen[l.Target] {
				seen[l.Target] = true
				queue = append(queue, l.Target)
			}
		}
	}
	return order
}

// byListIndex orders real indices ascending with -1 (unassigned) last.
func byListIndex(a, b int) int {
	switch {
	case a == b:
		return 0
	case a == -1:
		return 1
	case b == -1:
		return -1
	case a < b:
		return -1
	default:
		return 1
	}
}

// AllEntries returns every reachable entry node. With sorted set, entries are
// ordered by ListIndex ascending with unassigned (-1) entries last; the sort
// is stable, so ties keep traversal order.
func (d *Dialog) AllEntries(sorted bool) []*Node {
	return d.collect(KindEntry, sorted)
}

// AllReplies returns every reachable reply node, optionally sorted the same
// way as [Dialog.AllEntries].
func (d *Dialog) AllReplies(sorted bool) []*Node {
	return d.collect(KindReply, sorted)
}

func (d *Dialog) collect(kind NodeKind, sorted bool) []*Node {
	var out []*Node
	for _, n := range d.allNodes() {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	if sorted {
		slices.SortStableFunc(out, func(a, b *Node) int {
			return byListIndex(a.ListIndex, b.ListIndex)
		})
	}
	return out
}

// SortLinks returns a copy of links ordered by ListIndex ascending with
// unassigned (-1) links last. The sort is stable.
func SortLinks(links []*Link) []*Link {
	out := slices.Clone(links)
	slices.SortStableFunc(out, func(a, b *Link) int {
		return byListIndex(a.ListIndex, b.ListIndex)
	})
	return out
}

// sublistName returns the field name a node's links are stored under:
// entries hold replies and vice versa.
func sublistName(kind NodeKind) string {
	if kind == KindEntry {
		return "RepliesList"
	}
	return "EntriesList"
}

// FindPathsToNode returns the structural addresses of target in flattened
// storage, e.g. "EntryList/3". The result is empty when target is not
// reachable from Starters.
func (d *Dialog) FindPathsToNode(target *Node) []string {
	var paths []string
	d.walkPaths(func(n *Node, addr string) {
		if n == target {
			paths = append(paths, addr)
		}
	}, nil)
	return paths
}

// FindPathsToLink returns the structural addresses reaching target, e.g.
// "StartingList/0" or "EntryList/3/RepliesList/1".
func (d *Dialog) FindPathsToLink(target *Link) []string {
	var paths []string
	d.walkPaths(nil, func(l *Link, addr string) {
		if l == target {
			paths = append(paths, addr)
		}
	})
	return paths
}

// walkPaths runs a depth-first traversal from Starters, reporting each node
// and link along with its structural address. Nodes and links each get their
// own pointer-keyed seen set, so the walk terminates on cycles and reports
// every distinct address exactly once.
func (d *Dialog) walkPaths(onNode func(*Node, string), onLink func(*Link, string)) {
	entryIndex := make(map[*Node]int)
	for i, n := range d.AllEntries(true) {
		entryIndex[n] = i
	}
	replyIndex := make(map[*Node]int)
	for i, n := range d.AllReplies(true) {
		replyIndex[n] = i
	}

	nodeAddr := func(n *Node) string {
		if n.Kind == KindEntry {
			return fmt.Sprintf("EntryList/%d", entryIndex[n])
		}
		return fmt.Sprintf("ReplyList/%d", replyIndex[n])
	}

	seenNodes := make(map[*Node]bool)
	seenLinks := make(map[*Link]bool)

	var visit func(n *Node)
	visit = func(n *Node) {
		if seenNodes[n] {
			return
		}
		seenNodes[n] = true
		addr := nodeAddr(n)
		if onNode != nil {
			onNode(n, addr)
		}
		for i, l := range n.Links {
			if seenLinks[l] {
				continue
			}
			seenLinks[l] = true
			if onLink != nil {
				onLink(l, fmt.Sprintf("%s/%s/%d", addr, sublistName(n.Kind), i))
			}
			if l.Target != nil {
				visit(l.Target)
			}
		}
	}

	for i, l := range d.Starters {
		if seenLinks[l] {
			continue
		}
		seenLinks[l] = true
		if onLink != nil {
			onLink(l, fmt.Sprintf("StartingList/%d", i))
		}
		if l.Target != nil {
			visit(l.Target)
		}
	}
}

// LinkParent finds the node owning link, searching Starters first and then
// every reachable node's outgoing links. A starter returns (nil, true): the
// link is owned by the dialog root itself. Links hold no back-reference, so
// this is an identity search.
func (d *Dialog) LinkParent(link *Link) (parent *Node, ok bool) {
	for _, l := range d.Starters {
		if l == link {
			return nil, true
		}
	}
	for _, n := range d.allNodes() {
		for _, l := range n.Links {
			if l == link {
				return n, true
			}
		}
	}
	return nil, false
}
