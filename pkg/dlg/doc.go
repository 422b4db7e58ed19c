// Package dlg models a dialogue resource: a directed, possibly cyclic graph
// of conversation nodes connected by links.
//
// # Structure
//
// A [Dialog] owns a list of starter links marking valid conversation entry
// points, a list of stunt participants, and conversation-level metadata. Each
// [Node] is either an Entry (an NPC line) or a Reply (a player response) and
// holds its outgoing [Link] edges. Entries link to replies and replies link
// to entries; the codecs assume this alternation but the model does not
// enforce it.
//
// # Identity
//
// Nodes and links are identified by pointer, never by value: two links to the
// same target are still distinct edges, and a node remains the same node as
// its fields change. All seen-sets and memoization maps in this package key
// on pointers (map[*Node], map[*Link]), so traversal terminates on cyclic
// graphs.
//
// # Ordering
//
// ListIndex records a node's (or link's) position in flattened storage; -1
// means unassigned and always sorts last. Serialization recomputes positions
// from fresh traversal order and never trusts stored indices.
//
// The model is not safe for concurrent mutation; callers must not modify a
// dialog while it is being traversed or serialized.
package dlg
