// Package codec converts between the dialogue graph and its generic
// named-field container form.
//
// [Construct] reads a container tree into a [dlg.Dialog]. Every field read
// supplies a default, because older-format files omit many fields. Link
// structs reference their target nodes by position, so the node arrays are
// pre-allocated to the container list lengths before any link is resolved.
// A link whose index is out of range is logged and dropped; malformed but
// plausible input never fails the whole read.
//
// [Dismantle] writes a [dlg.Dialog] back out. Node order is recomputed from
// a fresh sorted traversal and link indices are reassigned from the current
// target positions; stored indices are never trusted. Extended-format fields
// are written only for [dlg.GameK2], deprecated legacy fields only on
// request, and optional per-node fields only when present, so a
// construct/dismantle round trip introduces no fields absent from the
// source.
//
// Two historical value transforms apply at the boundary and are inverted on
// write: a Delay of 0xFFFFFFFF reads as -1, and an animation id above 10000
// is reduced by 10000.
package codec
