// Package scoreindex keeps board cells ordered by a mutable score.
//
// Nodes live in an arena addressed by stable handles; a B-tree orders the
// live handles by (key, position). A node keeps its row, column and key after
// it is erased, so it can be put back exactly as it was when a hypothetical
// move is undone.
package scoreindex

import (
	"fmt"
	"iter"

	"github.com/google/btree"
)

const degree = 16

// Handle identifies a node for the lifetime of its Index.
type Handle int32

// Node is the data stored for one cell.
type Node struct {
	Row int
	Col int
	Key float64
}

// Entry is a node together with its handle, as yielded by iteration.
type Entry struct {
	Handle Handle
	Node
}

// Index is an ordered container of score nodes. It is not safe for
// concurrent use.
type Index struct {
	tree  *btree.BTreeG[Entry]
	nodes []Node
	live  []bool
}

// less orders by key, then so that a descending walk visits equal keys in
// ascending (row, col) order.
func less(a, b Entry) bool {
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	if a.Row != b.Row {
		return a.Row > b.Row
	}
	if a.Col != b.Col {
		return a.Col > b.Col
	}
	return a.Handle > b.Handle
}

// New returns an empty index with room for capacity nodes.
func New(capacity int) *Index {
	return &Index{
		tree:  btree.NewG(degree, less),
		nodes: make([]Node, 0, capacity),
		live:  make([]bool, 0, capacity),
	}
}

// Len is the number of live nodes.
func (x *Index) Len() int {
	return x.tree.Len()
}

// Insert adds a new node and returns its handle.
func (x *Index) Insert(row, col int, key float64) Handle {
	h := Handle(len(x.nodes))
	x.nodes = append(x.nodes, Node{Row: row, Col: col, Key: key})
	x.live = append(x.live, true)
	x.tree.ReplaceOrInsert(x.entry(h))
	return h
}

// Node returns the stored data of h, live or not.
func (x *Index) Node(h Handle) Node {
	return x.nodes[h]
}

// Live reports whether h currently takes part in the ordering.
func (x *Index) Live(h Handle) bool {
	return x.live[h]
}

// Erase removes h from the ordering. Its data stays readable.
func (x *Index) Erase(h Handle) {
	if !x.live[h] {
		panic(fmt.Sprintf("scoreindex: erase of erased node %d", h))
	}
	x.tree.Delete(x.entry(h))
	x.live[h] = false
}

// ChangeKey sets the key of h and repositions it. For an erased node only
// the stored key changes.
func (x *Index) ChangeKey(h Handle, key float64) {
	if !x.live[h] {
		x.nodes[h].Key = key
		return
	}
	if x.nodes[h].Key == key {
		return
	}
	x.tree.Delete(x.entry(h))
	x.nodes[h].Key = key
	x.tree.ReplaceOrInsert(x.entry(h))
}

// Reinsert puts an erased node back using its stored key.
func (x *Index) Reinsert(h Handle) {
	if x.live[h] {
		panic(fmt.Sprintf("scoreindex: reinsert of live node %d", h))
	}
	x.live[h] = true
	x.tree.ReplaceOrInsert(x.entry(h))
}

// Ascend yields live nodes from lowest to highest key. The sequence reflects
// the index at the time Ascend is called.
func (x *Index) Ascend() iter.Seq[Entry] {
	snapshot := x.tree.Clone()
	return func(yield func(Entry) bool) {
		snapshot.Ascend(func(e Entry) bool {
			return yield(e)
		})
	}
}

// Descend yields live nodes from highest to lowest key. The sequence
// reflects the index at the time Descend is called.
func (x *Index) Descend() iter.Seq[Entry] {
	snapshot := x.tree.Clone()
	return func(yield func(Entry) bool) {
		snapshot.Descend(func(e Entry) bool {
			return yield(e)
		})
	}
}

// Top returns up to k live nodes with the highest keys.
func (x *Index) Top(k int) []Entry {
	if k <= 0 {
		return nil
	}
	out := make([]Entry, 0, min(k, x.Len()))
	x.tree.Descend(func(e Entry) bool {
		if len(out) == k {
			return false
		}
		out = append(out, e)
		return true
	})
	return out
}

// Clear drops every node. Handles issued before Clear are invalid after it.
func (x *Index) Clear() {
	x.tree.Clear(false)
	x.nodes = x.nodes[:0]
	x.live = x.live[:0]
}

func (x *Index) entry(h Handle) Entry {
	return Entry{Handle: h, Node: x.nodes[h]}
}
