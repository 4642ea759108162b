// Package tree materializes flat node lists into nested trees for display
// and flattens them back into indented lists. It also answers the
// re-parenting question: which nodes may become the parent of a given node
// without creating a cycle or exceeding the nesting cap.
package tree

import "shopctl/internal/types"

// MaxNestingLevel caps how deep the hierarchy may go. A node may only be
// offered as a parent if its own Level is below this cap, so children never
// land deeper than MaxNestingLevel.
const MaxNestingLevel = 2

// Item is a materialized tree node.
type Item struct {
	types.Node
	Children []*Item
}

// Flat is one row of the depth-first flattened view. Depth is the display
// indentation level, which may differ from Node.Level for orphans promoted
// to the root.
type Flat struct {
	types.Node
	Depth int
}

// Build converts a flat, position-ordered node sequence into a forest.
// Sibling order follows input order. A node whose ParentID references an id
// that is not present in the input is an orphan: it is promoted to a root
// rather than silently dropped, so data problems stay visible to the
// operator.
func Build(nodes []types.Node) []*Item {
	byID := make(map[int64]*Item, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = &Item{Node: n}
	}

	var roots []*Item
	for _, n := range nodes {
		item := byID[n.ID]
		if n.ParentID == nil {
			roots = append(roots, item)
			continue
		}
		parent, ok := byID[*n.ParentID]
		if !ok || *n.ParentID == n.ID {
			// Orphan (or self-referencing row): promote to root.
			roots = append(roots, item)
			continue
		}
		parent.Children = append(parent.Children, item)
	}
	return roots
}

// Flatten produces the pre-order depth-first sequence of a forest: every
// parent immediately precedes its descendants, siblings keep their relative
// order.
func Flatten(roots []*Item) []Flat {
	var out []Flat
	var walk func(items []*Item, depth int)
	walk = func(items []*Item, depth int) {
		for _, it := range items {
			out = append(out, Flat{Node: it.Node, Depth: depth})
			walk(it.Children, depth+1)
		}
	}
	walk(roots, 0)
	return out
}

// Descendants returns the id set of every transitive child of id within
// nodes. The id itself is not included.
func Descendants(nodes []types.Node, id int64) map[int64]struct{} {
	children := make(map[int64][]int64, len(nodes))
	for _, n := range nodes {
		if n.ParentID != nil {
			children[*n.ParentID] = append(children[*n.ParentID], n.ID)
		}
	}

	out := make(map[int64]struct{})
	stack := []int64{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range children[cur] {
			if _, seen := out[c]; seen {
				continue // defends against cyclic input
			}
			if c == id {
				continue
			}
			out[c] = struct{}{}
			stack = append(stack, c)
		}
	}
	return out
}

// ParentOptions lists the nodes that may legally become the parent of
// excludeID: everything except the node itself, its descendants, and nodes
// already at or below the nesting cap. Pass excludeID 0 for a brand-new node
// (nothing to exclude but the depth cap still applies).
func ParentOptions(nodes []types.Node, excludeID int64, maxLevel int) []types.Node {
	if maxLevel <= 0 {
		maxLevel = MaxNestingLevel
	}
	var blocked map[int64]struct{}
	if excludeID != 0 {
		blocked = Descendants(nodes, excludeID)
	}

	out := make([]types.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.ID == excludeID {
			continue
		}
		if _, ok := blocked[n.ID]; ok {
			continue
		}
		if n.Level >= maxLevel {
			continue
		}
		out = append(out, n)
	}
	return out
}
