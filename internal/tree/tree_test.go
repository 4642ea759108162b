package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopctl/internal/types"
)

func ptr(v int64) *int64 { return &v }

func node(id int64, parent *int64, level int) types.Node {
	return types.Node{ID: id, ParentID: parent, Level: level}
}

func TestBuildAndFlattenOrder(t *testing.T) {
	nodes := []types.Node{
		node(1, nil, 0),
		node(2, ptr(1), 1),
		node(3, ptr(1), 1),
	}

	flat := Flatten(Build(nodes))
	require.Len(t, flat, 3)

	ids := []int64{flat[0].ID, flat[1].ID, flat[2].ID}
	want := []int64{1, 2, 3} // sibling order follows input order
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("flatten order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, flat[0].Depth)
	assert.Equal(t, 1, flat[1].Depth)
	assert.Equal(t, 1, flat[2].Depth)
}

func TestFlattenVisitsEveryNodeOnce(t *testing.T) {
	nodes := []types.Node{
		node(10, nil, 0),
		node(11, ptr(10), 1),
		node(12, ptr(11), 2),
		node(20, nil, 0),
		node(21, ptr(20), 1),
	}

	flat := Flatten(Build(nodes))
	require.Len(t, flat, len(nodes))

	seen := make(map[int64]int)
	for _, f := range flat {
		seen[f.ID]++
	}
	for _, n := range nodes {
		assert.Equal(t, 1, seen[n.ID], "node %d visit count", n.ID)
	}
}

func TestFlattenParentBeforeChild(t *testing.T) {
	nodes := []types.Node{
		node(1, nil, 0),
		node(2, ptr(1), 1),
		node(3, ptr(2), 2),
		node(4, ptr(1), 1),
	}

	flat := Flatten(Build(nodes))
	pos := make(map[int64]int, len(flat))
	for i, f := range flat {
		pos[f.ID] = i
	}
	for _, n := range nodes {
		if n.ParentID == nil {
			continue
		}
		assert.Less(t, pos[*n.ParentID], pos[n.ID],
			"parent %d must precede child %d", *n.ParentID, n.ID)
	}
}

func TestOrphanPromotedToRoot(t *testing.T) {
	nodes := []types.Node{
		node(1, nil, 0),
		node(2, ptr(999), 1), // parent does not exist
	}

	roots := Build(nodes)
	require.Len(t, roots, 2, "orphan must render as a root, not vanish")

	flat := Flatten(roots)
	require.Len(t, flat, 2)
	assert.Equal(t, 0, flat[1].Depth)
}

func TestSelfReferencingNodeDoesNotLoop(t *testing.T) {
	nodes := []types.Node{node(7, ptr(7), 0)}
	flat := Flatten(Build(nodes))
	require.Len(t, flat, 1)
	assert.Equal(t, int64(7), flat[0].ID)
}

func TestDescendants(t *testing.T) {
	nodes := []types.Node{
		node(1, nil, 0),
		node(2, ptr(1), 1),
		node(3, ptr(2), 2),
		node(4, nil, 0),
	}

	got := Descendants(nodes, 1)
	assert.Len(t, got, 2)
	assert.Contains(t, got, int64(2))
	assert.Contains(t, got, int64(3))
	assert.NotContains(t, got, int64(1))
	assert.NotContains(t, got, int64(4))
}

func TestParentOptionsExcludesSubtreeAndDeepNodes(t *testing.T) {
	nodes := []types.Node{
		node(1, nil, 0),
		node(2, ptr(1), 1),
		node(3, ptr(2), 2), // at the cap, cannot take children
		node(4, nil, 0),
		node(5, ptr(4), 1),
	}

	opts := ParentOptions(nodes, 2, MaxNestingLevel)
	ids := make(map[int64]bool)
	for _, o := range opts {
		ids[o.ID] = true
	}

	assert.False(t, ids[2], "node itself must not be a parent option")
	assert.False(t, ids[3], "descendant must not be a parent option")
	assert.True(t, ids[1])
	assert.True(t, ids[4])
	assert.True(t, ids[5])
}

func TestParentOptionsForNewNode(t *testing.T) {
	nodes := []types.Node{
		node(1, nil, 0),
		node(2, ptr(1), 1),
		node(3, ptr(2), 2),
	}

	opts := ParentOptions(nodes, 0, 0)
	ids := make(map[int64]bool)
	for _, o := range opts {
		ids[o.ID] = true
	}
	assert.True(t, ids[1])
	assert.True(t, ids[2])
	assert.False(t, ids[3], "node at the nesting cap cannot be a parent")
}
