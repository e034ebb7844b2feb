package layout

// The layout tree is strictly binary: a row of three panes is two nested row
// splits. Each split carries one ratio for its two children, which keeps
// resize math trivial. Traversal is path-based and iterative; depth is
// user-controlled, so nothing here recurses on node structure except the
// bounded rebuild along a single path.

// Direction is the orientation of a split.
type Direction string

const (
	DirRow Direction = "row" // children side by side
	DirCol Direction = "col" // children stacked
)

// Position selects which side of a split a new leaf lands on.
type Position string

const (
	PosBefore Position = "before" // left / top
	PosAfter  Position = "after"  // right / bottom
)

// Ratio bounds for a split. Both sides of a split stay visible.
const (
	MinRatio = 0.1
	MaxRatio = 0.9
)

// TreeNode is the Leaf | Split sum type. The two implementations are the
// only ones; every consumer type-switches exhaustively.
type TreeNode interface {
	isNode()
}

// Leaf holds a single view group.
type Leaf struct {
	GroupID string
}

// Split divides its area between exactly two children. Ratio is the share
// of the first child, always within [MinRatio, MaxRatio].
type Split struct {
	Direction Direction
	Ratio     float64
	Children  [2]TreeNode
}

func (*Leaf) isNode()  {}
func (*Split) isNode() {}

// Path addresses a node from the root: one child index (0 or 1) per level.
// The empty path is the root.
type Path []int

// ClampRatio forces r into [MinRatio, MaxRatio].
func ClampRatio(r float64) float64 {
	if r < MinRatio {
		return MinRatio
	}
	if r > MaxRatio {
		return MaxRatio
	}
	return r
}

// RemoveOutcome tags the result of RemoveGroupFromTree.
type RemoveOutcome int

const (
	// RemoveNotFound means no leaf carries the group; the tree is unchanged.
	RemoveNotFound RemoveOutcome = iota
	// RemoveDone means the leaf was removed and the tree remains.
	RemoveDone
	// RemoveWasRoot means the removed leaf was the root: the caller must
	// reset to the welcome layout rather than keep an empty tree.
	RemoveWasRoot
)

type walkFrame struct {
	node TreeNode
	path Path
}

// FindGroupPath locates the leaf holding groupID, depth-first with child 0
// visited before child 1.
func FindGroupPath(root TreeNode, groupID string) (Path, bool) {
	if root == nil {
		return nil, false
	}
	stack := []walkFrame{{root, nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := f.node.(type) {
		case *Leaf:
			if n.GroupID == groupID {
				return f.path, true
			}
		case *Split:
			// Push child 1 first so child 0 pops first.
			p1 := append(append(Path{}, f.path...), 1)
			p0 := append(append(Path{}, f.path...), 0)
			stack = append(stack, walkFrame{n.Children[1], p1}, walkFrame{n.Children[0], p0})
		}
	}
	return nil, false
}

// NodeAtPath resolves a path, or reports false if it runs off the tree.
func NodeAtPath(root TreeNode, path Path) (TreeNode, bool) {
	node := root
	for _, idx := range path {
		split, ok := node.(*Split)
		if !ok || idx < 0 || idx > 1 {
			return nil, false
		}
		node = split.Children[idx]
	}
	if node == nil {
		return nil, false
	}
	return node, true
}

// LeafGroups returns every leaf's group id in left-to-right tree order.
// This order is the deterministic iteration order for group scans.
func LeafGroups(root TreeNode) []string {
	if root == nil {
		return nil
	}
	var out []string
	stack := []TreeNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := node.(type) {
		case *Leaf:
			out = append(out, n.GroupID)
		case *Split:
			stack = append(stack, n.Children[1], n.Children[0])
		}
	}
	return out
}

// firstLeafGroup returns the leftmost leaf group of a subtree, or "".
func firstLeafGroup(root TreeNode) string {
	for root != nil {
		switch n := root.(type) {
		case *Leaf:
			return n.GroupID
		case *Split:
			root = n.Children[0]
		default:
			return ""
		}
	}
	return ""
}

// UpdateNodeAtPath rewrites exactly the node at path using fn, rebuilding the
// spine above it copy-on-write. Untouched subtrees are shared. Reports false
// (and returns the tree unchanged) when the path is invalid.
func UpdateNodeAtPath(root TreeNode, path Path, fn func(TreeNode) TreeNode) (TreeNode, bool) {
	if root == nil {
		return root, false
	}
	// Collect the spine from root to target.
	spine := make([]TreeNode, 0, len(path)+1)
	node := root
	spine = append(spine, node)
	for _, idx := range path {
		split, ok := node.(*Split)
		if !ok || idx < 0 || idx > 1 {
			return root, false
		}
		node = split.Children[idx]
		spine = append(spine, node)
	}
	replaced := fn(spine[len(spine)-1])
	if replaced == nil {
		return root, false
	}
	// Rebuild bottom-up, copying each split on the path.
	for i := len(path) - 1; i >= 0; i-- {
		parent := spine[i].(*Split)
		cp := *parent
		cp.Children[path[i]] = replaced
		replaced = &cp
	}
	return replaced, true
}

// InsertSplitAtGroup replaces the anchor group's leaf with a split holding
// the anchor and the new group, ordered per pos. Reports false when the
// anchor is not in the tree.
func InsertSplitAtGroup(root TreeNode, anchorGroupID, newGroupID string, dir Direction, pos Position, ratio float64) (TreeNode, bool) {
	path, ok := FindGroupPath(root, anchorGroupID)
	if !ok {
		return root, false
	}
	return UpdateNodeAtPath(root, path, func(node TreeNode) TreeNode {
		anchor, ok := node.(*Leaf)
		if !ok {
			return nil
		}
		split := &Split{Direction: dir, Ratio: ClampRatio(ratio)}
		newLeaf := &Leaf{GroupID: newGroupID}
		if pos == PosBefore {
			split.Children = [2]TreeNode{newLeaf, anchor}
		} else {
			split.Children = [2]TreeNode{anchor, newLeaf}
		}
		return split
	})
}

// RemoveGroupFromTree removes the leaf holding groupID. The leaf's parent
// split is replaced by the surviving sibling (structural collapse). The
// outcome tag tells the caller whether the tree survived, the root itself
// was removed, or nothing matched.
func RemoveGroupFromTree(root TreeNode, groupID string) (TreeNode, RemoveOutcome) {
	path, ok := FindGroupPath(root, groupID)
	if !ok {
		return root, RemoveNotFound
	}
	if len(path) == 0 {
		return nil, RemoveWasRoot
	}
	parentPath := path[:len(path)-1]
	siblingIdx := 1 - path[len(path)-1]
	tree, ok := UpdateNodeAtPath(root, parentPath, func(node TreeNode) TreeNode {
		split, ok := node.(*Split)
		if !ok {
			return nil
		}
		return split.Children[siblingIdx]
	})
	if !ok {
		// FindGroupPath said the leaf exists, so this path is unreachable
		// short of a corrupted tree; let the caller reset.
		return root, RemoveNotFound
	}
	return tree, RemoveDone
}

// cloneTree deep-copies a subtree.
func cloneTree(root TreeNode) TreeNode {
	switch n := root.(type) {
	case *Leaf:
		cp := *n
		return &cp
	case *Split:
		cp := *n
		cp.Children[0] = cloneTree(n.Children[0])
		cp.Children[1] = cloneTree(n.Children[1])
		return &cp
	default:
		return nil
	}
}
