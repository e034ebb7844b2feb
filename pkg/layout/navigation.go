package layout

// FindBestFocusTarget picks the group that should take focus after
// removedGroupID's leaf disappears. The walk runs on the tree as it was
// before the removal.
//
// Tie-break order (deterministic by construction): the sibling subtree under
// the removed leaf's immediate parent wins, and within that subtree the
// leftmost (child 0) descendant leaf. Splits always have two children, so
// the sibling exists whenever the removed leaf is not the root; for a root
// leaf there is no neighbor and "" is returned.
func FindBestFocusTarget(root TreeNode, removedGroupID string) string {
	path, ok := FindGroupPath(root, removedGroupID)
	if !ok || len(path) == 0 {
		return ""
	}
	// Walk upward from the immediate parent toward the root. The first
	// iteration normally resolves; the ancestor fallback only matters if a
	// sibling subtree is somehow empty of leaves.
	for depth := len(path); depth >= 1; depth-- {
		node, ok := NodeAtPath(root, path[:depth-1])
		if !ok {
			continue
		}
		split, ok := node.(*Split)
		if !ok {
			continue
		}
		sibling := split.Children[1-path[depth-1]]
		if gid := firstLeafGroup(sibling); gid != "" && gid != removedGroupID {
			return gid
		}
	}
	return ""
}
