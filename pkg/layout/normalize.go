package layout

// Normalize repairs a state into one satisfying the structural invariants. Reducer outputs are
// expected to pass through untouched (the fast path returns the input
// pointer); the repair path exists for restored snapshots and as a backstop
// against drift. Registry identity discipline is asserted, not repaired.
//
// Repairs, in order: dangling view references pruned, duplicate claims
// resolved first-owner-wins, orphan views dropped, empty groups removed
// along with their leaves (with structural collapse), groups without a leaf
// dropped, ratios clamped, active ids re-anchored. A tree that loses every
// leaf resets to the welcome state.
func Normalize(s *LayoutState, newID func() string) *LayoutState {
	if s == nil || s.Tree == nil {
		return WelcomeState(newID)
	}
	if checkStructure(s) == nil {
		return s
	}

	next := shallowClone(s)

	// Claim views group by group in leaf order; prune what cannot stand.
	leaves := LeafGroups(next.Tree)
	claimed := make(map[string]bool, len(next.Views))
	leafSeen := make(map[string]bool, len(leaves))
	for _, gid := range leaves {
		g := next.Groups[gid]
		if g == nil || leafSeen[gid] {
			continue
		}
		leafSeen[gid] = true
		kept := make([]string, 0, len(g.ViewIDs))
		for _, vid := range g.ViewIDs {
			if next.Views[vid] == nil || claimed[vid] {
				continue
			}
			claimed[vid] = true
			kept = append(kept, vid)
		}
		if len(kept) == 0 {
			delete(next.Groups, gid)
			continue
		}
		ng := cloneGroup(g)
		ng.ViewIDs = kept
		if indexOf(kept, ng.ActiveViewID) < 0 {
			ng.ActiveViewID = kept[0]
		}
		next.Groups[gid] = ng
	}

	// Groups that never appeared as a leaf are unreachable.
	for gid := range next.Groups {
		if !leafSeen[gid] {
			delete(next.Groups, gid)
		}
	}

	// Views no surviving group claims are orphans.
	for vid := range next.Views {
		if !claimed[vid] {
			delete(next.Views, vid)
		}
	}

	// Drop leaves whose group is gone. Each removal can collapse a split and
	// re-expose another dangling leaf, so iterate until stable.
	for {
		removed := false
		for _, gid := range LeafGroups(next.Tree) {
			if next.Groups[gid] != nil {
				continue
			}
			tree, outcome := RemoveGroupFromTree(next.Tree, gid)
			if outcome == RemoveWasRoot {
				return WelcomeState(newID)
			}
			if outcome != RemoveDone {
				return WelcomeState(newID)
			}
			next.Tree = tree
			removed = true
			break
		}
		if !removed {
			break
		}
	}
	if len(next.Groups) == 0 {
		return WelcomeState(newID)
	}

	// Duplicate leaves for one group: keep the leftmost, drop the rest.
	for {
		seen := make(map[string]bool)
		dup := ""
		for _, gid := range LeafGroups(next.Tree) {
			if seen[gid] {
				dup = gid
				break
			}
			seen[gid] = true
		}
		if dup == "" {
			break
		}
		// RemoveGroupFromTree removes the first (leftmost) match, which is
		// the one we want to keep, so remove via the duplicate's path.
		path := lastGroupPath(next.Tree, dup)
		if path == nil {
			break
		}
		tree, ok := removeLeafAtPath(next.Tree, path)
		if !ok {
			return WelcomeState(newID)
		}
		next.Tree = tree
	}

	next.Tree = clampTreeRatios(next.Tree)

	if next.Groups[next.ActiveGroupID] == nil {
		next.ActiveGroupID = firstLeafGroup(next.Tree)
	}
	return next
}

// lastGroupPath finds the rightmost leaf holding groupID.
func lastGroupPath(root TreeNode, groupID string) Path {
	var found Path
	stack := []walkFrame{{root, nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := f.node.(type) {
		case *Leaf:
			if n.GroupID == groupID {
				found = f.path
			}
		case *Split:
			p1 := append(append(Path{}, f.path...), 1)
			p0 := append(append(Path{}, f.path...), 0)
			stack = append(stack, walkFrame{n.Children[1], p1}, walkFrame{n.Children[0], p0})
		}
	}
	return found
}

// removeLeafAtPath removes the leaf at an explicit path with collapse.
func removeLeafAtPath(root TreeNode, path Path) (TreeNode, bool) {
	if len(path) == 0 {
		return root, false
	}
	siblingIdx := 1 - path[len(path)-1]
	return UpdateNodeAtPath(root, path[:len(path)-1], func(node TreeNode) TreeNode {
		split, ok := node.(*Split)
		if !ok {
			return nil
		}
		return split.Children[siblingIdx]
	})
}

// clampTreeRatios rewrites out-of-range ratios copy-on-write.
func clampTreeRatios(root TreeNode) TreeNode {
	switch n := root.(type) {
	case *Split:
		c0 := clampTreeRatios(n.Children[0])
		c1 := clampTreeRatios(n.Children[1])
		clamped := ClampRatio(n.Ratio)
		if c0 == n.Children[0] && c1 == n.Children[1] && clamped == n.Ratio {
			return n
		}
		cp := *n
		cp.Ratio = clamped
		cp.Children = [2]TreeNode{c0, c1}
		return &cp
	default:
		return root
	}
}
