package layout

// CloseView removes a view from its owning group. A stale id is an identity
// return. When the group still has tabs, the next active tab is the one that
// slid into the closed tab's index (or the new last tab) — but only if the
// closed tab was the active one. When the group empties it is removed
// together with its tree leaf; removing the last group overall resets to the
// welcome state.
func (e *Engine) CloseView(s *LayoutState, viewID string) *LayoutState {
	if s.Views[viewID] == nil {
		return s
	}
	g := s.GroupOf(viewID)
	if g == nil {
		return s
	}

	next := shallowClone(s)
	delete(next.Views, viewID)

	idx := indexOf(g.ViewIDs, viewID)
	remaining := removeAt(g.ViewIDs, idx)

	if len(remaining) > 0 {
		ng := cloneGroup(g)
		ng.ViewIDs = remaining
		if g.ActiveViewID == viewID {
			ng.ActiveViewID = remaining[min(idx, len(remaining)-1)]
		}
		next.Groups[g.ID] = ng
		return e.commit(next, "closeView")
	}

	// Group emptied: drop it and collapse its leaf. The focus heuristic runs
	// on the pre-removal tree so the vanished leaf still anchors the walk.
	delete(next.Groups, g.ID)
	focus := FindBestFocusTarget(s.Tree, g.ID)

	tree, outcome := RemoveGroupFromTree(next.Tree, g.ID)
	switch outcome {
	case RemoveDone:
		next.Tree = tree
	case RemoveWasRoot:
		return e.commit(e.Welcome(), "closeView")
	default:
		// The group owned a view but had no leaf: the tree is corrupt and
		// resetting beats propagating it.
		return e.commit(e.Welcome(), "closeView")
	}

	if next.ActiveGroupID == g.ID {
		if focus != "" && next.Groups[focus] != nil {
			next.ActiveGroupID = focus
		} else {
			next.ActiveGroupID = firstLeafGroup(next.Tree)
		}
	}
	return e.commit(next, "closeView")
}

// ActivateView makes the view its group's active tab and promotes the group
// to the layout's active group. No structural change; stale ids are
// identity returns.
func (e *Engine) ActivateView(s *LayoutState, viewID string) *LayoutState {
	if s.Views[viewID] == nil {
		return s
	}
	g := s.GroupOf(viewID)
	if g == nil {
		return s
	}
	if g.ActiveViewID == viewID && s.ActiveGroupID == g.ID {
		return s
	}
	next := shallowClone(s)
	ng := cloneGroup(g)
	ng.ActiveViewID = viewID
	next.Groups[g.ID] = ng
	next.ActiveGroupID = g.ID
	return e.commit(next, "activateView")
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeAt(ids []string, idx int) []string {
	if idx < 0 || idx >= len(ids) {
		out := make([]string, len(ids))
		copy(out, ids)
		return out
	}
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:idx]...)
	return append(out, ids[idx+1:]...)
}
