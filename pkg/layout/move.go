package layout

// DropZone is the region of a target group a dragged tab was released over.
// Center means join (or reorder within) the group's tab strip; the four
// edges mean split the group and put the view on that side.
type DropZone string

const (
	ZoneCenter DropZone = "center"
	ZoneLeft   DropZone = "left"
	ZoneRight  DropZone = "right"
	ZoneTop    DropZone = "top"
	ZoneBottom DropZone = "bottom"
)

// NoTabIndex marks a drop that carries no explicit tab position.
const NoTabIndex = -1

// MoveTarget names where a dragged view was dropped.
type MoveTarget struct {
	GroupID  string
	Zone     DropZone
	TabIndex int // NoTabIndex when the drop has no tab position
}

// zoneDirection maps an edge zone to split orientation and placement.
func zoneDirection(zone DropZone) (Direction, Position, bool) {
	switch zone {
	case ZoneLeft:
		return DirRow, PosBefore, true
	case ZoneRight:
		return DirRow, PosAfter, true
	case ZoneTop:
		return DirCol, PosBefore, true
	case ZoneBottom:
		return DirCol, PosAfter, true
	}
	return "", "", false
}

// MoveView relocates a view according to a drop. Semantics per zone:
//
//   - center, same group, with tab index: reorder within the tab strip.
//   - center, same group, no tab index: total no-op — dropping a tab on
//     itself does not even reassert focus.
//   - center, other group: remove from source, insert at the clamped index,
//     activate there, promote the target group.
//   - edge zones: split the target group and move the view into a brand-new
//     sibling group. The new group holds the view from the moment it is
//     created; no empty group is ever observable.
//
// Stale view or target ids are identity returns.
func (e *Engine) MoveView(s *LayoutState, viewID string, target MoveTarget) *LayoutState {
	if s.Views[viewID] == nil {
		return s
	}
	src := s.GroupOf(viewID)
	if src == nil {
		return s
	}
	dst := s.Groups[target.GroupID]
	if dst == nil {
		return s
	}

	if target.Zone == ZoneCenter {
		if src.ID == dst.ID {
			if target.TabIndex == NoTabIndex {
				return s
			}
			return e.ReorderTabInGroup(s, src.ID, viewID, target.TabIndex)
		}
		return e.moveToGroup(s, viewID, src, dst, target.TabIndex)
	}

	dir, pos, ok := zoneDirection(target.Zone)
	if !ok {
		return s
	}
	// Splitting a single-view group on its own edge would recreate the same
	// pane under a new id; treat it as nothing to do.
	if src.ID == dst.ID && len(src.ViewIDs) == 1 {
		return s
	}
	return e.moveToNewSplit(s, viewID, src, dst.ID, dir, pos)
}

// moveToGroup handles a center drop on another group.
func (e *Engine) moveToGroup(s *LayoutState, viewID string, src, dst *ViewGroup, tabIndex int) *LayoutState {
	next := shallowClone(s)

	nd := cloneGroup(dst)
	at := len(nd.ViewIDs)
	if tabIndex != NoTabIndex {
		at = clampInt(tabIndex, 0, len(nd.ViewIDs))
	}
	nd.ViewIDs = insertAt(nd.ViewIDs, at, viewID)
	nd.ActiveViewID = viewID
	next.Groups[dst.ID] = nd
	next.ActiveGroupID = dst.ID

	if !e.detachFromSource(next, src, viewID) {
		return e.commit(e.Welcome(), "moveView")
	}
	return e.commit(next, "moveView")
}

// moveToNewSplit handles an edge drop: the view lands in a freshly created
// group inserted as the anchor's split sibling.
func (e *Engine) moveToNewSplit(s *LayoutState, viewID string, src *ViewGroup, anchorID string, dir Direction, pos Position) *LayoutState {
	next := shallowClone(s)

	groupID := e.newID()
	next.Groups[groupID] = &ViewGroup{ID: groupID, ViewIDs: []string{viewID}, ActiveViewID: viewID}

	tree, ok := InsertSplitAtGroup(next.Tree, anchorID, groupID, dir, pos, e.defaultRatio)
	if !ok {
		return e.commit(e.Welcome(), "moveView")
	}
	next.Tree = tree
	next.ActiveGroupID = groupID

	// Detach after the insert so a source that empties collapses out of the
	// already-updated tree.
	if !e.detachFromSource(next, src, viewID) {
		return e.commit(e.Welcome(), "moveView")
	}
	return e.commit(next, "moveView")
}

// detachFromSource removes viewID from its old group inside next, applying
// the same next-tab and group-removal rules as CloseView. The view itself
// survives in next.Views. Reports false when the tree turns out corrupt.
func (e *Engine) detachFromSource(next *LayoutState, src *ViewGroup, viewID string) bool {
	idx := indexOf(src.ViewIDs, viewID)
	remaining := removeAt(src.ViewIDs, idx)

	if len(remaining) > 0 {
		ns := cloneGroup(src)
		ns.ViewIDs = remaining
		if src.ActiveViewID == viewID {
			ns.ActiveViewID = remaining[min(idx, len(remaining)-1)]
		}
		next.Groups[src.ID] = ns
		return true
	}

	delete(next.Groups, src.ID)
	tree, outcome := RemoveGroupFromTree(next.Tree, src.ID)
	if outcome != RemoveDone {
		// The destination group still exists, so the source leaf cannot have
		// been the root; anything else is corruption.
		return false
	}
	next.Tree = tree
	return true
}

// ReorderTabInGroup moves a tab to targetIndex within its group. The index
// is clamped to [0, len]; an index past the original position is shifted
// left by one because the removal happens first. When the final order is
// unchanged the original state is returned untouched, keeping downstream
// reference-equality checks quiet.
func (e *Engine) ReorderTabInGroup(s *LayoutState, groupID, viewID string, targetIndex int) *LayoutState {
	g := s.Groups[groupID]
	if g == nil {
		return s
	}
	idx := indexOf(g.ViewIDs, viewID)
	if idx < 0 {
		return s
	}

	at := clampInt(targetIndex, 0, len(g.ViewIDs))
	if at > idx {
		at--
	}
	if at == idx {
		return s
	}

	next := shallowClone(s)
	ng := cloneGroup(g)
	ng.ViewIDs = insertAt(removeAt(ng.ViewIDs, idx), at, viewID)
	next.Groups[groupID] = ng
	return e.commit(next, "reorderTab")
}

func insertAt(ids []string, idx int, id string) []string {
	idx = clampInt(idx, 0, len(ids))
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:idx]...)
	out = append(out, id)
	return append(out, ids[idx:]...)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
