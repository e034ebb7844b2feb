package layout

// TargetKind selects how OpenView resolves its destination group.
type TargetKind int

const (
	// TargetActive opens into the currently active group.
	TargetActive TargetKind = iota
	// TargetMain opens into the group hosting the main view type (the
	// board), falling back to the active group.
	TargetMain
	// TargetGroup opens into an explicit group; a stale id falls back to
	// the active group.
	TargetGroup
	// TargetNewSplit opens into a brand-new group split off the active
	// group.
	TargetNewSplit
)

// OpenTarget names the destination of an open.
type OpenTarget struct {
	Kind      TargetKind
	GroupID   string    // TargetGroup
	Direction Direction // TargetNewSplit
	Position  Position  // TargetNewSplit
}

// ActiveTarget opens into the active group.
func ActiveTarget() OpenTarget { return OpenTarget{Kind: TargetActive} }

// MainTarget opens into the group hosting the main view.
func MainTarget() OpenTarget { return OpenTarget{Kind: TargetMain} }

// GroupTarget opens into an explicit group.
func GroupTarget(groupID string) OpenTarget {
	return OpenTarget{Kind: TargetGroup, GroupID: groupID}
}

// SplitTarget opens into a new group split off the active group.
func SplitTarget(dir Direction, pos Position) OpenTarget {
	return OpenTarget{Kind: TargetNewSplit, Direction: dir, Position: pos}
}

// OpenView opens a view of the given type. If the registry finds a reusable
// instance the call degenerates to ActivateView on it; otherwise a fresh
// view is allocated in the resolved target group and becomes both the
// group's active tab and the layout's active group.
func (e *Engine) OpenView(s *LayoutState, t ViewType, params map[string]string, target OpenTarget) *LayoutState {
	if vid, ok := e.reg.FindReusable(s, t, params); ok {
		return e.ActivateView(s, vid)
	}

	viewID := e.newID()
	view := &View{
		ID:          viewID,
		Type:        t,
		Key:         e.reg.ViewKey(t, params, viewID),
		Params:      copyParams(params),
		HasDocument: e.reg.Spec(t).HasDocument,
	}

	next := shallowClone(s)
	next.Views[viewID] = view

	if target.Kind == TargetNewSplit {
		anchor := next.ActiveGroupID
		groupID := e.newID()
		// The new group carries its view from the moment it exists; an
		// empty group is never observable.
		next.Groups[groupID] = &ViewGroup{ID: groupID, ViewIDs: []string{viewID}, ActiveViewID: viewID}
		dir := target.Direction
		if dir == "" {
			dir = DirRow
		}
		pos := target.Position
		if pos == "" {
			pos = PosAfter
		}
		tree, ok := InsertSplitAtGroup(next.Tree, anchor, groupID, dir, pos, e.defaultRatio)
		if !ok {
			// Active group missing from the tree is unrecoverable.
			return e.commit(e.Welcome(), "openView")
		}
		next.Tree = tree
		next.ActiveGroupID = groupID
		return e.commit(next, "openView")
	}

	gid := e.resolveTargetGroup(s, target)
	g := next.Groups[gid]
	if g == nil {
		return e.commit(e.Welcome(), "openView")
	}
	ng := cloneGroup(g)
	ng.ViewIDs = append(ng.ViewIDs, viewID)
	ng.ActiveViewID = viewID
	next.Groups[gid] = ng
	next.ActiveGroupID = gid
	return e.commit(next, "openView")
}

// resolveTargetGroup maps an OpenTarget to a concrete existing group id.
func (e *Engine) resolveTargetGroup(s *LayoutState, target OpenTarget) string {
	switch target.Kind {
	case TargetGroup:
		if s.Groups[target.GroupID] != nil {
			return target.GroupID
		}
	case TargetMain:
		for _, gid := range LeafGroups(s.Tree) {
			g := s.Groups[gid]
			if g == nil {
				continue
			}
			for _, vid := range g.ViewIDs {
				if v := s.Views[vid]; v != nil && v.Type == e.mainType {
					return gid
				}
			}
		}
	}
	return s.ActiveGroupID
}

func copyParams(params map[string]string) map[string]string {
	if params == nil {
		return nil
	}
	cp := make(map[string]string, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return cp
}
