package layout

// ResizeSplit rewrites the ratio of the split at path, clamped so both sides
// stay visible. A path that does not resolve to a split is an identity
// return.
func (e *Engine) ResizeSplit(s *LayoutState, path Path, ratio float64) *LayoutState {
	node, ok := NodeAtPath(s.Tree, path)
	if !ok {
		return s
	}
	split, ok := node.(*Split)
	if !ok {
		return s
	}
	clamped := ClampRatio(ratio)
	if split.Ratio == clamped {
		return s
	}
	next := shallowClone(s)
	tree, ok := UpdateNodeAtPath(next.Tree, path, func(n TreeNode) TreeNode {
		sp, ok := n.(*Split)
		if !ok {
			return nil
		}
		cp := *sp
		cp.Ratio = clamped
		return &cp
	})
	if !ok {
		return s
	}
	next.Tree = tree
	return e.commit(next, "resizeSplit")
}

// FocusGroup promotes a group to the layout's active group. Stale ids and
// already-focused groups are identity returns.
func (e *Engine) FocusGroup(s *LayoutState, groupID string) *LayoutState {
	if s.Groups[groupID] == nil || s.ActiveGroupID == groupID {
		return s
	}
	next := shallowClone(s)
	next.ActiveGroupID = groupID
	return e.commit(next, "focusGroup")
}

// SetViewDirty updates a view's dirty flag. No-op when the view is gone or
// the flag already matches.
func (e *Engine) SetViewDirty(s *LayoutState, viewID string, dirty bool) *LayoutState {
	v := s.Views[viewID]
	if v == nil || v.Dirty == dirty {
		return s
	}
	next := shallowClone(s)
	nv := cloneView(v)
	nv.Dirty = dirty
	next.Views[viewID] = nv
	return e.commit(next, "setViewDirty")
}

// UpdateViewParams replaces a view's params wholesale. The dedupe key is
// deliberately left as computed at open time; identity does not drift with
// params. Stale ids are identity returns.
func (e *Engine) UpdateViewParams(s *LayoutState, viewID string, params map[string]string) *LayoutState {
	v := s.Views[viewID]
	if v == nil {
		return s
	}
	next := shallowClone(s)
	nv := cloneView(v)
	nv.Params = copyParams(params)
	next.Views[viewID] = nv
	return e.commit(next, "updateViewParams")
}
