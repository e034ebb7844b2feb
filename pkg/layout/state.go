// Package layout implements the docking engine behind the dw workspace: a
// binary tree of resizable splits whose leaves are tabbed view groups, plus
// the pure reducers that mutate it.
//
// All reducers are pure functions from state to state. The Store is the only
// stateful component; it swaps a single *LayoutState pointer on every
// mutation, so consumers can rely on reference equality to skip re-renders.
package layout

// ViewType tags a view with its kind ("board", "task", "chat", ...). The set
// of types and the meaning of their params are owned by the registering UI
// layer; the engine treats params as opaque except for dedupe-key extraction.
type ViewType string

// ViewTypeWelcome is the one type the engine itself knows about: the
// canonical single-view layout used whenever the tree would otherwise
// become empty.
const ViewTypeWelcome ViewType = "welcome"

// View is one open document or tool instance, rendered as a single tab.
type View struct {
	ID          string
	Type        ViewType
	Key         string // reuse identity, computed by the registry
	Params      map[string]string
	HasDocument bool
	Dirty       bool
}

// ViewGroup is a tabbed container of views occupying one leaf of the tree.
// ViewIDs is ordered and never empty in a committed state; ActiveViewID is
// always an element of ViewIDs.
type ViewGroup struct {
	ID           string
	ViewIDs      []string
	ActiveViewID string
}

// LayoutState is the committed workspace layout. It is treated as immutable:
// reducers copy what they change and share the rest.
type LayoutState struct {
	Tree          TreeNode
	Groups        map[string]*ViewGroup
	Views         map[string]*View
	ActiveGroupID string
}

// DragState tracks an in-flight tab drag. It is UI-thread-local, ephemeral,
// and never part of a persisted snapshot.
type DragState struct {
	ViewID        string
	SourceGroupID string
	Zone          DropZone
	TargetGroupID string
}

// WelcomeState builds the canonical minimal layout: one group holding one
// welcome view. Used at startup and whenever the last group disappears.
func WelcomeState(newID func() string) *LayoutState {
	viewID := newID()
	groupID := newID()
	return &LayoutState{
		Tree: &Leaf{GroupID: groupID},
		Groups: map[string]*ViewGroup{
			groupID: {ID: groupID, ViewIDs: []string{viewID}, ActiveViewID: viewID},
		},
		Views: map[string]*View{
			viewID: {ID: viewID, Type: ViewTypeWelcome, Key: string(ViewTypeWelcome)},
		},
		ActiveGroupID: groupID,
	}
}

// shallowClone copies the state envelope and both maps. Groups, views and
// tree nodes stay shared until a reducer replaces them individually.
func shallowClone(s *LayoutState) *LayoutState {
	groups := make(map[string]*ViewGroup, len(s.Groups))
	for id, g := range s.Groups {
		groups[id] = g
	}
	views := make(map[string]*View, len(s.Views))
	for id, v := range s.Views {
		views[id] = v
	}
	return &LayoutState{
		Tree:          s.Tree,
		Groups:        groups,
		Views:         views,
		ActiveGroupID: s.ActiveGroupID,
	}
}

func cloneGroup(g *ViewGroup) *ViewGroup {
	ids := make([]string, len(g.ViewIDs))
	copy(ids, g.ViewIDs)
	return &ViewGroup{ID: g.ID, ViewIDs: ids, ActiveViewID: g.ActiveViewID}
}

func cloneView(v *View) *View {
	c := *v
	if v.Params != nil {
		c.Params = make(map[string]string, len(v.Params))
		for k, val := range v.Params {
			c.Params[k] = val
		}
	}
	return &c
}

// Clone returns a deep copy sharing nothing with the receiver. Used when a
// snapshot crosses an ownership boundary (SetState, persistence).
func (s *LayoutState) Clone() *LayoutState {
	if s == nil {
		return nil
	}
	c := shallowClone(s)
	c.Tree = cloneTree(s.Tree)
	for id, g := range c.Groups {
		c.Groups[id] = cloneGroup(g)
	}
	for id, v := range c.Views {
		c.Views[id] = cloneView(v)
	}
	return c
}

// GroupOf returns the group owning viewID, or nil. Iterates in tree leaf
// order so lookups stay deterministic even for inconsistent input.
func (s *LayoutState) GroupOf(viewID string) *ViewGroup {
	for _, gid := range LeafGroups(s.Tree) {
		g := s.Groups[gid]
		if g == nil {
			continue
		}
		for _, id := range g.ViewIDs {
			if id == viewID {
				return g
			}
		}
	}
	return nil
}

// ActiveView returns the active view of the active group, or nil.
func (s *LayoutState) ActiveView() *View {
	g := s.Groups[s.ActiveGroupID]
	if g == nil {
		return nil
	}
	return s.Views[g.ActiveViewID]
}
