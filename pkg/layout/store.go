package layout

import (
	"sync"

	"github.com/vanderheijden86/dockwork/pkg/debug"
)

// Store is the one stateful component of the engine. It owns the committed
// LayoutState (replaced by pointer on every mutation, never edited in
// place) and the ephemeral drag state, and serializes mutations behind a
// mutex. Consumers read the current pointer and may compare pointers across
// reads to skip re-renders, the same discipline as a snapshot swap.
type Store struct {
	mu     sync.Mutex
	engine *Engine
	state  *LayoutState
	drag   *DragState

	subs    map[int]func(*LayoutState)
	nextSub int
}

// NewStore creates a store starting at the welcome state.
func NewStore(engine *Engine) *Store {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &Store{
		engine: engine,
		state:  engine.commit(engine.Welcome(), "init"),
		subs:   make(map[int]func(*LayoutState)),
	}
}

// Engine returns the engine, for consumers that need the registry.
func (st *Store) Engine() *Engine { return st.engine }

// State returns the current committed state. The returned value is shared
// and must be treated as read-only.
func (st *Store) State() *LayoutState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Drag returns a copy of the in-flight drag, or nil.
func (st *Store) Drag() *DragState {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.drag == nil {
		return nil
	}
	d := *st.drag
	return &d
}

// Subscribe registers a callback invoked (synchronously, on the mutating
// goroutine) whenever the committed state pointer changes. The returned
// function cancels the subscription.
func (st *Store) Subscribe(fn func(*LayoutState)) func() {
	st.mu.Lock()
	defer st.mu.Unlock()
	id := st.nextSub
	st.nextSub++
	st.subs[id] = fn
	return func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		delete(st.subs, id)
	}
}

// apply swaps in the reducer result if it differs and notifies subscribers.
func (st *Store) apply(next *LayoutState) {
	if next == st.state {
		return
	}
	st.state = next
	for _, fn := range st.subs {
		fn(next)
	}
}

// OpenView opens (or re-activates) a view of the given type.
func (st *Store) OpenView(t ViewType, params map[string]string, target OpenTarget) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.apply(st.engine.OpenView(st.state, t, params, target))
}

// CloseView closes a view; stale ids are ignored.
func (st *Store) CloseView(viewID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.apply(st.engine.CloseView(st.state, viewID))
}

// ActivateView focuses a view's tab and its group.
func (st *Store) ActivateView(viewID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.apply(st.engine.ActivateView(st.state, viewID))
}

// MoveView applies a drop of viewID onto target.
func (st *Store) MoveView(viewID string, target MoveTarget) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.apply(st.engine.MoveView(st.state, viewID, target))
}

// ReorderTab moves a tab within its group.
func (st *Store) ReorderTab(groupID, viewID string, targetIndex int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.apply(st.engine.ReorderTabInGroup(st.state, groupID, viewID, targetIndex))
}

// ResizeSplit adjusts a split's ratio.
func (st *Store) ResizeSplit(path Path, ratio float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.apply(st.engine.ResizeSplit(st.state, path, ratio))
}

// FocusGroup promotes a group to active.
func (st *Store) FocusGroup(groupID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.apply(st.engine.FocusGroup(st.state, groupID))
}

// SetViewDirty flips a view's dirty flag.
func (st *Store) SetViewDirty(viewID string, dirty bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.apply(st.engine.SetViewDirty(st.state, viewID, dirty))
}

// UpdateViewParams replaces a view's params.
func (st *Store) UpdateViewParams(viewID string, params map[string]string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.apply(st.engine.UpdateViewParams(st.state, viewID, params))
}

// StartDrag begins dragging a view's tab. Ignored for stale ids or when a
// drag is already active.
func (st *Store) StartDrag(viewID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.drag != nil || st.state.Views[viewID] == nil {
		return
	}
	g := st.state.GroupOf(viewID)
	if g == nil {
		return
	}
	st.drag = &DragState{ViewID: viewID, SourceGroupID: g.ID}
	debug.Log("layout: drag start %s from %s", viewID, g.ID)
}

// UpdateDrag records the zone and group currently hovered. No-op when no
// drag is active.
func (st *Store) UpdateDrag(targetGroupID string, zone DropZone) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.drag == nil {
		return
	}
	d := *st.drag
	d.TargetGroupID = targetGroupID
	d.Zone = zone
	st.drag = &d
}

// EndDrag commits the drag as a MoveView when it points at a drop zone,
// then clears it. Drops without a resolved zone/target behave as cancel.
func (st *Store) EndDrag() {
	st.mu.Lock()
	defer st.mu.Unlock()
	d := st.drag
	st.drag = nil
	if d == nil || d.Zone == "" || d.TargetGroupID == "" {
		return
	}
	st.apply(st.engine.MoveView(st.state, d.ViewID, MoveTarget{
		GroupID:  d.TargetGroupID,
		Zone:     d.Zone,
		TabIndex: NoTabIndex,
	}))
}

// CancelDrag discards the drag without mutating the layout.
func (st *Store) CancelDrag() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.drag = nil
}

// SetState replaces the layout with a restored snapshot. The input is
// deep-copied and normalized; drag state is always nil afterward.
func (st *Store) SetState(snapshot *LayoutState) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.drag = nil
	st.apply(st.engine.Restore(snapshot))
}
