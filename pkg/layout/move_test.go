package layout_test

import (
	"testing"

	"github.com/vanderheijden86/dockwork/pkg/layout"
	"github.com/vanderheijden86/dockwork/pkg/testutil"
)

func centerDrop(groupID string, tabIndex int) layout.MoveTarget {
	return layout.MoveTarget{GroupID: groupID, Zone: layout.ZoneCenter, TabIndex: tabIndex}
}

func edgeDrop(groupID string, zone layout.DropZone) layout.MoveTarget {
	return layout.MoveTarget{GroupID: groupID, Zone: zone, TabIndex: layout.NoTabIndex}
}

func TestMoveViewStaleIDs(t *testing.T) {
	e := testutil.NewEngine()
	s, left, _ := sideBySide(t, e)

	if got := e.MoveView(s, "gone", centerDrop(left, layout.NoTabIndex)); got != s {
		t.Fatal("unknown view must be an identity return")
	}
	board := testutil.ViewByType(s, "board")
	if got := e.MoveView(s, board.ID, centerDrop("gone", layout.NoTabIndex)); got != s {
		t.Fatal("unknown target group must be an identity return")
	}
}

func TestMoveViewEdgeCollapsesSource(t *testing.T) {
	e := testutil.NewEngine()
	// Split(row, [A, B]) with B holding the single task view. Dropping that
	// view on A's right edge creates a fresh group C beside A, and B's
	// removal collapses the old split: Split(row, 0.5, [A, C]).
	s, a, b := sideBySide(t, e)
	task := s.Groups[b].ViewIDs[0]

	s2 := e.MoveView(s, task, edgeDrop(a, layout.ZoneRight))
	testutil.AssertInvariants(t, s2, e.Registry())

	if s2.Groups[b] != nil {
		t.Fatal("emptied source group must be removed")
	}
	split, ok := s2.Tree.(*layout.Split)
	if !ok || split.Direction != layout.DirRow || split.Ratio != 0.5 {
		t.Fatalf("unexpected root: %+v", s2.Tree)
	}
	leaves := layout.LeafGroups(s2.Tree)
	if len(leaves) != 2 || leaves[0] != a {
		t.Fatalf("leaves = %v, want [%s <new>]", leaves, a)
	}
	c := leaves[1]
	if c == b {
		t.Fatal("the destination must be a brand-new group")
	}
	g := s2.Groups[c]
	if len(g.ViewIDs) != 1 || g.ViewIDs[0] != task || g.ActiveViewID != task {
		t.Fatalf("moved view not sole active tab of new group: %+v", g)
	}
	if s2.ActiveGroupID != c {
		t.Fatal("the new group must take focus")
	}
}

func TestMoveViewEdgeZones(t *testing.T) {
	e := testutil.NewEngine()

	tests := []struct {
		zone     layout.DropZone
		dir      layout.Direction
		newFirst bool
	}{
		{layout.ZoneLeft, layout.DirRow, true},
		{layout.ZoneRight, layout.DirRow, false},
		{layout.ZoneTop, layout.DirCol, true},
		{layout.ZoneBottom, layout.DirCol, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.zone), func(t *testing.T) {
			s, a, b := sideBySide(t, e)
			task := s.Groups[b].ViewIDs[0]

			s2 := e.MoveView(s, task, edgeDrop(a, tt.zone))
			split, ok := s2.Tree.(*layout.Split)
			if !ok || split.Direction != tt.dir {
				t.Fatalf("direction = %+v, want %s", s2.Tree, tt.dir)
			}
			leaves := layout.LeafGroups(s2.Tree)
			newIdx := 1
			if tt.newFirst {
				newIdx = 0
			}
			if leaves[1-newIdx] != a || leaves[newIdx] != s2.ActiveGroupID {
				t.Fatalf("leaves = %v (anchor %s, new %s)", leaves, a, s2.ActiveGroupID)
			}
		})
	}
}

func TestMoveViewEdgeKeepsMultiTabSource(t *testing.T) {
	e := testutil.NewEngine()
	s, a, b := sideBySide(t, e)
	// Give the source a second tab so it survives the move.
	s = e.OpenView(s, "chat", nil, layout.GroupTarget(b))
	chat := s.Groups[b].ActiveViewID

	s2 := e.MoveView(s, chat, edgeDrop(a, layout.ZoneBottom))
	testutil.AssertInvariants(t, s2, e.Registry())

	g := s2.Groups[b]
	if g == nil || len(g.ViewIDs) != 1 {
		t.Fatalf("source group should survive with one tab, got %+v", g)
	}
	if v := s2.Views[g.ActiveViewID]; v == nil || v.Type != "task" {
		t.Fatal("the remaining tab must become the source's active tab")
	}
	if len(layout.LeafGroups(s2.Tree)) != 3 {
		t.Fatalf("expected 3 leaves, got %v", layout.LeafGroups(s2.Tree))
	}
}

func TestMoveViewSingleViewOwnEdge(t *testing.T) {
	e := testutil.NewEngine()
	s, _, b := sideBySide(t, e)
	task := s.Groups[b].ViewIDs[0]

	// Splitting a lone view against its own group would only rebuild the
	// same pane under a new id.
	if got := e.MoveView(s, task, edgeDrop(b, layout.ZoneLeft)); got != s {
		t.Fatal("single-view group dropped on its own edge must be a no-op")
	}
}

func TestMoveViewCenterCrossGroup(t *testing.T) {
	e := testutil.NewEngine()

	t.Run("no index appends", func(t *testing.T) {
		s, a, b := sideBySide(t, e)
		task := s.Groups[b].ViewIDs[0]

		s2 := e.MoveView(s, task, centerDrop(a, layout.NoTabIndex))
		testutil.AssertInvariants(t, s2, e.Registry())

		g := s2.Groups[a]
		if g.ViewIDs[len(g.ViewIDs)-1] != task || g.ActiveViewID != task {
			t.Fatalf("moved view must be appended and active: %+v", g)
		}
		if s2.Groups[b] != nil {
			t.Fatal("emptied source group must be removed")
		}
		if s2.ActiveGroupID != a {
			t.Fatal("target group must take focus")
		}
	})

	t.Run("explicit index inserts there", func(t *testing.T) {
		s, a, b := sideBySide(t, e)
		task := s.Groups[b].ViewIDs[0]

		s2 := e.MoveView(s, task, centerDrop(a, 0))
		if g := s2.Groups[a]; g.ViewIDs[0] != task {
			t.Fatalf("expected %s at index 0, got %v", task, g.ViewIDs)
		}
	})

	t.Run("out-of-range index clamps to end", func(t *testing.T) {
		s, a, b := sideBySide(t, e)
		task := s.Groups[b].ViewIDs[0]

		s2 := e.MoveView(s, task, centerDrop(a, 99))
		g := s2.Groups[a]
		if g.ViewIDs[len(g.ViewIDs)-1] != task {
			t.Fatalf("expected %s at the end, got %v", task, g.ViewIDs)
		}
	})
}

func TestMoveViewCenterSameGroup(t *testing.T) {
	e := testutil.NewEngine()
	s, ids := tabbedGroup(t, e)
	gid := s.ActiveGroupID

	t.Run("no index is a total no-op", func(t *testing.T) {
		if got := e.MoveView(s, ids[0], centerDrop(gid, layout.NoTabIndex)); got != s {
			t.Fatal("dropping a tab back on its own strip must change nothing")
		}
	})

	t.Run("with index reorders", func(t *testing.T) {
		s2 := e.MoveView(s, ids[0], centerDrop(gid, 3))
		g := s2.Groups[gid]
		want := []string{ids[1], ids[2], ids[0]}
		for i := range want {
			if g.ViewIDs[i] != want[i] {
				t.Fatalf("tabs = %v, want %v", g.ViewIDs, want)
			}
		}
	})
}

func TestReorderTabInGroup(t *testing.T) {
	e := testutil.NewEngine()
	s, ids := tabbedGroup(t, e)
	gid := s.ActiveGroupID

	t.Run("moves tab to index", func(t *testing.T) {
		s2 := e.ReorderTabInGroup(s, gid, ids[2], 0)
		g := s2.Groups[gid]
		want := []string{ids[2], ids[0], ids[1]}
		for i := range want {
			if g.ViewIDs[i] != want[i] {
				t.Fatalf("tabs = %v, want %v", g.ViewIDs, want)
			}
		}
		// Reordering never touches tab activation.
		if g.ActiveViewID != s.Groups[gid].ActiveViewID {
			t.Fatal("reorder must not change the active tab")
		}
	})

	t.Run("index past source accounts for removal", func(t *testing.T) {
		s2 := e.ReorderTabInGroup(s, gid, ids[0], 2)
		g := s2.Groups[gid]
		want := []string{ids[1], ids[0], ids[2]}
		for i := range want {
			if g.ViewIDs[i] != want[i] {
				t.Fatalf("tabs = %v, want %v", g.ViewIDs, want)
			}
		}
	})

	t.Run("unchanged order is identity", func(t *testing.T) {
		if got := e.ReorderTabInGroup(s, gid, ids[1], 1); got != s {
			t.Fatal("no-op reorder must return the same state")
		}
		if got := e.ReorderTabInGroup(s, gid, ids[1], 2); got != s {
			t.Fatal("moving a tab onto its own successor slot must return the same state")
		}
	})

	t.Run("clamps out-of-range index", func(t *testing.T) {
		s2 := e.ReorderTabInGroup(s, gid, ids[0], 99)
		g := s2.Groups[gid]
		if g.ViewIDs[len(g.ViewIDs)-1] != ids[0] {
			t.Fatalf("tabs = %v, want %s last", g.ViewIDs, ids[0])
		}
	})

	t.Run("stale group or view is identity", func(t *testing.T) {
		if got := e.ReorderTabInGroup(s, "gone", ids[0], 0); got != s {
			t.Fatal("unknown group must return the same state")
		}
		if got := e.ReorderTabInGroup(s, gid, "gone", 0); got != s {
			t.Fatal("unknown view must return the same state")
		}
	})
}
