package layout

import (
	"fmt"
	"testing"
)

func normalizeFixture() *LayoutState {
	return &LayoutState{
		Tree: &Split{
			Direction: DirRow,
			Ratio:     0.5,
			Children:  [2]TreeNode{&Leaf{GroupID: "g1"}, &Leaf{GroupID: "g2"}},
		},
		Groups: map[string]*ViewGroup{
			"g1": {ID: "g1", ViewIDs: []string{"v1"}, ActiveViewID: "v1"},
			"g2": {ID: "g2", ViewIDs: []string{"v2"}, ActiveViewID: "v2"},
		},
		Views: map[string]*View{
			"v1": {ID: "v1", Type: "chat", Key: "chat#v1"},
			"v2": {ID: "v2", Type: "chat", Key: "chat#v2"},
		},
		ActiveGroupID: "g1",
	}
}

func TestNormalizeFastPath(t *testing.T) {
	s := normalizeFixture()
	if got := Normalize(s, seqIDs("n")); got != s {
		t.Fatal("a valid state must pass through as the same pointer")
	}
}

func TestNormalizeNilResetsToWelcome(t *testing.T) {
	for _, s := range []*LayoutState{nil, {Groups: map[string]*ViewGroup{}, Views: map[string]*View{}}} {
		got := Normalize(s, seqIDs("n"))
		if got == nil || got.ActiveView() == nil || got.ActiveView().Type != ViewTypeWelcome {
			t.Fatalf("expected welcome reset, got %+v", got)
		}
	}
}

func TestNormalizeRepairs(t *testing.T) {
	t.Run("dangling view reference pruned", func(t *testing.T) {
		s := normalizeFixture()
		s.Groups["g1"].ViewIDs = []string{"v1", "ghost"}
		got := Normalize(s, seqIDs("n"))
		if err := CheckInvariants(got, nil); err != nil {
			t.Fatalf("still invalid: %v", err)
		}
		if len(got.Groups["g1"].ViewIDs) != 1 {
			t.Fatalf("tabs = %v, want [v1]", got.Groups["g1"].ViewIDs)
		}
	})

	t.Run("duplicate claim resolved first-owner-wins", func(t *testing.T) {
		s := normalizeFixture()
		s.Groups["g2"].ViewIDs = []string{"v1", "v2"}
		got := Normalize(s, seqIDs("n"))
		if err := CheckInvariants(got, nil); err != nil {
			t.Fatalf("still invalid: %v", err)
		}
		if g := got.GroupOf("v1"); g == nil || g.ID != "g1" {
			t.Fatalf("v1 should stay with the leftmost claimant, got %+v", g)
		}
	})

	t.Run("orphan view dropped", func(t *testing.T) {
		s := normalizeFixture()
		s.Views["stray"] = &View{ID: "stray", Type: "chat", Key: "chat#stray"}
		got := Normalize(s, seqIDs("n"))
		if got.Views["stray"] != nil {
			t.Fatal("orphan view survived")
		}
	})

	t.Run("empty group removed with its leaf", func(t *testing.T) {
		s := normalizeFixture()
		s.Groups["g2"].ViewIDs = nil
		got := Normalize(s, seqIDs("n"))
		if err := CheckInvariants(got, nil); err != nil {
			t.Fatalf("still invalid: %v", err)
		}
		if _, ok := got.Tree.(*Leaf); !ok {
			t.Fatalf("split should collapse, got %+v", got.Tree)
		}
		if got.Groups["g2"] != nil {
			t.Fatal("empty group survived")
		}
	})

	t.Run("group without a leaf dropped", func(t *testing.T) {
		s := normalizeFixture()
		s.Groups["floating"] = &ViewGroup{ID: "floating", ViewIDs: []string{"v3"}, ActiveViewID: "v3"}
		s.Views["v3"] = &View{ID: "v3", Type: "chat", Key: "chat#v3"}
		got := Normalize(s, seqIDs("n"))
		if err := CheckInvariants(got, nil); err != nil {
			t.Fatalf("still invalid: %v", err)
		}
		if got.Groups["floating"] != nil || got.Views["v3"] != nil {
			t.Fatal("unreachable group and its view must both go")
		}
	})

	t.Run("dangling leaf removed", func(t *testing.T) {
		s := normalizeFixture()
		delete(s.Groups, "g2")
		got := Normalize(s, seqIDs("n"))
		if err := CheckInvariants(got, nil); err != nil {
			t.Fatalf("still invalid: %v", err)
		}
		leaf, ok := got.Tree.(*Leaf)
		if !ok || leaf.GroupID != "g1" {
			t.Fatalf("tree = %+v, want Leaf(g1)", got.Tree)
		}
	})

	t.Run("duplicate leaf keeps leftmost", func(t *testing.T) {
		s := normalizeFixture()
		s.Tree = &Split{
			Direction: DirRow,
			Ratio:     0.5,
			Children: [2]TreeNode{
				&Split{
					Direction: DirRow,
					Ratio:     0.5,
					Children:  [2]TreeNode{&Leaf{GroupID: "g1"}, &Leaf{GroupID: "g2"}},
				},
				&Leaf{GroupID: "g1"},
			},
		}
		got := Normalize(s, seqIDs("n"))
		if err := CheckInvariants(got, nil); err != nil {
			t.Fatalf("still invalid: %v", err)
		}
		leaves := LeafGroups(got.Tree)
		if len(leaves) != 2 || leaves[0] != "g1" || leaves[1] != "g2" {
			t.Fatalf("leaves = %v, want [g1 g2]", leaves)
		}
	})

	t.Run("ratio clamped", func(t *testing.T) {
		s := normalizeFixture()
		s.Tree.(*Split).Ratio = 0.02
		got := Normalize(s, seqIDs("n"))
		if r := got.Tree.(*Split).Ratio; r != MinRatio {
			t.Fatalf("ratio = %v, want %v", r, MinRatio)
		}
	})

	t.Run("active group re-anchored", func(t *testing.T) {
		s := normalizeFixture()
		s.ActiveGroupID = "gone"
		got := Normalize(s, seqIDs("n"))
		if got.ActiveGroupID != "g1" {
			t.Fatalf("active group = %q, want g1", got.ActiveGroupID)
		}
	})

	t.Run("tree losing every leaf resets to welcome", func(t *testing.T) {
		s := normalizeFixture()
		s.Groups = map[string]*ViewGroup{}
		s.Views = map[string]*View{}
		got := Normalize(s, seqIDs("n"))
		if got.ActiveView() == nil || got.ActiveView().Type != ViewTypeWelcome {
			t.Fatalf("expected welcome reset, got %+v", got)
		}
	})
}

// seqIDs mirrors testutil.SeqIDs locally; this package cannot import
// testutil without a cycle.
func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
