// Package testutil provides shared helpers for layout-engine tests: a
// deterministic id source, a canonical test registry, and assertion helpers.
package testutil

import (
	"fmt"
	"testing"

	"github.com/vanderheijden86/dockwork/pkg/layout"
)

// SeqIDs returns an id generator producing "prefix-1", "prefix-2", ...
// Deterministic ids keep test states comparable across runs.
func SeqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// NewRegistry builds the registry used across tests: the view types of the
// dw workspace with one of each instantiation mode.
func NewRegistry() *layout.Registry {
	r := layout.NewRegistry()
	r.Register("board", layout.TypeSpec{Mode: layout.ModeSingleton})
	r.Register("settings", layout.TypeSpec{Mode: layout.ModeSingleton})
	r.Register("task", layout.TypeSpec{
		Mode:        layout.ModeDedupeByKey,
		Key:         func(params map[string]string) string { return params["task_id"] },
		HasDocument: true,
	})
	r.Register("chat", layout.TypeSpec{Mode: layout.ModeAlwaysNew})
	return r
}

// NewEngine builds a strict engine with sequential ids and the test
// registry.
func NewEngine(opts ...layout.EngineOption) *layout.Engine {
	base := []layout.EngineOption{
		layout.WithIDGenerator(SeqIDs("id")),
		layout.WithStrictChecks(true),
	}
	return layout.NewEngine(NewRegistry(), append(base, opts...)...)
}

// AssertInvariants fails the test when the state breaks a structural invariant.
func AssertInvariants(t *testing.T, s *layout.LayoutState, reg *layout.Registry) {
	t.Helper()
	if err := layout.CheckInvariants(s, reg); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

// AssertLeaves verifies the tree's leaf groups left to right.
func AssertLeaves(t *testing.T, tree layout.TreeNode, want ...string) {
	t.Helper()
	got := layout.LeafGroups(tree)
	if len(got) != len(want) {
		t.Fatalf("expected leaves %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected leaves %v, got %v", want, got)
		}
	}
}

// ViewByType returns the first view of the given type in tree order, or nil.
func ViewByType(s *layout.LayoutState, t layout.ViewType) *layout.View {
	for _, gid := range layout.LeafGroups(s.Tree) {
		g := s.Groups[gid]
		if g == nil {
			continue
		}
		for _, vid := range g.ViewIDs {
			if v := s.Views[vid]; v != nil && v.Type == t {
				return v
			}
		}
	}
	return nil
}

// CountViews returns how many live views have the given type.
func CountViews(s *layout.LayoutState, t layout.ViewType) int {
	n := 0
	for _, v := range s.Views {
		if v.Type == t {
			n++
		}
	}
	return n
}
