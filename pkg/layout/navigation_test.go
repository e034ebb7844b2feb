package layout

import "testing"

func TestFindBestFocusTarget(t *testing.T) {
	// Split(row, [Split(col, [a, b]), c])
	tree := threeLeafTree()

	tests := []struct {
		removed string
		want    string
	}{
		{"a", "b"}, // sibling within the col split
		{"b", "a"},
		{"c", "a"}, // sibling subtree's leftmost descendant
		{"missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.removed, func(t *testing.T) {
			if got := FindBestFocusTarget(tree, tt.removed); got != tt.want {
				t.Fatalf("focus after removing %q = %q, want %q", tt.removed, got, tt.want)
			}
		})
	}
}

func TestFindBestFocusTargetRootLeaf(t *testing.T) {
	if got := FindBestFocusTarget(&Leaf{GroupID: "solo"}, "solo"); got != "" {
		t.Fatalf("root leaf has no neighbor, got %q", got)
	}
}

func TestFindBestFocusTargetDeepSibling(t *testing.T) {
	// Removing "d" from Split(row, [d, Split(col, [Split(row, [x, y]), z])])
	// must land on x: the sibling subtree's leftmost leaf, not z.
	tree := &Split{
		Direction: DirRow,
		Ratio:     0.5,
		Children: [2]TreeNode{
			&Leaf{GroupID: "d"},
			&Split{
				Direction: DirCol,
				Ratio:     0.5,
				Children: [2]TreeNode{
					&Split{
						Direction: DirRow,
						Ratio:     0.5,
						Children:  [2]TreeNode{&Leaf{GroupID: "x"}, &Leaf{GroupID: "y"}},
					},
					&Leaf{GroupID: "z"},
				},
			},
		},
	}
	if got := FindBestFocusTarget(tree, "d"); got != "x" {
		t.Fatalf("focus = %q, want x", got)
	}
}
