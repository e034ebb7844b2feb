//go:build ignore

// generate_testdata.go creates sample layout snapshots for manual testing.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//   tests/testdata/layouts/minimal.json  (welcome only)
//   tests/testdata/layouts/review.json   (board + task split)
//   tests/testdata/layouts/busy.json     (deep splits, tabbed chats)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/dockwork/internal/statestore"
	"github.com/vanderheijden86/dockwork/pkg/layout"
	"github.com/vanderheijden86/dockwork/pkg/testutil"
)

type fixture struct {
	name  string
	build func(st *layout.Store)
}

var fixtures = []fixture{
	{"minimal", func(st *layout.Store) {}},
	{"review", func(st *layout.Store) {
		st.OpenView("board", nil, layout.MainTarget())
		st.OpenView("task", map[string]string{"task_id": "1"}, layout.SplitTarget(layout.DirRow, layout.PosAfter))
	}},
	{"busy", func(st *layout.Store) {
		st.OpenView("board", nil, layout.MainTarget())
		st.OpenView("task", map[string]string{"task_id": "1"}, layout.SplitTarget(layout.DirRow, layout.PosAfter))
		st.OpenView("task", map[string]string{"task_id": "2"}, layout.ActiveTarget())
		st.OpenView("chat", nil, layout.SplitTarget(layout.DirCol, layout.PosAfter))
		st.OpenView("chat", nil, layout.ActiveTarget())
		st.OpenView("settings", nil, layout.SplitTarget(layout.DirCol, layout.PosAfter))
		st.ResizeSplit(layout.Path{}, 0.35)
	}},
}

func main() {
	outputDir := "tests/testdata/layouts"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, fx := range fixtures {
		st := layout.NewStore(testutil.NewEngine())
		fx.build(st)

		outputPath := filepath.Join(outputDir, fx.name+".json")
		if err := statestore.SaveFile(outputPath, st.State()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}

		groups := len(layout.LeafGroups(st.State().Tree))
		fmt.Printf("  Written %s (%d panes, %d views)\n", outputPath, groups, len(st.State().Views))
	}

	fmt.Println("\nDone! Layout fixtures created in", outputDir)
}
