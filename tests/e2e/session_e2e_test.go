// Package e2e exercises a full workspace session across package seams:
// store mutations flowing through persistence, the preset database, and the
// autosave watcher feeding external edits back into a live store.
package e2e

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vanderheijden86/dockwork/internal/statestore"
	"github.com/vanderheijden86/dockwork/pkg/layout"
	"github.com/vanderheijden86/dockwork/pkg/testutil"
	"github.com/vanderheijden86/dockwork/pkg/watcher"
)

// buildSession opens a realistic layout: board on the left, a task split to
// the right with a chat tabbed in behind it.
func buildSession(st *layout.Store) {
	st.OpenView("board", nil, layout.MainTarget())
	st.OpenView("task", map[string]string{"task_id": "7"}, layout.SplitTarget(layout.DirRow, layout.PosAfter))
	st.OpenView("chat", nil, layout.ActiveTarget())
}

func TestSessionSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")

	st := layout.NewStore(testutil.NewEngine())
	buildSession(st)
	st.ResizeSplit(layout.Path{}, 0.3)
	want := st.State()

	if err := statestore.SaveFile(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Fresh engine and store, as after a process restart.
	st2 := layout.NewStore(testutil.NewEngine())
	loaded, err := statestore.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	st2.SetState(loaded)
	got := st2.State()

	testutil.AssertInvariants(t, got, st2.Engine().Registry())
	if len(got.Groups) != len(want.Groups) {
		t.Fatalf("restored %d groups, want %d", len(got.Groups), len(want.Groups))
	}
	split, ok := got.Tree.(*layout.Split)
	if !ok || split.Ratio != 0.3 {
		t.Fatalf("restored tree lost the resize: %#v", got.Tree)
	}
	task := testutil.ViewByType(got, "task")
	if task == nil || task.Params["task_id"] != "7" {
		t.Fatal("restored layout lost the task view")
	}

	// Dedupe identity survives the restart: reopening task 7 must reuse
	// the restored view instead of allocating a second one.
	st2.OpenView("task", map[string]string{"task_id": "7"}, layout.ActiveTarget())
	if n := testutil.CountViews(st2.State(), "task"); n != 1 {
		t.Fatalf("reopening a restored task created %d task views", n)
	}
}

func TestPresetWorkflow(t *testing.T) {
	dir := t.TempDir()
	db, err := statestore.Open(filepath.Join(dir, "presets.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	st := layout.NewStore(testutil.NewEngine())
	buildSession(st)
	if err := db.Save("review", st.State()); err != nil {
		t.Fatalf("save preset: %v", err)
	}

	// Wreck the live layout, then restore the preset. Closing the last
	// view collapses to the welcome layout; stale ids are ignored.
	snapshot := st.State()
	var ids []string
	for _, gid := range layout.LeafGroups(snapshot.Tree) {
		ids = append(ids, snapshot.Groups[gid].ViewIDs...)
	}
	for _, vid := range ids {
		st.CloseView(vid)
	}

	saved, err := db.Load("review")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}
	st.SetState(saved)

	testutil.AssertInvariants(t, st.State(), st.Engine().Registry())
	if testutil.ViewByType(st.State(), "board") == nil {
		t.Fatal("preset restore lost the board")
	}
	if testutil.ViewByType(st.State(), "chat") == nil {
		t.Fatal("preset restore lost the chat")
	}
}

func TestExternalEditReloadsSession(t *testing.T) {
	if os.Getenv("CI") != "" && os.Getenv("DW_FORCE_POLLING") == "" {
		// fsnotify can be flaky on CI runners; the polling path is
		// covered by the watcher package tests.
		t.Skip("skipping fsnotify timing test on CI")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")

	st := layout.NewStore(testutil.NewEngine())
	buildSession(st)
	if err := statestore.SaveFile(path, st.State()); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded := make(chan struct{}, 1)
	w, err := watcher.NewWatcher(path,
		watcher.WithDebounceDuration(50*time.Millisecond),
		watcher.WithOnChange(func() {
			saved, err := statestore.LoadFile(path)
			if err != nil {
				return
			}
			savedBytes, _ := statestore.Encode(saved)
			currentBytes, _ := statestore.Encode(st.State())
			if string(savedBytes) == string(currentBytes) {
				return
			}
			st.SetState(saved)
			select {
			case reloaded <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	// Simulate another process rewriting the autosave with a different
	// layout.
	other := layout.NewStore(testutil.NewEngine())
	other.OpenView("board", nil, layout.ActiveTarget())
	if err := statestore.SaveFile(path, other.State()); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("external edit never reloaded into the session")
	}

	testutil.AssertInvariants(t, st.State(), st.Engine().Registry())
	if testutil.ViewByType(st.State(), "task") != nil {
		t.Fatal("reload kept the old task view")
	}
}

func TestIdenticalWriteDoesNotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")

	st := layout.NewStore(testutil.NewEngine())
	buildSession(st)
	if err := statestore.SaveFile(path, st.State()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// The reload guard compares encoded bytes; a byte-identical rewrite
	// must be treated as our own autosave echo.
	saved, err := statestore.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	savedBytes, err := statestore.Encode(saved)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	currentBytes, err := statestore.Encode(st.State())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(savedBytes) != string(currentBytes) {
		t.Fatal("deterministic encoding broke: same layout, different bytes")
	}
}
