// Command dw is a terminal workspace built on a docking layout engine:
// splits, tabbed panes, draggable views, autosaved layouts and named
// presets.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/dockwork/internal/statestore"
	"github.com/vanderheijden86/dockwork/pkg/config"
	"github.com/vanderheijden86/dockwork/pkg/debug"
	"github.com/vanderheijden86/dockwork/pkg/layout"
	"github.com/vanderheijden86/dockwork/pkg/ui"
	"github.com/vanderheijden86/dockwork/pkg/version"
	"github.com/vanderheijden86/dockwork/pkg/watcher"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file (default: ~/.config/dw/config.yaml)")
	layoutPath := flag.String("layout", "", "Layout autosave file (default: ~/.local/state/dw/layout.json)")
	dbPath := flag.String("db", "", "Preset database (default: ~/.local/share/dw/presets.db)")
	resetFlag := flag.Bool("reset", false, "Start from a fresh layout, ignoring the autosave")
	dumpFlag := flag.Bool("dump-layout", false, "Print the saved layout as JSON and exit")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: dw [options]")
		fmt.Println("\nA dockable terminal workspace.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("dw %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	autosavePath := cfg.AutosavePath()
	if *layoutPath != "" {
		autosavePath = *layoutPath
	}
	presetPath := cfg.DBPath()
	if *dbPath != "" {
		presetPath = *dbPath
	}

	if *dumpFlag {
		if err := dumpLayout(autosavePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	engine := layout.NewEngine(newRegistry(),
		layout.WithDefaultRatio(cfg.UI.SplitRatio),
		layout.WithMainViewType(layout.ViewType(cfg.UI.MainView)),
	)
	store := layout.NewStore(engine)

	if !*resetFlag {
		if saved, err := statestore.LoadFile(autosavePath); err == nil {
			store.SetState(saved)
		} else if !errors.Is(err, statestore.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Warning: could not restore layout: %v\n", err)
		}
	}

	presets, err := statestore.Open(presetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: preset database unavailable: %v\n", err)
		presets = nil
	} else {
		defer presets.Close()
	}

	if cfg.UI.Headless || !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "dw requires an interactive terminal (use --dump-layout for scripting)")
		os.Exit(1)
	}

	m := ui.NewModel(store, cfg, presets)
	if err := runWorkspace(m, store, cfg, autosavePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error running workspace: %v\n", err)
		os.Exit(1)
	}

	// Final save so quit never loses the last operation, even with
	// autosave debouncing in flight.
	if cfg.AutosaveEnabled() {
		if err := statestore.SaveFile(autosavePath, store.State()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save layout: %v\n", err)
		}
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// newRegistry wires the view types of the workspace. Board and settings are
// one-per-session; tasks dedupe on their id so reopening a task focuses the
// existing tab; chats always get a fresh instance.
func newRegistry() *layout.Registry {
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

func dumpLayout(path string) error {
	s, err := statestore.LoadFile(path)
	if err != nil {
		return err
	}
	data, err := statestore.Encode(s)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

// runWorkspace runs the TUI with the autosave plumbing around it: every
// store mutation schedules a debounced write, and external writes to the
// autosave file reload into the running session.
func runWorkspace(m ui.Model, store *layout.Store, cfg config.Config, autosavePath string) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	if cfg.AutosaveEnabled() {
		saver := watcher.NewDebouncer(500 * time.Millisecond)
		unsubscribe := store.Subscribe(func(*layout.LayoutState) {
			saver.Trigger(func() {
				if err := statestore.SaveFile(autosavePath, store.State()); err != nil {
					debug.Log("autosave failed: %v", err)
				}
			})
		})
		defer unsubscribe()
		defer saver.Cancel()

		w, err := watcher.NewWatcher(autosavePath, watcher.WithOnChange(func() {
			reloadIfChanged(p, store, autosavePath)
		}))
		if err != nil {
			debug.Log("watcher unavailable: %v", err)
		} else if err := w.Start(); err != nil {
			debug.Log("watcher start failed: %v", err)
		} else {
			defer w.Stop()
		}
	}

	return runTUIProgram(p)
}

// reloadIfChanged loads the autosave and applies it only when it differs
// from the current state. Encoding is deterministic, so comparing encoded
// bytes breaks the save -> notify -> reload loop our own writes would cause.
func reloadIfChanged(p *tea.Program, store *layout.Store, path string) {
	saved, err := statestore.LoadFile(path)
	if err != nil {
		debug.Log("reload failed: %v", err)
		return
	}
	savedBytes, err := statestore.Encode(saved)
	if err != nil {
		return
	}
	currentBytes, err := statestore.Encode(store.State())
	if err != nil {
		return
	}
	if string(savedBytes) == string(currentBytes) {
		return
	}
	store.SetState(saved)
	p.Send(ui.StateReloadedMsg{})
}

func runTUIProgram(p *tea.Program) error {
	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set DW_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("DW_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
