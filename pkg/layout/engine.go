package layout

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vanderheijden86/dockwork/pkg/debug"
)

// Engine bundles the registry, id generation and commit discipline shared by
// every reducer. Reducers never mutate their input; each returns either the
// same pointer (nothing to do) or a freshly normalized state.
type Engine struct {
	reg          *Registry
	newID        func() string
	defaultRatio float64
	mainType     ViewType
	strict       bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithIDGenerator replaces the uuid-based id source. Tests inject a
// sequential generator to keep states comparable.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) { e.newID = fn }
}

// WithDefaultRatio sets the ratio given to newly created splits.
func WithDefaultRatio(r float64) EngineOption {
	return func(e *Engine) { e.defaultRatio = ClampRatio(r) }
}

// WithMainViewType sets the type whose hosting group counts as the "main"
// open target (default "board").
func WithMainViewType(t ViewType) EngineOption {
	return func(e *Engine) { e.mainType = t }
}

// WithStrictChecks toggles invariant assertion after every commit. Defaults
// to on when DW_DEBUG is set; tests turn it on explicitly. Violations are
// programmer errors, so strict mode panics with the offending operation.
func WithStrictChecks(on bool) EngineOption {
	return func(e *Engine) { e.strict = on }
}

// NewEngine builds an engine around a registry.
func NewEngine(reg *Registry, opts ...EngineOption) *Engine {
	if reg == nil {
		reg = NewRegistry()
	}
	e := &Engine{
		reg:          reg,
		newID:        uuid.NewString,
		defaultRatio: 0.5,
		mainType:     "board",
		strict:       debug.Enabled(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry exposes the engine's registry to consumers (the UI layer needs it
// to list registered types).
func (e *Engine) Registry() *Registry { return e.reg }

// Welcome returns a fresh canonical welcome state.
func (e *Engine) Welcome() *LayoutState {
	return WelcomeState(e.newID)
}

// Restore normalizes an externally supplied snapshot (persistence path) into
// a committed state. The input is deep-copied, never aliased.
func (e *Engine) Restore(s *LayoutState) *LayoutState {
	if s == nil {
		return e.commit(e.Welcome(), "restore")
	}
	return e.commit(s.Clone(), "restore")
}

// commit runs normalization and, in strict mode, the invariant assertion
// that names the operation on violation. Every structural reducer funnels
// through here.
func (e *Engine) commit(s *LayoutState, op string) *LayoutState {
	s = Normalize(s, e.newID)
	if e.strict {
		if err := CheckInvariants(s, e.reg); err != nil {
			panic(fmt.Sprintf("layout: invariant violated after %s: %v", op, err))
		}
	}
	debug.Log("layout: %s committed (%d groups, %d views)", op, len(s.Groups), len(s.Views))
	return s
}
