package layout

// Mode decides what OpenView does when an instance of the type may already
// exist.
type Mode int

const (
	// ModeAlwaysNew allocates a fresh instance on every open (chat sessions).
	ModeAlwaysNew Mode = iota
	// ModeSingleton re-activates the sole existing instance regardless of
	// params.
	ModeSingleton
	// ModeDedupeByKey reuses the instance whose key matches; an empty key
	// degrades to always-new.
	ModeDedupeByKey
)

// KeyFunc extracts the dedupe key from a view's params. Returning "" means
// "no identity": the open allocates a fresh instance.
type KeyFunc func(params map[string]string) string

// TypeSpec is the instantiation policy for one view type. Each type has
// exactly one mode.
type TypeSpec struct {
	Mode        Mode
	Key         KeyFunc // ModeDedupeByKey only
	HasDocument bool
}

// Registry maps view types to instantiation policies. Registration order is
// remembered so every lookup is deterministic, never a map-iteration walk.
type Registry struct {
	order []ViewType
	specs map[ViewType]TypeSpec
}

// NewRegistry returns a registry with the welcome type pre-registered as a
// singleton; everything else is up to the UI layer.
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[ViewType]TypeSpec)}
	r.Register(ViewTypeWelcome, TypeSpec{Mode: ModeSingleton})
	return r
}

// Register sets the policy for a view type. Registering a type twice
// replaces its spec but keeps its original position in the order.
func (r *Registry) Register(t ViewType, spec TypeSpec) {
	if _, seen := r.specs[t]; !seen {
		r.order = append(r.order, t)
	}
	r.specs[t] = spec
}

// Spec returns the policy for a type; unregistered types behave as
// always-new.
func (r *Registry) Spec(t ViewType) TypeSpec {
	return r.specs[t]
}

// Types returns all registered types in registration order.
func (r *Registry) Types() []ViewType {
	out := make([]ViewType, len(r.order))
	copy(out, r.order)
	return out
}

// ViewKey computes the reuse identity for a prospective view. Singletons key
// on the type alone; dedupe types on type plus extracted key; everything
// else (including dedupe opens without a key) keys on the unique instance id.
func (r *Registry) ViewKey(t ViewType, params map[string]string, id string) string {
	spec := r.specs[t]
	switch spec.Mode {
	case ModeSingleton:
		return string(t)
	case ModeDedupeByKey:
		if spec.Key != nil {
			if k := spec.Key(params); k != "" {
				return string(t) + ":" + k
			}
		}
	}
	return string(t) + "#" + id
}

// FindReusable returns the id of an existing view that an open of (t,
// params) should activate instead of allocating, scanning groups in tree
// leaf order and tabs left to right. For singletons the first instance found
// wins; duplicates can only exist after an upstream bug and the scan order
// makes the pick deterministic rather than endorsing them.
func (r *Registry) FindReusable(s *LayoutState, t ViewType, params map[string]string) (string, bool) {
	spec := r.specs[t]
	var wantKey string
	switch spec.Mode {
	case ModeSingleton:
		// match on type alone
	case ModeDedupeByKey:
		if spec.Key == nil {
			return "", false
		}
		wantKey = ""
		if k := spec.Key(params); k != "" {
			wantKey = string(t) + ":" + k
		}
		if wantKey == "" {
			return "", false
		}
	default:
		return "", false
	}
	for _, gid := range LeafGroups(s.Tree) {
		g := s.Groups[gid]
		if g == nil {
			continue
		}
		for _, vid := range g.ViewIDs {
			v := s.Views[vid]
			if v == nil || v.Type != t {
				continue
			}
			if spec.Mode == ModeSingleton || v.Key == wantKey {
				return vid, true
			}
		}
	}
	return "", false
}
