package layout

import (
	"fmt"
	"strings"
)

// The structural invariants, checked after every mutation in strict mode:
//
//   - every tree leaf's group id exists in Groups, exactly once
//   - every group's ViewIDs is non-empty
//   - every id in ViewIDs exists in Views; every view belongs to exactly
//     one group
//   - ActiveViewID is an element of ViewIDs
//   - ActiveGroupID references an existing group
//   - split ratios lie within [MinRatio, MaxRatio]
//   - singleton types have at most one live instance; dedupe types at most
//     one per key
//
// CheckInvariants is a regression detector, not a recovery mechanism:
// reducers must produce valid states on their own.

// CheckInvariants verifies the structural invariants, plus registry
// identity discipline when a registry is supplied.
func CheckInvariants(s *LayoutState, reg *Registry) error {
	if err := checkStructure(s); err != nil {
		return err
	}
	if reg != nil {
		return checkIdentity(s, reg)
	}
	return nil
}

// AssertInvariants panics with the offending operation name on violation.
// Development/test guard only.
func AssertInvariants(s *LayoutState, reg *Registry, opName string) {
	if err := CheckInvariants(s, reg); err != nil {
		panic(fmt.Sprintf("layout: invariant violated after %s: %v", opName, err))
	}
}

// checkStructure covers the tree/group/view relationships.
func checkStructure(s *LayoutState) error {
	if s == nil {
		return fmt.Errorf("nil state")
	}
	if s.Tree == nil {
		return fmt.Errorf("nil tree")
	}

	leaves := LeafGroups(s.Tree)
	leafSet := make(map[string]int, len(leaves))
	for _, gid := range leaves {
		leafSet[gid]++
		if s.Groups[gid] == nil {
			return fmt.Errorf("leaf references unknown group %q", gid)
		}
		if leafSet[gid] > 1 {
			return fmt.Errorf("group %q occupies more than one leaf", gid)
		}
	}
	for gid := range s.Groups {
		if leafSet[gid] == 0 {
			return fmt.Errorf("group %q has no tree leaf", gid)
		}
	}

	owner := make(map[string]string, len(s.Views))
	for _, gid := range leaves {
		g := s.Groups[gid]
		if len(g.ViewIDs) == 0 {
			return fmt.Errorf("group %q is empty", gid)
		}
		activeSeen := false
		for _, vid := range g.ViewIDs {
			if s.Views[vid] == nil {
				return fmt.Errorf("group %q references unknown view %q", gid, vid)
			}
			if prev, claimed := owner[vid]; claimed {
				return fmt.Errorf("view %q owned by both %q and %q", vid, prev, gid)
			}
			owner[vid] = gid
			if vid == g.ActiveViewID {
				activeSeen = true
			}
		}
		if !activeSeen {
			return fmt.Errorf("group %q active view %q not in tabs", gid, g.ActiveViewID)
		}
	}
	for vid := range s.Views {
		if _, claimed := owner[vid]; !claimed {
			return fmt.Errorf("view %q belongs to no group", vid)
		}
	}

	if s.Groups[s.ActiveGroupID] == nil {
		return fmt.Errorf("active group %q does not exist", s.ActiveGroupID)
	}

	var ratioErr error
	walkSplits(s.Tree, func(sp *Split) {
		if ratioErr == nil && (sp.Ratio < MinRatio || sp.Ratio > MaxRatio) {
			ratioErr = fmt.Errorf("split ratio %v out of range", sp.Ratio)
		}
	})
	return ratioErr
}

// checkIdentity covers singleton and dedupe instance counts.
func checkIdentity(s *LayoutState, reg *Registry) error {
	singles := make(map[ViewType][]string)
	keyed := make(map[string][]string)
	for _, gid := range LeafGroups(s.Tree) {
		g := s.Groups[gid]
		if g == nil {
			continue
		}
		for _, vid := range g.ViewIDs {
			v := s.Views[vid]
			if v == nil {
				continue
			}
			switch reg.Spec(v.Type).Mode {
			case ModeSingleton:
				singles[v.Type] = append(singles[v.Type], vid)
			case ModeDedupeByKey:
				// Instance-keyed views (no extractable key) never collide.
				if !strings.Contains(v.Key, "#") {
					keyed[v.Key] = append(keyed[v.Key], vid)
				}
			}
		}
	}
	for t, ids := range singles {
		if len(ids) > 1 {
			return fmt.Errorf("singleton type %q has %d instances", t, len(ids))
		}
	}
	for k, ids := range keyed {
		if len(ids) > 1 {
			return fmt.Errorf("dedupe key %q has %d instances", k, len(ids))
		}
	}
	return nil
}

// walkSplits visits every split node iteratively.
func walkSplits(root TreeNode, fn func(*Split)) {
	if root == nil {
		return
	}
	stack := []TreeNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if sp, ok := node.(*Split); ok {
			fn(sp)
			stack = append(stack, sp.Children[1], sp.Children[0])
		}
	}
}
