// Package statestore persists layout snapshots: an autosave file for the
// current workspace and a SQLite database of named presets.
package statestore

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/dockwork/pkg/layout"
)

// currentVersion is bumped when the snapshot schema changes shape.
const currentVersion = 1

type nodeRecord struct {
	Kind      string        `json:"kind"` // "leaf" or "split"
	GroupID   string        `json:"group_id,omitempty"`
	Direction string        `json:"direction,omitempty"`
	Ratio     float64       `json:"ratio,omitempty"`
	Children  []*nodeRecord `json:"children,omitempty"`
}

type groupRecord struct {
	ID           string   `json:"id"`
	ViewIDs      []string `json:"view_ids"`
	ActiveViewID string   `json:"active_view_id"`
}

type viewRecord struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Key         string            `json:"key"`
	Params      map[string]string `json:"params,omitempty"`
	HasDocument bool              `json:"has_document,omitempty"`
}

type layoutRecord struct {
	Version       int           `json:"version"`
	Tree          *nodeRecord   `json:"tree"`
	Groups        []groupRecord `json:"groups"`
	Views         []viewRecord  `json:"views"`
	ActiveGroupID string        `json:"active_group_id"`
}

// Encode serializes a snapshot. Groups and views are sorted by id so equal
// states always produce identical bytes; the reload guard in cmd/dw compares
// encoded snapshots to break write/notify feedback loops.
//
// The dirty flag is deliberately not persisted: "unsaved changes" is a
// statement about the running session, not the layout.
func Encode(s *layout.LayoutState) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("nil layout state")
	}
	rec := layoutRecord{
		Version:       currentVersion,
		Tree:          encodeNode(s.Tree),
		ActiveGroupID: s.ActiveGroupID,
	}
	for _, g := range s.Groups {
		rec.Groups = append(rec.Groups, groupRecord{
			ID:           g.ID,
			ViewIDs:      g.ViewIDs,
			ActiveViewID: g.ActiveViewID,
		})
	}
	sort.Slice(rec.Groups, func(i, j int) bool { return rec.Groups[i].ID < rec.Groups[j].ID })
	for _, v := range s.Views {
		rec.Views = append(rec.Views, viewRecord{
			ID:          v.ID,
			Type:        string(v.Type),
			Key:         v.Key,
			Params:      v.Params,
			HasDocument: v.HasDocument,
		})
	}
	sort.Slice(rec.Views, func(i, j int) bool { return rec.Views[i].ID < rec.Views[j].ID })
	return json.Marshal(rec)
}

// Decode parses a snapshot back into a layout state. The result is raw
// persisted data: callers hand it to the engine (Store.SetState), which
// normalizes and repairs before committing.
func Decode(data []byte) (*layout.LayoutState, error) {
	var rec layoutRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("cannot parse layout snapshot: %w", err)
	}
	if rec.Version > currentVersion {
		return nil, fmt.Errorf("layout snapshot version %d is newer than supported %d", rec.Version, currentVersion)
	}
	tree, err := decodeNode(rec.Tree)
	if err != nil {
		return nil, err
	}
	s := &layout.LayoutState{
		Tree:          tree,
		Groups:        make(map[string]*layout.ViewGroup, len(rec.Groups)),
		Views:         make(map[string]*layout.View, len(rec.Views)),
		ActiveGroupID: rec.ActiveGroupID,
	}
	for _, g := range rec.Groups {
		s.Groups[g.ID] = &layout.ViewGroup{ID: g.ID, ViewIDs: g.ViewIDs, ActiveViewID: g.ActiveViewID}
	}
	for _, v := range rec.Views {
		s.Views[v.ID] = &layout.View{
			ID:          v.ID,
			Type:        layout.ViewType(v.Type),
			Key:         v.Key,
			Params:      v.Params,
			HasDocument: v.HasDocument,
		}
	}
	return s, nil
}

func encodeNode(n layout.TreeNode) *nodeRecord {
	switch node := n.(type) {
	case *layout.Leaf:
		return &nodeRecord{Kind: "leaf", GroupID: node.GroupID}
	case *layout.Split:
		return &nodeRecord{
			Kind:      "split",
			Direction: string(node.Direction),
			Ratio:     node.Ratio,
			Children: []*nodeRecord{
				encodeNode(node.Children[0]),
				encodeNode(node.Children[1]),
			},
		}
	default:
		return nil
	}
}

func decodeNode(rec *nodeRecord) (layout.TreeNode, error) {
	if rec == nil {
		return nil, nil
	}
	switch rec.Kind {
	case "leaf":
		if rec.GroupID == "" {
			return nil, fmt.Errorf("leaf node without group id")
		}
		return &layout.Leaf{GroupID: rec.GroupID}, nil
	case "split":
		if len(rec.Children) != 2 {
			return nil, fmt.Errorf("split node with %d children", len(rec.Children))
		}
		c0, err := decodeNode(rec.Children[0])
		if err != nil {
			return nil, err
		}
		c1, err := decodeNode(rec.Children[1])
		if err != nil {
			return nil, err
		}
		if c0 == nil || c1 == nil {
			return nil, fmt.Errorf("split node with nil child")
		}
		dir := layout.Direction(rec.Direction)
		if dir != layout.DirRow && dir != layout.DirCol {
			return nil, fmt.Errorf("unknown split direction %q", rec.Direction)
		}
		return &layout.Split{
			Direction: dir,
			Ratio:     rec.Ratio,
			Children:  [2]layout.TreeNode{c0, c1},
		}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", rec.Kind)
	}
}
