package conntree

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"pkt.systems/kubedeck/schema"
)

// NodeKind distinguishes folders from context leaves.
type NodeKind string

const (
	// KindFolder is a grouping node that can hold children.
	KindFolder NodeKind = "folder"
	// KindContext is a leaf bound to a kubeconfig context.
	KindContext NodeKind = "context"
)

// RootID is the id of the implicit root folder.
const RootID schema.NodeID = "root"

// Node is one entry in the connection tree. Nodes reference their parent by
// id; the tree never holds child-to-parent pointers, so snapshots and
// rebuilds stay acyclic.
type Node struct {
	ID      schema.NodeID         `json:"id"`
	Parent  schema.NodeID         `json:"parent"`
	Kind    NodeKind              `json:"kind"`
	Name    string                `json:"name"`
	Context schema.ClusterContext `json:"context,omitempty"`
	Tags    []string              `json:"tags,omitempty"`
}

// Tree is an arena of nodes addressed by stable ids. The sidebar renders it
// with Walk; all mutation goes through the operations below.
type Tree struct {
	nodes    map[schema.NodeID]*Node
	children map[schema.NodeID][]schema.NodeID
}

// New constructs a tree holding only the root folder.
func New() *Tree {
	t := &Tree{
		nodes:    make(map[schema.NodeID]*Node),
		children: make(map[schema.NodeID][]schema.NodeID),
	}
	t.nodes[RootID] = &Node{ID: RootID, Kind: KindFolder, Name: "Connections"}
	return t
}

func newNodeID() schema.NodeID {
	return schema.NodeID(uuid.NewString())
}

// AddFolder creates a folder under parent and returns its id.
func (t *Tree) AddFolder(parent schema.NodeID, name string) (schema.NodeID, error) {
	if err := t.requireFolder(parent); err != nil {
		return "", err
	}
	id := newNodeID()
	t.nodes[id] = &Node{ID: id, Parent: parent, Kind: KindFolder, Name: name}
	t.children[parent] = append(t.children[parent], id)
	return id, nil
}

// AddContext creates a context leaf under parent and returns its id.
func (t *Tree) AddContext(parent schema.NodeID, cc schema.ClusterContext) (schema.NodeID, error) {
	if err := t.requireFolder(parent); err != nil {
		return "", err
	}
	id := newNodeID()
	t.nodes[id] = &Node{ID: id, Parent: parent, Kind: KindContext, Name: cc.DisplayName(), Context: cc}
	t.children[parent] = append(t.children[parent], id)
	return id, nil
}

// Rename updates a node's display name.
func (t *Tree) Rename(id schema.NodeID, name string) error {
	node, ok := t.nodes[id]
	if !ok {
		return schema.ErrNodeNotFound
	}
	node.Name = name
	return nil
}

// Move re-parents a node. Moving the root, moving under a leaf, or moving a
// folder into its own subtree is rejected.
func (t *Tree) Move(id, newParent schema.NodeID) error {
	node, ok := t.nodes[id]
	if !ok || id == RootID {
		return schema.ErrNodeNotFound
	}
	if err := t.requireFolder(newParent); err != nil {
		return err
	}
	if t.isDescendant(newParent, id) || newParent == id {
		return fmt.Errorf("%w: move would create a cycle", schema.ErrInvalidRequest)
	}
	t.detach(node)
	node.Parent = newParent
	t.children[newParent] = append(t.children[newParent], id)
	return nil
}

// Tag adds a tag to a node; duplicates are ignored.
func (t *Tree) Tag(id schema.NodeID, tag string) error {
	node, ok := t.nodes[id]
	if !ok {
		return schema.ErrNodeNotFound
	}
	if slices.Contains(node.Tags, tag) {
		return nil
	}
	node.Tags = append(node.Tags, tag)
	return nil
}

// Untag removes a tag from a node if present.
func (t *Tree) Untag(id schema.NodeID, tag string) error {
	node, ok := t.nodes[id]
	if !ok {
		return schema.ErrNodeNotFound
	}
	node.Tags = slices.DeleteFunc(node.Tags, func(existing string) bool {
		return existing == tag
	})
	return nil
}

// Remove deletes a node and its entire subtree. The root cannot be removed.
func (t *Tree) Remove(id schema.NodeID) error {
	node, ok := t.nodes[id]
	if !ok || id == RootID {
		return schema.ErrNodeNotFound
	}
	t.detach(node)
	t.removeSubtree(id)
	return nil
}

// detach removes a node from its parent's child list. The node itself stays
// in the arena; callers re-parent or delete it.
func (t *Tree) detach(node *Node) {
	t.children[node.Parent] = slices.DeleteFunc(t.children[node.Parent], func(childID schema.NodeID) bool {
		return childID == node.ID
	})
}

func (t *Tree) removeSubtree(id schema.NodeID) {
	for _, child := range t.children[id] {
		t.removeSubtree(child)
	}
	delete(t.children, id)
	delete(t.nodes, id)
}

// Children returns copies of a folder's direct children in insertion order.
func (t *Tree) Children(id schema.NodeID) ([]Node, error) {
	if _, ok := t.nodes[id]; !ok {
		return nil, schema.ErrNodeNotFound
	}
	ids := t.children[id]
	out := make([]Node, 0, len(ids))
	for _, childID := range ids {
		out = append(out, *t.nodes[childID])
	}
	return out, nil
}

// Get returns a copy of a node.
func (t *Tree) Get(id schema.NodeID) (Node, error) {
	node, ok := t.nodes[id]
	if !ok {
		return Node{}, schema.ErrNodeNotFound
	}
	return *node, nil
}

// Walk visits the tree depth-first in insertion order, starting below the
// root. Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(depth int, node Node) bool) {
	t.walk(RootID, 0, fn)
}

func (t *Tree) walk(id schema.NodeID, depth int, fn func(depth int, node Node) bool) bool {
	for _, childID := range t.children[id] {
		if !fn(depth, *t.nodes[childID]) {
			return false
		}
		if !t.walk(childID, depth+1, fn) {
			return false
		}
	}
	return true
}

func (t *Tree) requireFolder(id schema.NodeID) error {
	node, ok := t.nodes[id]
	if !ok {
		return schema.ErrNodeNotFound
	}
	if node.Kind != KindFolder {
		return fmt.Errorf("%w: %s is not a folder", schema.ErrInvalidRequest, id)
	}
	return nil
}

// isDescendant reports whether candidate sits inside ancestor's subtree.
func (t *Tree) isDescendant(candidate, ancestor schema.NodeID) bool {
	node, ok := t.nodes[candidate]
	for ok && node.Parent != "" {
		if node.Parent == ancestor {
			return true
		}
		node, ok = t.nodes[node.Parent]
	}
	return false
}
