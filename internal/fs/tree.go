package fs

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"memfs/internal/logging"
)

var (
	treeLogger = logging.GetLogger().WithPrefix("tree")
)

// Tree is the arena owning every node of one filesystem. Parent links are
// NodeIDs into the arena, so ownership only runs from parent to child.
type Tree struct {
	nodes map[NodeID]*node
	next  NodeID
	root  NodeID
}

func newTree(rootName string) *Tree {
	t := &Tree{nodes: make(map[NodeID]*node)}
	root := t.newNode(rootName, "", TypeDirectory)
	t.nodes[root.id] = root
	t.root = root.id
	return t
}

// newNode allocates a detached node. It only joins the arena through add.
func (t *Tree) newNode(name, path string, typ Type) *node {
	t.next++
	n := &node{
		id:   t.next,
		name: name,
		path: path,
		typ:  typ,
	}
	if typ == TypeFile {
		n.kind = KindOf(name)
	}
	return n
}

// lookup returns the live node for id.
func (t *Tree) lookup(id NodeID) (*node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// get returns the live node for id. Touching a node that has been destroyed
// is a bug in this package, never a user error.
func (t *Tree) get(id NodeID) *node {
	n, ok := t.nodes[id]
	if !ok {
		panic(fmt.Sprintf("memfs: node %d is not part of the tree", id))
	}
	return n
}

// add appends child to the directory dir and points the child back at it.
// The caller must have checked with find that the name is free.
func (t *Tree) add(dir NodeID, child *node) {
	parent := t.get(dir)
	if !parent.isDir() {
		panic(fmt.Sprintf("memfs: cannot add %q under file %q", child.name, parent.fullPath()))
	}
	if _, attached := t.nodes[child.id]; attached || child.parent != 0 {
		panic(fmt.Sprintf("memfs: node %q is already attached", child.name))
	}
	if _, exists := t.find(dir, child.name); exists {
		panic(fmt.Sprintf("memfs: duplicate name %q in %q", child.name, parent.fullPath()))
	}
	if child.path != parent.fullPath() {
		panic(fmt.Sprintf("memfs: node %q has path %q, expected %q", child.name, child.path, parent.fullPath()))
	}

	child.parent = dir
	parent.children = append(parent.children, child.id)
	t.nodes[child.id] = child
	treeLogger.Trace("Added %q to %q (%d children)", child.name, parent.fullPath(), len(parent.children))
}

// remove detaches the child with the given identity from dir and destroys it
// together with its subtree. The destroyed nodes are returned deepest first.
// It reports false and changes nothing when child is not in dir.
func (t *Tree) remove(dir NodeID, child NodeID) ([]Entry, bool) {
	parent := t.get(dir)
	idx := slices.Index(parent.children, child)
	if idx < 0 {
		treeLogger.Debug("Node %d not found in %q", child, parent.fullPath())
		return nil, false
	}

	parent.children = slices.Delete(parent.children, idx, idx+1)

	var destroyed []Entry
	t.destroy(child, &destroyed)
	treeLogger.Trace("Removed %d nodes from %q", len(destroyed), parent.fullPath())
	return destroyed, true
}

// destroy tears down id after all of its descendants.
func (t *Tree) destroy(id NodeID, destroyed *[]Entry) {
	n := t.get(id)
	for _, child := range n.children {
		t.destroy(child, destroyed)
	}
	*destroyed = append(*destroyed, n.entry())
	delete(t.nodes, id)
	n.children = nil
	n.parent = 0
}

// find returns the child of dir called name.
func (t *Tree) find(dir NodeID, name string) (*node, bool) {
	for _, id := range t.get(dir).children {
		if child := t.get(id); child.name == name {
			return child, true
		}
	}
	return nil, false
}

// list yields the immediate children of dir in insertion order. Each range
// over the sequence reads the directory afresh.
func (t *Tree) list(dir NodeID) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		n, ok := t.lookup(dir)
		if !ok {
			return
		}
		for _, id := range n.children {
			if !yield(t.get(id).entry()) {
				return
			}
		}
	}
}

// TreeLine is one line of a rendered tree.
type TreeLine struct {
	Depth int
	Name  string
	Type  Type
	Kind  Kind
}

// String renders the line indented two spaces per level, with a trailing
// slash on directories.
func (l TreeLine) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", l.Depth))
	b.WriteString(l.Name)
	if l.Type == TypeDirectory {
		b.WriteString(separator)
	}
	return b.String()
}

// render returns id and all of its descendants, depth first, starting at indent.
func (t *Tree) render(id NodeID, indent int) []TreeLine {
	var lines []TreeLine
	t.renderInto(id, indent, &lines)
	return lines
}

func (t *Tree) renderInto(id NodeID, indent int, lines *[]TreeLine) {
	n := t.get(id)
	*lines = append(*lines, TreeLine{
		Depth: indent,
		Name:  n.name,
		Type:  n.typ,
		Kind:  n.kind,
	})
	for _, child := range n.children {
		t.renderInto(child, indent+1, lines)
	}
}

// size returns the number of live nodes, the root included.
func (t *Tree) size() int {
	return len(t.nodes)
}
