package fs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Check verifies the structural invariants of the filesystem and returns
// every violation it finds, or nil for a consistent tree:
//
//   - every node but the root has one parent and appears once in its child list
//   - sibling names are unique
//   - a node's path is its parent's full path
//   - files have no children
//   - every node is reachable from the root and the current directory is a
//     live directory
//   - the registry holds exactly the live nodes other than the root, with
//     their current paths
func (e *Engine) Check() error {
	var errs *multierror.Error

	reachable := make(map[NodeID]bool, e.tree.size())
	e.checkDir(e.tree.root, reachable, &errs)

	for id, n := range e.tree.nodes {
		if !reachable[id] {
			errs = multierror.Append(errs, fmt.Errorf("%q (node %d) is not reachable from the root", n.fullPath(), id))
		}
	}

	if cur, ok := e.tree.lookup(e.current); !ok {
		errs = multierror.Append(errs, fmt.Errorf("current directory (node %d) does not exist", e.current))
	} else if !cur.isDir() {
		errs = multierror.Append(errs, fmt.Errorf("current directory %q is a file", cur.fullPath()))
	}

	e.checkRegistry(&errs)

	return errs.ErrorOrNil()
}

func (e *Engine) checkDir(dir NodeID, reachable map[NodeID]bool, errs **multierror.Error) {
	n := e.tree.get(dir)
	if reachable[dir] {
		*errs = multierror.Append(*errs, fmt.Errorf("%q (node %d) is reachable twice", n.fullPath(), dir))
		return
	}
	reachable[dir] = true

	if !n.isDir() {
		if len(n.children) > 0 {
			*errs = multierror.Append(*errs, fmt.Errorf("file %q has %d children", n.fullPath(), len(n.children)))
		}
		return
	}

	names := make(map[string]bool, len(n.children))
	for _, id := range n.children {
		child, ok := e.tree.lookup(id)
		if !ok {
			*errs = multierror.Append(*errs, fmt.Errorf("%q lists destroyed node %d", n.fullPath(), id))
			continue
		}
		if child.parent != dir {
			*errs = multierror.Append(*errs, fmt.Errorf("%q points at parent %d, listed by %d", child.name, child.parent, dir))
		}
		if child.path != n.fullPath() {
			*errs = multierror.Append(*errs, fmt.Errorf("%q has path %q, expected %q", child.name, child.path, n.fullPath()))
		}
		if names[child.name] {
			*errs = multierror.Append(*errs, fmt.Errorf("duplicate name %q in %q", child.name, n.fullPath()))
		}
		names[child.name] = true
		e.checkDir(id, reachable, errs)
	}
}

func (e *Engine) checkRegistry(errs **multierror.Error) {
	registered := e.registry.All()
	if want := e.tree.size() - 1; len(registered) != want {
		*errs = multierror.Append(*errs, fmt.Errorf("registry holds %d components, tree holds %d", len(registered), want))
	}

	for _, r := range registered {
		n, ok := e.tree.lookup(r.ID)
		if !ok {
			*errs = multierror.Append(*errs, fmt.Errorf("registry holds destroyed node %q", r.FullPath))
			continue
		}
		if r.Name != n.name || r.Path != n.path || r.FullPath != n.fullPath() {
			*errs = multierror.Append(*errs, fmt.Errorf("registry has %q for node at %q", r.FullPath, n.fullPath()))
		}
		if path, name := splitPath(r.FullPath); path != r.Path || name != r.Name {
			*errs = multierror.Append(*errs, fmt.Errorf("registry path %q does not split into %q and %q", r.FullPath, r.Path, r.Name))
		}
	}
}
