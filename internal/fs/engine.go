package fs

import (
	"fmt"
	"iter"

	"memfs/internal/logging"
)

var (
	engineLogger = logging.GetLogger().WithPrefix("engine")
)

// DefaultRootName is the name of the root directory when none is configured.
const DefaultRootName = "root"

// Engine owns one filesystem tree, its path registry and the current
// directory. All relative operations resolve against the current directory.
//
// An Engine is not safe for concurrent use; callers that share one must
// serialize every call.
type Engine struct {
	tree     *Tree
	registry *Registry
	current  NodeID
}

// NewEngine creates a filesystem holding only a root directory called rootName.
func NewEngine(rootName string) *Engine {
	if err := validateName(rootName); err != nil {
		if rootName != "" {
			engineLogger.Warn("Invalid root name %q, using %q", rootName, DefaultRootName)
		}
		rootName = DefaultRootName
	}
	tree := newTree(rootName)
	engineLogger.Debug("Created filesystem with root %q", rootName)
	return &Engine{
		tree:     tree,
		registry: NewRegistry(),
		current:  tree.root,
	}
}

// RootName returns the name given to the root directory.
func (e *Engine) RootName() string {
	return e.tree.get(e.tree.root).name
}

// Root returns the root directory.
func (e *Engine) Root() Entry {
	return e.tree.get(e.tree.root).entry()
}

// Current returns the current directory.
func (e *Engine) Current() Entry {
	return e.tree.get(e.current).entry()
}

// Mkdir creates a directory called name in the current directory.
func (e *Engine) Mkdir(name string) error {
	_, err := e.create(OpMkdir, e.current, name, TypeDirectory)
	return err
}

// Touch creates a file called name in the current directory.
func (e *Engine) Touch(name string) error {
	_, err := e.create(OpTouch, e.current, name, TypeFile)
	return err
}

// MkdirAt creates a directory called name inside the directory at dirPath.
func (e *Engine) MkdirAt(dirPath, name string) (Entry, error) {
	dir, err := e.resolveDir(OpMkdir, dirPath)
	if err != nil {
		return Entry{}, err
	}
	return e.create(OpMkdir, dir, name, TypeDirectory)
}

// TouchAt creates a file called name inside the directory at dirPath.
func (e *Engine) TouchAt(dirPath, name string) (Entry, error) {
	dir, err := e.resolveDir(OpTouch, dirPath)
	if err != nil {
		return Entry{}, err
	}
	return e.create(OpTouch, dir, name, TypeFile)
}

func (e *Engine) create(op string, dir NodeID, name string, typ Type) (Entry, error) {
	parent := e.tree.get(dir)

	if err := validateName(name); err != nil {
		engineLogger.Debug("Can't create %s %q: %v", typ, name, err)
		return Entry{}, NewFSError(op, name, err)
	}

	fullPath := JoinPath(parent.fullPath(), name)
	if _, exists := e.tree.find(dir, name); exists {
		return Entry{}, NewFSError(op, fullPath, ErrDuplicateName)
	}
	if err := e.registry.CheckInsert(parent.fullPath(), name); err != nil {
		engineLogger.Warn("Registry refused %q: %v", fullPath, err)
		return Entry{}, NewFSError(op, fullPath, err)
	}

	child := e.tree.newNode(name, parent.fullPath(), typ)
	e.tree.add(dir, child)
	if err := e.registry.Insert(child.entry()); err != nil {
		panic(fmt.Sprintf("memfs: registry out of sync at %q: %v", fullPath, err))
	}

	engineLogger.Debug("%s %q is successfully created in %q", typ, name, child.path)
	return child.entry(), nil
}

// Cd changes the current directory.
//
// "/" and the root's own name go to the root; ".." goes to the parent and
// reports ErrAlreadyAtRoot at the root. Any other target is resolved segment
// by segment, from the root when it starts with "/". On failure the current
// directory is left unchanged.
func (e *Engine) Cd(target string) error {
	switch target {
	case "":
		return NewFSError(OpCd, target, ErrInvalidName)
	case rootPath, e.RootName():
		e.current = e.tree.root
		return nil
	case parentRef:
		cur := e.tree.get(e.current)
		if cur.isRoot() {
			engineLogger.Debug("cd .. at root")
			return NewFSError(OpCd, rootPath, ErrAlreadyAtRoot)
		}
		e.current = cur.parent
		return nil
	}

	absolute, segments := splitSegments(target)
	dir := e.current
	if absolute {
		dir = e.tree.root
	}
	for _, seg := range segments {
		cur := e.tree.get(dir)
		if seg == parentRef {
			if !cur.isRoot() {
				dir = cur.parent
			}
			continue
		}

		child, ok := e.tree.find(dir, seg)
		if !ok {
			return NewFSError(OpCd, JoinPath(cur.fullPath(), seg), ErrNoSuchEntry)
		}
		if !child.isDir() {
			return NewFSError(OpCd, child.fullPath(), ErrNotADirectory)
		}
		dir = child.id
	}

	e.current = dir
	engineLogger.Trace("Current directory is now %q", e.Pwd())
	return nil
}

// Ls returns the names in the current directory in creation order.
func (e *Engine) Ls() []string {
	var names []string
	for entry := range e.List() {
		names = append(names, entry.Name)
	}
	return names
}

// List yields the entries of the current directory in creation order.
func (e *Engine) List() iter.Seq[Entry] {
	return e.tree.list(e.current)
}

// ListAt returns the entries of the directory at dirPath.
func (e *Engine) ListAt(dirPath string) ([]Entry, error) {
	dir, err := e.resolveDir(OpLs, dirPath)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for entry := range e.tree.list(dir) {
		entries = append(entries, entry)
	}
	return entries, nil
}

// Pwd returns the absolute path of the current directory.
func (e *Engine) Pwd() string {
	return e.tree.get(e.current).fullPath()
}

// Rm removes name from the current directory, including everything below it.
func (e *Engine) Rm(name string) error {
	return e.remove(OpRm, e.current, name)
}

// RmAt removes name from the directory at dirPath. Removing the current
// directory or one of its ancestors is refused with ErrInUse.
func (e *Engine) RmAt(dirPath, name string) error {
	dir, err := e.resolveDir(OpRm, dirPath)
	if err != nil {
		return err
	}
	return e.remove(OpRm, dir, name)
}

func (e *Engine) remove(op string, dir NodeID, name string) error {
	parent := e.tree.get(dir)
	if err := validateName(name); err != nil {
		return NewFSError(op, name, err)
	}

	child, ok := e.tree.find(dir, name)
	if !ok {
		return NewFSError(op, JoinPath(parent.fullPath(), name), ErrNoSuchEntry)
	}
	if e.isAncestorOrSelf(child.id, e.current) {
		return NewFSError(op, child.fullPath(), ErrInUse)
	}

	destroyed, ok := e.tree.remove(dir, child.id)
	if !ok {
		panic(fmt.Sprintf("memfs: %q found but not removable", child.fullPath()))
	}

	ids := make([]NodeID, 0, len(destroyed))
	for _, d := range destroyed {
		ids = append(ids, d.ID)
		engineLogger.Debug("%s %q has been deleted from %q", d.Type, d.Name, d.Path)
	}
	if err := e.registry.Remove(ids...); err != nil {
		panic(fmt.Sprintf("memfs: registry out of sync removing %q: %v", child.fullPath(), err))
	}
	return nil
}

// isAncestorOrSelf reports whether id is node or one of its ancestors.
func (e *Engine) isAncestorOrSelf(id, node NodeID) bool {
	for cur := node; cur != 0; cur = e.tree.get(cur).parent {
		if cur == id {
			return true
		}
	}
	return false
}

// Tree renders the whole filesystem starting at the root.
func (e *Engine) Tree() []TreeLine {
	return e.tree.render(e.tree.root, 0)
}

// Entries returns what is registered directly under the absolute path,
// answered from the registry without walking the tree.
func (e *Engine) Entries(path string) []Entry {
	return e.registry.At(path)
}

// Stat returns the entry at an absolute path.
func (e *Engine) Stat(fullPath string) (Entry, error) {
	if fullPath == rootPath {
		return e.Root(), nil
	}
	found, ok := e.registry.Lookup(fullPath)
	if !ok {
		return Entry{}, NewFSError(OpLookup, fullPath, ErrNoSuchEntry)
	}
	n, ok := e.tree.lookup(found.ID)
	if !ok {
		panic(fmt.Sprintf("memfs: registry holds destroyed node %q", fullPath))
	}
	return n.entry(), nil
}

func (e *Engine) resolveDir(op, dirPath string) (NodeID, error) {
	entry, err := e.Stat(dirPath)
	if err != nil {
		return 0, NewFSError(op, dirPath, ErrNoSuchEntry)
	}
	if !entry.IsDir() {
		return 0, NewFSError(op, dirPath, ErrNotADirectory)
	}
	return entry.ID, nil
}
