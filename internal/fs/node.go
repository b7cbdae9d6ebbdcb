package fs

// NodeID identifies a node inside a Tree. The zero value means "no node".
type NodeID uint64

// Type tells files and directories apart.
type Type int

const (
	TypeFile Type = iota + 1
	TypeDirectory
)

func (t Type) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// node is one slot of the tree arena. name, path and parent are common to
// both variants; kind is only meaningful for files and children only for
// directories.
type node struct {
	id     NodeID
	name   string
	path   string // absolute path of the parent directory, "" for the root
	parent NodeID
	typ    Type

	kind     Kind
	children []NodeID
}

func (n *node) isRoot() bool {
	return n.path == ""
}

func (n *node) isDir() bool {
	return n.typ == TypeDirectory
}

// fullPath derives the absolute path of the node from its own name and path.
func (n *node) fullPath() string {
	if n.isRoot() {
		return rootPath
	}
	return JoinPath(n.path, n.name)
}

func (n *node) entry() Entry {
	return Entry{
		ID:       n.id,
		Name:     n.name,
		Path:     n.path,
		FullPath: n.fullPath(),
		Type:     n.typ,
		Kind:     n.kind,
		Children: len(n.children),
	}
}

// Entry is a read-only snapshot of a node handed out to callers.
type Entry struct {
	ID       NodeID
	Name     string
	Path     string
	FullPath string
	Type     Type
	Kind     Kind // files only
	Children int  // directories only
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Type == TypeDirectory
}
