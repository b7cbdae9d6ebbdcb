package fs

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-memdb"

	"memfs/internal/logging"
)

var (
	registryLogger = logging.GetLogger().WithPrefix("registry")
)

const componentsTableName = "components"

var registrySchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		componentsTableName: {
			Name: componentsTableName,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.UintFieldIndex{Field: "ID"},
				},
				"path": {
					Name:    "path",
					Indexer: &memdb.StringFieldIndex{Field: "Path"},
				},
				"entry": {
					Name:   "entry",
					Unique: true,
					Indexer: &memdb.CompoundIndex{
						Indexes: []memdb.Indexer{
							&memdb.StringFieldIndex{Field: "Path"},
							&memdb.StringFieldIndex{Field: "Name"},
						},
					},
				},
				"full_path": {
					Name:    "full_path",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "FullPath"},
				},
			},
		},
	},
}

// component is the registry row for one node. Rows are never modified in
// place; memdb requires inserted objects to stay immutable.
type component struct {
	ID       NodeID
	Name     string
	Path     string
	FullPath string
	Type     Type
	Kind     Kind
}

func (c *component) entry() Entry {
	return Entry{
		ID:       c.ID,
		Name:     c.Name,
		Path:     c.Path,
		FullPath: c.FullPath,
		Type:     c.Type,
		Kind:     c.Kind,
	}
}

// Registry indexes the live components of one tree by the path they were
// created under. It is a cross-check next to the tree, not the source of
// truth for the hierarchy.
type Registry struct {
	db *memdb.MemDB
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	db, err := memdb.NewMemDB(registrySchema)
	if err != nil {
		panic(fmt.Sprintf("memfs: invalid registry schema: %v", err))
	}
	return &Registry{db: db}
}

// CheckInsert reports whether a component called name may be registered
// under path: path must not be a registered file and (path, name) must be free.
func (r *Registry) CheckInsert(path, name string) error {
	txn := r.db.Txn(false)

	if obj, err := txn.First(componentsTableName, "full_path", path); err != nil {
		return err
	} else if obj != nil && obj.(*component).Type == TypeFile {
		registryLogger.Debug("Refusing %q: %q is a file", name, path)
		return ErrNotADirectory
	}

	obj, err := txn.First(componentsTableName, "entry", path, name)
	if err != nil {
		return err
	}
	if obj != nil {
		registryLogger.Debug("Refusing %q: already registered under %q", name, path)
		return ErrDuplicateName
	}
	return nil
}

// Insert registers a component.
func (r *Registry) Insert(e Entry) error {
	if err := r.CheckInsert(e.Path, e.Name); err != nil {
		return err
	}

	txn := r.db.Txn(true)
	defer txn.Abort()

	c := &component{
		ID:       e.ID,
		Name:     e.Name,
		Path:     e.Path,
		FullPath: JoinPath(e.Path, e.Name),
		Type:     e.Type,
		Kind:     e.Kind,
	}
	if err := txn.Insert(componentsTableName, c); err != nil {
		return err
	}
	txn.Commit()

	registryLogger.Trace("Registered %q under %q", c.Name, c.Path)
	return nil
}

// Remove drops the components with the given IDs. Unknown IDs are ignored.
func (r *Registry) Remove(ids ...NodeID) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	for _, id := range ids {
		obj, err := txn.First(componentsTableName, "id", uint64(id))
		if err != nil {
			return err
		}
		if obj == nil {
			registryLogger.Debug("Node %d was not registered", id)
			continue
		}
		if err := txn.Delete(componentsTableName, obj); err != nil {
			return err
		}
		registryLogger.Trace("Unregistered %q", obj.(*component).FullPath)
	}
	txn.Commit()
	return nil
}

// At returns the components registered directly under path, ordered by creation.
func (r *Registry) At(path string) []Entry {
	txn := r.db.Txn(false)

	it, err := txn.Get(componentsTableName, "path", path)
	if err != nil {
		registryLogger.Error("Failed to query %q: %v", path, err)
		return nil
	}
	return collect(it)
}

// Lookup returns the component whose full path is fullPath.
func (r *Registry) Lookup(fullPath string) (Entry, bool) {
	txn := r.db.Txn(false)

	obj, err := txn.First(componentsTableName, "full_path", fullPath)
	if err != nil || obj == nil {
		return Entry{}, false
	}
	return obj.(*component).entry(), true
}

// All returns every registered component, ordered by creation.
func (r *Registry) All() []Entry {
	txn := r.db.Txn(false)

	it, err := txn.Get(componentsTableName, "id")
	if err != nil {
		registryLogger.Error("Failed to list components: %v", err)
		return nil
	}
	return collect(it)
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.All())
}

func collect(it memdb.ResultIterator) []Entry {
	var entries []Entry
	for obj := it.Next(); obj != nil; obj = it.Next() {
		entries = append(entries, obj.(*component).entry())
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}
