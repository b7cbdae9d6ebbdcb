package fuseview

import (
	"context"
	"os"
	"syscall"

	"memfs/internal/fs"
	"memfs/internal/logging"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	dirLogger = logging.GetLogger().WithPrefix("fuse.dir")
)

// Dir is the FUSE node for a directory, addressed by its absolute path.
type Dir struct {
	fs   *FS
	path string
}

// Attr implements the Node interface, returning directory attributes.
func (d *Dir) Attr(_ context.Context, a *fuse.Attr) error {
	dirLogger.Trace("Getting attributes for directory: %q", d.path)

	entry, err := d.fs.stat(d.path)
	if err != nil {
		return fs.ToErrno(err)
	}

	a.Inode = uint64(entry.ID)
	a.Mode = os.ModeDir | 0755
	a.Nlink = 2
	a.Uid = d.fs.uid
	a.Gid = d.fs.gid
	return nil
}

// Lookup implements the NodeStringLookuper interface, finding a child node.
func (d *Dir) Lookup(_ context.Context, name string) (fusefs.Node, error) {
	dirLogger.Debug("Looking up %q in directory %q", name, d.path)

	entry, err := d.fs.stat(fs.JoinPath(d.path, name))
	if err != nil {
		dirLogger.Debug("Path not found: %q", fs.JoinPath(d.path, name))
		return nil, syscall.ENOENT
	}
	return d.fs.node(entry), nil
}

// ReadDirAll implements the HandleReadDirAller interface, listing directory contents.
func (d *Dir) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	dirLogger.Debug("Reading directory contents: %q", d.path)

	d.fs.mu.Lock()
	entries, err := d.fs.engine.ListAt(d.path)
	d.fs.mu.Unlock()
	if err != nil {
		return nil, fs.ToErrno(err)
	}

	dirents := make([]fuse.Dirent, 0, len(entries))
	for _, entry := range entries {
		dirent := fuse.Dirent{
			Inode: uint64(entry.ID),
			Name:  entry.Name,
			Type:  fuse.DT_File,
		}
		if entry.IsDir() {
			dirent.Type = fuse.DT_Dir
		}
		dirents = append(dirents, dirent)
	}

	dirLogger.Debug("Directory %q contains %d entries", d.path, len(dirents))
	return dirents, nil
}

// Mkdir implements the NodeMkdirer interface, creating a new directory.
func (d *Dir) Mkdir(_ context.Context, req *fuse.MkdirRequest) (fusefs.Node, error) {
	dirLogger.Info("Creating new directory %q in %q", req.Name, d.path)

	d.fs.mu.Lock()
	entry, err := d.fs.engine.MkdirAt(d.path, req.Name)
	d.fs.mu.Unlock()
	if err != nil {
		dirLogger.Warn("mkdir failed: %v", err)
		return nil, fs.ToErrno(err)
	}
	return d.fs.node(entry), nil
}

// Create implements the NodeCreater interface, creating an empty file.
func (d *Dir) Create(_ context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) (fusefs.Node, fusefs.Handle, error) {
	dirLogger.Info("Creating new file %q in %q", req.Name, d.path)

	d.fs.mu.Lock()
	entry, err := d.fs.engine.TouchAt(d.path, req.Name)
	d.fs.mu.Unlock()
	if err != nil {
		dirLogger.Warn("create failed: %v", err)
		return nil, nil, fs.ToErrno(err)
	}

	f := &File{fs: d.fs, path: entry.FullPath}
	return f, f, nil
}

// Remove implements the NodeRemover interface. Directories must be empty,
// as with rmdir(2); the shell's rm is the recursive variant.
func (d *Dir) Remove(_ context.Context, req *fuse.RemoveRequest) error {
	dirLogger.Info("Removing %q from directory %q (isDir=%v)", req.Name, d.path, req.Dir)

	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	entry, err := d.fs.engine.Stat(fs.JoinPath(d.path, req.Name))
	if err != nil {
		return syscall.ENOENT
	}
	switch {
	case req.Dir && !entry.IsDir():
		return syscall.ENOTDIR
	case !req.Dir && entry.IsDir():
		return syscall.EISDIR
	case req.Dir && entry.Children > 0:
		dirLogger.Warn("Directory not empty: %q", entry.FullPath)
		return syscall.ENOTEMPTY
	}

	if err := d.fs.engine.RmAt(d.path, req.Name); err != nil {
		return fs.ToErrno(err)
	}
	dirLogger.Info("Successfully removed %q", entry.FullPath)
	return nil
}
