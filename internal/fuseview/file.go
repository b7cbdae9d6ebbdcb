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
	fileLogger = logging.GetLogger().WithPrefix("fuse.file")
)

// File is the FUSE node for a file. memfs files carry no content, so every
// file reads as empty.
type File struct {
	fs   *FS
	path string
}

// Attr implements the Node interface, returning the file's attributes.
func (f *File) Attr(_ context.Context, a *fuse.Attr) error {
	fileLogger.Trace("Getting attributes for file: %q", f.path)

	entry, err := f.fs.stat(f.path)
	if err != nil {
		return fs.ToErrno(err)
	}

	a.Inode = uint64(entry.ID)
	a.Mode = 0644
	a.Nlink = 1
	a.Size = 0
	a.Uid = f.fs.uid
	a.Gid = f.fs.gid
	return nil
}

// Open implements the NodeOpener interface. Only read access is granted.
func (f *File) Open(_ context.Context, req *fuse.OpenRequest, _ *fuse.OpenResponse) (fusefs.Handle, error) {
	flags := int(req.Flags)
	fileLogger.Debug("Opening file %q with flags %v", f.path, flags)

	if flags&os.O_WRONLY != 0 || flags&os.O_RDWR != 0 {
		fileLogger.Warn("Attempted write access to read-only file: %q", f.path)
		return nil, syscall.EPERM
	}
	if _, err := f.fs.stat(f.path); err != nil {
		return nil, fs.ToErrno(err)
	}
	return f, nil
}

// ReadAll implements the HandleReadAller interface.
func (f *File) ReadAll(_ context.Context) ([]byte, error) {
	return []byte{}, nil
}

// Getxattr implements the NodeGetxattrer interface, exposing the kind tag.
func (f *File) Getxattr(_ context.Context, req *fuse.GetxattrRequest, resp *fuse.GetxattrResponse) error {
	fileLogger.Debug("Getting xattr %q for file %q", req.Name, f.path)

	if req.Name != KindXattr {
		return fuse.ErrNoXattr
	}
	entry, err := f.fs.stat(f.path)
	if err != nil {
		return fs.ToErrno(err)
	}
	resp.Xattr = []byte(entry.Kind.String())
	return nil
}

// Listxattr implements the NodeListxattrer interface.
func (f *File) Listxattr(_ context.Context, _ *fuse.ListxattrRequest, resp *fuse.ListxattrResponse) error {
	resp.Append(KindXattr)
	return nil
}
