// Package fuseview exposes a memfs filesystem through FUSE.
package fuseview

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"memfs/internal/fs"
	"memfs/internal/logging"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	viewLogger = logging.GetLogger().WithPrefix("fuse")
)

// KindXattr is the extended attribute carrying a file's kind tag.
const KindXattr = "user.memfs.kind"

// FS serves one Engine over FUSE. The kernel issues requests concurrently,
// so every engine access goes through mu.
type FS struct {
	engine *fs.Engine
	mu     sync.Mutex
	uid    uint32 // User ID reported for every node
	gid    uint32 // Group ID reported for every node
}

// New wraps engine. The caller must not use engine directly while it is served.
func New(engine *fs.Engine) *FS {
	uid := safeIntToUint32(os.Getuid())
	gid := safeIntToUint32(os.Getgid())

	if puidStr := os.Getenv("PUID"); puidStr != "" {
		if puid, err := strconv.ParseUint(puidStr, 10, 32); err == nil {
			uid = uint32(puid)
			viewLogger.Debug("Using PUID from environment: %d", uid)
		}
	}
	if pgidStr := os.Getenv("PGID"); pgidStr != "" {
		if pgid, err := strconv.ParseUint(pgidStr, 10, 32); err == nil {
			gid = uint32(pgid)
			viewLogger.Debug("Using PGID from environment: %d", gid)
		}
	}

	return &FS{
		engine: engine,
		uid:    uid,
		gid:    gid,
	}
}

// Root implements the fusefs.FS interface, returning the root directory node.
func (v *FS) Root() (fusefs.Node, error) {
	viewLogger.Trace("Getting root directory node")
	return &Dir{fs: v, path: "/"}, nil
}

// stat resolves an absolute path under the engine lock.
func (v *FS) stat(path string) (fs.Entry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine.Stat(path)
}

// node builds the FUSE node for an entry.
func (v *FS) node(entry fs.Entry) fusefs.Node {
	if entry.IsDir() {
		return &Dir{fs: v, path: entry.FullPath}
	}
	return &File{fs: v, path: entry.FullPath}
}

// Mount mounts the filesystem at mountPoint and serves it until ctx is
// cancelled or the kernel unmounts it.
func (v *FS) Mount(ctx context.Context, mountPoint string) error {
	viewLogger.Info("Mounting filesystem at %s", mountPoint)

	c, err := fuse.Mount(mountPoint,
		fuse.FSName("memfs"),
		fuse.Subtype("memfs"),
		fuse.DefaultPermissions(),
	)
	if err != nil {
		return fmt.Errorf("mount failed: %w", err)
	}
	defer c.Close()

	served := make(chan error, 1)
	go func() {
		served <- fusefs.Serve(c, v)
	}()

	select {
	case err := <-served:
		if err != nil {
			return fmt.Errorf("FUSE server error: %w", err)
		}
		viewLogger.Info("Filesystem unmounted")
		return nil
	case <-ctx.Done():
		viewLogger.Info("Unmounting filesystem from %s", mountPoint)
		if err := fuse.Unmount(mountPoint); err != nil {
			return fmt.Errorf("unmount failed: %w", err)
		}
		return <-served
	}
}

func safeIntToUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	return uint32(n)
}
