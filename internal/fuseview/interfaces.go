package fuseview

import (
	fusefs "bazil.org/fuse/fs"
)

// Directory represents a directory in the mounted filesystem
type Directory interface {
	fusefs.Node
	fusefs.NodeStringLookuper
	fusefs.HandleReadDirAller
	fusefs.NodeMkdirer
	fusefs.NodeCreater
	fusefs.NodeRemover
}

// FileInterface represents a file in the mounted filesystem
type FileInterface interface {
	fusefs.Node
	fusefs.NodeOpener
	fusefs.HandleReadAller
	fusefs.NodeGetxattrer
	fusefs.NodeListxattrer
}

var (
	_ fusefs.FS     = (*FS)(nil)
	_ Directory     = (*Dir)(nil)
	_ FileInterface = (*File)(nil)
)
