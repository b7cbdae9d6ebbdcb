package fs

import (
	"strings"

	"memfs/internal/logging"
)

var (
	pathLogger = logging.GetLogger().WithPrefix("path")
)

const (
	rootPath  = "/"
	separator = "/"
	parentRef = ".."
	selfRef   = "."
)

// JoinPath builds the full path of name inside the directory at dir.
func JoinPath(dir, name string) string {
	if dir == rootPath {
		return rootPath + name
	}
	return dir + separator + name
}

// splitPath is the inverse of JoinPath: it returns the parent path and the
// final segment of an absolute path. The root splits into ("", "").
func splitPath(fullPath string) (string, string) {
	if fullPath == rootPath || fullPath == "" {
		return "", ""
	}
	lastSlash := strings.LastIndex(fullPath, separator)
	if lastSlash < 0 {
		return rootPath, fullPath
	}
	if lastSlash == 0 {
		return rootPath, fullPath[1:]
	}
	return fullPath[:lastSlash], fullPath[lastSlash+1:]
}

// splitSegments breaks a cd target into its segments. Empty segments from
// repeated or trailing slashes are dropped and "." segments are ignored.
func splitSegments(target string) (absolute bool, segments []string) {
	absolute = strings.HasPrefix(target, separator)
	for _, seg := range strings.Split(target, separator) {
		if seg == "" || seg == selfRef {
			continue
		}
		segments = append(segments, seg)
	}
	pathLogger.Trace("Split %q into %q (absolute=%v)", target, segments, absolute)
	return absolute, segments
}

// validateName rejects names that would make full paths ambiguous.
func validateName(name string) error {
	switch {
	case name == "":
		return ErrInvalidName
	case name == selfRef || name == parentRef:
		return ErrInvalidName
	case strings.Contains(name, separator):
		return ErrInvalidName
	}
	return nil
}
