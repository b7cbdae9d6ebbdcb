// Package fs implements the in-memory filesystem tree.
//
// This file contains error types and error handling utilities.
package fs

import (
	"errors"
	"fmt"
	"syscall"

	"memfs/internal/logging"
)

var (
	errLogger = logging.GetLogger().WithPrefix("error")

	// ErrInvalidName indicates an empty or otherwise unusable component name
	ErrInvalidName = errors.New("invalid name")

	// ErrDuplicateName indicates a sibling with the same name already exists
	ErrDuplicateName = errors.New("name already exists")

	// ErrNoSuchEntry indicates a lookup miss
	ErrNoSuchEntry = errors.New("no such file or directory")

	// ErrNotADirectory indicates a directory operation applied to a file
	ErrNotADirectory = errors.New("not a directory")

	// ErrAlreadyAtRoot reports "cd .." at the root. It is informational:
	// nothing changed and nothing went wrong.
	ErrAlreadyAtRoot = errors.New("already at root")

	// ErrInUse indicates an attempt to remove the current directory or one
	// of its ancestors
	ErrInUse = errors.New("directory is in use")
)

// Error wraps filesystem errors with the operation and the affected path.
type Error struct {
	Op   string // Operation that failed (e.g., "mkdir", "cd")
	Path string // Affected path
	Err  error  // Underlying error
}

// Error implements the error interface, providing a formatted error message
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements error unwrapping for the errors.Is/As functions
func (e *Error) Unwrap() error {
	return e.Err
}

// NewFSError creates a new Error with the given operation, path, and underlying error
func NewFSError(op string, path string, err error) *Error {
	fsErr := &Error{
		Op:   op,
		Path: path,
		Err:  err,
	}
	errLogger.Debug("Created new FSError: %v", fsErr)
	return fsErr
}

// Common operation names for consistent logging and error reporting
const (
	OpMkdir  = "mkdir"  // Creating a directory
	OpTouch  = "touch"  // Creating a file
	OpCd     = "cd"     // Changing the current directory
	OpRm     = "rm"     // Removing a file or directory
	OpLs     = "ls"     // Listing a directory
	OpLookup = "lookup" // Resolving an absolute path
)

// IsInformational reports whether err only describes a no-op, such as
// "cd .." at the root, rather than a failure.
func IsInformational(err error) bool {
	return errors.Is(err, ErrAlreadyAtRoot)
}

// ToErrno converts an error from this package to the errno a FUSE server
// should answer with.
func ToErrno(err error) error {
	if err == nil {
		return nil
	}

	errLogger.Trace("Converting error to errno: %v", err)
	switch {
	case errors.Is(err, ErrNoSuchEntry):
		return syscall.ENOENT
	case errors.Is(err, ErrDuplicateName):
		return syscall.EEXIST
	case errors.Is(err, ErrNotADirectory):
		return syscall.ENOTDIR
	case errors.Is(err, ErrInvalidName):
		return syscall.EINVAL
	case errors.Is(err, ErrInUse):
		return syscall.EBUSY
	case errors.Is(err, ErrAlreadyAtRoot):
		return nil
	default:
		errLogger.Debug("Unknown error type, returning EIO: %v", err)
		return syscall.EIO
	}
}
