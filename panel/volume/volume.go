// Package volume is the read-only storage surface the panel browses and
// streams from: directory enumeration, entry classification and sequential
// file reads.
package volume

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Entry is one directory member.
type Entry struct {
	Name string
	Dir  bool
	Size int64
}

// Dir enumerates one directory level. Next returns io.EOF after the last
// entry.
type Dir interface {
	Next() (Entry, error)
	Close() error
}

// File is an open regular file.
type File interface {
	io.Reader
	io.Closer
	Size() int64
}

// Volume is a mounted, read-only file tree.
type Volume interface {
	Root() string
	OpenDir(path string) (Dir, error)
	OpenFile(path string) (File, error)
}

// Mounter brings up the storage bus and mounts the volume on it.
type Mounter interface {
	Mount() (Volume, error)
	// Reset reinitializes the bus between mount attempts.
	Reset()
}

// ErrNotMounted is returned by operations on a volume that is gone.
var ErrNotMounted = errors.New("volume: not mounted")

// Error carries the numeric result code reported by the storage layer.
type Error struct {
	Op   string
	Path string
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: code %d: %v", e.Op, e.Path, e.Code, e.Err)
	}
	return fmt.Sprintf("%s %s: code %d", e.Op, e.Path, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Code returns the storage result code carried by err, or 0.
func Code(err error) int {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Code
	}
	return 0
}

// Join appends name to dir, adding a separator only when dir lacks one.
func Join(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

// Parent returns the directory containing path without ever climbing above
// root.
func Parent(path, root string) string {
	if path == root {
		return root
	}
	p := path
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	i := strings.LastIndexByte(p, '/')
	if i < len(root) {
		return root
	}
	return p[:i]
}

// IsRoot reports whether path names the volume root.
func IsRoot(path, root string) bool {
	if path == root {
		return true
	}
	return strings.TrimSuffix(path, "/") == strings.TrimSuffix(root, "/")
}
