package volume

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
)

const fsRoot = "/"

type fsVolume struct {
	fsys fs.FS
}

// NewFS returns a volume rooted at "/" over fsys.
func NewFS(fsys fs.FS) Volume {
	return &fsVolume{fsys: fsys}
}

func (v *fsVolume) Root() string { return fsRoot }

// fsName maps a volume path to an io/fs name.
func fsName(path string) string {
	name := strings.Trim(path, "/")
	if name == "" {
		return "."
	}
	return name
}

func (v *fsVolume) OpenDir(path string) (Dir, error) {
	name := fsName(path)
	if !fs.ValidPath(name) {
		return nil, &Error{Op: "opendir", Path: path, Code: CodeInvalidName, Err: fs.ErrInvalid}
	}
	info, err := fs.Stat(v.fsys, name)
	if err != nil {
		return nil, fsError("opendir", path, err, CodeNoPath)
	}
	if !info.IsDir() {
		return nil, &Error{Op: "opendir", Path: path, Code: CodeNoPath}
	}
	entries, err := fs.ReadDir(v.fsys, name)
	if err != nil {
		return nil, fsError("readdir", path, err, CodeNoPath)
	}
	return &fsDir{fsys: v.fsys, base: name, entries: entries}, nil
}

func (v *fsVolume) OpenFile(path string) (File, error) {
	name := fsName(path)
	if !fs.ValidPath(name) || name == "." {
		return nil, &Error{Op: "open", Path: path, Code: CodeInvalidName, Err: fs.ErrInvalid}
	}
	f, err := v.fsys.Open(name)
	if err != nil {
		return nil, fsError("open", path, err, CodeNoFile)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fsError("stat", path, err, CodeNoFile)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, &Error{Op: "open", Path: path, Code: CodeNoFile}
	}
	return &fsFile{File: f, size: info.Size()}, nil
}

type fsDir struct {
	fsys    fs.FS
	base    string
	entries []fs.DirEntry
	next    int
}

func (d *fsDir) Next() (Entry, error) {
	if d.entries == nil {
		return Entry{}, ErrNotMounted
	}
	if d.next >= len(d.entries) {
		return Entry{}, io.EOF
	}
	de := d.entries[d.next]
	d.next++

	e := Entry{Name: de.Name(), Dir: de.IsDir()}
	if !e.Dir {
		if info, err := de.Info(); err == nil {
			e.Size = info.Size()
		}
	}
	return e, nil
}

func (d *fsDir) Close() error {
	d.entries = nil
	return nil
}

type fsFile struct {
	fs.File
	size int64
}

func (f *fsFile) Size() int64 { return f.size }

func fsError(op, path string, err error, missing int) error {
	code := CodeDiskErr
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = missing
	case errors.Is(err, fs.ErrPermission):
		code = CodeDenied
	case errors.Is(err, fs.ErrInvalid):
		code = CodeInvalidName
	}
	return &Error{Op: op, Path: path, Code: code, Err: err}
}

type dirMounter struct {
	dir string
}

// DirMounter mounts a host directory as the volume.
func DirMounter(dir string) Mounter {
	return &dirMounter{dir: dir}
}

func (m *dirMounter) Mount() (Volume, error) {
	info, err := os.Stat(m.dir)
	if err != nil {
		return nil, fsError("mount", m.dir, err, CodeNotReady)
	}
	if !info.IsDir() {
		return nil, &Error{Op: "mount", Path: m.dir, Code: CodeNoFilesystem}
	}
	return NewFS(os.DirFS(m.dir)), nil
}

func (m *dirMounter) Reset() {}
