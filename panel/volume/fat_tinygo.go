//go:build tinygo

package volume

import (
	"errors"
	"io"
	"os"

	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/fatfs"
)

type fatVolume struct {
	fat *fatfs.FATFS
}

// NewFAT wraps a mounted FAT filesystem.
func NewFAT(fat *fatfs.FATFS) Volume {
	return &fatVolume{fat: fat}
}

func (v *fatVolume) Root() string { return "/" }

func (v *fatVolume) OpenDir(path string) (Dir, error) {
	if v.fat == nil {
		return nil, ErrNotMounted
	}
	f, err := v.fat.OpenFile(path, os.O_RDONLY)
	if err != nil {
		return nil, fatError("opendir", path, err)
	}
	defer func() { _ = f.Close() }()

	infos, err := f.Readdir(0)
	if err != nil {
		return nil, fatError("readdir", path, err)
	}
	return &fatDir{infos: infos}, nil
}

func (v *fatVolume) OpenFile(path string) (File, error) {
	if v.fat == nil {
		return nil, ErrNotMounted
	}
	info, err := v.fat.Stat(path)
	if err != nil {
		return nil, fatError("stat", path, err)
	}
	if info.IsDir() {
		return nil, &Error{Op: "open", Path: path, Code: CodeNoFile}
	}
	f, err := v.fat.OpenFile(path, os.O_RDONLY)
	if err != nil {
		return nil, fatError("open", path, err)
	}
	return &fatFile{f: f, size: info.Size()}, nil
}

type fatDir struct {
	infos []os.FileInfo
	next  int
}

func (d *fatDir) Next() (Entry, error) {
	for d.next < len(d.infos) {
		fi := d.infos[d.next]
		d.next++
		name := fi.Name()
		if name == "." || name == ".." {
			continue
		}
		return Entry{Name: name, Dir: fi.IsDir(), Size: fi.Size()}, nil
	}
	return Entry{}, io.EOF
}

func (d *fatDir) Close() error {
	d.infos = nil
	return nil
}

type fatFile struct {
	f    tinyfs.File
	size int64
}

func (f *fatFile) Read(p []byte) (int, error) {
	n, err := f.f.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fatError("read", "", err)
	}
	return n, err
}

func (f *fatFile) Close() error { return f.f.Close() }
func (f *fatFile) Size() int64  { return f.size }

func fatError(op, path string, err error) error {
	var fr fatfs.FileResult
	if errors.As(err, &fr) {
		return &Error{Op: op, Path: path, Code: int(fr), Err: err}
	}
	return &Error{Op: op, Path: path, Code: CodeDiskErr, Err: err}
}
