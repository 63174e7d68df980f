// Package storage writes output files atomically, optionally compressed.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644

	// CompressedExt marks files written in the snappy framing format.
	CompressedExt = ".sz"
)

// IsCompressed reports whether path names a snappy-framed file.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CompressedExt)
}

// FsyncDir opens the directory at path and calls fsync on it so that a
// rename inside it is durable.
func FsyncDir(path string) error {
	d, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "fsync dir open %s", path)
	}
	if err := d.Sync(); err != nil {
		d.Close()
		return errors.Wrapf(err, "fsync dir sync %s", path)
	}
	if err := d.Close(); err != nil {
		return errors.Wrapf(err, "fsync dir close %s", path)
	}
	return nil
}

// WriteFile streams the output of write into a temporary file next to
// finalPath, fsyncs it and renames it into place. Paths ending in ".sz" are
// snappy-compressed. Parent directories are created as needed. On error
// finalPath is left untouched.
func WriteFile(finalPath string, write func(io.Writer) error) error {
	dir := filepath.Dir(finalPath)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return errors.Wrapf(err, "create dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".wordfreq-*")
	if err != nil {
		return errors.Wrapf(err, "create temp in %s", dir)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if IsCompressed(finalPath) {
		zw := snappy.NewBufferedWriter(tmp)
		if err := write(zw); err != nil {
			return errors.Wrapf(err, "write %s", finalPath)
		}
		if err := zw.Close(); err != nil {
			return errors.Wrapf(err, "compress %s", finalPath)
		}
	} else if err := write(tmp); err != nil {
		return errors.Wrapf(err, "write %s", finalPath)
	}

	if err := tmp.Sync(); err != nil {
		return errors.Wrapf(err, "fsync %s", tmpPath)
	}
	if err := tmp.Chmod(FilePerm); err != nil {
		return errors.Wrapf(err, "chmod %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmpPath)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return errors.Wrapf(err, "rename %s to %s", tmpPath, finalPath)
	}
	success = true

	return FsyncDir(dir)
}

type readCloser struct {
	io.Reader
	io.Closer
}

// Open opens a file written by WriteFile, decompressing ".sz" files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	if IsCompressed(path) {
		return readCloser{Reader: snappy.NewReader(f), Closer: f}, nil
	}
	return f, nil
}
