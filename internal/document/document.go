// Package document reads text files into a single string.
package document

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"WordFreq/internal/storage"
)

var (
	ErrTooLarge    = errors.New("document exceeds size limit")
	ErrOutsideRoot = errors.New("document is outside the load root")
)

// Read consumes r line by line and joins the lines, each followed by "\n".
// A line ends at "\n", "\r" or "\r\n"; a final line without a terminator
// still gets one.
func Read(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	sc.Split(scanLines)

	var sb strings.Builder
	for sc.Scan() {
		sb.Write(sc.Bytes())
		sb.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", errors.Wrap(err, "read document")
	}
	return sb.String(), nil
}

// scanLines is bufio.ScanLines that also ends a line at a lone '\r'.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// '\r' at the end of the buffer; need one more byte.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Load reads the file at path. A leading "~" is expanded to the user's
// home directory and ".sz" files are decompressed.
func Load(path string, opts ...Option) (string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "expand path %s", path)
	}

	info, err := os.Stat(expanded)
	if err != nil {
		return "", errors.Wrapf(err, "stat document %s", expanded)
	}
	if info.IsDir() {
		return "", errors.Errorf("open document %s: is a directory", expanded)
	}
	if o.MaxBytes > 0 && info.Size() > o.MaxBytes {
		return "", errors.Wrapf(ErrTooLarge, "document %s is %d bytes, limit %d", expanded, info.Size(), o.MaxBytes)
	}

	rc, err := storage.Open(expanded)
	if err != nil {
		return "", errors.Wrap(err, "open document")
	}
	defer rc.Close()

	var r io.Reader = rc
	if o.Progress != nil {
		var total int64
		if !storage.IsCompressed(expanded) {
			total = info.Size()
		}
		bar := newProgressBar(total, o.Progress)
		defer bar.Finish()
		r = bar.NewProxyReader(r)
	}

	// Compressed documents are limited by their decompressed size.
	var limited *io.LimitedReader
	if o.MaxBytes > 0 {
		limited = &io.LimitedReader{R: r, N: o.MaxBytes + 1}
		r = limited
	}

	text, err := Read(r)
	if err != nil {
		return "", errors.Wrapf(err, "load %s", expanded)
	}
	if limited != nil && limited.N == 0 {
		return "", errors.Wrapf(ErrTooLarge, "document %s exceeds %d bytes", expanded, o.MaxBytes)
	}
	return text, nil
}

// Within resolves path for loading under root. Relative paths are taken
// relative to root. The result, after "~" expansion and symlink
// resolution, must lie inside root or ErrOutsideRoot is returned.
func Within(root, path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "expand path %s", path)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "resolve root %s", root)
	}
	absRoot = realPath(absRoot)

	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(absRoot, expanded)
	}
	resolved := realPath(filepath.Clean(expanded))

	rel, err := filepath.Rel(absRoot, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(ErrOutsideRoot, "%s", path)
	}
	return resolved, nil
}

// realPath resolves symlinks in p. For a path that does not exist yet only
// its directory is resolved.
func realPath(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(p)); err == nil {
		return filepath.Join(dir, filepath.Base(p))
	}
	return p
}
