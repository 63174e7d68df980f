package document

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Options configures Load.
type Options struct {
	// MaxBytes rejects files larger than this size. Zero means unlimited.
	MaxBytes int64

	// Progress, when set, receives a progress bar while the file is read.
	Progress io.Writer
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{}
}

// WithMaxBytes limits the size of files Load accepts.
func WithMaxBytes(n int64) Option {
	return func(o *Options) { o.MaxBytes = n }
}

// WithProgress renders a byte progress bar to w while loading.
func WithProgress(w io.Writer) Option {
	return func(o *Options) { o.Progress = w }
}

func newProgressBar(size int64, w io.Writer) *pb.ProgressBar {
	bar := pb.New64(size)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(w)
	return bar.Start()
}
