package writers

import (
	"io"
	"os"
)

// LazyWriteCloser delays initialization until the writer is first written to, so a
// command that fails before producing output leaves no empty file behind.
type LazyWriteCloser struct {
	init   func() (io.WriteCloser, error)
	writer io.WriteCloser
}

// NewLazyWriteCloser creates a LazyWriteCloser. init is called once, on the first Write.
func NewLazyWriteCloser(init func() (io.WriteCloser, error)) *LazyWriteCloser {
	return &LazyWriteCloser{init: init}
}

// NewLazyFile opens (creating or truncating) path on first write.
func NewLazyFile(path string) *LazyWriteCloser {
	return NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	})
}

func (f *LazyWriteCloser) Write(p []byte) (int, error) {
	if f.writer == nil {
		var err error
		f.writer, err = f.init()
		if err != nil {
			return 0, err
		}
	}

	return f.writer.Write(p)
}

func (f *LazyWriteCloser) Close() error {
	if f.writer != nil {
		return f.writer.Close()
	}
	return nil
}

// nopCloser keeps stdout open when it stands in for an output file.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Output returns stdout for "-" and a lazily opened file otherwise.
func Output(location string, stdout io.Writer) io.WriteCloser {
	if location == "-" {
		return nopCloser{stdout}
	}
	return NewLazyFile(location)
}
