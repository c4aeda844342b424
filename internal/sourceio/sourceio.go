// Package sourceio is the file-resolution boundary between the inventory
// model and whatever fetched the corpus files onto disk. The model only ever
// sees a resolved path string and an Opener; how the bytes got there (local
// checkout, download, version control) is the acquisition layer's concern.
package sourceio

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// Opener turns a resolved document path into an XML-parseable byte stream.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// Local opens resolved paths on the local filesystem. Files ending in .xz or
// .gz are decompressed transparently.
type Local struct{}

// Open implements Opener.
func (Local) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		// xz readers don't need closing, only the file does
		return &stream{Reader: xzr, closers: []io.Closer{f}}, nil
	case strings.HasSuffix(path, ".gz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return &stream{Reader: gzr, closers: []io.Closer{gzr, f}}, nil
	default:
		return f, nil
	}
}

// ReadAll opens path through the opener and reads it to the end.
func ReadAll(opener Opener, path string) ([]byte, error) {
	rc, err := opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// stream wraps a decompressing reader with the closers it depends on.
type stream struct {
	io.Reader
	closers []io.Closer
}

func (s *stream) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
