package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// inputSource says where input lines come from: arguments first, then
// files, and stdin only when neither is given.
type inputSource struct {
	args  []string
	files []string
	stdin io.Reader
}

// each calls fn with every input line. It stops at the first error from fn.
func (s inputSource) each(fn func(string) error) error {
	for _, arg := range s.args {
		if err := fn(arg); err != nil {
			return err
		}
	}
	for _, path := range s.files {
		if err := eachFileLine(path, fn); err != nil {
			return err
		}
	}
	if len(s.args) > 0 || len(s.files) > 0 {
		return nil
	}
	return eachLine(s.stdin, "stdin", fn)
}

func eachFileLine(path string, fn func(string) error) error {
	rc, err := openInput(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return eachLine(rc, path, fn)
}

func eachLine(r io.Reader, name string, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// openInput opens path, decompressing .gz and .zst files.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open input %s: %w", path, err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open input %s: %w", path, err)
		}
		dc := zr.IOReadCloser()
		return &stackedCloser{Reader: dc, closers: []io.Closer{dc, f}}, nil
	default:
		return f, nil
	}
}

// stackedCloser reads from a decompressor and closes it before the file.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
