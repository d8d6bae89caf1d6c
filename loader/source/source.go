// Package source opens input files as plain byte streams, transparently
// decompressing gzip, bzip2, xz and zstd content and dropping a UTF-8 BOM.
package source

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/sflanaga/csvtolite/loader/common"
)

// Compression identifies the container format of an input stream.
type Compression int

const (
	None Compression = iota
	Gzip
	Bzip2
	XZ
	Zstd
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case XZ:
		return "xz"
	case Zstd:
		return "zstd"
	}
	return "none"
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	utf8BOM    = []byte{0xef, 0xbb, 0xbf}
)

// Detect sniffs the compression format from the head of a stream.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	case bytes.HasPrefix(head, bzip2Magic):
		return Bzip2
	case bytes.HasPrefix(head, xzMagic):
		return XZ
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	}
	return None
}

// Stream is an opened input. Close releases the decompressor and the file.
type Stream struct {
	io.Reader
	Compression Compression
	closers     []func() error
}

// Close releases every resource in reverse order of acquisition.
func (s *Stream) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}

// Open opens path for reading.
func Open(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &common.IOError{Path: path, Err: err}
	}
	s, err := NewStream(f)
	if err != nil {
		f.Close()
		return nil, &common.IOError{Path: path, Err: err}
	}
	s.closers = append([]func() error{f.Close}, s.closers...)
	return s, nil
}

// NewStream wraps r, decompressing it when its head carries a known magic number.
func NewStream(r io.Reader) (*Stream, error) {
	br := bufio.NewReaderSize(r, 65536)
	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	s := &Stream{Compression: Detect(head)}
	var plain io.Reader
	switch s.Compression {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		s.closers = append(s.closers, zr.Close)
		plain = zr
	case Bzip2:
		plain = bzip2.NewReader(br)
	case XZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to open xz stream: %w", err)
		}
		plain = xr
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		s.closers = append(s.closers, func() error { zr.Close(); return nil })
		plain = zr
	default:
		plain = br
	}

	s.Reader, err = skipBOM(plain)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// skipBOM drops a leading UTF-8 byte order mark, as written by Windows tools.
func skipBOM(r io.Reader) (io.Reader, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	head, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}
	return br, nil
}
