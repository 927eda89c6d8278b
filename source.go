// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const (
	// sourceBufferSize is the sequential read buffer for record parsing.
	sourceBufferSize = 64 * 1024
	// skipChunkSize bounds one Discard call so skips stay int-safe on 32-bit.
	skipChunkSize = 1 << 30
)

// ByteSource is the sequential read capability consumed by the walker.
// The cursor is exclusively owned by one in-progress walk; there is no
// seeking backwards and no second position copy anywhere else.
type ByteSource interface {
	// ReadUntil reads up to but not including delim and consumes the
	// delimiter. It fails with ErrDelimiterNotFound when delim does not
	// appear within maxLen bytes, and with io.ErrUnexpectedEOF when the
	// stream ends first.
	ReadUntil(delim byte, maxLen int) ([]byte, error)
	// ReadN reads exactly n bytes. A clean end of stream before the first
	// byte returns io.EOF; a partial read returns io.ErrUnexpectedEOF.
	ReadN(n int) ([]byte, error)
	// Skip advances the cursor by n bytes without returning data.
	Skip(n int64) error
	// CopyN streams exactly n bytes from the cursor into dst.
	CopyN(dst io.Writer, n int64) (int64, error)
	// Position reports the current absolute byte offset.
	Position() int64
}

// StreamSource adapts any io.Reader into a buffered ByteSource.
type StreamSource struct {
	br  *bufio.Reader
	off int64
}

// NewSource wraps r in a buffered sequential source positioned at offset 0.
func NewSource(r io.Reader) *StreamSource {
	return &StreamSource{br: bufio.NewReaderSize(r, sourceBufferSize)}
}

// ReadUntil reads bytes up to but not including delim, bounded by maxLen.
func (s *StreamSource) ReadUntil(delim byte, maxLen int) ([]byte, error) {
	out := make([]byte, 0, min(maxLen, 64))
	for len(out) < maxLen {
		b, err := s.br.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}

			return nil, err
		}

		s.off++
		if b == delim {
			return out, nil
		}

		out = append(out, b)
	}

	return nil, fmt.Errorf("%w: no 0x%02x in %d bytes", ErrDelimiterNotFound, delim, maxLen)
}

// ReadN reads exactly n bytes from the stream.
func (s *StreamSource) ReadN(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(s.br, buf)
	s.off += int64(read)
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// Skip advances the cursor by n bytes.
func (s *StreamSource) Skip(n int64) error {
	for n > 0 {
		chunk := n
		if chunk > skipChunkSize {
			chunk = skipChunkSize
		}

		discarded, err := s.br.Discard(int(chunk))
		s.off += int64(discarded)
		n -= int64(discarded)

		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}

			return err
		}
	}

	return nil
}

// CopyN streams exactly n bytes from the cursor into dst.
func (s *StreamSource) CopyN(dst io.Writer, n int64) (int64, error) {
	written, err := io.CopyN(dst, s.br, n)
	s.off += written
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}

	return written, err
}

// Position reports the current absolute byte offset.
func (s *StreamSource) Position() int64 {
	return s.off
}

// FileSource is a file-backed ByteSource that owns its *os.File.
type FileSource struct {
	StreamSource
	file *os.File
}

// OpenFile opens an archive file as a sequential source. The caller must
// Close it.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	return &FileSource{
		StreamSource: StreamSource{br: bufio.NewReaderSize(f, sourceBufferSize)},
		file:         f,
	}, nil
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}
