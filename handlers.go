// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// handleHeader returns the record metadata and consumes no payload bytes.
func handleHeader(_ string, header *RecordHeader, _ ByteSource) (RecordHeader, error) {
	return *header, nil
}

// handleBytes reads the full declared payload into memory.
func handleBytes(_ string, header *RecordHeader, src ByteSource) ([]byte, error) {
	size, err := checkedUint32ToInt(header.Size)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", header.Path, err)
	}

	if size == 0 {
		return []byte{}, nil
	}

	data, err := src.ReadN(size)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: entry %s", ErrTruncatedPayload, header.Path)
		}

		return nil, fmt.Errorf("read entry %s: %w", header.Path, err)
	}

	return data, nil
}

// extractHandler streams selected payloads into files under dstRootAbs.
// The size cap is checked before any file is created.
func extractHandler(dstRootAbs string, opts ExtractOptions) handlerFunc[RecordHeader] {
	return func(key string, header *RecordHeader, src ByteSource) (RecordHeader, error) {
		if int64(header.Size) > opts.MaxFileSize {
			return RecordHeader{}, fmt.Errorf("%w: entry %s is %d bytes (limit %d)",
				ErrFileTooLarge, header.Path, header.Size, opts.MaxFileSize)
		}

		mapped := key
		if opts.PathMapper != nil {
			mapped = opts.PathMapper(key)
		}

		relPath, err := normalizeOutputPath(mapped)
		if err != nil {
			return RecordHeader{}, fmt.Errorf("entry %s: %w", header.Path, err)
		}

		outPath := filepath.Join(dstRootAbs, filepath.FromSlash(relPath))
		if dir := filepath.Dir(outPath); dir != dstRootAbs {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return RecordHeader{}, fmt.Errorf("create output directory %s: %w", dir, err)
			}
		}

		if err := writeEntryFile(src, header, outPath, opts.FileMode); err != nil {
			return RecordHeader{}, err
		}

		if opts.OnEntryDone != nil {
			opts.OnEntryDone(*header, int64(header.Size), outPath)
		}

		return *header, nil
	}
}

// writeEntryFile streams exactly header.Size bytes from the cursor into a
// file at outPath, closing it on every exit path.
func writeEntryFile(src ByteSource, header *RecordHeader, outPath string, mode ExtractFileMode) error {
	file, err := openExtractFile(outPath, mode)
	if err != nil {
		return fmt.Errorf("open %s: %w", header.Path, err)
	}

	_, copyErr := src.CopyN(file, int64(header.Size))
	closeErr := file.Close()

	if copyErr != nil {
		if errors.Is(copyErr, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: entry %s", ErrTruncatedPayload, header.Path)
		}

		return fmt.Errorf("write %s: %w", header.Path, copyErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", header.Path, closeErr)
	}

	return nil
}

// openExtractFile opens output path according to selected extract file mode.
func openExtractFile(path string, mode ExtractFileMode) (*os.File, error) {
	switch mode {
	case ExtractFileModeAuto:
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			return file, nil
		}

		if !os.IsExist(err) {
			return nil, err
		}

		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	case ExtractFileModeTruncate:
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	case ExtractFileModeCreateOnly:
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	default:
		return nil, fmt.Errorf("unknown extract file mode %q", mode)
	}
}

// checkedUint32ToInt converts uint32 to int with platform-safe overflow check.
func checkedUint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, ErrSizeOverflow
	}

	return int(v), nil
}
