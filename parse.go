// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// parseRecordHeader parses one record header off the source cursor. It
// returns (nil, nil) when the stream ends cleanly at a record boundary, which
// is the only non-error way an archive terminates. On return the cursor sits
// on the first payload byte.
func parseRecordHeader(src ByteSource, policy *pathPolicy, isLevelRecord bool) (*RecordHeader, error) {
	sig, err := src.ReadN(signatureLen)
	if err != nil {
		// A clean EOF at a record boundary ends the archive; a partial
		// signature is corruption.
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated signature", ErrBadSignature)
		}

		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("read signature: %w", err)
	}

	if sig[0] != recordSignature[0] || sig[1] != recordSignature[1] {
		return nil, fmt.Errorf("%w: got %q", ErrBadSignature, sig)
	}

	rawPath, err := src.ReadUntil(0, policy.opts.MaxPathLen)
	if err != nil {
		if errors.Is(err, ErrDelimiterNotFound) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %w", ErrUnterminatedPath, err)
		}

		return nil, fmt.Errorf("read path: %w", err)
	}

	entryPath, err := policy.validate(rawPath, isLevelRecord)
	if err != nil {
		return nil, err
	}

	sizeField, err := src.ReadN(sizeFieldLen)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: entry %q", ErrTruncatedSize, entryPath)
		}

		return nil, fmt.Errorf("read size: %w", err)
	}

	return &RecordHeader{
		Path:   entryPath,
		Size:   binary.LittleEndian.Uint32(sizeField),
		Offset: src.Position(),
	}, nil
}
