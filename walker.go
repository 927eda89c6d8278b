// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// selection decides which records a walk processes and when to stop early.
type selection interface {
	// accept reports whether the record at path is selected and returns the
	// key its handler result is stored under.
	accept(path string) (key string, ok bool)
	// exhausted reports whether every target is satisfied and the walk can
	// stop before the end of the archive.
	exhausted() bool
}

// selectAll accepts every record and never stops early.
type selectAll struct{}

func (selectAll) accept(path string) (string, bool) { return path, true }
func (selectAll) exhausted() bool                   { return false }

// targetSelection accepts records matching a working set of requested paths.
// Matched results are keyed by the originally requested string, and the walk
// stops once the set is drained. First match in caller order wins.
type targetSelection struct {
	remaining     []string
	caseSensitive bool
}

func newTargetSelection(targets []string, caseSensitive bool) *targetSelection {
	remaining := make([]string, len(targets))
	copy(remaining, targets)

	return &targetSelection{remaining: remaining, caseSensitive: caseSensitive}
}

func (s *targetSelection) accept(path string) (string, bool) {
	for i, want := range s.remaining {
		if !s.matches(want, path) {
			continue
		}

		s.remaining = append(s.remaining[:i], s.remaining[i+1:]...)
		return want, true
	}

	return "", false
}

func (s *targetSelection) matches(want, path string) bool {
	if s.caseSensitive {
		return want == path
	}

	return strings.EqualFold(want, path)
}

func (s *targetSelection) exhausted() bool {
	return len(s.remaining) == 0
}

// filterSelection accepts records included by an extract filter and never
// stops early.
type filterSelection struct {
	filter *extractFilter
}

func (s *filterSelection) accept(path string) (string, bool) {
	return path, s.filter.Match(path)
}

func (s *filterSelection) exhausted() bool { return false }

// handlerFunc consumes one selected record. It may read up to header.Size
// bytes from src, which is positioned at header.Offset.
type handlerFunc[T any] func(key string, header *RecordHeader, src ByteSource) (T, error)

// walk drives one pass over the archive: it discards the level directory
// record, then parses each header, runs the selection, invokes the handler
// on selected records, enforces the payload consumption contract, and skips
// to the next record. On error the returned map holds results accumulated
// before the failing record.
func walk[T any](src ByteSource, opts ParseOptions, sel selection, handle handlerFunc[T]) (map[string]T, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	opts.applyDefaults()
	policy, err := newPathPolicy(opts)
	if err != nil {
		return nil, err
	}

	if err := skipLevelRecord(src, policy); err != nil {
		return nil, err
	}

	results := make(map[string]T)
	for !sel.exhausted() {
		header, err := parseRecordHeader(src, policy, false)
		if err != nil {
			return results, err
		}
		if header == nil {
			break
		}

		key, ok := sel.accept(header.Path)
		if !ok {
			if err := skipPayload(src, header, 0); err != nil {
				return results, err
			}
			continue
		}

		value, handleErr := handle(key, header, src)

		consumed := src.Position() - header.Offset
		if consumed > int64(header.Size) {
			return results, fmt.Errorf("%w: entry %s consumed %d of %d bytes",
				ErrHandlerOverrun, header.Path, consumed, header.Size)
		}

		if handleErr != nil {
			return results, handleErr
		}

		if err := skipPayload(src, header, consumed); err != nil {
			return results, err
		}

		// Duplicate paths resolve last-write-wins.
		results[key] = value
	}

	return results, nil
}

// skipLevelRecord parses and discards the distinguished first record holding
// the level directory name.
func skipLevelRecord(src ByteSource, policy *pathPolicy) error {
	header, err := parseRecordHeader(src, policy, true)
	if err != nil {
		return err
	}
	if header == nil {
		return fmt.Errorf("%w: missing level directory record", ErrFormat)
	}

	return skipPayload(src, header, 0)
}

// skipPayload advances the cursor past the unconsumed remainder of a payload.
func skipPayload(src ByteSource, header *RecordHeader, consumed int64) error {
	remaining := int64(header.Size) - consumed
	if remaining <= 0 {
		return nil
	}

	if err := src.Skip(remaining); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: entry %s", ErrTruncatedPayload, header.Path)
		}

		return fmt.Errorf("skip payload of %s: %w", header.Path, err)
	}

	return nil
}
