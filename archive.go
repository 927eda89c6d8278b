// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"fmt"
	"os"
	"path/filepath"
)

// ListAll walks the whole archive and returns metadata for every entry,
// keyed by entry path. Duplicate paths resolve last-write-wins.
func ListAll(src ByteSource, opts ParseOptions) (map[string]RecordHeader, error) {
	results, err := walk(src, opts, selectAll{}, handleHeader)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Find walks the archive until every requested path is found or the archive
// ends, and returns metadata keyed by the requested strings, not the
// archive's own spelling. The source is left positioned right after the last
// matched record. On error the returned map holds entries found before the
// failure.
func Find(src ByteSource, targets []string, caseSensitive bool, opts ParseOptions) (map[string]RecordHeader, error) {
	return walk(src, opts, newTargetSelection(targets, caseSensitive), handleHeader)
}

// FindOne looks up a single entry. It returns nil without error when the
// archive does not contain the path.
func FindOne(src ByteSource, target string, caseSensitive bool, opts ParseOptions) (*RecordHeader, error) {
	results, err := Find(src, []string{target}, caseSensitive, opts)
	if err != nil {
		return nil, err
	}

	header, ok := results[target]
	if !ok {
		return nil, nil
	}

	return &header, nil
}

// ReadContents walks the archive until every requested path is found and
// returns full payloads keyed by the requested strings. On error the
// returned map holds payloads read before the failure.
func ReadContents(src ByteSource, targets []string, caseSensitive bool, opts ParseOptions) (map[string][]byte, error) {
	return walk(src, opts, newTargetSelection(targets, caseSensitive), handleBytes)
}

// ExtractAll writes every entry selected by the extract filter into dstDir
// and returns metadata for the written entries keyed by entry path.
func ExtractAll(src ByteSource, dstDir string, opts ParseOptions, extractOpts ExtractOptions) (map[string]RecordHeader, error) {
	extractOpts.applyDefaults()

	filter, err := newExtractFilter(extractOpts.Filter, extractOpts.FilterMatcherOptions)
	if err != nil {
		return nil, err
	}

	dstRootAbs, err := prepareExtractRoot(dstDir)
	if err != nil {
		return nil, err
	}

	results, err := walk(src, opts, &filterSelection{filter: filter}, extractHandler(dstRootAbs, extractOpts))
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Extract writes the requested entries into dstDir and returns metadata
// keyed by the requested strings. The output path for each entry derives
// from the requested string (through PathMapper when set), so callers
// control output casing regardless of the archive's own spelling.
func Extract(src ByteSource, targets []string, dstDir string, caseSensitive bool, opts ParseOptions, extractOpts ExtractOptions) (map[string]RecordHeader, error) {
	extractOpts.applyDefaults()

	dstRootAbs, err := prepareExtractRoot(dstDir)
	if err != nil {
		return nil, err
	}

	sel := newTargetSelection(targets, caseSensitive)
	return walk(src, opts, sel, extractHandler(dstRootAbs, extractOpts))
}

// ReadLevelName parses only the level directory record and returns its
// validated name, leaving the source positioned at the second record.
func ReadLevelName(src ByteSource, opts ParseOptions) (string, error) {
	if src == nil {
		return "", ErrNilSource
	}

	opts.applyDefaults()
	policy, err := newPathPolicy(opts)
	if err != nil {
		return "", err
	}

	header, err := parseRecordHeader(src, policy, true)
	if err != nil {
		return "", err
	}
	if header == nil {
		return "", fmt.Errorf("%w: missing level directory record", ErrFormat)
	}

	if err := skipPayload(src, header, 0); err != nil {
		return "", err
	}

	return header.Path, nil
}

// prepareExtractRoot resolves and creates the extraction destination root.
func prepareExtractRoot(dstDir string) (string, error) {
	dstRootAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}

	if err := os.MkdirAll(dstRootAbs, 0o750); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	return dstRootAbs, nil
}
