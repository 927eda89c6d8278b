// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

// File-path convenience wrappers. Each opens the archive, runs one walk
// operation, and closes the file.

// ListAllFile opens an archive by path and returns metadata for every entry.
func ListAllFile(path string, opts ParseOptions) (map[string]RecordHeader, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	return ListAll(src, opts)
}

// FindFile opens an archive by path and looks up the requested entries.
func FindFile(path string, targets []string, caseSensitive bool, opts ParseOptions) (map[string]RecordHeader, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	return Find(src, targets, caseSensitive, opts)
}

// ReadContentsFile opens an archive by path and reads the requested payloads.
func ReadContentsFile(path string, targets []string, caseSensitive bool, opts ParseOptions) (map[string][]byte, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	return ReadContents(src, targets, caseSensitive, opts)
}

// ExtractAllFile opens an archive by path and extracts every selected entry
// into dstDir.
func ExtractAllFile(path, dstDir string, opts ParseOptions, extractOpts ExtractOptions) (map[string]RecordHeader, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	return ExtractAll(src, dstDir, opts, extractOpts)
}

// ValidateLevelFile opens an archive by path and runs the level validity check.
func ValidateLevelFile(path string, opts ParseOptions) (map[string]RecordHeader, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	return ValidateLevel(src, opts)
}

// IsValidLevelFile reports whether the archive at path is a valid level.
// Open and validation errors of any kind collapse to false.
func IsValidLevelFile(path string, opts ParseOptions) bool {
	src, err := OpenFile(path)
	if err != nil {
		return false
	}
	defer func() { _ = src.Close() }()

	return IsValidLevel(src, opts)
}

// ReadLevelNameFile opens an archive by path and returns the level
// directory name from its first record.
func ReadLevelNameFile(path string, opts ParseOptions) (string, error) {
	src, err := OpenFile(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	return ReadLevelName(src, opts)
}
