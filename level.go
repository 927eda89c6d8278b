// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"errors"
	"strings"
)

// Required level files checked case-insensitively against full entry paths.
const (
	levelWorldIni = "World.ini"
	levelMapBin   = "Map.bin"
)

// ValidateLevel walks the whole archive and verifies it contains both
// World.ini and Map.bin, compared case-insensitively. It returns the full
// entry listing on success and ErrMissingWorldIni or ErrMissingMapBin
// (joined when both are absent) otherwise.
func ValidateLevel(src ByteSource, opts ParseOptions) (map[string]RecordHeader, error) {
	entries, err := ListAll(src, opts)
	if err != nil {
		return nil, err
	}

	var hasWorldIni, hasMapBin bool
	for path := range entries {
		normalized := NormalizePath(path)
		if strings.EqualFold(normalized, levelWorldIni) {
			hasWorldIni = true
		}
		if strings.EqualFold(normalized, levelMapBin) {
			hasMapBin = true
		}
	}

	var missing []error
	if !hasWorldIni {
		missing = append(missing, ErrMissingWorldIni)
	}
	if !hasMapBin {
		missing = append(missing, ErrMissingMapBin)
	}
	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}

	return entries, nil
}

// IsValidLevel reports whether the archive parses and contains the required
// level files. Validation errors of any kind collapse to false.
func IsValidLevel(src ByteSource, opts ParseOptions) bool {
	_, err := ValidateLevel(src, opts)
	return err == nil
}
