// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// NativeEncoding is the code page entry paths are stored in inside every
// .knytt.bin archive. It is a single-byte Western European page, so every
// raw path decodes; only re-encoding into a narrower target can fail.
var NativeEncoding encoding.Encoding = charmap.Windows1252

// EncodingUTF8 is the usual target for TargetEncoding; validated paths come
// back as plain UTF-8 Go strings.
var EncodingUTF8 encoding.Encoding = unicode.UTF8

// transcodePath converts a validated raw path from the source code page to
// the target encoding. A nil target keeps the raw bytes verbatim.
func transcodePath(raw []byte, from, to encoding.Encoding) (string, error) {
	if to == nil {
		return string(raw), nil
	}

	if from == nil {
		from = NativeEncoding
	}

	decoded, err := from.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: decode %q: %w", ErrEncodePath, raw, err)
	}

	if to == EncodingUTF8 {
		return string(decoded), nil
	}

	out, err := to.NewEncoder().Bytes(decoded)
	if err != nil {
		return "", fmt.Errorf("%w: encode %q: %w", ErrEncodePath, decoded, err)
	}

	return string(out), nil
}
