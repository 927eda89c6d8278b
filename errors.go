// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"errors"
	"fmt"
)

// Error categories for archive operations. Specific errors below wrap one of
// these, so callers can match either the category or the exact condition with
// errors.Is.
var (
	// ErrFormat means the archive bytes are corrupt or malformed.
	ErrFormat = errors.New("malformed knytt.bin archive")
	// ErrPathPolicy means an entry path was rejected as unsafe or disallowed.
	ErrPathPolicy = errors.New("entry path rejected by policy")
	// ErrResourceLimit means an operation would exceed a configured limit.
	ErrResourceLimit = errors.New("resource limit exceeded")
	// ErrHandlerOverrun means a payload handler read past the declared entry size.
	ErrHandlerOverrun = errors.New("handler read past declared payload size")
)

// Format errors.
var (
	// ErrBadSignature means a record signature is missing, partial, or not "NF".
	ErrBadSignature = fmt.Errorf("%w: bad record signature", ErrFormat)
	// ErrUnterminatedPath means no NUL terminator was found within the path length bound.
	ErrUnterminatedPath = fmt.Errorf("%w: path terminator not found", ErrFormat)
	// ErrTruncatedSize means the archive ended inside a record size field.
	ErrTruncatedSize = fmt.Errorf("%w: truncated size field", ErrFormat)
	// ErrTruncatedPayload means the archive ended inside a record payload region.
	ErrTruncatedPayload = fmt.Errorf("%w: truncated payload", ErrFormat)
)

// Path policy errors.
var (
	// ErrEmptyPath means a record stored an empty path.
	ErrEmptyPath = fmt.Errorf("%w: empty path", ErrPathPolicy)
	// ErrTrailingSlash means a record path ends with a separator.
	ErrTrailingSlash = fmt.Errorf("%w: path ends with separator", ErrPathPolicy)
	// ErrAbsolutePath means a record path is absolute or carries a drive prefix.
	ErrAbsolutePath = fmt.Errorf("%w: absolute path", ErrPathPolicy)
	// ErrPathTraversal means a record path contains a ".." component.
	ErrPathTraversal = fmt.Errorf("%w: path traversal component", ErrPathPolicy)
	// ErrDotSegment means a record path contains a "." component and the
	// options reject those.
	ErrDotSegment = fmt.Errorf(`%w: "." path component`, ErrPathPolicy)
	// ErrLevelNameNested means the level directory record contains a separator.
	ErrLevelNameNested = fmt.Errorf("%w: level directory name contains separator", ErrPathPolicy)
	// ErrLevelNameDot means the level directory record contains a dot and the
	// options reject those.
	ErrLevelNameDot = fmt.Errorf("%w: level directory name contains dot", ErrPathPolicy)
	// ErrExtensionNotAllowed means an entry extension is absent from the allow-list.
	ErrExtensionNotAllowed = fmt.Errorf("%w: extension not in allow-list", ErrPathPolicy)
	// ErrExtensionForbidden means an entry extension is present in the forbidden-list.
	ErrExtensionForbidden = fmt.Errorf("%w: forbidden extension", ErrPathPolicy)
	// ErrEncodePath means a validated path is not representable in the target encoding.
	ErrEncodePath = fmt.Errorf("%w: path not representable in target encoding", ErrPathPolicy)
	// ErrInvalidExtractPath means a mapped output path is invalid for the destination root.
	ErrInvalidExtractPath = fmt.Errorf("%w: invalid extract path", ErrPathPolicy)
)

// Resource limit errors.
var (
	// ErrFileTooLarge means an entry payload exceeds the configured maximum output file size.
	ErrFileTooLarge = fmt.Errorf("%w: entry exceeds maximum output file size", ErrResourceLimit)
)

// Level validation errors.
var (
	// ErrMissingWorldIni means the archive contains no World.ini entry.
	ErrMissingWorldIni = errors.New("level is missing World.ini")
	// ErrMissingMapBin means the archive contains no Map.bin entry.
	ErrMissingMapBin = errors.New("level is missing Map.bin")
)

// Source and configuration errors.
var (
	// ErrNilSource means the byte source is nil.
	ErrNilSource = errors.New("source is nil")
	// ErrDelimiterNotFound means ReadUntil hit its length bound before the delimiter.
	ErrDelimiterNotFound = errors.New("delimiter not found within length bound")
	// ErrSizeOverflow means an entry size does not fit platform limits for in-memory reads.
	ErrSizeOverflow = errors.New("entry size exceeds platform limits")
	// ErrInvalidFilterPattern means one or more extract filter rules are invalid.
	ErrInvalidFilterPattern = errors.New("invalid extract filter rules")
	// ErrInvalidExtensionPolicy means the extension policy configuration is malformed.
	ErrInvalidExtensionPolicy = errors.New("invalid extension policy")
)
