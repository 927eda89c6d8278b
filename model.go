// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"github.com/woozymasta/pathrules"
	"golang.org/x/text/encoding"
)

// Internal binary layout and format limits.
const (
	signatureLen = 2 // fixed record signature size in bytes
	sizeFieldLen = 4 // little-endian uint32 payload size field
)

// Default option values.
const (
	// DefaultMaxPathLen bounds how many bytes are scanned for a path terminator.
	DefaultMaxPathLen = 256
	// DefaultMaxFileSize bounds one extracted output file (1 GiB).
	DefaultMaxFileSize = 1 << 30
)

// recordSignature is the 2-byte marker starting every archive record.
var recordSignature = [signatureLen]byte{'N', 'F'}

// RecordHeader describes a single parsed archive entry.
type RecordHeader struct {
	// Path is the validated entry path relative to the level directory.
	Path string `json:"path" yaml:"path"`
	// Offset is absolute byte offset of the first payload byte.
	Offset int64 `json:"offset" yaml:"offset"`
	// Size is declared payload size in bytes.
	Size uint32 `json:"size" yaml:"size"`
}

// ExtensionPolicyMode selects how entry extensions are checked.
type ExtensionPolicyMode string

// Extension policy modes.
const (
	// ExtensionPolicyNone disables extension checks.
	ExtensionPolicyNone ExtensionPolicyMode = ""
	// ExtensionPolicyAllow permits only the listed extensions.
	ExtensionPolicyAllow ExtensionPolicyMode = "allow"
	// ExtensionPolicyForbid rejects the listed extensions.
	ExtensionPolicyForbid ExtensionPolicyMode = "forbid"
)

// ExtensionPolicy configures the extension check applied to every entry
// except the level directory record. Extensions are compared without the
// leading dot, case-insensitively.
type ExtensionPolicy struct {
	// Mode selects allow-list, forbidden-list, or no checking.
	Mode ExtensionPolicyMode `json:"mode,omitempty" yaml:"mode,omitempty"`
	// Extensions is the allow-list or forbidden-list, depending on Mode.
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// ParseOptions configures one walk over an archive.
type ParseOptions struct {
	// SourceEncoding is the code page entry paths are stored in.
	// Defaults to NativeEncoding (Windows-1252).
	SourceEncoding encoding.Encoding `json:"-" yaml:"-"`
	// TargetEncoding, when set, transcodes validated paths from
	// SourceEncoding before they are returned. Nil keeps raw bytes.
	TargetEncoding encoding.Encoding `json:"-" yaml:"-"`
	// ExtensionPolicy is the extension check for non-first records.
	ExtensionPolicy ExtensionPolicy `json:"extension_policy,omitzero" yaml:"extension_policy,omitzero"`
	// MaxPathLen bounds bytes scanned before a path terminator must appear.
	MaxPathLen int `json:"max_path_len,omitempty" yaml:"max_path_len,omitempty"`
	// ForceUnixSeparator rewrites backslashes to forward slashes in
	// returned paths. Validation always runs on the slash-normalized form.
	ForceUnixSeparator bool `json:"force_unix_separator,omitempty" yaml:"force_unix_separator,omitempty"`
	// RejectDotSegments rejects paths containing a "." component.
	RejectDotSegments bool `json:"reject_dot_segments,omitempty" yaml:"reject_dot_segments,omitempty"`
	// RejectDotInLevelName rejects a level directory record containing ".".
	RejectDotInLevelName bool `json:"reject_dot_in_level_name,omitempty" yaml:"reject_dot_in_level_name,omitempty"`
}

// ExtractFileMode controls output file open behavior during extraction.
type ExtractFileMode string

// Output file creation policies for extraction.
const (
	// ExtractFileModeAuto first tries create-only, then falls back to truncate for existing files.
	ExtractFileModeAuto ExtractFileMode = "auto"
	// ExtractFileModeTruncate opens existing files with truncate and creates missing files.
	ExtractFileModeTruncate ExtractFileMode = "truncate"
	// ExtractFileModeCreateOnly creates files only when absent and fails on existing files.
	ExtractFileModeCreateOnly ExtractFileMode = "create_only"
)

// ExtractOptions configures extraction behavior.
type ExtractOptions struct {
	// OnEntryDone is called after one entry is fully written to disk.
	OnEntryDone func(header RecordHeader, written int64, outputPath string) `json:"-" yaml:"-"`
	// PathMapper rewrites the result key to an output-relative path.
	// Nil means identity.
	PathMapper func(key string) string `json:"-" yaml:"-"`
	// Filter defines ordered path rules selecting which entries ExtractAll
	// writes; nil or empty extracts everything.
	Filter []pathrules.Rule `json:"filter,omitempty" yaml:"filter,omitempty"`
	// FilterMatcherOptions control extract filter rule matching.
	FilterMatcherOptions pathrules.MatcherOptions `json:"filter_matcher_options,omitzero" yaml:"filter_matcher_options,omitzero"`
	// FileMode controls output file creation policy.
	FileMode ExtractFileMode `json:"file_mode,omitempty" yaml:"file_mode,omitempty"`
	// MaxFileSize rejects entries whose declared size exceeds this many bytes.
	MaxFileSize int64 `json:"max_file_size,omitempty" yaml:"max_file_size,omitempty"`
}

// applyDefaults fills zero-valued parse options with defaults.
func (opts *ParseOptions) applyDefaults() {
	if opts.MaxPathLen <= 0 {
		opts.MaxPathLen = DefaultMaxPathLen
	}

	if opts.SourceEncoding == nil {
		opts.SourceEncoding = NativeEncoding
	}
}

// applyDefaults fills zero-valued extract options with defaults.
func (opts *ExtractOptions) applyDefaults() {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}

	if opts.FileMode == "" {
		opts.FileMode = ExtractFileModeAuto
	}

	if opts.FilterMatcherOptions == (pathrules.MatcherOptions{}) {
		opts.FilterMatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		}
	}

	if opts.FilterMatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.FilterMatcherOptions.DefaultAction = pathrules.ActionExclude
	}
}
