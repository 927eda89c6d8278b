// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"fmt"
	"path"
	"strings"

	"github.com/woozymasta/pathrules"
)

// pathPolicy holds parse options with the compiled extension matcher for
// one walk.
type pathPolicy struct {
	ext  *pathrules.Matcher
	opts ParseOptions
}

// newPathPolicy compiles extension policy rules for repeated validation.
func newPathPolicy(opts ParseOptions) (*pathPolicy, error) {
	p := &pathPolicy{opts: opts}

	mode := opts.ExtensionPolicy.Mode
	if mode != ExtensionPolicyNone && mode != ExtensionPolicyAllow && mode != ExtensionPolicyForbid {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidExtensionPolicy, mode)
	}

	rules := extensionRules(opts.ExtensionPolicy)
	if len(rules) == 0 {
		return p, nil
	}

	defaultAction := pathrules.ActionExclude
	if mode == ExtensionPolicyForbid {
		defaultAction = pathrules.ActionInclude
	}

	matcher, err := pathrules.NewMatcher(rules, pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   defaultAction,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidExtensionPolicy, err)
	}

	p.ext = matcher
	return p, nil
}

// extensionRules converts an extension list to ordered path rules.
func extensionRules(policy ExtensionPolicy) []pathrules.Rule {
	action := pathrules.ActionInclude
	if policy.Mode == ExtensionPolicyForbid {
		action = pathrules.ActionExclude
	}

	rules := make([]pathrules.Rule, 0, len(policy.Extensions))
	for _, ext := range policy.Extensions {
		ext = strings.TrimSpace(strings.TrimPrefix(ext, "."))
		if ext == "" {
			continue
		}

		rules = append(rules, pathrules.Rule{
			Action:  action,
			Pattern: "*." + ext,
		})
	}

	return rules
}

// validate runs the full path policy on one raw record path and returns the
// path in its output form. Validation always runs on the slash-normalized
// comparison form; the output keeps original separators unless
// ForceUnixSeparator is set.
func (p *pathPolicy) validate(raw []byte, isLevelRecord bool) (string, error) {
	if len(raw) == 0 {
		return "", ErrEmptyPath
	}

	rawPath := string(raw)
	comparison := strings.ReplaceAll(rawPath, `\`, "/")

	if strings.HasSuffix(comparison, "/") {
		return "", fmt.Errorf("%w: %q", ErrTrailingSlash, rawPath)
	}

	if strings.HasPrefix(comparison, "/") || hasWindowsAbsDrivePrefix(comparison) {
		return "", fmt.Errorf("%w: %q", ErrAbsolutePath, rawPath)
	}

	for _, part := range strings.Split(comparison, "/") {
		switch part {
		case "..":
			return "", fmt.Errorf("%w: %q", ErrPathTraversal, rawPath)
		case ".":
			if p.opts.RejectDotSegments {
				return "", fmt.Errorf("%w: %q", ErrDotSegment, rawPath)
			}
		}
	}

	if isLevelRecord {
		if strings.Contains(comparison, "/") {
			return "", fmt.Errorf("%w: %q", ErrLevelNameNested, rawPath)
		}

		if p.opts.RejectDotInLevelName && strings.Contains(comparison, ".") {
			return "", fmt.Errorf("%w: %q", ErrLevelNameDot, rawPath)
		}
	} else if err := p.checkExtension(comparison); err != nil {
		return "", fmt.Errorf("%w: %q", err, rawPath)
	}

	out := rawPath
	if p.opts.ForceUnixSeparator {
		out = comparison
	}

	return transcodePath([]byte(out), p.opts.SourceEncoding, p.opts.TargetEncoding)
}

// checkExtension applies the configured extension policy to a normalized path.
func (p *pathPolicy) checkExtension(normalized string) error {
	switch p.opts.ExtensionPolicy.Mode {
	case ExtensionPolicyAllow:
		// An empty allow-list permits nothing.
		if p.ext == nil || !p.ext.Included(normalized, false) {
			return ErrExtensionNotAllowed
		}
	case ExtensionPolicyForbid:
		if p.ext != nil && !p.ext.Included(normalized, false) {
			return ErrExtensionForbidden
		}
	}

	return nil
}

// NormalizePath converts an archive path to normalized slash-separated form.
// It trims spaces, accepts both "/" and "\", removes leading "./" and "/",
// and cleans "." segments.
func NormalizePath(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, `\`, "/")
	raw = strings.TrimPrefix(raw, "./")
	raw = strings.TrimPrefix(raw, "/")
	raw = path.Clean("/" + raw)
	raw = strings.TrimPrefix(raw, "/")
	if raw == "." {
		return ""
	}

	return strings.TrimSuffix(raw, "/")
}

// normalizeOutputPath normalizes a mapped output-relative path and rejects
// absolute or traversal inputs. Repeated separators and "." segments collapse.
func normalizeOutputPath(mapped string) (string, error) {
	raw := strings.TrimSpace(mapped)
	if raw == "" {
		return "", fmt.Errorf("%w: empty output path", ErrInvalidExtractPath)
	}
	if strings.ContainsRune(raw, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtractPath, mapped)
	}

	raw = strings.ReplaceAll(raw, `\`, "/")
	if strings.HasPrefix(raw, "/") || hasWindowsAbsDrivePrefix(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtractPath, mapped)
	}

	parts := strings.Split(raw, "/")
	cleanParts := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			return "", fmt.Errorf("%w: %q", ErrInvalidExtractPath, mapped)
		default:
			cleanParts = append(cleanParts, part)
		}
	}
	if len(cleanParts) == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtractPath, mapped)
	}

	return strings.Join(cleanParts, "/"), nil
}

// hasWindowsAbsDrivePrefix reports whether path starts with drive-root prefix like C:/.
func hasWindowsAbsDrivePrefix(path string) bool {
	if len(path) < 3 {
		return false
	}

	return isASCIIAlpha(path[0]) && path[1] == ':' && path[2] == '/'
}

// isASCIIAlpha reports whether byte is ASCII latin letter.
func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
