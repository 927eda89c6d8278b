// SPDX-License-Identifier: MIT
// Copyright (c) 2026 SpindlyMist
// Source: github.com/spindlymist/knyttbin

package knyttbin

import (
	"fmt"

	"github.com/woozymasta/pathrules"
)

// extractFilter holds compiled path rules selecting entries for extraction.
// A nil filter matches everything.
type extractFilter struct {
	matcher *pathrules.Matcher
}

// newExtractFilter compiles extract filter rules. Empty rule sets compile to
// a match-all filter.
func newExtractFilter(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*extractFilter, error) {
	rules = normalizeFilterRules(rules)
	if len(rules) == 0 {
		return &extractFilter{}, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidFilterPattern, err)
	}

	return &extractFilter{matcher: matcher}, nil
}

// normalizeFilterRules normalizes rule patterns and drops empty patterns.
func normalizeFilterRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := NormalizePath(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Match reports whether path is selected by the filter.
func (f *extractFilter) Match(path string) bool {
	if f == nil || f.matcher == nil {
		return true
	}

	candidate := NormalizePath(path)
	if candidate == "" {
		return false
	}

	return f.matcher.Included(candidate, false)
}
