//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 SellBridge Authors
//
// This file is part of SellBridge.
//
// SellBridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SellBridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with SellBridge. If not, see https://www.gnu.org/licenses/.

package detect

import (
	"sort"
	"strings"
)

// DefaultDelimiters is the candidate set tried in order. Order matters: ties
// in the header-line count resolve to the earlier candidate.
var DefaultDelimiters = []rune{',', '\t', ';', '|'}

// DialectOptions configures delimiter detection.
type DialectOptions struct {
	// Candidates is the ordered delimiter candidate set.
	Candidates []rune
	// SampleLines is how many lines beyond the header are checked for
	// agreement with the header's delimiter count.
	SampleLines int
	// MinAgreement is the fraction of sampled lines that must match the
	// header count before a candidate is accepted.
	MinAgreement float64
}

// DialectOption is a functional option for DetectDelimiter.
type DialectOption func(*DialectOptions)

// WithDelimiterCandidates overrides the candidate set.
func WithDelimiterCandidates(candidates []rune) DialectOption {
	return func(o *DialectOptions) { o.Candidates = append([]rune(nil), candidates...) }
}

// WithSampleLines sets how many data lines are sampled for verification.
func WithSampleLines(n int) DialectOption {
	return func(o *DialectOptions) { o.SampleLines = n }
}

// WithMinAgreement sets the required sample agreement ratio.
func WithMinAgreement(ratio float64) DialectOption {
	return func(o *DialectOptions) { o.MinAgreement = ratio }
}

// DefaultDialectOptions returns the option values used when none are given.
func DefaultDialectOptions() DialectOptions {
	return DialectOptions{
		Candidates:   DefaultDelimiters,
		SampleLines:  5,
		MinAgreement: 0.7,
	}
}

// DetectDelimiter infers the delimiter of decoded CSV text. Each candidate is
// counted on the header line outside quoted regions (a simple quote-toggle
// scan, not a full RFC 4180 state machine); the highest count wins, then the
// choice is verified against a handful of sample lines. When fewer than
// MinAgreement of the samples match the header's count, the next-best
// candidate is tried. A usable delimiter always comes back; the fallback
// is ','.
func DetectDelimiter(text string, options ...DialectOption) rune {
	opts := DefaultDialectOptions()
	for _, opt := range options {
		opt(&opts)
	}
	if len(opts.Candidates) == 0 {
		opts.Candidates = DefaultDelimiters
	}

	lines := sampleLines(text, 1+opts.SampleLines)
	if len(lines) == 0 {
		return ','
	}
	header := lines[0]
	samples := lines[1:]

	type score struct {
		delim rune
		count int
		order int
	}
	scores := make([]score, 0, len(opts.Candidates))
	for i, cand := range opts.Candidates {
		scores = append(scores, score{delim: cand, count: countOutsideQuotes(header, cand), order: i})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].count != scores[j].count {
			return scores[i].count > scores[j].count
		}
		return scores[i].order < scores[j].order
	})

	if scores[0].count == 0 {
		return ','
	}

	for _, s := range scores {
		if s.count == 0 {
			break
		}
		if agrees(samples, s.delim, s.count, opts.MinAgreement) {
			return s.delim
		}
	}
	// No candidate verified; trust the header line.
	return scores[0].delim
}

// agrees reports whether enough sample lines carry the same delimiter count
// as the header.
func agrees(samples []string, delim rune, headerCount int, minAgreement float64) bool {
	if len(samples) == 0 {
		return true
	}
	matches := 0
	for _, line := range samples {
		if countOutsideQuotes(line, delim) == headerCount {
			matches++
		}
	}
	return float64(matches)/float64(len(samples)) >= minAgreement
}

// countOutsideQuotes counts occurrences of delim that are not inside an open
// quote region.
func countOutsideQuotes(line string, delim rune) int {
	count := 0
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			count++
		}
	}
	return count
}

// sampleLines returns up to n non-empty physical lines.
func sampleLines(text string, n int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == n {
			break
		}
	}
	return lines
}
