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

package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sellbridge/sellbridge/detect"
)

// Package parse turns uploaded marketplace files into structure: logical rows
// of fields, a header set, and a fingerprint that recognizes a previously
// configured template on later uploads.

// Default resource limits for untrusted uploads. Enforced before any
// proportional allocation happens.
const (
	DefaultMaxBytes      = 10 << 20 // 10 MiB
	DefaultMaxRows       = 5000
	DefaultMaxSampleRows = 5
)

// Fatal ingestion errors. Nothing useful can be salvaged from these, so
// Analyze aborts instead of degrading.
var (
	ErrTooLarge    = errors.New("input exceeds size limit")
	ErrTooManyRows = errors.New("input exceeds row limit")
	ErrEmptyInput  = errors.New("input is empty")
	ErrNoHeader    = errors.New("first line is empty, no header row")
	ErrNoDataRows  = errors.New("no data rows after header")
)

// AnalyzerError wraps structured error information for the analyzer.
type AnalyzerError struct {
	Op  string
	Err error
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("analyzer %s: %v", e.Op, e.Err)
}

func (e *AnalyzerError) Unwrap() error {
	return e.Err
}

// ParseResult summarizes the structure of one uploaded file. It is
// JSON-serializable and may be persisted keyed by Fingerprint so a later
// upload of the same template is recognized without re-configuration.
type ParseResult struct {
	Headers         []string   `json:"headers"`
	Delimiter       string     `json:"delimiter"`
	Encoding        string     `json:"encoding"`
	LineCount       int        `json:"lineCount"`
	Fingerprint     string     `json:"fingerprint"`
	HasQuotedFields bool       `json:"hasQuotedFields"`
	IsConsistent    bool       `json:"isConsistent"`
	SampleRows      [][]string `json:"sampleRows"`
	// Confidence is the encoding detector's confidence, 0-100.
	Confidence int `json:"confidence"`
}

// AnalyzeOptions configures structural analysis. Zero values fall back to the
// package defaults, so callers can override a single knob.
type AnalyzeOptions struct {
	// MaxBytes caps the raw input size.
	MaxBytes int
	// MaxRows caps the number of physical input lines.
	MaxRows int
	// MaxSampleRows caps how many data rows ParseResult carries.
	MaxSampleRows int
	// StrictValidation enables the per-row field-count consistency check.
	StrictValidation bool
	// Delimiters overrides the delimiter candidate set.
	Delimiters []rune
	// DeclaredEncoding is a caller-supplied encoding hint.
	DeclaredEncoding string
}

// DefaultAnalyzeOptions returns the limits and candidates used for untrusted
// uploads.
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		MaxBytes:      DefaultMaxBytes,
		MaxRows:       DefaultMaxRows,
		MaxSampleRows: DefaultMaxSampleRows,
	}
}

func (o *AnalyzeOptions) fillDefaults() {
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.MaxRows <= 0 {
		o.MaxRows = DefaultMaxRows
	}
	if o.MaxSampleRows <= 0 {
		o.MaxSampleRows = DefaultMaxSampleRows
	}
}

// Analyze runs the full structural analysis chain on a raw upload buffer:
// size guard, encoding detection, row guard, delimiter detection,
// tokenization, and fingerprinting.
func Analyze(data []byte, opts AnalyzeOptions) (*ParseResult, error) {
	result, _, err := Parse(data, opts)
	return result, err
}

// Parse is Analyze plus the tokenized data rows, for callers that go on to
// consume the records (see readers.CSVSource).
func Parse(data []byte, opts AnalyzeOptions) (*ParseResult, [][]string, error) {
	opts.fillDefaults()

	if len(data) == 0 {
		return nil, nil, &AnalyzerError{Op: "read", Err: ErrEmptyInput}
	}
	if len(data) > opts.MaxBytes {
		return nil, nil, &AnalyzerError{
			Op:  "limit",
			Err: fmt.Errorf("%w: input is %d bytes, limit is %d", ErrTooLarge, len(data), opts.MaxBytes),
		}
	}

	enc := detect.DetectEncoding(data, detect.WithDeclaredEncoding(opts.DeclaredEncoding))
	result, rows, err := parseText(enc.Text, enc.Encoding, opts)
	if err != nil {
		return nil, nil, err
	}
	result.Confidence = enc.Confidence
	return result, rows, nil
}

// AnalyzeText analyzes pre-decoded text. encoding is the tag recorded in the
// result and fingerprint; pass detect.EncodingUTF8 when unknown.
func AnalyzeText(text, encoding string, opts AnalyzeOptions) (*ParseResult, error) {
	opts.fillDefaults()
	if len(text) > opts.MaxBytes {
		return nil, &AnalyzerError{
			Op:  "limit",
			Err: fmt.Errorf("%w: input is %d bytes, limit is %d", ErrTooLarge, len(text), opts.MaxBytes),
		}
	}
	result, _, err := parseText(text, encoding, opts)
	if err != nil {
		return nil, err
	}
	result.Confidence = 100
	return result, nil
}

func parseText(text, encoding string, opts AnalyzeOptions) (*ParseResult, [][]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, &AnalyzerError{Op: "read", Err: ErrEmptyInput}
	}

	// Row guard on physical lines, before any row structures are built. A
	// trailing newline terminates the last line rather than starting one.
	if lines := strings.Count(strings.TrimSuffix(text, "\n"), "\n") + 1; lines > opts.MaxRows {
		return nil, nil, &AnalyzerError{
			Op:  "limit",
			Err: fmt.Errorf("%w: input has %d lines, limit is %d", ErrTooManyRows, lines, opts.MaxRows),
		}
	}

	firstLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		firstLine = text[:i]
	}
	if strings.TrimSpace(strings.TrimSuffix(firstLine, "\r")) == "" {
		return nil, nil, &AnalyzerError{Op: "header", Err: ErrNoHeader}
	}

	var dialectOpts []detect.DialectOption
	if len(opts.Delimiters) > 0 {
		dialectOpts = append(dialectOpts, detect.WithDelimiterCandidates(opts.Delimiters))
	}
	delimiter := detect.DetectDelimiter(text, dialectOpts...)

	rows := SplitRows(text, delimiter)
	if len(rows) == 0 {
		return nil, nil, &AnalyzerError{Op: "tokenize", Err: ErrEmptyInput}
	}
	headers := rows[0]
	dataRows := rows[1:]
	if len(dataRows) == 0 {
		return nil, nil, &AnalyzerError{Op: "tokenize", Err: ErrNoDataRows}
	}

	sampleCount := opts.MaxSampleRows
	if sampleCount > len(dataRows) {
		sampleCount = len(dataRows)
	}
	samples := make([][]string, sampleCount)
	copy(samples, dataRows[:sampleCount])

	consistent := true
	if opts.StrictValidation {
		for _, row := range samples {
			if len(row) != len(headers) {
				consistent = false
				break
			}
		}
	}

	result := &ParseResult{
		Headers:         headers,
		Delimiter:       string(delimiter),
		Encoding:        encoding,
		LineCount:       len(dataRows),
		Fingerprint:     Fingerprint(headers, string(delimiter), encoding),
		HasQuotedFields: strings.Contains(text, `"`),
		IsConsistent:    consistent,
		SampleRows:      samples,
	}
	return result, dataRows, nil
}
