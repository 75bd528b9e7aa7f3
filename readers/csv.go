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

package readers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sellbridge/sellbridge"
	"github.com/sellbridge/sellbridge/parse"
)

// CSVSourceError wraps structured error information for the CSV source.
type CSVSourceError struct {
	Op  string
	Err error
}

func (e *CSVSourceError) Error() string {
	return fmt.Sprintf("csv source %s: %v", e.Op, e.Err)
}

func (e *CSVSourceError) Unwrap() error {
	return e.Err
}

// CSVSourceStats holds statistics about the records a source produced.
type CSVSourceStats struct {
	RecordsRead     int64
	NullValueCounts map[string]int64
}

// SourceOption allows functional customization of CSVSource.
type SourceOption func(*parse.AnalyzeOptions)

// WithAnalyzeOptions replaces the analysis options wholesale.
func WithAnalyzeOptions(opts parse.AnalyzeOptions) SourceOption {
	return func(o *parse.AnalyzeOptions) { *o = opts }
}

// WithStrictValidation enables the field-count consistency check.
func WithStrictValidation(strict bool) SourceOption {
	return func(o *parse.AnalyzeOptions) { o.StrictValidation = strict }
}

// WithDeclaredEncoding sets a caller-declared encoding hint.
func WithDeclaredEncoding(tag string) SourceOption {
	return func(o *parse.AnalyzeOptions) { o.DeclaredEncoding = tag }
}

// CSVSource implements DataSource over a raw marketplace upload buffer. The
// buffer is run through the full structural analysis chain (encoding
// detection, dialect detection, multiline tokenization) up front; Read then
// streams one record per data row, keyed by the header names. Field values
// stay raw strings: typing is the mapping engine's job.
type CSVSource struct {
	result *parse.ParseResult
	rows   [][]string
	pos    int
	stats  CSVSourceStats
}

// NewCSVSource analyzes a raw upload buffer and returns a record stream over
// it. Size and row limits are enforced before any rows are built.
func NewCSVSource(data []byte, options ...SourceOption) (*CSVSource, error) {
	opts := parse.DefaultAnalyzeOptions()
	for _, opt := range options {
		opt(&opts)
	}

	result, rows, err := parse.Parse(data, opts)
	if err != nil {
		return nil, &CSVSourceError{Op: "analyze", Err: err}
	}
	return &CSVSource{
		result: result,
		rows:   rows,
		stats:  CSVSourceStats{NullValueCounts: make(map[string]int64)},
	}, nil
}

// NewCSVSourceFromReader reads an upload stream into memory, bounded by the
// configured MaxBytes so an oversized upload fails before it is fully
// buffered, then proceeds as NewCSVSource.
func NewCSVSourceFromReader(r io.ReadCloser, options ...SourceOption) (*CSVSource, error) {
	opts := parse.DefaultAnalyzeOptions()
	for _, opt := range options {
		opt(&opts)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, int64(opts.MaxBytes)+1))
	if err != nil {
		return nil, &CSVSourceError{Op: "read", Err: err}
	}
	if len(data) > opts.MaxBytes {
		return nil, &CSVSourceError{
			Op:  "limit",
			Err: fmt.Errorf("%w: input is over %d bytes", parse.ErrTooLarge, opts.MaxBytes),
		}
	}
	return NewCSVSource(data, options...)
}

// Read implements the DataSource interface.
func (c *CSVSource) Read(ctx context.Context) (sellbridge.Record, error) {
	select {
	case <-ctx.Done():
		return nil, &CSVSourceError{Op: "read", Err: ctx.Err()}
	default:
	}

	if c.pos >= len(c.rows) {
		return nil, io.EOF
	}
	row := c.rows[c.pos]
	c.pos++

	record := make(sellbridge.Record, len(c.result.Headers))
	for i, header := range c.result.Headers {
		var val string
		if i < len(row) {
			val = row[i]
		}
		if strings.TrimSpace(val) == "" {
			c.stats.NullValueCounts[header]++
			record[header] = nil
		} else {
			record[header] = val
		}
	}

	c.stats.RecordsRead++
	return record, nil
}

// Close implements the DataSource interface.
func (c *CSVSource) Close() error {
	return nil
}

// Result returns the structural analysis of the source, including the
// fingerprint used to match the upload to a stored mapping profile.
func (c *CSVSource) Result() *parse.ParseResult {
	return c.result
}

// Stats returns read statistics.
func (c *CSVSource) Stats() CSVSourceStats {
	return c.stats
}
