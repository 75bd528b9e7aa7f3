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

package writers

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sellbridge/sellbridge"
)

// UTF8BOM is the byte-order mark callers prepend for Korean-locale
// spreadsheet compatibility. The writer never adds it on its own.
const UTF8BOM = "\uFEFF"

// CSVWriterError wraps CSV-specific write errors with context.
type CSVWriterError struct {
	Op  string
	Err error
}

func (e *CSVWriterError) Error() string {
	return fmt.Sprintf("csv writer %s: %v", e.Op, e.Err)
}

func (e *CSVWriterError) Unwrap() error {
	return e.Err
}

// CSVWriterStats holds CSV write statistics.
type CSVWriterStats struct {
	RecordsWritten  int64
	NullValueCounts map[string]int64
}

// CSVWriterOptions configures CSV output.
type CSVWriterOptions struct {
	Delimiter   rune
	WriteHeader bool
	Headers     []string
	BOM         bool
}

// WriterOptionCSV is a functional option.
type WriterOptionCSV func(*CSVWriterOptions)

// WithHeaders fixes the output column order.
func WithHeaders(headers []string) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.Headers = append([]string(nil), headers...)
	}
}

// WithDelimiter sets the output delimiter.
func WithDelimiter(delim rune) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.Delimiter = delim
	}
}

// WithWriteHeader controls whether a header row is emitted.
func WithWriteHeader(write bool) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.WriteHeader = write
	}
}

// WithBOM prepends a UTF-8 BOM before the first row, for exports opened
// directly in Korean-locale Excel.
func WithBOM(bom bool) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.BOM = bom
	}
}

// CSVWriter implements DataSink for marketplace CSV exports. Unlike
// encoding/csv it applies spreadsheet formula-injection escaping, which
// marketplace bulk files need because sellers open them in Excel.
type CSVWriter struct {
	writer      io.Writer
	closer      io.Closer
	options     CSVWriterOptions
	headers     []string
	wroteHeader bool
	wroteBOM    bool
	stats       CSVWriterStats
	mu          sync.Mutex
}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter(w io.WriteCloser, opts ...WriterOptionCSV) (*CSVWriter, error) {
	options := CSVWriterOptions{
		Delimiter:   ',',
		WriteHeader: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &CSVWriter{
		writer:  w,
		closer:  w,
		options: options,
		headers: append([]string(nil), options.Headers...),
		stats:   CSVWriterStats{NullValueCounts: make(map[string]int64)},
	}, nil
}

// Write implements the DataSink interface.
func (c *CSVWriter) Write(ctx context.Context, record sellbridge.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-ctx.Done():
		return &CSVWriterError{Op: "write", Err: ctx.Err()}
	default:
	}

	if c.options.BOM && !c.wroteBOM {
		if _, err := io.WriteString(c.writer, UTF8BOM); err != nil {
			return &CSVWriterError{Op: "write_bom", Err: err}
		}
		c.wroteBOM = true
	}

	// Headers come from the first record when not specified.
	if !c.wroteHeader && c.options.WriteHeader {
		if len(c.headers) == 0 {
			for key := range record {
				c.headers = append(c.headers, key)
			}
			sort.Strings(c.headers)
		}
		if _, err := io.WriteString(c.writer, row(headerValues(c.headers), c.headers, c.options.Delimiter)); err != nil {
			return &CSVWriterError{Op: "write_header", Err: err}
		}
		c.wroteHeader = true
	}
	if len(c.headers) == 0 {
		for key := range record {
			c.headers = append(c.headers, key)
		}
		sort.Strings(c.headers)
	}

	for k, v := range record {
		if v == nil {
			c.stats.NullValueCounts[k]++
		}
	}

	if _, err := io.WriteString(c.writer, row(record, c.headers, c.options.Delimiter)); err != nil {
		return &CSVWriterError{Op: "write_row", Err: err}
	}
	c.stats.RecordsWritten++
	return nil
}

// Flush implements the DataSink interface.
func (c *CSVWriter) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if flusher, ok := c.writer.(interface{ Flush() error }); ok {
		if err := flusher.Flush(); err != nil {
			return &CSVWriterError{Op: "flush", Err: err}
		}
	}
	return nil
}

// Close implements the DataSink interface.
func (c *CSVWriter) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// Stats returns write statistics.
func (c *CSVWriter) Stats() CSVWriterStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	statsCopy := c.stats
	statsCopy.NullValueCounts = make(map[string]int64, len(c.stats.NullValueCounts))
	for k, v := range c.stats.NullValueCounts {
		statsCopy.NullValueCounts[k] = v
	}
	return statsCopy
}

// Marshal renders records as CSV text in one call: one line per record, in
// header order, missing fields defaulting to "". No BOM is added; callers
// needing Korean-locale spreadsheet compatibility prepend writers.UTF8BOM.
func Marshal(records []sellbridge.Record, headers []string, delimiter rune) string {
	var b strings.Builder
	b.WriteString(row(headerValues(headers), headers, delimiter))
	for _, record := range records {
		b.WriteString(row(record, headers, delimiter))
	}
	return b.String()
}

// Escape renders one cell value: stringified, guarded against spreadsheet
// formula injection (a leading =, +, -, @, or tab gets an apostrophe), and
// quoted with doubled internal quotes when it contains the delimiter, a
// quote, or a newline.
func Escape(value interface{}, delimiter rune) string {
	s := stringify(value)

	if strings.HasPrefix(s, "=") || strings.HasPrefix(s, "+") ||
		strings.HasPrefix(s, "-") || strings.HasPrefix(s, "@") ||
		strings.HasPrefix(s, "\t") {
		s = "'" + s
	}

	if strings.ContainsRune(s, delimiter) || strings.Contains(s, `"`) ||
		strings.Contains(s, "\n") || strings.Contains(s, "\r") {
		s = `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// row renders one record as an escaped CSV line ending in \n.
func row(record sellbridge.Record, headers []string, delimiter rune) string {
	cells := make([]string, len(headers))
	for i, header := range headers {
		if val, ok := record[header]; ok && val != nil {
			cells[i] = Escape(val, delimiter)
		} else {
			cells[i] = ""
		}
	}
	return strings.Join(cells, string(delimiter)) + "\n"
}

// headerValues wraps a header list as a record so the header row goes
// through the same escaping as data rows.
func headerValues(headers []string) sellbridge.Record {
	record := make(sellbridge.Record, len(headers))
	for _, h := range headers {
		record[h] = h
	}
	return record
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
