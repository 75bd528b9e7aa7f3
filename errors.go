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

package sellbridge

import (
	"context"
	"sync"
)

// ErrorHandler defines how errors are handled during pipeline processing.
// Custom error handlers can be used to log, collect, or transform errors.
type ErrorHandler interface {
	// HandleError processes an error that occurred while handling record.
	// Returning a non-nil error stops the pipeline; returning nil continues.
	HandleError(ctx context.Context, record Record, err error) error
}

// ErrorStrategy defines how a pipeline reacts to record-level errors.
type ErrorStrategy int

const (
	// FailFast stops processing on the first error encountered.
	FailFast ErrorStrategy = iota
	// SkipErrors continues processing, skipping failed records.
	SkipErrors
	// CollectErrors continues processing, collecting all errors for later
	// inspection. This is the strategy bulk imports run under: one bad row
	// never aborts the batch.
	CollectErrors
)

// ErrorHandlerFunc is a function adapter for the ErrorHandler interface.
type ErrorHandlerFunc func(ctx context.Context, record Record, err error) error

// HandleError implements the ErrorHandler interface for ErrorHandlerFunc.
func (f ErrorHandlerFunc) HandleError(ctx context.Context, record Record, err error) error {
	return f(ctx, record, err)
}

// ErrorCollector is an ErrorHandler that accumulates every error it sees and
// always lets the pipeline continue. Safe for concurrent use.
type ErrorCollector struct {
	mu   sync.Mutex
	errs []error
}

// HandleError implements the ErrorHandler interface.
func (c *ErrorCollector) HandleError(ctx context.Context, record Record, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
	return nil
}

// Errors returns a copy of the collected errors.
func (c *ErrorCollector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]error, len(c.errs))
	copy(out, c.errs)
	return out
}
