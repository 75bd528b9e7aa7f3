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

import "fmt"

// TransformResult is the uniform outcome of a single transformer or mapping
// call. Calls never panic and never return a bare error: even a failed
// conversion carries a best-effort Value so batch processing can keep a usable
// record. Err is nil on success; Warnings accumulate non-fatal findings.
type TransformResult struct {
	Value    interface{}
	Err      error
	Warnings []string
}

// OkResult builds a successful result carrying value and optional warnings.
func OkResult(value interface{}, warnings ...string) TransformResult {
	return TransformResult{Value: value, Warnings: warnings}
}

// ErrResult builds a failed result. best is the best-effort value the caller
// can still use (a default, a zero value, or the raw input).
func ErrResult(best interface{}, err error) TransformResult {
	return TransformResult{Value: best, Err: err}
}

// Ok reports whether the call succeeded.
func (r TransformResult) Ok() bool {
	return r.Err == nil
}

// Warn returns a copy of the result with an additional warning appended.
func (r TransformResult) Warn(format string, args ...interface{}) TransformResult {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
	return r
}

// RecordResult is the outcome of mapping one record through a profile.
// Data is always populated with best-effort values, even when Success is
// false, so partial-import flows can surface what was salvageable.
type RecordResult struct {
	Success  bool     `json:"success"`
	Data     Record   `json:"data"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// BatchResult aggregates per-record outcomes of a bulk mapping run.
type BatchResult struct {
	Data         []Record `json:"data"`
	Errors       []string `json:"errors,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
}

// ErrorSample returns at most n error messages, appending a summary line when
// messages were truncated. User-facing reports must stay bounded regardless of
// how many rows failed.
func (b *BatchResult) ErrorSample(n int) []string {
	if n <= 0 || len(b.Errors) <= n {
		return b.Errors
	}
	sample := make([]string, n, n+1)
	copy(sample, b.Errors[:n])
	sample = append(sample, fmt.Sprintf("... and %d more errors", len(b.Errors)-n))
	return sample
}
