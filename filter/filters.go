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

package filter

import (
	"context"
	"reflect"
	"strings"

	"github.com/sellbridge/sellbridge"
)

// Package filter provides record screens for import pipelines: rows that are
// structurally present but not worth mapping (blank padding rows, sold-out
// placeholder rows) get dropped before the mapping engine runs.

// NotEmpty creates a filter that excludes records where any of the given
// fields is missing, nil, or blank.
func NotEmpty(fields ...string) sellbridge.Filter {
	return sellbridge.FilterFunc(func(ctx context.Context, record sellbridge.Record) (bool, error) {
		for _, field := range fields {
			value, exists := record[field]
			if !exists || value == nil {
				return false, nil
			}
			if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
				return false, nil
			}
		}
		return true, nil
	})
}

// Equals creates a filter that includes records where the field equals the
// expected value.
func Equals(field string, expected interface{}) sellbridge.Filter {
	return sellbridge.FilterFunc(func(ctx context.Context, record sellbridge.Record) (bool, error) {
		value, exists := record[field]
		if !exists {
			return false, nil
		}
		return reflect.DeepEqual(value, expected), nil
	})
}

// Contains creates a filter that includes records where the string field
// contains the substring.
func Contains(field, substring string) sellbridge.Filter {
	return sellbridge.FilterFunc(func(ctx context.Context, record sellbridge.Record) (bool, error) {
		value, exists := record[field]
		if !exists {
			return false, nil
		}
		if str, ok := value.(string); ok {
			return strings.Contains(str, substring), nil
		}
		return false, nil
	})
}
