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

package mapping

import (
	"fmt"
	"strings"

	"github.com/sellbridge/sellbridge"
	"github.com/sellbridge/sellbridge/transform"
)

// ApplyMapping runs one rule against one record. The sequence: read the
// source field, fail immediately when a required field is missing, run the
// transformer (failures propagate only when the rule is required), substitute
// the default for empty results, then run the validator (failures again
// propagate only when required; a failing validator on an optional rule is
// tolerated silently). Warnings bubble through in all cases.
func ApplyMapping(record sellbridge.Record, rule MappingRule) sellbridge.TransformResult {
	raw, present := record[rule.SourceField]
	if !present || isEmpty(raw) {
		if rule.Required {
			return sellbridge.ErrResult(rule.DefaultValue,
				fmt.Errorf("required field %q is missing", rule.SourceField))
		}
		raw = nil
	}

	var warnings []string
	value := raw

	kind := transform.KindOf(rule.Transform)
	switch kind {
	case transform.KindNone:
		// No transformer configured.
	case transform.KindUnknown:
		warnings = append(warnings,
			fmt.Sprintf("unknown transformer %q, passing value through", rule.Transform))
	default:
		opts := rule.Options
		if opts.Default == nil {
			opts.Default = rule.DefaultValue
		}
		res := transform.Apply(kind, raw, opts)
		warnings = append(warnings, res.Warnings...)
		value = res.Value
		if res.Err != nil {
			if rule.Required {
				return sellbridge.TransformResult{Value: res.Value, Err: res.Err, Warnings: warnings}
			}
			warnings = append(warnings, res.Err.Error())
		}
	}

	if isEmpty(value) && rule.DefaultValue != nil {
		value = rule.DefaultValue
	}

	vkind := ValidatorKindOf(rule.Validator)
	if vkind == ValidatorUnknown {
		warnings = append(warnings,
			fmt.Sprintf("unknown validator %q, skipping validation", rule.Validator))
	} else if err := Validate(vkind, value); err != nil {
		if rule.Required {
			return sellbridge.TransformResult{Value: value, Err: err, Warnings: warnings}
		}
		// Optional rules tolerate validator failures silently.
	}

	return sellbridge.OkResult(value, warnings...)
}

// TransformData maps one record through every rule of a profile. Data always
// comes back populated with best-effort values; Success is the conjunction of
// per-rule outcomes. Partial-import flows consume Data even when Success is
// false.
func TransformData(record sellbridge.Record, profile *MappingProfile) *sellbridge.RecordResult {
	result := &sellbridge.RecordResult{
		Success: true,
		Data:    make(sellbridge.Record, len(profile.Rules)),
	}

	for _, rule := range profile.Rules {
		res := ApplyMapping(record, rule)
		result.Data[rule.TargetField] = res.Value
		for _, w := range res.Warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", rule.TargetField, w))
		}
		if res.Err != nil {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rule.TargetField, res.Err))
		}
	}
	return result
}

// TransformMultipleData maps a batch of records, labeling every message with
// its 1-indexed row. One row's failure never aborts the batch; counts and
// best-effort data accumulate for all rows. Each record is independent, so
// callers may parallelize across records as long as they keep row labels
// index-stable.
func TransformMultipleData(records []sellbridge.Record, profile *MappingProfile) *sellbridge.BatchResult {
	batch := &sellbridge.BatchResult{
		Data: make([]sellbridge.Record, 0, len(records)),
	}

	for i, record := range records {
		rr := TransformData(record, profile)
		batch.Data = append(batch.Data, rr.Data)
		for _, msg := range rr.Errors {
			batch.Errors = append(batch.Errors, fmt.Sprintf("row %d: %s", i+1, msg))
		}
		for _, msg := range rr.Warnings {
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("row %d: %s", i+1, msg))
		}
		if rr.Success {
			batch.SuccessCount++
		} else {
			batch.FailureCount++
		}
	}
	return batch
}

// isEmpty reports whether a value counts as absent for default substitution:
// nil or a blank string.
func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
