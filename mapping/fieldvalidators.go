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
)

// ValidatorKind identifies a field validator. Like transformer names,
// validator names in persisted rules resolve into a closed set with an
// explicit Unknown variant that acts as a pass-through.
type ValidatorKind int

const (
	// ValidatorNone means the rule names no validator.
	ValidatorNone ValidatorKind = iota
	ValidatorNonEmpty
	ValidatorPositive
	ValidatorEmail
	ValidatorURL
	// ValidatorUnknown is an unrecognized validator name.
	ValidatorUnknown
)

// ValidatorKindOf resolves a rule's validator name.
func ValidatorKindOf(name string) ValidatorKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return ValidatorNone
	case "nonempty", "notempty", "required":
		return ValidatorNonEmpty
	case "positive", "positivenumber":
		return ValidatorPositive
	case "email":
		return ValidatorEmail
	case "url":
		return ValidatorURL
	default:
		return ValidatorUnknown
	}
}

// Validate checks value against the validator for k. ValidatorNone and
// ValidatorUnknown always pass.
func Validate(k ValidatorKind, value interface{}) error {
	switch k {
	case ValidatorNonEmpty:
		if isEmpty(value) {
			return fmt.Errorf("value is empty")
		}
	case ValidatorPositive:
		f, ok := asFloat(value)
		if !ok {
			return fmt.Errorf("value %v is not numeric", value)
		}
		if f <= 0 {
			return fmt.Errorf("value %v is not positive", value)
		}
	case ValidatorEmail:
		s, _ := value.(string)
		at := strings.Index(s, "@")
		if at < 1 || at == len(s)-1 || !strings.Contains(s[at:], ".") {
			return fmt.Errorf("value %q is not an email address", s)
		}
	case ValidatorURL:
		s, _ := value.(string)
		if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
			return fmt.Errorf("value %q is not a url", s)
		}
	}
	return nil
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
