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

	"github.com/sellbridge/sellbridge/transform"
)

// ProfileValidation is the outcome of a static profile check. Errors make the
// profile unusable; warnings flag runtime risk without blocking it.
type ProfileValidation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidateProfile statically checks a profile before it is persisted or used.
// Structural defects (missing identity fields, no rules, duplicate targets,
// incomplete rules) are errors. Unknown transformer or validator names and
// required rules without a default are warnings: the former run as
// pass-throughs, the latter fail per-record only when the source actually
// omits the field.
func ValidateProfile(p *MappingProfile) ProfileValidation {
	var v ProfileValidation

	if p == nil {
		v.Errors = append(v.Errors, "profile is nil")
		return v
	}
	if p.ID == "" {
		v.Errors = append(v.Errors, "profile is missing an id")
	}
	if p.Name == "" {
		v.Errors = append(v.Errors, "profile is missing a name")
	}
	if p.Marketplace == "" {
		v.Errors = append(v.Errors, "profile is missing a marketplace")
	}
	if len(p.Rules) == 0 {
		v.Errors = append(v.Errors, "profile has no rules")
	}

	targets := make(map[string]bool, len(p.Rules))
	for i, rule := range p.Rules {
		if rule.SourceField == "" {
			v.Errors = append(v.Errors, fmt.Sprintf("rule %d is missing sourceField", i))
		}
		if rule.TargetField == "" {
			v.Errors = append(v.Errors, fmt.Sprintf("rule %d is missing targetField", i))
		} else if targets[rule.TargetField] {
			v.Errors = append(v.Errors, fmt.Sprintf("duplicate targetField %q", rule.TargetField))
		} else {
			targets[rule.TargetField] = true
		}

		if transform.KindOf(rule.Transform) == transform.KindUnknown {
			v.Warnings = append(v.Warnings,
				fmt.Sprintf("rule %d names unknown transformer %q, it will pass values through", i, rule.Transform))
		}
		if ValidatorKindOf(rule.Validator) == ValidatorUnknown {
			v.Warnings = append(v.Warnings,
				fmt.Sprintf("rule %d names unknown validator %q, it will be skipped", i, rule.Validator))
		}
		if rule.Required && rule.DefaultValue == nil {
			v.Warnings = append(v.Warnings,
				fmt.Sprintf("required rule %d (%s) has no defaultValue, rows missing the field will fail", i, rule.TargetField))
		}
	}

	v.Valid = len(v.Errors) == 0
	return v
}
