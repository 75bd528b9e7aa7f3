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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateProfile_Valid tests a clean profile.
func TestValidateProfile_Valid(t *testing.T) {
	profile := NewProfile("naver-products", "naver",
		MappingRule{SourceField: "상품명", TargetField: "name", Transform: "toString"},
		MappingRule{SourceField: "판매가", TargetField: "price", Transform: "toPrice", Validator: "positive"},
	)

	v := ValidateProfile(profile)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
}

// TestValidateProfile_StructuralErrors tests identity and rule-shape errors.
func TestValidateProfile_StructuralErrors(t *testing.T) {
	v := ValidateProfile(nil)
	assert.False(t, v.Valid)

	v = ValidateProfile(&MappingProfile{})
	assert.False(t, v.Valid)
	assert.Contains(t, v.Errors, "profile is missing an id")
	assert.Contains(t, v.Errors, "profile is missing a name")
	assert.Contains(t, v.Errors, "profile is missing a marketplace")
	assert.Contains(t, v.Errors, "profile has no rules")

	v = ValidateProfile(NewProfile("p", "cafe24",
		MappingRule{TargetField: "name"},
		MappingRule{SourceField: "가격"},
	))
	assert.False(t, v.Valid)
	assert.Contains(t, v.Errors, "rule 0 is missing sourceField")
	assert.Contains(t, v.Errors, "rule 1 is missing targetField")
}

// TestValidateProfile_DuplicateTarget tests that two rules writing the same
// target field is an error.
func TestValidateProfile_DuplicateTarget(t *testing.T) {
	v := ValidateProfile(NewProfile("p", "coupang",
		MappingRule{SourceField: "a", TargetField: "name"},
		MappingRule{SourceField: "b", TargetField: "name"},
	))
	assert.False(t, v.Valid)
	assert.Contains(t, v.Errors, `duplicate targetField "name"`)
}

// TestValidateProfile_Warnings tests the non-blocking diagnostics.
func TestValidateProfile_Warnings(t *testing.T) {
	v := ValidateProfile(NewProfile("p", "cafe24",
		MappingRule{SourceField: "a", TargetField: "x", Transform: "toMagic"},
		MappingRule{SourceField: "b", TargetField: "y", Validator: "mystery"},
		MappingRule{SourceField: "c", TargetField: "z", Required: true},
	))
	assert.True(t, v.Valid)
	require.Len(t, v.Warnings, 3)
	assert.Contains(t, v.Warnings[0], "toMagic")
	assert.Contains(t, v.Warnings[1], "mystery")
	assert.Contains(t, v.Warnings[2], "no defaultValue")
}
