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
	"github.com/google/uuid"

	"github.com/sellbridge/sellbridge/transform"
)

// Package mapping applies persisted field-mapping profiles to records,
// translating between marketplace-specific schemas and the canonical product
// record. Mapping never throws: every call returns auditable results with
// best-effort data so bulk imports can continue past bad rows.

// MappingRule maps one source field to one target field, optionally through a
// named transformer and validator. Rules are persisted JSON configuration;
// unknown transformer or validator names degrade to pass-throughs at runtime
// so new names can be introduced without a code deploy.
type MappingRule struct {
	SourceField  string            `json:"sourceField"`
	TargetField  string            `json:"targetField"`
	Transform    string            `json:"transform,omitempty"`
	DefaultValue interface{}       `json:"defaultValue,omitempty"`
	Required     bool              `json:"required,omitempty"`
	Validator    string            `json:"validator,omitempty"`
	Options      transform.Options `json:"options,omitempty"`
}

// MappingProfile is a named, persisted set of rules for one marketplace
// schema. Profiles are keyed by a ParseResult fingerprint by upload-handling
// callers; this package is agnostic to how they are stored.
type MappingProfile struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Marketplace string            `json:"marketplace"`
	Rules       []MappingRule     `json:"rules"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewProfile creates a profile with a generated id.
func NewProfile(name, marketplace string, rules ...MappingRule) *MappingProfile {
	return &MappingProfile{
		ID:          uuid.NewString(),
		Name:        name,
		Marketplace: marketplace,
		Rules:       rules,
	}
}
