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

package transform

// Options is the per-rule option bag passed to every transformer. It is part
// of the persisted MappingRule shape, so everything here is JSON-serializable
// data rather than functional options.
type Options struct {
	// Strict turns lenient fallbacks (default value + warning) into failures.
	Strict bool `json:"strict,omitempty"`
	// Default is the fallback value substituted on lenient conversion
	// failures and empty inputs.
	Default interface{} `json:"default,omitempty"`
	// AllowEmpty lets ToString accept an empty value.
	AllowEmpty bool `json:"allowEmpty,omitempty"`
	// MinLength and MaxLength bound ToString output length when positive.
	MinLength int `json:"minLength,omitempty"`
	MaxLength int `json:"maxLength,omitempty"`
	// Separator is the ToArray split token. Defaults to ",".
	Separator string `json:"separator,omitempty"`
	// Dedupe drops repeated ToArray elements, keeping first-seen order.
	Dedupe bool `json:"dedupe,omitempty"`
	// Format selects the ToDate output shape: "iso" (default), "korean",
	// or "epoch".
	Format string `json:"format,omitempty"`
	// Protocol is prefixed by ToURL when the value has no scheme.
	// Defaults to "https".
	Protocol string `json:"protocol,omitempty"`
	// Categories is the ToCategory match map from marketplace terms to
	// canonical category codes.
	Categories map[string]string `json:"categories,omitempty"`
}
