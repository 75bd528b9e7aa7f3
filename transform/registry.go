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

import (
	"strings"

	"github.com/sellbridge/sellbridge"
)

// Kind identifies a transformer. Mapping rules are persisted configuration
// and name transformers by string; Kind is the closed set those names resolve
// into, with an explicit Unknown variant so a profile written against a newer
// deployment degrades to a pass-through instead of failing.
type Kind int

const (
	// KindNone means the rule names no transformer; the value passes through.
	KindNone Kind = iota
	KindNumber
	KindBoolean
	KindString
	KindPrice
	KindDate
	KindURL
	KindCategory
	KindArray
	// KindUnknown is an unrecognized transformer name.
	KindUnknown
)

// KindOf resolves a rule's transformer name. The empty string is KindNone;
// anything unrecognized is KindUnknown. Both the "toNumber" and bare "number"
// spellings are accepted.
func KindOf(name string) Kind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return KindNone
	case "tonumber", "number":
		return KindNumber
	case "toboolean", "boolean", "bool":
		return KindBoolean
	case "tostring", "string":
		return KindString
	case "toprice", "price":
		return KindPrice
	case "todate", "date":
		return KindDate
	case "tourl", "url":
		return KindURL
	case "tocategory", "category":
		return KindCategory
	case "toarray", "array":
		return KindArray
	default:
		return KindUnknown
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNumber:
		return "toNumber"
	case KindBoolean:
		return "toBoolean"
	case KindString:
		return "toString"
	case KindPrice:
		return "toPrice"
	case KindDate:
		return "toDate"
	case KindURL:
		return "toUrl"
	case KindCategory:
		return "toCategory"
	case KindArray:
		return "toArray"
	default:
		return "unknown"
	}
}

// Apply dispatches raw to the transformer for k. KindNone and KindUnknown
// pass the value through unchanged; the caller decides whether an unknown
// name deserves a warning.
func Apply(k Kind, raw interface{}, opts Options) sellbridge.TransformResult {
	switch k {
	case KindNumber:
		return ToNumber(raw, opts)
	case KindBoolean:
		return ToBoolean(raw, opts)
	case KindString:
		return ToString(raw, opts)
	case KindPrice:
		return ToPrice(raw, opts)
	case KindDate:
		return ToDate(raw, opts)
	case KindURL:
		return ToURL(raw, opts)
	case KindCategory:
		return ToCategory(raw, opts)
	case KindArray:
		return ToArray(raw, opts)
	default:
		return sellbridge.OkResult(raw)
	}
}
