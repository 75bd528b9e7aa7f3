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
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sellbridge/sellbridge"
)

// Package transform provides tolerant value coercions for marketplace field
// mapping. Every transformer has the signature (raw, Options) ->
// TransformResult and never panics: invalid input either degrades to a
// default value plus a warning (lenient, the default) or produces a failed
// result that still carries a best-effort value (strict).

// ToNumber coerces raw into a float64. Strings are cleaned of everything but
// digits, '.', and '-' before parsing, so lightly decorated values like
// "1,234개" still convert. Unparseable input falls back to the configured
// default (0 when unset) with a warning, or fails under Strict.
func ToNumber(raw interface{}, opts Options) sellbridge.TransformResult {
	switch v := raw.(type) {
	case float64:
		return sellbridge.OkResult(v)
	case float32:
		return sellbridge.OkResult(float64(v))
	case int:
		return sellbridge.OkResult(float64(v))
	case int32:
		return sellbridge.OkResult(float64(v))
	case int64:
		return sellbridge.OkResult(float64(v))
	}

	s := strings.TrimSpace(stringify(raw))
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	if cleaned != "" && cleaned != "-" && cleaned != "." {
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return sellbridge.OkResult(f)
		}
	}

	def := numericDefault(opts)
	if opts.Strict {
		return sellbridge.ErrResult(def, fmt.Errorf("cannot convert %q to number", s))
	}
	return sellbridge.OkResult(def).Warn("cannot convert %q to number, using %v", s, def)
}

// Token sets for ToBoolean. Korean marketplace exports encode availability as
// terms like 판매중 (on sale) and 품절 (sold out) rather than true/false.
var (
	truthyTokens = map[string]bool{
		"true": true, "t": true, "1": true, "y": true, "yes": true, "on": true,
		"판매중": true, "판매": true, "사용": true, "진열": true, "노출": true, "재고있음": true,
	}
	falsyTokens = map[string]bool{
		"false": true, "f": true, "0": true, "n": true, "no": true, "off": true,
		"품절": true, "판매중지": true, "미사용": true, "미진열": true, "숨김": true, "재고없음": true,
	}
)

// ToBoolean matches raw against curated truthy/falsy token sets, including
// the Korean commerce vocabulary. Unmatched input follows the same fallback
// policy as ToNumber.
func ToBoolean(raw interface{}, opts Options) sellbridge.TransformResult {
	switch v := raw.(type) {
	case bool:
		return sellbridge.OkResult(v)
	case int:
		return sellbridge.OkResult(v != 0)
	case int64:
		return sellbridge.OkResult(v != 0)
	case float64:
		return sellbridge.OkResult(v != 0)
	}

	token := strings.ToLower(strings.TrimSpace(stringify(raw)))
	if truthyTokens[token] {
		return sellbridge.OkResult(true)
	}
	if falsyTokens[token] {
		return sellbridge.OkResult(false)
	}

	def := false
	if b, ok := opts.Default.(bool); ok {
		def = b
	}
	if opts.Strict {
		return sellbridge.ErrResult(def, fmt.Errorf("cannot convert %q to boolean", token))
	}
	return sellbridge.OkResult(def).Warn("cannot convert %q to boolean, using %v", token, def)
}

// ToString trims raw and enforces optional length bounds. An empty value is
// rejected unless AllowEmpty is set.
func ToString(raw interface{}, opts Options) sellbridge.TransformResult {
	s := strings.TrimSpace(stringify(raw))

	if s == "" && !opts.AllowEmpty {
		return sellbridge.ErrResult("", fmt.Errorf("value is empty"))
	}
	if opts.MinLength > 0 && len([]rune(s)) < opts.MinLength {
		if opts.Strict {
			return sellbridge.ErrResult(s, fmt.Errorf("value %q is shorter than %d characters", s, opts.MinLength))
		}
		return sellbridge.OkResult(s).Warn("value %q is shorter than %d characters", s, opts.MinLength)
	}
	if opts.MaxLength > 0 {
		if runes := []rune(s); len(runes) > opts.MaxLength {
			if opts.Strict {
				return sellbridge.ErrResult(s, fmt.Errorf("value %q is longer than %d characters", s, opts.MaxLength))
			}
			return sellbridge.OkResult(string(runes[:opts.MaxLength])).Warn("value truncated to %d characters", opts.MaxLength)
		}
	}
	return sellbridge.OkResult(s)
}

// currencyStripper drops currency symbols, thousands separators, and the
// Korean won suffix before numeric parsing.
var currencyStripper = strings.NewReplacer(
	"₩", "", "￦", "", "$", "", "¥", "", "€", "", "£", "",
	"원", "", ",", "", " ", "",
)

// ToPrice strips currency decoration, then delegates to ToNumber.
// "₩1,234" converts to 1234.
func ToPrice(raw interface{}, opts Options) sellbridge.TransformResult {
	if s, ok := raw.(string); ok {
		raw = currencyStripper.Replace(strings.TrimSpace(s))
	}
	return ToNumber(raw, opts)
}

// dateLayouts are tried in order when parsing a date string.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102",
	"2006년 1월 2일",
}

// ToDate accepts a time.Time, epoch milliseconds, or a date string and
// formats it per Options.Format: "iso" (default, 2006-01-02), "korean"
// (2006년 01월 02일), or "epoch" (millisecond int64). Unlike the other
// transformers, invalid input is a hard failure regardless of Strict: a
// silently defaulted date corrupts listings.
func ToDate(raw interface{}, opts Options) sellbridge.TransformResult {
	var t time.Time
	switch v := raw.(type) {
	case time.Time:
		t = v
	case int:
		t = time.UnixMilli(int64(v))
	case int64:
		t = time.UnixMilli(v)
	case float64:
		t = time.UnixMilli(int64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return sellbridge.ErrResult(nil, fmt.Errorf("empty date value"))
		}
		// Epoch millis are 13 digits in the current era; shorter digit runs
		// like "20240305" are compact dates, not timestamps.
		if millis, err := strconv.ParseInt(s, 10, 64); err == nil && len(s) >= 11 {
			t = time.UnixMilli(millis)
			break
		}
		parsed, ok := parseDateString(s)
		if !ok {
			return sellbridge.ErrResult(nil, fmt.Errorf("cannot parse %q as a date", s))
		}
		t = parsed
	default:
		return sellbridge.ErrResult(nil, fmt.Errorf("cannot convert %T to date", raw))
	}

	switch opts.Format {
	case "korean":
		return sellbridge.OkResult(fmt.Sprintf("%d년 %02d월 %02d일", t.Year(), t.Month(), t.Day()))
	case "epoch":
		return sellbridge.OkResult(t.UnixMilli())
	default:
		return sellbridge.OkResult(t.Format("2006-01-02"))
	}
}

func parseDateString(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToURL validates raw as a URL, prefixing the default protocol (https) when
// the scheme is missing. Invalid input is a failure.
func ToURL(raw interface{}, opts Options) sellbridge.TransformResult {
	s := strings.TrimSpace(stringify(raw))
	if s == "" {
		return sellbridge.ErrResult("", fmt.Errorf("empty url value"))
	}

	if !strings.Contains(s, "://") {
		protocol := opts.Protocol
		if protocol == "" {
			protocol = "https"
		}
		s = protocol + "://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return sellbridge.ErrResult(s, fmt.Errorf("invalid url %q: %v", s, err))
	}
	if u.Host == "" {
		return sellbridge.ErrResult(s, fmt.Errorf("invalid url %q: missing host", s))
	}
	return sellbridge.OkResult(u.String())
}

// ToCategory resolves raw against the caller's category map in priority
// order: exact match, case-insensitive match, then substring containment in
// either direction. First match wins. Unmatched input maps to the default
// with a warning, never a hard failure: an unknown category should not block
// an import.
func ToCategory(raw interface{}, opts Options) sellbridge.TransformResult {
	s := strings.TrimSpace(stringify(raw))

	if v, ok := opts.Categories[s]; ok {
		return sellbridge.OkResult(v)
	}

	// Sorted keys keep the case-insensitive and substring passes
	// deterministic across runs.
	keys := make([]string, 0, len(opts.Categories))
	for k := range opts.Categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.EqualFold(k, s) {
			return sellbridge.OkResult(opts.Categories[k])
		}
	}
	if s != "" {
		lower := strings.ToLower(s)
		for _, k := range keys {
			kl := strings.ToLower(k)
			if strings.Contains(lower, kl) || strings.Contains(kl, lower) {
				return sellbridge.OkResult(opts.Categories[k]).Warn("category %q matched %q by substring", s, k)
			}
		}
	}

	def := ""
	if opts.Default != nil {
		def = stringify(opts.Default)
	}
	return sellbridge.OkResult(def).Warn("category %q not found, using %q", s, def)
}

// ToArray splits raw on the configured separator (default ",") unless it is
// already a slice. Elements are trimmed and empties dropped; Dedupe removes
// repeats while preserving first-seen order. ToArray never fails.
func ToArray(raw interface{}, opts Options) sellbridge.TransformResult {
	var elems []string
	switch v := raw.(type) {
	case nil:
		return sellbridge.OkResult([]string{})
	case []string:
		elems = v
	case []interface{}:
		elems = make([]string, 0, len(v))
		for _, e := range v {
			elems = append(elems, stringify(e))
		}
	default:
		sep := opts.Separator
		if sep == "" {
			sep = ","
		}
		elems = strings.Split(stringify(raw), sep)
	}

	out := make([]string, 0, len(elems))
	seen := make(map[string]bool, len(elems))
	for _, e := range elems {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if opts.Dedupe {
			if seen[e] {
				continue
			}
			seen[e] = true
		}
		out = append(out, e)
	}
	return sellbridge.OkResult(out)
}

// stringify renders any raw value as a string. Floats print in plain
// notation so large prices never come out in scientific form.
func stringify(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// numericDefault coerces Options.Default for the numeric transformers.
func numericDefault(opts Options) float64 {
	switch v := opts.Default.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}
