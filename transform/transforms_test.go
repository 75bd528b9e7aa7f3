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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToNumber_Basic tests numeric coercion of clean and decorated input.
func TestToNumber_Basic(t *testing.T) {
	res := ToNumber("19900", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, 19900.0, res.Value)

	res = ToNumber("1,234개", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, 1234.0, res.Value)

	res = ToNumber(-5, Options{})
	require.True(t, res.Ok())
	assert.Equal(t, -5.0, res.Value)
}

// TestToNumber_Fallback tests the lenient default-plus-warning policy and
// its strict counterpart.
func TestToNumber_Fallback(t *testing.T) {
	res := ToNumber("없음", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, 0.0, res.Value)
	assert.NotEmpty(t, res.Warnings)

	res = ToNumber("없음", Options{Default: 99})
	require.True(t, res.Ok())
	assert.Equal(t, 99.0, res.Value)

	res = ToNumber("없음", Options{Strict: true})
	assert.False(t, res.Ok())
	assert.Equal(t, 0.0, res.Value) // best-effort value still present
}

// TestToBoolean_KoreanTerms tests the domain vocabulary.
func TestToBoolean_KoreanTerms(t *testing.T) {
	res := ToBoolean("판매중", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, true, res.Value)

	res = ToBoolean("품절", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, false, res.Value)

	res = ToBoolean("Y", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, true, res.Value)
}

// TestToBoolean_Fallback tests unmatched tokens following the number policy.
func TestToBoolean_Fallback(t *testing.T) {
	res := ToBoolean("maybe", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, false, res.Value)
	assert.NotEmpty(t, res.Warnings)

	res = ToBoolean("maybe", Options{Strict: true, Default: true})
	assert.False(t, res.Ok())
	assert.Equal(t, true, res.Value)
}

// TestToString_EmptyAndLength tests empty rejection and length bounds.
func TestToString_EmptyAndLength(t *testing.T) {
	res := ToString("  셔츠  ", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, "셔츠", res.Value)

	res = ToString("", Options{})
	assert.False(t, res.Ok())

	res = ToString("", Options{AllowEmpty: true})
	assert.True(t, res.Ok())

	res = ToString("가나다라마", Options{MaxLength: 3})
	require.True(t, res.Ok())
	assert.Equal(t, "가나다", res.Value)
	assert.NotEmpty(t, res.Warnings)

	res = ToString("ab", Options{MinLength: 5, Strict: true})
	assert.False(t, res.Ok())
}

// TestToPrice_Currency tests currency stripping: ₩1,234 converts to 1234.
func TestToPrice_Currency(t *testing.T) {
	res := ToPrice("₩1,234", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, 1234.0, res.Value)

	res = ToPrice("19,900원", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, 19900.0, res.Value)

	res = ToPrice(25000, Options{})
	require.True(t, res.Ok())
	assert.Equal(t, 25000.0, res.Value)
}

// TestToDate_Formats tests the three output shapes.
func TestToDate_Formats(t *testing.T) {
	res := ToDate("2024-03-05", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, "2024-03-05", res.Value)

	res = ToDate("2024/03/05", Options{Format: "korean"})
	require.True(t, res.Ok())
	assert.Equal(t, "2024년 03월 05일", res.Value)

	res = ToDate("20240305", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, "2024-03-05", res.Value)

	res = ToDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Options{Format: "epoch"})
	require.True(t, res.Ok())
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC).UnixMilli(), res.Value)
}

// TestToDate_EpochMillis tests epoch input in both numeric and string form.
func TestToDate_EpochMillis(t *testing.T) {
	millis := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC).UnixMilli()
	want := time.UnixMilli(millis).Format("2006-01-02")

	res := ToDate(millis, Options{})
	require.True(t, res.Ok())
	assert.Equal(t, want, res.Value)

	res = ToDate("1709640000000", Options{Format: "epoch"})
	require.True(t, res.Ok())
	assert.Equal(t, int64(1709640000000), res.Value)
}

// TestToDate_InvalidIsHardFailure tests that bad dates never default.
func TestToDate_InvalidIsHardFailure(t *testing.T) {
	res := ToDate("내일쯤", Options{Default: "2024-01-01"})
	assert.False(t, res.Ok())
	assert.Nil(t, res.Value)

	res = ToDate(struct{}{}, Options{})
	assert.False(t, res.Ok())
}

// TestToURL_ProtocolAndValidation tests scheme prefixing and rejection.
func TestToURL_ProtocolAndValidation(t *testing.T) {
	res := ToURL("example.com/item/1", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, "https://example.com/item/1", res.Value)

	res = ToURL("shop.example.com", Options{Protocol: "http"})
	require.True(t, res.Ok())
	assert.Equal(t, "http://shop.example.com", res.Value)

	res = ToURL("http://img.example.com/a.jpg", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, "http://img.example.com/a.jpg", res.Value)

	res = ToURL("", Options{})
	assert.False(t, res.Ok())

	res = ToURL("https://", Options{})
	assert.False(t, res.Ok())
}

// TestToCategory_Priority tests exact, case-insensitive, and substring
// matching in that order.
func TestToCategory_Priority(t *testing.T) {
	categories := map[string]string{"상의": "top", "하의": "bottom", "Shoes": "shoes"}

	res := ToCategory("상의", Options{Categories: categories})
	require.True(t, res.Ok())
	assert.Equal(t, "top", res.Value)
	assert.Empty(t, res.Warnings)

	res = ToCategory("shoes", Options{Categories: categories})
	require.True(t, res.Ok())
	assert.Equal(t, "shoes", res.Value)

	// A longer containing string matches by substring, with a warning but
	// never a hard failure.
	res = ToCategory("여성 상의 티셔츠", Options{Categories: categories})
	require.True(t, res.Ok())
	assert.Equal(t, "top", res.Value)
	assert.NotEmpty(t, res.Warnings)
}

// TestToCategory_Unmatched tests the default-plus-warning outcome.
func TestToCategory_Unmatched(t *testing.T) {
	res := ToCategory("모자", Options{Categories: map[string]string{"상의": "top"}, Default: "etc"})
	require.True(t, res.Ok())
	assert.Equal(t, "etc", res.Value)
	assert.NotEmpty(t, res.Warnings)
}

// TestToArray_SplitAndDedupe tests splitting, trimming, and dedup order.
func TestToArray_SplitAndDedupe(t *testing.T) {
	res := ToArray("빨강, 파랑,, 빨강 ,검정", Options{Dedupe: true})
	require.True(t, res.Ok())
	assert.Equal(t, []string{"빨강", "파랑", "검정"}, res.Value)

	res = ToArray("a|b|c", Options{Separator: "|"})
	require.True(t, res.Ok())
	assert.Equal(t, []string{"a", "b", "c"}, res.Value)

	res = ToArray([]string{"x", " y "}, Options{})
	require.True(t, res.Ok())
	assert.Equal(t, []string{"x", "y"}, res.Value)

	res = ToArray(nil, Options{})
	require.True(t, res.Ok())
	assert.Equal(t, []string{}, res.Value)
}

// TestKindOf_ClosedSet tests name resolution including the unknown variant.
func TestKindOf_ClosedSet(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(""))
	assert.Equal(t, KindNumber, KindOf("toNumber"))
	assert.Equal(t, KindPrice, KindOf("price"))
	assert.Equal(t, KindCategory, KindOf("ToCategory"))
	assert.Equal(t, KindUnknown, KindOf("toMagic"))
}

// TestApply_PassThrough tests that none and unknown kinds pass values through.
func TestApply_PassThrough(t *testing.T) {
	res := Apply(KindNone, "원본", Options{})
	require.True(t, res.Ok())
	assert.Equal(t, "원본", res.Value)

	res = Apply(KindUnknown, 42, Options{})
	require.True(t, res.Ok())
	assert.Equal(t, 42, res.Value)
}
