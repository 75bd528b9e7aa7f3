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

package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

// TestDetectEncoding_UTF8BOM tests that a UTF-8 BOM is stripped.
func TestDetectEncoding_UTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,price\n셔츠,19900")...)

	res := DetectEncoding(data)

	assert.Equal(t, EncodingUTF8, res.Encoding)
	assert.Equal(t, "name,price\n셔츠,19900", res.Text)
	assert.Equal(t, 100, res.Confidence)
}

// TestDetectEncoding_UTF16LE tests decoding of Excel "Unicode text" exports.
func TestDetectEncoding_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte("name,price\n상품,1000"))
	require.NoError(t, err)

	res := DetectEncoding(data)

	assert.Equal(t, EncodingUTF16LE, res.Encoding)
	assert.Equal(t, "name,price\n상품,1000", res.Text)
}

// TestDetectEncoding_UTF16BE tests the big-endian BOM path.
func TestDetectEncoding_UTF16BE(t *testing.T) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte("a,b\n1,2"))
	require.NoError(t, err)

	res := DetectEncoding(data)

	assert.Equal(t, EncodingUTF16BE, res.Encoding)
	assert.Equal(t, "a,b\n1,2", res.Text)
}

// TestDetectEncoding_PlainUTF8 tests that clean UTF-8 passes straight through.
func TestDetectEncoding_PlainUTF8(t *testing.T) {
	res := DetectEncoding([]byte("상품명,판매가\n셔츠,19900"))

	assert.Equal(t, EncodingUTF8, res.Encoding)
	assert.Equal(t, "상품명,판매가\n셔츠,19900", res.Text)
	assert.Equal(t, 100, res.Confidence)
}

// TestDetectEncoding_EUCKR tests that a legacy EUC-KR export gets a real
// decode rather than just a flag.
func TestDetectEncoding_EUCKR(t *testing.T) {
	enc := korean.EUCKR.NewEncoder()
	data, err := enc.Bytes([]byte("상품명,판매가,판매상태\n면바지,25000,품절"))
	require.NoError(t, err)

	res := DetectEncoding(data)

	assert.Equal(t, EncodingEUCKR, res.Encoding)
	assert.Contains(t, res.Text, "상품명")
	assert.Contains(t, res.Text, "품절")
}

// TestDetectEncoding_DeclaredHint tests that a caller-declared encoding wins.
func TestDetectEncoding_DeclaredHint(t *testing.T) {
	enc := korean.EUCKR.NewEncoder()
	data, err := enc.Bytes([]byte("상품명\n셔츠"))
	require.NoError(t, err)

	res := DetectEncoding(data, WithDeclaredEncoding("CP949"))

	assert.Equal(t, EncodingEUCKR, res.Encoding)
	assert.Contains(t, res.Text, "상품명")
	assert.Equal(t, 100, res.Confidence)
}

// TestDetectEncoding_Empty tests that empty input defaults to UTF-8.
func TestDetectEncoding_Empty(t *testing.T) {
	res := DetectEncoding(nil)

	assert.Equal(t, EncodingUTF8, res.Encoding)
	assert.Equal(t, "", res.Text)
}
