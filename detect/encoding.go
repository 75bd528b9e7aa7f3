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
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

// Package detect infers the encoding and CSV dialect of uploaded marketplace
// files. Marketplace exports in the Korean market are a mix of UTF-8 (with
// and without BOM), UTF-16 (Excel "Unicode text"), and EUC-KR/CP949 legacy
// files, so detection has to happen before any tokenization.

// Canonical encoding tags.
const (
	EncodingUTF8    = "UTF-8"
	EncodingUTF16LE = "UTF-16LE"
	EncodingUTF16BE = "UTF-16BE"
	EncodingEUCKR   = "EUC-KR"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// EncodingResult is the outcome of encoding detection. Text always holds a
// usable decode of the input; detection never fails.
type EncodingResult struct {
	// Encoding is the canonical tag of the encoding the text was decoded from.
	Encoding string
	// Text is the decoded content with any BOM stripped.
	Text string
	// Confidence is 0-100. BOM and clean strict-UTF-8 decodes score 100;
	// charset-detector hypotheses carry the detector's own confidence.
	Confidence int
}

// EncodingOptions configures encoding detection.
type EncodingOptions struct {
	// Declared forces a specific encoding (a caller-supplied hint, e.g. from
	// an upload form). When set and decodable, detection is skipped.
	Declared string
}

// EncodingOption is a functional option for DetectEncoding.
type EncodingOption func(*EncodingOptions)

// WithDeclaredEncoding sets a caller-declared encoding hint.
func WithDeclaredEncoding(tag string) EncodingOption {
	return func(o *EncodingOptions) { o.Declared = tag }
}

// DetectEncoding decodes a raw upload buffer into text. The order of signals:
// caller-declared encoding, BOM, strict UTF-8 validity, then a charset
// detector hypothesis. A non-UTF-8 hypothesis (EUC-KR/CP949) is resolved with
// a real decode, not just flagged, and the detector's confidence is reported
// alongside. The fallback is a lossy UTF-8 interpretation; DetectEncoding
// never returns an error.
func DetectEncoding(data []byte, options ...EncodingOption) EncodingResult {
	var opts EncodingOptions
	for _, opt := range options {
		opt(&opts)
	}

	if len(data) == 0 {
		return EncodingResult{Encoding: EncodingUTF8, Confidence: 100}
	}

	if opts.Declared != "" {
		if res, ok := decodeAs(data, opts.Declared); ok {
			return res
		}
	}

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingResult{Encoding: EncodingUTF8, Text: string(data[len(bomUTF8):]), Confidence: 100}
	case bytes.HasPrefix(data, bomUTF16LE):
		if text, err := decodeUTF16(data[2:], unicode.LittleEndian); err == nil {
			return EncodingResult{Encoding: EncodingUTF16LE, Text: text, Confidence: 100}
		}
	case bytes.HasPrefix(data, bomUTF16BE):
		if text, err := decodeUTF16(data[2:], unicode.BigEndian); err == nil {
			return EncodingResult{Encoding: EncodingUTF16BE, Text: text, Confidence: 100}
		}
	}

	// Strict UTF-8 decode. A replacement character inside otherwise valid
	// UTF-8 usually means the bytes were already mis-decoded once upstream,
	// so that case also falls through to the charset detector.
	if utf8.Valid(data) && !bytes.ContainsRune(data, utf8.RuneError) {
		return EncodingResult{Encoding: EncodingUTF8, Text: string(data), Confidence: 100}
	}

	if res, ok := detectLegacy(data); ok {
		return res
	}

	// Last resort: keep whatever is valid, replace the rest.
	return EncodingResult{Encoding: EncodingUTF8, Text: string(data), Confidence: 10}
}

// detectLegacy consults the charset detector and performs a real decode for
// the EUC-KR/CP949 family.
func detectLegacy(data []byte) (EncodingResult, bool) {
	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || best == nil {
		// No detector signal; still try EUC-KR, the dominant legacy
		// encoding for Korean marketplace exports.
		if text, derr := decodeEUCKR(data); derr == nil {
			return EncodingResult{Encoding: EncodingEUCKR, Text: text, Confidence: 30}, true
		}
		return EncodingResult{}, false
	}

	switch strings.ToUpper(best.Charset) {
	case "EUC-KR", "UHC", "CP949", "WINDOWS-949":
		if text, derr := decodeEUCKR(data); derr == nil {
			return EncodingResult{Encoding: EncodingEUCKR, Text: text, Confidence: best.Confidence}, true
		}
	case "UTF-16LE":
		if text, derr := decodeUTF16(data, unicode.LittleEndian); derr == nil {
			return EncodingResult{Encoding: EncodingUTF16LE, Text: text, Confidence: best.Confidence}, true
		}
	case "UTF-16BE":
		if text, derr := decodeUTF16(data, unicode.BigEndian); derr == nil {
			return EncodingResult{Encoding: EncodingUTF16BE, Text: text, Confidence: best.Confidence}, true
		}
	}

	// Unsupported hypothesis (e.g. a Cyrillic charmap). Try EUC-KR anyway
	// before giving up; it rejects byte sequences outside the code space.
	if text, derr := decodeEUCKR(data); derr == nil && !utf8.Valid(data) {
		return EncodingResult{Encoding: EncodingEUCKR, Text: text, Confidence: best.Confidence / 2}, true
	}
	return EncodingResult{}, false
}

// decodeAs decodes with a caller-declared tag. Unknown tags report failure so
// detection can proceed.
func decodeAs(data []byte, tag string) (EncodingResult, bool) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "UTF-8", "UTF8":
		text := string(bytes.TrimPrefix(data, bomUTF8))
		return EncodingResult{Encoding: EncodingUTF8, Text: text, Confidence: 100}, true
	case "EUC-KR", "EUCKR", "CP949", "MS949":
		if text, err := decodeEUCKR(data); err == nil {
			return EncodingResult{Encoding: EncodingEUCKR, Text: text, Confidence: 100}, true
		}
	case "UTF-16", "UTF-16LE":
		if text, err := decodeUTF16(bytes.TrimPrefix(data, bomUTF16LE), unicode.LittleEndian); err == nil {
			return EncodingResult{Encoding: EncodingUTF16LE, Text: text, Confidence: 100}, true
		}
	case "UTF-16BE":
		if text, err := decodeUTF16(bytes.TrimPrefix(data, bomUTF16BE), unicode.BigEndian); err == nil {
			return EncodingResult{Encoding: EncodingUTF16BE, Text: text, Confidence: 100}, true
		}
	}
	return EncodingResult{}, false
}

// decodeEUCKR decodes as EUC-KR/CP949. The x/text decoder substitutes
// replacement runes instead of failing, so a substitution is treated as a
// decode failure here: it means the bytes were not actually EUC-KR.
func decodeEUCKR(data []byte) (string, error) {
	out, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", errInvalidEUCKR
	}
	return string(out), nil
}

var errInvalidEUCKR = errors.New("byte sequence outside the EUC-KR code space")

func decodeUTF16(data []byte, endian unicode.Endianness) (string, error) {
	dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
