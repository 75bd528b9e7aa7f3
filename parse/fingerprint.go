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

package parse

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"sort"
	"strings"
)

// Fingerprint derives a stable template identifier from a file's header set,
// delimiter, and encoding. Headers are trimmed, lowercased, and sorted before
// hashing, so two exports of the same template match even when columns are
// reordered or recased. Collision resistance only needs to cover accidents,
// not adversaries; SHA-1 is plenty.
func Fingerprint(headers []string, delimiter, encoding string) string {
	norm := make([]string, 0, len(headers))
	for _, h := range headers {
		norm = append(norm, strings.ToLower(strings.TrimSpace(h)))
	}
	sort.Strings(norm)

	h := sha1.New()
	io.WriteString(h, strings.Join(norm, "\x1f"))
	io.WriteString(h, "\x1e")
	io.WriteString(h, delimiter)
	io.WriteString(h, "\x1e")
	io.WriteString(h, encoding)
	return hex.EncodeToString(h.Sum(nil))
}
