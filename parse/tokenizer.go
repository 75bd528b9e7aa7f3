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
	"strings"
)

// SplitRows splits decoded CSV text into logical rows of trimmed fields.
// Physical lines accumulate into a pending buffer until the quote count is
// even, so a real newline inside a quoted field stays inside one field
// instead of starting a new row. Leading and trailing blank logical rows are
// dropped.
func SplitRows(text string, delimiter rune) [][]string {
	var rows [][]string
	var pending strings.Builder
	quotes := 0

	flush := func() {
		row := pending.String()
		pending.Reset()
		quotes = 0
		if strings.TrimSpace(row) == "" && len(rows) == 0 {
			// Leading blank row.
			return
		}
		rows = append(rows, TokenizeLine(row, delimiter))
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if quotes%2 == 1 {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)
		quotes += strings.Count(line, `"`)
		if quotes%2 == 0 {
			flush()
		}
	}
	if pending.Len() > 0 {
		// Unterminated quote at EOF: emit what accumulated.
		flush()
	}

	// Trailing blank rows.
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

// TokenizeLine splits one logical row into fields. A double quote toggles
// quote state unless it is an escaped "" pair, which emits a single literal
// quote. The delimiter only splits outside quotes. Every field is trimmed
// after extraction.
func TokenizeLine(line string, delimiter rune) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case r == delimiter && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))
	return fields
}

func isBlankRow(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}
