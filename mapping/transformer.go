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
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sellbridge/sellbridge"
)

// MappingError wraps structured error information for the mapping engine.
type MappingError struct {
	Op  string
	Err error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping %s: %v", e.Op, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// ProfileTransformer adapts a MappingProfile to the sellbridge.Transformer
// interface so a profile can sit inside a streaming pipeline. A failed record
// returns its best-effort data alongside the error; under CollectErrors the
// pipeline keeps going.
type ProfileTransformer struct {
	profile *MappingProfile
}

// NewProfileTransformer wraps a profile for pipeline use.
func NewProfileTransformer(profile *MappingProfile) *ProfileTransformer {
	return &ProfileTransformer{profile: profile}
}

// Transform implements the sellbridge.Transformer interface.
func (t *ProfileTransformer) Transform(ctx context.Context, record sellbridge.Record) (sellbridge.Record, error) {
	rr := TransformData(record, t.profile)
	if !rr.Success {
		return rr.Data, &MappingError{Op: "transform", Err: errors.New(strings.Join(rr.Errors, "; "))}
	}
	return rr.Data, nil
}
