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

package sellbridge_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellbridge/sellbridge"
	"github.com/sellbridge/sellbridge/filter"
	"github.com/sellbridge/sellbridge/mapping"
	"github.com/sellbridge/sellbridge/readers"
	"github.com/sellbridge/sellbridge/writers"
)

type closableBuffer struct {
	bytes.Buffer
}

func (b *closableBuffer) Close() error { return nil }

// TestPipeline_EndToEnd tests a full import flow: raw upload through profile
// mapping into a CSV export, collecting per-row errors without aborting.
func TestPipeline_EndToEnd(t *testing.T) {
	upload := []byte("상품명,판매가,판매상태\n" +
		"셔츠,\"₩19,900\",판매중\n" +
		",5000,판매중\n" + // missing required name
		"바지,29900,품절\n")

	source, err := readers.NewCSVSource(upload)
	require.NoError(t, err)

	profile := mapping.NewProfile("cafe24-products", "cafe24",
		mapping.MappingRule{SourceField: "상품명", TargetField: "name", Transform: "toString", Required: true},
		mapping.MappingRule{SourceField: "판매가", TargetField: "price", Transform: "toPrice", Required: true},
		mapping.MappingRule{SourceField: "판매상태", TargetField: "available", Transform: "toBoolean"},
	)
	require.True(t, mapping.ValidateProfile(profile).Valid)

	buf := &closableBuffer{}
	sink, err := writers.NewCSVWriter(buf, writers.WithHeaders([]string{"name", "price", "available"}))
	require.NoError(t, err)

	pipeline, err := sellbridge.NewPipeline().
		From(source).
		Transform(mapping.NewProfileTransformer(profile)).
		To(sink).
		WithErrorStrategy(sellbridge.CollectErrors).
		Build()
	require.NoError(t, err)

	require.NoError(t, pipeline.Execute(context.Background()))

	collector, ok := pipeline.ErrorHandler().(*sellbridge.ErrorCollector)
	require.True(t, ok)
	errs := collector.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "상품명")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,price,available", lines[0])
	assert.Equal(t, "셔츠,19900,true", lines[1])
	assert.Equal(t, "바지,29900,false", lines[2])
}

// TestPipeline_JSONExport tests mapping an upload into JSON lines for
// downstream marketplace adapters.
func TestPipeline_JSONExport(t *testing.T) {
	upload := []byte("상품명,판매가\n셔츠,19900\n바지,29900\n")

	source, err := readers.NewCSVSource(upload)
	require.NoError(t, err)

	profile := mapping.NewProfile("naver-products", "naver",
		mapping.MappingRule{SourceField: "상품명", TargetField: "name", Transform: "toString", Required: true},
		mapping.MappingRule{SourceField: "판매가", TargetField: "price", Transform: "toPrice", Required: true},
	)

	buf := &closableBuffer{}
	pipeline, err := sellbridge.NewPipeline().
		From(source).
		Transform(mapping.NewProfileTransformer(profile)).
		To(writers.NewJSONWriter(buf)).
		Build()
	require.NoError(t, err)

	require.NoError(t, pipeline.Execute(context.Background()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"name":"셔츠","price":19900}`, lines[0])
	assert.Equal(t, `{"name":"바지","price":29900}`, lines[1])
}

// TestPipeline_FailFast tests that the default strategy aborts on the first
// bad record.
func TestPipeline_FailFast(t *testing.T) {
	upload := []byte("상품명\n셔츠\n\n")

	source, err := readers.NewCSVSource(upload)
	require.NoError(t, err)

	profile := mapping.NewProfile("p", "naver",
		mapping.MappingRule{SourceField: "없는필드", TargetField: "name", Required: true},
	)

	pipeline, err := sellbridge.NewPipeline().
		From(source).
		Transform(mapping.NewProfileTransformer(profile)).
		To(mustWriter(t)).
		Build()
	require.NoError(t, err)

	err = pipeline.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "없는필드")
}

// TestPipeline_Filter tests that screened-out records never reach the sink.
func TestPipeline_Filter(t *testing.T) {
	upload := []byte("name,status\nShirt,판매중\nPants,품절\n")

	source, err := readers.NewCSVSource(upload)
	require.NoError(t, err)

	buf := &closableBuffer{}
	sink, err := writers.NewCSVWriter(buf, writers.WithHeaders([]string{"name", "status"}))
	require.NoError(t, err)

	pipeline, err := sellbridge.NewPipeline().
		From(source).
		Filter(filter.Equals("status", "판매중")).
		To(sink).
		Build()
	require.NoError(t, err)

	require.NoError(t, pipeline.Execute(context.Background()))
	assert.Equal(t, "name,status\nShirt,판매중\n", buf.String())
}

// TestPipeline_BuildValidation tests builder preconditions.
func TestPipeline_BuildValidation(t *testing.T) {
	_, err := sellbridge.NewPipeline().Build()
	require.Error(t, err)

	source, err := readers.NewCSVSource([]byte("a\n1\n"))
	require.NoError(t, err)
	_, err = sellbridge.NewPipeline().From(source).Build()
	assert.Error(t, err)
}

func mustWriter(t *testing.T) *writers.CSVWriter {
	t.Helper()
	w, err := writers.NewCSVWriter(&closableBuffer{})
	require.NoError(t, err)
	return w
}
