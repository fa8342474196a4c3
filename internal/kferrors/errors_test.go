/*
 *     Copyright 2024 The Kpifault Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kferrors

import (
	"errors"
	"os"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		expect string
	}{
		{
			name:   "error with resource",
			err:    New(NotFound, "data/raw/signal_metrics.csv", os.ErrNotExist),
			expect: "[not found] data/raw/signal_metrics.csv: file does not exist",
		},
		{
			name:   "error without resource",
			err:    New(Data, "", ErrSingleClass),
			expect: "[data] fewer than two label classes",
		},
		{
			name:   "formatted error",
			err:    Newf(Schema, "raw.csv", "missing column %q", "Latency (ms)"),
			expect: `[schema] raw.csv: missing column "Latency (ms)"`,
		},
		{
			name:   "unknown code",
			err:    New(Code(42), "x", errors.New("boom")),
			expect: "[code(42)] x: boom",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, tc.err.Error())
		})
	}
}

func TestError_CheckError(t *testing.T) {
	assert := assert.New(t)

	err := pkgerrors.Wrap(New(Persistence, "kpi_metrics", errors.New("disk full")), "load stage")
	assert.True(IsPersistence(err))
	assert.False(IsNotFound(err))
	assert.False(CheckError(nil, Persistence))
	assert.False(CheckError(errors.New("plain"), Persistence))

	err = New(Data, "", ErrNoViableModel)
	assert.True(IsData(err))
	assert.ErrorIs(err, ErrNoViableModel)
	assert.True(IsValidation(New(Validation, "row 3", ErrMissingValue)))
	assert.True(IsSchema(New(Schema, "raw.csv", errors.New("x"))))
}
