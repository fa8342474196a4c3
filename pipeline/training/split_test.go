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

package training

import (
	"testing"

	"github.com/sjwhitworth/golearn/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netkpi/kpifault/internal/kferrors"
	"github.com/netkpi/kpifault/pipeline/kpi"
)

func count(labels []int, label int) int {
	var n int
	for _, l := range labels {
		if l == label {
			n++
		}
	}

	return n
}

func TestSplit_StratifiedSplit(t *testing.T) {
	tests := []struct {
		name        string
		records     []kpi.Curated
		testPercent float64
		expect      func(t *testing.T, s *Split, err error)
	}{
		{
			name:        "hold out a share of every class",
			records:     mockLabeled(10, 5),
			testPercent: 0.2,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Equal(2, count(s.TestLabels, 0))
				assert.Equal(1, count(s.TestLabels, 1))
				assert.Equal(8, count(s.TrainLabels, 0))
				assert.Equal(4, count(s.TrainLabels, 1))

				_, rows := s.Test.Size()
				assert.Equal(3, rows)
				_, rows = s.Train.Size()
				assert.Equal(12, rows)

				for i, label := range s.TestLabels {
					assert.Equal(label == 1, base.GetClass(s.Test, i) == "1")
				}
				for i, label := range s.TrainLabels {
					assert.Equal(label == 1, base.GetClass(s.Train, i) == "1")
				}
			},
		},
		{
			name:        "small class keeps one row on each side",
			records:     mockLabeled(10, 2),
			testPercent: 0.2,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Equal(1, count(s.TestLabels, 1))
				assert.Equal(1, count(s.TrainLabels, 1))
			},
		},
		{
			name:        "large share keeps one training row",
			records:     mockLabeled(2, 2),
			testPercent: 0.9,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Equal([]int{0, 1}, s.TrainLabels)
				assert.Equal([]int{0, 1}, s.TestLabels)
			},
		},
		{
			name:        "single class",
			records:     mockLabeled(10, 0),
			testPercent: 0.2,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				assert.True(kferrors.IsData(err))
				assert.ErrorIs(err, kferrors.ErrSingleClass)
			},
		},
		{
			name:        "class with one member",
			records:     mockLabeled(10, 1),
			testPercent: 0.2,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				assert.True(kferrors.IsData(err))
				assert.ErrorIs(err, kferrors.ErrClassTooSmall)
			},
		},
		{
			name:        "invalid test percent",
			records:     mockLabeled(10, 5),
			testPercent: 1,
			expect: func(t *testing.T, s *Split, err error) {
				assert.EqualError(t, err, "test percent 1 is not in (0, 1)")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := NewDataset(tc.records)
			require.NoError(t, err)
			s, err := StratifiedSplit(ds, tc.testPercent, 42)
			tc.expect(t, s, err)
		})
	}
}

func TestSplit_Deterministic(t *testing.T) {
	assert := assert.New(t)
	ds, err := NewDataset(mockRecords(200, 1))
	require.NoError(t, err)

	a, err := StratifiedSplit(ds, 0.2, 42)
	require.NoError(t, err)
	b, err := StratifiedSplit(ds, 0.2, 42)
	require.NoError(t, err)

	_, rows := a.Test.Size()
	for i := 0; i < rows; i++ {
		assert.Equal(a.Test.RowString(i), b.Test.RowString(i))
	}
	assert.Equal(a.TestLabels, b.TestLabels)
}
