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

	"github.com/netkpi/kpifault/pipeline/kpi"
)

func TestDataset_NewDataset(t *testing.T) {
	tests := []struct {
		name    string
		records func() []kpi.Curated
		expect  func(t *testing.T, ds *Dataset, err error)
	}{
		{
			name: "drop records with missing features",
			records: func() []kpi.Curated {
				records := mockLabeled(3, 2)
				records[1].Latency = nil
				records[4].SignalStrength = nil
				return records
			},
			expect: func(t *testing.T, ds *Dataset, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(2, ds.Dropped)
				assert.Equal([]int{0, 0, 1}, ds.Labels)
				assert.Equal(map[int]int{0: 2, 1: 1}, ds.ClassCounts())

				cols, rows := ds.Instances.Size()
				assert.Equal(4, cols)
				assert.Equal(3, rows)

				attrs := ds.Instances.AllAttributes()[:len(kpi.FeatureNames)]
				names := make([]string, len(attrs))
				for idx, a := range attrs {
					names[idx] = a.GetName()
				}
				assert.Equal(kpi.FeatureNames, names)

				specs := base.ResolveAttributes(ds.Instances, attrs)
				assert.Equal(503.0, base.UnpackBytesToFloat(ds.Instances.Get(specs[0], 2)))
				assert.Equal(-70.0, base.UnpackBytesToFloat(ds.Instances.Get(specs[1], 0)))
				assert.Equal(10.0, base.UnpackBytesToFloat(ds.Instances.Get(specs[2], 0)))
				assert.Equal("1", base.GetClass(ds.Instances, 2))
				assert.Equal("0", base.GetClass(ds.Instances, 0))
			},
		},
		{
			name: "no records",
			records: func() []kpi.Curated {
				return nil
			},
			expect: func(t *testing.T, ds *Dataset, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Empty(ds.Labels)
				assert.Equal(0, ds.Dropped)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := NewDataset(tc.records())
			tc.expect(t, ds, err)
		})
	}
}

func TestDataset_BalancedWeights(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
		expect []float64
	}{
		{
			name:   "balanced classes",
			labels: []int{0, 1, 0, 1},
			expect: []float64{1, 1, 1, 1},
		},
		{
			name:   "imbalanced classes",
			labels: []int{0, 0, 0, 1},
			expect: []float64{4.0 / 6.0, 4.0 / 6.0, 4.0 / 6.0, 2},
		},
		{
			name:   "empty labels",
			labels: []int{},
			expect: []float64{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDeltaSlice(t, tc.expect, BalancedWeights(tc.labels), 1e-12)
		})
	}
}
