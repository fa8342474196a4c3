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
	"strconv"

	"github.com/sjwhitworth/golearn/base"

	"github.com/netkpi/kpifault/pipeline/kpi"
	"github.com/netkpi/kpifault/pipeline/training/models"
)

// ClassAttributeName is the name of the label attribute of a dataset.
const ClassAttributeName = "fault_flag"

// Dataset is the classifier view of curated records: the three features in
// model order plus the categorical fault label.
type Dataset struct {
	// Instances holds one row per usable record.
	Instances *base.DenseInstances

	// Labels are the fault labels in row order.
	Labels []int

	// Dropped is the number of records skipped for a missing feature.
	Dropped int
}

// NewDataset drops records with any missing feature and builds the grid of
// the rest, keeping record order.
func NewDataset(records []kpi.Curated) (*Dataset, error) {
	features := make([]kpi.Features, 0, len(records))
	labels := make([]int, 0, len(records))
	for i := range records {
		f, ok := records[i].Features()
		if !ok {
			continue
		}

		features = append(features, f)
		labels = append(labels, int(records[i].FaultFlag))
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(kpi.FeatureNames))
	for idx, name := range kpi.FeatureNames {
		specs[idx] = inst.AddAttribute(base.NewFloatAttribute(name))
	}

	cls := base.NewCategoricalAttribute()
	cls.SetName(ClassAttributeName)
	cls.GetSysValFromString(models.ClassNoFault)
	cls.GetSysValFromString(models.ClassFault)
	clsSpec := inst.AddAttribute(cls)
	if err := inst.AddClassAttribute(cls); err != nil {
		return nil, err
	}

	if len(features) > 0 {
		if err := inst.Extend(len(features)); err != nil {
			return nil, err
		}
	}

	for i, f := range features {
		for j, v := range f.Vector() {
			inst.Set(specs[j], i, base.PackFloatToBytes(v))
		}
		inst.Set(clsSpec, i, cls.GetSysValFromString(strconv.Itoa(labels[i])))
	}

	return &Dataset{
		Instances: inst,
		Labels:    labels,
		Dropped:   len(records) - len(features),
	}, nil
}

// ClassCounts returns the number of rows per label.
func (ds *Dataset) ClassCounts() map[int]int {
	counts := make(map[int]int)
	for _, label := range ds.Labels {
		counts[label]++
	}

	return counts
}

// BalancedWeights returns the per row weight n / (k * n_c) of each label,
// where k is the number of distinct labels and n_c the rows of label c.
func BalancedWeights(labels []int) []float64 {
	counts := make(map[int]int)
	for _, label := range labels {
		counts[label]++
	}

	n, k := float64(len(labels)), float64(len(counts))
	weights := make([]float64, len(labels))
	for i, label := range labels {
		weights[i] = n / (k * float64(counts[label]))
	}

	return weights
}
