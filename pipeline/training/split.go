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
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/sjwhitworth/golearn/base"

	"github.com/netkpi/kpifault/internal/kferrors"
)

// Split is a train and evaluation partition of a dataset.
type Split struct {
	Train       base.FixedDataGrid
	TrainLabels []int
	Test        base.FixedDataGrid
	TestLabels  []int
}

// StratifiedSplit holds out testPercent of every label class for evaluation.
// Each class is shuffled with a generator seeded by seed, and contributes
// round(n_c * testPercent) rows to the evaluation partition, at least one
// and never all of them. Rows keep dataset order inside each partition.
func StratifiedSplit(ds *Dataset, testPercent float64, seed int64) (*Split, error) {
	if testPercent <= 0 || testPercent >= 1 {
		return nil, fmt.Errorf("test percent %v is not in (0, 1)", testPercent)
	}

	classes := make(map[int][]int)
	for i, label := range ds.Labels {
		classes[label] = append(classes[label], i)
	}

	if len(classes) < 2 {
		return nil, kferrors.New(kferrors.Data, ClassAttributeName, kferrors.ErrSingleClass)
	}

	labels := make([]int, 0, len(classes))
	for label := range classes {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	for _, label := range labels {
		if len(classes[label]) < 2 {
			return nil, kferrors.New(kferrors.Data, ClassAttributeName,
				fmt.Errorf("class %d: %w", label, kferrors.ErrClassTooSmall))
		}
	}

	r := rand.New(rand.NewSource(seed))
	var train, test []int
	for _, label := range labels {
		rows := append([]int(nil), classes[label]...)
		r.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})

		n := int(math.Round(float64(len(rows)) * testPercent))
		if n < 1 {
			n = 1
		}
		if n > len(rows)-1 {
			n = len(rows) - 1
		}

		test = append(test, rows[:n]...)
		train = append(train, rows[n:]...)
	}
	sort.Ints(train)
	sort.Ints(test)

	return &Split{
		Train:       view(ds.Instances, train),
		TrainLabels: pick(ds.Labels, train),
		Test:        view(ds.Instances, test),
		TestLabels:  pick(ds.Labels, test),
	}, nil
}

// view masks inst down to rows so that Size reports len(rows).
func view(inst base.FixedDataGrid, rows []int) base.FixedDataGrid {
	return base.NewInstancesViewFromVisible(inst, rows, inst.AllAttributes())
}

func pick(labels []int, rows []int) []int {
	ret := make([]int, len(rows))
	for i, row := range rows {
		ret[i] = labels[row]
	}

	return ret
}
