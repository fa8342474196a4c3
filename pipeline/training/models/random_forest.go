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

package models

import (
	"errors"
	"math"
	"math/rand"

	"github.com/sjwhitworth/golearn/base"

	logger "github.com/netkpi/kpifault/internal/kflog"
)

// RandomForestName is the candidate name of RandomForest.
const RandomForestName = "random_forest"

// RandomForest is a bagged ensemble of decision trees whose fault
// probability is the mean of the tree probabilities.
type RandomForest struct {
	Fitted          bool            `json:"fitted"`
	Trees           int             `json:"trees"`
	MaxDepth        int             `json:"maxDepth"`
	MinSamplesSplit int             `json:"minSamplesSplit"`
	MaxFeatures     int             `json:"maxFeatures"`
	Seed            int64           `json:"seed"`
	Attrs           []string        `json:"attrs"`
	Forest          []*DecisionTree `json:"forest"`
}

// NewRandomForest return an instance of random forest model.
func NewRandomForest(trees, maxDepth, minSamplesSplit int, seed int64) *RandomForest {
	return &RandomForest{
		Trees:           trees,
		MaxDepth:        maxDepth,
		MinSamplesSplit: minSamplesSplit,
		Seed:            seed,
	}
}

func (rf *RandomForest) Name() string {
	return RandomForestName
}

// Fit grows every tree on a seeded bootstrap of the rows. A row drawn k
// times carries k times its sample weight.
func (rf *RandomForest) Fit(inst base.FixedDataGrid, weights []float64) error {
	if rf.Trees <= 0 {
		return errors.New("random forest requires at least one tree")
	}

	s, err := readSample(inst, weights)
	if err != nil {
		return err
	}

	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(len(s.attrs))))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	minSamplesSplit := rf.MinSamplesSplit
	if minSamplesSplit < 2 {
		minSamplesSplit = 2
	}

	options := treeOptions{
		maxDepth:        rf.MaxDepth,
		minSamplesSplit: minSamplesSplit,
		maxFeatures:     maxFeatures,
	}

	r := rand.New(rand.NewSource(rf.Seed))
	rows := len(s.x)
	forest := make([]*DecisionTree, 0, rf.Trees)
	bootstrap := make([]float64, rows)
	for t := 0; t < rf.Trees; t++ {
		for i := range bootstrap {
			bootstrap[i] = 0
		}
		for i := 0; i < rows; i++ {
			bootstrap[r.Intn(rows)]++
		}
		for i := range bootstrap {
			bootstrap[i] *= weights[i]
		}

		forest = append(forest, growTree(s.x, s.y, bootstrap, options, r))
	}

	rf.MaxFeatures = maxFeatures
	rf.Attrs = s.attrs
	rf.Forest = forest
	rf.Fitted = true
	logger.Debugf("random forest fitted with %d trees", len(forest))
	return nil
}

// Predict use parameters of model to predict the data provided.
func (rf *RandomForest) Predict(X base.FixedDataGrid) (base.FixedDataGrid, error) {
	if !rf.Fitted {
		logger.Info("no fitted model")
		return nil, ErrNotFitted
	}

	return predict(X, rf.Attrs, rf.Probability)
}

func (rf *RandomForest) Probability(x []float64) (float64, error) {
	if !rf.Fitted || len(rf.Forest) == 0 {
		return 0, ErrNotFitted
	}

	if err := checkVector(x, len(rf.Attrs)); err != nil {
		return 0, err
	}

	var sum float64
	for _, tree := range rf.Forest {
		p, err := tree.Probability(x)
		if err != nil {
			return 0, err
		}
		sum += p
	}

	return sum / float64(len(rf.Forest)), nil
}
