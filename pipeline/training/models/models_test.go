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
	"encoding/json"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/sjwhitworth/golearn/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAttrs = []string{"latency", "signal", "throughput"}

func newGrid(t *testing.T, x [][]float64, y []int) *base.DenseInstances {
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(testAttrs))
	for idx, name := range testAttrs {
		specs[idx] = inst.AddAttribute(base.NewFloatAttribute(name))
	}

	cls := base.NewCategoricalAttribute()
	cls.SetName("fault")
	cls.GetSysValFromString(ClassNoFault)
	cls.GetSysValFromString(ClassFault)
	clsSpec := inst.AddAttribute(cls)
	require.NoError(t, inst.AddClassAttribute(cls))
	require.NoError(t, inst.Extend(len(x)))

	for i, row := range x {
		for j, v := range row {
			inst.Set(specs[j], i, base.PackFloatToBytes(v))
		}
		inst.Set(clsSpec, i, cls.GetSysValFromString(strconv.Itoa(y[i])))
	}

	return inst
}

// separable returns rows whose label depends only on latency.
func separable(n int) ([][]float64, []int) {
	r := rand.New(rand.NewSource(7))
	x := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		latency := r.Float64() * 400
		x[i] = []float64{latency, -60 - r.Float64()*20, 5 + r.Float64()*20}
		if latency > 250 {
			y[i] = 1
		}
	}

	return x, y
}

func ones(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}

	return w
}

func accuracy(t *testing.T, c Classifier, inst base.FixedDataGrid, y []int) float64 {
	pred, err := c.Predict(inst)
	require.NoError(t, err)

	cls := pred.AllClassAttributes()[0].(*base.CategoricalAttribute)
	spec, err := pred.GetAttribute(cls)
	require.NoError(t, err)

	var correct int
	for i, label := range y {
		if cls.GetStringFromSysVal(pred.Get(spec, i)) == strconv.Itoa(label) {
			correct++
		}
	}

	return float64(correct) / float64(len(y))
}

func TestClassifier_Fit(t *testing.T) {
	tests := []struct {
		name       string
		classifier func() Classifier
	}{
		{
			name: "logistic regression",
			classifier: func() Classifier {
				return NewLogisticRegression(0.5, 1000, 1.0)
			},
		},
		{
			name: "random forest",
			classifier: func() Classifier {
				return NewRandomForest(20, 8, 2, 42)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			x, y := separable(200)
			inst := newGrid(t, x, y)

			c := tc.classifier()
			assert.NoError(c.Fit(inst, ones(len(y))))
			assert.GreaterOrEqual(accuracy(t, c, inst, y), 0.9)

			high, err := c.Probability([]float64{390, -70, 10})
			assert.NoError(err)
			low, err := c.Probability([]float64{10, -70, 10})
			assert.NoError(err)
			assert.Greater(high, DecisionThreshold)
			assert.Less(low, DecisionThreshold)
			assert.True(high >= 0 && high <= 1)
			assert.True(low >= 0 && low <= 1)
		})
	}
}

func TestClassifier_AttributeOrder(t *testing.T) {
	tests := []struct {
		name   string
		fit    func(t *testing.T, inst base.FixedDataGrid, n int) []string
		expect []string
	}{
		{
			name: "logistic regression",
			fit: func(t *testing.T, inst base.FixedDataGrid, n int) []string {
				lr := NewLogisticRegression(0.5, 50, 1)
				require.NoError(t, lr.Fit(inst, ones(n)))
				return lr.Attrs
			},
			expect: testAttrs,
		},
		{
			name: "random forest",
			fit: func(t *testing.T, inst base.FixedDataGrid, n int) []string {
				rf := NewRandomForest(3, 4, 2, 42)
				require.NoError(t, rf.Fit(inst, ones(n)))
				return rf.Attrs
			},
			expect: testAttrs,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := separable(60)
			inst := newGrid(t, x, y)
			for i := 0; i < 20; i++ {
				assert.Equal(t, tc.expect, tc.fit(t, inst, len(y)))
			}
		})
	}
}

func TestRandomForest_DeterministicAcrossFits(t *testing.T) {
	assert := assert.New(t)
	x, y := separable(80)
	inst := newGrid(t, x, y)

	first := NewRandomForest(10, 5, 2, 42)
	require.NoError(t, first.Fit(inst, ones(len(y))))
	for i := 0; i < 10; i++ {
		rf := NewRandomForest(10, 5, 2, 42)
		require.NoError(t, rf.Fit(inst, ones(len(y))))
		assert.Equal(first.Attrs, rf.Attrs)
		assert.Equal(first.Forest, rf.Forest)
	}
}

func TestClassifier_Errors(t *testing.T) {
	tests := []struct {
		name   string
		run    func(t *testing.T, c Classifier, inst base.FixedDataGrid) error
		expect func(t *testing.T, err error)
	}{
		{
			name: "predict before fit",
			run: func(t *testing.T, c Classifier, inst base.FixedDataGrid) error {
				_, err := c.Predict(inst)
				return err
			},
			expect: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNotFitted)
			},
		},
		{
			name: "probability before fit",
			run: func(t *testing.T, c Classifier, inst base.FixedDataGrid) error {
				_, err := c.Probability([]float64{1, 2, 3})
				return err
			},
			expect: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNotFitted)
			},
		},
		{
			name: "weights do not match rows",
			run: func(t *testing.T, c Classifier, inst base.FixedDataGrid) error {
				return c.Fit(inst, ones(3))
			},
			expect: func(t *testing.T, err error) {
				assert.EqualError(t, err, "expected 20 weights, got 3")
			},
		},
		{
			name: "wrong feature count",
			run: func(t *testing.T, c Classifier, inst base.FixedDataGrid) error {
				if err := c.Fit(inst, ones(20)); err != nil {
					return err
				}
				_, err := c.Probability([]float64{1, 2})
				return err
			},
			expect: func(t *testing.T, err error) {
				assert.EqualError(t, err, "expected 3 features, got 2")
			},
		},
		{
			name: "feature is not finite",
			run: func(t *testing.T, c Classifier, inst base.FixedDataGrid) error {
				if err := c.Fit(inst, ones(20)); err != nil {
					return err
				}
				_, err := c.Probability([]float64{1, math.Inf(1), 3})
				return err
			},
			expect: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range tests {
		for _, c := range []Classifier{NewLogisticRegression(0.5, 10, 1), NewRandomForest(3, 4, 2, 1)} {
			t.Run(tc.name+"/"+c.Name(), func(t *testing.T) {
				x, y := separable(20)
				tc.expect(t, tc.run(t, c, newGrid(t, x, y)))
			})
		}
	}
}

func TestClassifier_MarshalJSON(t *testing.T) {
	x, y := separable(100)
	inst := newGrid(t, x, y)

	tests := []struct {
		name    string
		fitted  Classifier
		decoded Classifier
	}{
		{
			name:    "logistic regression",
			fitted:  NewLogisticRegression(0.5, 200, 1),
			decoded: &LogisticRegression{},
		},
		{
			name:    "random forest",
			fitted:  NewRandomForest(5, 6, 2, 42),
			decoded: &RandomForest{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			require.NoError(t, tc.fitted.Fit(inst, ones(len(y))))

			data, err := json.Marshal(tc.fitted)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(data, tc.decoded))
			assert.Equal(tc.fitted, tc.decoded)

			for _, row := range x[:10] {
				expect, err := tc.fitted.Probability(row)
				assert.NoError(err)
				got, err := tc.decoded.Probability(row)
				assert.NoError(err)
				assert.Equal(expect, got)
			}
		})
	}
}

func TestRandomForest_Deterministic(t *testing.T) {
	assert := assert.New(t)
	x, y := separable(80)
	inst := newGrid(t, x, y)

	a := NewRandomForest(10, 5, 2, 42)
	b := NewRandomForest(10, 5, 2, 42)
	assert.NoError(a.Fit(inst, ones(len(y))))
	assert.NoError(b.Fit(inst, ones(len(y))))
	assert.Equal(a.Forest, b.Forest)
	assert.Equal(1, a.MaxFeatures)
}

func TestDecisionTree_Grow(t *testing.T) {
	tests := []struct {
		name    string
		x       [][]float64
		y       []int
		weights []float64
		expect  func(t *testing.T, tree *DecisionTree)
	}{
		{
			name:    "pure rows make one leaf",
			x:       [][]float64{{1}, {2}, {3}},
			y:       []int{1, 1, 1},
			weights: []float64{1, 1, 1},
			expect: func(t *testing.T, tree *DecisionTree) {
				assert := assert.New(t)
				assert.Len(tree.Nodes, 1)
				assert.Equal(leafFeature, tree.Nodes[0].Feature)
				assert.Equal(1.0, tree.Nodes[0].Value)
			},
		},
		{
			name:    "single threshold",
			x:       [][]float64{{1}, {2}, {10}, {11}},
			y:       []int{0, 0, 1, 1},
			weights: []float64{1, 1, 1, 1},
			expect: func(t *testing.T, tree *DecisionTree) {
				assert := assert.New(t)
				assert.Len(tree.Nodes, 3)
				assert.Equal(0, tree.Nodes[0].Feature)
				assert.Equal(6.0, tree.Nodes[0].Threshold)

				p, err := tree.Probability([]float64{3})
				assert.NoError(err)
				assert.Equal(0.0, p)
				p, err = tree.Probability([]float64{9})
				assert.NoError(err)
				assert.Equal(1.0, p)
			},
		},
		{
			name:    "zero weight rows are ignored",
			x:       [][]float64{{1}, {2}, {10}},
			y:       []int{0, 0, 1},
			weights: []float64{1, 1, 0},
			expect: func(t *testing.T, tree *DecisionTree) {
				assert := assert.New(t)
				assert.Len(tree.Nodes, 1)
				assert.Equal(0.0, tree.Nodes[0].Value)
			},
		},
		{
			name:    "weights shift leaf probability",
			x:       [][]float64{{1}, {1}},
			y:       []int{0, 1},
			weights: []float64{1, 3},
			expect: func(t *testing.T, tree *DecisionTree) {
				assert := assert.New(t)
				assert.Len(tree.Nodes, 1)
				assert.Equal(0.75, tree.Nodes[0].Value)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			options := treeOptions{maxDepth: 4, minSamplesSplit: 2, maxFeatures: 1}
			tc.expect(t, growTree(tc.x, tc.y, tc.weights, options, rand.New(rand.NewSource(1))))
		})
	}
}

func TestDecisionTree_Probability(t *testing.T) {
	assert := assert.New(t)

	_, err := (&DecisionTree{}).Probability([]float64{1})
	assert.EqualError(err, "empty tree")

	tree := &DecisionTree{Nodes: []TreeNode{{Feature: 0, Threshold: 1, Left: 0, Right: 0}}}
	_, err = tree.Probability([]float64{1})
	assert.EqualError(err, "tree node out of range")

	tree = &DecisionTree{Nodes: []TreeNode{{Feature: 2, Threshold: 1, Left: 1, Right: 1}, {Feature: leafFeature}}}
	_, err = tree.Probability([]float64{1})
	assert.EqualError(err, "tree feature out of range")
}
