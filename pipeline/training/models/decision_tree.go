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
	"math/rand"
	"sort"
)

// leafFeature marks a leaf node.
const leafFeature = -1

// TreeNode is a node of a DecisionTree. Inner nodes send rows with
// x[Feature] <= Threshold to Left and the rest to Right; leaves hold the
// weighted fault probability of the rows that reached them.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// DecisionTree is a CART classification tree grown with weighted gini
// impurity. Nodes are stored flat with the root at index 0.
type DecisionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

type treeOptions struct {
	maxDepth        int
	minSamplesSplit int
	maxFeatures     int
}

type treeBuilder struct {
	x       [][]float64
	y       []int
	weights []float64
	options treeOptions
	rand    *rand.Rand
	nodes   []TreeNode
}

// growTree builds a tree over the rows of x with a positive weight.
func growTree(x [][]float64, y []int, weights []float64, options treeOptions, r *rand.Rand) *DecisionTree {
	rows := make([]int, 0, len(x))
	for i, w := range weights {
		if w > 0 {
			rows = append(rows, i)
		}
	}

	b := &treeBuilder{
		x:       x,
		y:       y,
		weights: weights,
		options: options,
		rand:    r,
	}
	b.build(rows, 0)

	return &DecisionTree{Nodes: b.nodes}
}

func (b *treeBuilder) build(rows []int, depth int) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, TreeNode{Feature: leafFeature})

	w0, w1 := b.classWeights(rows)
	value := 0.0
	if w0+w1 > 0 {
		value = w1 / (w0 + w1)
	}
	b.nodes[idx].Value = value

	if w0 == 0 || w1 == 0 || len(rows) < b.options.minSamplesSplit ||
		(b.options.maxDepth > 0 && depth >= b.options.maxDepth) {
		return idx
	}

	feature, threshold, ok := b.bestSplit(rows, gini(w0, w1))
	if !ok {
		return idx
	}

	left := make([]int, 0, len(rows))
	right := make([]int, 0, len(rows))
	for _, i := range rows {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[idx] = TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      l,
		Right:     r,
		Value:     value,
	}

	return idx
}

func (b *treeBuilder) classWeights(rows []int) (float64, float64) {
	var w0, w1 float64
	for _, i := range rows {
		if b.y[i] == 1 {
			w1 += b.weights[i]
		} else {
			w0 += b.weights[i]
		}
	}

	return w0, w1
}

// bestSplit returns the split among a random feature subset with the
// lowest weighted gini impurity, if it is lower than parent.
func (b *treeBuilder) bestSplit(rows []int, parent float64) (int, float64, bool) {
	cols := len(b.x[rows[0]])
	features := b.rand.Perm(cols)
	if b.options.maxFeatures > 0 && b.options.maxFeatures < cols {
		features = features[:b.options.maxFeatures]
	}

	var (
		bestFeature   int
		bestThreshold float64
		bestImpurity  = parent
		found         bool
	)

	sorted := make([]int, len(rows))
	for _, f := range features {
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x[sorted[i]][f] < b.x[sorted[j]][f]
		})

		total0, total1 := b.classWeights(sorted)
		total := total0 + total1
		var l0, l1 float64
		for k := 0; k < len(sorted)-1; k++ {
			i := sorted[k]
			if b.y[i] == 1 {
				l1 += b.weights[i]
			} else {
				l0 += b.weights[i]
			}

			current, next := b.x[i][f], b.x[sorted[k+1]][f]
			if current == next {
				continue
			}

			r0, r1 := total0-l0, total1-l1
			impurity := ((l0+l1)*gini(l0, l1) + (r0+r1)*gini(r0, r1)) / total
			if impurity < bestImpurity {
				bestFeature = f
				bestThreshold = current + (next-current)/2
				bestImpurity = impurity
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func gini(w0, w1 float64) float64 {
	total := w0 + w1
	if total == 0 {
		return 0
	}

	p0, p1 := w0/total, w1/total
	return 1 - p0*p0 - p1*p1
}

// Probability walks x down to a leaf and returns its fault probability.
func (t *DecisionTree) Probability(x []float64) (float64, error) {
	if len(t.Nodes) == 0 {
		return 0, errors.New("empty tree")
	}

	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		node := t.Nodes[idx]
		if node.Feature == leafFeature {
			return node.Value, nil
		}

		if node.Feature < 0 || node.Feature >= len(x) {
			return 0, errors.New("tree feature out of range")
		}

		next := node.Right
		if x[node.Feature] <= node.Threshold {
			next = node.Left
		}

		if next <= idx || next >= len(t.Nodes) {
			return 0, errors.New("tree node out of range")
		}
		idx = next
	}

	return 0, errors.New("tree has a cycle")
}
