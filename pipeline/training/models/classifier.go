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
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"
)

const (
	// ClassNoFault is the class value of healthy rows.
	ClassNoFault = "0"

	// ClassFault is the class value of degraded rows.
	ClassFault = "1"

	// DecisionThreshold is the fault probability above which a row is labeled a fault.
	DecisionThreshold = 0.5
)

// ErrNotFitted is returned when a model is used before Fit.
var ErrNotFitted = errors.New("no fitted model")

// Classifier is a binary fault classifier trained on a golearn grid whose
// single class attribute is categorical with values "0" and "1".
type Classifier interface {
	// Name returns the candidate name of the classifier.
	Name() string

	// Fit trains the classifier with one sample weight per row of inst.
	Fit(inst base.FixedDataGrid, weights []float64) error

	// Predict labels every row of X.
	Predict(X base.FixedDataGrid) (base.FixedDataGrid, error)

	// Probability returns the fault probability of a feature vector in
	// the attribute order the classifier was fitted with.
	Probability(x []float64) (float64, error)
}

// sample is a grid read into plain slices.
type sample struct {
	attrs []string
	x     [][]float64
	y     []int
}

func readSample(inst base.FixedDataGrid, weights []float64) (*sample, error) {
	_, rows := inst.Size()
	if rows == 0 {
		return nil, errors.New("no rows to fit")
	}

	if len(weights) != rows {
		return nil, fmt.Errorf("expected %d weights, got %d", rows, len(weights))
	}

	cls, clsSpec, err := classAttribute(inst)
	if err != nil {
		return nil, err
	}

	attrs := floatAttributes(inst)
	if len(attrs) == 0 {
		return nil, errors.New("no float attributes to fit")
	}
	attrSpecs := base.ResolveAttributes(inst, attrs)

	s := &sample{
		attrs: make([]string, len(attrs)),
		x:     make([][]float64, rows),
		y:     make([]int, rows),
	}
	for idx, a := range attrs {
		s.attrs[idx] = a.GetName()
	}

	for i := 0; i < rows; i++ {
		row := make([]float64, len(attrSpecs))
		for j, spec := range attrSpecs {
			row[j] = base.UnpackBytesToFloat(inst.Get(spec, i))
		}
		s.x[i] = row

		switch label := cls.GetStringFromSysVal(inst.Get(clsSpec, i)); label {
		case ClassFault:
			s.y[i] = 1
		case ClassNoFault:
			s.y[i] = 0
		default:
			return nil, fmt.Errorf("unknown class %q at row %d", label, i)
		}
	}

	return s, nil
}

func classAttribute(inst base.FixedDataGrid) (*base.CategoricalAttribute, base.AttributeSpec, error) {
	classAttrs := inst.AllClassAttributes()
	if len(classAttrs) != 1 {
		return nil, base.AttributeSpec{}, errors.New("only 1 class variable is permitted")
	}

	cls, ok := classAttrs[0].(*base.CategoricalAttribute)
	if !ok {
		return nil, base.AttributeSpec{}, errors.New("class variable must be categorical")
	}

	spec, err := inst.GetAttribute(cls)
	if err != nil {
		return nil, base.AttributeSpec{}, err
	}

	return cls, spec, nil
}

// floatAttributes returns the float feature attributes of inst in the
// order the grid declares them.
func floatAttributes(inst base.FixedDataGrid) []base.Attribute {
	classAttrs := inst.AllClassAttributes()
	attrs := make([]base.Attribute, 0)
	for _, a := range inst.AllAttributes() {
		if _, ok := a.(*base.FloatAttribute); !ok {
			continue
		}

		if isClassAttribute(a, classAttrs) {
			continue
		}
		attrs = append(attrs, a)
	}

	return attrs
}

func isClassAttribute(a base.Attribute, classAttrs []base.Attribute) bool {
	for _, c := range classAttrs {
		if c.Equals(a) {
			return true
		}
	}

	return false
}

// predict labels the rows of X with the fault probability of each row,
// reading the attributes named attrs.
func predict(X base.FixedDataGrid, attrs []string, probability func([]float64) (float64, error)) (base.FixedDataGrid, error) {
	byName := make(map[string]base.Attribute)
	for _, a := range floatAttributes(X) {
		byName[a.GetName()] = a
	}

	resolved := make([]base.Attribute, len(attrs))
	for idx, name := range attrs {
		a, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("attribute %q not found", name)
		}
		resolved[idx] = a
	}
	attrSpecs := base.ResolveAttributes(X, resolved)

	cls, _, err := classAttribute(X)
	if err != nil {
		return nil, err
	}

	ret := base.GeneratePredictionVector(X)
	clsSpec, err := ret.GetAttribute(cls)
	if err != nil {
		return nil, err
	}

	_, rows := X.Size()
	row := make([]float64, len(attrSpecs))
	for i := 0; i < rows; i++ {
		for j, spec := range attrSpecs {
			row[j] = base.UnpackBytesToFloat(X.Get(spec, i))
		}

		p, err := probability(row)
		if err != nil {
			return nil, err
		}

		label := ClassNoFault
		if p > DecisionThreshold {
			label = ClassFault
		}
		ret.Set(clsSpec, i, cls.GetSysValFromString(label))
	}

	return ret, nil
}

func checkVector(x []float64, size int) error {
	if len(x) != size {
		return fmt.Errorf("expected %d features, got %d", size, len(x))
	}

	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("feature value %v is not finite", v)
		}
	}

	return nil
}
