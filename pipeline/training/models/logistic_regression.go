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
	"errors"
	"math"

	"github.com/mitchellh/mapstructure"
	"github.com/sjwhitworth/golearn/base"

	logger "github.com/netkpi/kpifault/internal/kflog"
)

// LogisticRegressionName is the candidate name of LogisticRegression.
const LogisticRegressionName = "logistic_regression"

// LogisticRegression is a weighted L2 regularized logistic regression fitted
// by batch gradient descent on standardized features.
type LogisticRegression struct {
	Fitted       bool      `json:"fitted" mapstructure:"fitted"`
	LearningRate float64   `json:"learning_rate" mapstructure:"learning_rate"`
	Epochs       int       `json:"epochs" mapstructure:"epochs"`
	L2           float64   `json:"l2" mapstructure:"l2"`
	Intercept    float64   `json:"intercept" mapstructure:"intercept"`
	Coefficients []float64 `json:"coefficients" mapstructure:"coefficients"`
	Mean         []float64 `json:"mean" mapstructure:"mean"`
	Scale        []float64 `json:"scale" mapstructure:"scale"`
	Attrs        []string  `json:"attrs" mapstructure:"attrs"`
}

// NewLogisticRegression return an instance of logistic regression model.
func NewLogisticRegression(learningRate float64, epochs int, l2 float64) *LogisticRegression {
	return &LogisticRegression{
		LearningRate: learningRate,
		Epochs:       epochs,
		L2:           l2,
	}
}

func (lr *LogisticRegression) Name() string {
	return LogisticRegressionName
}

// Fit train parameters of model to fit the data provided.
func (lr *LogisticRegression) Fit(inst base.FixedDataGrid, weights []float64) error {
	if lr.LearningRate <= 0 || lr.Epochs <= 0 {
		return errors.New("learning rate and epochs must be positive")
	}

	s, err := readSample(inst, weights)
	if err != nil {
		return err
	}

	cols := len(s.attrs)
	mean, scale := standardize(s.x, cols)

	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return errors.New("sample weights must sum to a positive value")
	}

	coefficients := make([]float64, cols)
	var intercept float64
	z := make([]float64, cols)
	gradient := make([]float64, cols)
	for epoch := 0; epoch < lr.Epochs; epoch++ {
		for j := range gradient {
			gradient[j] = 0
		}
		var interceptGradient float64

		for i, row := range s.x {
			out := intercept
			for j := 0; j < cols; j++ {
				z[j] = (row[j] - mean[j]) / scale[j]
				out += coefficients[j] * z[j]
			}

			residual := weights[i] * (sigmoid(out) - float64(s.y[i]))
			interceptGradient += residual
			for j := 0; j < cols; j++ {
				gradient[j] += residual * z[j]
			}
		}

		intercept -= lr.LearningRate * interceptGradient / total
		for j := 0; j < cols; j++ {
			coefficients[j] -= lr.LearningRate * (gradient[j] + lr.L2*coefficients[j]) / total
		}
	}

	lr.Intercept = intercept
	lr.Coefficients = coefficients
	lr.Mean = mean
	lr.Scale = scale
	lr.Attrs = s.attrs
	lr.Fitted = true
	logger.Debugf("logistic regression fitted with intercept %f and coefficients %v", intercept, coefficients)
	return nil
}

// Predict use parameters of model to predict the data provided.
func (lr *LogisticRegression) Predict(X base.FixedDataGrid) (base.FixedDataGrid, error) {
	if !lr.Fitted {
		logger.Info("no fitted model")
		return nil, ErrNotFitted
	}

	return predict(X, lr.Attrs, lr.Probability)
}

func (lr *LogisticRegression) Probability(x []float64) (float64, error) {
	if !lr.Fitted {
		return 0, ErrNotFitted
	}

	if err := checkVector(x, len(lr.Coefficients)); err != nil {
		return 0, err
	}

	out := lr.Intercept
	for j, v := range x {
		out += lr.Coefficients[j] * (v - lr.Mean[j]) / lr.Scale[j]
	}

	return sigmoid(out), nil
}

func (lr *LogisticRegression) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"fitted":        lr.Fitted,
		"learning_rate": lr.LearningRate,
		"epochs":        lr.Epochs,
		"l2":            lr.L2,
		"intercept":     lr.Intercept,
		"coefficients":  lr.Coefficients,
		"mean":          lr.Mean,
		"scale":         lr.Scale,
		"attrs":         lr.Attrs,
	})
}

func (lr *LogisticRegression) UnmarshalJSON(data []byte) error {
	var d map[string]interface{}
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}

	if err := mapstructure.Decode(d, lr); err != nil {
		return err
	}

	if lr.Fitted && (len(lr.Mean) != len(lr.Coefficients) || len(lr.Scale) != len(lr.Coefficients)) {
		return errors.New("logistic regression parameters have mismatched lengths")
	}

	return nil
}

// standardize returns the column means and standard deviations of x,
// with a zero deviation replaced by 1.
func standardize(x [][]float64, cols int) ([]float64, []float64) {
	mean := make([]float64, cols)
	scale := make([]float64, cols)
	n := float64(len(x))

	for _, row := range x {
		for j := 0; j < cols; j++ {
			mean[j] += row[j]
		}
	}
	for j := range mean {
		mean[j] /= n
	}

	for _, row := range x {
		for j := 0; j < cols; j++ {
			scale[j] += (row[j] - mean[j]) * (row[j] - mean[j])
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / n)
		if scale[j] == 0 {
			scale[j] = 1
		}
	}

	return mean, scale
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}

	e := math.Exp(z)
	return e / (1 + e)
}
