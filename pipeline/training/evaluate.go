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
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"

	"github.com/netkpi/kpifault/pipeline/training/models"
)

// Report is the evaluation of one candidate on the evaluation partition.
type Report struct {
	// Candidate is the classifier name.
	Candidate string

	// Recall of the fault class, TP / (TP + FN).
	Recall float64

	// Accuracy over both classes.
	Accuracy float64

	// Summary is the per class precision, recall and F1 table.
	Summary string

	// ConfusionMatrix is the rendered confusion matrix.
	ConfusionMatrix string
}

// Evaluate predicts the evaluation partition with a fitted classifier and
// scores it against the partition labels.
func Evaluate(c models.Classifier, test base.FixedDataGrid) (*Report, error) {
	predictions, err := c.Predict(test)
	if err != nil {
		return nil, err
	}

	cm, err := evaluation.GetConfusionMatrix(test, predictions)
	if err != nil {
		return nil, err
	}

	return &Report{
		Candidate:       c.Name(),
		Recall:          evaluation.GetRecall(models.ClassFault, cm),
		Accuracy:        evaluation.GetAccuracy(cm),
		Summary:         evaluation.GetSummary(cm),
		ConfusionMatrix: evaluation.ShowConfusionMatrix(cm),
	}, nil
}
