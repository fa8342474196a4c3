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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/netkpi/kpifault/internal/kferrors"
	"github.com/netkpi/kpifault/pipeline/kpi"
	"github.com/netkpi/kpifault/pipeline/training/models"
	"github.com/netkpi/kpifault/pkg/fileutils"
)

// Artifact is a persisted classifier with the metadata needed to score
// feature vectors.
type Artifact struct {
	// Kind is the candidate name of the classifier.
	Kind string

	// Features are the feature names in model order.
	Features []string

	// Recall is the evaluation recall of the fault class.
	Recall float64

	// TrainedAt is the time the artifact was selected.
	TrainedAt time.Time

	// Classifier is the fitted model.
	Classifier models.Classifier
}

type artifactJSON struct {
	Kind      string          `json:"kind"`
	Features  []string        `json:"features"`
	Recall    float64         `json:"recall"`
	TrainedAt time.Time       `json:"trainedAt"`
	Model     json.RawMessage `json:"model"`
}

func (a *Artifact) MarshalJSON() ([]byte, error) {
	model, err := json.Marshal(a.Classifier)
	if err != nil {
		return nil, err
	}

	return json.Marshal(artifactJSON{
		Kind:      a.Kind,
		Features:  a.Features,
		Recall:    a.Recall,
		TrainedAt: a.TrainedAt,
		Model:     model,
	})
}

func (a *Artifact) UnmarshalJSON(data []byte) error {
	var v artifactJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var c models.Classifier
	switch v.Kind {
	case models.LogisticRegressionName:
		c = &models.LogisticRegression{}
	case models.RandomForestName:
		c = &models.RandomForest{}
	default:
		return fmt.Errorf("unknown model kind %q", v.Kind)
	}

	if len(v.Model) == 0 {
		return errors.New("missing model")
	}

	if err := json.Unmarshal(v.Model, c); err != nil {
		return err
	}

	a.Kind = v.Kind
	a.Features = v.Features
	a.Recall = v.Recall
	a.TrainedAt = v.TrainedAt
	a.Classifier = c
	return nil
}

// PredictProbability returns the probabilities of no fault and fault.
func (a *Artifact) PredictProbability(f kpi.Features) ([2]float64, error) {
	p, err := a.Classifier.Probability(f.Vector())
	if err != nil {
		return [2]float64{}, kferrors.New(kferrors.Validation, a.Kind, err)
	}

	return [2]float64{1 - p, p}, nil
}

// Predict returns the fault label of f.
func (a *Artifact) Predict(f kpi.Features) (int, error) {
	p, err := a.PredictProbability(f)
	if err != nil {
		return 0, err
	}

	if p[1] > models.DecisionThreshold {
		return kpi.LabelFault, nil
	}

	return kpi.LabelNoFault, nil
}

// SaveArtifact replaces the artifact file at path.
func SaveArtifact(path string, a *Artifact) error {
	err := fileutils.ReplaceFile(path, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(a)
	})
	if err != nil {
		return kferrors.New(kferrors.Persistence, path, err)
	}

	return nil
}

// LoadArtifact reads the artifact file at path.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, kferrors.New(kferrors.NotFound, path, err)
		}

		return nil, kferrors.New(kferrors.Persistence, path, err)
	}

	a := &Artifact{}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, kferrors.New(kferrors.Schema, path, err)
	}

	return a, nil
}
