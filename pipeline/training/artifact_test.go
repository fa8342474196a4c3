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
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netkpi/kpifault/internal/kferrors"
	"github.com/netkpi/kpifault/pipeline/kpi"
	"github.com/netkpi/kpifault/pipeline/training/models"
)

func fittedArtifact(t *testing.T, c models.Classifier) *Artifact {
	ds, err := NewDataset(mockRecords(200, 3))
	require.NoError(t, err)
	require.NoError(t, c.Fit(ds.Instances, BalancedWeights(ds.Labels)))

	return &Artifact{
		Kind:       c.Name(),
		Features:   kpi.FeatureNames,
		Recall:     0.9,
		TrainedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Classifier: c,
	}
}

func TestArtifact_SaveAndLoad(t *testing.T) {
	tests := []struct {
		name       string
		classifier models.Classifier
	}{
		{
			name:       "logistic regression",
			classifier: models.NewLogisticRegression(0.5, 300, 1),
		},
		{
			name:       "random forest",
			classifier: models.NewRandomForest(10, 8, 2, 42),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			path := filepath.Join(t.TempDir(), "models", "fault_predictor.json")
			artifact := fittedArtifact(t, tc.classifier)
			require.NoError(t, SaveArtifact(path, artifact))

			loaded, err := LoadArtifact(path)
			require.NoError(t, err)
			assert.Equal(artifact.Kind, loaded.Kind)
			assert.Equal(artifact.Features, loaded.Features)
			assert.Equal(artifact.Recall, loaded.Recall)
			assert.True(artifact.TrainedAt.Equal(loaded.TrainedAt))

			for _, f := range []kpi.Features{
				{Latency: 20, SignalStrength: -70, DataThroughput: 15},
				{Latency: 350, SignalStrength: -80, DataThroughput: 0.5},
				{Latency: 80, SignalStrength: -105, DataThroughput: 12},
			} {
				expect, err := artifact.PredictProbability(f)
				assert.NoError(err)
				got, err := loaded.PredictProbability(f)
				assert.NoError(err)
				assert.Equal(expect, got)
				assert.InDelta(1, got[0]+got[1], 1e-12)

				expectLabel, err := artifact.Predict(f)
				assert.NoError(err)
				label, err := loaded.Predict(f)
				assert.NoError(err)
				assert.Equal(expectLabel, label)
				assert.Equal(got[1] > 0.5, label == kpi.LabelFault)
			}

			label, err := loaded.Predict(kpi.Features{Latency: 50, SignalStrength: -109, DataThroughput: 20})
			assert.NoError(err)
			assert.Equal(kpi.LabelFault, label)
			label, err = loaded.Predict(kpi.Features{Latency: 20, SignalStrength: -62, DataThroughput: 25})
			assert.NoError(err)
			assert.Equal(kpi.LabelNoFault, label)
		})
	}
}

func TestArtifact_LoadArtifact(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, path string)
		expect func(t *testing.T, a *Artifact, err error)
	}{
		{
			name: "artifact does not exist",
			mock: func(t *testing.T, path string) {},
			expect: func(t *testing.T, a *Artifact, err error) {
				assert := assert.New(t)
				assert.True(kferrors.IsNotFound(err))
				assert.Nil(a)
			},
		},
		{
			name: "malformed artifact",
			mock: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
			},
			expect: func(t *testing.T, a *Artifact, err error) {
				assert.True(t, kferrors.IsSchema(err))
			},
		},
		{
			name: "unknown kind",
			mock: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte(`{"kind":"svm","model":{}}`), 0644))
			},
			expect: func(t *testing.T, a *Artifact, err error) {
				assert := assert.New(t)
				assert.True(kferrors.IsSchema(err))
				assert.ErrorContains(err, `unknown model kind "svm"`)
			},
		},
		{
			name: "missing model",
			mock: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte(`{"kind":"random_forest"}`), 0644))
			},
			expect: func(t *testing.T, a *Artifact, err error) {
				assert := assert.New(t)
				assert.True(kferrors.IsSchema(err))
				assert.ErrorContains(err, "missing model")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fault_predictor.json")
			tc.mock(t, path)
			a, err := LoadArtifact(path)
			tc.expect(t, a, err)
		})
	}
}

func TestArtifact_SaveArtifact(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	artifact := fittedArtifact(t, models.NewLogisticRegression(0.5, 10, 1))

	err := SaveArtifact(dir, artifact)
	assert.True(kferrors.IsPersistence(err))
}

func TestArtifact_PredictInvalidFeatures(t *testing.T) {
	assert := assert.New(t)
	artifact := fittedArtifact(t, models.NewLogisticRegression(0.5, 10, 1))

	_, err := artifact.Predict(kpi.Features{Latency: math.NaN(), SignalStrength: -70, DataThroughput: 1})
	assert.True(kferrors.IsValidation(err))

	_, err = artifact.PredictProbability(kpi.Features{Latency: 10, SignalStrength: math.Inf(-1), DataThroughput: 1})
	assert.True(kferrors.IsValidation(err))
}
