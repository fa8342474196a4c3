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
//go:generate mockgen -destination mocks/training_mock.go -source training.go -package mocks

package training

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/netkpi/kpifault/internal/kferrors"
	logger "github.com/netkpi/kpifault/internal/kflog"
	"github.com/netkpi/kpifault/pipeline/config"
	"github.com/netkpi/kpifault/pipeline/kpi"
	"github.com/netkpi/kpifault/pipeline/metrics"
	"github.com/netkpi/kpifault/pipeline/training/models"
	"github.com/netkpi/kpifault/pkg/digest"
	"github.com/netkpi/kpifault/pkg/objectstorage"
	"github.com/netkpi/kpifault/pkg/types"
)

// Result is the outcome of a training run.
type Result struct {
	// Artifact is the persisted classifier.
	Artifact *Artifact

	// Reports are the evaluations of every candidate in candidate order.
	Reports []*Report

	// Rows is the number of records used after dropping missing features.
	Rows int

	// Dropped is the number of records skipped for a missing feature.
	Dropped int
}

// Training is the interface used for train models.
type Training interface {
	// Train fits every candidate, selects the one with the greatest fault
	// recall and persists it.
	Train(context.Context, []kpi.Curated) (*Result, error)
}

// training provides training functions.
type training struct {
	config        config.TrainingConfig
	objectStorage objectstorage.ObjectStorage
	now           func() time.Time
}

// Option is a functional option for training.
type Option func(t *training)

// WithObjectStorage sets the object storage the artifact is uploaded to.
func WithObjectStorage(objectStorage objectstorage.ObjectStorage) Option {
	return func(t *training) {
		t.objectStorage = objectStorage
	}
}

// WithNow sets the clock of artifact timestamps.
func WithNow(now func() time.Time) Option {
	return func(t *training) {
		t.now = now
	}
}

// New return a Training instance.
func New(cfg config.TrainingConfig, options ...Option) Training {
	t := &training{
		config: cfg,
		now:    time.Now,
	}

	for _, opt := range options {
		opt(t)
	}

	return t
}

// Train fits every candidate, selects the one with the greatest fault
// recall and persists it.
func (t *training) Train(ctx context.Context, records []kpi.Curated) (*Result, error) {
	log := logger.WithStage(types.StageTrain)

	ds, err := NewDataset(records)
	if err != nil {
		return nil, err
	}
	log.Infof("dataset has %d rows, %d dropped for missing features, class counts %v", len(ds.Labels), ds.Dropped, ds.ClassCounts())

	split, err := StratifiedSplit(ds, t.config.TestPercent, t.config.Seed)
	if err != nil {
		return nil, err
	}
	weights := BalancedWeights(split.TrainLabels)

	var (
		best       models.Classifier
		bestRecall = -1.0
		reports    []*Report
	)
	for _, name := range t.config.Candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate, err := newCandidate(name, &t.config)
		if err != nil {
			return nil, err
		}

		clog := logger.WithCandidate(types.StageTrain, name)
		clog.Infof("Training %s...", name)
		if err := candidate.Fit(split.Train, weights); err != nil {
			return nil, fmt.Errorf("fit %s: %w", name, err)
		}

		report, err := Evaluate(candidate, split.Test)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", name, err)
		}
		reports = append(reports, report)

		clog.Infof("%s Recall (Fault=1): %.4f", name, report.Recall)
		clog.Infof("%s Accuracy: %.4f", name, report.Accuracy)
		clog.Infof("classification report:\n%s", report.Summary)
		clog.Infof("confusion matrix:\n%s", report.ConfusionMatrix)

		if math.IsNaN(report.Recall) {
			clog.Warnf("%s recall is undefined, skip it", name)
			continue
		}
		metrics.CandidateRecall.WithLabelValues(name).Set(report.Recall)

		if report.Recall > bestRecall {
			best = candidate
			bestRecall = report.Recall
		}
	}

	if best == nil {
		return nil, kferrors.New(kferrors.Data, t.config.ModelPath, kferrors.ErrNoViableModel)
	}

	artifact := &Artifact{
		Kind:       best.Name(),
		Features:   append([]string(nil), kpi.FeatureNames...),
		Recall:     bestRecall,
		TrainedAt:  t.now().UTC().Round(0),
		Classifier: best,
	}
	log.Infof("Best model selected: %s with Recall %.4f", artifact.Kind, artifact.Recall)

	if err := SaveArtifact(t.config.ModelPath, artifact); err != nil {
		return nil, err
	}
	metrics.SelectedModelGauge.Reset()
	metrics.SelectedModelGauge.WithLabelValues(artifact.Kind).Set(1)
	log.Infof("Model saved to %s", t.config.ModelPath)

	if err := t.upload(ctx); err != nil {
		return nil, err
	}

	return &Result{
		Artifact: artifact,
		Reports:  reports,
		Rows:     len(ds.Labels),
		Dropped:  ds.Dropped,
	}, nil
}

// upload copies the persisted artifact to object storage when enabled.
func (t *training) upload(ctx context.Context) error {
	cfg := t.config.Upload
	if !cfg.Enable || t.objectStorage == nil {
		return nil
	}

	resource := cfg.BucketName + "/" + cfg.ObjectKey
	data, err := os.ReadFile(t.config.ModelPath)
	if err != nil {
		return kferrors.New(kferrors.Persistence, t.config.ModelPath, err)
	}

	metrics.UploadModelCount.Inc()
	if err := t.objectStorage.PutObject(ctx, cfg.BucketName, cfg.ObjectKey, digest.FromBytes(data), bytes.NewReader(data)); err != nil {
		metrics.UploadModelFailureCount.Inc()
		return kferrors.New(kferrors.Persistence, resource, err)
	}

	logger.WithStage(types.StageTrain).Infof("Model uploaded to %s", resource)
	return nil
}

func newCandidate(name string, cfg *config.TrainingConfig) (models.Classifier, error) {
	switch name {
	case config.CandidateLogisticRegression:
		lr := cfg.LogisticRegression
		return models.NewLogisticRegression(lr.LearningRate, lr.Epochs, lr.L2), nil
	case config.CandidateRandomForest:
		rf := cfg.RandomForest
		return models.NewRandomForest(rf.Trees, rf.MaxDepth, rf.MinSamplesSplit, cfg.Seed), nil
	}

	return nil, fmt.Errorf("unknown candidate %s", name)
}
