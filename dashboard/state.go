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
//go:generate mockgen -destination mocks/loader_mock.go -source state.go -package mocks

package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/netkpi/kpifault/internal/kferrors"
	logger "github.com/netkpi/kpifault/internal/kflog"
	"github.com/netkpi/kpifault/pipeline/database"
	"github.com/netkpi/kpifault/pipeline/kpi"
	"github.com/netkpi/kpifault/pipeline/metrics"
	"github.com/netkpi/kpifault/pipeline/training"
)

// Loader reads the data served by the dashboard.
type Loader interface {
	// LoadKPIMetrics returns every curated row ordered by time.
	LoadKPIMetrics(ctx context.Context) ([]database.KPIMetric, error)

	// LoadArtifact returns the selected classifier.
	LoadArtifact() (*training.Artifact, error)
}

type loader struct {
	db        *database.Database
	modelPath string
}

// NewLoader returns a loader reading rows from db and the artifact from modelPath.
func NewLoader(db *database.Database, modelPath string) Loader {
	return &loader{db: db, modelPath: modelPath}
}

func (l *loader) LoadKPIMetrics(ctx context.Context) ([]database.KPIMetric, error) {
	return l.db.ListKPIMetrics(ctx, "")
}

func (l *loader) LoadArtifact() (*training.Artifact, error) {
	return training.LoadArtifact(l.modelPath)
}

// State is the snapshot of rows and model the dashboard renders. It is
// replaced wholesale by Reload.
type State struct {
	loader Loader

	mu         sync.RWMutex
	localities []string
	series     map[string][]database.KPIMetric
	rows       int
	artifact   *training.Artifact
	loadedAt   time.Time
}

// NewState returns an empty state, call Reload to populate it.
func NewState(loader Loader) *State {
	return &State{
		loader: loader,
		series: map[string][]database.KPIMetric{},
	}
}

// Reload reads rows and the artifact again. On failure the previous
// snapshot is kept. Rows without a valid timestamp are dropped. A missing
// artifact disables prediction but still serves the rows.
func (s *State) Reload(ctx context.Context) error {
	metrics.DashboardReloadCount.Inc()

	rows, err := s.loader.LoadKPIMetrics(ctx)
	if err != nil {
		metrics.DashboardReloadFailureCount.Inc()
		return err
	}

	artifact, err := s.loader.LoadArtifact()
	if err != nil {
		if !kferrors.IsNotFound(err) {
			metrics.DashboardReloadFailureCount.Inc()
			return err
		}

		logger.Warnf("model is unavailable, prediction disabled: %s", err.Error())
		artifact = nil
	}

	var (
		series = map[string][]database.KPIMetric{}
		kept   int
	)
	for _, row := range rows {
		if !row.Timestamp.Valid {
			continue
		}

		series[row.Locality] = append(series[row.Locality], row)
		kept++
	}

	localities := make([]string, 0, len(series))
	for locality, list := range series {
		localities = append(localities, locality)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Timestamp.Time.Before(list[j].Timestamp.Time)
		})
	}
	sort.Strings(localities)

	if dropped := len(rows) - kept; dropped > 0 {
		logger.Warnf("dropped %d rows with invalid timestamps", dropped)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.localities = localities
	s.series = series
	s.rows = kept
	s.artifact = artifact
	s.loadedAt = time.Now()

	logger.Infof("loaded %d rows of %d localities", kept, len(localities))
	return nil
}

// Localities returns the localities in ascending order.
func (s *State) Localities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.localities...)
}

// Metrics returns the rows of locality ordered by time.
func (s *State) Metrics(locality string) ([]database.KPIMetric, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.series[locality]
	return series, ok
}

// Latest returns the most recent row of locality.
func (s *State) Latest(locality string) (database.KPIMetric, bool) {
	series, ok := s.Metrics(locality)
	if !ok || len(series) == 0 {
		return database.KPIMetric{}, false
	}

	return series[len(series)-1], true
}

// Predict scores f with the loaded artifact and returns the fault label
// with P(fault).
func (s *State) Predict(f kpi.Features) (int, float64, error) {
	s.mu.RLock()
	artifact := s.artifact
	s.mu.RUnlock()

	if artifact == nil {
		return 0, 0, kferrors.Newf(kferrors.NotFound, "model", "no model loaded")
	}

	label, err := artifact.Predict(f)
	if err != nil {
		return 0, 0, err
	}

	p, err := artifact.PredictProbability(f)
	if err != nil {
		return 0, 0, err
	}

	return label, p[1], nil
}

// Status describes the loaded snapshot.
type Status struct {
	Rows       int       `json:"rows"`
	Localities int       `json:"localities"`
	Model      string    `json:"model,omitempty"`
	LoadedAt   time.Time `json:"loadedAt"`
}

func (s *State) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{
		Rows:       s.rows,
		Localities: len(s.localities),
		LoadedAt:   s.loadedAt,
	}
	if s.artifact != nil {
		status.Model = s.artifact.Kind
	}

	return status
}
