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

package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	logger "github.com/netkpi/kpifault/internal/kflog"
	"github.com/netkpi/kpifault/pipeline/config"
	"github.com/netkpi/kpifault/pipeline/database"
	"github.com/netkpi/kpifault/pipeline/ingest"
	"github.com/netkpi/kpifault/pipeline/kpi"
	"github.com/netkpi/kpifault/pipeline/metrics"
	"github.com/netkpi/kpifault/pipeline/storage"
	"github.com/netkpi/kpifault/pipeline/training"
	"github.com/netkpi/kpifault/pipeline/transform"
	"github.com/netkpi/kpifault/pkg/objectstorage"
	"github.com/netkpi/kpifault/pkg/types"
)

// banners are logged when a stage starts.
var banners = map[string]string{
	types.StageIngest:    "Data Ingestion",
	types.StageTransform: "Transformation",
	types.StageLoad:      "Data Loading",
	types.StageTrain:     "Model Training",
}

// Pipeline runs the batch stages of a work home.
type Pipeline struct {
	// Pipeline configuration.
	config *config.Config

	// Raw and curated files.
	storage storage.Storage

	// Raw export source.
	ingester ingest.Ingester

	// Model selection.
	training training.Training
}

// New returns a Pipeline of the configuration.
func New(cfg *config.Config) (*Pipeline, error) {
	p := &Pipeline{config: cfg}
	p.storage = storage.New(cfg.Source.Path, cfg.Curated.Path)

	var ingestOptions []ingest.Option
	if source := cfg.Source.ObjectStorage; source.Enable {
		objectStorage, err := newObjectStorage(source)
		if err != nil {
			return nil, err
		}
		ingestOptions = append(ingestOptions, ingest.WithObjectStorage(objectStorage, source))
	}
	p.ingester = ingest.New(p.storage, ingestOptions...)

	var trainingOptions []training.Option
	if upload := cfg.Training.Upload; upload.Enable {
		objectStorage, err := newObjectStorage(upload)
		if err != nil {
			return nil, err
		}
		trainingOptions = append(trainingOptions, training.WithObjectStorage(objectStorage))
	}
	p.training = training.New(cfg.Training, trainingOptions...)

	return p, nil
}

func newObjectStorage(cfg config.ObjectStorageConfig) (objectstorage.ObjectStorage, error) {
	return objectstorage.New(cfg.Name, cfg.Region, cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
}

// Ingest makes the raw export available.
func (p *Pipeline) Ingest(ctx context.Context) error {
	return p.stage(types.StageIngest, func() error {
		return p.ingester.Ingest(ctx)
	})
}

// Transform cleans and labels the raw export and replaces the curated file.
func (p *Pipeline) Transform(ctx context.Context) error {
	return p.stage(types.StageTransform, func() error {
		log := logger.WithStage(types.StageTransform)

		measurements, err := p.storage.ListMeasurements()
		if err != nil {
			return err
		}
		metrics.RecordsIngestedCount.Add(float64(len(measurements)))
		log.Infof("Loaded %d raw records from %s", len(measurements), p.storage.RawFilename())

		curated, err := transform.Transform(measurements)
		if err != nil {
			return err
		}

		var faults int
		for i := range curated {
			if curated[i].FaultFlag == kpi.LabelFault {
				faults++
			}
		}
		log.Infof("Labeled %d of %d records as fault", faults, len(curated))

		if err := p.storage.CreateCurated(curated); err != nil {
			return err
		}
		metrics.RecordsCuratedCount.Add(float64(len(curated)))
		metrics.FaultsLabeledCount.Add(float64(faults))
		log.Infof("Cleaned data saved to %s", p.storage.CuratedFilename())
		return nil
	})
}

// Load replaces the relational table with the curated records.
func (p *Pipeline) Load(ctx context.Context) error {
	return p.stage(types.StageLoad, func() error {
		log := logger.WithStage(types.StageLoad)

		curated, err := p.storage.ListCurated()
		if err != nil {
			return err
		}

		db, err := database.New(p.config)
		if err != nil {
			return err
		}
		defer db.Close()

		count, err := db.ReplaceKPIMetrics(ctx, curated)
		if err != nil {
			return err
		}
		metrics.RowsLoadedCount.Add(float64(count))
		log.Infof("Verification: %d rows in table %s", count, db.TableName())
		return nil
	})
}

// Train selects and persists the classifier of the curated records.
func (p *Pipeline) Train(ctx context.Context) (*training.Result, error) {
	var result *training.Result
	err := p.stage(types.StageTrain, func() error {
		curated, err := p.storage.ListCurated()
		if err != nil {
			return err
		}

		result, err = p.training.Train(ctx, curated)
		return err
	})

	return result, err
}

// Run runs every stage in order and stops at the first failure.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.Ingest(ctx); err != nil {
		return err
	}

	if err := p.Transform(ctx); err != nil {
		return err
	}

	if err := p.Load(ctx); err != nil {
		return err
	}

	if _, err := p.Train(ctx); err != nil {
		return err
	}

	logger.Info("--- Pipeline Complete ---")
	return nil
}

// stage runs fn with the banner, duration and failure accounting of a stage.
func (p *Pipeline) stage(name string, fn func() error) error {
	log := logger.WithStage(name)
	log.Infof("--- Starting %s Phase ---", banners[name])

	start := time.Now()
	err := fn()
	metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StageFailureCount.WithLabelValues(name).Inc()
		log.Errorf("%s phase failed: %v", banners[name], err)
		return errors.Wrapf(err, "%s stage", name)
	}

	log.Infof("--- %s Phase Complete ---", banners[name])
	return nil
}
