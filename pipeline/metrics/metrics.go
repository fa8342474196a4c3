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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/netkpi/kpifault/pipeline/config"
	"github.com/netkpi/kpifault/pkg/types"
	"github.com/netkpi/kpifault/version"
)

// Variables declared for metrics.
var (
	RecordsIngestedCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PipelineMetricsName,
		Name:      "records_ingested_total",
		Help:      "Counter of the number of raw records read.",
	})

	RecordsCuratedCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PipelineMetricsName,
		Name:      "records_curated_total",
		Help:      "Counter of the number of curated records written.",
	})

	FaultsLabeledCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PipelineMetricsName,
		Name:      "faults_labeled_total",
		Help:      "Counter of the number of curated records labeled as fault.",
	})

	RowsLoadedCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PipelineMetricsName,
		Name:      "rows_loaded_total",
		Help:      "Counter of the number of rows loaded into the relational store.",
	})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PipelineMetricsName,
		Name:      "stage_duration_seconds",
		Help:      "Histogram of the time each stage took.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"stage"})

	StageFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PipelineMetricsName,
		Name:      "stage_failure_total",
		Help:      "Counter of the number of failed stages.",
	}, []string{"stage"})

	CandidateRecall = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PipelineMetricsName,
		Name:      "candidate_recall",
		Help:      "Fault recall of each candidate on the evaluation partition.",
	}, []string{"candidate"})

	SelectedModelGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PipelineMetricsName,
		Name:      "selected_model",
		Help:      "Candidate selected by the last training, set to 1.",
	}, []string{"candidate"})

	UploadModelCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PipelineMetricsName,
		Name:      "upload_total",
		Help:      "Counter of the number of the upload trained model.",
	})

	UploadModelFailureCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PipelineMetricsName,
		Name:      "upload_failure_total",
		Help:      "Counter of the number of failed of the upload trained model.",
	})

	DashboardReloadCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.DashboardMetricsName,
		Name:      "reload_total",
		Help:      "Counter of the number of dashboard state reloads.",
	})

	DashboardReloadFailureCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.DashboardMetricsName,
		Name:      "reload_failure_total",
		Help:      "Counter of the number of failed dashboard state reloads.",
	})

	PredictionCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.DashboardMetricsName,
		Name:      "prediction_total",
		Help:      "Counter of the number of dashboard predictions by label.",
	}, []string{"label"})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version", "go_tags", "go_gcflags"})
)

// SetVersion exports the build metadata.
func SetVersion() {
	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion, version.Gotags, version.Gogcflags).Set(1)
}

// Push sends the metrics of the default registry to the pushgateway of a
// batch run. It is a no-op when metrics are disabled.
func Push(cfg *config.MetricsConfig) error {
	if !cfg.Enable {
		return nil
	}

	SetVersion()
	return push.New(cfg.PushGateway, cfg.JobName).Gatherer(prometheus.DefaultGatherer).Push()
}
