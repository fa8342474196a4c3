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

package types

const (
	// MetricsNamespace is the namespace of all metrics.
	MetricsNamespace = "kpifault"

	// PipelineMetricsName is the subsystem of batch stage metrics.
	PipelineMetricsName = "pipeline"

	// DashboardMetricsName is the subsystem of dashboard metrics.
	DashboardMetricsName = "dashboard"
)

const (
	// PipelineName is the log directory name of batch stages.
	PipelineName = "pipeline"

	// DashboardName is the log directory name of the dashboard.
	DashboardName = "dashboard"
)

const (
	// StageIngest checks or fetches the raw export.
	StageIngest = "ingest"

	// StageTransform cleans and labels the raw export.
	StageTransform = "transform"

	// StageLoad replaces the relational table.
	StageLoad = "load"

	// StageTrain selects and persists the classifier.
	StageTrain = "train"
)

// Stages are the batch stages in run order.
var Stages = []string{StageIngest, StageTransform, StageLoad, StageTrain}
