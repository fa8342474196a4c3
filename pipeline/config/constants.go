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

package config

const (
	// DefaultRawFileName is the file name of the raw measurement export.
	DefaultRawFileName = "signal_metrics.csv"

	// DefaultCuratedFileName is the file name of the curated dataset.
	DefaultCuratedFileName = "kpi_metrics.parquet"

	// DefaultSqliteFileName is the file name of the sqlite database.
	DefaultSqliteFileName = "telecom_kpi.db"

	// DefaultModelFileName is the file name of the classifier artifact.
	DefaultModelFileName = "fault_predictor.json"
)

const (
	// DatabaseTypeSqlite is database type of sqlite.
	DatabaseTypeSqlite = "sqlite"

	// DatabaseTypeMysql is database type of mysql.
	DatabaseTypeMysql = "mysql"

	// DatabaseTypePostgres is database type of postgres.
	DatabaseTypePostgres = "postgres"

	// DefaultTableName is the table holding curated records.
	DefaultTableName = "kpi_metrics"

	// DefaultBatchSize is the insert batch size of the load stage.
	DefaultBatchSize = 500
)

const (
	// CandidateLogisticRegression is the name of the logistic regression candidate.
	CandidateLogisticRegression = "logistic_regression"

	// CandidateRandomForest is the name of the random forest candidate.
	CandidateRandomForest = "random_forest"
)

const (
	// DefaultTestPercent is the share of records held out for evaluation.
	DefaultTestPercent = 0.2

	// DefaultSeed seeds the split and every randomized candidate.
	DefaultSeed = 42

	// DefaultLogisticRegressionLearningRate is the gradient descent step size.
	DefaultLogisticRegressionLearningRate = 0.5

	// DefaultLogisticRegressionEpochs is the number of gradient descent iterations.
	DefaultLogisticRegressionEpochs = 1000

	// DefaultLogisticRegressionL2 is the ridge penalty, matching an inverse strength of 1.
	DefaultLogisticRegressionL2 = 1.0

	// DefaultRandomForestTrees is the number of trees of the forest.
	DefaultRandomForestTrees = 100

	// DefaultRandomForestMaxDepth bounds tree depth.
	DefaultRandomForestMaxDepth = 16

	// DefaultRandomForestMinSamplesSplit is the smallest node that can be split.
	DefaultRandomForestMinSamplesSplit = 2
)

const (
	// DefaultLogRotateMaxSize is the default maximum size in megabytes of log files before rotation.
	DefaultLogRotateMaxSize = 1024

	// DefaultLogRotateMaxAge is the default maximum number of days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is the default maximum number of old log files to keep.
	DefaultLogRotateMaxBackups = 20
)

const (
	// DefaultMetricsJobName is the pushgateway job of batch runs.
	DefaultMetricsJobName = "kpifault"

	// DefaultDashboardAddr is the listen address of the dashboard.
	DefaultDashboardAddr = ":8501"
)

var (
	// DefaultCandidates is the ordered candidate list, earlier candidates win ties.
	DefaultCandidates = []string{CandidateLogisticRegression, CandidateRandomForest}
)
