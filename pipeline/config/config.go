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

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/netkpi/kpifault/cmd/dependency/base"
	"github.com/netkpi/kpifault/pkg/kfpath"
	"github.com/netkpi/kpifault/pkg/objectstorage"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Source configuration of the raw measurement export.
	Source SourceConfig `yaml:"source" mapstructure:"source"`

	// Curated dataset configuration.
	Curated CuratedConfig `yaml:"curated" mapstructure:"curated"`

	// Database configuration.
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Training configuration.
	Training TrainingConfig `yaml:"training" mapstructure:"training"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`

	// Dashboard configuration.
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
}

type ServerConfig struct {
	// WorkHome is the root of data, models and logs.
	WorkHome string `yaml:"workHome" mapstructure:"workHome"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Maximum size in megabytes of log files before rotation (default: 1024)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 20)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`
}

type SourceConfig struct {
	// Path is the local raw csv file.
	Path string `yaml:"path" mapstructure:"path"`

	// ObjectStorage fetches the raw csv file before ingestion when enabled.
	ObjectStorage ObjectStorageConfig `yaml:"objectStorage" mapstructure:"objectStorage"`
}

type ObjectStorageConfig struct {
	// Enable object storage.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Name is object storage name of type, it can be s3 or oss.
	Name string `yaml:"name" mapstructure:"name"`

	// Region is storage region.
	Region string `yaml:"region" mapstructure:"region"`

	// Endpoint is datacenter endpoint.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// AccessKey is access key ID.
	AccessKey string `yaml:"accessKey" mapstructure:"accessKey"`

	// SecretKey is access key secret.
	SecretKey string `yaml:"secretKey" mapstructure:"secretKey"`

	// BucketName is the bucket holding the object.
	BucketName string `yaml:"bucketName" mapstructure:"bucketName"`

	// ObjectKey is the key of the object.
	ObjectKey string `yaml:"objectKey" mapstructure:"objectKey"`
}

type CuratedConfig struct {
	// Path is the curated parquet file.
	Path string `yaml:"path" mapstructure:"path"`
}

type DatabaseConfig struct {
	// Database type, it can be sqlite, mysql or postgres.
	Type string `yaml:"type" mapstructure:"type"`

	// TableName is the table holding curated records.
	TableName string `yaml:"tableName" mapstructure:"tableName"`

	// BatchSize is the insert batch size.
	BatchSize int `yaml:"batchSize" mapstructure:"batchSize"`

	// Sqlite configuration.
	Sqlite SqliteConfig `yaml:"sqlite" mapstructure:"sqlite"`

	// Mysql configuration.
	Mysql MysqlConfig `yaml:"mysql" mapstructure:"mysql"`

	// Postgres configuration.
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
}

type SqliteConfig struct {
	// Path is the sqlite database file.
	Path string `yaml:"path" mapstructure:"path"`
}

type MysqlConfig struct {
	// Server username.
	User string `yaml:"user" mapstructure:"user"`

	// Server password.
	Password string `yaml:"password" mapstructure:"password"`

	// Server host.
	Host string `yaml:"host" mapstructure:"host"`

	// Server port.
	Port int `yaml:"port" mapstructure:"port"`

	// Server DB name.
	DBName string `yaml:"dbname" mapstructure:"dbname"`

	// Custom TLS configuration registered with the driver, such as true, false or skip-verify.
	TLSConfig string `yaml:"tlsConfig" mapstructure:"tlsConfig"`
}

type PostgresConfig struct {
	// Server username.
	User string `yaml:"user" mapstructure:"user"`

	// Server password.
	Password string `yaml:"password" mapstructure:"password"`

	// Server host.
	Host string `yaml:"host" mapstructure:"host"`

	// Server port.
	Port int `yaml:"port" mapstructure:"port"`

	// Server DB name.
	DBName string `yaml:"dbname" mapstructure:"dbname"`

	// SSL mode.
	SSLMode string `yaml:"sslMode" mapstructure:"sslMode"`

	// Disable prepared statement.
	PreferSimpleProtocol bool `yaml:"preferSimpleProtocol" mapstructure:"preferSimpleProtocol"`

	// Timezone.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

type TrainingConfig struct {
	// ModelPath is the classifier artifact file.
	ModelPath string `yaml:"modelPath" mapstructure:"modelPath"`

	// TestPercent is the share of records held out for evaluation.
	TestPercent float64 `yaml:"testPercent" mapstructure:"testPercent"`

	// Seed of the split and of randomized candidates.
	Seed int64 `yaml:"seed" mapstructure:"seed"`

	// Candidates is the ordered candidate list.
	Candidates []string `yaml:"candidates" mapstructure:"candidates"`

	// LogisticRegression hyper parameters.
	LogisticRegression LogisticRegressionConfig `yaml:"logisticRegression" mapstructure:"logisticRegression"`

	// RandomForest hyper parameters.
	RandomForest RandomForestConfig `yaml:"randomForest" mapstructure:"randomForest"`

	// Upload copies the selected artifact to object storage when enabled.
	Upload ObjectStorageConfig `yaml:"upload" mapstructure:"upload"`
}

type LogisticRegressionConfig struct {
	LearningRate float64 `yaml:"learningRate" mapstructure:"learningRate"`
	Epochs       int     `yaml:"epochs" mapstructure:"epochs"`
	L2           float64 `yaml:"l2" mapstructure:"l2"`
}

type RandomForestConfig struct {
	Trees           int `yaml:"trees" mapstructure:"trees"`
	MaxDepth        int `yaml:"maxDepth" mapstructure:"maxDepth"`
	MinSamplesSplit int `yaml:"minSamplesSplit" mapstructure:"minSamplesSplit"`
}

type MetricsConfig struct {
	// Enable pushing batch metrics.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// PushGateway is the address of the prometheus pushgateway.
	PushGateway string `yaml:"pushGateway" mapstructure:"pushGateway"`

	// JobName is the pushgateway job.
	JobName string `yaml:"jobName" mapstructure:"jobName"`
}

type DashboardConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			WorkHome:      kfpath.DefaultWorkHome,
			LogMaxSize:    DefaultLogRotateMaxSize,
			LogMaxAge:     DefaultLogRotateMaxAge,
			LogMaxBackups: DefaultLogRotateMaxBackups,
		},
		Database: DatabaseConfig{
			Type:      DatabaseTypeSqlite,
			TableName: DefaultTableName,
			BatchSize: DefaultBatchSize,
			Mysql: MysqlConfig{
				Port: 3306,
			},
			Postgres: PostgresConfig{
				Port:     5432,
				SSLMode:  "disable",
				Timezone: "UTC",
			},
		},
		Training: TrainingConfig{
			TestPercent: DefaultTestPercent,
			Seed:        DefaultSeed,
			Candidates:  append([]string(nil), DefaultCandidates...),
			LogisticRegression: LogisticRegressionConfig{
				LearningRate: DefaultLogisticRegressionLearningRate,
				Epochs:       DefaultLogisticRegressionEpochs,
				L2:           DefaultLogisticRegressionL2,
			},
			RandomForest: RandomForestConfig{
				Trees:           DefaultRandomForestTrees,
				MaxDepth:        DefaultRandomForestMaxDepth,
				MinSamplesSplit: DefaultRandomForestMinSamplesSplit,
			},
		},
		Metrics: MetricsConfig{
			Enable:  false,
			JobName: DefaultMetricsJobName,
		},
		Dashboard: DashboardConfig{
			Addr: DefaultDashboardAddr,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Server.WorkHome == "" {
		return errors.New("server requires parameter workHome")
	}

	if cfg.Source.Path == "" {
		return errors.New("source requires parameter path")
	}

	if cfg.Source.ObjectStorage.Enable {
		if err := cfg.Source.ObjectStorage.validate("source"); err != nil {
			return err
		}
	}

	if cfg.Curated.Path == "" {
		return errors.New("curated requires parameter path")
	}

	if err := cfg.Database.validate(); err != nil {
		return err
	}

	if cfg.Training.ModelPath == "" {
		return errors.New("training requires parameter modelPath")
	}

	if cfg.Training.TestPercent <= 0 || cfg.Training.TestPercent >= 1 {
		return errors.New("training requires parameter testPercent in (0, 1)")
	}

	if len(cfg.Training.Candidates) == 0 {
		return errors.New("training requires parameter candidates")
	}

	seen := map[string]bool{}
	for _, candidate := range cfg.Training.Candidates {
		if candidate != CandidateLogisticRegression && candidate != CandidateRandomForest {
			return fmt.Errorf("training has unknown candidate %q", candidate)
		}

		if seen[candidate] {
			return fmt.Errorf("training has duplicate candidate %q", candidate)
		}
		seen[candidate] = true
	}

	if cfg.Training.LogisticRegression.LearningRate <= 0 {
		return errors.New("logisticRegression requires parameter learningRate")
	}

	if cfg.Training.LogisticRegression.Epochs <= 0 {
		return errors.New("logisticRegression requires parameter epochs")
	}

	if cfg.Training.LogisticRegression.L2 < 0 {
		return errors.New("logisticRegression requires parameter l2 >= 0")
	}

	if cfg.Training.RandomForest.Trees <= 0 {
		return errors.New("randomForest requires parameter trees")
	}

	if cfg.Training.RandomForest.MaxDepth <= 0 {
		return errors.New("randomForest requires parameter maxDepth")
	}

	if cfg.Training.RandomForest.MinSamplesSplit < 2 {
		return errors.New("randomForest requires parameter minSamplesSplit >= 2")
	}

	if cfg.Training.Upload.Enable {
		if err := cfg.Training.Upload.validate("upload"); err != nil {
			return err
		}
	}

	if cfg.Metrics.Enable {
		if cfg.Metrics.PushGateway == "" {
			return errors.New("metrics requires parameter pushGateway")
		}

		if cfg.Metrics.JobName == "" {
			return errors.New("metrics requires parameter jobName")
		}
	}

	if cfg.Dashboard.Addr == "" {
		return errors.New("dashboard requires parameter addr")
	}

	return nil
}

func (cfg *DatabaseConfig) validate() error {
	if cfg.TableName == "" {
		return errors.New("database requires parameter tableName")
	}

	if cfg.BatchSize <= 0 {
		return errors.New("database requires parameter batchSize")
	}

	switch cfg.Type {
	case DatabaseTypeSqlite:
		if cfg.Sqlite.Path == "" {
			return errors.New("sqlite requires parameter path")
		}
	case DatabaseTypeMysql:
		if cfg.Mysql.User == "" {
			return errors.New("mysql requires parameter user")
		}

		if cfg.Mysql.Host == "" {
			return errors.New("mysql requires parameter host")
		}

		if cfg.Mysql.Port <= 0 {
			return errors.New("mysql requires parameter port")
		}

		if cfg.Mysql.DBName == "" {
			return errors.New("mysql requires parameter dbname")
		}
	case DatabaseTypePostgres:
		if cfg.Postgres.User == "" {
			return errors.New("postgres requires parameter user")
		}

		if cfg.Postgres.Host == "" {
			return errors.New("postgres requires parameter host")
		}

		if cfg.Postgres.Port <= 0 {
			return errors.New("postgres requires parameter port")
		}

		if cfg.Postgres.DBName == "" {
			return errors.New("postgres requires parameter dbname")
		}
	default:
		return fmt.Errorf("database has unknown type %q", cfg.Type)
	}

	return nil
}

func (cfg *ObjectStorageConfig) validate(section string) error {
	if cfg.Name != objectstorage.ServiceNameS3 && cfg.Name != objectstorage.ServiceNameOSS {
		return fmt.Errorf("%s requires parameter name of s3 or oss", section)
	}

	if cfg.Endpoint == "" {
		return fmt.Errorf("%s requires parameter endpoint", section)
	}

	if cfg.AccessKey == "" {
		return fmt.Errorf("%s requires parameter accessKey", section)
	}

	if cfg.SecretKey == "" {
		return fmt.Errorf("%s requires parameter secretKey", section)
	}

	if cfg.BucketName == "" {
		return fmt.Errorf("%s requires parameter bucketName", section)
	}

	if cfg.ObjectKey == "" {
		return fmt.Errorf("%s requires parameter objectKey", section)
	}

	return nil
}

// Convert fills paths left empty with their defaults under the work home.
func (cfg *Config) Convert() error {
	if cfg.Server.WorkHome == "" {
		return nil
	}

	home := cfg.Server.WorkHome
	if cfg.Server.LogDir == "" {
		cfg.Server.LogDir = filepath.Join(home, "logs")
	}

	if cfg.Source.Path == "" {
		cfg.Source.Path = filepath.Join(home, "data", "raw", DefaultRawFileName)
	}

	if cfg.Curated.Path == "" {
		cfg.Curated.Path = filepath.Join(home, "data", "curated", DefaultCuratedFileName)
	}

	if cfg.Database.Type == DatabaseTypeSqlite && cfg.Database.Sqlite.Path == "" {
		cfg.Database.Sqlite.Path = filepath.Join(home, "data", "db", DefaultSqliteFileName)
	}

	if cfg.Training.ModelPath == "" {
		cfg.Training.ModelPath = filepath.Join(home, "models", DefaultModelFileName)
	}

	return nil
}
