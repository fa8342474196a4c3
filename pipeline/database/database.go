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

package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"moul.io/zapgorm2"

	"github.com/netkpi/kpifault/internal/kferrors"
	logger "github.com/netkpi/kpifault/internal/kflog"
	"github.com/netkpi/kpifault/pipeline/config"
	"github.com/netkpi/kpifault/pipeline/kpi"
)

type Database struct {
	DB        *gorm.DB
	tableName string
	batchSize int
}

// New opens the configured relational store.
func New(cfg *config.Config) (*Database, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Database.Type {
	case config.DatabaseTypeSqlite:
		db, err = newSqlite(cfg)
	case config.DatabaseTypeMysql:
		db, err = newMyqsl(cfg)
	case config.DatabaseTypePostgres:
		db, err = newPostgres(cfg)
	default:
		return nil, fmt.Errorf("invalid database type %s", cfg.Database.Type)
	}

	if err != nil {
		return nil, kferrors.New(kferrors.Persistence, cfg.Database.Type, err)
	}

	return &Database{
		DB:        db,
		tableName: cfg.Database.TableName,
		batchSize: cfg.Database.BatchSize,
	}, nil
}

func gormConfig(cfg *config.Config) *gorm.Config {
	// Initialize gorm logger.
	logLevel := gormlogger.Info
	if !cfg.Verbose {
		logLevel = gormlogger.Warn
	}
	gormLogger := zapgorm2.New(logger.CoreLogger.Desugar()).LogMode(logLevel)

	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger,
	}
}

// TableName returns the table holding curated records.
func (d *Database) TableName() string {
	return d.tableName
}

// ReplaceKPIMetrics drops and recreates the table with records, then
// verifies the stored row count.
func (d *Database) ReplaceKPIMetrics(ctx context.Context, records []kpi.Curated) (int64, error) {
	metrics := make([]KPIMetric, 0, len(records))
	for i := range records {
		metrics = append(metrics, NewKPIMetric(&records[i]))
	}

	if err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Migrator().DropTable(d.tableName); err != nil {
			return err
		}

		if err := tx.Table(d.tableName).AutoMigrate(&KPIMetric{}); err != nil {
			return err
		}

		if len(metrics) == 0 {
			return nil
		}

		return tx.Table(d.tableName).CreateInBatches(metrics, d.batchSize).Error
	}); err != nil {
		return 0, kferrors.New(kferrors.Persistence, d.tableName, err)
	}

	count, err := d.CountKPIMetrics(ctx)
	if err != nil {
		return 0, err
	}

	if count != int64(len(records)) {
		return count, kferrors.Newf(kferrors.Persistence, d.tableName, "%w: stored %d rows, expected %d", kferrors.ErrRowCountChange, count, len(records))
	}

	return count, nil
}

// CountKPIMetrics returns the number of rows of the table.
func (d *Database) CountKPIMetrics(ctx context.Context) (int64, error) {
	if err := d.checkTable(ctx); err != nil {
		return 0, err
	}

	var count int64
	if err := d.DB.WithContext(ctx).Table(d.tableName).Count(&count).Error; err != nil {
		return 0, kferrors.New(kferrors.Persistence, d.tableName, err)
	}

	return count, nil
}

// ListLocalities returns distinct localities in ascending order.
func (d *Database) ListLocalities(ctx context.Context) ([]string, error) {
	if err := d.checkTable(ctx); err != nil {
		return nil, err
	}

	var localities []string
	if err := d.DB.WithContext(ctx).Table(d.tableName).
		Distinct().
		Order(clause.OrderByColumn{Column: clause.Column{Name: "locality"}}).
		Pluck("locality", &localities).Error; err != nil {
		return nil, kferrors.New(kferrors.Persistence, d.tableName, err)
	}

	return localities, nil
}

// ListKPIMetrics returns rows of locality ordered by time, or every row
// when locality is empty.
func (d *Database) ListKPIMetrics(ctx context.Context, locality string) ([]KPIMetric, error) {
	if err := d.checkTable(ctx); err != nil {
		return nil, err
	}

	tx := d.DB.WithContext(ctx).Table(d.tableName)
	if locality != "" {
		tx = tx.Where("locality = ?", locality)
	}

	var metrics []KPIMetric
	if err := tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).Find(&metrics).Error; err != nil {
		return nil, kferrors.New(kferrors.Persistence, d.tableName, err)
	}

	return metrics, nil
}

func (d *Database) checkTable(ctx context.Context) error {
	if !d.DB.WithContext(ctx).Migrator().HasTable(d.tableName) {
		return kferrors.Newf(kferrors.NotFound, d.tableName, "table does not exist")
	}

	return nil
}

// Close closes the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
