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
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/netkpi/kpifault/pipeline/config"
)

func newSqlite(cfg *config.Config) (*gorm.DB, error) {
	sqliteCfg := &cfg.Database.Sqlite

	if err := os.MkdirAll(filepath.Dir(sqliteCfg.Path), 0755); err != nil {
		return nil, err
	}

	// Connect to sqlite.
	return gorm.Open(sqlite.Open(formatSqliteDSN(sqliteCfg)), gormConfig(cfg))
}

func formatSqliteDSN(cfg *config.SqliteConfig) string {
	return cfg.Path + "?_busy_timeout=5000"
}
