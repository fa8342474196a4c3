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
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/netkpi/kpifault/pipeline/kpi"
)

// Timestamp scans any driver representation of a time. NULL, zero and
// unparseable values scan as invalid instead of failing the query.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// NewTimestamp returns a valid timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

// GormDataType gorm common data type.
func (Timestamp) GormDataType() string {
	return "time"
}

// Scan implements the sql.Scanner interface.
func (t *Timestamp) Scan(value any) error {
	*t = Timestamp{}
	switch v := value.(type) {
	case time.Time:
		if !v.IsZero() {
			*t = NewTimestamp(v.UTC())
		}
	case string:
		t.parse(v)
	case []byte:
		t.parse(string(v))
	}

	return nil
}

func (t *Timestamp) parse(s string) {
	if v, err := kpi.ParseTimestamp(s); err == nil {
		*t = NewTimestamp(v)
	}
}

// Value implements the driver.Valuer interface.
func (t Timestamp) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}

	return t.Time.UTC(), nil
}

// MarshalJSON encodes an invalid timestamp as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(t.Time.UTC())
}

// KPIMetric is a curated record in the relational store.
type KPIMetric struct {
	Timestamp            Timestamp `gorm:"column:timestamp" json:"timestamp"`
	Locality             string    `gorm:"column:locality;type:varchar(256);index" json:"locality"`
	NetworkType          string    `gorm:"column:network_type;type:varchar(32)" json:"networkType"`
	Latency              *float64  `gorm:"column:latency_ms" json:"latency"`
	DataThroughput       *float64  `gorm:"column:data_throughput_mbps" json:"dataThroughput"`
	SignalStrength       *float64  `gorm:"column:signal_strength_dbm" json:"signalStrength"`
	SignalQuality        *float64  `gorm:"column:signal_quality_pct" json:"signalQuality"`
	BB60C                *float64  `gorm:"column:bb60c_dbm" json:"bb60c"`
	SrsRAN               *float64  `gorm:"column:srsran_dbm" json:"srsran"`
	BladeRFxA9           *float64  `gorm:"column:bladerf_xa9_dbm" json:"bladerfXa9"`
	FaultFlag            int32     `gorm:"column:fault_flag" json:"faultFlag"`
	ThroughputPerLatency *float64  `gorm:"column:throughput_per_latency" json:"throughputPerLatency"`
}

// NewKPIMetric converts a curated record to its row.
func NewKPIMetric(c *kpi.Curated) KPIMetric {
	return KPIMetric{
		Timestamp:            NewTimestamp(c.Time()),
		Locality:             c.Locality,
		NetworkType:          c.NetworkType,
		Latency:              c.Latency,
		DataThroughput:       c.DataThroughput,
		SignalStrength:       c.SignalStrength,
		SignalQuality:        c.SignalQuality,
		BB60C:                c.BB60C,
		SrsRAN:               c.SrsRAN,
		BladeRFxA9:           c.BladeRFxA9,
		FaultFlag:            c.FaultFlag,
		ThroughputPerLatency: c.ThroughputPerLatency,
	}
}
