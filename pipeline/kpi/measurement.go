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

package kpi

import (
	"time"
)

const (
	ColumnTimestamp      = "Timestamp"
	ColumnLocality       = "Locality"
	ColumnNetworkType    = "Network Type"
	ColumnLatency        = "Latency (ms)"
	ColumnDataThroughput = "Data Throughput (Mbps)"
	ColumnSignalStrength = "Signal Strength (dBm)"
	ColumnSignalQuality  = "Signal Quality (%)"
	ColumnBB60C          = "BB60C Measurement (dBm)"
	ColumnSrsRAN         = "srsRAN Measurement (dBm)"
	ColumnBladeRFxA9     = "BladeRFxA9 Measurement (dBm)"
)

// RequiredColumns are the columns a raw export must carry.
var RequiredColumns = []string{
	ColumnTimestamp,
	ColumnLocality,
	ColumnNetworkType,
	ColumnLatency,
	ColumnDataThroughput,
	ColumnSignalStrength,
	ColumnSignalQuality,
	ColumnBB60C,
	ColumnSrsRAN,
	ColumnBladeRFxA9,
}

const (
	// NetworkTypeLTE is the legacy name of 4G.
	NetworkTypeLTE = "LTE"

	// NetworkType4G is the canonical name of LTE.
	NetworkType4G = "4G"
)

const (
	// LabelNoFault marks a healthy record.
	LabelNoFault = 0

	// LabelFault marks a degraded record.
	LabelFault = 1
)

// Measurement is one row of the raw export.
type Measurement struct {
	Timestamp      Timestamp `csv:"Timestamp"`
	Locality       string    `csv:"Locality"`
	NetworkType    string    `csv:"Network Type"`
	Latency        Float     `csv:"Latency (ms)"`
	DataThroughput Float     `csv:"Data Throughput (Mbps)"`
	SignalStrength Float     `csv:"Signal Strength (dBm)"`
	SignalQuality  Float     `csv:"Signal Quality (%)"`
	BB60C          Float     `csv:"BB60C Measurement (dBm)"`
	SrsRAN         Float     `csv:"srsRAN Measurement (dBm)"`
	BladeRFxA9     Float     `csv:"BladeRFxA9 Measurement (dBm)"`
}

// Curated is a cleaned, labeled measurement. Nil pointers are missing
// values. Timestamp holds unix nanoseconds in UTC.
type Curated struct {
	Timestamp            int64    `parquet:"timestamp"`
	Locality             string   `parquet:"locality"`
	NetworkType          string   `parquet:"network_type"`
	Latency              *float64 `parquet:"latency_ms"`
	DataThroughput       *float64 `parquet:"data_throughput_mbps"`
	SignalStrength       *float64 `parquet:"signal_strength_dbm"`
	SignalQuality        *float64 `parquet:"signal_quality_pct"`
	BB60C                *float64 `parquet:"bb60c_dbm"`
	SrsRAN               *float64 `parquet:"srsran_dbm"`
	BladeRFxA9           *float64 `parquet:"bladerf_xa9_dbm"`
	FaultFlag            int32    `parquet:"fault_flag"`
	ThroughputPerLatency *float64 `parquet:"throughput_per_latency"`
}

// Time returns the measurement time.
func (c *Curated) Time() time.Time {
	return time.Unix(0, c.Timestamp).UTC()
}

// SetTime stores t as unix nanoseconds.
func (c *Curated) SetTime(t time.Time) {
	c.Timestamp = t.UTC().UnixNano()
}

// Features returns the classifier inputs in model order, false when any is missing.
func (c *Curated) Features() (Features, bool) {
	if c.Latency == nil || c.SignalStrength == nil || c.DataThroughput == nil {
		return Features{}, false
	}

	return Features{
		Latency:        *c.Latency,
		SignalStrength: *c.SignalStrength,
		DataThroughput: *c.DataThroughput,
	}, true
}

// FeatureNames are the classifier inputs in model order.
var FeatureNames = []string{ColumnLatency, ColumnSignalStrength, ColumnDataThroughput}

// Features are the classifier inputs.
type Features struct {
	Latency        float64 `json:"latency"`
	SignalStrength float64 `json:"signalStrength"`
	DataThroughput float64 `json:"dataThroughput"`
}

// Vector returns the features in model order.
func (f Features) Vector() []float64 {
	return []float64{f.Latency, f.SignalStrength, f.DataThroughput}
}
