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

package transform

import (
	"fmt"
	"math"

	"github.com/netkpi/kpifault/internal/kferrors"
	"github.com/netkpi/kpifault/pipeline/kpi"
)

const (
	// LatencyThreshold is exceeded by a congested link, in ms.
	LatencyThreshold = 200

	// ThroughputThreshold is undercut by a congested link, in Mbps.
	ThroughputThreshold = 1

	// SignalThreshold is undercut by a link without coverage, in dBm.
	SignalThreshold = -100
)

// LabelFault labels a record as a fault when the link is congested or
// has no coverage. All comparisons are strict.
func LabelFault(latency, throughput, signal float64) int {
	if (latency > LatencyThreshold && throughput < ThroughputThreshold) || signal < SignalThreshold {
		return kpi.LabelFault
	}

	return kpi.LabelNoFault
}

// Label labels m, rejecting missing or non-finite inputs instead of
// letting them fall through the comparisons.
func Label(m *kpi.Measurement) (int, error) {
	for _, in := range []struct {
		column string
		value  kpi.Float
	}{
		{kpi.ColumnLatency, m.Latency},
		{kpi.ColumnDataThroughput, m.DataThroughput},
		{kpi.ColumnSignalStrength, m.SignalStrength},
	} {
		if !in.value.Valid || math.IsNaN(in.value.Value) {
			return 0, kferrors.New(kferrors.Validation, in.column, kferrors.ErrMissingValue)
		}

		if math.IsInf(in.value.Value, 0) {
			return 0, kferrors.New(kferrors.Validation, in.column, fmt.Errorf("infinite value %v", in.value.Value))
		}
	}

	return LabelFault(m.Latency.Value, m.DataThroughput.Value, m.SignalStrength.Value), nil
}
