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
	"github.com/pkg/errors"

	"github.com/netkpi/kpifault/internal/kferrors"
	"github.com/netkpi/kpifault/pipeline/kpi"
)

// Transform cleans, normalizes and labels raw measurements. It is pure
// and all-or-nothing: any invalid row fails the whole batch.
func Transform(measurements []kpi.Measurement) ([]kpi.Curated, error) {
	curated := make([]kpi.Curated, 0, len(measurements))
	for i := range measurements {
		c, err := transform(&measurements[i])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}

		curated = append(curated, c)
	}

	return curated, nil
}

func transform(m *kpi.Measurement) (kpi.Curated, error) {
	// Labels come from the raw core KPIs, which are never nulled.
	label, err := Label(m)
	if err != nil {
		return kpi.Curated{}, err
	}

	if m.Timestamp.IsZero() {
		return kpi.Curated{}, kferrors.New(kferrors.Validation, kpi.ColumnTimestamp, errors.New("missing timestamp"))
	}

	c := kpi.Curated{
		Locality:       m.Locality,
		NetworkType:    NormalizeNetworkType(m.NetworkType),
		Latency:        m.Latency.Ptr(),
		DataThroughput: m.DataThroughput.Ptr(),
		SignalStrength: m.SignalStrength.Ptr(),
		SignalQuality:  nullSentinel(m.SignalQuality),
		BB60C:          nullSentinel(m.BB60C),
		SrsRAN:         nullSentinel(m.SrsRAN),
		BladeRFxA9:     nullSentinel(m.BladeRFxA9),
		FaultFlag:      int32(label),
	}
	c.SetTime(m.Timestamp.Time)
	c.ThroughputPerLatency = ThroughputPerLatency(m.DataThroughput, m.Latency)

	return c, nil
}

// nullSentinel maps the 0.0 "not measured" marker to missing.
func nullSentinel(f kpi.Float) *float64 {
	if f.IsZero() {
		return nil
	}

	return f.Ptr()
}

// NormalizeNetworkType maps legacy network names to canonical ones.
func NormalizeNetworkType(networkType string) string {
	if networkType == kpi.NetworkTypeLTE {
		return kpi.NetworkType4G
	}

	return networkType
}

// ThroughputPerLatency is missing when latency is zero or either input is missing.
func ThroughputPerLatency(throughput, latency kpi.Float) *float64 {
	if !throughput.Valid || !latency.Valid || latency.Value == 0 {
		return nil
	}

	ratio := throughput.Value / latency.Value
	return &ratio
}
