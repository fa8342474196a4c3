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

package training

import (
	"math/rand"
	"time"

	"github.com/netkpi/kpifault/pipeline/kpi"
	"github.com/netkpi/kpifault/pipeline/transform"
)

func float(v float64) *float64 {
	return &v
}

// mockRecords returns curated records labeled by the fault rule.
func mockRecords(n int, seed int64) []kpi.Curated {
	r := rand.New(rand.NewSource(seed))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]kpi.Curated, n)
	for i := range records {
		latency := r.Float64() * 400
		throughput := r.Float64() * 30
		signal := -60 - r.Float64()*50

		records[i] = kpi.Curated{
			Locality:       "Mahanagar",
			NetworkType:    kpi.NetworkType4G,
			Latency:        float(latency),
			DataThroughput: float(throughput),
			SignalStrength: float(signal),
			FaultFlag:      int32(transform.LabelFault(latency, throughput, signal)),
		}
		records[i].SetTime(start.Add(time.Duration(i) * time.Minute))
	}

	return records
}

// mockSeparated returns records whose fault and healthy feature ranges do
// not overlap, with roughly one fault in three.
func mockSeparated(n int, seed int64) []kpi.Curated {
	r := rand.New(rand.NewSource(seed))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]kpi.Curated, n)
	for i := range records {
		latency := 10 + r.Float64()*90
		throughput := 10 + r.Float64()*20
		signal := -60 - r.Float64()*25
		if i%3 == 0 {
			latency = 300 + r.Float64()*100
			throughput = r.Float64() * 0.5
			signal = -105 - r.Float64()*15
		}

		records[i] = kpi.Curated{
			Locality:       "Mahanagar",
			NetworkType:    kpi.NetworkType4G,
			Latency:        float(latency),
			DataThroughput: float(throughput),
			SignalStrength: float(signal),
			FaultFlag:      int32(transform.LabelFault(latency, throughput, signal)),
		}
		records[i].SetTime(start.Add(time.Duration(i) * time.Minute))
	}

	return records
}

// mockLabeled returns n records with label 0 followed by m records with label 1.
func mockLabeled(n, m int) []kpi.Curated {
	records := make([]kpi.Curated, 0, n+m)
	for i := 0; i < n+m; i++ {
		label := int32(0)
		latency := float64(i)
		if i >= n {
			label = 1
			latency += 500
		}

		records = append(records, kpi.Curated{
			Latency:        float(latency),
			DataThroughput: float(10),
			SignalStrength: float(-70),
			FaultFlag:      label,
		})
	}

	return records
}
