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

package dashboard

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/netkpi/kpifault/pipeline/database"
	"github.com/netkpi/kpifault/pipeline/kpi"
)

const (
	chartTimeLayout = "2006-01-02 15:04"
	chartWidth      = "1000px"
	chartHeight     = "320px"
)

// trend is one line chart of a kpi over time.
type trend struct {
	title  string
	column string
	value  func(m *database.KPIMetric) *float64
}

var trends = []trend{
	{
		title:  "Data Throughput Trend",
		column: kpi.ColumnDataThroughput,
		value:  func(m *database.KPIMetric) *float64 { return m.DataThroughput },
	},
	{
		title:  "Latency Trend",
		column: kpi.ColumnLatency,
		value:  func(m *database.KPIMetric) *float64 { return m.Latency },
	},
	{
		title:  "Signal Strength Trend",
		column: kpi.ColumnSignalStrength,
		value:  func(m *database.KPIMetric) *float64 { return m.SignalStrength },
	},
}

func newTrendChart(t trend, series []database.KPIMetric) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: t.title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: kpi.ColumnTimestamp}),
		charts.WithYAxisOpts(opts.YAxis{Name: t.column, Scale: true}),
	)

	xAxis := make([]string, 0, len(series))
	data := make([]opts.LineData, 0, len(series))
	for i := range series {
		xAxis = append(xAxis, series[i].Timestamp.Time.Format(chartTimeLayout))

		// Missing values break the line instead of plotting zero.
		if v := t.value(&series[i]); v != nil {
			data = append(data, opts.LineData{Value: *v})
		} else {
			data = append(data, opts.LineData{Value: "-"})
		}
	}

	line.SetXAxis(xAxis).AddSeries(t.column, data)
	return line
}

// renderTrends writes the throughput, latency and signal strength charts
// of a locality as a standalone page.
func renderTrends(w io.Writer, locality string, series []database.KPIMetric) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("KPI Trends Over Time: %s", locality)
	for _, t := range trends {
		page.AddCharts(newTrendChart(t, series))
	}

	return page.Render(w)
}
