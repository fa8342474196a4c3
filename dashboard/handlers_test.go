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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netkpi/kpifault/dashboard/mocks"
	"github.com/netkpi/kpifault/internal/kferrors"
	"github.com/netkpi/kpifault/pipeline/config"
	"github.com/netkpi/kpifault/pipeline/database"
)

func mockRouter(t *testing.T, s *State) *gin.Engine {
	r, err := Init(config.New(), s)
	require.NoError(t, err)
	return r
}

func mockPredictionRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandlers(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(ml *mocks.MockLoaderMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "healthy",
			req:  httptest.NewRequest(http.MethodGet, "/healthy", nil),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
			},
		},
		{
			name: "index selects the first locality",
			req:  httptest.NewRequest(http.MethodGet, "/", nil),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				body := w.Body.String()
				assert.Contains(body, "Performance Analysis for: Koramangala")
				assert.Contains(body, `src="/trends/Koramangala"`)
				assert.Contains(body, `name="latency" type="number" step="any" value="30"`)
				assert.Contains(body, `name="signal" type="number" step="any" value="-80"`)
				assert.NotContains(body, "No data available")
			},
		},
		{
			name: "index of unknown locality",
			req:  httptest.NewRequest(http.MethodGet, "/?locality=Jayanagar", nil),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.Contains(w.Body.String(), "No data available for Jayanagar.")
			},
		},
		{
			name: "predict fault",
			req: mockPredictionRequest(url.Values{
				"locality":   {"Whitefield"},
				"latency":    {"250"},
				"throughput": {"0.5"},
				"signal":     {"-120"},
			}),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				body := w.Body.String()
				assert.Contains(body, "High Risk of Fault!")
				assert.Contains(body, "(Confidence: 100.00%)")
				assert.Contains(body, "Performance Analysis for: Whitefield")
			},
		},
		{
			name: "predict stable",
			req: mockPredictionRequest(url.Values{
				"locality":   {"Koramangala"},
				"latency":    {"30"},
				"throughput": {"40"},
				"signal":     {"-80"},
			}),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				body := w.Body.String()
				assert.Contains(body, "Network Appears Stable.")
				assert.Contains(body, "(Fault Risk: 0.00%)")
			},
		},
		{
			name: "predict without latency",
			req: mockPredictionRequest(url.Values{
				"locality":   {"Koramangala"},
				"throughput": {"40"},
				"signal":     {"-80"},
			}),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.NotContains(w.Body.String(), "Network Appears Stable.")
			},
		},
		{
			name: "trends",
			req:  httptest.NewRequest(http.MethodGet, "/trends/Koramangala", nil),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				body := w.Body.String()
				assert.Contains(body, "Data Throughput Trend")
				assert.Contains(body, "Latency Trend")
				assert.Contains(body, "Signal Strength Trend")
			},
		},
		{
			name: "trends of unknown locality",
			req:  httptest.NewRequest(http.MethodGet, "/trends/Jayanagar", nil),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusNotFound, w.Code)
			},
		},
		{
			name: "list localities",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/localities", nil),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				var localities []string
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &localities))
				assert.Equal([]string{"Koramangala", "Whitefield"}, localities)
			},
		},
		{
			name: "list locality metrics",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/localities/Koramangala/metrics", nil),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				var series []map[string]any
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &series))
				assert.Len(series, 3)
				assert.Equal("2024-03-01T10:01:00Z", series[0]["timestamp"])
				assert.Equal(10.0, series[0]["latency"])
			},
		},
		{
			name: "list metrics of unknown locality",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/localities/Jayanagar/metrics", nil),
			mock: func(ml *mocks.MockLoaderMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusNotFound, w.Code)
				var resp ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Contains(resp.Error, "Jayanagar")
			},
		},
		{
			name: "reload picks up new rows",
			req:  httptest.NewRequest(http.MethodPost, "/reload", nil),
			mock: func(ml *mocks.MockLoaderMockRecorder) {
				rows := append([]database.KPIMetric{mockMetric("Jayanagar", 5, 15, -70)}, mockMetrics...)
				ml.LoadKPIMetrics(gomock.Any()).Return(rows, nil).Times(1)
				ml.LoadArtifact().Return(mockArtifact(), nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				var status Status
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &status))
				assert.Equal(5, status.Rows)
				assert.Equal(3, status.Localities)
			},
		},
		{
			name: "reload failed",
			req:  httptest.NewRequest(http.MethodPost, "/reload", nil),
			mock: func(ml *mocks.MockLoaderMockRecorder) {
				ml.LoadKPIMetrics(gomock.Any()).Return(nil, kferrors.Newf(kferrors.NotFound, "kpi_metrics", "table does not exist")).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusNotFound, w.Code)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			loader := mocks.NewMockLoader(ctl)
			loader.EXPECT().LoadKPIMetrics(gomock.Any()).Return(mockMetrics, nil).Times(1)
			loader.EXPECT().LoadArtifact().Return(mockArtifact(), nil).Times(1)

			s := NewState(loader)
			require.NoError(t, s.Reload(context.Background()))
			tc.mock(loader.EXPECT())

			w := httptest.NewRecorder()
			mockRouter(t, s).ServeHTTP(w, tc.req)
			tc.expect(t, w)
		})
	}
}

func TestHandlers_PredictWithoutModel(t *testing.T) {
	assert := assert.New(t)
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	loader := mocks.NewMockLoader(ctl)
	loader.EXPECT().LoadKPIMetrics(gomock.Any()).Return(mockMetrics, nil).Times(1)
	loader.EXPECT().LoadArtifact().Return(nil, kferrors.New(kferrors.NotFound, "fault_predictor.json", os.ErrNotExist)).Times(1)

	s := NewState(loader)
	require.NoError(t, s.Reload(context.Background()))

	w := httptest.NewRecorder()
	mockRouter(t, s).ServeHTTP(w, mockPredictionRequest(url.Values{
		"locality":   {"Koramangala"},
		"latency":    {"30"},
		"throughput": {"40"},
		"signal":     {"-80"},
	}))
	assert.Equal(http.StatusNotFound, w.Code)
	assert.Contains(w.Body.String(), "no model loaded")
}

func TestNewPrediction(t *testing.T) {
	assert := assert.New(t)

	p := NewPrediction(1, 0.8734)
	assert.True(p.Fault)
	assert.Equal("High Risk of Fault!", p.Headline)
	assert.Equal("(Confidence: 87.34%)", p.Detail)

	p = NewPrediction(0, 0.125)
	assert.False(p.Fault)
	assert.Equal("Network Appears Stable.", p.Headline)
	assert.Equal("(Fault Risk: 12.50%)", p.Detail)
}
