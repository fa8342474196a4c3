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
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/netkpi/kpifault/internal/kferrors"
	logger "github.com/netkpi/kpifault/internal/kflog"
	"github.com/netkpi/kpifault/pipeline/kpi"
	"github.com/netkpi/kpifault/pipeline/metrics"
)

const (
	pageTitle    = "Network KPI Fault Prediction"
	indexHTML    = "index.html"
	htmlMIMEType = "text/html; charset=utf-8"
)

type LocalityParams struct {
	Locality string `uri:"locality" binding:"required"`
}

type PredictionForm struct {
	Locality   string   `form:"locality"`
	Latency    *float64 `form:"latency" binding:"required"`
	Throughput *float64 `form:"throughput" binding:"required"`
	Signal     *float64 `form:"signal" binding:"required"`
}

// Prediction is the rendered fault risk of a form submission.
type Prediction struct {
	Fault       bool
	Probability float64
	Headline    string
	Detail      string
}

// NewPrediction formats the fault risk of label with P(fault) p.
func NewPrediction(label int, p float64) *Prediction {
	if label == kpi.LabelFault {
		return &Prediction{
			Fault:       true,
			Probability: p,
			Headline:    "High Risk of Fault!",
			Detail:      fmt.Sprintf("(Confidence: %.2f%%)", p*100),
		}
	}

	return &Prediction{
		Probability: p,
		Headline:    "Network Appears Stable.",
		Detail:      fmt.Sprintf("(Fault Risk: %.2f%%)", p*100),
	}
}

type indexPage struct {
	Title      string
	Localities []string
	Locality   string
	HasData    bool
	Latency    string
	Throughput string
	Signal     string
	Prediction *Prediction
	Error      string
}

type Handlers struct {
	state *State
}

func NewHandlers(state *State) *Handlers {
	return &Handlers{state: state}
}

// newIndexPage selects locality, or the first locality when empty, and
// fills the form with its latest values.
func (h *Handlers) newIndexPage(locality string) *indexPage {
	page := &indexPage{
		Title:      pageTitle,
		Localities: h.state.Localities(),
		Locality:   locality,
	}

	if page.Locality == "" && len(page.Localities) > 0 {
		page.Locality = page.Localities[0]
	}

	latest, ok := h.state.Latest(page.Locality)
	if !ok {
		return page
	}

	page.HasData = true
	page.Latency = formatInput(latest.Latency)
	page.Throughput = formatInput(latest.DataThroughput)
	page.Signal = formatInput(latest.SignalStrength)
	return page
}

func formatInput(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func (h *Handlers) GetIndex(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, indexHTML, h.newIndexPage(ctx.Query("locality")))
}

func (h *Handlers) CreatePrediction(ctx *gin.Context) {
	var form PredictionForm
	if err := ctx.ShouldBind(&form); err != nil {
		page := h.newIndexPage(form.Locality)
		page.Error = "Latency, throughput and signal strength are required numbers."
		ctx.HTML(http.StatusUnprocessableEntity, indexHTML, page)
		return
	}

	page := h.newIndexPage(form.Locality)
	page.Latency = formatInput(form.Latency)
	page.Throughput = formatInput(form.Throughput)
	page.Signal = formatInput(form.Signal)

	label, p, err := h.state.Predict(kpi.Features{
		Latency:        *form.Latency,
		SignalStrength: *form.Signal,
		DataThroughput: *form.Throughput,
	})
	if err != nil {
		logger.WithLocality(page.Locality).Warnf("predict failed: %s", err.Error())
		page.Error = err.Error()
		ctx.HTML(statusOf(err), indexHTML, page)
		return
	}

	metrics.PredictionCount.WithLabelValues(strconv.Itoa(label)).Inc()
	page.Prediction = NewPrediction(label, p)
	ctx.HTML(http.StatusOK, indexHTML, page)
}

func (h *Handlers) GetTrends(ctx *gin.Context) {
	var params LocalityParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	series, ok := h.state.Metrics(params.Locality)
	if !ok {
		ctx.Error(kferrors.Newf(kferrors.NotFound, params.Locality, "no data available")) // nolint: errcheck
		return
	}

	var buf bytes.Buffer
	if err := renderTrends(&buf, params.Locality, series); err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.Data(http.StatusOK, htmlMIMEType, buf.Bytes())
}

// Reload drops the cached rows and model and reads them again.
func (h *Handlers) Reload(ctx *gin.Context) {
	if err := h.state.Reload(ctx.Request.Context()); err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, h.state.Status())
}

func (h *Handlers) GetLocalities(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.state.Localities())
}

func (h *Handlers) GetLocalityMetrics(ctx *gin.Context) {
	var params LocalityParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	series, ok := h.state.Metrics(params.Locality)
	if !ok {
		ctx.Error(kferrors.Newf(kferrors.NotFound, params.Locality, "no data available")) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, series)
}

func (h *Handlers) GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, "OK")
}

func statusOf(err error) int {
	var kerr *kferrors.Error
	if errors.As(err, &kerr) {
		if status, ok := codeStatus[kerr.Code]; ok {
			return status
		}
	}

	return http.StatusInternalServerError
}
