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
	"embed"
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"

	logger "github.com/netkpi/kpifault/internal/kflog"
	"github.com/netkpi/kpifault/pipeline/config"
	"github.com/netkpi/kpifault/pkg/types"
)

const (
	PrometheusSubsystemName = types.MetricsNamespace + "_" + types.DashboardMetricsName
)

//go:embed templates/*.html
var templates embed.FS

func Init(cfg *config.Config, state *State) (*gin.Engine, error) {
	// Set mode.
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	h := NewHandlers(state)

	// Prometheus metrics.
	p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
	// Route templates keep the url label bounded.
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		if path := c.FullPath(); path != "" {
			return path
		}

		return c.Request.URL.Path
	}
	p.Use(r)

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true

	// Middleware
	r.Use(gin.Recovery())
	r.Use(ginzap.Ginzap(logger.GinLogger.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.GinLogger.Desugar(), true))
	r.Use(Error())
	r.Use(cors.New(corsConfig))

	// Pages
	r.GET("/", h.GetIndex)
	r.POST("/predict", h.CreatePrediction)
	r.GET("/trends/:locality", h.GetTrends)
	r.POST("/reload", h.Reload)

	// Health Check
	r.GET("/healthy", h.GetHealth)

	// API
	apiv1 := r.Group("/api/v1")

	l := apiv1.Group("/localities")
	l.GET("", h.GetLocalities)
	l.GET(":locality/metrics", h.GetLocalityMetrics)

	return r, nil
}
