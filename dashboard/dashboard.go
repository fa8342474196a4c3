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
	"net/http"
	"time"

	logger "github.com/netkpi/kpifault/internal/kflog"
	"github.com/netkpi/kpifault/pipeline/config"
	"github.com/netkpi/kpifault/pipeline/database"
)

const (
	gracefulStopTimeout = 10 * time.Second
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Database of curated rows.
	db *database.Database

	// Dashboard state.
	state *State

	// HTTP server.
	httpServer *http.Server
}

// New opens the database, loads the initial state and builds the http server.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	state := NewState(NewLoader(db, cfg.Training.ModelPath))
	if err := state.Reload(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	router, err := Init(cfg, state)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Server{
		config: cfg,
		db:     db,
		state:  state,
		httpServer: &http.Server{
			Addr:    cfg.Dashboard.Addr,
			Handler: router,
		},
	}, nil
}

// Serve blocks until the server is stopped.
func (s *Server) Serve() error {
	logger.Infof("started dashboard at %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			return nil
		}

		return err
	}

	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), gracefulStopTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("dashboard failed to stop: %+v", err)
	}
	logger.Info("dashboard closed under request")

	if err := s.db.Close(); err != nil {
		logger.Errorf("close database failed: %+v", err)
	}
}
