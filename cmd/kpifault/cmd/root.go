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

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/netkpi/kpifault/cmd/dependency"
	logger "github.com/netkpi/kpifault/internal/kflog"
	"github.com/netkpi/kpifault/pipeline"
	"github.com/netkpi/kpifault/pipeline/config"
	"github.com/netkpi/kpifault/pipeline/metrics"
	"github.com/netkpi/kpifault/pkg/kfpath"
	"github.com/netkpi/kpifault/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kpifault",
	Short: "the network KPI fault prediction pipeline",
	Long: `Kpifault curates raw cellular network KPI measurements, labels degraded records as faults,
loads them into a relational store, trains a fault classifier and serves a dashboard over the results.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)

	rootCmd.AddCommand(ingestCmd, transformCmd, loadCmd, trainCmd, runCmd, serveCmd)
}

type initLogger func(verbose, console bool, dir string, rotate logger.LogRotateConfig) error

// initRuntime converts and validates the config, creates the work home
// and switches to file loggers.
func initRuntime(initLog initLogger) (kfpath.Kfpath, error) {
	// Convert config.
	if err := cfg.Convert(); err != nil {
		return nil, err
	}

	// Validate config.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Initialize kfpath.
	d, err := initKfpath(&cfg.Server)
	if err != nil {
		return nil, err
	}

	rotateConfig := logger.LogRotateConfig{
		MaxSize:    cfg.Server.LogMaxSize,
		MaxAge:     cfg.Server.LogMaxAge,
		MaxBackups: cfg.Server.LogMaxBackups,
	}

	// Initialize logger.
	if err := initLog(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	logger.Infof("version:\n%s", version.Version())
	metrics.SetVersion()
	return d, nil
}

func initKfpath(cfg *config.ServerConfig) (kfpath.Kfpath, error) {
	var options []kfpath.Option
	if cfg.WorkHome != "" {
		options = append(options, kfpath.WithWorkHome(cfg.WorkHome))
	}

	if cfg.LogDir != "" {
		options = append(options, kfpath.WithLogDir(cfg.LogDir))
	}

	return kfpath.New(options...)
}

// runPipeline runs fn with the work home locked, then pushes the batch
// metrics when enabled.
func runPipeline(fn func(ctx context.Context, p *pipeline.Pipeline) error) error {
	d, err := initRuntime(logger.InitPipeline)
	if err != nil {
		return err
	}

	lock := flock.New(d.LockFile())
	if ok, err := lock.TryLock(); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("lock file %s failed, other pipeline is already running", d.LockFile())
	}
	defer lock.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dependency.SetupQuitSignalHandler(cancel)

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	err = fn(ctx, p)
	if pushErr := metrics.Push(&cfg.Metrics); pushErr != nil {
		logger.Warnf("push metrics failed: %s", pushErr.Error())
	}

	return err
}
