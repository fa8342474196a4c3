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
	"github.com/spf13/cobra"

	"github.com/netkpi/kpifault/cmd/dependency"
	"github.com/netkpi/kpifault/dashboard"
	logger "github.com/netkpi/kpifault/internal/kflog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the fault prediction dashboard",
	Long: `Serve loads the curated table and the selected classifier, then serves trend charts per locality,
a manual fault risk form and a read-only JSON API. POST /reload reads the table and classifier again.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := initRuntime(logger.InitDashboard); err != nil {
			return err
		}

		svr, err := dashboard.New(cfg)
		if err != nil {
			return err
		}

		dependency.SetupQuitSignalHandler(func() { svr.Stop() })
		return svr.Serve()
	},
}
