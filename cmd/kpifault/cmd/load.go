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

	"github.com/spf13/cobra"

	"github.com/netkpi/kpifault/pipeline"
)

var loadCmd = &cobra.Command{
	Use:               "load",
	Short:             "load the curated dataset into the relational store",
	Long:              `Load drops and recreates the curated table from the parquet dataset and verifies its row count.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(func(ctx context.Context, p *pipeline.Pipeline) error {
			return p.Load(ctx)
		})
	},
}
