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

	logger "github.com/netkpi/kpifault/internal/kflog"
	"github.com/netkpi/kpifault/pipeline"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "select and persist the fault classifier",
	Long: `Train drops records with missing features, holds out a stratified evaluation partition,
fits every configured candidate with balanced class weights and persists the one with the highest fault recall.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(func(ctx context.Context, p *pipeline.Pipeline) error {
			result, err := p.Train(ctx)
			if err != nil {
				return err
			}

			for _, report := range result.Reports {
				logger.Infof("%s: recall %.4f, accuracy %.4f", report.Candidate, report.Recall, report.Accuracy)
			}
			return nil
		})
	},
}
