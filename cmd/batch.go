/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/vidsum/internal"
	"github.com/valpere/vidsum/internal/batch"
	"github.com/valpere/vidsum/internal/options"
)

var (
	batchInputFile  string
	batchOutputFile string
	batchSel        selection
	batchStrict     bool
	batchNoHistory  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every video listed in a CSV file",
	Long: `Process a CSV of videos and write the transcripts and summaries to a new CSV.

Input columns: video_url[,transcript_lang[,summary_lang[,summary_format]]]
A header row is optional. Empty selection cells take the flag values.

Output columns: the four input columns, transcript_en, transcript_selected,
summary_en, summary_selected and error.

Example:
  vidsum batch -i videos.csv -o digests.csv -t hi --workers 2 --rate 0.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchInputFile == batchOutputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		f, err := os.Open(batchInputFile)
		if err != nil {
			return fmt.Errorf("failed to open input CSV: %w", err)
		}
		defer f.Close()

		reqs, err := batch.ReadCSV(f, batchSel.request(""))
		if err != nil {
			return err
		}
		if len(reqs) == 0 {
			return fmt.Errorf("CSV file is empty")
		}
		for i := range reqs {
			reqs[i].TranscriptLang = options.Canonical(reqs[i].TranscriptLang)
			reqs[i].SummaryLang = options.Canonical(reqs[i].SummaryLang)
		}

		client, err := newProcessor()
		if err != nil {
			return err
		}

		runner := batch.New(batch.NewCache(client, len(reqs), 0), batch.Config{
			Workers: cfg.Batch.Workers,
			Rate:    cfg.Batch.Rate,
			Timeout: cfg.Timeout,
		}, logger)
		if batchStrict {
			runner.WithValidator(options.Strict)
		}

		logger.Info().Int("rows", len(reqs)).Int("workers", cfg.Batch.Workers).Msg("Starting batch")
		outcomes := runner.Run(cmd.Context(), reqs)

		out, err := os.Create(batchOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output CSV: %w", err)
		}
		defer out.Close()

		if err := batch.WriteCSV(out, outcomes); err != nil {
			return fmt.Errorf("failed to write output CSV: %w", err)
		}

		if !batchNoHistory {
			var subs []internal.Submission
			for _, o := range outcomes {
				if o.Err == nil && o.Response != nil {
					subs = append(subs, internal.Submission{Request: o.Request, Response: *o.Response, Timestamp: time.Now()})
				}
			}
			recordHistory(cmd.Context(), subs)
		}

		succeeded := batch.Succeeded(outcomes)
		fmt.Fprintf(cmd.OutOrStdout(), "Processed %d/%d videos: %s\n", succeeded, len(outcomes), batchOutputFile)
		if succeeded < len(outcomes) {
			return fmt.Errorf("%d of %d videos failed, see the error column", len(outcomes)-succeeded, len(outcomes))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchInputFile, "input", "i", "", "Input CSV file (required)")
	batchCmd.Flags().StringVarP(&batchOutputFile, "output", "o", "", "Output CSV file (required)")
	addSelectionFlags(batchCmd, &batchSel)
	batchCmd.Flags().Int("workers", 2, "Number of videos processed concurrently")
	batchCmd.Flags().Float64("rate", 1, "Maximum submissions started per second (0 = unlimited)")
	batchCmd.Flags().BoolVar(&batchStrict, "strict", false, "Reject languages and formats outside the known catalogue")
	batchCmd.Flags().BoolVar(&batchNoHistory, "no-history", false, "Do not record results in the history database")

	_ = v.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))
	_ = v.BindPFlag("batch.rate", batchCmd.Flags().Lookup("rate"))

	batchCmd.MarkFlagRequired("input")
	batchCmd.MarkFlagRequired("output")
}
