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
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/vidsum/internal"
	"github.com/valpere/vidsum/internal/options"
	"github.com/valpere/vidsum/internal/submit"
	"github.com/valpere/vidsum/internal/validator"
	"github.com/valpere/vidsum/internal/view"
)

var (
	processSel       selection
	processStrict    bool
	processCheckLang bool
	processNoHistory bool
	processExport    string
)

var processCmd = &cobra.Command{
	Use:   "process [video-url]",
	Short: "Transcribe, translate and summarise one video",
	Long: `Send one video URL to the digest service and print the English transcript,
the transcript in the chosen language, the English summary and the summary
in the chosen language.

Languages may be given by name or ISO code (see "vidsum languages").
Values outside the catalogue are passed to the service unchanged unless
--strict is set.

Summary formats: Paragraph, Bullet Points, Key Highlights

Example:
  vidsum process https://www.youtube.com/watch?v=dQw4w9WgXcQ -t hi -s fr -f "Bullet Points"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoURL := ""
		if len(args) == 1 {
			videoURL = args[0]
		}

		client, err := newProcessor()
		if err != nil {
			return err
		}

		term := view.NewTerminal(cmd.ErrOrStderr())
		term.Fill(processSel.request(videoURL))

		h := submit.New(term, term, client)
		if processStrict {
			h.WithValidator(options.Strict)
		}

		ctx := cmd.Context()
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		resp, err := h.Submit(ctx)
		if err != nil {
			return err
		}

		if err := term.RenderResults(cmd.OutOrStdout()); err != nil {
			return err
		}

		req := term.Values()
		if processCheckLang {
			for _, m := range validator.New().Check(req, *resp) {
				logger.Warn().
					Str("field", m.Field).
					Str("expected", m.Expected).
					Str("detected", m.Detected).
					Msg("Service output does not look like the requested language")
			}
		}

		if processExport != "" {
			if err := exportDigest(processExport, req, *resp); err != nil {
				return err
			}
		}

		if !processNoHistory {
			recordHistory(cmd.Context(), []internal.Submission{{
				Request:   req,
				Response:  *resp,
				Timestamp: time.Now(),
			}})
		}
		return nil
	},
}

func addSelectionFlags(cmd *cobra.Command, sel *selection) {
	cmd.Flags().StringVarP(&sel.transcriptLang, "transcript-lang", "t", options.DefaultLanguage, "Language of the translated transcript")
	cmd.Flags().StringVarP(&sel.summaryLang, "summary-lang", "s", options.DefaultLanguage, "Language of the translated summary")
	cmd.Flags().StringVarP(&sel.summaryFormat, "format", "f", options.Paragraph, "Summary format")

	_ = cmd.RegisterFlagCompletionFunc("transcript-lang", completeLanguages)
	_ = cmd.RegisterFlagCompletionFunc("summary-lang", completeLanguages)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return options.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
}

func completeLanguages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return options.LanguageNames(), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(processCmd)

	addSelectionFlags(processCmd, &processSel)
	processCmd.Flags().BoolVar(&processStrict, "strict", false, "Reject languages and formats outside the known catalogue")
	processCmd.Flags().BoolVar(&processCheckLang, "check-lang", false, "Warn when translated output is not in the requested language")
	processCmd.Flags().BoolVar(&processNoHistory, "no-history", false, "Do not record this submission in the history database")
	processCmd.Flags().StringVarP(&processExport, "export", "e", "", "Also write the digest to a .md or .html file")
}
