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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/vidsum/internal/view"
)

var (
	historyLimit  int
	historyExport string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the submission history",
	Long:  `List, show, delete and clear successful submissions kept in the SQLite history.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded submissions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		subs, err := db.ListSubmissions(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list submissions: %w", err)
		}

		if len(subs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No submissions in history.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWHEN\tTRANSCRIPT\tSUMMARY\tFORMAT\tURL")
		for _, s := range subs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				s.ID,
				s.Timestamp.Local().Format("2006-01-02 15:04"),
				s.Request.TranscriptLang,
				s.Request.SummaryLang,
				s.Request.SummaryFormat,
				s.Request.VideoURL,
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		stats, err := db.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d submissions for %d videos\n", stats.Submissions, stats.Videos)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the transcript and summary of a recorded submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		sub, err := db.GetSubmission(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		term := view.NewTerminal(cmd.ErrOrStderr())
		term.Fill(sub.Request)
		term.SetText(view.TranscriptEN, sub.Response.TranscriptEN)
		term.SetText(view.TranscriptSelected, sub.Response.TranscriptSelected)
		term.SetText(view.SummaryEN, sub.Response.SummaryEN)
		term.SetText(view.SummarySelected, sub.Response.SummarySelected)
		term.Show(view.Results)

		if historyExport != "" {
			return exportDigest(historyExport, sub.Request, sub.Response)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n", sub.Request.VideoURL, sub.Timestamp.Local().Format("2006-01-02 15:04"))
		return term.RenderResults(cmd.OutOrStdout())
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Permanently delete a recorded submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteSubmission(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted submission %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole submission history",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("yes")
		if !confirm {
			fmt.Fprint(cmd.OutOrStdout(), "Delete all submissions? [y/N] ")
			var answer string
			fmt.Fscanln(os.Stdin, &answer)
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearSubmissions(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d submissions\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyClearCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to list (0 = all)")
	historyShowCmd.Flags().StringVarP(&historyExport, "export", "e", "", "Write the digest to a .md or .html file instead of printing it")
	historyClearCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}
