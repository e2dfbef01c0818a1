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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/vidsum/internal/options"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages and summary formats the service offers",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCODE\tNATIVE")
		for _, l := range options.Languages() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", l.Name, l.Code, options.NativeName(l))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "\nSummary formats:")
		for _, f := range options.Formats() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
		}
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the digest service is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newProcessor()
		if err != nil {
			return err
		}
		if err := client.IsAvailable(cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", cfg.Server, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up (requests go to %s)\n", cfg.Server, client.Endpoint())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd, pingCmd)
}
