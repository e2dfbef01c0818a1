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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/vidsum/internal/config"
	"github.com/valpere/vidsum/internal/submit"
)

var version = "0.1.0"

var (
	cfgFile   string
	v         = viper.New()
	cfg       *config.Config
	logger    = zerolog.Nop()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "vidsum",
	Short: "CLI client for the video digest service",
	Long: `A CLI client that sends a video URL to a digest service and prints the
English transcript and summary together with their translations.

The service does the downloading, transcription, translation and
summarisation; vidsum only submits the request and renders the answer.

Use "vidsum process --help" for submission options.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logger, logCloser = config.NewLogger(cfg, cmd.ErrOrStderr())
		logger.Debug().Str("server", cfg.Server).Msg("Configuration loaded")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Submission failures have already been shown as alerts.
		if !errors.Is(err, &submit.ValidationError{}) && !errors.Is(err, &submit.OperationError{}) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	config.SetDefaults(v, version)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ./vidsum.yaml or $HOME/.config/vidsum/vidsum.yaml)")
	flags.String("server", "http://localhost:5000", "Digest service base URL")
	flags.Duration("timeout", 0, "Give up on a request after this long (0 = wait indefinitely)")
	flags.String("db", "./data/vidsum.db", "Database path for submission history")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Also write logs to this rotating file")

	_ = v.BindPFlag("server", flags.Lookup("server"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("db", flags.Lookup("db"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.file", flags.Lookup("log-file"))
}
