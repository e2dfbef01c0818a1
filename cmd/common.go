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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/valpere/vidsum/internal"
	"github.com/valpere/vidsum/internal/markdown"
	"github.com/valpere/vidsum/internal/options"
	"github.com/valpere/vidsum/internal/processor"
	"github.com/valpere/vidsum/internal/store"
)

// selection holds the three selection flags shared by process and batch.
type selection struct {
	transcriptLang string
	summaryLang    string
	summaryFormat  string
}

// request builds the wire request. Known language codes and differently
// cased names are mapped to catalogue names; anything else is sent as typed.
func (s selection) request(videoURL string) internal.ProcessRequest {
	return internal.ProcessRequest{
		VideoURL:       videoURL,
		TranscriptLang: options.Canonical(s.transcriptLang),
		SummaryLang:    options.Canonical(s.summaryLang),
		SummaryFormat:  s.summaryFormat,
	}
}

func newProcessor() (*processor.Client, error) {
	return processor.New(processor.Config{
		BaseURL:   cfg.Server,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	}, logger)
}

// openHistory opens the history database, creating its directory.
func openHistory() (*store.Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// recordHistory saves successful exchanges. History is best effort: a
// failure is logged and never fails the command.
func recordHistory(ctx context.Context, subs []internal.Submission) {
	if !cfg.History || len(subs) == 0 {
		return
	}
	db, err := openHistory()
	if err != nil {
		logger.Warn().Err(err).Msg("History disabled for this run")
		return
	}
	defer db.Close()

	for _, sub := range subs {
		id, err := db.SaveSubmission(ctx, sub)
		if err != nil {
			logger.Warn().Err(err).Str("url", sub.Request.VideoURL).Msg("Failed to save submission")
			continue
		}
		logger.Debug().Str("id", id).Msg("Submission saved to history")
	}
}

// exportDigest writes a Markdown digest to path, or a standalone HTML page
// when path ends in .html or .htm.
func exportDigest(path string, req internal.ProcessRequest, resp internal.ProcessResponse) error {
	doc := markdown.Digest(req, resp)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		doc = []byte(markdown.ToHTML("Video digest: "+req.VideoURL, doc))
	}
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	logger.Info().Str("file", path).Msg("Digest exported")
	return nil
}
