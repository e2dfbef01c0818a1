package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/valpere/vidsum/internal"
)

var inputHeader = []string{"video_url", "transcript_lang", "summary_lang", "summary_format"}

// OutputHeader is the first row written by WriteCSV.
var OutputHeader = []string{
	"video_url", "transcript_lang", "summary_lang", "summary_format",
	"transcript_en", "transcript_selected", "summary_en", "summary_selected", "error",
}

// ReadCSV parses rows of video_url[,transcript_lang[,summary_lang[,summary_format]]].
// A leading header row is skipped. Empty selection cells take the value from
// defaults; the URL cell is kept exactly as written.
func ReadCSV(r io.Reader, defaults internal.ProcessRequest) ([]internal.ProcessRequest, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) > 0 && len(records[0]) > 0 && strings.EqualFold(strings.TrimSpace(records[0][0]), inputHeader[0]) {
		records = records[1:]
	}

	reqs := make([]internal.ProcessRequest, 0, len(records))
	for i, row := range records {
		if len(row) > len(inputHeader) {
			return nil, fmt.Errorf("row %d: expected at most %d columns, got %d", i+1, len(inputHeader), len(row))
		}
		cell := func(idx int, fallback string) string {
			if idx < len(row) && row[idx] != "" {
				return row[idx]
			}
			return fallback
		}
		reqs = append(reqs, internal.ProcessRequest{
			VideoURL:       cell(0, ""),
			TranscriptLang: cell(1, defaults.TranscriptLang),
			SummaryLang:    cell(2, defaults.SummaryLang),
			SummaryFormat:  cell(3, defaults.SummaryFormat),
		})
	}

	return reqs, nil
}

// WriteCSV writes OutputHeader followed by one row per outcome.
func WriteCSV(w io.Writer, outcomes []Outcome) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(OutputHeader); err != nil {
		return err
	}

	for _, o := range outcomes {
		var resp internal.ProcessResponse
		if o.Response != nil {
			resp = *o.Response
		}
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		row := []string{
			o.Request.VideoURL, o.Request.TranscriptLang, o.Request.SummaryLang, o.Request.SummaryFormat,
			resp.TranscriptEN, resp.TranscriptSelected, resp.SummaryEN, resp.SummarySelected, errText,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
