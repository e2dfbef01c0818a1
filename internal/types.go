package internal

import "time"

// ProcessRequest is the body sent to the digest service's /process endpoint.
// Only VideoURL is checked locally; the other fields are passed through as-is.
type ProcessRequest struct {
	VideoURL       string `json:"video_url"`
	TranscriptLang string `json:"transcript_lang"`
	SummaryLang    string `json:"summary_lang"`
	SummaryFormat  string `json:"summary_format"`
}

// ProcessResponse is either a failure ({"error": ...}) or the four text fields.
type ProcessResponse struct {
	Error              string `json:"error,omitempty"`
	TranscriptEN       string `json:"transcript_en"`
	TranscriptSelected string `json:"transcript_selected"`
	SummaryEN          string `json:"summary_en"`
	SummarySelected    string `json:"summary_selected"`
}

// Submission is a successful exchange as kept in the local history.
type Submission struct {
	ID        string          `json:"id"`
	Request   ProcessRequest  `json:"request"`
	Response  ProcessResponse `json:"response"`
	Timestamp time.Time       `json:"timestamp"`
}
