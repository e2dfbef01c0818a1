package validator

import (
	"testing"

	"github.com/valpere/vidsum/internal"
)

const (
	englishText = "The speaker explains how the engine converts heat into motion."
	frenchText  = "Le conférencier explique comment le moteur transforme la chaleur en mouvement."
)

func TestValidator_Check_Matches(t *testing.T) {
	v := New()

	got := v.Check(
		internal.ProcessRequest{TranscriptLang: "French", SummaryLang: "English"},
		internal.ProcessResponse{TranscriptSelected: frenchText, SummarySelected: englishText},
	)
	if len(got) != 0 {
		t.Errorf("expected no mismatches, got %+v", got)
	}
}

func TestValidator_Check_Mismatch(t *testing.T) {
	v := New()

	got := v.Check(
		internal.ProcessRequest{TranscriptLang: "French", SummaryLang: "English"},
		internal.ProcessResponse{TranscriptSelected: englishText, SummarySelected: englishText},
	)
	if len(got) != 1 {
		t.Fatalf("expected 1 mismatch, got %+v", got)
	}
	if got[0].Field != "transcript_selected" || got[0].Expected != "fr" || got[0].Detected != "en" {
		t.Errorf("unexpected mismatch: %+v", got[0])
	}
}

func TestValidator_Check_Skips(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		req  internal.ProcessRequest
		resp internal.ProcessResponse
	}{
		{
			name: "short text",
			req:  internal.ProcessRequest{TranscriptLang: "French"},
			resp: internal.ProcessResponse{TranscriptSelected: "Hello"},
		},
		{
			name: "unknown language",
			req:  internal.ProcessRequest{TranscriptLang: "Klingon"},
			resp: internal.ProcessResponse{TranscriptSelected: englishText},
		},
		{
			name: "undetectable language",
			req:  internal.ProcessRequest{SummaryLang: "Kannada"},
			resp: internal.ProcessResponse{SummarySelected: englishText},
		},
		{
			name: "empty",
			req:  internal.ProcessRequest{TranscriptLang: "German", SummaryLang: "German"},
			resp: internal.ProcessResponse{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Check(tt.req, tt.resp); len(got) != 0 {
				t.Errorf("expected check skipped, got %+v", got)
			}
		})
	}
}
