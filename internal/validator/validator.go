// Package validator checks that the translated fields of a digest response
// are written in the languages the user asked for.
package validator

import (
	"strings"

	"github.com/valpere/vidsum/internal"
	"github.com/valpere/vidsum/internal/detector"
	"github.com/valpere/vidsum/internal/options"
)

// minValidationLength is the minimum rune count required to attempt language detection.
// Shorter texts produce unreliable results and are accepted without validation.
const minValidationLength = 20

// Mismatch describes one field whose detected language differs from the
// requested one.
type Mismatch struct {
	Field    string
	Expected string
	Detected string
}

// Validator is expensive to build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator whose detector only considers catalogue languages.
func New() *Validator {
	var codes []string
	for _, l := range options.Languages() {
		codes = append(codes, l.Code)
	}
	return &Validator{det: detector.New(codes...)}
}

// Check compares transcript_selected with req.TranscriptLang and
// summary_selected with req.SummaryLang. Fields are skipped when the
// requested language is outside the catalogue or undetectable, when the
// text is short, or when detection is ambiguous.
func (v *Validator) Check(req internal.ProcessRequest, resp internal.ProcessResponse) []Mismatch {
	var out []Mismatch
	if m, ok := v.check("transcript_selected", resp.TranscriptSelected, req.TranscriptLang); ok {
		out = append(out, m)
	}
	if m, ok := v.check("summary_selected", resp.SummarySelected, req.SummaryLang); ok {
		out = append(out, m)
	}
	return out
}

func (v *Validator) check(field, text, langName string) (Mismatch, bool) {
	lang, ok := options.LookupLanguage(langName)
	if !ok {
		return Mismatch{}, false
	}
	if _, ok := detector.Supported(lang.Code); !ok {
		return Mismatch{}, false
	}

	text = strings.TrimSpace(text)
	if len([]rune(text)) < minValidationLength {
		return Mismatch{}, false
	}

	detected, ok := v.det.DetectISO(text)
	if !ok || strings.EqualFold(detected, lang.Code) {
		return Mismatch{}, false
	}
	return Mismatch{Field: field, Expected: lang.Code, Detected: detected}, true
}
