// Package detector guesses the language of service output text.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector restricted to the given ISO 639-1 codes. Codes the
// model does not know are dropped; with fewer than two usable codes the
// detector considers every language it knows.
func New(isoCodes ...string) *Detector {
	var langs []lingua.Language
	for _, code := range isoCodes {
		if lang, ok := Supported(code); ok {
			langs = append(langs, lang)
		}
	}

	builder := lingua.NewLanguageDetectorBuilder()
	var b lingua.LanguageDetectorBuilder
	if len(langs) >= 2 {
		b = builder.FromLanguages(langs...)
	} else {
		b = builder.FromAllLanguages()
	}
	return &Detector{detector: b.Build()}
}

// Supported reports whether isoCode names a language the model can detect.
func Supported(isoCode string) (lingua.Language, bool) {
	code := strings.TrimSpace(isoCode)
	if code == "" {
		return lingua.Unknown, false
	}
	for _, lang := range lingua.AllLanguages() {
		if strings.EqualFold(lang.IsoCode639_1().String(), code) {
			return lang, true
		}
	}
	return lingua.Unknown, false
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
