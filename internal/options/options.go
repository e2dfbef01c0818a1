// Package options is the catalogue of selection values the digest service
// is known to accept. The handler treats them as opaque; this package only
// backs listing and the optional strict check.
package options

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/valpere/vidsum/internal"
	"github.com/valpere/vidsum/internal/submit"
	"github.com/valpere/vidsum/internal/view"
)

// Language is one selectable language. Name is the value sent on the wire.
type Language struct {
	Name string
	Code string
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	return language.Make(l.Code)
}

// Summary formats.
const (
	Paragraph     = "Paragraph"
	BulletPoints  = "Bullet Points"
	KeyHighlights = "Key Highlights"
)

// DefaultLanguage is preselected for both language controls.
const DefaultLanguage = "English"

var languages = []Language{
	{Name: "English", Code: "en"},
	{Name: "Telugu", Code: "te"},
	{Name: "Hindi", Code: "hi"},
	{Name: "Tamil", Code: "ta"},
	{Name: "Kannada", Code: "kn"},
	{Name: "Malayalam", Code: "ml"},
	{Name: "French", Code: "fr"},
	{Name: "Spanish", Code: "es"},
	{Name: "German", Code: "de"},
	{Name: "Chinese", Code: "zh"},
}

var formats = []string{Paragraph, BulletPoints, KeyHighlights}

// Languages returns the catalogue in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LanguageNames returns the wire values in display order.
func LanguageNames() []string {
	names := make([]string, len(languages))
	for i, l := range languages {
		names[i] = l.Name
	}
	return names
}

// Formats returns the summary formats in display order.
func Formats() []string {
	out := make([]string, len(formats))
	copy(out, formats)
	return out
}

// LookupLanguage finds a language by display name or ISO code,
// case-insensitively.
func LookupLanguage(nameOrCode string) (Language, bool) {
	key := strings.TrimSpace(nameOrCode)
	for _, l := range languages {
		if strings.EqualFold(l.Name, key) || strings.EqualFold(l.Code, key) {
			return l, true
		}
	}
	return Language{}, false
}

// Canonical maps a code or differently-cased name to the catalogue's wire
// value. Unknown values are returned unchanged.
func Canonical(nameOrCode string) string {
	if l, ok := LookupLanguage(nameOrCode); ok {
		return l.Name
	}
	return nameOrCode
}

// ValidateLanguage returns an error unless name is exactly a catalogue name.
func ValidateLanguage(name string) error {
	for _, l := range languages {
		if l.Name == name {
			return nil
		}
	}
	return fmt.Errorf("unsupported language %q (choose one of: %s)", name, strings.Join(LanguageNames(), ", "))
}

// ValidateFormat returns an error unless name is a known summary format.
func ValidateFormat(name string) error {
	for _, f := range formats {
		if f == name {
			return nil
		}
	}
	return fmt.Errorf("unsupported summary format %q (choose one of: %s)", name, strings.Join(formats, ", "))
}

// NativeName renders the language's name in itself, e.g. "हिन्दी" for Hindi.
func NativeName(l Language) string {
	return display.Self.Name(l.Tag())
}

// Strict rejects selection values outside the catalogue. It has the shape
// of submit.Validator.
func Strict(req internal.ProcessRequest) *submit.ValidationError {
	checks := []struct {
		field string
		err   error
	}{
		{view.TranscriptLang, ValidateLanguage(req.TranscriptLang)},
		{view.SummaryLang, ValidateLanguage(req.SummaryLang)},
		{view.SummaryFormat, ValidateFormat(req.SummaryFormat)},
	}
	for _, c := range checks {
		if c.err != nil {
			return &submit.ValidationError{Field: c.field, Message: c.err.Error()}
		}
	}
	return nil
}
