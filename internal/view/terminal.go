package view

import (
	"fmt"
	"io"
	"strings"
)

// Terminal is a Page that echoes loading state and alerts to a writer as
// they happen. Results are printed on demand by RenderResults.
type Terminal struct {
	*Page
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{Page: NewPage(), out: out}
}

func (t *Terminal) Show(id string) {
	wasHidden := t.Page.Region(id).Hidden
	t.Page.Show(id)
	if id == Loading && wasHidden {
		fmt.Fprintln(t.out, "⏳ Processing video, this may take a few minutes...")
	}
}

func (t *Terminal) Alert(message string) {
	t.Page.Alert(message)
	fmt.Fprintln(t.out, message)
}

// RenderResults writes the four output regions under headings. Nothing is
// written while the results region is hidden.
func (t *Terminal) RenderResults(w io.Writer) error {
	if !t.Visible(Results) {
		return nil
	}

	form := t.Values()
	sections := []struct {
		heading string
		region  string
	}{
		{"Transcript (English)", TranscriptEN},
		{fmt.Sprintf("Transcript (%s)", orSelected(form.TranscriptLang)), TranscriptSelected},
		{"Summary (English)", SummaryEN},
		{fmt.Sprintf("Summary (%s)", orSelected(form.SummaryLang)), SummarySelected},
	}

	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n%s\n", s.heading, strings.TrimRight(t.Text(s.region), "\n")); err != nil {
			return err
		}
	}
	return nil
}

func orSelected(lang string) string {
	if lang == "" {
		return "selected language"
	}
	return lang
}
