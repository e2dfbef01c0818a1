package view

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/valpere/vidsum/internal"
)

func TestNewPage_InitialState(t *testing.T) {
	p := NewPage()

	if p.Visible(Loading) {
		t.Error("expected loading to start hidden")
	}
	if p.Visible(Results) {
		t.Error("expected results to start hidden")
	}
	for _, id := range OutputRegions {
		if p.Text(id) != "" {
			t.Errorf("expected %s to start empty", id)
		}
	}
	if !p.Enabled(ProcessButton) {
		t.Error("expected trigger to start enabled")
	}
	if len(p.Alerts()) != 0 {
		t.Error("expected no alerts")
	}
}

func TestPage_ShowHide(t *testing.T) {
	p := NewPage()

	p.Show(Loading)
	if !p.Visible(Loading) {
		t.Error("expected loading visible after Show")
	}
	p.Hide(Loading)
	if p.Visible(Loading) {
		t.Error("expected loading hidden after Hide")
	}
}

func TestPage_SetTextVerbatim(t *testing.T) {
	p := NewPage()
	markup := "<b>bold</b> &amp; \n- bullet"

	p.SetText(SummaryEN, markup)
	if got := p.Text(SummaryEN); got != markup {
		t.Errorf("expected text stored verbatim, got %q", got)
	}
}

func TestPage_FillValues(t *testing.T) {
	p := NewPage()
	req := internal.ProcessRequest{
		VideoURL:       "  https://youtu.be/abc ",
		TranscriptLang: "Tamil",
		SummaryLang:    "German",
		SummaryFormat:  "Key Highlights",
	}

	p.Fill(req)
	if got := p.Values(); got != req {
		t.Errorf("expected %+v, got %+v", req, got)
	}
}

func TestPage_Result(t *testing.T) {
	p := NewPage()
	p.SetText(TranscriptEN, "A")
	p.SetText(TranscriptSelected, "B")
	p.SetText(SummaryEN, "C")
	p.SetText(SummarySelected, "D")

	want := internal.ProcessResponse{TranscriptEN: "A", TranscriptSelected: "B", SummaryEN: "C", SummarySelected: "D"}
	if got := p.Result(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestPage_ConcurrentAccess(t *testing.T) {
	p := NewPage()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Show(Loading)
			p.SetText(TranscriptEN, "x")
			p.Alert("a")
			p.Hide(Loading)
		}()
	}
	wg.Wait()

	if len(p.Alerts()) != 20 {
		t.Errorf("expected 20 alerts, got %d", len(p.Alerts()))
	}
}

func TestTerminal_EchoesLoadingAndAlerts(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out)

	term.Show(Loading)
	term.Show(Loading)
	term.Alert("❌ Error: bad url")

	text := out.String()
	if strings.Count(text, "Processing video") != 1 {
		t.Errorf("expected one loading line, got %q", text)
	}
	if !strings.Contains(text, "bad url") {
		t.Errorf("expected alert echoed, got %q", text)
	}
	if len(term.Alerts()) != 1 {
		t.Errorf("expected alert recorded on page, got %d", len(term.Alerts()))
	}
}

func TestTerminal_RenderResults(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{})
	term.Fill(internal.ProcessRequest{VideoURL: "u", TranscriptLang: "Hindi", SummaryLang: "French"})
	term.SetText(TranscriptEN, "A")
	term.SetText(TranscriptSelected, "B")
	term.SetText(SummaryEN, "C")
	term.SetText(SummarySelected, "D")

	var hidden bytes.Buffer
	if err := term.RenderResults(&hidden); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hidden.Len() != 0 {
		t.Errorf("expected nothing rendered while results hidden, got %q", hidden.String())
	}

	term.Show(Results)
	var out bytes.Buffer
	if err := term.RenderResults(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "== Transcript (English) ==\nA\n\n== Transcript (Hindi) ==\nB\n\n== Summary (English) ==\nC\n\n== Summary (French) ==\nD\n"
	if out.String() != want {
		t.Errorf("unexpected render:\n%s", out.String())
	}
}
