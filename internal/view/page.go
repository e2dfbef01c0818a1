// Package view holds the page state the submission handler drives: named
// regions that are shown, hidden or filled with text, plus the form inputs.
package view

import (
	"sync"

	"github.com/valpere/vidsum/internal"
)

// Input controls.
const (
	VideoURL       = "video_url"
	TranscriptLang = "transcript_lang"
	SummaryLang    = "summary_lang"
	SummaryFormat  = "summary_format"
	ProcessButton  = "processBtn"
)

// Display regions.
const (
	Loading            = "loading"
	Results            = "results"
	TranscriptEN       = "transcript_en"
	TranscriptSelected = "transcript_selected"
	SummaryEN          = "summary_en"
	SummarySelected    = "summary_selected"
)

// OutputRegions lists the four text regions in display order.
var OutputRegions = []string{TranscriptEN, TranscriptSelected, SummaryEN, SummarySelected}

// Region is a snapshot of one display region.
type Region struct {
	Hidden bool
	Text   string
}

// Page is an in-memory page model. It is safe for concurrent use.
type Page struct {
	mu       sync.Mutex
	regions  map[string]*Region
	inputs   map[string]string
	disabled map[string]bool
	alerts   []string
}

// NewPage returns a page in its initial state: loading and results hidden,
// every output region empty.
func NewPage() *Page {
	p := &Page{
		regions:  make(map[string]*Region),
		inputs:   make(map[string]string),
		disabled: make(map[string]bool),
	}
	p.regions[Loading] = &Region{Hidden: true}
	p.regions[Results] = &Region{Hidden: true}
	for _, id := range OutputRegions {
		p.regions[id] = &Region{}
	}
	return p
}

func (p *Page) region(id string) *Region {
	r, ok := p.regions[id]
	if !ok {
		r = &Region{}
		p.regions[id] = r
	}
	return r
}

func (p *Page) Show(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.region(id).Hidden = false
}

func (p *Page) Hide(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.region(id).Hidden = true
}

// SetText replaces the region's text. The text is stored verbatim and never
// interpreted as markup.
func (p *Page) SetText(id, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.region(id).Text = text
}

func (p *Page) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

func (p *Page) SetEnabled(control string, enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disabled[control] = !enabled
}

// SetInput fills a form control.
func (p *Page) SetInput(id, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inputs[id] = value
}

// Fill sets all four form controls from req.
func (p *Page) Fill(req internal.ProcessRequest) {
	p.SetInput(VideoURL, req.VideoURL)
	p.SetInput(TranscriptLang, req.TranscriptLang)
	p.SetInput(SummaryLang, req.SummaryLang)
	p.SetInput(SummaryFormat, req.SummaryFormat)
}

// Values reads the form controls as they are, without trimming.
func (p *Page) Values() internal.ProcessRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return internal.ProcessRequest{
		VideoURL:       p.inputs[VideoURL],
		TranscriptLang: p.inputs[TranscriptLang],
		SummaryLang:    p.inputs[SummaryLang],
		SummaryFormat:  p.inputs[SummaryFormat],
	}
}

// Region returns a copy of the named region.
func (p *Page) Region(id string) Region {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.regions[id]; ok {
		return *r
	}
	return Region{}
}

func (p *Page) Visible(id string) bool {
	return !p.Region(id).Hidden
}

func (p *Page) Text(id string) string {
	return p.Region(id).Text
}

func (p *Page) Enabled(control string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.disabled[control]
}

// Alerts returns every alert raised so far, oldest first.
func (p *Page) Alerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.alerts))
	copy(out, p.alerts)
	return out
}

// Result returns the output regions as a response, for callers that need the
// rendered values rather than the page.
func (p *Page) Result() internal.ProcessResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	return internal.ProcessResponse{
		TranscriptEN:       p.region(TranscriptEN).Text,
		TranscriptSelected: p.region(TranscriptSelected).Text,
		SummaryEN:          p.region(SummaryEN).Text,
		SummarySelected:    p.region(SummarySelected).Text,
	}
}
