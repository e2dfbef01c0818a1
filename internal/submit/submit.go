// Package submit runs one user-triggered digest request: it reads the form,
// posts it to the service and renders the outcome into the page.
package submit

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/valpere/vidsum/internal"
	"github.com/valpere/vidsum/internal/view"
)

// Alert texts shown to the user.
const (
	MissingURLAlert    = "⚠️ Please enter a YouTube video URL."
	ServiceErrorPrefix = "❌ Error: "
	FailurePrefix      = "❌ An error occurred: "
	invalidInputPrefix = "⚠️ "
)

var errEmptyResponse = errors.New("empty response from service")

// View is the part of the page the handler drives.
type View interface {
	Show(region string)
	Hide(region string)
	SetText(region, text string)
	Alert(message string)
	SetEnabled(control string, enabled bool)
}

// Form supplies the raw control values at activation time.
type Form interface {
	Values() internal.ProcessRequest
}

// Processor performs the POST /process exchange.
type Processor interface {
	Process(ctx context.Context, req internal.ProcessRequest) (*internal.ProcessResponse, error)
}

// Validator is an optional extra check on the selection values. It runs
// after the URL presence check and before any network activity.
type Validator func(req internal.ProcessRequest) *ValidationError

// Handler is bound to one page. At most one submission is in flight at a
// time; overlapping activations get ErrInFlight and leave the page alone.
type Handler struct {
	form      Form
	view      View
	processor Processor
	validate  Validator
	inFlight  atomic.Bool
}

func New(form Form, v View, processor Processor) *Handler {
	return &Handler{form: form, view: v, processor: processor}
}

// WithValidator installs an additional selection check.
func (h *Handler) WithValidator(fn Validator) *Handler {
	h.validate = fn
	return h
}

// Busy reports whether a submission is in flight.
func (h *Handler) Busy() bool {
	return h.inFlight.Load()
}

// Submit runs one activation. On success the four output regions hold the
// response text and the results region is visible. Failures are alerted on
// the view and returned as *ValidationError or *OperationError.
func (h *Handler) Submit(ctx context.Context) (*internal.ProcessResponse, error) {
	req := h.form.Values()

	// Presence only: a whitespace URL is sent as-is.
	if req.VideoURL == "" {
		h.view.Alert(MissingURLAlert)
		return nil, &ValidationError{Field: view.VideoURL, Message: "video URL is required"}
	}
	if h.validate != nil {
		if verr := h.validate(req); verr != nil {
			h.view.Alert(invalidInputPrefix + verr.Message)
			return nil, verr
		}
	}

	if !h.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer h.inFlight.Store(false)

	h.view.SetEnabled(view.ProcessButton, false)
	defer h.view.SetEnabled(view.ProcessButton, true)

	resp, err := h.exchange(ctx, req)
	if err == nil && resp == nil {
		err = errEmptyResponse
	}
	if err != nil {
		h.view.Alert(FailurePrefix + err.Error())
		return nil, &OperationError{Err: err}
	}

	if resp.Error != "" {
		h.view.Alert(ServiceErrorPrefix + resp.Error)
		return nil, &OperationError{Err: &ServiceError{Message: resp.Error}}
	}

	h.view.SetText(view.TranscriptEN, resp.TranscriptEN)
	h.view.SetText(view.TranscriptSelected, resp.TranscriptSelected)
	h.view.SetText(view.SummaryEN, resp.SummaryEN)
	h.view.SetText(view.SummarySelected, resp.SummarySelected)
	h.view.Show(view.Results)

	return resp, nil
}

// exchange holds the loading region visible for exactly the duration of the
// network call and body decode, whatever the outcome.
func (h *Handler) exchange(ctx context.Context, req internal.ProcessRequest) (*internal.ProcessResponse, error) {
	h.view.Show(view.Loading)
	h.view.Hide(view.Results)
	defer h.view.Hide(view.Loading)

	return h.processor.Process(ctx, req)
}
