// Package batch runs many digest submissions with a bounded number of
// workers, each on its own page, and keeps results in input order.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/valpere/vidsum/internal"
	"github.com/valpere/vidsum/internal/submit"
	"github.com/valpere/vidsum/internal/view"
)

type Config struct {
	Workers int
	Rate    float64       // submissions started per second; 0 = unlimited
	Timeout time.Duration // per submission; 0 = none
}

// Outcome is the result of one row.
type Outcome struct {
	Index    int
	Request  internal.ProcessRequest
	Response *internal.ProcessResponse
	Alerts   []string
	Err      error
}

type Runner struct {
	processor submit.Processor
	validate  submit.Validator
	config    Config
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

func New(processor submit.Processor, config Config, logger zerolog.Logger) *Runner {
	if config.Workers <= 0 {
		config.Workers = 1
	}

	limit := rate.Inf
	if config.Rate > 0 {
		limit = rate.Limit(config.Rate)
	}

	return &Runner{
		processor: processor,
		config:    config,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger.With().Str("component", "batch").Logger(),
	}
}

// WithValidator applies fn to every row before submission.
func (r *Runner) WithValidator(fn submit.Validator) *Runner {
	r.validate = fn
	return r
}

// Run submits every request and returns one Outcome per request, in order.
// Cancelling ctx stops rows that have not started yet; they report ctx.Err().
func (r *Runner) Run(ctx context.Context, reqs []internal.ProcessRequest) []Outcome {
	outcomes := make([]Outcome, len(reqs))
	sem := make(chan struct{}, r.config.Workers)

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(index int, req internal.ProcessRequest) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				outcomes[index] = Outcome{Index: index, Request: req, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			outcomes[index] = r.runOne(ctx, index, req)
		}(i, req)
	}
	wg.Wait()

	return outcomes
}

func (r *Runner) runOne(ctx context.Context, index int, req internal.ProcessRequest) Outcome {
	out := Outcome{Index: index, Request: req}

	if err := r.limiter.Wait(ctx); err != nil {
		out.Err = err
		return out
	}

	itemCtx := ctx
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	page := view.NewPage()
	page.Fill(req)
	h := submit.New(page, page, r.processor)
	if r.validate != nil {
		h.WithValidator(r.validate)
	}

	start := time.Now()
	out.Response, out.Err = h.Submit(itemCtx)
	out.Alerts = page.Alerts()

	event := r.logger.Info()
	if out.Err != nil {
		event = r.logger.Warn().Err(out.Err)
	}
	event.Int("row", index).Str("url", req.VideoURL).Dur("elapsed", time.Since(start)).Msg("submission finished")

	return out
}

// Succeeded counts outcomes without an error.
func Succeeded(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}
