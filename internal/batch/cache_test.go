package batch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/valpere/vidsum/internal"
)

func TestCache_ReusesSuccessfulResponse(t *testing.T) {
	proc := &mockProcessor{}
	c := NewCache(proc, 8, 0)
	req := requests("u1")[0]

	first, err := c.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if proc.callCount.Load() != 1 {
		t.Errorf("expected 1 call, got %d", proc.callCount.Load())
	}
	if first.TranscriptEN != second.TranscriptEN {
		t.Errorf("expected same response, got %q and %q", first.TranscriptEN, second.TranscriptEN)
	}
}

func TestCache_KeyIncludesSelections(t *testing.T) {
	proc := &mockProcessor{}
	c := NewCache(proc, 8, 0)
	a := requests("u1")[0]
	b := a
	b.SummaryLang = "French"

	c.Process(context.Background(), a)
	c.Process(context.Background(), b)

	if proc.callCount.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", proc.callCount.Load())
	}
}

func TestCache_SkipsFailures(t *testing.T) {
	tests := []struct {
		name string
		resp *internal.ProcessResponse
		err  error
	}{
		{"transport error", nil, errors.New("boom")},
		{"service error", &internal.ProcessResponse{Error: "Invalid URL"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := &mockProcessor{
				processFunc: func(ctx context.Context, req internal.ProcessRequest) (*internal.ProcessResponse, error) {
					return tt.resp, tt.err
				},
			}
			c := NewCache(proc, 8, 0)
			req := requests("u1")[0]

			c.Process(context.Background(), req)
			c.Process(context.Background(), req)

			if proc.callCount.Load() != 2 {
				t.Errorf("expected 2 calls, got %d", proc.callCount.Load())
			}
			if c.Len() != 0 {
				t.Errorf("expected empty cache, got %d entries", c.Len())
			}
		})
	}
}

func TestCache_DuplicateRowsInBatch(t *testing.T) {
	proc := &mockProcessor{}
	reqs := requests("u1", "u2", "u1", "u1")

	outcomes := New(NewCache(proc, len(reqs), 0), Config{Workers: 1}, zerolog.Nop()).Run(context.Background(), reqs)

	if proc.callCount.Load() != 2 {
		t.Errorf("expected 2 service calls, got %d", proc.callCount.Load())
	}
	if Succeeded(outcomes) != 4 {
		t.Errorf("expected 4 successful rows, got %d", Succeeded(outcomes))
	}
	if outcomes[3].Response.TranscriptEN != "transcript of u1" {
		t.Errorf("unexpected cached response: %+v", outcomes[3].Response)
	}
}

func TestCache_CollapsesConcurrentDuplicates(t *testing.T) {
	release := make(chan struct{})
	proc := &mockProcessor{
		processFunc: func(ctx context.Context, req internal.ProcessRequest) (*internal.ProcessResponse, error) {
			<-release
			return &internal.ProcessResponse{TranscriptEN: "transcript of " + req.VideoURL}, nil
		},
	}
	c := NewCache(proc, 8, 0)
	req := requests("u1")[0]

	const callers = 4
	var wg sync.WaitGroup
	results := make([]*internal.ProcessResponse, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Process(context.Background(), req)
		}(i)
	}

	// Let every caller reach the shared call before the service answers.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if proc.callCount.Load() != 1 {
		t.Errorf("expected 1 service call, got %d", proc.callCount.Load())
	}
	for i, r := range results {
		if r == nil || r.TranscriptEN != "transcript of u1" {
			t.Errorf("caller %d: unexpected response %+v", i, r)
		}
	}
	if results[0] == results[1] {
		t.Error("expected each caller to get its own copy")
	}
}

func TestCache_ConcurrentDuplicateRowsInBatch(t *testing.T) {
	release := make(chan struct{})
	proc := &mockProcessor{
		processFunc: func(ctx context.Context, req internal.ProcessRequest) (*internal.ProcessResponse, error) {
			<-release
			return &internal.ProcessResponse{TranscriptEN: req.VideoURL}, nil
		},
	}
	reqs := requests("u1", "u1", "u1")

	done := make(chan []Outcome)
	go func() {
		done <- New(NewCache(proc, len(reqs), 0), Config{Workers: 3}, zerolog.Nop()).Run(context.Background(), reqs)
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	outcomes := <-done

	if proc.callCount.Load() != 1 {
		t.Errorf("expected 1 service call, got %d", proc.callCount.Load())
	}
	if Succeeded(outcomes) != 3 {
		t.Errorf("expected 3 successful rows, got %d", Succeeded(outcomes))
	}
}
