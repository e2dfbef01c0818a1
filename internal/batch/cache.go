package batch

import (
	"context"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/valpere/vidsum/internal"
	"github.com/valpere/vidsum/internal/submit"
)

// Cache is a submit.Processor that remembers successful responses, so a
// video listed twice with the same selections is processed once. Identical
// requests in flight at the same time share one call to next.
// Responses carrying an error field and failed calls are never kept.
type Cache struct {
	next  submit.Processor
	inner *lru.LRU[string, internal.ProcessResponse]
	calls singleflight.Group
}

// NewCache wraps next. ttl <= 0 keeps entries until they are evicted by size.
func NewCache(next submit.Processor, size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 1
	}
	return &Cache{
		next:  next,
		inner: lru.NewLRU[string, internal.ProcessResponse](size, nil, ttl),
	}
}

func (c *Cache) Process(ctx context.Context, req internal.ProcessRequest) (*internal.ProcessResponse, error) {
	key := cacheKey(req)
	if resp, ok := c.inner.Get(key); ok {
		return &resp, nil
	}

	v, err, _ := c.calls.Do(key, func() (any, error) {
		if resp, ok := c.inner.Get(key); ok {
			return &resp, nil
		}
		resp, err := c.next.Process(ctx, req)
		if err != nil || resp == nil {
			return resp, err
		}
		if resp.Error == "" {
			c.inner.Add(key, *resp)
		}
		return resp, nil
	})
	resp, _ := v.(*internal.ProcessResponse)
	if resp == nil {
		return nil, err
	}
	// Callers sharing a call get their own copy.
	out := *resp
	return &out, err
}

func (c *Cache) Len() int {
	return c.inner.Len()
}

func cacheKey(req internal.ProcessRequest) string {
	return strings.Join([]string{req.VideoURL, req.TranscriptLang, req.SummaryLang, req.SummaryFormat}, "\x00")
}
