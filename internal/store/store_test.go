package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/valpere/vidsum/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSubmission(url string, at time.Time) internal.Submission {
	return internal.Submission{
		Request: internal.ProcessRequest{
			VideoURL:       url,
			TranscriptLang: "Hindi",
			SummaryLang:    "English",
			SummaryFormat:  "Bullet Points",
		},
		Response: internal.ProcessResponse{
			TranscriptEN:       "A",
			TranscriptSelected: "B",
			SummaryEN:          "- C",
			SummarySelected:    "- D",
		},
		Timestamp: at,
	}
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)
	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := s.SaveSubmission(ctx, sampleSubmission("https://youtu.be/abc", at))
	if err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated ID")
	}

	got, err := s.GetSubmission(ctx, id)
	if err != nil {
		t.Fatalf("GetSubmission failed: %v", err)
	}
	want := sampleSubmission("https://youtu.be/abc", at)
	if got.Request != want.Request {
		t.Errorf("request mismatch: got %+v, want %+v", got.Request, want.Request)
	}
	if got.Response != want.Response {
		t.Errorf("response mismatch: got %+v, want %+v", got.Response, want.Response)
	}
	if !got.Timestamp.Equal(at) {
		t.Errorf("expected timestamp %v, got %v", at, got.Timestamp)
	}
}

func TestStore_SaveKeepsGivenID(t *testing.T) {
	s := newTestStore(t)
	sub := sampleSubmission("https://youtu.be/abc", time.Now())
	sub.ID = "fixed-id"

	id, err := s.SaveSubmission(context.Background(), sub)
	if err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("expected given ID, got %q", id)
	}
}

func TestStore_GetSubmission_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSubmission(context.Background(), "missing")
	if !errors.Is(err, &ErrNotFound{}) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListSubmissions_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, url := range []string{"https://youtu.be/1", "https://youtu.be/2", "https://youtu.be/3"} {
		if _, err := s.SaveSubmission(ctx, sampleSubmission(url, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveSubmission failed: %v", err)
		}
	}

	all, err := s.ListSubmissions(ctx, 0)
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].Request.VideoURL != "https://youtu.be/3" {
		t.Errorf("expected newest first, got %q", all[0].Request.VideoURL)
	}

	limited, err := s.ListSubmissions(ctx, 2)
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 entries, got %d", len(limited))
	}
}

func TestStore_FindByURL_Normalized(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// "e" + combining acute accent vs precomposed "é".
	decomposed := "https://example.com/cafe\u0301"
	precomposed := "https://example.com/caf\u00e9"

	if _, err := s.SaveSubmission(ctx, sampleSubmission("  "+decomposed+"\n", time.Now())); err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}
	if _, err := s.SaveSubmission(ctx, sampleSubmission("https://youtu.be/other", time.Now())); err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}

	found, err := s.FindByURL(ctx, precomposed)
	if err != nil {
		t.Fatalf("FindByURL failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}
	if found[0].Request.VideoURL != precomposed {
		t.Errorf("expected stored URL normalized, got %q", found[0].Request.VideoURL)
	}
}

func TestStore_DeleteSubmission(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveSubmission(ctx, sampleSubmission("https://youtu.be/abc", time.Now()))
	if err != nil {
		t.Fatalf("SaveSubmission failed: %v", err)
	}

	if err := s.DeleteSubmission(ctx, id); err != nil {
		t.Fatalf("DeleteSubmission failed: %v", err)
	}
	if _, err := s.GetSubmission(ctx, id); !errors.Is(err, &ErrNotFound{}) {
		t.Errorf("expected entry gone, got %v", err)
	}
	if err := s.DeleteSubmission(ctx, id); !errors.Is(err, &ErrNotFound{}) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_ClearAndStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, url := range []string{"https://youtu.be/a", "https://youtu.be/a", "https://youtu.be/b"} {
		if _, err := s.SaveSubmission(ctx, sampleSubmission(url, time.Now())); err != nil {
			t.Fatalf("SaveSubmission failed: %v", err)
		}
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Submissions != 3 || stats.Videos != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	n, err := s.ClearSubmissions(ctx)
	if err != nil {
		t.Fatalf("ClearSubmissions failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows removed, got %d", n)
	}

	stats, err = s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Submissions != 0 {
		t.Errorf("expected empty history, got %+v", stats)
	}
}
