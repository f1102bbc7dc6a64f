package cache

import (
	"context"
	"testing"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	ctx := context.Background()
	url := "https://city.gov/agenda.pdf"
	body := []byte("%PDF-1.7 body")

	if err := c.Save(ctx, url, `"etag-1"`, "Tue, 01 Jul 2025 10:00:00 GMT", body); err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := c.LoadMeta(ctx, url)
	if err != nil {
		t.Fatalf("load meta: %v", err)
	}
	if meta.ETag != `"etag-1"` || meta.LastModified == "" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if meta.Size != int64(len(body)) {
		t.Fatalf("size = %d, want %d", meta.Size, len(body))
	}

	got, err := c.LoadBody(ctx, url)
	if err != nil {
		t.Fatalf("load body: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("body = %q, want %q", got, body)
	}
}

func TestLoadMeta_MissingEntry(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	if _, err := c.LoadMeta(context.Background(), "https://city.gov/other.pdf"); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestSave_DistinctURLsDoNotCollide(t *testing.T) {
	c := &Cache{Dir: t.TempDir()}
	ctx := context.Background()
	if err := c.Save(ctx, "https://a.gov/x.pdf", "", "", []byte("aaa")); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := c.Save(ctx, "https://b.gov/x.pdf", "", "", []byte("bbb")); err != nil {
		t.Fatalf("save b: %v", err)
	}
	got, err := c.LoadBody(ctx, "https://a.gov/x.pdf")
	if err != nil || string(got) != "aaa" {
		t.Fatalf("body a = %q err=%v", got, err)
	}
}

func TestUnconfiguredDirErrors(t *testing.T) {
	var c Cache
	if err := c.Save(context.Background(), "https://a.gov/x.pdf", "", "", nil); err == nil {
		t.Fatal("expected error when dir not configured")
	}
}
