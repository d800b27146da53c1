package storage

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestFSStoreRoundTrip(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	key := "exams/e1/media/map.png"
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	if _, err := s.Put(ctx, key, bytes.NewReader(payload), "image/png"); err != nil {
		t.Fatal(err)
	}

	rc, ct, err := s.Get(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: %v", got)
	}
	if ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}

	url, err := s.URL(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if url != "http://localhost:8080/assets/exams/e1/media/map.png" {
		t.Fatalf("url = %q", url)
	}
}

func TestFSStoreEmptyKey(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Put(context.Background(), "", bytes.NewReader(nil), ""); err == nil {
		t.Fatal("expected error for empty key")
	}
}
