package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchReturnsBody(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><title>ok</title></html>"))
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	html, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(html, "<title>ok</title>") {
		t.Fatalf("unexpected body: %q", html)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Fatalf("expected browser user agent, got %q", gotUA)
	}
}

func TestFetchNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(5 * time.Second)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetchUnreachableHost(t *testing.T) {
	f := New(500 * time.Millisecond)
	if _, err := f.Fetch(context.Background(), "http://127.0.0.1:1/never"); err == nil {
		t.Fatal("expected error for unreachable host")
	}
}
