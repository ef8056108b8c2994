package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/realassist/crimereport/pkg/cache"
	"github.com/realassist/crimereport/pkg/httputil"
)

func TestNewClient(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	client := NewClient(c, time.Hour, map[string]string{"Accept": "application/json"})
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["Accept"] != "application/json" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, time.Hour, nil)
	if client.cache == nil {
		t.Fatal("NewClient(nil) should fall back to a null cache")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	var gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		gotAccept = r.Header.Get("Accept")
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(nil, time.Hour, map[string]string{"Accept": "application/json"})
	client.http = server.Client()

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept header = %q, want application/json", gotAccept)
	}
}

func TestClientGetMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer server.Close()

	client := NewClient(nil, time.Hour, nil)
	client.http = server.Client()

	var v []int
	err := client.Get(context.Background(), server.URL, &v)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Get() error = %v, want ErrMalformed", err)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		wantErr   error
		retryable bool
	}{
		{"ok", http.StatusOK, nil, false},
		{"not found", http.StatusNotFound, ErrNotFound, false},
		{"server error", http.StatusBadGateway, ErrNetwork, true},
		{"bad request", http.StatusBadRequest, ErrNetwork, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("checkStatus(%d) = %v, want nil", tt.code, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("checkStatus(%d) = %v, want %v", tt.code, err, tt.wantErr)
			}
			if httputil.IsRetryable(err) != tt.retryable {
				t.Errorf("checkStatus(%d) retryable = %v, want %v", tt.code, !tt.retryable, tt.retryable)
			}
		})
	}
}

func TestClientCached(t *testing.T) {
	ctx := context.Background()
	c, _ := cache.NewFileCache(t.TempDir())
	client := NewClient(c, time.Hour, nil)

	var calls atomic.Int32
	fetch := func(v *[]int) func() error {
		return func() error {
			calls.Add(1)
			*v = []int{2012, 2013}
			return nil
		}
	}

	var first []int
	if err := client.Cached(ctx, "stats", "k", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	var second []int
	if err := client.Cached(ctx, "stats", "k", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1 (second call should hit cache)", calls.Load())
	}
	if len(second) != 2 || second[0] != 2012 {
		t.Errorf("cached value = %v, want [2012 2013]", second)
	}

	var third []int
	if err := client.Cached(ctx, "stats", "k", true, &third, fetch(&third)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("fetch calls = %d, want 2 (refresh bypasses cache)", calls.Load())
	}
}
