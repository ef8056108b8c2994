package crimestats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/realassist/crimereport/pkg/cache"
	errs "github.com/realassist/crimereport/pkg/errors"
	"github.com/realassist/crimereport/pkg/integrations"
)

const sampleBody = `[
	{"data_year": 2013, "Burglary": 3900, "Larceny": 15100},
	{"data_year": 2012, "Burglary": 4213, "Larceny": 15820, "state_abbr": "AK"},
	{"data_year": "2014", "Burglary": 3650}
]`

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestYearly(t *testing.T) {
	var gotQuery string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(sampleBody))
	})

	client := NewClient(nil, server.URL, time.Hour)
	records, err := client.Yearly(context.Background(), Query{Region: "ak", From: 2012, To: 2014}, false)
	if err != nil {
		t.Fatalf("Yearly() error: %v", err)
	}

	if gotQuery != "from=2012&state=AK&to=2014" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	for i, want := range []int{2012, 2013, 2014} {
		if records[i].DataYear != want {
			t.Errorf("records[%d].DataYear = %d, want %d", i, records[i].DataYear, want)
		}
	}
	if records[0].Burglary() != 4213 {
		t.Errorf("2012 burglary = %v, want 4213", records[0].Burglary())
	}
	if records[0].Value("Larceny") != 15820 {
		t.Errorf("2012 larceny = %v, want 15820", records[0].Value("Larceny"))
	}
	if _, ok := records[0].Counts["state_abbr"]; ok {
		t.Error("non-numeric columns should be ignored")
	}
}

func TestYearlyInvalidQuery(t *testing.T) {
	client := NewClient(nil, "http://127.0.0.1:0", time.Hour)

	tests := []struct {
		name string
		q    Query
		code errs.Code
	}{
		{"empty region", Query{From: 2012, To: 2022}, errs.ErrCodeInvalidRegion},
		{"reversed range", Query{Region: "AK", From: 2022, To: 2012}, errs.ErrCodeInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Yearly(context.Background(), tt.q, false)
			if !errs.Is(err, tt.code) {
				t.Errorf("Yearly() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestYearlyNotFound(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	client := NewClient(nil, server.URL, time.Hour)
	_, err := client.Yearly(context.Background(), DefaultQuery(), false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Yearly() error = %v, want ErrNotFound", err)
	}
}

func TestYearlyCachesResults(t *testing.T) {
	var hits atomic.Int32
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(sampleBody))
	})

	c, _ := cache.NewFileCache(t.TempDir())
	client := NewClient(c, server.URL, time.Hour)
	ctx := context.Background()

	first, err := client.Yearly(ctx, DefaultQuery(), false)
	if err != nil {
		t.Fatalf("Yearly() error: %v", err)
	}
	second, err := client.Yearly(ctx, DefaultQuery(), false)
	if err != nil {
		t.Fatalf("Yearly() error: %v", err)
	}

	if hits.Load() != 1 {
		t.Errorf("backend hits = %d, want 1", hits.Load())
	}
	if len(first) != len(second) || second[0].Burglary() != first[0].Burglary() {
		t.Errorf("cached records differ: %v vs %v", first, second)
	}
}

func TestYearlyConcurrentQueriesShareFetch(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(sampleBody))
	})

	client := NewClient(nil, server.URL, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Yearly(context.Background(), DefaultQuery(), false); err != nil {
				t.Errorf("Yearly() error: %v", err)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if hits.Load() != 1 {
		t.Errorf("backend hits = %d, want 1", hits.Load())
	}
}

func TestRecordJSON(t *testing.T) {
	var r Record
	if err := r.UnmarshalJSON([]byte(`{"data_year": 2012, "Burglary": 10}`)); err != nil {
		t.Fatalf("UnmarshalJSON error: %v", err)
	}
	data, err := r.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}

	var back Record
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON(round trip) error: %v", err)
	}
	if back.DataYear != 2012 || back.Burglary() != 10 {
		t.Errorf("round trip = %+v", back)
	}

	if err := r.UnmarshalJSON([]byte(`{"Burglary": 10}`)); err == nil {
		t.Error("record without data_year should fail to decode")
	}
}

func TestQueryValues(t *testing.T) {
	q := DefaultQuery()
	if got := q.Values().Encode(); got != "from=2012&state=AK&to=2022" {
		t.Errorf("Values() = %q", got)
	}
	if got := q.String(); got != "AK 2012-2022" {
		t.Errorf("String() = %q", got)
	}
}
