package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConnRefused = errors.New("connection refused")

type failingClient struct{}

func (failingClient) Do(*http.Request) (*http.Response, error) {
	return nil, errConnRefused
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSummary_Add(t *testing.T) {
	t.Parallel()

	var summary Summary
	for _, rtt := range []time.Duration{4 * time.Millisecond, 2 * time.Millisecond, 6 * time.Millisecond} {
		summary.Add(rtt)
	}

	assert.Equal(t, 3, summary.Samples)
	assert.Equal(t, 2*time.Millisecond, summary.Min)
	assert.Equal(t, 6*time.Millisecond, summary.Max)
	assert.Equal(t, 4*time.Millisecond, summary.Mean())
	assert.Equal(t, "mean=4.00ms min=2.00ms max=6.00ms samples=3 failed=0", summary.String())
}

func TestSummary_Empty(t *testing.T) {
	t.Parallel()

	summary := Summary{Failures: 2}

	assert.Zero(t, summary.Mean())
	assert.Equal(t, "no successful samples (2 failed)", summary.String())
}

func TestProber_RunCyclesRoute(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		received []map[string]float64
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]float64
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		received = append(received, body)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"nearby":[{"name":"Main Gate","lat":13.3525,"lon":74.7928,"distance":10}],"server_processing_ms":0.01}`))
	}))
	defer server.Close()

	p := newProber(server.Client(), options{URL: server.URL, Count: 4, Radius: 150, Every: 2}, discardLogger())
	summary, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Samples)
	assert.Zero(t, summary.Failures)
	require.Len(t, received, 4)
	for i, body := range received {
		point := route[i%len(route)]
		assert.InDelta(t, point.Latitude, body["lat"], 0)
		assert.InDelta(t, point.Longitude, body["lon"], 0)
		assert.InDelta(t, 150.0, body["radius_m"], 0)
	}
}

func TestProber_RunCountsFailures(t *testing.T) {
	t.Parallel()

	p := newProber(failingClient{}, options{URL: "http://127.0.0.1:1/nearest", Count: 3, Every: 1}, discardLogger())
	summary, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, summary.Samples)
	assert.Equal(t, 3, summary.Failures)
}

func TestProber_SendRejectsBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"malformed request"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	p := newProber(server.Client(), options{URL: server.URL, Count: 2}, discardLogger())
	_, _, err := p.send(context.Background(), route[0])

	require.ErrorIs(t, err, errUnexpectedStatus)
	assert.Contains(t, err.Error(), "400")
}

func TestProber_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newProber(failingClient{}, options{Count: 5}, discardLogger())
	summary, err := p.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, summary.Failures)
}
