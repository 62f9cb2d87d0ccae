package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/nearby/internal/models"
)

// route is the walk replayed by the probe, cycling from the main gate towards the hostels.
var route = []models.Coordinates{
	{Latitude: 13.3538, Longitude: 74.7915},
	{Latitude: 13.3551, Longitude: 74.7926},
	{Latitude: 13.3562, Longitude: 74.7934},
}

var errUnexpectedStatus = errors.New("unexpected status")

type options struct {
	URL     string
	Count   int
	Radius  float64
	Every   int
	Timeout time.Duration
}

// HTTPClient is the part of *http.Client the prober needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type prober struct {
	client HTTPClient
	opts   options
	log    *slog.Logger
	now    func() time.Time
}

func newProber(client HTTPClient, opts options, log *slog.Logger) *prober {
	return &prober{client: client, opts: opts, log: log, now: time.Now}
}

// Run sends opts.Count updates sequentially. Failed requests are counted, not fatal;
// only a canceled context stops the run early.
func (p *prober) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	for i := range p.opts.Count {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		point := route[i%len(route)]
		rtt, matches, err := p.send(ctx, point)
		if err != nil {
			summary.Failures++
			p.log.WarnContext(ctx, "Update failed", "update", i+1, "error", err)
			continue
		}
		summary.Add(rtt)

		if p.opts.Every > 0 && (i+1)%p.opts.Every == 0 {
			p.log.InfoContext(ctx, "Progress",
				"update", i+1,
				"matches", matches,
				"rtt_ms", millis(rtt),
			)
		}
	}

	return summary, nil
}

func (p *prober) send(ctx context.Context, point models.Coordinates) (time.Duration, int, error) {
	body, err := json.Marshal(map[string]float64{
		"lat":      point.Latitude,
		"lon":      point.Longitude,
		"radius_m": p.opts.Radius,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to encode update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.opts.URL, bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := p.now()
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, 0, fmt.Errorf("%w %d: %s", errUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(detail))
	}

	var decoded models.QueryResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return p.now().Sub(start), decoded.Count, nil
}

// Summary aggregates round-trip times of successful updates.
type Summary struct {
	Samples  int
	Failures int
	Total    time.Duration
	Min      time.Duration
	Max      time.Duration
}

func (s *Summary) Add(rtt time.Duration) {
	if s.Samples == 0 || rtt < s.Min {
		s.Min = rtt
	}
	if rtt > s.Max {
		s.Max = rtt
	}
	s.Total += rtt
	s.Samples++
}

// Mean is zero when nothing succeeded.
func (s Summary) Mean() time.Duration {
	if s.Samples == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Samples)
}

func (s Summary) String() string {
	if s.Samples == 0 {
		return fmt.Sprintf("no successful samples (%d failed)", s.Failures)
	}
	return fmt.Sprintf("mean=%.2fms min=%.2fms max=%.2fms samples=%d failed=%d",
		millis(s.Mean()), millis(s.Min), millis(s.Max), s.Samples, s.Failures)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
