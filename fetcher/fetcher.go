// Package fetcher performs the single timed GET behind every dashboard
// refresh and turns the response into a normalized table.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"feed-dashboard/metrics"
	"feed-dashboard/models"
	"feed-dashboard/sources"

	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 10 * time.Second

	userAgent = "feed-dashboard/1.0"
	// only this much of an error body ends up in the reason
	errorBodyLimit = 256
)

type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	fallback bool
	metrics  metrics.Prometheus
}

type Option func(f *Fetcher)

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithClient uses a copy of c for requests; the copy's Timeout is overwritten.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		client := *c
		f.client = &client
	}
}

// WithFallback makes Load try the other sources when the selected one fails.
func WithFallback(enabled bool) Option {
	return func(f *Fetcher) {
		f.fallback = enabled
	}
}

func WithMetrics(m metrics.Prometheus) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{},
		timeout: DefaultTimeout,
		metrics: metrics.Observer,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client.Timeout = f.timeout
	return f
}

func (f *Fetcher) Timeout() time.Duration {
	return f.timeout
}

func (f *Fetcher) Fallback() bool {
	return f.fallback
}

// Fetch makes exactly one request to the source endpoint. Transport, status,
// decoding and normalization failures all come back as *Error.
func (f *Fetcher) Fetch(ctx context.Context, spec sources.Spec) (models.Table, error) {
	start := time.Now()
	table, err := f.fetch(ctx, spec)
	elapsed := time.Since(start)

	if err != nil {
		kind := KindOf(err)
		f.metrics.Fetch(spec.Name, kind.String(), elapsed)
		log.Warn().
			Err(err).
			Str("source", spec.Name).
			Str("kind", kind.String()).
			Dur("duration", elapsed).
			Msg("fetch failed")
		return table, err
	}

	f.metrics.Fetch(spec.Name, "ok", elapsed)
	log.Info().
		Str("source", spec.Name).
		Int("rows", table.Len()).
		Dur("duration", elapsed).
		Msg("fetched feed")
	return table, nil
}

func (f *Fetcher) fetch(ctx context.Context, spec sources.Spec) (models.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spec.EndpointURL, nil)
	if err != nil {
		return models.Table{}, newError(Network, spec.Name, err, "invalid request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return models.Table{}, newError(Network, spec.Name, err, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return models.Table{}, newError(HTTP, spec.Name, nil, "%s %s", resp.Status, strings.TrimSpace(string(body)))
	}

	raw, err := decode(resp.Body)
	if err != nil {
		// the deadline can also hit while the body is still streaming
		if ctx.Err() != nil {
			return models.Table{}, newError(Network, spec.Name, err, "reading body: %v", ctx.Err())
		}
		return models.Table{}, newError(Parse, spec.Name, err, "%v", err)
	}

	table, err := spec.Normalize(raw)
	if err != nil {
		return models.Table{}, newError(Shape, spec.Name, err, "%v", err)
	}
	return table, nil
}

// decode reads exactly one JSON document; anything after it is an error.
func decode(r io.Reader) (interface{}, error) {
	dec := json.NewDecoder(r)
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	var extra interface{}
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, errors.New("unexpected data after top-level value")
		}
		return nil, err
	}
	return raw, nil
}

// Catalog is the part of the source registry the fetcher needs.
type Catalog interface {
	Lookup(name string) (sources.Spec, error)
	Names() []string
}

type Attempt struct {
	Source string
	Err    error
}

// Outcome describes one dashboard refresh: what was asked for, what was
// actually served, and every fetch made along the way.
type Outcome struct {
	Requested string
	Served    string
	Table     models.Table
	Attempts  []Attempt
}

// FellBack is true when the table came from a source other than the requested one.
func (o Outcome) FellBack() bool {
	return o.Served != "" && o.Served != o.Requested
}

// Failed lists the sources that were tried and did not answer.
func (o Outcome) Failed() []string {
	failed := make([]string, 0, len(o.Attempts))
	for _, a := range o.Attempts {
		if a.Err != nil {
			failed = append(failed, a.Source)
		}
	}
	return failed
}

// Load fetches the named source. With fallback enabled, a failure moves on to
// the remaining sources in catalog order until one answers.
// Unknown names fail with sources.ErrUnknownSource before any request is made.
func (f *Fetcher) Load(ctx context.Context, catalog Catalog, name string) (Outcome, error) {
	outcome := Outcome{Requested: name}
	spec, err := catalog.Lookup(name)
	if err != nil {
		return outcome, err
	}

	order := []sources.Spec{spec}
	if f.fallback {
		for _, n := range catalog.Names() {
			if n == name {
				continue
			}
			s, err := catalog.Lookup(n)
			if err != nil {
				return outcome, fmt.Errorf("catalog lists %q but cannot resolve it: %w", n, err)
			}
			order = append(order, s)
		}
	}

	var lastErr error
	for _, s := range order {
		if ctx.Err() != nil && lastErr != nil {
			break
		}
		table, err := f.Fetch(ctx, s)
		outcome.Attempts = append(outcome.Attempts, Attempt{Source: s.Name, Err: err})
		if err != nil {
			lastErr = err
			continue
		}
		outcome.Served = s.Name
		outcome.Table = table
		if outcome.FellBack() {
			f.metrics.Fallback(name, s.Name)
			log.Warn().
				Str("requested", name).
				Str("served", s.Name).
				Strs("failed", outcome.Failed()).
				Msg("served fallback source")
		}
		return outcome, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no source attempted")
	}
	return outcome, lastErr
}
