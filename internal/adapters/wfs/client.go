package wfs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/core/ports"
	"github.com/samirrijal/standortcheck/internal/pkg/metrics"
)

// Client implements ports.FeatureSource against the city's WFS endpoint.
//
// The contract is deliberately one-sided: Fetch never returns an error.
// A site check must not hard-fail because one geospatial dataset is down,
// so every failure mode collapses into a nil collection, and the details
// go to the diagnostic sink and metrics instead.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sink       ports.DiagnosticSink
	logger     *slog.Logger
}

// NewClient creates a WFS client with a fixed request timeout.
// sink may be nil; diagnostics then go to the log only.
func NewClient(baseURL string, timeout time.Duration, sink ports.DiagnosticSink, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sink:   sink,
		logger: logger,
	}
}

// Fetch runs one GetFeature request. A nil return means "no data": either
// the upstream had nothing for this query or it was degraded — callers must
// not distinguish the two.
func (c *Client) Fetch(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection {
	srs := q.SRS
	if srs == "" {
		srs = "EPSG:4326"
	}
	params := url.Values{
		"service":      {"WFS"},
		"request":      {"GetFeature"},
		"version":      {"1.1.0"},
		"typeName":     {q.Dataset},
		"srsName":      {srs},
		"outputFormat": {"application/json"},
	}
	if q.BBox != "" {
		params.Set("bbox", q.BBox+",EPSG:4326")
	}
	if q.CQLFilter != "" {
		params.Set("cql_filter", q.CQLFilter)
	}
	if q.MaxFeatures > 0 {
		params.Set("maxFeatures", strconv.Itoa(q.MaxFeatures))
	}

	fullURL := c.baseURL + "?" + params.Encode()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		c.degrade(ctx, q, domain.DegradedTransport, 0, err, start)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reason := domain.DegradedTransport
		if isTimeout(err) {
			reason = domain.DegradedTimeout
		}
		c.degrade(ctx, q, reason, 0, err, start)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.degrade(ctx, q, domain.DegradedStatus, resp.StatusCode, nil, start)
		return nil
	}

	// WFS endpoints report their own errors as XML documents with a 200
	// status, so the content type is part of the success contract.
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "json") {
		c.degrade(ctx, q, domain.DegradedContentType, resp.StatusCode, errors.New(ct), start)
		return nil
	}

	var fc domain.FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		c.degrade(ctx, q, domain.DegradedDecode, resp.StatusCode, err, start)
		return nil
	}

	metrics.UpstreamRequests.WithLabelValues(q.Dataset, "ok").Inc()
	metrics.UpstreamDuration.WithLabelValues(q.Dataset).Observe(time.Since(start).Seconds())
	return &fc
}

func (c *Client) degrade(ctx context.Context, q domain.FeatureQuery, reason string, status int, err error, start time.Time) {
	elapsed := time.Since(start)

	metrics.UpstreamRequests.WithLabelValues(q.Dataset, "degraded").Inc()
	metrics.UpstreamDuration.WithLabelValues(q.Dataset).Observe(elapsed.Seconds())
	metrics.UpstreamDegraded.WithLabelValues(q.Dataset, reason).Inc()

	ev := domain.UpstreamEvent{
		Dataset: q.Dataset,
		Label:   q.Label,
		Reason:  reason,
		Status:  status,
		Elapsed: elapsed.Milliseconds(),
		At:      time.Now().UTC(),
	}
	if err != nil {
		ev.Error = err.Error()
	}

	c.logger.Warn("upstream degraded",
		"dataset", q.Dataset,
		"label", q.Label,
		"reason", reason,
		"status", status,
		"elapsed", elapsed.String(),
		"error", ev.Error,
	)

	if c.sink != nil {
		if perr := c.sink.PublishUpstreamEvent(ctx, ev); perr != nil {
			c.logger.Warn("diagnostic publish failed", "error", perr)
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
