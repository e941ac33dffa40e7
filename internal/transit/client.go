package transit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/dododevs/tg-tplfvg/core/logger"
	"github.com/dododevs/tg-tplfvg/core/telegram/netutil"
)

const (
	searchEndpointKeyword = "keyword"
	searchEndpointPolygon = "polygon"

	realtimeEndpointInfo      = "polemonitor/info"
	realtimeEndpointMonitor   = "polemonitor/mrcruns"
	realtimeEndpointTimetable = "polemonitor/getlinetimetable"

	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:124.0) Gecko/20100101 Firefox/124.0"

	clientRetryAttempts = 2
	clientRetryBackoff  = 500 * time.Millisecond
)

// ErrUpstreamUnavailable marks transport failures and non-200 answers from the
// upstream services, as opposed to decode errors on a successful response.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// Config tunes the upstream client.
type Config struct {
	// SearchBaseURL serves keyword and polygon stop searches.
	SearchBaseURL string
	// RealtimeBaseURL serves pole monitor, stop info and timetable queries.
	RealtimeBaseURL string
	// LocationRadiusKM is the half-side of the square built around a point.
	LocationRadiusKM float64
	// RequestTimeout bounds every single upstream call.
	RequestTimeout time.Duration
}

// Client talks to the two TPL FVG upstream services: the stop-search API and
// the realtime pole monitor API. Every call is bounded by the configured
// timeout and returns a wrapped error on network or decode failures; callers
// are expected to degrade to a "not found" style answer instead of failing.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

// NewClient builds a Client around the given upstream configuration.
func NewClient(cfg Config) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &retryTransport{
				base:       transport,
				maxRetries: clientRetryAttempts,
				backoff:    clientRetryBackoff,
			},
		},
		log: logger.API,
	}
}

// SearchByKeyword asks the stop-search API for stops matching a free-text
// query. An empty slice means "no stop matched".
func (c *Client) SearchByKeyword(ctx context.Context, query string) ([]StopCandidate, error) {
	form := url.Values{"query": {query}}
	body, err := c.searchRequest(ctx, searchEndpointKeyword,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, err
	}

	var out struct {
		Results []StopCandidate `json:"results"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("search keyword: decode: %w", err)
	}
	c.logCall("api.search_keyword", slog.String("query", query), slog.Int("results", len(out.Results)))
	return out.Results, nil
}

// SearchByLocation asks the stop-search API for stops inside a square of
// half-side LocationRadiusKM centered on the given point. The geometry is
// sent as a GeoJSON Feature in standard (lon, lat) coordinate order, which
// the upstream expects even though its own stop records use (lat, lon).
func (c *Client) SearchByLocation(ctx context.Context, lat, lon float64) ([]StopCandidate, error) {
	ring := boundingSquare(lat, lon, c.cfg.LocationRadiusKM)
	feature := geojson.NewFeature(orb.Polygon{ring})
	payload, err := feature.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("search location: encode polygon: %w", err)
	}

	body, err := c.searchRequest(ctx, searchEndpointPolygon,
		strings.NewReader(string(payload)), "application/json")
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("search location: decode: %w", err)
	}
	stops := make([]StopCandidate, 0, len(fc.Features))
	for _, f := range fc.Features {
		stops = append(stops, StopCandidate{
			Code: f.Properties.MustString("code", ""),
			Name: f.Properties.MustString("name", ""),
		})
	}
	c.logCall("api.search_location", slog.Int("results", len(stops)))
	return stops, nil
}

// StopInfo resolves a raw stop code against the realtime API. A nil result
// with a nil error means the code does not name a stop.
func (c *Client) StopInfo(ctx context.Context, code string) (*StopInfo, error) {
	body, err := c.realtimeRequest(ctx, realtimeEndpointInfo, url.Values{
		"StopCode": {code},
	})
	if err != nil {
		return nil, err
	}
	if isJSONNull(body) {
		return nil, nil
	}
	var info StopInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("stop info: decode: %w", err)
	}
	c.logCall("api.stop_info", slog.String("stop_code", code))
	return &info, nil
}

// Monitor fetches the pole monitor for a stop: expected and scheduled passes,
// with realtime tracking where available. An empty slice means the stop
// currently has no passes.
func (c *Client) Monitor(ctx context.Context, code string) ([]MonitorEntry, error) {
	body, err := c.realtimeRequest(ctx, realtimeEndpointMonitor, url.Values{
		"StopCode": {code},
		"IsUrban":  {"true"},
	})
	if err != nil {
		return nil, err
	}
	if isJSONNull(body) {
		return nil, nil
	}
	var entries []MonitorEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("monitor: decode: %w", err)
	}
	c.logCall("api.monitor", slog.String("stop_code", code), slog.Int("passes", len(entries)))
	return entries, nil
}

// LineRoute fetches the ordered stop sequence for one trip of a line.
func (c *Client) LineRoute(ctx context.Context, line, direction, tripID string) ([]RouteStop, error) {
	body, err := c.realtimeRequest(ctx, realtimeEndpointTimetable, url.Values{
		"Line":      {line},
		"Direction": {direction},
		"Race":      {tripID},
	})
	if err != nil {
		return nil, err
	}
	if isJSONNull(body) {
		return nil, nil
	}
	var stops []RouteStop
	if err := json.Unmarshal(body, &stops); err != nil {
		return nil, fmt.Errorf("line route: decode: %w", err)
	}
	c.logCall("api.line_route",
		slog.String("line", line),
		slog.String("direction", direction),
		slog.String("trip_id", tripID),
		slog.Int("stops", len(stops)),
	)
	return stops, nil
}

func (c *Client) searchRequest(ctx context.Context, endpoint string, body io.Reader, contentType string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodPost, c.cfg.SearchBaseURL, endpoint, nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	// The search API refuses requests that do not look like the official
	// web frontend.
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return c.do(req, endpoint)
}

func (c *Client) realtimeRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.cfg.RealtimeBaseURL, endpoint, params, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, endpoint)
}

func (c *Client) newRequest(ctx context.Context, method, base, endpoint string, params url.Values, body io.Reader) (*http.Request, error) {
	target := strings.TrimSuffix(base, "/") + "/" + endpoint
	if !strings.HasSuffix(target, "/") {
		target += "/"
	}
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", "https://realtime.tplfvg.it/")
	return req, nil
}

func (c *Client) do(req *http.Request, endpoint string) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logFailure(endpoint, time.Since(start), err)
		return nil, fmt.Errorf("%s: %w: %v", endpoint, ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		c.logFailure(endpoint, time.Since(start), err)
		return nil, fmt.Errorf("%s: read body: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%s: %w: status %d", endpoint, ErrUpstreamUnavailable, resp.StatusCode)
		c.logFailure(endpoint, time.Since(start), err)
		return nil, err
	}
	return body, nil
}

func (c *Client) logCall(event string, attrs ...slog.Attr) {
	if c.log == nil || !logger.ShouldSampleDebug() {
		return
	}
	c.log.LogAttrs(context.Background(), slog.LevelDebug, "upstream call",
		append([]slog.Attr{slog.String("event", event)}, attrs...)...)
}

func (c *Client) logFailure(endpoint string, took time.Duration, err error) {
	if c.log == nil {
		return
	}
	c.log.LogAttrs(context.Background(), slog.LevelWarn, "upstream call failed",
		slog.String("event", "api.fail"),
		slog.String("operation", endpoint),
		slog.Duration("duration", logger.RoundMS(took)),
		slog.Bool("retryable", netutil.ShouldRetry(err)),
		slog.String("err", err.Error()),
	)
}

func isJSONNull(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return trimmed == "" || trimmed == "null"
}

type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	attempts := t.maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		currReq := req
		if attempt > 1 {
			currReq = req.Clone(req.Context())
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, err
				}
				currReq.Body = body
			} else if req.Body != nil {
				return nil, lastErr
			}
		}

		resp, err := base.RoundTrip(currReq)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !netutil.ShouldRetry(err) || attempt == attempts {
			break
		}

		delay := t.backoff * time.Duration(attempt)
		if delay <= 0 {
			continue
		}
		timer := time.NewTimer(delay)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}
