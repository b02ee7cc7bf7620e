package catering

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/drill"
)

// API endpoint paths. Cost and quantity levels map one path per level;
// the quantity products level reuses the cost products payload, which
// carries both cost and quantity fields. Budget and meal hierarchies load
// one flat payload and aggregate client-side.
const (
	pathRoot            = "/"
	pathHealth          = "/health"
	pathSuppliers       = "/api/suppliers/"
	pathCostMonthly     = "/api/category-analysis/cost/monthly"
	pathCostBySite      = "/api/category-analysis/cost/by-site"
	pathCostByCategory  = "/api/category-analysis/cost/by-category"
	pathCostProducts    = "/api/category-analysis/cost/products"
	pathQtyMonthly      = "/api/category-analysis/quantity/monthly"
	pathQtyBySite       = "/api/category-analysis/quantity/by-site"
	pathQtyByCategory   = "/api/category-analysis/quantity/by-category"
	pathQtyCategoryMo   = "/api/category-analysis/quantity/category-monthly"
	pathQtyProductMo    = "/api/category-analysis/quantity/product-monthly"
	pathBudgetVsActual  = "/api/supplier-budgets/vs-actual"
	pathHistoricalMeals = "/api/historical/meals"
)

// Client defaults applied when options are zero.
const (
	defaultTimeout  = 15 * time.Second
	defaultRetryMax = 3

	// maxResponseBytes caps response reads; the largest payload (a full
	// year of vs-actual rows) is well under a megabyte.
	maxResponseBytes = 8 << 20

	// errSnippetLen bounds how much of an error response body is quoted.
	errSnippetLen = 200
)

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL is the API root, e.g. "http://localhost:8000". Required.
	BaseURL string

	// Token is the bearer token sent with every request, "" to disable.
	Token string

	// Timeout bounds each HTTP attempt. Defaults to 15s.
	Timeout time.Duration

	// RetryMax is the retry budget per request. Defaults to 3.
	RetryMax int

	// Logger receives request/response debug logs and retry warnings.
	Logger zerolog.Logger
}

// Client is the catering API client. It retries transient failures with
// backoff and correlates its logs with the navigation engine's fetch IDs.
type Client struct {
	baseURL string
	token   string
	http    *retryablehttp.Client
	logger  zerolog.Logger
}

// NewClient validates opts and builds a client.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("api base URL is required")
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", opts.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base URL %q must use http or https", opts.BaseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RetryMax <= 0 {
		opts.RetryMax = defaultRetryMax
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.HTTPClient.Timeout = opts.Timeout
	rc.Logger = retryLogger{logger: opts.Logger}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		http:    rc,
		logger:  opts.Logger,
	}, nil
}

// get performs a GET request and returns the validated JSON body.
func (c *Client) get(ctx context.Context, path string, query url.Values) (string, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response for %s: %w", path, err)
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(body)).
		Str("request_id", drill.RequestIDFromContext(ctx)).
		Msg("api request completed")

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, bodySnippet(body))
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("GET %s: response is not valid JSON", path)
	}
	return string(body), nil
}

// bodySnippet returns a single-line prefix of an error response body.
func bodySnippet(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > errSnippetLen {
		s = s[:errSnippetLen] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}

// retryLogger adapts zerolog to retryablehttp's LeveledLogger so retry
// attempts surface in the structured log.
type retryLogger struct {
	logger zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.event(l.logger.Error(), keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.event(l.logger.Warn(), keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.event(l.logger.Debug(), keysAndValues).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.event(l.logger.Debug(), keysAndValues).Msg(msg)
}

func (l retryLogger) event(e *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, keysAndValues[i+1])
	}
	return e
}
