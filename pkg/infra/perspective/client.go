package perspective

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/NeuralTrust/perspective/pkg/infra/httpx"
	"github.com/NeuralTrust/perspective/pkg/infra/logger"
	infraprom "github.com/NeuralTrust/perspective/pkg/infra/prometheus"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	DefaultEndpoint = "https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"

	apiKeyParam = "key"

	OutcomeOK            = "ok"
	OutcomeEmptyInput    = "empty_input"
	OutcomeEmptyTypes    = "empty_types"
	OutcomeRequestFailed = "request_failed"
	OutcomeParseFailed   = "parsing_failed"
)

type Analyzer interface {
	Analyze(ctx context.Context, text string, types []AttributeType) (AnalysisResult, error)
}

// Client talks to the comment analyzer. It is immutable after construction
// and safe for concurrent use when its transport is.
type Client struct {
	httpClient httpx.Client
	endpoint   string
	apiKey     string
	doNotStore bool
	timeout    time.Duration
	logger     *logrus.Logger
	breaker    httpx.CircuitBreaker
	metrics    *infraprom.Metrics
}

// NewClient performs no I/O. doNotStore is forwarded on every request and
// asks the service not to retain the submitted text.
func NewClient(apiKey string, doNotStore bool, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		endpoint:   DefaultEndpoint,
		apiKey:     apiKey,
		doNotStore: doNotStore,
		logger:     logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze scores text for each requested attribute. Duplicate types are
// collapsed. Errors match exactly one of ErrEmptyInput, ErrEmptyTypes,
// ErrRequestFailed or ErrParsingFailed.
func (c *Client) Analyze(ctx context.Context, text string, types []AttributeType) (result AnalysisResult, err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveRequest(Outcome(err), time.Since(start))
	}()

	if text == "" {
		return nil, ErrEmptyInput
	}
	if len(types) == 0 {
		return nil, ErrEmptyTypes
	}

	request, err := newAnalyzeRequest(text, types, c.doNotStore)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	body, err := request.marshal()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log := c.logger.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"attributes": lo.Keys(request.RequestedAttributes),
	})

	payload, err := c.send(ctx, body)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			log.WithField("status_code", apiErr.StatusCode).Error("perspective api returned non-2xx status")
		} else if !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("failed to call perspective api")
		}
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	result, err = parseAnalyzeResponse(payload)
	if err != nil {
		log.WithError(err).Error("invalid perspective response")
		return nil, err
	}

	for t, score := range result {
		c.metrics.ObserveScore(t.String(), score.Summary.Value)
	}
	log.WithField("latency_ms", time.Since(start).Milliseconds()).Debug("analysis completed")

	return result, nil
}

func (c *Client) send(ctx context.Context, body []byte) ([]byte, error) {
	if c.breaker == nil {
		return c.roundTrip(ctx, body)
	}
	var payload []byte
	err := c.breaker.Execute(func() error {
		var rtErr error
		payload, rtErr = c.roundTrip(ctx, body)
		return rtErr
	})
	return payload, err
}

func (c *Client) roundTrip(ctx context.Context, body []byte) ([]byte, error) {
	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set(apiKeyParam, c.apiKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", httpx.AcceptEncoding)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("%w: %v", ctxErr, err)
		}
		return nil, fmt.Errorf("failed to call perspective api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	payload, _, err := httpx.DecodeChain(resp.Header, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, payload)
	}
	return payload, nil
}

// Outcome is the metrics label for an Analyze error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrEmptyInput):
		return OutcomeEmptyInput
	case errors.Is(err, ErrEmptyTypes):
		return OutcomeEmptyTypes
	case errors.Is(err, ErrParsingFailed):
		return OutcomeParseFailed
	default:
		return OutcomeRequestFailed
	}
}

// IsClientError reports errors that say nothing about service health: 4xx
// answers other than 429. Circuit breakers should not count them.
func IsClientError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && apiErr.StatusCode != http.StatusTooManyRequests
}
