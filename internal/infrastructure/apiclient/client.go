// Package apiclient performs JSON requests against the RDV360 backends.
//
// Every request carries Content-Type: application/json, an X-Request-ID and,
// when a token is persisted, Authorization: Bearer <token>. No retries are
// performed.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/ports"
)

const (
	DefaultTimeout = 30 * time.Second
	maxErrorBody   = 1 << 20
)

// Config holds the settings of one backend client.
type Config struct {
	// Name labels metrics and logs, e.g. "auth" or "rdv".
	Name    string
	BaseURL string
	// Timeout bounds each request end to end. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client is a ports.Requester bound to one backend base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	name       string
	timeout    time.Duration
	tokens     ports.KeyValueStore
	log        zerolog.Logger
}

// New creates a Client. tokens is read on every request for the persisted
// access token; nil disables bearer injection.
func New(cfg Config, tokens ports.KeyValueStore, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		name:       cfg.Name,
		timeout:    timeout,
		tokens:     tokens,
		log:        log,
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// Do sends method path with body encoded as JSON and decodes the response into out.
//
// Failures are *domain.TimeoutError when the timeout elapses,
// *domain.NetworkError when the server cannot be reached and
// *domain.HTTPError for any non-2xx status.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.accessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = c.transportError(reqCtx, method, url, err)
		c.observe(method, path, outcome(err), start, requestID)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(method, path, strconv.Itoa(resp.StatusCode), start, requestID)
		return httpError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = c.transportError(reqCtx, method, url, err)
		c.observe(method, path, outcome(err), start, requestID)
		return err
	}
	c.observe(method, path, strconv.Itoa(resp.StatusCode), start, requestID)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) accessToken(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	token, ok, err := c.tokens.Get(ctx, ports.KeyAccessToken)
	if err != nil {
		c.log.Warn().Err(err).Str("client", c.name).Msg("read persisted token failed, sending anonymous request")
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

func (c *Client) transportError(reqCtx context.Context, method, url string, err error) error {
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return &domain.TimeoutError{Method: method, URL: url, Timeout: c.timeout}
	}
	return &domain.NetworkError{Method: method, URL: url, Err: err}
}

func (c *Client) observe(method, path, status string, start time.Time, requestID string) {
	elapsed := time.Since(start)
	RequestsTotal.WithLabelValues(c.name, method, status).Inc()
	RequestDuration.WithLabelValues(c.name, method).Observe(elapsed.Seconds())
	c.log.Debug().
		Str("client", c.name).
		Str("method", method).
		Str("path", path).
		Str("status", status).
		Str("request_id", requestID).
		Dur("duration", elapsed).
		Msg("api request")
}

// httpError builds the error of a non-2xx response. The message comes from
// the body's "message" field, else "HTTP <status>: <statusText>".
func httpError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var eb errorBody
	if json.Unmarshal(data, &eb) == nil && eb.Message != "" {
		return &domain.HTTPError{Status: resp.StatusCode, Message: eb.Message}
	}
	return &domain.HTTPError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp)),
	}
}

// statusText returns the reason phrase sent by the server.
func statusText(resp *http.Response) string {
	if text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func outcome(err error) string {
	var te *domain.TimeoutError
	if errors.As(err, &te) {
		return "timeout"
	}
	return "network_error"
}
