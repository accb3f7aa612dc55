package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/imagedrop/internal/logging"
	"github.com/dmitrijs2005/imagedrop/internal/netx"
)

// HTTPClient is the Transport talking to the image server over HTTP.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	detector EnvelopeDetector
	log      logging.Logger

	wg sync.WaitGroup
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithDetector replaces the envelope detector (DefaultDetector otherwise).
func WithDetector(d EnvelopeDetector) Option {
	return func(h *HTTPClient) { h.detector = d }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		detector: DefaultDetector(),
		log:      logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// URL returns the absolute URL of endpoint.
func (c *HTTPClient) URL(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// Send posts payload to endpoint in the background and reports the outcome
// to done exactly once.
func (c *HTTPClient) Send(ctx context.Context, endpoint string, payload []byte, headers []Header, done Callback) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		data, err := c.Do(ctx, endpoint, payload, headers)
		c.complete(ctx, endpoint, done, err, data)
	}()
}

func (c *HTTPClient) complete(ctx context.Context, endpoint string, done Callback, err error, data Data) {
	if done == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Error(ctx, "request callback panicked", "endpoint", endpoint, "panic", fmt.Sprint(r))
		}
	}()
	done(err, data)
}

// Do performs the request synchronously. It is the blocking core of Send.
func (c *HTTPClient) Do(ctx context.Context, endpoint string, payload []byte, headers []Header) (Data, error) {
	h := make(http.Header, len(headers))
	for _, hdr := range headers {
		netx.SetRaw(h, hdr.Name, hdr.Value)
	}

	c.log.Debug(ctx, "sending request", "endpoint", endpoint, "bytes", len(payload))

	resp, err := netx.Post(ctx, c.http, c.URL(endpoint), payload, h)
	if err != nil {
		c.log.Warn(ctx, "transport failure", "endpoint", endpoint, "error", err)
		return Data{}, ErrTransaction
	}
	if !resp.OK() {
		c.log.Warn(ctx, "server returned error status", "endpoint", endpoint, "status", resp.StatusCode)
	}

	if !c.detector.IsEnvelope(resp.ContentType, resp.Body) {
		return Data{Raw: resp.Body}, nil
	}

	remote, data, err := parseEnvelope(resp.Body)
	if err != nil {
		// Matched by media type only: hand the body over untouched.
		if errors.Is(err, ErrNoEnvelope) && !envelopePattern.Match(resp.Body) {
			c.log.Debug(ctx, "envelope media type on plain body", "endpoint", endpoint)
			return Data{Raw: resp.Body}, nil
		}
		c.log.Warn(ctx, "malformed envelope", "endpoint", endpoint, "error", err)
		return Data{}, err
	}
	return data, remote
}

// Wait blocks until every Send issued so far has invoked its callback.
func (c *HTTPClient) Wait() {
	c.wg.Wait()
}
