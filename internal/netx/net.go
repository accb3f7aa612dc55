// Package netx holds low-level HTTP helpers shared by client transports.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Response is the part of a completed HTTP exchange callers care about.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// SetRaw stores a header value under name exactly as given, bypassing
// MIME canonicalisation, so "PassCode" goes on the wire as "PassCode".
func SetRaw(h http.Header, name, value string) {
	h[name] = []string{value}
}

// Post sends body to url with the given headers and reads the whole response.
// An error is returned only when no response was received or the body could
// not be read; HTTP error statuses are reported through Response.StatusCode.
func Post(ctx context.Context, c *http.Client, url string, body []byte, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}

	if c == nil {
		c = http.DefaultClient
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        b,
	}, nil
}
