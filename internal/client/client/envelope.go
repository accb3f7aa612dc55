package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"regexp"
)

// EnvelopeMediaType marks a response body as an {"err","data"} envelope.
const EnvelopeMediaType = "application/vnd.imagedrop.envelope+json"

// EnvelopeDetector decides whether a response body is an envelope.
type EnvelopeDetector interface {
	IsEnvelope(contentType string, body []byte) bool
}

var envelopePattern = regexp.MustCompile(`^\{"err":.+"data":.+\}$`)

// SyntaxDetector recognises envelopes by shape alone: the body starts with
// {"err": and contains "data": before the final }. It does not validate JSON,
// so a plain object that happens to start that way is also matched.
type SyntaxDetector struct{}

func (SyntaxDetector) IsEnvelope(_ string, body []byte) bool {
	return envelopePattern.Match(body)
}

// MediaTypeDetector recognises envelopes by response content type.
// An empty MediaType means EnvelopeMediaType.
type MediaTypeDetector struct {
	MediaType string
}

func (d MediaTypeDetector) IsEnvelope(contentType string, _ []byte) bool {
	want := d.MediaType
	if want == "" {
		want = EnvelopeMediaType
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == want
}

// AnyDetector matches when any of its detectors matches.
type AnyDetector []EnvelopeDetector

func (a AnyDetector) IsEnvelope(contentType string, body []byte) bool {
	for _, d := range a {
		if d.IsEnvelope(contentType, body) {
			return true
		}
	}
	return false
}

// DefaultDetector accepts the explicit media type and falls back to the
// syntactic check for servers that do not send it.
func DefaultDetector() EnvelopeDetector {
	return AnyDetector{MediaTypeDetector{}, SyntaxDetector{}}
}

// parseEnvelope splits an envelope body into the server error, if any, and
// data. A body that is not an object carrying both fields wraps ErrNoEnvelope.
func parseEnvelope(body []byte) (error, Data, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, Data{}, fmt.Errorf("malformed envelope: %w: %v", ErrNoEnvelope, err)
	}
	errRaw, hasErr := fields["err"]
	data, hasData := fields["data"]
	if !hasErr || !hasData {
		return nil, Data{}, fmt.Errorf("malformed envelope: %w: missing err or data", ErrNoEnvelope)
	}
	return remoteError(errRaw), Data{Raw: data, Enveloped: true}, nil
}

func remoteError(raw json.RawMessage) error {
	v := bytes.TrimSpace(raw)
	switch string(v) {
	case "", "null", "false", `""`, "0":
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return &RemoteError{Message: s}
	}
	return &RemoteError{Message: string(v)}
}
