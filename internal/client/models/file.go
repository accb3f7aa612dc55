package models

import (
	"encoding/base64"
	"math"
	"strings"
)

// LoadedFile is a file read by the dropper. Content is a base64 data URL.
// It is consumed once by the application and never persisted.
type LoadedFile struct {
	Name    string
	Content string
}

// Payload returns the base64 part of the data URL (everything after the first
// comma). Content without a data URL header is returned unchanged.
func (f LoadedFile) Payload() string {
	_, payload, ok := SplitDataURL(f.Content)
	if !ok {
		return f.Content
	}
	return payload
}

// SizeKb is the approximate decoded size of the file in kB.
func (f LoadedFile) SizeKb() float64 {
	return EncodedSizeKb(len(f.Payload()))
}

// SizeBytes is the approximate decoded size of the file in bytes.
func (f LoadedFile) SizeBytes() float64 {
	return 0.75 * float64(len(f.Payload()))
}

// EncodedSizeKb estimates the decoded size of a base64 payload of length
// encodedLen, in kB rounded to two decimals.
func EncodedSizeKb(encodedLen int) float64 {
	size := 0.75 * float64(encodedLen)
	return math.Floor(100*size/1024+0.5) / 100
}

// EncodeDataURL builds "data:<mime>;base64,<payload>".
func EncodeDataURL(mime string, data []byte) string {
	var b strings.Builder
	b.Grow(len(mime) + base64.StdEncoding.EncodedLen(len(data)) + 13)
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// SplitDataURL splits a base64 data URL into its media type and payload.
func SplitDataURL(s string) (mime, payload string, ok bool) {
	rest, found := strings.CutPrefix(s, "data:")
	if !found {
		return "", "", false
	}
	header, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mime, found = strings.CutSuffix(header, ";base64")
	if !found {
		return "", "", false
	}
	return mime, payload, true
}

// DecodeDataURL returns the media type and decoded bytes of a base64 data URL.
func DecodeDataURL(s string) (string, []byte, bool) {
	mime, payload, ok := SplitDataURL(s)
	if !ok {
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return mime, data, true
}
