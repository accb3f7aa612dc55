// Package models defines client-side data models used by the imagedrop client.
package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ImageMeta describes an image stored on the server. Only Name and Time carry
// meaning for the client (identity and sort key); every other field the
// server sends is preserved in Extra and written back on marshal.
type ImageMeta struct {
	Name      string
	URL       string
	Thumbnail string
	// Time is the server timestamp, typically milliseconds since the epoch.
	Time  int64
	Extra map[string]json.RawMessage
}

var knownImageKeys = []string{"name", "url", "thumbnail", "time"}

func (m *ImageMeta) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("image meta: expected object, got %s", string(b))
	}

	var out ImageMeta
	for _, key := range []struct {
		name string
		dst  *string
	}{{"name", &out.Name}, {"url", &out.URL}, {"thumbnail", &out.Thumbnail}} {
		if v, ok := raw[key.name]; ok && string(v) != "null" {
			if err := json.Unmarshal(v, key.dst); err != nil {
				return fmt.Errorf("image meta %q: %w", key.name, err)
			}
		}
	}
	if v, ok := raw["time"]; ok && string(v) != "null" {
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			return fmt.Errorf("image meta \"time\": %w", err)
		}
		out.Time = int64(f)
	}

	for _, k := range knownImageKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		out.Extra = raw
	}
	*m = out
	return nil
}

func (m ImageMeta) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(m.Extra)+4)
	for k, v := range m.Extra {
		obj[k] = v
	}
	obj["name"] = m.Name
	obj["url"] = m.URL
	obj["time"] = m.Time
	if m.Thumbnail != "" {
		obj["thumbnail"] = m.Thumbnail
	}
	return json.Marshal(obj)
}

// SortByTime returns a copy of list ordered ascending by Time. Entries with
// equal timestamps keep their relative order.
func SortByTime(list []ImageMeta) []ImageMeta {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b ImageMeta) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return sorted
}
