package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageMeta_UnmarshalKeepsExtraFields(t *testing.T) {
	var m ImageMeta
	err := json.Unmarshal([]byte(`{"name":"a.png","url":"/img/a.png","time":1700000000123,"size":42,"owner":"x"}`), &m)
	require.NoError(t, err)

	assert.Equal(t, "a.png", m.Name)
	assert.Equal(t, "/img/a.png", m.URL)
	assert.Equal(t, int64(1700000000123), m.Time)
	require.Len(t, m.Extra, 2)
	assert.JSONEq(t, `42`, string(m.Extra["size"]))
	assert.JSONEq(t, `"x"`, string(m.Extra["owner"]))
}

func TestImageMeta_UnmarshalMinimal(t *testing.T) {
	var m ImageMeta
	require.NoError(t, json.Unmarshal([]byte(`{"name":"a.png","time":1}`), &m))

	want := ImageMeta{Name: "a.png", Time: 1}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("unexpected meta (-want +got):\n%s", diff)
	}
}

func TestImageMeta_UnmarshalRejectsNonObject(t *testing.T) {
	var m ImageMeta
	require.Error(t, json.Unmarshal([]byte(`"a.png"`), &m))
	require.Error(t, json.Unmarshal([]byte(`null`), &m))
	require.Error(t, json.Unmarshal([]byte(`{"name":5}`), &m))
}

func TestImageMeta_MarshalMergesExtra(t *testing.T) {
	m := ImageMeta{Name: "a.png", URL: "/a", Time: 3, Extra: map[string]json.RawMessage{"size": json.RawMessage(`7`)}}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a.png","url":"/a","time":3,"size":7}`, string(b))
}

func TestSortByTime(t *testing.T) {
	in := []ImageMeta{
		{Name: "c", Time: 30},
		{Name: "a", Time: 10},
		{Name: "b1", Time: 20},
		{Name: "b2", Time: 20},
	}

	got := SortByTime(in)

	names := make([]string, 0, len(got))
	for _, m := range got {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, names)
	assert.Equal(t, "c", in[0].Name, "input must not be reordered")
}
