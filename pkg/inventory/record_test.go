package inventory

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRecord_KeyOrder(t *testing.T) {
	r := NewRecord().
		Set("b", Str("1")).
		Set("a", Str("2"))

	assert.Equal(t, []string{"b", "a"}, r.Keys())

	// Overwriting must not disturb the original order or the field count.
	r.Set("b", Str("9"))
	assert.Equal(t, []string{"b", "a"}, r.Keys())
	assert.Equal(t, 2, r.Len())

	v, ok := r.Get("b")
	require.True(t, ok)
	assert.Equal(t, "9", v.ExportString())
}

func TestValue_ExportString(t *testing.T) {
	assert.Equal(t, "x", Str("x").ExportString())
	assert.Equal(t, "a\nb", StrList([]string{"a", "b"}).ExportString())
	assert.Equal(t, "", StrList(nil).ExportString())
	assert.Equal(t, "", Absent().ExportString())
}

func TestValue_StrOrAbsent(t *testing.T) {
	assert.False(t, StrOrAbsent("node-1").IsAbsent())
	assert.True(t, StrOrAbsent("").IsAbsent())
}

func TestRecord_MarshalJSON(t *testing.T) {
	r := NewRecord().
		Set("name", Str("web")).
		Set("tags", StrList([]string{"a", "b"})).
		Set("node", Absent())

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"web","tags":["a","b"],"node":null}`, string(data))

	// Field order must survive encoding, not just the content.
	assert.Equal(t, `{"name":"web","tags":["a","b"],"node":null}`, string(data))
}

func TestRecord_MarshalYAML(t *testing.T) {
	r := NewRecord().
		Set("name", Str("web")).
		Set("tags", StrList([]string{"a", "b"}))

	data, err := yaml.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "web", decoded["name"])
	assert.Equal(t, []any{"a", "b"}, decoded["tags"])
}

func TestSnapshot_Metadata(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	snap := NewSnapshot("1.2.3", ts)

	_, err := uuid.Parse(snap.Metadata["snapshot-id"])
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-14T09:26:53Z", snap.Metadata["collected-at"])
	assert.Equal(t, "1.2.3", snap.Metadata["tool-version"])
}

func TestSnapshot_OrderAndLookup(t *testing.T) {
	snap := NewSnapshot("dev", time.Now())
	snap.Add(&RecordSet{Category: CategoryNodes, Records: []*Record{NewRecord().Set("name", Str("n1"))}})
	snap.Add(&RecordSet{Category: CategoryPods})

	assert.Equal(t, 1, snap.TotalRecords())
	require.NotNil(t, snap.Set(CategoryNodes))
	assert.Nil(t, snap.Set(CategoryProcesses))

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	// Category order in the document follows collection order.
	assert.Contains(t, string(data), `"inventory":{"nodes":[{"name":"n1"}],"pods":[]}`)
}
