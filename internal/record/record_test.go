package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseObjectKeepsKeyOrder(t *testing.T) {
	rec, err := ParseObject([]byte(`{"z": 1, "a": "x", "m": {"b": true, "a": null}, "l": [1, "two", {"k": "v"}]}`))
	require.NoError(t, err)
	require.Equal(t, []string{"z", "a", "m", "l"}, rec.Keys())

	z, ok := rec.Get("z")
	require.True(t, ok)
	require.Equal(t, json.Number("1"), z)

	m, _ := rec.Get("m")
	nested, ok := m.(*Record)
	require.True(t, ok)
	require.Equal(t, []string{"b", "a"}, nested.Keys())

	l, _ := rec.Get("l")
	list, ok := l.([]any)
	require.True(t, ok)
	require.Len(t, list, 3)
	require.Equal(t, "two", list[1])
	_, ok = list[2].(*Record)
	require.True(t, ok)
}

func TestParseObjectRejectsNonObject(t *testing.T) {
	_, err := ParseObject([]byte(`[1, 2]`))
	require.Error(t, err)

	_, err = ParseObject([]byte(`{"a": `))
	require.Error(t, err)
}

func TestParseRejectsTrailingData(t *testing.T) {
	for _, input := range []string{
		`{"a": 1} trailing garbage`,
		`{"a": 1}{"b": 2}`,
		`{"a": 1} }`,
		`[1] [2]`,
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse([]byte(input))
			require.Error(t, err)
		})
	}

	rec, err := ParseObject([]byte("{\"a\": 1}\n\t "))
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, rec.Keys())
}

func TestSetKeepsPositionAndDelete(t *testing.T) {
	rec := New()
	rec.Set("a", "1")
	rec.Set("b", "2")
	rec.Set("a", "3")
	require.Equal(t, []string{"a", "b"}, rec.Keys())
	v, _ := rec.Get("a")
	require.Equal(t, "3", v)

	rec.Delete("a")
	require.Equal(t, []string{"b"}, rec.Keys())
	_, ok := rec.Get("a")
	require.False(t, ok)
	require.Equal(t, 1, rec.Len())
}

func TestMarshalJSONOrdered(t *testing.T) {
	src := `{"z":1,"a":"x","m":{"b":true,"a":null},"l":[1.5,"two"]}`
	rec, err := ParseObject([]byte(src))
	require.NoError(t, err)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	require.Equal(t, src, string(out))
}

func TestUnmarshalJSONIntoRecord(t *testing.T) {
	var payload struct {
		Records []*Record `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"records":[{"b":"1","a":"2"}]}`), &payload))
	require.Len(t, payload.Records, 1)
	require.Equal(t, []string{"b", "a"}, payload.Records[0].Keys())
}
