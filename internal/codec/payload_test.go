package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "Name": "Demo",
  "XmiVersion": "2.0",
  "ApplicationName": "Authoring",
  "ApplicationVersion": 7,
  "Entities": [{"ID": "m1", "EntityType": "XmiStructuralMaterial"}],
  "Relationships": [],
  "Unknown": true
}`

func TestReadPayload_ParsesMetadataAndSections(t *testing.T) {
	p, err := ReadPayload(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "Demo", p.Name)
	assert.Equal(t, "2.0", p.XmiVersion)
	assert.Equal(t, "Authoring", p.ApplicationName)
	assert.Equal(t, "7", p.ApplicationVersion)
	require.Len(t, p.Entities, 1)
	assert.Empty(t, p.Relationships)
	assert.Nil(t, p.Histories)
}

func TestReadPayload_ToleratesByteOrderMark(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, sampleDoc...)
	p, err := ReadPayload(bytes.NewReader(withBOM))
	require.NoError(t, err)
	assert.Equal(t, "Demo", p.Name)
}

func TestReadPayload_KeepsNumbersExact(t *testing.T) {
	p, err := ReadPayload(strings.NewReader(`{"Entities":[{"Grade": 355}]}`))
	require.NoError(t, err)
	rec := p.Entities[0].(map[string]any)
	assert.Equal(t, json.Number("355"), rec["Grade"])
}

func TestReadPayload_RejectsBadDocuments(t *testing.T) {
	for _, in := range []string{`not json`, `{"Entities": {}}`, `{"Name": {"x": 1}}`, `null`} {
		_, err := ReadPayload(strings.NewReader(in))
		require.Errorf(t, err, "input %q", in)
		assert.True(t, errors.Is(err, ErrInvalidPayload))
	}
}

func TestDecodePayload_AcceptsCanonicalKeys(t *testing.T) {
	p, err := DecodePayload(map[string]any{
		"name":          "lower",
		"relationships": []any{map[string]any{"ID": "r1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "lower", p.Name)
	assert.Len(t, p.Relationships, 1)
}

func TestWritePayload_NoBOMAndAllSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePayload(&buf, Payload{Name: "Demo"}))

	out := buf.Bytes()
	assert.False(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	for _, k := range []string{"Name", "XmiVersion", "ApplicationName", "ApplicationVersion", "Entities", "Relationships", "Histories", "Errors"} {
		assert.Contains(t, doc, k)
	}
	assert.Equal(t, []any{}, doc["Entities"])
}

func TestWriteThenRead(t *testing.T) {
	in := Payload{
		Name:       "Demo",
		XmiVersion: "2.0",
		Entities:   []any{map[string]any{"ID": "p1", "X": 1.5}},
	}
	var buf bytes.Buffer
	require.NoError(t, WritePayload(&buf, in))

	out, err := ReadPayload(&buf)
	require.NoError(t, err)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.XmiVersion, out.XmiVersion)
	require.Len(t, out.Entities, 1)
	assert.Equal(t, json.Number("1.5"), out.Entities[0].(map[string]any)["X"])
	assert.Empty(t, out.Errors)
}
