package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeValue(t *testing.T) {
	raw, err := EncodeValue(map[string]any{"page": 2, "text": "hello"})
	require.NoError(t, err)

	v, err := DecodeValue(raw)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), m["page"])
	assert.Equal(t, "hello", m["text"])
}

func TestEncodeDecodeValueNil(t *testing.T) {
	raw, err := EncodeValue(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	v, err := DecodeValue(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDecodeDocumentEmpty(t *testing.T) {
	data, err := DecodeDocument(nil)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Empty(t, data)

	data, err = DecodeDocument([]byte(`null`))
	require.NoError(t, err)
	require.NotNil(t, data)
}

func TestEncodeDocumentNilMap(t *testing.T) {
	raw, err := EncodeDocument(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}
