package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableFloatJSON(t *testing.T) {
	data, err := json.Marshal(NullableFloat{Value: 95.5, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "95.5", string(data))

	// Invalid quantities serialize as null, never as zero.
	data, err = json.Marshal(NullableFloat{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var n NullableFloat
	require.NoError(t, json.Unmarshal([]byte("null"), &n))
	assert.False(t, n.Valid)

	require.NoError(t, json.Unmarshal([]byte("42"), &n))
	assert.True(t, n.Valid)
	assert.Equal(t, 42.0, n.Value)
}
