/*-------------------------------------------------------------------------
 *
 * jsonb_test.go
 *    Tests for JSONB helpers
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBMapValueAndScan(t *testing.T) {
	original := JSONBMap{
		"tool":       "send_gmail",
		"parameters": map[string]interface{}{"to": "a@b.com"},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned JSONBMap
	require.NoError(t, scanned.Scan(value))

	assert.Equal(t, "send_gmail", scanned["tool"])
	params, ok := scanned["parameters"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@b.com", params["to"])
}

func TestJSONBMapValueNil(t *testing.T) {
	var m JSONBMap

	value, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), value)
}

func TestJSONBMapScan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		wantErr bool
	}{
		{"bytes", []byte(`{"k": "v"}`), false},
		{"string", `{"k": "v"}`, false},
		{"nil", nil, false},
		{"unsupported type", 42, true},
		{"malformed json", []byte(`{`), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m JSONBMap
			err := m.Scan(tt.src)
			if (err != nil) != tt.wantErr {
				t.Errorf("Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJSONBMapToMap(t *testing.T) {
	var m JSONBMap
	assert.NotNil(t, m.ToMap())
	assert.Empty(t, m.ToMap())

	m = JSONBMap{"k": "v"}
	assert.Equal(t, "v", m.ToMap()["k"])
}
