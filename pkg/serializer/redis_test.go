package serializer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisWriter_Serialize(t *testing.T) {
	mr := miniredis.RunT(t)

	w, err := NewRedisWriter("redis://"+mr.Addr()+"/0?key=dq:report&ttl=1h", FormatJSON)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.Serialize(context.Background(), testConfig{Name: "r", Value: 7}))

	raw, err := mr.Get("dq:report")
	require.NoError(t, err)

	var got testConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, testConfig{Name: "r", Value: 7}, got)
	assert.Equal(t, time.Hour, mr.TTL("dq:report"))
}

func TestRedisWriter_NoTTL(t *testing.T) {
	mr := miniredis.RunT(t)

	w, err := NewRedisWriter("redis://"+mr.Addr()+"?key=k", FormatYAML)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.Serialize(context.Background(), testConfig{Name: "y"}))

	raw, err := mr.Get("k")
	require.NoError(t, err)
	assert.Contains(t, raw, "name: y")
	assert.Zero(t, mr.TTL("k"))
}

func TestRedisWriter_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	w, err := NewRedisWriter("redis://"+addr+"?key=k", FormatJSON)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	err = w.Serialize(context.Background(), testConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write Redis key")
}

func TestNewRedisWriter_Invalid(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"missing key", "redis://localhost:6379/0"},
		{"bad ttl", "redis://localhost:6379/0?key=k&ttl=soon"},
		{"negative ttl", "redis://localhost:6379/0?key=k&ttl=-1s"},
		{"bad db", "redis://localhost:6379/abc?key=k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRedisWriter(tt.uri, FormatJSON)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid Redis URI")
		})
	}
}
