package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testConfig struct {
	Name  string `json:"Name" yaml:"name"`
	Value int    `json:"Value" yaml:"value"`
}

func TestWriter_Serialize(t *testing.T) {
	data := []testConfig{{Name: "test1", Value: 123}, {Name: "test2", Value: 456}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatJSON, &buf).Serialize(context.Background(), data))

		var got []testConfig
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, data, got)
		assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatYAML, &buf).Serialize(context.Background(), data))

		var got []testConfig
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, data, got)
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), data))

		out := buf.String()
		assert.Contains(t, out, "FIELD")
		assert.Contains(t, out, "VALUE")
		assert.Contains(t, out, "[0].Name")
		assert.Contains(t, out, "[1].Value")
		assert.Contains(t, out, "456")
	})
}

func TestWriter_TableNested(t *testing.T) {
	type inner struct {
		Field1 string
	}
	data := struct {
		Inner inner
		Empty any
	}{Inner: inner{Field1: "x"}}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), data))

	assert.Contains(t, buf.String(), "Inner.Field1")
	assert.Contains(t, buf.String(), "Empty")
}

func TestWriter_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), map[string]any{}))
	assert.Contains(t, buf.String(), "<empty>")
}

func TestWriter_UnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter("invalid", &buf)
	require.NotNil(t, w)

	require.NoError(t, w.Serialize(context.Background(), testConfig{Name: "test", Value: 123}))

	var got testConfig
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "test", got.Name)
}

func TestWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewWriter(FormatJSON, &buf).Serialize(ctx, testConfig{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestWriter_MarshalError(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(FormatJSON, &buf).Serialize(context.Background(), make(chan int))
	require.Error(t, err)
}

func TestWriter_Close(t *testing.T) {
	w := NewStdoutWriter(FormatJSON)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestFormat(t *testing.T) {
	assert.False(t, FormatJSON.IsUnknown())
	assert.False(t, FormatYAML.IsUnknown())
	assert.False(t, FormatTable.IsUnknown())
	assert.True(t, Format("xml").IsUnknown())
	assert.Equal(t, []string{"json", "yaml", "table"}, SupportedFormats())

	assert.Equal(t, FormatYAML, FormatFromPath("out/report.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("report.yaml"))
	assert.Equal(t, FormatTable, FormatFromPath("report.txt"))
	assert.Equal(t, FormatJSON, FormatFromPath("report"))
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		for _, p := range []string{"", "  ", StdoutURI} {
			s, err := NewFileWriterOrStdout(FormatJSON, p)
			require.NoError(t, err)
			w, ok := s.(*Writer)
			require.True(t, ok)
			assert.Equal(t, os.Stdout, w.output)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		s, err := NewFileWriterOrStdout(FormatJSON, path)
		require.NoError(t, err)

		require.NoError(t, s.Serialize(context.Background(), testConfig{Name: "f", Value: 1}))
		c, ok := s.(Closer)
		require.True(t, ok)
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"Name": "f"`)

		err = s.Serialize(context.Background(), testConfig{})
		require.Error(t, err)
	})

	t.Run("bad file", func(t *testing.T) {
		_, err := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "report.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create output file")
	})

	t.Run("configmap", func(t *testing.T) {
		s, err := NewFileWriterOrStdout(FormatYAML, "cm://dq/report")
		require.NoError(t, err)
		w, ok := s.(*ConfigMapWriter)
		require.True(t, ok)
		assert.Equal(t, "dq", w.namespace)
		assert.Equal(t, "report", w.name)
	})

	t.Run("bad configmap", func(t *testing.T) {
		for _, uri := range []string{"cm://", "cm://ns", "cm://ns/", "cm://a/b/c"} {
			_, err := NewFileWriterOrStdout(FormatJSON, uri)
			require.Error(t, err, uri)
			assert.Contains(t, err.Error(), "invalid ConfigMap URI")
		}
	})

	t.Run("redis", func(t *testing.T) {
		s, err := NewFileWriterOrStdout(FormatJSON, "redis://localhost:6379/0?key=dq:last")
		require.NoError(t, err)
		w, ok := s.(*RedisWriter)
		require.True(t, ok)
		assert.Equal(t, "dq:last", w.key)
		require.NoError(t, w.Close())
	})
}
