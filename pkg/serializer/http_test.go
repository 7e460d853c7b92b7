package serializer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testData struct {
	Message string `json:"message" yaml:"message"`
	Code    int    `json:"code" yaml:"code"`
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, testData{Message: "ok", Code: 201})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got testData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, testData{Message: "ok", Code: 201}, got)
}

func TestRespondJSON_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, nil)
	assert.Equal(t, "null\n", w.Body.String())
}

func TestRespondJSON_EncodingErrorBuffersHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotZero(t, w.Body.Len())
}

func TestRespond_Negotiation(t *testing.T) {
	tests := []struct {
		name        string
		accept      string
		contentType string
	}{
		{"default", "", "application/json"},
		{"json", "application/json", "application/json"},
		{"yaml", "application/yaml", "application/yaml"},
		{"x-yaml", "text/html, application/x-yaml;q=0.9", "application/yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()

			Respond(w, r, http.StatusOK, testData{Message: "hi", Code: 1})

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))

			var got testData
			require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, "hi", got.Message)
		})
	}
}
