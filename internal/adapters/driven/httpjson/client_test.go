package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Text string `json:"text"`
}

func TestClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/echo", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var in echo
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(echo{Text: strings.ToUpper(in.Text)})
	}))
	defer server.Close()

	c := New("test", server.URL+"/", time.Second, http.Header{"Authorization": {"Bearer key"}})
	var out echo
	err := c.Post(context.Background(), "/v1/echo", echo{Text: "consent"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "CONSENT", out.Text)
}

func TestClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited\n"))
	}))
	defer server.Close()

	err := New("anthropic", server.URL, time.Second, nil).Get(context.Background(), "/v1/models")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Status)
	assert.EqualError(t, err, "anthropic error (status 429): rate limited")
}

func TestClient_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	var out echo
	err := New("ollama", server.URL, time.Second, nil).Post(context.Background(), "/api/generate", echo{}, &out)

	assert.ErrorContains(t, err, "decode response")
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := New("ollama", url, time.Second, nil).Get(context.Background(), "/api/tags")

	assert.ErrorContains(t, err, "send request")
}
