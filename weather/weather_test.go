package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fridaylabs/friday-go/core"
)

func TestExtractCity(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"what is the weather in Oslo", "Oslo"},
		{"temperature for New York", "New York"},
		{"forecast at Tokyo", "Tokyo"},
		{"weather London", "London"},
		{"how cold is it", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractCity(tt.query), "query %q", tt.query)
	}
}

func TestCurrentFormatsReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Oslo", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{"cod":200,"main":{"temp":4.5},"weather":[{"description":"light snow"}]}`))
	}))
	defer srv.Close()

	c := NewClient("key", nil, WithBaseURL(srv.URL))
	report, err := c.Current(context.Background(), "Oslo")
	require.NoError(t, err)
	assert.Equal(t, "The weather in Oslo is Light snow with a temperature of 4.5°C.", report)
}

func TestCurrentUnknownCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("key", nil, WithBaseURL(srv.URL))
	report, err := c.Current(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I couldn't find weather for Atlantis.", report)
}

func TestCurrentBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("key", nil, WithBaseURL(srv.URL))
	_, err := c.Current(context.Background(), "Oslo")
	assert.ErrorIs(t, err, core.ErrCollaboratorUnavailable)
}

func TestCurrentUnreachableBackend(t *testing.T) {
	c := NewClient("key", nil, WithBaseURL("http://127.0.0.1:1"))
	_, err := c.Current(context.Background(), "Oslo")
	assert.ErrorIs(t, err, core.ErrCollaboratorUnavailable)
}
