package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSlackWebhook(t *testing.T) {
	assert.True(t, IsSlackWebhook("https://hooks.slack.com/services/T000/B000/XXX"))
	assert.False(t, IsSlackWebhook("https://example.com/hooks.slack.com"))
	assert.False(t, IsSlackWebhook("http://hooks.slack.com/services/T000/B000/XXX"))
	assert.False(t, IsSlackWebhook("https://discord.com/api/webhooks/123/abc"))
}

func TestDispatchGenericPayload(t *testing.T) {
	var got map[string]string
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := NewWebhookDispatcher()
	err := d.Dispatch(context.Background(), []string{server.URL}, "Hello", "World", SeverityWarning)

	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]string{
		"title":    "Hello",
		"body":     "World",
		"severity": "warning",
	}, got)
}

func TestDispatchNoEndpoints(t *testing.T) {
	d := NewWebhookDispatcher()
	err := d.Dispatch(context.Background(), nil, "Hello", "World", SeverityInfo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no notification endpoints")
}

func TestDispatchAggregatesFailures(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ok.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	d := NewWebhookDispatcher()
	err := d.Dispatch(context.Background(), []string{ok.URL, broken.URL}, "Hello", "World", SeverityInfo)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery failed for 1 of 2 endpoints")
	assert.Contains(t, err.Error(), "status 500")
}

func TestDispatchUnreachableEndpoint(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	d := NewWebhookDispatcher()
	err := d.Dispatch(context.Background(), []string{dead.URL}, "Hello", "World", SeverityInfo)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery failed for 1 of 1 endpoints")
}

func TestSlackColor(t *testing.T) {
	assert.Equal(t, "good", slackColor(SeveritySuccess))
	assert.Equal(t, "warning", slackColor(SeverityWarning))
	assert.Equal(t, "danger", slackColor(SeverityFailure))
	assert.Equal(t, "#439FE0", slackColor(SeverityInfo))
}
