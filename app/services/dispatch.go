package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

// ErrDispatch marks a delivery failure so handlers can map it to a
// gateway error instead of an internal one.
var ErrDispatch = errors.New("dispatch failed")

// Severity tags a notification for the receiving channel.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityFailure Severity = "failure"
)

// Dispatcher delivers a composed message to a set of endpoint URLs.
// The scheduler treats delivery as opaque and never retries; a failed
// dispatch simply leaves last-sent unset so the next eligible window
// tries again.
type Dispatcher interface {
	Dispatch(ctx context.Context, endpoints []string, title, body string, severity Severity) error
}

// WebhookDispatcher posts to each endpoint. Slack incoming-webhook URLs
// go through the Slack webhook API with a severity-colored attachment;
// every other URL receives a generic JSON POST of
// {"title": ..., "body": ..., "severity": ...}.
type WebhookDispatcher struct {
	Client *http.Client
}

func NewWebhookDispatcher() *WebhookDispatcher {
	return &WebhookDispatcher{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *WebhookDispatcher) Dispatch(ctx context.Context, endpoints []string, title, body string, severity Severity) error {
	if len(endpoints) == 0 {
		return fmt.Errorf("no notification endpoints configured")
	}

	var failures []string
	for _, endpoint := range endpoints {
		var err error
		if IsSlackWebhook(endpoint) {
			err = d.sendSlack(endpoint, title, body, severity)
		} else {
			err = d.sendGeneric(ctx, endpoint, title, body, severity)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", endpoint, err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("delivery failed for %d of %d endpoints: %s",
			len(failures), len(endpoints), strings.Join(failures, "; "))
	}
	return nil
}

// IsSlackWebhook reports whether the endpoint is a Slack incoming
// webhook URL.
func IsSlackWebhook(endpoint string) bool {
	return strings.HasPrefix(endpoint, "https://hooks.slack.com/")
}

func (d *WebhookDispatcher) sendSlack(endpoint, title, body string, severity Severity) error {
	msg := &slack.WebhookMessage{
		Attachments: []slack.Attachment{{
			Title: title,
			Text:  body,
			Color: slackColor(severity),
		}},
	}
	return slack.PostWebhook(endpoint, msg)
}

func slackColor(severity Severity) string {
	switch severity {
	case SeveritySuccess:
		return "good"
	case SeverityWarning:
		return "warning"
	case SeverityFailure:
		return "danger"
	default:
		return "#439FE0"
	}
}

func (d *WebhookDispatcher) sendGeneric(ctx context.Context, endpoint, title, body string, severity Severity) error {
	payload, err := json.Marshal(map[string]string{
		"title":    title,
		"body":     body,
		"severity": string(severity),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
