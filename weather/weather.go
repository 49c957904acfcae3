// Package weather is the OpenWeather collaborator: current conditions
// for a city, reported as a single sentence.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fridaylabs/friday-go/core"
)

const defaultBaseURL = "https://api.openweathermap.org"

var (
	cityWithPreposition = regexp.MustCompile(`(?i)(weather|forecast|temperature).*(in|for|at)\s+([a-zA-Z\s]+)`)
	cityTrailing        = regexp.MustCompile(`(?i)(weather|forecast)\s+([a-zA-Z\s]+)`)
)

// ExtractCity pulls a city name out of a weather query, or "" when the
// utterance names none.
func ExtractCity(query string) string {
	if m := cityWithPreposition.FindStringSubmatch(query); m != nil {
		return strings.TrimSpace(m[3])
	}
	if m := cityTrailing.FindStringSubmatch(query); m != nil {
		return strings.TrimSpace(m[2])
	}
	return ""
}

// Client calls the OpenWeather current-conditions endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used in tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient creates an OpenWeather client with a 5 second timeout.
func NewClient(apiKey string, log *logrus.Logger, opts ...Option) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		log:     log.WithField("component", "weather"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns a one-sentence report of current conditions in the
// city, metric units. Backend failures map to
// core.ErrCollaboratorUnavailable.
func (c *Client) Current(ctx context.Context, city string) (string, error) {
	endpoint := fmt.Sprintf("%s/data/2.5/weather?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", core.ErrCollaboratorUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithField("city", city).WithError(err).Warn("weather request failed")
		return "", fmt.Errorf("%w: %v", core.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Sprintf("Sorry, I couldn't find weather for %s.", city), nil
	}
	if resp.StatusCode != http.StatusOK {
		c.log.WithFields(logrus.Fields{"city": city, "status": resp.StatusCode}).Warn("weather backend error")
		return "", fmt.Errorf("%w: status %d", core.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var payload struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", core.ErrCollaboratorUnavailable, err)
	}
	if len(payload.Weather) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find weather for %s.", city), nil
	}

	desc := capitalize(payload.Weather[0].Description)
	return fmt.Sprintf("The weather in %s is %s with a temperature of %.1f°C.", city, desc, payload.Main.Temp), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
