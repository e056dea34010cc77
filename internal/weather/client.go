package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Reading is the current-conditions data the dashboard cares about.
type Reading struct {
	Temperature float64 // degrees Celsius
	Humidity    float64 // percent
	Condition   string  // free text, e.g. "light rain"
}

// Client calls the OpenWeatherMap current weather API. One attempt per call,
// no retries: a failed fetch degrades the dashboard, it never fails it.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Current fetches current conditions for a city/country pair in metric
// units. Any transport error or non-200 status is returned as an error;
// callers treat it as "no weather this time", not as a page failure.
func (c *Client) Current(ctx context.Context, city, country string) (*Reading, error) {
	values := url.Values{}
	values.Set("q", fmt.Sprintf("%s,%s", city, country))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather api status %d", resp.StatusCode)
	}

	var payload struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	condition := ""
	if len(payload.Weather) > 0 {
		condition = payload.Weather[0].Description
		if condition == "" {
			condition = payload.Weather[0].Main
		}
	}

	return &Reading{
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		Condition:   condition,
	}, nil
}
