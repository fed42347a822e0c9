// Package weather reports current conditions from the Open-Meteo API.
// Latitude and longitude are passed through unvalidated; out-of-range values
// surface whatever error the upstream returns.
package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/helioslabs/prodinfo/pkg/toolerr"
	"github.com/helioslabs/prodinfo/pkg/tools/toolbox"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

const requestTimeout = 10 * time.Second

const userAgent = "prodinfo-weather/1.0"

// Observation is the current-conditions snapshot for one coordinate pair.
// Time is always present in the shape and null when the upstream omits it.
type Observation struct {
	Temperature   float64 `json:"temperature"`
	Windspeed     float64 `json:"windspeed"`
	Winddirection float64 `json:"winddirection"`
	Weathercode   int     `json:"weathercode"`
	Time          *string `json:"time"`
}

// Client calls the forecast endpoint.
type Client struct {
	base string
	hc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the forecast endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.base = u
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// New creates a Client against the Open-Meteo API.
func New(opts ...Option) *Client {
	c := &Client{
		base: defaultBaseURL,
		hc:   &http.Client{Timeout: requestTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature   float64 `json:"temperature"`
		Windspeed     float64 `json:"windspeed"`
		Winddirection float64 `json:"winddirection"`
		Weathercode   int     `json:"weathercode"`
		Time          string  `json:"time"`
	} `json:"current_weather"`
}

// Observe fetches the current weather for the given coordinates.
func (c *Client) Observe(ctx context.Context, lat, lon float64) (Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base, nil)
	if err != nil {
		return Observation{}, toolerr.Wrapf(toolerr.KindUpstreamUnavailable, err, "Failed to fetch weather: %v", err)
	}

	q := req.URL.Query()
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current_weather", "true")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return Observation{}, toolerr.Wrapf(toolerr.KindUpstreamUnavailable, err, "Failed to fetch weather: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Observation{}, toolerr.Newf(toolerr.KindUpstreamUnavailable, "Failed to fetch weather: unexpected status %s", resp.Status)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Observation{}, toolerr.Wrapf(toolerr.KindUpstreamUnavailable, err, "Failed to fetch weather: %v", err)
	}

	cw := body.CurrentWeather
	if cw == nil {
		return Observation{}, toolerr.Newf(toolerr.KindUpstreamDataMissing, "No weather data available.")
	}

	obs := Observation{
		Temperature:   cw.Temperature,
		Windspeed:     cw.Windspeed,
		Winddirection: cw.Winddirection,
		Weathercode:   cw.Weathercode,
	}
	if cw.Time != "" {
		obs.Time = &cw.Time
	}

	return obs, nil
}

// Tool returns the get_weather tool backed by this client.
func (c *Client) Tool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "get_weather",
		Description: "Get current weather conditions for a latitude/longitude pair.",
		Params: []toolbox.Param{
			{Name: "latitude", Type: toolbox.TypeNumber, Description: "Latitude in decimal degrees", Required: true},
			{Name: "longitude", Type: toolbox.TypeNumber, Description: "Longitude in decimal degrees", Required: true},
		},
		Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
			obs, err := c.Observe(ctx, args.Float("latitude"), args.Float("longitude"))
			if err != nil {
				return nil, err
			}

			return obs, nil
		},
	}
}
