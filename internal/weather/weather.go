// Package weather reads current conditions from the AccuWeather API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

var (
	// ErrNoConditions is returned when the API answers with an empty list.
	ErrNoConditions = errors.New("no current conditions returned")
	// errBadHTTPStatus is returned when the API rejects the request.
	errBadHTTPStatus = errors.New("unexpected http status")
)

// Conditions are the metric current conditions at one location.
type Conditions struct {
	// Temperature in °C.
	Temperature float64
	// Humidity is the relative humidity in percent.
	Humidity float64
	// Pressure in mbar.
	Pressure float64
	// Rain is the precipitation of the past hour in mm.
	Rain float64
}

// Event orders the conditions as temperature, humidity, pressure, rain.
func (c Conditions) Event() event.Event {
	return event.New(c.Temperature, c.Humidity, c.Pressure, c.Rain)
}

// metricValue is AccuWeather's {"Metric": {"Value": ...}} wrapper.
type metricValue struct {
	Metric struct {
		Value float64 `json:"Value"`
	} `json:"Metric"`
}

// currentConditions is the part of one API list entry we read.
type currentConditions struct {
	Temperature      metricValue `json:"Temperature"`
	RelativeHumidity float64     `json:"RelativeHumidity"`
	Pressure         metricValue `json:"Pressure"`
	Precip1hr        metricValue `json:"Precip1hr"`
}

// Client requests current conditions.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a client for baseURL, the current conditions endpoint
// the location key is appended to. A timeout <= 0 means no deadline.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Current returns the current conditions at locationKey.
func (c *Client) Current(ctx context.Context, locationKey string) (Conditions, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return Conditions{}, fmt.Errorf("parse base url: %w", err)
	}

	endpoint = endpoint.JoinPath(locationKey)

	query := endpoint.Query()
	query.Set("apikey", c.apiKey)
	query.Set("details", "true")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return Conditions{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// The url error carries the api key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}

		return Conditions{}, fmt.Errorf("send request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Conditions{}, fmt.Errorf("%w: %s", errBadHTTPStatus, resp.Status)
	}

	var list []currentConditions
	if err = json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return Conditions{}, fmt.Errorf("decode conditions: %w", err)
	}

	if len(list) == 0 {
		return Conditions{}, ErrNoConditions
	}

	current := list[0]

	return Conditions{
		Temperature: current.Temperature.Metric.Value,
		Humidity:    current.RelativeHumidity,
		Pressure:    current.Pressure.Metric.Value,
		Rain:        current.Precip1hr.Metric.Value,
	}, nil
}
