package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

// DefaultThingSpeakURL is the channel update endpoint.
const DefaultThingSpeakURL = "https://api.thingspeak.com/update"

// errBadHTTPStatus is returned when the remote service rejects an update.
var errBadHTTPStatus = errors.New("unexpected http status")

// Transport performs the GET request carrying an update.
type Transport interface {
	Get(ctx context.Context, rawURL string) error
}

// HTTPTransport sends updates over HTTP.
type HTTPTransport struct {
	// Client is the HTTP client; http.DefaultClient when nil.
	Client *http.Client
}

// Get issues the request and treats any non-2xx answer as an error.
func (t *HTTPTransport) Get(ctx context.Context, rawURL string) error {
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // Draining only lets the connection be reused.

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s", errBadHTTPStatus, resp.Status)
	}

	return nil
}

// RecordingTransport keeps every URL instead of sending it. Used for dry runs and tests.
type RecordingTransport struct {
	mu   sync.Mutex
	urls []string
}

// Get records rawURL.
func (t *RecordingTransport) Get(_ context.Context, rawURL string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.urls = append(t.urls, rawURL)

	return nil
}

// URLs returns the recorded URLs in call order.
func (t *RecordingTransport) URLs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.urls...)
}

// ThingSpeak uploads events to a ThingSpeak channel; field n of the event
// becomes field n+1 of the channel. ThingSpeak stamps the time itself.
type ThingSpeak struct {
	// apiKey is the channel write key.
	apiKey string
	// baseURL is the update endpoint.
	baseURL string
	// transport sends the update.
	transport Transport
}

// NewThingSpeak creates a channel sink. An empty baseURL means DefaultThingSpeakURL.
func NewThingSpeak(apiKey, baseURL string, transport Transport) *ThingSpeak {
	if baseURL == "" {
		baseURL = DefaultThingSpeakURL
	}

	return &ThingSpeak{
		apiKey:    apiKey,
		baseURL:   baseURL,
		transport: transport,
	}
}

// URL builds the update URL for e, including the API key.
func (t *ThingSpeak) URL(e event.Event) string {
	var sb strings.Builder

	sb.WriteString(t.baseURL)
	sb.WriteString("?api_key=")
	sb.WriteString(url.QueryEscape(t.apiKey))

	for i, v := range e.Values() {
		sb.WriteString("&field")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(event.FormatValue(v)))
	}

	return sb.String()
}

// RedactURL replaces the api_key of an update URL so it can be logged.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "(unparsable url)"
	}

	query := u.Query()
	if query.Has("api_key") {
		query.Set("api_key", "REDACTED")
		u.RawQuery = query.Encode()
	}

	return u.String()
}

// Log sends the update built by URL.
func (t *ThingSpeak) Log(ctx context.Context, e event.Event) error {
	if err := t.transport.Get(ctx, t.URL(e)); err != nil {
		return fmt.Errorf("thingspeak update: %w", err)
	}

	return nil
}

// NopTransport drops every update.
type NopTransport struct{}

// Get does nothing.
func (NopTransport) Get(context.Context, string) error {
	return nil
}
