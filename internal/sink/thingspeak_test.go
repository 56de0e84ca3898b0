package sink

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

// TestThingSpeak_URL checks field numbering for single, multiple and empty events.
func TestThingSpeak_URL(t *testing.T) {
	t.Parallel()

	channel := NewThingSpeak("myapi", "", new(RecordingTransport))

	cases := []struct {
		name  string
		event event.Event
		want  string
	}{
		{name: "single", event: event.New(1), want: "https://api.thingspeak.com/update?api_key=myapi&field1=1"},
		{
			name:  "multiple",
			event: event.New(167.36, 0),
			want:  "https://api.thingspeak.com/update?api_key=myapi&field1=167.36&field2=0",
		},
		{name: "empty", event: event.New(), want: "https://api.thingspeak.com/update?api_key=myapi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, channel.URL(tc.event))
		})
	}
}

// TestThingSpeak_LogRecordsURL verifies the dry-run transport sees the built URL.
func TestThingSpeak_LogRecordsURL(t *testing.T) {
	t.Parallel()

	transport := new(RecordingTransport)
	channel := NewThingSpeak("myapi", "http://example.test/update", transport)

	require.NoError(t, channel.Log(context.Background(), event.New(0)))
	require.Equal(t, []string{"http://example.test/update?api_key=myapi&field1=0"}, transport.URLs())
}

// TestHTTPTransport sends a real request to a test server and checks status handling.
func TestHTTPTransport(t *testing.T) {
	t.Parallel()

	var (
		mu  sync.Mutex
		got []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.URL.Query().Get("field1"))
		mu.Unlock()

		if r.URL.Query().Get("api_key") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		_, _ = w.Write([]byte("1"))
	}))
	defer srv.Close()

	transport := &HTTPTransport{Client: srv.Client()}

	require.NoError(t, NewThingSpeak("good", srv.URL, transport).Log(context.Background(), event.New(1)))

	err := NewThingSpeak("bad", srv.URL, transport).Log(context.Background(), event.New(0))
	require.ErrorIs(t, err, errBadHTTPStatus)

	mu.Lock()
	defer mu.Unlock()

	require.Equal(t, []string{"1", "0"}, got)
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	ts := NewThingSpeak("SECRET KEY", "https://example.test/update", NopTransport{})

	got := RedactURL(ts.URL(event.New(1, 20.5)))
	require.NotContains(t, got, "SECRET")
	require.Equal(t, "https://example.test/update?api_key=REDACTED&field1=1&field2=20.5", got)

	require.Equal(t, "https://example.test/update", RedactURL("https://example.test/update"))
	require.Equal(t, "(unparsable url)", RedactURL("://"))
}
