package history

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTimestamp(t *testing.T) {
	cases := map[string]string{
		"2024-03-01T10:00":         "2024-03-01T10:00:00",
		"2024-03-01T10:00:30":      "2024-03-01T10:00:30",
		"2024-03-01T10:00:30Z":     "2024-03-01T10:00:30",
		"2024-03-01T10:00:30.123Z": "2024-03-01T10:00:30",
		"2024-03-01T10:00:30.999":  "2024-03-01T10:00:30",
		" 2024-03-01T10:00 ":       "2024-03-01T10:00:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTimestamp(in), "input %q", in)
	}
}

func TestClientFetchNormalizesRequest(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"data":[{"device_id":"DL8CAF5031","latitude":28.6,"longitude":77.2,"timestamp":"2024-03-01T10:00:00Z"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	points, err := client.Fetch(context.Background(), Query{
		Vehicle: "DL8CAF5031",
		Start:   "2024-03-01T10:00",
		End:     "2024-03-01T18:00:00.500Z",
	})
	require.NoError(t, err)
	require.Len(t, points, 1)

	assert.Equal(t, "DL8CAF5031", got.Get("vehicle"))
	assert.Equal(t, "2024-03-01T10:00:00", got.Get("start"))
	assert.Equal(t, "2024-03-01T18:00:00", got.Get("end"))
}

func TestClientFetchSanitizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"device_id":"A","latitude":28.6,"longitude":77.2,"timestamp":"2024-03-01T10:00:00Z"},
			{"device_id":"A","longitude":77.3,"timestamp":"2024-03-01T10:01:00Z"},
			{"device_id":"A","latitude":"29.0","longitude":"77.4","timestamp":"2024-03-01T10:02:00Z"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	points, err := client.Fetch(context.Background(), Query{Vehicle: "A", Start: "2024-03-01T10:00", End: "2024-03-01T11:00"})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.InDelta(t, 28.6, points[0].Lat, 1e-9)
	assert.InDelta(t, 29.0, points[1].Lat, 1e-9)
}

func TestClientFetchEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	_, err := client.Fetch(context.Background(), Query{Vehicle: "A", Start: "2024-03-01T10:00", End: "2024-03-01T11:00"})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestClientFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	_, err := client.Fetch(context.Background(), Query{Vehicle: "A", Start: "2024-03-01T10:00", End: "2024-03-01T11:00"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmpty)
	assert.NotErrorIs(t, err, ErrStale)
}

func TestClientDiscardsStaleResponse(t *testing.T) {
	firstArrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("vehicle") == "slow" {
			close(firstArrived)
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}
		w.Write([]byte(`{"data":[{"device_id":"fast","latitude":1,"longitude":1,"timestamp":"2024-03-01T10:00:00Z"}]}`))
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, srv.Client())

	firstErr := make(chan error, 1)
	go func() {
		_, err := client.Fetch(context.Background(), Query{Vehicle: "slow", Start: "2024-03-01T10:00", End: "2024-03-01T11:00"})
		firstErr <- err
	}()

	<-firstArrived

	points, err := client.Fetch(context.Background(), Query{Vehicle: "fast", Start: "2024-03-01T10:00", End: "2024-03-01T11:00"})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "fast", points[0].Device)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, ErrStale)
	case <-time.After(5 * time.Second):
		t.Fatal("superseded fetch never returned")
	}
}
