package transit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(searchURL, realtimeURL string) *Client {
	return NewClient(Config{
		SearchBaseURL:    searchURL,
		RealtimeBaseURL:  realtimeURL,
		LocationRadiusKM: 0.4,
		RequestTimeout:   2 * time.Second,
	})
}

func TestSearchByKeyword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/keyword/", r.URL.Path)
		require.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "oberdan", r.PostForm.Get("query"))
		_, _ = io.WriteString(w, `{"results":[{"id":"02001","text":"P.ZZA OBERDAN"},{"id":"02002","text":"OBERDAN 2"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	stops, err := c.SearchByKeyword(context.Background(), "oberdan")
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, StopCandidate{Code: "02001", Name: "P.ZZA OBERDAN"}, stops[0])
}

func TestSearchByLocationSendsClosedLonLatRing(t *testing.T) {
	var captured struct {
		Geometry struct {
			Type        string        `json:"type"`
			Coordinates [][][]float64 `json:"coordinates"`
		} `json:"geometry"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/polygon/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = io.WriteString(w, `{"type":"FeatureCollection","features":[
			{"type":"Feature","geometry":{"type":"Point","coordinates":[13.77,45.65]},
			 "properties":{"code":"02001","name":"P.ZZA OBERDAN"}}]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	stops, err := c.SearchByLocation(context.Background(), 45.6495, 13.7768)
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "02001", stops[0].Code)

	require.Equal(t, "Polygon", captured.Geometry.Type)
	require.Len(t, captured.Geometry.Coordinates, 1)
	ring := captured.Geometry.Coordinates[0]
	require.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[4])
	for _, p := range ring {
		// x (longitude) first, then y (latitude)
		assert.InDelta(t, 13.7768, p[0], 0.01)
		assert.InDelta(t, 45.6495, p[1], 0.01)
	}
}

func TestStopInfoNullMeansNoStop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/polemonitor/info/", r.URL.Path)
		require.Equal(t, "oberdan", r.URL.Query().Get("StopCode"))
		_, _ = io.WriteString(w, "null")
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	info, err := c.StopInfo(context.Background(), "oberdan")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestStopInfoDecodesRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"Address":"P.ZZA OBERDAN","StopCode":"02001",
			"Latitude":45.65,"Longitude":13.77,"IsUrban":true,
			"IsExtraUrban":false,"IsMaritime":false,"IsStation":false}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	info, err := c.StopInfo(context.Background(), "02001")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "P.ZZA OBERDAN", info.Address)
	assert.True(t, info.IsUrban)
}

func TestMonitorRequestsUrbanRuns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/polemonitor/mrcruns/", r.URL.Path)
		require.Equal(t, "02001", r.URL.Query().Get("StopCode"))
		require.Equal(t, "true", r.URL.Query().Get("IsUrban"))
		_, _ = io.WriteString(w, `[{"Line":"G01","LineCode":"1","Destination":"VIA ROSSETTI",
			"Race":"9","ArrivalTime":"5 MIN","Vehicle":"310"}]`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	entries, err := c.Monitor(context.Background(), "02001")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Realtime())
	assert.Equal(t, "5 MIN", entries[0].ArrivalTime.Display())
}

func TestLineRouteParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/polemonitor/getlinetimetable/", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "G01", q.Get("Line"))
		require.Equal(t, "A", q.Get("Direction"))
		require.Equal(t, "9", q.Get("Race"))
		_, _ = io.WriteString(w, `[{"SequenceNumber":1,"StopCode":"02001",
			"StopDescription":"P.ZZA OBERDAN","Time":905}]`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	stops, err := c.LineRoute(context.Background(), "G01", "A", "9")
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "09:05", stops[0].Clock())
}

func TestUpstreamErrorSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	_, err := c.Monitor(context.Background(), "02001")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
