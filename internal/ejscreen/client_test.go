package ejscreen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"data": {
		"demographics": {
			"TOTALPOP": "1204",
			"PCT_MINORITY": "97.5",
			"PER_CAP_INC": "21783",
			"P_EMP_STAT_UNEMPLOYED": "12.3"
		},
		"main": {
			"RAW_E_PM25": "8.1",
			"RAW_E_TRAFFIC": "290",
			"RAW_E_DIESEL": "0.42"
		}
	},
	"extras": {
		"RAW_HI_LIFEEXP": "72.4"
	}
}`

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
		UserAgent: "test-agent",
	})
}

func TestFetch_QueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "110010074011", q.Get("namestr"))
		assert.Equal(t, "", q.Get("geometry"))
		assert.Equal(t, "", q.Get("distance"))
		assert.Equal(t, "9035", q.Get("unit"))
		assert.Equal(t, "blockgroup", q.Get("areatype"))
		assert.Equal(t, "110010074011", q.Get("areaid"))
		assert.Equal(t, "json", q.Get("f"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Fetch(context.Background(), "110010074011", AreaBlockGroup, "")
	require.NoError(t, err)
}

func TestFetch_CityUsesDisplayName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Washington", q.Get("namestr"))
		assert.Equal(t, "city", q.Get("areatype"))
		assert.Equal(t, "1150000", q.Get("areaid"))
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	rec, err := c.Fetch(context.Background(), "1150000", AreaCity, "Washington")
	require.NoError(t, err)
	assert.Equal(t, "1150000", rec.AreaID)
}

func TestFetch_ExtractsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	rec, err := c.Fetch(context.Background(), "110010074011", AreaBlockGroup, "")
	require.NoError(t, err)

	assert.Equal(t, "1204", rec.TotalPopulation)
	assert.Equal(t, "97.5", rec.PercentMinority)
	assert.Equal(t, "21783", rec.PerCapitaIncome)
	assert.Equal(t, "12.3", rec.UnemploymentRate)
	assert.Equal(t, "8.1", rec.PM25AirQuality)
	assert.Equal(t, "290", rec.TrafficExposure)
	assert.Equal(t, "0.42", rec.DieselParticulateMatter)
	assert.Equal(t, "72.4", rec.LifeExpectancy)
}

func TestFetch_MissingSubObjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	rec, err := c.Fetch(context.Background(), "110010074011", AreaBlockGroup, "")
	require.NoError(t, err)

	// A row is still produced; every indicator is the missing sentinel.
	assert.Equal(t, "110010074011", rec.AreaID)
	assert.Equal(t, Missing, rec.TotalPopulation)
	assert.Equal(t, Missing, rec.PM25AirQuality)
	assert.Equal(t, Missing, rec.LifeExpectancy)
}

func TestFetch_PartialResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"demographics": {"TOTALPOP": "512"}}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	rec, err := c.Fetch(context.Background(), "110010074011", AreaBlockGroup, "")
	require.NoError(t, err)

	assert.Equal(t, "512", rec.TotalPopulation)
	assert.Equal(t, Missing, rec.PercentMinority)
	assert.Equal(t, Missing, rec.LifeExpectancy)
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Fetch(context.Background(), "110010074011", AreaBlockGroup, "")
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "110010074011", fe.AreaID)
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := newTestClient(srv.URL)
	_, err := c.Fetch(context.Background(), "110010074011", AreaBlockGroup, "")
	require.Error(t, err)

	var fe *FetchError
	assert.True(t, errors.As(err, &fe))
}

func TestFetch_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Fetch(context.Background(), "110010074011", AreaBlockGroup, "")

	var fe *FetchError
	assert.True(t, errors.As(err, &fe))
}
