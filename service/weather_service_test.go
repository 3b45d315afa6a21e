package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convoai/convo-be/config"
	"github.com/convoai/convo-be/types"
)

const sampleWeatherBody = `{
	"weather": [{"description": "scattered clouds"}],
	"main": {"temp": 18.4, "feels_like": 17.9, "humidity": 63},
	"wind": {"speed": 4.1},
	"name": "New York"
}`

func newWeatherService(serverURL string) *OpenWeatherService {
	return NewOpenWeatherService(config.WeatherConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		City:    "New York",
		Units:   "metric",
	}, 5*time.Second)
}

func TestCurrentParsesObservation(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleWeatherBody))
	}))
	defer server.Close()

	obs, err := newWeatherService(server.URL).Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "New York", obs.City)
	assert.Equal(t, "Scattered clouds", obs.Description, "description should be capitalized")
	assert.Equal(t, 18.4, obs.Temperature)
	assert.Equal(t, 17.9, obs.FeelsLike)
	assert.Equal(t, float64(63), obs.Humidity)
	assert.Equal(t, 4.1, obs.WindSpeed)

	assert.Contains(t, gotQuery, "q=New+York")
	assert.Contains(t, gotQuery, "appid=test-key")
	assert.Contains(t, gotQuery, "units=metric")
}

func TestCurrentErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newWeatherService(server.URL).Current(context.Background())
	require.Error(t, err)
	assert.True(t, types.IsUpstreamDataError(err), "error %v should be an UpstreamDataError", err)
}

func TestCurrentMalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"empty weather array", `{"weather": [], "main": {"temp": 1, "feels_like": 1, "humidity": 1}, "wind": {"speed": 1}}`},
		{"missing main fields", `{"weather": [{"description": "rain"}], "main": {}, "wind": {"speed": 1}}`},
		{"missing wind", `{"weather": [{"description": "rain"}], "main": {"temp": 1, "feels_like": 1, "humidity": 1}, "wind": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newWeatherService(server.URL).Current(context.Background())
			require.Error(t, err)
			assert.True(t, types.IsUpstreamDataError(err), "error %v should be an UpstreamDataError", err)
		})
	}
}

func TestCurrentFallsBackToConfiguredCityName(t *testing.T) {
	body := strings.Replace(sampleWeatherBody, `"name": "New York"`, `"name": ""`, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	obs, err := newWeatherService(server.URL).Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "New York", obs.City, "empty payload name should fall back to the configured city")
}

func TestFormatObservation(t *testing.T) {
	out := FormatObservation(&types.WeatherObservation{
		City:        "New York",
		Description: "Light rain",
		Temperature: 12.3,
		FeelsLike:   11.0,
		Humidity:    80,
		WindSpeed:   5.5,
	})
	for _, want := range []string{"New York", "Light rain", "12.3", "11.0", "80%", "5.5 m/s"} {
		assert.Contains(t, out, want)
	}
}
