package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/convoai/convo-be/config"
	"github.com/convoai/convo-be/types"
)

// WeatherProvider returns the current observation for the configured city.
type WeatherProvider interface {
	Current(ctx context.Context) (*types.WeatherObservation, error)
}

// OpenWeatherService fetches current conditions from the OpenWeather API.
// The location is fixed by configuration; callers pass nothing.
type OpenWeatherService struct {
	baseURL string
	apiKey  string
	city    string
	units   string
	client  *http.Client
}

func NewOpenWeatherService(cfg config.WeatherConfig, timeout time.Duration) *OpenWeatherService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenWeatherService{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		city:    cfg.City,
		units:   cfg.Units,
		client:  &http.Client{Timeout: timeout},
	}
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

func (s *OpenWeatherService) Current(ctx context.Context) (*types.WeatherObservation, error) {
	params := url.Values{}
	params.Set("q", s.city)
	params.Set("appid", s.apiKey)
	params.Set("units", s.units)
	params.Set("lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &types.UpstreamDataError{Source: "openweather", Err: err}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &types.UpstreamDataError{Source: "openweather", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &types.UpstreamDataError{Source: "openweather", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &types.UpstreamDataError{Source: "openweather", Err: err}
	}
	return parseObservation(&payload, s.city)
}

func parseObservation(payload *openWeatherResponse, defaultCity string) (*types.WeatherObservation, error) {
	if len(payload.Weather) == 0 {
		return nil, &types.UpstreamDataError{Source: "openweather", Err: fmt.Errorf("missing weather description")}
	}
	if payload.Main.Temp == nil || payload.Main.FeelsLike == nil || payload.Main.Humidity == nil {
		return nil, &types.UpstreamDataError{Source: "openweather", Err: fmt.Errorf("missing main fields")}
	}
	if payload.Wind.Speed == nil {
		return nil, &types.UpstreamDataError{Source: "openweather", Err: fmt.Errorf("missing wind speed")}
	}
	city := payload.Name
	if city == "" {
		city = defaultCity
	}
	return &types.WeatherObservation{
		City:        city,
		Description: capitalize(payload.Weather[0].Description),
		Temperature: *payload.Main.Temp,
		FeelsLike:   *payload.Main.FeelsLike,
		Humidity:    *payload.Main.Humidity,
		WindSpeed:   *payload.Wind.Speed,
	}, nil
}

// FormatObservation renders an observation as the block fed to the
// summarizing generator.
func FormatObservation(obs *types.WeatherObservation) string {
	return fmt.Sprintf(
		"Weather in %s:\n"+
			"Description: %s\n"+
			"Temperature: %.1f°C\n"+
			"Feels Like: %.1f°C\n"+
			"Humidity: %.0f%%\n"+
			"Wind Speed: %.1f m/s\n",
		obs.City, obs.Description, obs.Temperature, obs.FeelsLike, obs.Humidity, obs.WindSpeed,
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
