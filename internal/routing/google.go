package routing

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// GoogleMaps implements DistanceLookup and Geocoder with the Google Maps APIs.
type GoogleMaps struct {
	client   *maps.Client
	language string
	region   string
}

// GoogleMapsOption configures a GoogleMaps client.
type GoogleMapsOption func(*googleMapsConfig)

type googleMapsConfig struct {
	language string
	region   string
	baseURL  string
}

// WithLanguage sets the language of returned addresses (e.g. "pt-BR").
func WithLanguage(lang string) GoogleMapsOption {
	return func(c *googleMapsConfig) { c.language = lang }
}

// WithRegion biases geocoding results to a region code (e.g. "BR").
func WithRegion(region string) GoogleMapsOption {
	return func(c *googleMapsConfig) { c.region = region }
}

// WithBaseURL points the client at another endpoint, used by tests.
func WithBaseURL(url string) GoogleMapsOption {
	return func(c *googleMapsConfig) { c.baseURL = url }
}

// NewGoogleMaps creates a GoogleMaps client with the given API key.
func NewGoogleMaps(apiKey string, opts ...GoogleMapsOption) (*GoogleMaps, error) {
	var cfg googleMapsConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	clientOpts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(cfg.baseURL))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleMaps{client: client, language: cfg.language, region: cfg.region}, nil
}

// Distance returns the driving distance in kilometers from origin to destination.
func (g *GoogleMaps) Distance(ctx context.Context, origin, destination string) (float64, error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
		Language:     g.language,
	}

	resp, err := g.client.DistanceMatrix(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, ErrNoRoute
	}
	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, fmt.Errorf("%w: %s", ErrNoRoute, element.Status)
	}

	return float64(element.Distance.Meters) / 1000, nil
}

// Geocode returns the coordinates of the best match for address.
func (g *GoogleMaps) Geocode(ctx context.Context, address string) (Coordinates, error) {
	r := &maps.GeocodingRequest{
		Address:  address,
		Language: g.language,
		Region:   g.region,
	}

	results, err := g.client.Geocode(ctx, r)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return Coordinates{}, ErrNoLocation
	}

	loc := results[0].Geometry.Location
	return Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
