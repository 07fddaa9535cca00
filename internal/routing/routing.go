// Package routing supplies the inputs the ride engine treats as external:
// driving distances between stops and coordinates for addresses.
// The engine never calls this package; the host fills Trip.Distances with
// it before calculating.
package routing

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/ridesplit/internal/models"
)

var (
	ErrNoRoute    = errors.New("no route found")
	ErrNoLocation = errors.New("no location found")
)

// Coordinates is a point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceLookup returns the driving distance in kilometers between two places.
type DistanceLookup interface {
	Distance(ctx context.Context, origin, destination string) (float64, error)
}

// Geocoder resolves an address string to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}

// LegDistances looks up the distance of every gap between consecutive stops.
// Each stop is located by its address, or its name when the address is empty.
// The result has len(stops)-1 entries, or none for fewer than 2 stops.
func LegDistances(ctx context.Context, lookup DistanceLookup, stops []models.Stop) ([]float64, error) {
	if len(stops) < 2 {
		return []float64{}, nil
	}

	distances := make([]float64, len(stops)-1)
	for i := range distances {
		from, to := place(stops[i]), place(stops[i+1])
		if from == "" || to == "" {
			return nil, fmt.Errorf("leg %d: stop has neither address nor name", i+1)
		}

		km, err := lookup.Distance(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("leg %d (%s -> %s): %w", i+1, from, to, err)
		}
		distances[i] = km
	}
	return distances, nil
}

func place(s models.Stop) string {
	if s.Address != "" {
		return s.Address
	}
	return s.Name
}
