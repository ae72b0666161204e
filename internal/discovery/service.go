package discovery

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/lachuoi/mstd-random-restaurant/internal/errs"
	"github.com/lachuoi/mstd-random-restaurant/internal/providers/geodist"
	"github.com/lachuoi/mstd-random-restaurant/internal/providers/googleplaces"
	"github.com/lachuoi/mstd-random-restaurant/internal/types"
)

// RandomPlaceProvider fetches a population-weighted random coordinate set.
type RandomPlaceProvider interface {
	RandomWeighted() ([]geodist.RandomPlaceEntry, error)
}

// NearbySearchProvider queries restaurants around a coordinate.
type NearbySearchProvider interface {
	NearbySearch(latitude, longitude float64) (*googleplaces.NearbySearchResponse, error)
}

// Service finds a qualifying restaurant: it samples a random coordinate and
// searches around it, applying the candidate filter policy.
type Service interface {
	// SampleLocation returns one population-weighted random coordinate.
	SampleLocation() (types.Geopoint, error)

	// SearchNearby runs a filtered nearby search around point. On success it
	// writes the selected survivor onto place and returns the survivor
	// count; with zero survivors it returns errs.ErrNoCandidate.
	SearchNearby(point types.Geopoint, place *types.Place) (int, error)
}

type discoveryService struct {
	randomPlaceProvider  RandomPlaceProvider
	nearbySearchProvider NearbySearchProvider
	logger               *slog.Logger
}

// NewService creates a discovery service with real provider clients.
func NewService(logger *slog.Logger, geodistBaseURL, googleAPIKey string) Service {
	return NewServiceWithProviders(logger,
		geodist.NewClient(geodistBaseURL),
		googleplaces.NewClient(googleAPIKey),
	)
}

// NewServiceWithProviders creates a discovery service with custom providers.
// This is useful for testing with mock providers.
func NewServiceWithProviders(
	logger *slog.Logger,
	randomPlaceProvider RandomPlaceProvider,
	nearbySearchProvider NearbySearchProvider,
) Service {
	return &discoveryService{
		randomPlaceProvider:  randomPlaceProvider,
		nearbySearchProvider: nearbySearchProvider,
		logger:               logger.With("component", "discovery-service"),
	}
}

func (s *discoveryService) SampleLocation() (types.Geopoint, error) {
	entries, err := s.randomPlaceProvider.RandomWeighted()
	if err != nil {
		return types.Geopoint{}, fmt.Errorf("failed to sample location: %w", err)
	}
	if len(entries) == 0 {
		return types.Geopoint{}, fmt.Errorf("%w: random place response is empty", errs.ErrSchemaViolation)
	}

	for i, entry := range entries {
		if entry.Latitude == nil || entry.Longitude == nil || entry.Country == nil {
			return types.Geopoint{}, fmt.Errorf("%w: random place entry %d missing required fields",
				errs.ErrSchemaViolation, i)
		}
	}

	first := entries[0]
	point := types.NewGeopoint(*first.Latitude, *first.Longitude, *first.Country)
	point.Population = first.Population

	s.logger.Debug("sampled location",
		"latitude", point.Latitude,
		"longitude", point.Longitude,
		"country", point.Country,
	)

	return point, nil
}

func (s *discoveryService) SearchNearby(point types.Geopoint, place *types.Place) (int, error) {
	resp, err := s.nearbySearchProvider.NearbySearch(point.Latitude, point.Longitude)
	if err != nil {
		return 0, fmt.Errorf("failed to search nearby: %w", err)
	}

	survivors := filterCandidates(resp.Results)
	if len(survivors) == 0 {
		s.logger.Debug("no qualifying candidate",
			"results", len(resp.Results),
			"country", point.Country,
		)
		return 0, errs.ErrNoCandidate
	}

	// Uniform selection: full shuffle, then take the head.
	rand.Shuffle(len(survivors), func(i, j int) {
		survivors[i], survivors[j] = survivors[j], survivors[i]
	})
	selected := survivors[0]

	if selected.Name == "" || selected.PlaceID == "" {
		return 0, fmt.Errorf("%w: selected candidate missing name or place_id", errs.ErrSchemaViolation)
	}

	place.Name = selected.Name
	place.Latitude = selected.Geometry.Location.Lat
	place.Longitude = selected.Geometry.Location.Lng
	place.PlaceID = selected.PlaceID
	place.Rating = selected.Rating

	s.logger.Info("selected restaurant",
		"name", place.Name,
		"rating", place.Rating,
		"survivors", len(survivors),
	)

	return len(survivors), nil
}
