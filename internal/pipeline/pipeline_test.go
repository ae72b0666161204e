package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lachuoi/mstd-random-restaurant/internal/discovery"
	"github.com/lachuoi/mstd-random-restaurant/internal/enrich"
	"github.com/lachuoi/mstd-random-restaurant/internal/fetch"
	"github.com/lachuoi/mstd-random-restaurant/internal/providers/caption"
	"github.com/lachuoi/mstd-random-restaurant/internal/providers/geodist"
	"github.com/lachuoi/mstd-random-restaurant/internal/providers/googleplaces"
	"github.com/lachuoi/mstd-random-restaurant/internal/providers/mastodon"
	"github.com/lachuoi/mstd-random-restaurant/internal/publish"
)

// End-to-end runs over real services with stubbed providers.

type stubRandomPlaceProvider struct{}

func (stubRandomPlaceProvider) RandomWeighted() ([]geodist.RandomPlaceEntry, error) {
	lat, lng, country := 48.2, 16.3, "AT"
	return []geodist.RandomPlaceEntry{{Latitude: &lat, Longitude: &lng, Country: &country}}, nil
}

// stubNearbySearchProvider returns one page of candidates per call, empty
// pages first when configured, so the retry loop gets exercised.
type stubNearbySearchProvider struct {
	emptyPages int
	calls      int
	results    []googleplaces.Candidate
}

func (s *stubNearbySearchProvider) NearbySearch(latitude, longitude float64) (*googleplaces.NearbySearchResponse, error) {
	s.calls++
	if s.calls <= s.emptyPages {
		return &googleplaces.NearbySearchResponse{}, nil
	}
	return &googleplaces.NearbySearchResponse{Results: s.results}, nil
}

type stubDetailProvider struct{ address string }

func (s stubDetailProvider) Details(placeID string) (*googleplaces.DetailsResponse, error) {
	resp := &googleplaces.DetailsResponse{}
	resp.Result.FormattedAddress = &s.address
	return resp, nil
}

type stubPhotoProvider struct{}

func (stubPhotoProvider) FetchPhoto(reference string) (*fetch.Result, error) {
	panic("no photo references expected in this test")
}

type stubCaptionProvider struct{}

func (stubCaptionProvider) Describe(image []byte, filename, contentType string) (*caption.DescriptionResponse, error) {
	panic("no captions expected in this test")
}

type stubMediaUploader struct{}

func (stubMediaUploader) UploadMedia(image []byte, filename, contentType, description string) (*mastodon.MediaResponse, error) {
	panic("no uploads expected in this test")
}

type stubStatusPoster struct {
	received *mastodon.StatusRequest
}

func (s *stubStatusPoster) PostStatus(status mastodon.StatusRequest) error {
	s.received = &status
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func qualifying(name, placeID string) googleplaces.Candidate {
	c := googleplaces.Candidate{
		Name:             name,
		PlaceID:          placeID,
		Rating:           4.4,
		UserRatingsTotal: 512,
		Types:            []string{"restaurant", "food"},
	}
	c.Geometry.Location.Lat = 48.21
	c.Geometry.Location.Lng = 16.37
	return c
}

func disqualified(name string) googleplaces.Candidate {
	c := qualifying(name, "p-hotel")
	c.Types = []string{"hotel", "restaurant"}
	return c
}

func newTestOrchestrator(search *stubNearbySearchProvider, poster *stubStatusPoster) *Orchestrator {
	logger := testLogger()
	o := New(logger,
		discovery.NewServiceWithProviders(logger, stubRandomPlaceProvider{}, search),
		enrich.NewServiceWithProviders(logger, stubDetailProvider{address: "1 Main St"}, stubPhotoProvider{}, stubCaptionProvider{}),
		publish.NewServiceWithProviders(logger, stubMediaUploader{}, poster),
	)
	o.sleep = func(time.Duration) {}
	return o
}

func TestRun_SelectsOnlyQualifyingCandidate(t *testing.T) {
	search := &stubNearbySearchProvider{
		results: []googleplaces.Candidate{disqualified("Grand Hotel Buffet"), qualifying("Corner Bistro", "place-123")},
	}
	poster := &stubStatusPoster{}

	place, err := newTestOrchestrator(search, poster).Run(context.Background(), "test-run")
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if place.Name != "Corner Bistro" {
		t.Errorf("Name = %q, want %q (the hotel must never be selected)", place.Name, "Corner Bistro")
	}
	if place.PlaceID != "place-123" || place.Rating != 4.4 {
		t.Errorf("place fields = %+v", place)
	}
	if place.Address != "1 Main St" {
		t.Errorf("Address = %q", place.Address)
	}
	if len(place.Photos) != 0 {
		t.Errorf("photo count = %d, want 0", len(place.Photos))
	}
	if poster.received == nil {
		t.Fatal("no status posted")
	}
	if len(poster.received.MediaIDs) != 0 {
		t.Errorf("MediaIDs = %v, want none", poster.received.MediaIDs)
	}
}

func TestRun_RetriesUntilCandidateFound(t *testing.T) {
	search := &stubNearbySearchProvider{
		emptyPages: 3,
		results:    []googleplaces.Candidate{qualifying("Corner Bistro", "place-123")},
	}
	poster := &stubStatusPoster{}
	o := newTestOrchestrator(search, poster)

	var pauses []time.Duration
	o.sleep = func(d time.Duration) { pauses = append(pauses, d) }

	place, err := o.Run(context.Background(), "test-run")
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if place.Name != "Corner Bistro" {
		t.Errorf("Name = %q", place.Name)
	}
	if search.calls != 4 {
		t.Errorf("search calls = %d, want 4", search.calls)
	}
	if len(pauses) != 3 {
		t.Fatalf("pause count = %d, want 3", len(pauses))
	}
	for _, d := range pauses {
		if d != 2500*time.Millisecond {
			t.Errorf("pause = %v, want 2.5s", d)
		}
	}
}

func TestRun_ContextCancelStopsDiscovery(t *testing.T) {
	search := &stubNearbySearchProvider{emptyPages: 1 << 30}
	o := newTestOrchestrator(search, &stubStatusPoster{})

	ctx, cancel := context.WithCancel(context.Background())
	o.sleep = func(time.Duration) { cancel() }

	_, err := o.Run(ctx, "test-run")
	if err == nil {
		t.Fatal("Run() should fail once the context is canceled")
	}
}
