package enrich

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/lachuoi/mstd-random-restaurant/internal/errs"
	"github.com/lachuoi/mstd-random-restaurant/internal/fetch"
	"github.com/lachuoi/mstd-random-restaurant/internal/multipartform"
	"github.com/lachuoi/mstd-random-restaurant/internal/providers/caption"
	"github.com/lachuoi/mstd-random-restaurant/internal/providers/googleplaces"
	"github.com/lachuoi/mstd-random-restaurant/internal/types"
)

// maxPhotos caps the number of photo references taken from the details
// response.
const maxPhotos = 4

// captionDelay is the pause after every caption request. The captioning
// backend is a free service; give it some buffer.
const captionDelay = 4300 * time.Millisecond

// DetailProvider fetches the address and photo references of a place.
type DetailProvider interface {
	Details(placeID string) (*googleplaces.DetailsResponse, error)
}

// PhotoProvider downloads the image behind a photo reference.
type PhotoProvider interface {
	FetchPhoto(reference string) (*fetch.Result, error)
}

// CaptionProvider produces a natural-language description of an image.
type CaptionProvider interface {
	Describe(image []byte, filename, contentType string) (*caption.DescriptionResponse, error)
}

// Service enriches a selected place: address and photo references, then the
// photo bytes, then a description per photo.
type Service interface {
	Enrich(place *types.Place) error
}

type enrichService struct {
	detailProvider  DetailProvider
	photoProvider   PhotoProvider
	captionProvider CaptionProvider
	sleep           func(time.Duration)
	logger          *slog.Logger
}

// NewService creates an enrichment service with real provider clients.
func NewService(logger *slog.Logger, googleAPIKey, captionBaseURL string) Service {
	places := googleplaces.NewClient(googleAPIKey)
	return NewServiceWithProviders(logger, places, places, caption.NewClient(captionBaseURL))
}

// NewServiceWithProviders creates an enrichment service with custom
// providers. This is useful for testing with mock providers.
func NewServiceWithProviders(
	logger *slog.Logger,
	detailProvider DetailProvider,
	photoProvider PhotoProvider,
	captionProvider CaptionProvider,
) Service {
	return &enrichService{
		detailProvider:  detailProvider,
		photoProvider:   photoProvider,
		captionProvider: captionProvider,
		sleep:           time.Sleep,
		logger:          logger.With("component", "enrich-service"),
	}
}

func (s *enrichService) Enrich(place *types.Place) error {
	if err := s.fetchDetails(place); err != nil {
		return err
	}
	if err := s.materializePhotos(place); err != nil {
		return err
	}
	return s.describePhotos(place)
}

// fetchDetails writes the formatted address and creates one photo stub per
// non-null reference, preserving response order.
func (s *enrichService) fetchDetails(place *types.Place) error {
	resp, err := s.detailProvider.Details(place.PlaceID)
	if err != nil {
		return fmt.Errorf("failed to get place details: %w", err)
	}

	if resp.Result.FormattedAddress == nil {
		return fmt.Errorf("%w: details response missing formatted_address", errs.ErrSchemaViolation)
	}
	place.Address = *resp.Result.FormattedAddress

	for _, photo := range resp.Result.Photos {
		if len(place.Photos) == maxPhotos {
			break
		}
		if photo.PhotoReference == nil {
			continue
		}
		place.Photos = append(place.Photos, types.Photo{Reference: *photo.PhotoReference})
	}

	s.logger.Debug("fetched place details",
		"address", place.Address,
		"photos", len(place.Photos),
	)

	return nil
}

// materializePhotos downloads each stub's image in order. Failure of any
// single download aborts the whole run.
func (s *enrichService) materializePhotos(place *types.Place) error {
	for i := range place.Photos {
		photo := &place.Photos[i]

		res, err := s.photoProvider.FetchPhoto(photo.Reference)
		if err != nil {
			return fmt.Errorf("failed to fetch photo %d: %w", i, err)
		}

		contentLength, err := strconv.Atoi(res.Header.Get("Content-Length"))
		if err != nil {
			return fmt.Errorf("%w: photo %d content-length missing or unparseable", errs.ErrSchemaViolation, i)
		}

		contentType := res.Header.Get("Content-Type")
		contentDisposition := res.Header.Get("Content-Disposition")
		photo.ContentLength = &contentLength
		photo.ContentType = &contentType
		photo.ContentDisposition = &contentDisposition
		photo.Bytes = res.Body

		s.logger.Debug("materialized photo",
			"index", i,
			"status", res.StatusCode,
			"content_length", contentLength,
			"content_type", contentType,
		)
	}
	return nil
}

// describePhotos obtains one caption per materialized photo, in order, with
// a fixed pause after each call including the last one.
func (s *enrichService) describePhotos(place *types.Place) error {
	for i := range place.Photos {
		photo := &place.Photos[i]

		filename := multipartform.FilenameFromDisposition(*photo.ContentDisposition)
		if filename == "" {
			return fmt.Errorf("%w: photo %d content-disposition carries no filename", errs.ErrSchemaViolation, i)
		}

		resp, err := s.captionProvider.Describe(photo.Bytes, filename, *photo.ContentType)
		if err != nil {
			return fmt.Errorf("failed to describe photo %d: %w", i, err)
		}
		if resp.Description == nil {
			return fmt.Errorf("%w: description response missing description", errs.ErrSchemaViolation)
		}
		photo.Description = resp.Description

		s.logger.Debug("described photo", "index", i, "description", *resp.Description)

		s.sleep(captionDelay)
	}
	return nil
}
