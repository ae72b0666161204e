package publish

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/lachuoi/mstd-random-restaurant/internal/errs"
	"github.com/lachuoi/mstd-random-restaurant/internal/multipartform"
	"github.com/lachuoi/mstd-random-restaurant/internal/providers/mastodon"
	"github.com/lachuoi/mstd-random-restaurant/internal/types"
)

// MediaUploader uploads one image to the social backend's media endpoint.
type MediaUploader interface {
	UploadMedia(image []byte, filename, contentType, description string) (*mastodon.MediaResponse, error)
}

// StatusPoster submits the final status.
type StatusPoster interface {
	PostStatus(status mastodon.StatusRequest) error
}

// Service uploads a place's photos and posts the composed status.
type Service interface {
	Publish(place *types.Place) error
}

type publishService struct {
	mediaUploader MediaUploader
	statusPoster  StatusPoster
	logger        *slog.Logger
}

// NewService creates a publisher backed by a real Mastodon client.
func NewService(logger *slog.Logger, baseURL, accessToken string) Service {
	client := mastodon.NewClient(logger, baseURL, accessToken)
	return NewServiceWithProviders(logger, client, client)
}

// NewServiceWithProviders creates a publisher with custom providers. This is
// useful for testing with mock providers.
func NewServiceWithProviders(
	logger *slog.Logger,
	mediaUploader MediaUploader,
	statusPoster StatusPoster,
) Service {
	return &publishService{
		mediaUploader: mediaUploader,
		statusPoster:  statusPoster,
		logger:        logger.With("component", "publish-service"),
	}
}

func (s *publishService) Publish(place *types.Place) error {
	if err := s.uploadPhotos(place); err != nil {
		return err
	}
	return s.postStatus(place)
}

// uploadPhotos uploads each photo with its description, in place order, and
// stores the returned media ID on the photo.
func (s *publishService) uploadPhotos(place *types.Place) error {
	for i := range place.Photos {
		photo := &place.Photos[i]

		filename := multipartform.FilenameFromDisposition(*photo.ContentDisposition)
		if filename == "" {
			return fmt.Errorf("%w: photo %d content-disposition carries no filename", errs.ErrSchemaViolation, i)
		}

		description := ""
		if photo.Description != nil {
			description = *photo.Description
		}

		resp, err := s.mediaUploader.UploadMedia(photo.Bytes, filename, *photo.ContentType, description)
		if err != nil {
			return fmt.Errorf("failed to upload photo %d: %w", i, err)
		}

		if resp.ID == nil {
			return fmt.Errorf("%w: media response missing id", errs.ErrSchemaViolation)
		}
		mediaID, err := strconv.ParseInt(*resp.ID, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: media id %q is not numeric", errs.ErrSchemaViolation, *resp.ID)
		}
		photo.MediaID = &mediaID

		s.logger.Debug("uploaded photo", "index", i, "media_id", mediaID)
	}
	return nil
}

// postStatus composes the status text and submits it with the uploaded media
// IDs in place order.
func (s *publishService) postStatus(place *types.Place) error {
	mediaIDs := make([]int64, 0, len(place.Photos))
	for i := range place.Photos {
		if place.Photos[i].MediaID == nil {
			return fmt.Errorf("%w: photo %d has no media id", errs.ErrSchemaViolation, i)
		}
		mediaIDs = append(mediaIDs, *place.Photos[i].MediaID)
	}

	if err := s.statusPoster.PostStatus(mastodon.StatusRequest{
		Status:     ComposeStatus(place),
		Visibility: "public",
		Language:   "eng",
		MediaIDs:   mediaIDs,
	}); err != nil {
		return fmt.Errorf("failed to post status: %w", err)
	}

	s.logger.Info("published place",
		"name", place.Name,
		"media", len(mediaIDs),
	)
	return nil
}

// ComposeStatus builds the post text: name, address, stars, a Google Maps
// deep link, and the fixed hashtags.
func ComposeStatus(place *types.Place) string {
	return fmt.Sprintf(
		"%s\n%s\n%s\nhttps://www.google.com/maps/search/?api=1&query=%v,%v&query_place_id=%s\n#restaurant #travel",
		place.Name,
		place.Address,
		RatingStars(place.Rating),
		place.Latitude,
		place.Longitude,
		place.PlaceID,
	)
}
