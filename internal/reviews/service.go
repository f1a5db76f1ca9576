package reviews

import (
	"context"
	"errors"

	"camphub-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrListingNotFound means the parent listing does not exist.
var ErrListingNotFound = errors.New("listing not found")

// Service owns review persistence. A review only ever exists as a child of one
// listing.
type Service struct {
	DB *gorm.DB
}

// CreateInput carries a validated review payload plus its author.
type CreateInput struct {
	Rating   int
	Body     string
	AuthorID uuid.UUID
}

// Create attaches a new review to the listing.
func (s *Service) Create(ctx context.Context, listingID string, in CreateInput) (*models.Review, error) {
	lid, err := uuid.Parse(listingID)
	if err != nil {
		return nil, ErrListingNotFound
	}
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, "listing_id = ?", lid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	review := &models.Review{
		Rating:    in.Rating,
		Body:      in.Body,
		ListingID: lid,
		AuthorID:  in.AuthorID,
	}
	if err := s.DB.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// Delete detaches and removes one review from its listing.
func (s *Service) Delete(ctx context.Context, listingID, reviewID string) error {
	return s.DB.WithContext(ctx).
		Delete(&models.Review{}, "review_id = ? AND listing_id = ?", reviewID, listingID).Error
}
