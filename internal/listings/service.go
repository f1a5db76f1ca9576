package listings

import (
	"context"
	"errors"

	"camphub-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound means no listing exists for the given id.
var ErrNotFound = errors.New("listing not found")

// Service owns listing persistence.
type Service struct {
	DB *gorm.DB
}

// CreateInput carries a validated listing payload plus everything the request
// context resolved: the owner and any uploaded images.
type CreateInput struct {
	Title       string
	Description string
	Location    string
	Price       float64
	Longitude   *float64
	Latitude    *float64
	AuthorID    uuid.UUID
	Images      []models.Image
}

// Create persists a new listing owned by the given author.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Listing, error) {
	listing := &models.Listing{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Price:       in.Price,
		Longitude:   in.Longitude,
		Latitude:    in.Latitude,
		AuthorID:    in.AuthorID,
		Images:      datatypes.NewJSONSlice(in.Images),
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// All returns every listing, newest first.
func (s *Service) All(ctx context.Context) ([]models.Listing, error) {
	var out []models.Listing
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads one listing with its author and reviews (review authors included).
func (s *Service) Get(ctx context.Context, id string) (*models.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var listing models.Listing
	err := s.DB.WithContext(ctx).
		Preload("Author").
		Preload("Reviews").
		Preload("Reviews.Author").
		First(&listing, "listing_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// UpdateInput carries a validated update payload. NewImages are appended;
// DeleteImages names storage keys to drop from the record (the caller destroys
// them in storage).
type UpdateInput struct {
	Title        string
	Description  string
	Location     string
	Price        float64
	Longitude    *float64
	Latitude     *float64
	NewImages    []models.Image
	DeleteImages []string
}

// Update applies the payload to an existing listing. The author never changes.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*models.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	listing.Title = in.Title
	listing.Description = in.Description
	listing.Location = in.Location
	listing.Price = in.Price
	if in.Longitude != nil {
		listing.Longitude = in.Longitude
		listing.Latitude = in.Latitude
	}

	images := append([]models.Image(listing.Images), in.NewImages...)
	if len(in.DeleteImages) > 0 {
		drop := make(map[string]bool, len(in.DeleteImages))
		for _, key := range in.DeleteImages {
			drop[key] = true
		}
		kept := images[:0]
		for _, img := range images {
			if !drop[img.Filename] {
				kept = append(kept, img)
			}
		}
		images = kept
	}
	listing.Images = datatypes.NewJSONSlice(images)

	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Save(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// Delete removes the listing, then its reviews. The two deletes are not one
// transaction; a crash in between leaves orphaned review rows, matching the
// store's last-write-wins model.
func (s *Service) Delete(ctx context.Context, id string) error {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&models.Listing{}, "listing_id = ?", listing.ListingID).Error; err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&models.Review{}, "listing_id = ?", listing.ListingID).Error
}
