package reviews

import (
	"context"
	"testing"

	"camphub-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewsTest(t *testing.T) (*Service, *gorm.DB, models.Listing) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.Review{}))

	author := models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&author).Error)
	listing := models.Listing{
		Title: "Pine Ridge", Description: "d", Location: "l", Price: 10,
		AuthorID: author.UserID,
	}
	require.NoError(t, db.Create(&listing).Error)
	return &Service{DB: db}, db, listing
}

func TestCreate_AttachesToListing(t *testing.T) {
	svc, db, listing := setupReviewsTest(t)

	review, err := svc.Create(context.Background(), listing.ListingID.String(), CreateInput{
		Rating:   5,
		Body:     "Great views",
		AuthorID: listing.AuthorID,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, review.ReviewID)
	assert.Equal(t, listing.ListingID, review.ListingID)

	var loaded models.Listing
	require.NoError(t, db.Preload("Reviews").First(&loaded, "listing_id = ?", listing.ListingID).Error)
	require.Len(t, loaded.Reviews, 1)
	assert.Equal(t, "Great views", loaded.Reviews[0].Body)
}

func TestCreate_ListingNotFound(t *testing.T) {
	svc, _, listing := setupReviewsTest(t)

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateInput{
		Rating: 3, Body: "b", AuthorID: listing.AuthorID,
	})
	assert.ErrorIs(t, err, ErrListingNotFound)

	_, err = svc.Create(context.Background(), "not-a-uuid", CreateInput{
		Rating: 3, Body: "b", AuthorID: listing.AuthorID,
	})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestDelete_RemovesOneReview(t *testing.T) {
	svc, db, listing := setupReviewsTest(t)
	ctx := context.Background()

	keep, err := svc.Create(ctx, listing.ListingID.String(), CreateInput{
		Rating: 4, Body: "keep", AuthorID: listing.AuthorID,
	})
	require.NoError(t, err)
	gone, err := svc.Create(ctx, listing.ListingID.String(), CreateInput{
		Rating: 2, Body: "gone", AuthorID: listing.AuthorID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, listing.ListingID.String(), gone.ReviewID.String()))

	var remaining []models.Review
	require.NoError(t, db.Find(&remaining, "listing_id = ?", listing.ListingID).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ReviewID, remaining[0].ReviewID)
}

func TestDelete_WrongListingIsNoop(t *testing.T) {
	svc, db, listing := setupReviewsTest(t)
	ctx := context.Background()

	review, err := svc.Create(ctx, listing.ListingID.String(), CreateInput{
		Rating: 4, Body: "stays", AuthorID: listing.AuthorID,
	})
	require.NoError(t, err)

	// Review id paired with a different listing matches nothing.
	require.NoError(t, svc.Delete(ctx, uuid.NewString(), review.ReviewID.String()))

	var count int64
	db.Model(&models.Review{}).Where("review_id = ?", review.ReviewID).Count(&count)
	assert.EqualValues(t, 1, count)
}
