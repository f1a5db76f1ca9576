package listings

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

func setupListingsTest(t *testing.T) (*Service, *gorm.DB, models.User) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.Review{}))

	author := models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&author).Error)
	return &Service{DB: db}, db, author
}

func TestCreateAndGet(t *testing.T) {
	svc, _, author := setupListingsTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Title:       "Pine Ridge",
		Description: "Quiet spot",
		Location:    "Boulder, CO",
		Price:       12.50,
		AuthorID:    author.UserID,
		Images: []models.Image{
			{URL: "https://res.cloudinary.com/demo/image/upload/CampHub/a.jpg", Filename: "CampHub/a"},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ListingID)

	got, err := svc.Get(ctx, created.ListingID.String())
	require.NoError(t, err)
	assert.Equal(t, "Pine Ridge", got.Title)
	assert.Equal(t, 12.50, got.Price)
	assert.Equal(t, author.UserID, got.AuthorID)
	assert.Empty(t, got.Reviews)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "CampHub/a", got.Images[0].Filename)
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := setupListingsTest(t)
	_, err := svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_AppendsAndDropsImages(t *testing.T) {
	svc, _, author := setupListingsTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Title: "Pine Ridge", Description: "d", Location: "l", Price: 10,
		AuthorID: author.UserID,
		Images: []models.Image{
			{URL: "u/a", Filename: "CampHub/a"},
			{URL: "u/b", Filename: "CampHub/b"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ListingID.String(), UpdateInput{
		Title: "Pine Ridge", Description: "d", Location: "l", Price: 15,
		NewImages:    []models.Image{{URL: "u/c", Filename: "CampHub/c"}},
		DeleteImages: []string{"CampHub/a"},
	})
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.Price)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, "CampHub/b", updated.Images[0].Filename)
	assert.Equal(t, "CampHub/c", updated.Images[1].Filename)
}

func TestUpdate_KeepsAuthorAndPoint(t *testing.T) {
	svc, _, author := setupListingsTest(t)
	ctx := context.Background()

	lng, lat := -105.27, 40.01
	created, err := svc.Create(ctx, CreateInput{
		Title: "Pine Ridge", Description: "d", Location: "Boulder, CO", Price: 10,
		Longitude: &lng, Latitude: &lat,
		AuthorID: author.UserID,
	})
	require.NoError(t, err)

	// No new point: the old one stays.
	updated, err := svc.Update(ctx, created.ListingID.String(), UpdateInput{
		Title: "Pine Ridge", Description: "d", Location: "Boulder, CO", Price: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, author.UserID, updated.AuthorID)
	require.NotNil(t, updated.Longitude)
	assert.Equal(t, -105.27, *updated.Longitude)
}

func TestDelete_CascadesReviews(t *testing.T) {
	svc, db, author := setupListingsTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Title: "Pine Ridge", Description: "d", Location: "l", Price: 10,
		AuthorID: author.UserID,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Review{
			Body: "b", Rating: 4, ListingID: created.ListingID, AuthorID: author.UserID,
		}).Error)
	}

	require.NoError(t, svc.Delete(ctx, created.ListingID.String()))

	var count int64
	db.Model(&models.Review{}).Where("listing_id = ?", created.ListingID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.Listing{}).Where("listing_id = ?", created.ListingID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := setupListingsTest(t)
	err := svc.Delete(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
