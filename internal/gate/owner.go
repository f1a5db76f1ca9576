package gate

import (
	"errors"

	"camphub-backend/internal/middleware"
	"camphub-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gates holds the store handle the ownership gates need to load their target
// resource. RequireLogin has already run when these execute, so a session user
// is present.
type Gates struct {
	DB *gorm.DB
}

// ListingOwner loads the listing from :id and passes only its recorded owner.
// Anyone else is sent back to the listing page with a notice; this is a UX
// policy, not a transport-level denial.
func (g *Gates) ListingOwner(c *fiber.Ctx) Outcome {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return Redirect("/listings", "error", "Cannot find that listing!")
	}

	var listing models.Listing
	if err := g.DB.WithContext(c.Context()).First(&listing, "listing_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Redirect("/listings", "error", "Cannot find that listing!")
		}
		return Fail(fiber.StatusInternalServerError, "Oh No, Something Went Wrong!")
	}

	user := middleware.CurrentUser(c)
	if user == nil || listing.AuthorID.String() != user.UserID {
		return Redirect("/listings/"+id, "error", "You do not have permission to do that")
	}
	return Continue()
}

// ReviewOwner loads the review from :reviewId and passes only its recorded
// owner. Both the not-found and the denied case redirect to the parent
// listing, since reviews have no standalone view.
func (g *Gates) ReviewOwner(c *fiber.Ctx) Outcome {
	listingID := c.Params("id")
	reviewID := c.Params("reviewId")
	if _, err := uuid.Parse(reviewID); err != nil {
		return Redirect("/listings/"+listingID, "error", "Cannot find that review!")
	}

	var review models.Review
	if err := g.DB.WithContext(c.Context()).First(&review, "review_id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Redirect("/listings/"+listingID, "error", "Cannot find that review!")
		}
		return Fail(fiber.StatusInternalServerError, "Oh No, Something Went Wrong!")
	}

	user := middleware.CurrentUser(c)
	if user == nil || review.AuthorID.String() != user.UserID {
		return Redirect("/listings/"+listingID, "error", "You do not have permission to do that")
	}
	return Continue()
}
