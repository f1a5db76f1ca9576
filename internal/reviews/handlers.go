package reviews

import (
	"errors"

	"camphub-backend/internal/gate"
	"camphub-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles the review routes with the service.
type Handlers struct {
	Service *Service
}

// Create POST /listings/:id/reviews. Runs behind RequireLogin and
// ValidateReview.
func (h *Handlers) Create(c *fiber.Ctx) error {
	listingID := c.Params("id")
	input := gate.ReviewInput(c)
	user := middleware.CurrentUser(c)
	authorID, err := uuid.Parse(user.UserID)
	if err != nil {
		return err
	}

	if _, err := h.Service.Create(c.Context(), listingID, CreateInput{
		Rating:   input.Rating,
		Body:     input.Body,
		AuthorID: authorID,
	}); err != nil {
		if errors.Is(err, ErrListingNotFound) {
			middleware.AddFlash(c, "error", "Cannot find that listing!")
			return c.Redirect("/listings", fiber.StatusFound)
		}
		return err
	}
	middleware.AddFlash(c, "success", "Created new review")
	return c.Redirect("/listings/"+listingID, fiber.StatusFound)
}

// Delete DELETE /listings/:id/reviews/:reviewId. Runs behind RequireLogin and
// ReviewOwner.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	listingID := c.Params("id")
	if err := h.Service.Delete(c.Context(), listingID, c.Params("reviewId")); err != nil {
		return err
	}
	middleware.AddFlash(c, "success", "Successfully deleted review")
	return c.Redirect("/listings/"+listingID, fiber.StatusFound)
}
