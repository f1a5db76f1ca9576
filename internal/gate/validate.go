package gate

import (
	"camphub-backend/internal/schema"

	"github.com/gofiber/fiber/v2"
)

const (
	listingInputLocal = "listing_input"
	reviewInputLocal  = "review_input"
)

// ValidateListing checks the listing form payload against its schema. A
// violation fails the request with one aggregated 400; on success the
// sanitized input is stashed for the handler.
func ValidateListing(c *fiber.Ctx) Outcome {
	payload := schema.ListingPayload{
		Title:        c.FormValue("listing[title]"),
		Price:        c.FormValue("listing[price]"),
		Location:     c.FormValue("listing[location]"),
		Description:  c.FormValue("listing[description]"),
		DeleteImages: formValues(c, "deleteImages[]"),
	}
	input, v := schema.ValidateListing(payload)
	if v != nil {
		return Fail(v.Status, v.Error())
	}
	c.Locals(listingInputLocal, input)
	return Continue()
}

// ValidateReview checks the review form payload. A rating of exactly 0 means
// no star was selected; that steers the user back to the listing page instead
// of producing a generic 400.
func ValidateReview(c *fiber.Ctx) Outcome {
	if c.FormValue("review[rating]") == "0" {
		return Redirect("/listings/"+c.Params("id"), "error", "Please select a star rating")
	}
	payload := schema.ReviewPayload{
		Rating: c.FormValue("review[rating]"),
		Body:   c.FormValue("review[body]"),
	}
	input, v := schema.ValidateReview(payload)
	if v != nil {
		return Fail(v.Status, v.Error())
	}
	c.Locals(reviewInputLocal, input)
	return Continue()
}

// ListingInput returns the sanitized listing payload stashed by ValidateListing.
func ListingInput(c *fiber.Ctx) schema.ListingInput {
	in, _ := c.Locals(listingInputLocal).(schema.ListingInput)
	return in
}

// ReviewInput returns the sanitized review payload stashed by ValidateReview.
func ReviewInput(c *fiber.Ctx) schema.ReviewInput {
	in, _ := c.Locals(reviewInputLocal).(schema.ReviewInput)
	return in
}

// formValues collects every value of a repeated form key from either a
// multipart or urlencoded body.
func formValues(c *fiber.Ctx, key string) []string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vs, ok := form.Value[key]; ok {
			return vs
		}
	}
	var out []string
	for _, v := range c.Request().PostArgs().PeekMulti(key) {
		out = append(out, string(v))
	}
	return out
}
