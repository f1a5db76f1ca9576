package schema

import "github.com/gofiber/fiber/v2"

func bound(v float64) *float64 { return &v }

// ListingSchema defines what a listing payload must look like: every display
// attribute required and markup-free, price a non-negative two-decimal number.
var ListingSchema = Schema{
	Name: "listing",
	Fields: []Field{
		{Name: "title", Kind: String, Required: true, NoMarkup: true},
		{Name: "price", Kind: Number, Required: true, Min: bound(0), Decimals: 2},
		{Name: "location", Kind: String, Required: true, NoMarkup: true},
		{Name: "description", Kind: String, Required: true, NoMarkup: true},
	},
}

// ReviewSchema defines a review payload: integer rating 1..5 plus a body.
var ReviewSchema = Schema{
	Name: "review",
	Fields: []Field{
		{Name: "rating", Kind: Int, Required: true, Min: bound(1), Max: bound(5)},
		{Name: "body", Kind: String, Required: true},
	},
}

// ListingPayload is the raw form input for creating or updating a listing.
type ListingPayload struct {
	Title        string
	Price        string
	Location     string
	Description  string
	DeleteImages []string
}

// ListingInput is the sanitized result of a valid listing payload.
type ListingInput struct {
	Title        string
	Price        float64
	Location     string
	Description  string
	DeleteImages []string
}

// ValidateListing checks a listing payload and returns the sanitized input or
// an aggregated violation.
func ValidateListing(p ListingPayload) (ListingInput, *Violation) {
	out, v := ListingSchema.Validate(map[string]string{
		"title":       p.Title,
		"price":       p.Price,
		"location":    p.Location,
		"description": p.Description,
	})
	for _, key := range p.DeleteImages {
		if key == "" {
			if v == nil {
				v = &Violation{Status: fiber.StatusBadRequest}
			}
			v.Fields = append(v.Fields, FieldError{
				Field:   "deleteImages",
				Message: `"deleteImages" must contain storage keys`,
			})
			break
		}
	}
	if v != nil {
		return ListingInput{}, v
	}
	return ListingInput{
		Title:        out["title"].(string),
		Price:        out["price"].(float64),
		Location:     out["location"].(string),
		Description:  out["description"].(string),
		DeleteImages: p.DeleteImages,
	}, nil
}

// ReviewPayload is the raw form input for creating a review.
type ReviewPayload struct {
	Rating string
	Body   string
}

// ReviewInput is the sanitized result of a valid review payload.
type ReviewInput struct {
	Rating int
	Body   string
}

// ValidateReview checks a review payload and returns the sanitized input or an
// aggregated violation.
func ValidateReview(p ReviewPayload) (ReviewInput, *Violation) {
	out, v := ReviewSchema.Validate(map[string]string{
		"rating": p.Rating,
		"body":   p.Body,
	})
	if v != nil {
		return ReviewInput{}, v
	}
	return ReviewInput{
		Rating: out["rating"].(int),
		Body:   out["body"].(string),
	}, nil
}
