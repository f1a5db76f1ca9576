package listings

import (
	"errors"

	"camphub-backend/internal/gate"
	"camphub-backend/internal/geocoding"
	"camphub-backend/internal/middleware"
	"camphub-backend/internal/models"
	"camphub-backend/internal/pkg/render"
	"camphub-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers bundles the listing routes with their collaborators. Storage and
// Geocoder are interfaces so tests can stub them.
type Handlers struct {
	Service  *Service
	Storage  storage.Uploader
	Geocoder geocoding.Geocoder
}

// Index GET /listings
func (h *Handlers) Index(c *fiber.Ctx) error {
	listings, err := h.Service.All(c.Context())
	if err != nil {
		return err
	}
	return render.Page(c, "listings/index", fiber.Map{"listings": listings})
}

// New GET /listings/new
func (h *Handlers) New(c *fiber.Ctx) error {
	return render.Page(c, "listings/new", nil)
}

// Show GET /listings/:id
func (h *Handlers) Show(c *fiber.Ctx) error {
	listing, err := h.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			middleware.AddFlash(c, "error", "Cannot find that listing!")
			return c.Redirect("/listings", fiber.StatusFound)
		}
		return err
	}
	return render.Page(c, "listings/show", fiber.Map{"listing": listing})
}

// Create POST /listings. Runs behind RequireLogin and ValidateListing.
func (h *Handlers) Create(c *fiber.Ctx) error {
	input := gate.ListingInput(c)
	user := middleware.CurrentUser(c)
	authorID, err := uuid.Parse(user.UserID)
	if err != nil {
		return err
	}

	point := h.geocode(c, input.Location)
	in := CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Price:       input.Price,
		AuthorID:    authorID,
		Images:      h.collectUploads(c),
	}
	if point != nil {
		in.Longitude = &point.Longitude
		in.Latitude = &point.Latitude
	}
	listing, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return err
	}

	middleware.AddFlash(c, "success", "Successfully made a new listing!")
	return c.Redirect("/listings/"+listing.ListingID.String(), fiber.StatusFound)
}

// Edit GET /listings/:id/edit. Runs behind RequireLogin and ListingOwner.
func (h *Handlers) Edit(c *fiber.Ctx) error {
	listing, err := h.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			middleware.AddFlash(c, "error", "Cannot find that listing!")
			return c.Redirect("/listings", fiber.StatusFound)
		}
		return err
	}
	return render.Page(c, "listings/edit", fiber.Map{"listing": listing})
}

// Update PUT /listings/:id. Runs behind RequireLogin, ListingOwner and
// ValidateListing.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	input := gate.ListingInput(c)

	point := h.geocode(c, input.Location)
	in := UpdateInput{
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		Price:        input.Price,
		NewImages:    h.collectUploads(c),
		DeleteImages: input.DeleteImages,
	}
	if point != nil {
		in.Longitude = &point.Longitude
		in.Latitude = &point.Latitude
	}
	listing, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			middleware.AddFlash(c, "error", "Cannot find that listing!")
			return c.Redirect("/listings", fiber.StatusFound)
		}
		return err
	}
	for _, key := range input.DeleteImages {
		if h.Storage == nil {
			break
		}
		if err := h.Storage.Destroy(c.Context(), key); err != nil {
			log.Warn().Err(err).Str("filename", key).Msg("image destroy failed")
		}
	}

	middleware.AddFlash(c, "success", "Successfully updated listing")
	return c.Redirect("/listings/"+listing.ListingID.String(), fiber.StatusFound)
}

// Delete DELETE /listings/:id. Runs behind RequireLogin and ListingOwner.
// Reviews and stored images go with the listing.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	listing, err := h.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			middleware.AddFlash(c, "error", "Cannot find that listing!")
			return c.Redirect("/listings", fiber.StatusFound)
		}
		return err
	}
	if err := h.Service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	if h.Storage != nil {
		for _, img := range listing.Images {
			if err := h.Storage.Destroy(c.Context(), img.Filename); err != nil {
				log.Warn().Err(err).Str("filename", img.Filename).Msg("image destroy failed")
			}
		}
	}
	middleware.AddFlash(c, "success", "Successfully deleted listing")
	return c.Redirect("/listings", fiber.StatusFound)
}

// collectUploads sends each attached "image" file to storage. A failed upload
// drops that file and keeps the rest.
func (h *Handlers) collectUploads(c *fiber.Ctx) []models.Image {
	if h.Storage == nil {
		return nil
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	var images []models.Image
	for _, fh := range form.File["image"] {
		f, err := fh.Open()
		if err != nil {
			log.Warn().Err(err).Str("filename", fh.Filename).Msg("image open failed")
			continue
		}
		res, err := h.Storage.Upload(c.Context(), fh.Filename, f)
		f.Close()
		if err != nil {
			log.Warn().Err(err).Str("filename", fh.Filename).Msg("image upload failed")
			continue
		}
		images = append(images, models.Image{URL: res.URL, Filename: res.Filename})
	}
	return images
}

// geocode resolves the location to a point. Best-effort: a miss or an API
// failure leaves the point unset.
func (h *Handlers) geocode(c *fiber.Ctx, location string) *geocoding.Point {
	if h.Geocoder == nil {
		return nil
	}
	point, err := h.Geocoder.Forward(c.Context(), location)
	if err != nil {
		log.Warn().Err(err).Str("location", location).Msg("geocoding failed")
		return nil
	}
	return point
}
