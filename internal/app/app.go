package app

import (
	"errors"

	"camphub-backend/internal/config"
	"camphub-backend/internal/gate"
	"camphub-backend/internal/geocoding"
	"camphub-backend/internal/infrastructure/database"
	"camphub-backend/internal/listings"
	"camphub-backend/internal/middleware"
	"camphub-backend/internal/pkg/render"
	"camphub-backend/internal/reviews"
	"camphub-backend/internal/storage"
	"camphub-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the collaborators the router needs. Tests inject an in-memory
// store, a miniredis client, and stub storage/geocoding.
type Deps struct {
	DB         *gorm.DB
	Rdb        *redis.Client
	SessionCfg middleware.SessionConfig
	Storage    storage.Uploader
	Geocoder   geocoding.Geocoder
	Views      fiber.Views
}

// Build assembles the Fiber app: global middleware, then route registration.
// Every mutating route runs its gates in a fixed order: authentication, then
// ownership for resource-scoped routes, then schema validation.
func Build(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 deps.Views,
		ViewsLayout:           "layouts/main",
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(helmet.New())
	app.Use(middleware.MethodOverride())
	app.Use(middleware.SessionWithClient(deps.SessionCfg, deps.Rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	gates := &gate.Gates{DB: deps.DB}

	app.Get("/", func(c *fiber.Ctx) error {
		return render.Page(c, "home", nil)
	})

	listingHandlers := &listings.Handlers{
		Service:  &listings.Service{DB: deps.DB},
		Storage:  deps.Storage,
		Geocoder: deps.Geocoder,
	}
	app.Get("/listings", listingHandlers.Index)
	app.Get("/listings/new", gate.Chain(gate.RequireLogin), listingHandlers.New)
	app.Post("/listings", gate.Chain(gate.RequireLogin, gate.ValidateListing), listingHandlers.Create)
	app.Get("/listings/:id", listingHandlers.Show)
	app.Get("/listings/:id/edit", gate.Chain(gate.RequireLogin, gates.ListingOwner), listingHandlers.Edit)
	app.Put("/listings/:id", gate.Chain(gate.RequireLogin, gates.ListingOwner, gate.ValidateListing), listingHandlers.Update)
	app.Delete("/listings/:id", gate.Chain(gate.RequireLogin, gates.ListingOwner), listingHandlers.Delete)

	reviewHandlers := &reviews.Handlers{Service: &reviews.Service{DB: deps.DB}}
	app.Post("/listings/:id/reviews", gate.Chain(gate.RequireLogin, gate.ValidateReview), reviewHandlers.Create)
	app.Delete("/listings/:id/reviews/:reviewId", gate.Chain(gate.RequireLogin, gates.ReviewOwner), reviewHandlers.Delete)

	userHandlers := &users.Handlers{
		Service: &users.Service{DB: deps.DB},
		Rdb:     deps.Rdb,
		Config:  deps.SessionCfg,
	}
	app.Get("/register", userHandlers.RegisterForm)
	app.Post("/register", userHandlers.Register)
	app.Get("/login", userHandlers.LoginForm)
	app.Post("/login", userHandlers.Login)
	app.Post("/logout", userHandlers.Logout)

	// Matched only when nothing above did.
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page Not Found")
	})

	return app
}

// New opens the production collaborators from config and builds the app.
func New(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, errors.New("DATABASE_URL is required")
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	rdb := redis.NewClient(opt)

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	app := Build(Deps{
		DB:  db,
		Rdb: rdb,
		SessionCfg: middleware.SessionConfig{
			Secret:       cfg.SessionSecret,
			IsProduction: cfg.IsProduction(),
		},
		Storage: &storage.CloudinaryClient{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryKey,
			APISecret: cfg.CloudinarySecret,
			Folder:    "CampHub",
		},
		Geocoder: &geocoding.MapboxClient{Token: cfg.MapboxToken},
		Views:    html.New("./views", ".html"),
	})
	return app, db, rdb, nil
}
