// Command seed wipes the listings table and fills it with sample campgrounds
// for development.
package main

import (
	"fmt"
	"math/rand"

	"camphub-backend/internal/config"
	"camphub-backend/internal/infrastructure/database"
	"camphub-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

var descriptors = []string{
	"Forest", "Ancient", "Petrified", "Roaring", "Cascade",
	"Tumbling", "Silent", "Redwood", "Bullfrog", "Maple",
	"Misty", "Elk", "Grizzly", "Ocean", "Sky", "Dusty", "Diamond",
}

var places = []string{
	"Flats", "Village", "Canyon", "Pond", "Group Camp", "Horse Camp",
	"Ghost Town", "Camp", "Dispersed Camp", "Backcountry", "River",
	"Creek", "Creekside", "Bay", "Spring", "Bayshore", "Sands",
	"Mallard", "Pond", "Cliffs", "Hollow",
}

var cities = []string{
	"Boulder, CO", "Bend, OR", "Moab, UT", "Asheville, NC",
	"Missoula, MT", "Taos, NM", "Sedona, AZ", "Ithaca, NY",
	"Duluth, MN", "Olympia, WA", "Burlington, VT", "Durango, CO",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}
	if cfg.DatabaseURL == "" {
		panic("DATABASE_URL is required")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		panic("database open: " + err.Error())
	}
	if err := database.AutoMigrate(db); err != nil {
		panic("migrate: " + err.Error())
	}

	// Seed listings need an owner; reuse the first account or create one.
	var author models.User
	if err := db.First(&author).Error; err != nil {
		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), 10)
		author = models.User{
			Username:     "camper",
			Email:        "camper@example.com",
			PasswordHash: string(hash),
		}
		if err := db.Create(&author).Error; err != nil {
			panic("seed user: " + err.Error())
		}
	}

	if err := db.Exec(`DELETE FROM "Reviews"`).Error; err != nil {
		panic("clear reviews: " + err.Error())
	}
	if err := db.Exec(`DELETE FROM "Listings"`).Error; err != nil {
		panic("clear listings: " + err.Error())
	}

	for i := 0; i < 50; i++ {
		listing := models.Listing{
			Title:       descriptors[rand.Intn(len(descriptors))] + " " + places[rand.Intn(len(places))],
			Location:    cities[rand.Intn(len(cities))],
			Description: "A quiet spot to pitch a tent, with water nearby and room for a fire.",
			Price:       float64(rand.Intn(30) + 10),
			AuthorID:    author.UserID,
			Images: datatypes.NewJSONSlice([]models.Image{{
				URL:      "https://res.cloudinary.com/demo/image/upload/CampHub/sample.jpg",
				Filename: "CampHub/sample",
			}}),
		}
		if err := db.Create(&listing).Error; err != nil {
			panic("seed listing: " + err.Error())
		}
	}
	fmt.Println("Seeded 50 listings")
}
