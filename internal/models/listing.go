package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Image is one stored image reference: the delivery URL plus the storage key
// needed to delete it later.
type Image struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Thumbnail returns a width-200 delivery URL for the image.
func (i Image) Thumbnail() string {
	return strings.Replace(i.URL, "/upload", "/upload/w_200", 1)
}

// Listing is a campground record. The author is set once at creation and never
// reassigned; reviews hang off it by foreign key and are removed when the
// listing is deleted.
type Listing struct {
	ListingID   uuid.UUID                   `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	Title       string                      `gorm:"column:title;not null" json:"title"`
	Description string                      `gorm:"column:description;not null" json:"description"`
	Location    string                      `gorm:"column:location;not null" json:"location"`
	Price       float64                     `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Longitude   *float64                    `gorm:"column:longitude" json:"longitude"`
	Latitude    *float64                    `gorm:"column:latitude" json:"latitude"`
	Images      datatypes.JSONSlice[Image]  `gorm:"column:images" json:"images"`
	AuthorID    uuid.UUID                   `gorm:"column:author_id;type:uuid;not null" json:"author_id"`
	Author      User                        `gorm:"foreignKey:AuthorID;references:UserID" json:"author"`
	Reviews     []Review                    `gorm:"foreignKey:ListingID;references:ListingID" json:"reviews"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func (Listing) TableName() string {
	return "Listings"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	return nil
}
