package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a rated comment on exactly one listing.
type Review struct {
	ReviewID  uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`
	Body      string    `gorm:"column:body;not null" json:"body"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	AuthorID  uuid.UUID `gorm:"column:author_id;type:uuid;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;references:UserID" json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Review) TableName() string {
	return "Reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewID == uuid.Nil {
		r.ReviewID = uuid.New()
	}
	return nil
}
