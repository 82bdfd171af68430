package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Review    string    `gorm:"type:text;not null" json:"review"`
	Rating    int       `gorm:"not null" json:"rating"`
	TourID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_tour_user" json:"tourId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_tour_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
