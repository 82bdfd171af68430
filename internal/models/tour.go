package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"

	GeoPoint = "Point"
)

// Location is a GeoJSON point with a human readable address. Coordinates are
// [longitude, latitude].
type Location struct {
	Type        string    `json:"type" validate:"omitempty,oneof=Point"`
	Coordinates []float64 `json:"coordinates" validate:"omitempty,len=2"`
	Address     string    `json:"address,omitempty"`
	Description string    `json:"description,omitempty"`
	Day         int       `json:"day,omitempty" validate:"gte=0"`
}

type Tour struct {
	ID              uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string                         `gorm:"size:40;not null;uniqueIndex" json:"name" validate:"required,min=10,max=40"`
	Slug            string                         `gorm:"size:64;index" json:"slug"`
	Summary         string                         `gorm:"type:text;not null" json:"summary" validate:"required"`
	Description     string                         `gorm:"type:text;not null" json:"description" validate:"required"`
	Duration        int                            `gorm:"not null" json:"duration" validate:"required,gt=0"`
	MaxGroupSize    int                            `gorm:"not null" json:"maxGroupSize" validate:"required,gt=0"`
	Difficulty      string                         `gorm:"size:20;not null" json:"difficulty" validate:"required,oneof=easy medium difficult"`
	Price           float64                        `gorm:"not null" json:"price" validate:"required,gt=0"`
	Discount        *float64                       `json:"discount,omitempty" validate:"omitempty,gte=0,ltfield=Price"`
	ImageCover      string                         `gorm:"size:255;not null" json:"imageCover" validate:"required"`
	Images          datatypes.JSONSlice[string]    `json:"images"`
	RatingsAverage  float64                        `gorm:"not null;default:5" json:"ratingsAverage" validate:"gte=1,lte=5"`
	RatingsQuantity int                            `gorm:"not null;default:0" json:"ratingsQuantity" validate:"gte=0"`
	StartDates      datatypes.JSONSlice[time.Time] `json:"startDates"`
	SecretTour      bool                           `gorm:"not null;default:false;index" json:"secretTour"`
	StartLocation   datatypes.JSONType[Location]   `json:"startLocation"`
	Locations       datatypes.JSONSlice[Location]  `json:"locations" validate:"dive"`
	Guides          []User                         `gorm:"many2many:tour_guides" json:"guides,omitempty"`
	Reviews         []Review                       `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	CreatedAt       time.Time                      `json:"createdAt"`
	UpdatedAt       time.Time                      `json:"updatedAt"`
}

// Prepare normalizes a tour before it is validated and written: strings are
// trimmed, the slug is derived from the name and empty collections and
// GeoJSON types get their defaults.
func (t *Tour) Prepare() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.Name = strings.TrimSpace(t.Name)
	t.Summary = strings.TrimSpace(t.Summary)
	t.Description = strings.TrimSpace(t.Description)
	t.Slug = slug.Make(t.Name)

	if t.RatingsAverage == 0 {
		t.RatingsAverage = 5
	}
	if t.Images == nil {
		t.Images = datatypes.JSONSlice[string]{}
	}
	if t.StartDates == nil {
		t.StartDates = datatypes.JSONSlice[time.Time]{}
	}
	if t.Locations == nil {
		t.Locations = datatypes.JSONSlice[Location]{}
	}
	for i := range t.Locations {
		if t.Locations[i].Type == "" {
			t.Locations[i].Type = GeoPoint
		}
	}
	start := t.StartLocation.Data()
	if start.Type == "" {
		start.Type = GeoPoint
		t.StartLocation = datatypes.NewJSONType(start)
	}
}

// DurationWeeks is the tour length in weeks. It is derived, never stored.
func (t *Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// MarshalJSON adds the derived durationWeeks field.
func (t Tour) MarshalJSON() ([]byte, error) {
	type tour Tour
	return json.Marshal(struct {
		tour
		DurationWeeks float64 `json:"durationWeeks"`
	}{tour: tour(t), DurationWeeks: t.DurationWeeks()})
}

// Visible hides secret tours from listings.
func Visible(db *gorm.DB) *gorm.DB {
	return db.Where("secret_tour = ?", false)
}

// WithGuides populates the guides relation with their public fields only.
func WithGuides(db *gorm.DB) *gorm.DB {
	return db.Preload("Guides", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email", "photo")
	})
}

// WithReviews populates the reviews back-reference.
func WithReviews(db *gorm.DB) *gorm.DB {
	return db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "tour_id", "review", "rating").Order("created_at DESC")
	})
}
