package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultTourLimit = 20
	MaxTourLimit     = 100
)

// sortColumns whitelists the sortable JSON fields.
var sortColumns = map[string]string{
	"name":            "name",
	"duration":        "duration",
	"maxGroupSize":    "max_group_size",
	"difficulty":      "difficulty",
	"price":           "price",
	"ratingsAverage":  "ratings_average",
	"ratingsQuantity": "ratings_quantity",
	"createdAt":       "created_at",
}

type TourService struct {
	db *gorm.DB
}

func NewTourService(db *gorm.DB) *TourService {
	return &TourService{db: db}
}

// List returns one page of visible tours and the number of visible tours
// matching the filter. Secret tours are never listed.
func (s *TourService) List(ctx context.Context, q *dto.TourQuery) ([]models.Tour, int64, error) {
	order, err := orderClause(q.Sort)
	if err != nil {
		return nil, 0, err
	}

	filter := func(db *gorm.DB) *gorm.DB {
		db = models.Visible(db)
		if q.Difficulty != "" {
			db = db.Where("difficulty = ?", q.Difficulty)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Tour{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tours: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultTourLimit
	}
	if limit > MaxTourLimit {
		limit = MaxTourLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	tours := []models.Tour{}
	query := s.db.WithContext(ctx).
		Scopes(filter, include(q.WithGuides, q.WithReviews)).
		Order(order).
		Limit(limit).Offset(offset)
	if err := query.Find(&tours).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tours: %w", err)
	}
	return tours, total, nil
}

// Get loads a tour by id or slug. Secret tours are reachable this way.
func (s *TourService) Get(ctx context.Context, idOrSlug string, withGuides, withReviews bool) (*models.Tour, error) {
	db := s.db.WithContext(ctx).Scopes(include(withGuides, withReviews))
	if id, err := uuid.Parse(idOrSlug); err == nil {
		db = db.Where("id = ?", id)
	} else {
		db = db.Where("slug = ?", idOrSlug)
	}

	var tour models.Tour
	if err := db.First(&tour).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("failed to load tour: %w", err)
	}
	return &tour, nil
}

func (s *TourService) Create(ctx context.Context, req *dto.TourRequest) (*models.Tour, error) {
	var tour models.Tour
	req.ApplyTo(&tour)
	tour.Prepare()
	if err := validateTour(&tour); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Guides != nil {
			guides, err := loadGuides(tx, *req.Guides)
			if err != nil {
				return err
			}
			tour.Guides = guides
		}
		return tx.Omit("Guides.*").Create(&tour).Error
	})
	if err != nil {
		return nil, translateTourError(err, "create")
	}
	return &tour, nil
}

// Update applies a partial update. The slug follows the name.
func (s *TourService) Update(ctx context.Context, id uuid.UUID, req *dto.TourRequest) (*models.Tour, error) {
	var tour models.Tour
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tour, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTourNotFound
			}
			return err
		}

		req.ApplyTo(&tour)
		tour.Prepare()
		if err := validateTour(&tour); err != nil {
			return err
		}

		if req.Guides != nil {
			guides, err := loadGuides(tx, *req.Guides)
			if err != nil {
				return err
			}
			if err := tx.Model(&tour).Association("Guides").Clear(); err != nil {
				return err
			}
			tour.Guides = guides
		}
		return tx.Omit("Guides.*", "Reviews").Save(&tour).Error
	})
	if err != nil {
		return nil, translateTourError(err, "update")
	}
	return &tour, nil
}

func (s *TourService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tour models.Tour
		if err := tx.First(&tour, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTourNotFound
			}
			return err
		}
		if err := tx.Where("tour_id = ?", tour.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&tour).Association("Guides").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tour).Error
	})
	if err != nil {
		return translateTourError(err, "delete")
	}
	return nil
}

func include(withGuides, withReviews bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if withGuides {
			db = models.WithGuides(db)
		}
		if withReviews {
			db = models.WithReviews(db)
		}
		return db
	}
}

func validateTour(t *models.Tour) error {
	if err := validation.Struct(t); err != nil {
		return err
	}
	start := t.StartLocation.Data()
	if err := validation.Struct(&start); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			out := make(validation.Errors, len(verrs))
			for k, v := range verrs {
				out["startLocation."+k] = "startLocation." + v
			}
			return out
		}
		return err
	}
	return nil
}

// loadGuides resolves ids to users allowed to guide.
func loadGuides(tx *gorm.DB, ids []uuid.UUID) ([]models.User, error) {
	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) == 0 {
		return []models.User{}, nil
	}

	var guides []models.User
	err := tx.Scopes(models.WithoutPassword).
		Where("id IN ? AND role IN ?", ids, []string{models.RoleGuide, models.RoleLeadGuide}).
		Find(&guides).Error
	if err != nil {
		return nil, err
	}
	if len(guides) != len(unique) {
		return nil, ErrInvalidGuide
	}
	return guides, nil
}

// orderClause turns ["price", "-ratingsAverage"] into a SQL ORDER BY list.
func orderClause(fields []string) (string, error) {
	parts := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(f, "-") {
			dir = "DESC"
			f = f[1:]
		}
		col, ok := sortColumns[f]
		if !ok {
			return "", validation.Errors{"sort": fmt.Sprintf("cannot sort by %q", f)}
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		parts = append(parts, "created_at DESC")
	}
	parts = append(parts, "id ASC")
	return strings.Join(parts, ", "), nil
}

func translateTourError(err error, op string) error {
	var verrs validation.Errors
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrTourNameTaken
	case errors.Is(err, ErrTourNotFound), errors.Is(err, ErrInvalidGuide), errors.As(err, &verrs):
		return err
	default:
		return fmt.Errorf("failed to %s tour: %w", op, err)
	}
}
