package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against when the email is unknown.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	tokens *TokenService
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config, tokens *TokenService) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		tokens: tokens,
		now:    time.Now,
	}
}

func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	if s.cfg.IsAdminEmail(req.Email) {
		role = models.RoleAdmin
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Photo:    req.Photo,
		Password: string(hash),
		Role:     role,
	}
	if user.Photo == "" {
		user.Photo = "default.jpg"
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResult{Token: token, User: &user}, nil
}

// Login never tells apart an unknown email from a wrong password.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	// The only read that selects the password hash.
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Same bcrypt work as a wrong password.
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(req.Password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return &dto.AuthResult{Token: token, User: &user}, nil
}

// Authenticate resolves a verified token identity to a live user and rejects
// tokens issued before the user's last password change.
func (s *AuthService) Authenticate(ctx context.Context, id *Identity) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Scopes(models.WithoutPassword).First(&user, "id = ?", id.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.ChangedPasswordAfter(id.IssuedAt) {
		return nil, ErrPasswordChanged
	}
	return &user, nil
}

// UpdatePassword replaces the password of userID and returns a fresh token.
// Tokens issued before the change stop working.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, req *dto.UpdatePasswordRequest) (*dto.AuthResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.PasswordCurrent)); err != nil {
		return nil, ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Millisecond precision, matching the iatMs claim.
	changedAt := time.UnixMilli(s.now().UnixMilli())
	if err := db.Model(&user).Updates(map[string]interface{}{
		"password":            string(hash),
		"password_changed_at": changedAt,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	// Tokens issued up to and including changedAt are revoked, so the new
	// one is dated just after it.
	token, err := s.tokens.issueAt(user.ID, changedAt.Add(time.Millisecond))
	if err != nil {
		return nil, err
	}
	user.Password = ""
	user.PasswordChangedAt = &changedAt
	return &dto.AuthResult{Token: token, User: &user}, nil
}

func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Scopes(models.WithoutPassword).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
