package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func signupRequest(email string) *dto.SignupRequest {
	return &dto.SignupRequest{
		Name:            "Jonas Schmedtmann",
		Email:           email,
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	}
}

func TestSignupPersistsUserAndIssuesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Signup(ctx, signupRequest("Jonas@Example.com"))
	require.NoError(t, err)

	assert.Equal(t, "jonas@example.com", res.User.Email)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.Equal(t, "default.jpg", res.User.Photo)

	id, err := env.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id.UserID)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", res.User.ID).Error)
	assert.NotEqual(t, "pass1234", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pass1234")))
}

func TestSignupAdminEmailGetsAdminRole(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.auth.Signup(context.Background(), signupRequest("admin@example.com"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, signupRequest("dup@example.com"))
	require.NoError(t, err)

	_, err = env.auth.Signup(ctx, signupRequest("DUP@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	req := signupRequest("weak@example.com")
	req.Password = "short"
	req.PasswordConfirm = "different"

	_, err := env.auth.Signup(context.Background(), req)

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs), "got %v", err)
	assert.Contains(t, verrs, "password")
	assert.Contains(t, verrs, "passwordConfirm")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "login@example.com", models.RoleUser)

	res, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Empty(t, res.User.Password)

	id, err := env.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createUser(t, "known@example.com", models.RoleUser)

	_, wrongPassword := env.auth.Login(ctx, &dto.LoginRequest{Email: "known@example.com", Password: "nope-nope"})
	_, unknownEmail := env.auth.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginUnknownEmailPaysBcryptCost(t *testing.T) {
	cost, err := bcrypt.Cost(dummyHash())
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	env := newTestEnv(t)
	_, err = env.auth.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginMissingFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, req := range []*dto.LoginRequest{
		{},
		{Email: "a@b.c"},
		{Password: "password123"},
	} {
		_, err := env.auth.Login(ctx, req)
		assert.ErrorIs(t, err, ErrMissingCredentials)
	}
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "auth@example.com", models.RoleGuide)

	got, err := env.auth.Authenticate(ctx, &Identity{UserID: user.ID, IssuedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, models.RoleGuide, got.Role)
	assert.Empty(t, got.Password, "password must not be loaded by default")
}

func TestAuthenticateDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "gone@example.com", models.RoleUser)
	require.NoError(t, env.db.Delete(user).Error)

	_, err := env.auth.Authenticate(ctx, &Identity{UserID: user.ID, IssuedAt: time.Now()})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticateRejectsTokenOlderThanPasswordChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "changed@example.com", models.RoleUser)

	changedAt := time.Now()
	require.NoError(t, env.db.Model(user).Update("password_changed_at", changedAt).Error)

	_, err := env.auth.Authenticate(ctx, &Identity{UserID: user.ID, IssuedAt: changedAt.Add(-time.Hour)})
	assert.ErrorIs(t, err, ErrPasswordChanged)

	_, err = env.auth.Authenticate(ctx, &Identity{UserID: user.ID, IssuedAt: changedAt.Add(time.Minute)})
	assert.NoError(t, err)
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "rotate@example.com", models.RoleUser)

	held, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)

	_, err = env.auth.UpdatePassword(ctx, user.ID, &dto.UpdatePasswordRequest{
		PasswordCurrent: "wrong-password",
		Password:        "newpass123",
		PasswordConfirm: "newpass123",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	res, err := env.auth.UpdatePassword(ctx, user.ID, &dto.UpdatePasswordRequest{
		PasswordCurrent: "password123",
		Password:        "newpass123",
		PasswordConfirm: "newpass123",
	})
	require.NoError(t, err)

	fresh, err := env.tokens.Verify(res.Token)
	require.NoError(t, err)
	_, err = env.auth.Authenticate(ctx, fresh)
	assert.NoError(t, err, "token issued by the change must stay valid")

	old, err := env.tokens.Verify(held)
	require.NoError(t, err)
	_, err = env.auth.Authenticate(ctx, old)
	assert.ErrorIs(t, err, ErrPasswordChanged, "token held before the change must be revoked")

	_, err = env.auth.Authenticate(ctx, &Identity{UserID: user.ID, IssuedAt: time.Now().Add(-time.Hour)})
	assert.ErrorIs(t, err, ErrPasswordChanged)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "rotate@example.com", Password: "newpass123"})
	assert.NoError(t, err)
	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "rotate@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListUsersOmitsPasswords(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "one@example.com", models.RoleUser)
	env.createUser(t, "two@example.com", models.RoleGuide)

	users, err := env.auth.ListUsers(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}
