package users

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"camphub-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameRequired   = errors.New("Username is required")
	ErrInvalidEmail       = errors.New("Invalid email format")
	ErrPasswordRequired   = errors.New("Password is required")
	ErrEmailTaken         = errors.New("A user with the given email is already registered")
	ErrUsernameTaken      = errors.New("A user with the given username is already registered")
	ErrInvalidCredentials = errors.New("Password or username is incorrect")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service owns account registration and credential verification.
type Service struct {
	DB *gorm.DB
}

// RegisterInput is the registration form payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates an account with a bcrypt-hashed password. Email and
// username are unique; the raw password is never stored.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" || !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}

	var existing models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate finds the user by username and verifies the password. The same
// error covers an unknown username and a wrong password, so the response never
// reveals which half was wrong.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}
