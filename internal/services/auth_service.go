package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"corvus/internal/metrics"
	"corvus/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// defaultCategoryName is the category every new user starts with, so the
// "at least one category" invariant holds from registration onward.
const defaultCategoryName = "Wishlist"

type AuthService struct {
	db         *gorm.DB
	sessionTTL time.Duration
}

func NewAuthService(db *gorm.DB, sessionTTL time.Duration) *AuthService {
	return &AuthService{db: db, sessionTTL: sessionTTL}
}

// Register creates a user with a hashed credential plus their default
// category, then opens a session. Duplicate emails fail with ErrEmailTaken.
func (s *AuthService) Register(email, password, name string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		return tx.Create(&models.Category{
			ID:     uuid.NewString(),
			UserID: user.ID,
			Name:   defaultCategoryName,
		}).Error
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.CreateSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies the credential and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.CreateSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GenerateSessionID returns a URL-safe token drawn from a 256-bit space
// (43 characters, base64url without padding).
func GenerateSessionID() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// CreateSession persists a session expiring after the configured TTL.
func (s *AuthService) CreateSession(userID uint) (string, error) {
	token, err := GenerateSessionID()
	if err != nil {
		return "", err
	}

	session := models.Session{
		ID:        token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	metrics.SessionsCreated.Inc()
	return token, nil
}

// ValidateSession resolves the session's user in a single expiry-filtered
// lookup. Missing and expired sessions both return (nil, nil).
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	var user models.User
	err := s.db.Table("sessions").
		Select("users.*").
		Joins("JOIN users ON users.id = sessions.user_id").
		Where("sessions.id = ? AND sessions.expires_at > ?", sessionID, time.Now()).
		Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

// DeleteSession removes a session. Deleting an unknown session is not an error.
func (s *AuthService) DeleteSession(sessionID string) error {
	return s.db.Where("id = ?", sessionID).Delete(&models.Session{}).Error
}

// CleanupExpiredSessions removes all sessions past their expiry.
func (s *AuthService) CleanupExpiredSessions() (int64, error) {
	result := s.db.Where("expires_at <= ?", time.Now()).Delete(&models.Session{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		metrics.SessionsExpiredSwept.Add(float64(result.RowsAffected))
	}
	return result.RowsAffected, nil
}

// StartSweep runs an hourly goroutine that removes expired sessions.
func (s *AuthService) StartSweep(done chan struct{}) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := s.CleanupExpiredSessions()
				if err != nil {
					slog.Error("session sweep failed", "error", err)
				} else if deleted > 0 {
					slog.Info("session sweep completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}
