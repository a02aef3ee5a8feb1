package services

import (
	"errors"
	"testing"
	"time"

	"corvus/internal/models"
)

func TestRegisterCreatesUserDefaultCategoryAndSession(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, 7*24*time.Hour)

	user, token, err := auth.Register("alice@example.com", "secret123", "Alice")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("user has no id")
	}
	if len(token) != 43 {
		t.Errorf("session token length = %d, want 43", len(token))
	}
	if user.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}

	var categories []models.Category
	if err := db.Where("user_id = ?", user.ID).Find(&categories).Error; err != nil {
		t.Fatal(err)
	}
	if len(categories) != 1 {
		t.Fatalf("default categories = %d, want 1", len(categories))
	}

	got, err := auth.ValidateSession(token)
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Errorf("ValidateSession returned %+v, want user %d", got, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, time.Hour)

	if _, _, err := auth.Register("bob@example.com", "secret123", "Bob"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, _, err := auth.Register("Bob@Example.com", "other456", "Bob Again")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second Register error = %v, want ErrEmailTaken", err)
	}

	var users, categories int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Category{}).Count(&categories)
	if users != 1 {
		t.Errorf("user rows = %d, want 1", users)
	}
	if categories != 1 {
		t.Errorf("category rows = %d, want 1 (no default category for the failed attempt)", categories)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, time.Hour)

	if _, _, err := auth.Register("carol@example.com", "correct horse", "Carol"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := auth.Login("carol@example.com", "battery staple"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := auth.Login("nobody@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}

	user, token, err := auth.Login("carol@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "carol@example.com" || token == "" {
		t.Errorf("Login returned user %q token %q", user.Email, token)
	}
}

func TestValidateSessionExpiredAndUnknown(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, time.Hour)
	user := createTestUser(t, db, "dave@example.com")

	expired := models.Session{ID: "expired-session-token", UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute)}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatal(err)
	}

	for _, token := range []string{"expired-session-token", "never-issued", ""} {
		got, err := auth.ValidateSession(token)
		if err != nil {
			t.Fatalf("ValidateSession(%q): %v", token, err)
		}
		if got != nil {
			t.Errorf("ValidateSession(%q) = %+v, want nil", token, got)
		}
	}
}

func TestDeleteSessionIdempotent(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, time.Hour)
	user := createTestUser(t, db, "erin@example.com")

	token, err := auth.CreateSession(user.ID)
	if err != nil {
		t.Fatal(err)
	}

	if err := auth.DeleteSession(token); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err := auth.DeleteSession(token); err != nil {
		t.Fatalf("second DeleteSession: %v", err)
	}
	if got, _ := auth.ValidateSession(token); got != nil {
		t.Error("session still validates after deletion")
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, time.Hour)
	user := createTestUser(t, db, "frank@example.com")

	live, err := auth.CreateSession(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	for i, id := range []string{"stale-1", "stale-2"} {
		stale := models.Session{ID: id, UserID: user.ID, ExpiresAt: time.Now().Add(-time.Duration(i+1) * time.Hour)}
		if err := db.Create(&stale).Error; err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := auth.CleanupExpiredSessions()
	if err != nil {
		t.Fatalf("CleanupExpiredSessions: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if got, _ := auth.ValidateSession(live); got == nil {
		t.Error("live session was swept")
	}
}

func TestGenerateSessionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateSessionID()
		if err != nil {
			t.Fatal(err)
		}
		if len(token) != 43 {
			t.Fatalf("token length = %d, want 43", len(token))
		}
		if seen[token] {
			t.Fatal("duplicate session token generated")
		}
		seen[token] = true
	}
}
