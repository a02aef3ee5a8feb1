package services

import (
	"fmt"
	"testing"

	"corvus/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database. A single connection
// keeps GORM from silently opening a second, empty :memory: database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Category{},
		&models.Item{},
		&models.ItemLink{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "unused", Name: "Test User"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, userID uint, name string) *models.Category {
	t.Helper()
	category := &models.Category{ID: uuid.NewString(), UserID: userID, Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func createTestItem(t *testing.T, db *gorm.DB, userID uint, categoryID *string, title string) *models.Item {
	t.Helper()
	item := &models.Item{ID: uuid.NewString(), UserID: userID, CategoryID: categoryID, Title: title}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func createTestLink(t *testing.T, db *gorm.DB, itemID, url string, primary bool) *models.ItemLink {
	t.Helper()
	link := &models.ItemLink{ID: uuid.NewString(), ItemID: itemID, URL: url, IsPrimary: primary}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("create link: %v", err)
	}
	return link
}

func seedItems(t *testing.T, db *gorm.DB, userID uint, categoryID *string, n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = createTestItem(t, db, userID, categoryID, fmt.Sprintf("item %02d", i)).ID
	}
	return ids
}
