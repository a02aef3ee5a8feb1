package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"corvus/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrLastCategory     = errors.New("cannot delete the last category")
	ErrCategoryNotFound = errors.New("category not found")
	ErrLinkNotFound     = errors.New("link not found")
	ErrNotAuthorized    = errors.New("not authorized")
)

type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// ItemFilter narrows and orders item listings. SortBy accepts the external
// enum spellings (CREATED_AT, UPDATED_AT, TITLE, NAME) as well as column names.
type ItemFilter struct {
	CategoryID *string
	Search     string
	SortBy     string
	SortDir    string
	Limit      int
	Offset     int
}

// WishlistData is the composed dashboard read: the user's categories, one page
// of items with their links, and the unpaged match count.
type WishlistData struct {
	Categories []models.Category
	Items      []models.Item
	Total      int64
}

// BatchResult reports partial success of a batch operation.
type BatchResult struct {
	Processed int
	Failed    int
	Errors    []string
}

// --- Categories ---

// GetUserCategories returns the user's categories ordered by creation.
func (s *WishlistService) GetUserCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&categories).Error
	return categories, err
}

func (s *WishlistService) CreateCategory(userID uint, name string, color *string) (*models.Category, error) {
	category := models.Category{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Color:  color,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory applies a partial update scoped to the owner. Returns
// (nil, nil) when no such category exists for the user.
func (s *WishlistService) UpdateCategory(categoryID string, userID uint, name, color *string) (*models.Category, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if name != nil {
		updates["name"] = *name
	}
	if color != nil {
		updates["color"] = *color
	}

	result := s.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category after reassigning its items to another of
// the user's categories. Deleting the last category fails with
// ErrLastCategory; items are never orphaned silently.
func (s *WishlistService) DeleteCategory(categoryID string, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var target models.Category
		if err := tx.Where("id = ? AND user_id = ?", categoryID, userID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastCategory
		}

		var fallback models.Category
		if err := tx.Where("user_id = ? AND id <> ?", userID, categoryID).
			Order("created_at ASC").
			First(&fallback).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Item{}).
			Where("user_id = ? AND category_id = ?", userID, categoryID).
			Updates(map[string]interface{}{
				"category_id": fallback.ID,
				"updated_at":  time.Now(),
			}).Error; err != nil {
			return fmt.Errorf("failed to reassign items: %w", err)
		}

		return tx.Delete(&target).Error
	})
}

// --- Items ---

func (s *WishlistService) itemQuery(userID uint, filter ItemFilter) *gorm.DB {
	q := s.db.Model(&models.Item{}).Where("user_id = ?", userID)
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", pattern, pattern)
	}
	return q
}

func sortClause(filter ItemFilter) string {
	column := "created_at"
	switch strings.ToLower(filter.SortBy) {
	case "updated_at":
		column = "updated_at"
	case "title", "name":
		column = "title"
	}

	dir := "DESC"
	if strings.EqualFold(filter.SortDir, "asc") {
		dir = "ASC"
	}
	return column + " " + dir
}

// GetUserItems returns one page of the user's items with links attached.
func (s *WishlistService) GetUserItems(userID uint, filter ItemFilter) ([]models.Item, error) {
	var items []models.Item
	q := s.itemQuery(userID, filter).Order(sortClause(filter))
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	if err := s.attachLinks(items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetUserItemsCount counts items matching the same filters as GetUserItems,
// independent of the page fetched.
func (s *WishlistService) GetUserItemsCount(userID uint, filter ItemFilter) (int64, error) {
	var total int64
	err := s.itemQuery(userID, filter).Count(&total).Error
	return total, err
}

// attachLinks loads links for the given items in one query, primary first.
// An empty item page issues no query at all.
func (s *WishlistService) attachLinks(items []models.Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	var links []models.ItemLink
	if err := s.db.Where("item_id IN ?", ids).
		Order("is_primary DESC, created_at ASC").
		Find(&links).Error; err != nil {
		return err
	}

	byItem := make(map[string][]models.ItemLink, len(items))
	for _, link := range links {
		byItem[link.ItemID] = append(byItem[link.ItemID], link)
	}
	for i := range items {
		items[i].Links = byItem[items[i].ID]
		if items[i].Links == nil {
			items[i].Links = []models.ItemLink{}
		}
	}
	return nil
}

// GetUserWishlistData composes the dashboard read.
func (s *WishlistService) GetUserWishlistData(userID uint, filter ItemFilter) (*WishlistData, error) {
	categories, err := s.GetUserCategories(userID)
	if err != nil {
		return nil, err
	}

	total, err := s.GetUserItemsCount(userID, filter)
	if err != nil {
		return nil, err
	}

	items, err := s.GetUserItems(userID, filter)
	if err != nil {
		return nil, err
	}

	return &WishlistData{Categories: categories, Items: items, Total: total}, nil
}

// GetUserItem fetches a single owned item with links. Returns (nil, nil)
// when absent or foreign.
func (s *WishlistService) GetUserItem(itemID string, userID uint) (*models.Item, error) {
	var item models.Item
	err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items := []models.Item{item}
	if err := s.attachLinks(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

type CreateItemParams struct {
	UserID          uint
	CategoryID      *string
	Title           string
	Description     *string
	Favicon         *string
	URL             *string
	LinkDescription *string
}

// CreateItem inserts an item, optionally with an inline primary link.
func (s *WishlistService) CreateItem(params CreateItemParams) (*models.Item, error) {
	item := models.Item{
		ID:          uuid.NewString(),
		UserID:      params.UserID,
		CategoryID:  params.CategoryID,
		Title:       params.Title,
		Description: params.Description,
		Favicon:     params.Favicon,
		Links:       []models.ItemLink{},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}

		if params.URL != nil && *params.URL != "" {
			link := models.ItemLink{
				ID:          uuid.NewString(),
				ItemID:      item.ID,
				URL:         *params.URL,
				Description: params.LinkDescription,
				IsPrimary:   true,
			}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to create item link: %w", err)
			}
			item.Links = append(item.Links, link)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type UpdateItemParams struct {
	Title       *string
	Description *string
	Favicon     *string
	CategoryID  *string
}

// UpdateItem applies a partial update scoped to the owner. Returns (nil, nil)
// when the item does not exist or is not owned by the user.
func (s *WishlistService) UpdateItem(itemID string, userID uint, params UpdateItemParams) (*models.Item, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if params.Title != nil {
		updates["title"] = *params.Title
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Favicon != nil {
		updates["favicon"] = *params.Favicon
	}
	if params.CategoryID != nil {
		updates["category_id"] = *params.CategoryID
	}

	result := s.db.Model(&models.Item{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var item models.Item
	if err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return nil, err
	}
	items := []models.Item{item}
	if err := s.attachLinks(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// DeleteItem removes an item and, by cascade, its links. Deleting a missing
// item is not an error.
func (s *WishlistService) DeleteItem(itemID string, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", itemID).Delete(&models.ItemLink{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.Item{}).Error
	})
}

// --- Links ---

// verifyItemOwnership confirms the item belongs to the user. A missing item
// and a foreign item both fail with ErrNotAuthorized, so callers cannot learn
// whether the resource exists for someone else.
func (s *WishlistService) verifyItemOwnership(tx *gorm.DB, userID uint, itemID string) error {
	var item models.Item
	if err := tx.Select("id").Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAuthorized
		}
		return err
	}
	return nil
}

// userLinkScope restricts link queries to links whose parent item belongs to
// the user.
func (s *WishlistService) userLinkScope(userID uint) *gorm.DB {
	return s.db.Model(&models.Item{}).Select("id").Where("user_id = ?", userID)
}

// GetItemLinks returns the item's links, primary first, after verifying
// ownership of the item.
func (s *WishlistService) GetItemLinks(userID uint, itemID string) ([]models.ItemLink, error) {
	if err := s.verifyItemOwnership(s.db, userID, itemID); err != nil {
		return nil, err
	}

	var links []models.ItemLink
	err := s.db.Where("item_id = ?", itemID).
		Order("is_primary DESC, created_at ASC").
		Find(&links).Error
	return links, err
}

type CreateLinkParams struct {
	ItemID      string
	URL         string
	Description *string
	IsPrimary   bool
}

// CreateItemLink adds a link to an owned item. Inserting a primary link
// demotes any existing primary in the same transaction, so at most one link
// per item is primary at every commit point.
func (s *WishlistService) CreateItemLink(userID uint, params CreateLinkParams) (*models.ItemLink, error) {
	link := models.ItemLink{
		ID:          uuid.NewString(),
		ItemID:      params.ItemID,
		URL:         params.URL,
		Description: params.Description,
		IsPrimary:   params.IsPrimary,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.verifyItemOwnership(tx, userID, params.ItemID); err != nil {
			return err
		}

		if params.IsPrimary {
			if err := tx.Model(&models.ItemLink{}).
				Where("item_id = ?", params.ItemID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}

		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

type UpdateLinkParams struct {
	URL         *string
	Description *string
}

// UpdateItemLink applies a partial update to a link the user owns through its
// item. Returns (nil, nil) when absent or foreign.
func (s *WishlistService) UpdateItemLink(userID uint, linkID string, params UpdateLinkParams) (*models.ItemLink, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if params.URL != nil {
		updates["url"] = *params.URL
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}

	result := s.db.Model(&models.ItemLink{}).
		Where("id = ? AND item_id IN (?)", linkID, s.userLinkScope(userID)).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var link models.ItemLink
	if err := s.db.Where("id = ?", linkID).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// DeleteItemLink removes a link. Unlike item deletion this is strict: a
// missing or foreign link fails with ErrNotAuthorized.
func (s *WishlistService) DeleteItemLink(userID uint, linkID string) error {
	result := s.db.Where("id = ? AND item_id IN (?)", linkID, s.userLinkScope(userID)).
		Delete(&models.ItemLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotAuthorized
	}
	return nil
}

// SetPrimaryLink promotes one link of an owned item to primary, demoting all
// others inside the same transaction.
func (s *WishlistService) SetPrimaryLink(userID uint, itemID, linkID string) (*models.ItemLink, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.verifyItemOwnership(tx, userID, itemID); err != nil {
			return err
		}

		var link models.ItemLink
		if err := tx.Select("id").Where("id = ? AND item_id = ?", linkID, itemID).First(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLinkNotFound
			}
			return err
		}

		if err := tx.Model(&models.ItemLink{}).
			Where("item_id = ?", itemID).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.ItemLink{}).
			Where("id = ?", linkID).
			Updates(map[string]interface{}{"is_primary": true, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return nil, err
	}

	var link models.ItemLink
	if err := s.db.Where("id = ?", linkID).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// --- Batch operations ---

// ownedItemIDs resolves which of the given ids belong to the user.
func (s *WishlistService) ownedItemIDs(itemIDs []string, userID uint) ([]string, error) {
	var owned []string
	err := s.db.Model(&models.Item{}).
		Where("id IN ? AND user_id = ?", itemIDs, userID).
		Pluck("id", &owned).Error
	return owned, err
}

// BatchDeleteItems deletes the owned subset of the given ids in one
// operation. Empty input returns immediately without touching the store.
func (s *WishlistService) BatchDeleteItems(itemIDs []string, userID uint) (*BatchResult, error) {
	if len(itemIDs) == 0 {
		return &BatchResult{Errors: []string{}}, nil
	}

	owned, err := s.ownedItemIDs(itemIDs, userID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return &BatchResult{
			Failed: len(itemIDs),
			Errors: []string{"No valid items to delete"},
		}, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id IN ?", owned).Delete(&models.ItemLink{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ? AND user_id = ?", owned, userID).Delete(&models.Item{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete items: %w", err)
	}

	result := &BatchResult{
		Processed: len(owned),
		Failed:    len(itemIDs) - len(owned),
		Errors:    []string{},
	}
	if result.Failed > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("%d items not found or unauthorized", result.Failed))
	}
	return result, nil
}

// BatchMoveItems moves the owned subset of the given ids to a category, or to
// uncategorized when categoryID is nil. A non-nil category is validated as
// owned by the user before any item is touched.
func (s *WishlistService) BatchMoveItems(itemIDs []string, userID uint, categoryID *string) (*BatchResult, error) {
	if len(itemIDs) == 0 {
		return &BatchResult{Errors: []string{}}, nil
	}

	if categoryID != nil {
		var category models.Category
		err := s.db.Select("id").Where("id = ? AND user_id = ?", *categoryID, userID).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &BatchResult{
				Failed: len(itemIDs),
				Errors: []string{"Category not found or unauthorized"},
			}, nil
		}
		if err != nil {
			return nil, err
		}
	}

	owned, err := s.ownedItemIDs(itemIDs, userID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return &BatchResult{
			Failed: len(itemIDs),
			Errors: []string{"No valid items to move"},
		}, nil
	}

	if err := s.db.Model(&models.Item{}).
		Where("id IN ? AND user_id = ?", owned, userID).
		Updates(map[string]interface{}{
			"category_id": categoryID,
			"updated_at":  time.Now(),
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to move items: %w", err)
	}

	result := &BatchResult{
		Processed: len(owned),
		Failed:    len(itemIDs) - len(owned),
		Errors:    []string{},
	}
	if result.Failed > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("%d items not found or unauthorized", result.Failed))
	}
	return result, nil
}
