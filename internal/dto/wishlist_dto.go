package dto

import (
	"math"
	"time"

	"corvus/internal/models"
	"corvus/internal/services"
)

// External contract is camelCase; internal records are snake_case GORM
// models. The mapping below is total: every internal field appears renamed.

type CategoryResponse struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"userId"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LinkResponse struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"itemId"`
	URL         string    `json:"url"`
	Description *string   `json:"description"`
	IsPrimary   bool      `json:"isPrimary"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ItemResponse struct {
	ID          string         `json:"id"`
	UserID      uint           `json:"userId"`
	CategoryID  *string        `json:"categoryId"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Favicon     *string        `json:"favicon"`
	Links       []LinkResponse `json:"links"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	Page        int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

type WishlistResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Items      []ItemResponse     `json:"items"`
	Pagination Pagination         `json:"pagination"`
}

type ItemsResponse struct {
	Items      []ItemResponse `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

type BatchResultResponse struct {
	ProcessedCount int      `json:"processedCount"`
	FailedCount    int      `json:"failedCount"`
	Errors         []string `json:"errors"`
}

// --- Requests ---

type CreateCategoryRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type CreateItemRequest struct {
	Title           string  `json:"title"`
	CategoryID      string  `json:"categoryId"`
	Description     *string `json:"description"`
	Favicon         *string `json:"favicon"`
	URL             *string `json:"url"`
	LinkDescription *string `json:"linkDescription"`
}

type UpdateItemRequest struct {
	Title       *string `json:"title"`
	CategoryID  *string `json:"categoryId"`
	Description *string `json:"description"`
	Favicon     *string `json:"favicon"`
}

type CreateLinkRequest struct {
	URL         string  `json:"url"`
	Description *string `json:"description"`
	IsPrimary   bool    `json:"isPrimary"`
}

type UpdateLinkRequest struct {
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

// --- Mapping ---

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCategoryResponses(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = NewCategoryResponse(&categories[i])
	}
	return out
}

func NewLinkResponse(l *models.ItemLink) LinkResponse {
	return LinkResponse{
		ID:          l.ID,
		ItemID:      l.ItemID,
		URL:         l.URL,
		Description: l.Description,
		IsPrimary:   l.IsPrimary,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func NewLinkResponses(links []models.ItemLink) []LinkResponse {
	out := make([]LinkResponse, len(links))
	for i := range links {
		out[i] = NewLinkResponse(&links[i])
	}
	return out
}

func NewItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		UserID:      item.UserID,
		CategoryID:  item.CategoryID,
		Title:       item.Title,
		Description: item.Description,
		Favicon:     item.Favicon,
		Links:       NewLinkResponses(item.Links),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func NewItemResponses(items []models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = NewItemResponse(&items[i])
	}
	return out
}

func NewBatchResultResponse(r *services.BatchResult) BatchResultResponse {
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return BatchResultResponse{
		ProcessedCount: r.Processed,
		FailedCount:    r.Failed,
		Errors:         errs,
	}
}

// NormalizePagination applies the boundary defaults shared by the REST and
// GraphQL surfaces: page falls back to 1, pageSize falls back to 10 and is
// clamped to 50 regardless of the request.
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// BuildPagination computes page metadata. A zero page size yields zero total
// pages rather than dividing by zero.
func BuildPagination(totalItems int64, page, pageSize int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}
	return Pagination{
		TotalItems:  totalItems,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		HasNext:     int64(page*pageSize) < totalItems,
		HasPrevious: page > 1,
	}
}
