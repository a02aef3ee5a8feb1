package dto

import (
	"reflect"
	"testing"
	"time"

	"corvus/internal/models"
	"corvus/internal/services"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{1, 10, 1, 10},
		{2, 50, 2, 50},
		{1, 51, 1, 50},
		{1, 1000, 1, 50},
	}
	for _, tt := range tests {
		page, pageSize := NormalizePagination(tt.page, tt.pageSize)
		if page != tt.wantPage || pageSize != tt.wantPageSize {
			t.Errorf("NormalizePagination(%d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.pageSize, page, pageSize, tt.wantPage, tt.wantPageSize)
		}
	}
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		page     int
		pageSize int
		want     Pagination
	}{
		{
			name: "first of three pages", total: 25, page: 1, pageSize: 10,
			want: Pagination{TotalItems: 25, Page: 1, PageSize: 10, TotalPages: 3, HasNext: true, HasPrevious: false},
		},
		{
			name: "middle page", total: 25, page: 2, pageSize: 10,
			want: Pagination{TotalItems: 25, Page: 2, PageSize: 10, TotalPages: 3, HasNext: true, HasPrevious: true},
		},
		{
			name: "last page", total: 25, page: 3, pageSize: 10,
			want: Pagination{TotalItems: 25, Page: 3, PageSize: 10, TotalPages: 3, HasNext: false, HasPrevious: true},
		},
		{
			name: "exact fit", total: 20, page: 2, pageSize: 10,
			want: Pagination{TotalItems: 20, Page: 2, PageSize: 10, TotalPages: 2, HasNext: false, HasPrevious: true},
		},
		{
			name: "empty", total: 0, page: 1, pageSize: 10,
			want: Pagination{TotalItems: 0, Page: 1, PageSize: 10, TotalPages: 0, HasNext: false, HasPrevious: false},
		},
		{
			name: "zero page size", total: 25, page: 1, pageSize: 0,
			want: Pagination{TotalItems: 25, Page: 1, PageSize: 0, TotalPages: 0, HasNext: true, HasPrevious: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPagination(tt.total, tt.page, tt.pageSize)
			if got != tt.want {
				t.Errorf("BuildPagination(%d, %d, %d) = %+v, want %+v",
					tt.total, tt.page, tt.pageSize, got, tt.want)
			}
		})
	}
}

func TestNewItemResponse(t *testing.T) {
	now := time.Now()
	categoryID := "cat-1"
	desc := "a thing"
	item := models.Item{
		ID:          "item-1",
		UserID:      7,
		CategoryID:  &categoryID,
		Title:       "Camera",
		Description: &desc,
		Links: []models.ItemLink{
			{ID: "link-1", ItemID: "item-1", URL: "https://x.example", IsPrimary: true, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	got := NewItemResponse(&item)
	want := ItemResponse{
		ID:          "item-1",
		UserID:      7,
		CategoryID:  &categoryID,
		Title:       "Camera",
		Description: &desc,
		Links: []LinkResponse{
			{ID: "link-1", ItemID: "item-1", URL: "https://x.example", IsPrimary: true, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewItemResponse = %+v, want %+v", got, want)
	}
}

func TestNewItemResponseNoLinks(t *testing.T) {
	got := NewItemResponse(&models.Item{ID: "bare", Title: "Bare"})
	if got.Links == nil {
		t.Error("Links is nil, want empty slice so JSON renders [] not null")
	}
}

func TestNewBatchResultResponse(t *testing.T) {
	got := NewBatchResultResponse(&services.BatchResult{Processed: 2, Failed: 1, Errors: []string{"1 items not found or unauthorized"}})
	if got.ProcessedCount != 2 || got.FailedCount != 1 || len(got.Errors) != 1 {
		t.Errorf("response = %+v", got)
	}

	got = NewBatchResultResponse(&services.BatchResult{})
	if got.Errors == nil {
		t.Error("Errors is nil, want empty slice so JSON renders [] not null")
	}
}
