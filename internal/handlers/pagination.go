package handlers

import (
	"corvus/internal/dto"
	"corvus/internal/services"
	"github.com/gofiber/fiber/v2"
)

// parseItemFilter reads the listing query params. Non-numeric page values
// fall back to the defaults via QueryInt; pageSize is clamped to the boundary
// maximum.
func parseItemFilter(c *fiber.Ctx) (services.ItemFilter, int, int) {
	page, pageSize := dto.NormalizePagination(
		c.QueryInt("page", 1),
		c.QueryInt("pageSize", dto.DefaultPageSize),
	)

	filter := services.ItemFilter{
		Search:  c.Query("search"),
		SortBy:  c.Query("sortBy"),
		SortDir: c.Query("sortDir"),
		Limit:   pageSize,
		Offset:  (page - 1) * pageSize,
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	return filter, page, pageSize
}
