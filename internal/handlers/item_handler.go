package handlers

import (
	"log/slog"

	"corvus/internal/dto"
	"corvus/internal/middleware"
	"corvus/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	wishlistService *services.WishlistService
}

func NewItemHandler(wishlistService *services.WishlistService) *ItemHandler {
	return &ItemHandler{wishlistService: wishlistService}
}

// GetWishlist handles GET /api/wishlist - the composed dashboard read.
func (h *ItemHandler) GetWishlist(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	filter, page, pageSize := parseItemFilter(c)

	data, err := h.wishlistService.GetUserWishlistData(user.ID, filter)
	if err != nil {
		slog.Error("wishlist fetch failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch wishlist",
		})
	}

	return c.JSON(dto.WishlistResponse{
		Categories: dto.NewCategoryResponses(data.Categories),
		Items:      dto.NewItemResponses(data.Items),
		Pagination: dto.BuildPagination(data.Total, page, pageSize),
	})
}

// ListItems handles GET /api/wishlist/items.
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	filter, page, pageSize := parseItemFilter(c)

	items, err := h.wishlistService.GetUserItems(user.ID, filter)
	if err != nil {
		slog.Error("item listing failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch items",
		})
	}

	total, err := h.wishlistService.GetUserItemsCount(user.ID, filter)
	if err != nil {
		slog.Error("item count failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch items",
		})
	}

	return c.JSON(dto.ItemsResponse{
		Items:      dto.NewItemResponses(items),
		Pagination: dto.BuildPagination(total, page, pageSize),
	})
}

// CreateItem handles POST /api/wishlist/items - optionally creating an inline
// primary link when a URL is supplied (the extension's save flow).
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Title == "" || req.CategoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Title and category are required",
		})
	}

	item, err := h.wishlistService.CreateItem(services.CreateItemParams{
		UserID:          user.ID,
		CategoryID:      &req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		Favicon:         req.Favicon,
		URL:             req.URL,
		LinkDescription: req.LinkDescription,
	})
	if err != nil {
		slog.Error("item creation failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create item",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewItemResponse(item))
}

// UpdateItem handles PUT /api/wishlist/items/:id.
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	itemID := c.Params("id")

	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	item, err := h.wishlistService.UpdateItem(itemID, user.ID, services.UpdateItemParams{
		Title:       req.Title,
		Description: req.Description,
		Favicon:     req.Favicon,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		slog.Error("item update failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update item",
		})
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Item not found",
		})
	}

	return c.JSON(dto.NewItemResponse(item))
}

// DeleteItem handles DELETE /api/wishlist/items/:id. Deleting an id that no
// longer exists still succeeds.
func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	itemID := c.Params("id")

	if err := h.wishlistService.DeleteItem(itemID, user.ID); err != nil {
		slog.Error("item deletion failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete item",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
