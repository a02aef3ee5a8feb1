package handlers

import (
	"errors"
	"log/slog"

	"corvus/internal/dto"
	"corvus/internal/middleware"
	"corvus/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	wishlistService *services.WishlistService
}

func NewCategoryHandler(wishlistService *services.WishlistService) *CategoryHandler {
	return &CategoryHandler{wishlistService: wishlistService}
}

// Create handles POST /api/wishlist/categories.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Name is required",
		})
	}

	category, err := h.wishlistService.CreateCategory(user.ID, req.Name, req.Color)
	if err != nil {
		slog.Error("category creation failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewCategoryResponse(category))
}

// Update handles PATCH /api/wishlist/categories/:id.
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	categoryID := c.Params("id")

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	category, err := h.wishlistService.UpdateCategory(categoryID, user.ID, req.Name, req.Color)
	if err != nil {
		slog.Error("category update failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update category",
		})
	}
	if category == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Category not found",
		})
	}

	return c.JSON(dto.NewCategoryResponse(category))
}

// Delete handles DELETE /api/wishlist/categories/:id - items in the deleted
// category are reassigned, never orphaned.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	categoryID := c.Params("id")

	if err := h.wishlistService.DeleteCategory(categoryID, user.ID); err != nil {
		if errors.Is(err, services.ErrLastCategory) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Cannot delete the last category",
			})
		}
		if errors.Is(err, services.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Category not found",
			})
		}
		slog.Error("category deletion failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete category",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
