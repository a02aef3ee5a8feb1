package handlers

import (
	"errors"
	"log/slog"

	"corvus/internal/dto"
	"corvus/internal/middleware"
	"corvus/internal/services"
	"github.com/gofiber/fiber/v2"
)

type LinkHandler struct {
	wishlistService *services.WishlistService
}

func NewLinkHandler(wishlistService *services.WishlistService) *LinkHandler {
	return &LinkHandler{wishlistService: wishlistService}
}

// List handles GET /api/wishlist/items/:itemId/links.
func (h *LinkHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	itemID := c.Params("itemId")

	links, err := h.wishlistService.GetItemLinks(user.ID, itemID)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Item not found",
			})
		}
		slog.Error("link listing failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch links",
		})
	}

	return c.JSON(fiber.Map{"links": dto.NewLinkResponses(links)})
}

// Create handles POST /api/wishlist/items/:itemId/links.
func (h *LinkHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	itemID := c.Params("itemId")

	var req dto.CreateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "URL is required",
		})
	}

	link, err := h.wishlistService.CreateItemLink(user.ID, services.CreateLinkParams{
		ItemID:      itemID,
		URL:         req.URL,
		Description: req.Description,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Item not found",
			})
		}
		slog.Error("link creation failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create link",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewLinkResponse(link))
}

// Update handles PATCH /api/wishlist/items/:itemId/links/:linkId.
func (h *LinkHandler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	linkID := c.Params("linkId")

	var req dto.UpdateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	link, err := h.wishlistService.UpdateItemLink(user.ID, linkID, services.UpdateLinkParams{
		URL:         req.URL,
		Description: req.Description,
	})
	if err != nil {
		slog.Error("link update failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update link",
		})
	}
	if link == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Link not found",
		})
	}

	return c.JSON(dto.NewLinkResponse(link))
}

// Delete handles DELETE /api/wishlist/items/:itemId/links/:linkId. Unlike
// item deletion, a missing link is an error.
func (h *LinkHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	linkID := c.Params("linkId")

	if err := h.wishlistService.DeleteItemLink(user.ID, linkID); err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Link not found",
			})
		}
		slog.Error("link deletion failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete link",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// SetPrimary handles POST /api/wishlist/items/:itemId/links/:linkId/primary.
func (h *LinkHandler) SetPrimary(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	itemID := c.Params("itemId")
	linkID := c.Params("linkId")

	link, err := h.wishlistService.SetPrimaryLink(user.ID, itemID, linkID)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Item not found",
			})
		}
		if errors.Is(err, services.ErrLinkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Link not found",
			})
		}
		slog.Error("primary link update failed", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to set primary link",
		})
	}

	return c.JSON(dto.NewLinkResponse(link))
}
