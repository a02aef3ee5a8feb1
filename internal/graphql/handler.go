package graphql

import (
	"context"

	"corvus/internal/config"
	"corvus/internal/dto"
	"corvus/internal/middleware"
	"corvus/internal/models"
	"corvus/internal/services"
	"github.com/gofiber/fiber/v2"
	gql "github.com/graphql-go/graphql"
)

type ctxKey int

const (
	userCtxKey ctxKey = iota
	fiberCtxKey
)

// Handler serves the GraphQL surface on a single POST endpoint, sharing the
// session middleware and domain services with the REST surface.
type Handler struct {
	schema gql.Schema
}

func New(cfg *config.Config, auth *services.AuthService, wishlist *services.WishlistService) (*Handler, error) {
	r := &resolver{cfg: cfg, auth: auth, wishlist: wishlist}
	schema, err := newSchema(r)
	if err != nil {
		return nil, err
	}
	return &Handler{schema: schema}, nil
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Serve executes one GraphQL request. The resolved session user and the Fiber
// context (for cookie mutations) travel through the execution context.
func (h *Handler) Serve() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid request body",
			})
		}

		ctx := context.WithValue(c.UserContext(), fiberCtxKey, c)
		if user := middleware.CurrentUser(c); user != nil {
			ctx = context.WithValue(ctx, userCtxKey, user)
		}

		result := gql.Do(gql.Params{
			Schema:         h.schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        ctx,
		})
		return c.JSON(result)
	}
}

func currentUser(p gql.ResolveParams) *models.User {
	if user, ok := p.Context.Value(userCtxKey).(*models.User); ok {
		return user
	}
	return nil
}

func fiberCtx(p gql.ResolveParams) *fiber.Ctx {
	if c, ok := p.Context.Value(fiberCtxKey).(*fiber.Ctx); ok {
		return c
	}
	return nil
}
