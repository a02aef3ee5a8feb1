package graphql

import (
	"errors"

	"corvus/internal/config"
	"corvus/internal/dto"
	"corvus/internal/middleware"
	"corvus/internal/models"
	"corvus/internal/services"
	gql "github.com/graphql-go/graphql"
)

func requireUser(p gql.ResolveParams) (*models.User, error) {
	if user := currentUser(p); user != nil {
		return user, nil
	}
	return nil, errUnauthenticated
}

func stringArg(p gql.ResolveParams, name string) string {
	if v, ok := p.Args[name].(string); ok {
		return v
	}
	return ""
}

func stringPtrArg(p gql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok {
		return &v
	}
	return nil
}

func boolArg(p gql.ResolveParams, name string) bool {
	if v, ok := p.Args[name].(bool); ok {
		return v
	}
	return false
}

func inputMap(p gql.ResolveParams, name string) map[string]interface{} {
	if m, ok := p.Args[name].(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func inputString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func inputStringPtr(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func inputInt(m map[string]interface{}, key string, fallback int) int {
	if v, ok := m[key].(int); ok {
		return v
	}
	return fallback
}

func inputIDs(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids
}

// --- Queries ---

func (r *resolver) resolveMe(p gql.ResolveParams) (interface{}, error) {
	user := currentUser(p)
	if user == nil {
		return nil, nil
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (r *resolver) resolveCategories(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	categories, err := r.wishlist.GetUserCategories(user.ID)
	if err != nil {
		return nil, internalError("fetch categories", err)
	}
	return dto.NewCategoryResponses(categories), nil
}

func (r *resolver) resolveWishlist(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	filterIn := inputMap(p, "filter")
	pageIn := inputMap(p, "pagination")
	page, pageSize := dto.NormalizePagination(
		inputInt(pageIn, "page", 1),
		inputInt(pageIn, "pageSize", dto.DefaultPageSize),
	)

	filter := services.ItemFilter{
		CategoryID: inputStringPtr(filterIn, "categoryId"),
		Search:     inputString(filterIn, "search"),
		SortBy:     inputString(filterIn, "sortBy"),
		SortDir:    inputString(filterIn, "sortDir"),
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	}

	data, err := r.wishlist.GetUserWishlistData(user.ID, filter)
	if err != nil {
		return nil, internalError("fetch wishlist", err)
	}

	return dto.WishlistResponse{
		Categories: dto.NewCategoryResponses(data.Categories),
		Items:      dto.NewItemResponses(data.Items),
		Pagination: dto.BuildPagination(data.Total, page, pageSize),
	}, nil
}

func (r *resolver) resolveItem(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	item, err := r.wishlist.GetUserItem(stringArg(p, "id"), user.ID)
	if err != nil {
		return nil, internalError("fetch item", err)
	}
	if item == nil {
		return nil, nil
	}
	return dto.NewItemResponse(item), nil
}

// --- Auth mutations ---

func (r *resolver) resolveRegister(p gql.ResolveParams) (interface{}, error) {
	email := stringArg(p, "email")
	password := stringArg(p, "password")
	name := stringArg(p, "name")
	if email == "" || password == "" || name == "" {
		return nil, errors.New("Email, password and name are required")
	}

	user, token, err := r.auth.Register(email, password, name)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			msg := "Email already registered"
			return dto.AuthPayload{Success: false, Message: &msg}, nil
		}
		return nil, internalError("register", err)
	}

	if c := fiberCtx(p); c != nil {
		middleware.SetSessionCookie(c, r.cfg, token)
	}
	resp := dto.NewUserResponse(user)
	return dto.AuthPayload{Success: true, User: &resp}, nil
}

func (r *resolver) resolveLogin(p gql.ResolveParams) (interface{}, error) {
	email := stringArg(p, "email")
	password := stringArg(p, "password")
	if email == "" || password == "" {
		return nil, errors.New("Email and password are required")
	}

	user, token, err := r.auth.Login(email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			msg := "Invalid email or password"
			return dto.AuthPayload{Success: false, Message: &msg}, nil
		}
		return nil, internalError("login", err)
	}

	if c := fiberCtx(p); c != nil {
		middleware.SetSessionCookie(c, r.cfg, token)
	}
	resp := dto.NewUserResponse(user)
	return dto.AuthPayload{Success: true, User: &resp}, nil
}

func (r *resolver) resolveLogout(p gql.ResolveParams) (interface{}, error) {
	c := fiberCtx(p)
	if c == nil {
		return true, nil
	}
	if token := c.Cookies(config.SessionCookieName); token != "" {
		if err := r.auth.DeleteSession(token); err != nil {
			// Cookie is cleared regardless; the session row expires on its own.
			_ = internalError("logout", err)
		}
	}
	middleware.ClearSessionCookie(c, r.cfg)
	return true, nil
}

// --- Category mutations ---

func (r *resolver) resolveCreateCategory(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	name := stringArg(p, "name")
	if name == "" {
		return nil, errors.New("Name is required")
	}

	category, err := r.wishlist.CreateCategory(user.ID, name, stringPtrArg(p, "color"))
	if err != nil {
		return nil, internalError("create category", err)
	}
	return dto.NewCategoryResponse(category), nil
}

func (r *resolver) resolveUpdateCategory(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	category, err := r.wishlist.UpdateCategory(stringArg(p, "id"), user.ID, stringPtrArg(p, "name"), stringPtrArg(p, "color"))
	if err != nil {
		return nil, internalError("update category", err)
	}
	if category == nil {
		return nil, errors.New("Category not found")
	}
	return dto.NewCategoryResponse(category), nil
}

func (r *resolver) resolveDeleteCategory(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	if err := r.wishlist.DeleteCategory(stringArg(p, "id"), user.ID); err != nil {
		if errors.Is(err, services.ErrLastCategory) {
			return nil, errors.New("Cannot delete the last category")
		}
		if errors.Is(err, services.ErrCategoryNotFound) {
			return nil, errors.New("Category not found")
		}
		return nil, internalError("delete category", err)
	}
	return true, nil
}

// --- Item mutations ---

func (r *resolver) resolveCreateItem(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	title := stringArg(p, "title")
	categoryID := stringArg(p, "categoryId")
	if title == "" || categoryID == "" {
		return nil, errors.New("Title and category are required")
	}

	item, err := r.wishlist.CreateItem(services.CreateItemParams{
		UserID:          user.ID,
		CategoryID:      &categoryID,
		Title:           title,
		Description:     stringPtrArg(p, "description"),
		Favicon:         stringPtrArg(p, "favicon"),
		URL:             stringPtrArg(p, "url"),
		LinkDescription: stringPtrArg(p, "linkDescription"),
	})
	if err != nil {
		return nil, internalError("create item", err)
	}
	return dto.NewItemResponse(item), nil
}

func (r *resolver) resolveUpdateItem(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	item, err := r.wishlist.UpdateItem(stringArg(p, "id"), user.ID, services.UpdateItemParams{
		Title:       stringPtrArg(p, "title"),
		CategoryID:  stringPtrArg(p, "categoryId"),
		Description: stringPtrArg(p, "description"),
		Favicon:     stringPtrArg(p, "favicon"),
	})
	if err != nil {
		return nil, internalError("update item", err)
	}
	if item == nil {
		return nil, errors.New("Item not found")
	}
	return dto.NewItemResponse(item), nil
}

func (r *resolver) resolveDeleteItem(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	if err := r.wishlist.DeleteItem(stringArg(p, "id"), user.ID); err != nil {
		return nil, internalError("delete item", err)
	}
	return true, nil
}

// --- Link mutations ---

func (r *resolver) resolveAddItemLink(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	url := stringArg(p, "url")
	if url == "" {
		return nil, errors.New("URL is required")
	}

	link, err := r.wishlist.CreateItemLink(user.ID, services.CreateLinkParams{
		ItemID:      stringArg(p, "itemId"),
		URL:         url,
		Description: stringPtrArg(p, "description"),
		IsPrimary:   boolArg(p, "isPrimary"),
	})
	if err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			return nil, errors.New("Item not found")
		}
		return nil, internalError("create link", err)
	}
	return dto.NewLinkResponse(link), nil
}

func (r *resolver) resolveUpdateItemLink(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	link, err := r.wishlist.UpdateItemLink(user.ID, stringArg(p, "linkId"), services.UpdateLinkParams{
		URL:         stringPtrArg(p, "url"),
		Description: stringPtrArg(p, "description"),
	})
	if err != nil {
		return nil, internalError("update link", err)
	}
	if link == nil {
		return nil, errors.New("Link not found")
	}
	return dto.NewLinkResponse(link), nil
}

func (r *resolver) resolveDeleteItemLink(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	if err := r.wishlist.DeleteItemLink(user.ID, stringArg(p, "linkId")); err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			return nil, errors.New("Link not found")
		}
		return nil, internalError("delete link", err)
	}
	return true, nil
}

func (r *resolver) resolveSetPrimaryLink(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	link, err := r.wishlist.SetPrimaryLink(user.ID, stringArg(p, "itemId"), stringArg(p, "linkId"))
	if err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			return nil, errors.New("Item not found")
		}
		if errors.Is(err, services.ErrLinkNotFound) {
			return nil, errors.New("Link not found")
		}
		return nil, internalError("set primary link", err)
	}
	return dto.NewLinkResponse(link), nil
}

// --- Batch mutations ---

func (r *resolver) resolveBatchDeleteItems(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	itemIDs := inputIDs(inputMap(p, "input"), "itemIds")
	if len(itemIDs) == 0 {
		return nil, errors.New("At least one item ID required")
	}

	result, err := r.wishlist.BatchDeleteItems(itemIDs, user.ID)
	if err != nil {
		return nil, internalError("delete items", err)
	}
	return dto.NewBatchResultResponse(result), nil
}

func (r *resolver) resolveBatchMoveItems(p gql.ResolveParams) (interface{}, error) {
	user, err := requireUser(p)
	if err != nil {
		return nil, err
	}

	input := inputMap(p, "input")
	itemIDs := inputIDs(input, "itemIds")
	if len(itemIDs) == 0 {
		return nil, errors.New("At least one item ID required")
	}

	result, err := r.wishlist.BatchMoveItems(itemIDs, user.ID, inputStringPtr(input, "categoryId"))
	if err != nil {
		return nil, internalError("move items", err)
	}
	return dto.NewBatchResultResponse(result), nil
}
