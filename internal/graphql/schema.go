package graphql

import (
	"errors"
	"log/slog"

	"corvus/internal/config"
	"corvus/internal/services"
	gql "github.com/graphql-go/graphql"
)

var errUnauthenticated = errors.New("UNAUTHENTICATED")

type resolver struct {
	cfg      *config.Config
	auth     *services.AuthService
	wishlist *services.WishlistService
}

func newSchema(r *resolver) (gql.Schema, error) {
	userType := gql.NewObject(gql.ObjectConfig{
		Name: "User",
		Fields: gql.Fields{
			"id":    &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"name":  &gql.Field{Type: gql.NewNonNull(gql.String)},
			"email": &gql.Field{Type: gql.NewNonNull(gql.String)},
		},
	})

	categoryType := gql.NewObject(gql.ObjectConfig{
		Name: "Category",
		Fields: gql.Fields{
			"id":        &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"userId":    &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"name":      &gql.Field{Type: gql.NewNonNull(gql.String)},
			"color":     &gql.Field{Type: gql.String},
			"createdAt": &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
			"updatedAt": &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
		},
	})

	linkType := gql.NewObject(gql.ObjectConfig{
		Name: "ItemLink",
		Fields: gql.Fields{
			"id":          &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"itemId":      &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"url":         &gql.Field{Type: gql.NewNonNull(gql.String)},
			"description": &gql.Field{Type: gql.String},
			"isPrimary":   &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
			"createdAt":   &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
			"updatedAt":   &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
		},
	})

	itemType := gql.NewObject(gql.ObjectConfig{
		Name: "Item",
		Fields: gql.Fields{
			"id":          &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"userId":      &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"categoryId":  &gql.Field{Type: gql.ID},
			"title":       &gql.Field{Type: gql.NewNonNull(gql.String)},
			"description": &gql.Field{Type: gql.String},
			"favicon":     &gql.Field{Type: gql.String},
			"links":       &gql.Field{Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(linkType)))},
			"createdAt":   &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
			"updatedAt":   &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
		},
	})

	paginationType := gql.NewObject(gql.ObjectConfig{
		Name: "Pagination",
		Fields: gql.Fields{
			"totalItems":  &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"page":        &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"pageSize":    &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"totalPages":  &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"hasNext":     &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
			"hasPrevious": &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
		},
	})

	wishlistType := gql.NewObject(gql.ObjectConfig{
		Name: "WishlistData",
		Fields: gql.Fields{
			"categories": &gql.Field{Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(categoryType)))},
			"items":      &gql.Field{Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(itemType)))},
			"pagination": &gql.Field{Type: gql.NewNonNull(paginationType)},
		},
	})

	batchResultType := gql.NewObject(gql.ObjectConfig{
		Name: "BatchResult",
		Fields: gql.Fields{
			"processedCount": &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"failedCount":    &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"errors":         &gql.Field{Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(gql.String)))},
		},
	})

	authPayloadType := gql.NewObject(gql.ObjectConfig{
		Name: "AuthPayload",
		Fields: gql.Fields{
			"success": &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
			"message": &gql.Field{Type: gql.String},
			"user":    &gql.Field{Type: userType},
		},
	})

	sortByEnum := gql.NewEnum(gql.EnumConfig{
		Name: "ItemSortBy",
		Values: gql.EnumValueConfigMap{
			"CREATED_AT": &gql.EnumValueConfig{Value: "created_at"},
			"UPDATED_AT": &gql.EnumValueConfig{Value: "updated_at"},
			"TITLE":      &gql.EnumValueConfig{Value: "title"},
			"NAME":       &gql.EnumValueConfig{Value: "name"},
		},
	})

	sortDirEnum := gql.NewEnum(gql.EnumConfig{
		Name: "SortDirection",
		Values: gql.EnumValueConfigMap{
			"ASC":  &gql.EnumValueConfig{Value: "asc"},
			"DESC": &gql.EnumValueConfig{Value: "desc"},
		},
	})

	filterInput := gql.NewInputObject(gql.InputObjectConfig{
		Name: "WishlistFilterInput",
		Fields: gql.InputObjectConfigFieldMap{
			"categoryId": &gql.InputObjectFieldConfig{Type: gql.ID},
			"search":     &gql.InputObjectFieldConfig{Type: gql.String},
			"sortBy":     &gql.InputObjectFieldConfig{Type: sortByEnum},
			"sortDir":    &gql.InputObjectFieldConfig{Type: sortDirEnum},
		},
	})

	paginationInput := gql.NewInputObject(gql.InputObjectConfig{
		Name: "PaginationInput",
		Fields: gql.InputObjectConfigFieldMap{
			"page":     &gql.InputObjectFieldConfig{Type: gql.Int},
			"pageSize": &gql.InputObjectFieldConfig{Type: gql.Int},
		},
	})

	batchDeleteInput := gql.NewInputObject(gql.InputObjectConfig{
		Name: "BatchDeleteInput",
		Fields: gql.InputObjectConfigFieldMap{
			"itemIds": &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(gql.ID)))},
		},
	})

	batchMoveInput := gql.NewInputObject(gql.InputObjectConfig{
		Name: "BatchMoveInput",
		Fields: gql.InputObjectConfigFieldMap{
			"itemIds":    &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(gql.ID)))},
			"categoryId": &gql.InputObjectFieldConfig{Type: gql.ID},
		},
	})

	queryType := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"me": &gql.Field{
				Type:    userType,
				Resolve: r.resolveMe,
			},
			"categories": &gql.Field{
				Type:    gql.NewNonNull(gql.NewList(gql.NewNonNull(categoryType))),
				Resolve: r.resolveCategories,
			},
			"wishlist": &gql.Field{
				Type: gql.NewNonNull(wishlistType),
				Args: gql.FieldConfigArgument{
					"filter":     &gql.ArgumentConfig{Type: filterInput},
					"pagination": &gql.ArgumentConfig{Type: paginationInput},
				},
				Resolve: r.resolveWishlist,
			},
			"item": &gql.Field{
				Type: itemType,
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
				},
				Resolve: r.resolveItem,
			},
		},
	})

	mutationType := gql.NewObject(gql.ObjectConfig{
		Name: "Mutation",
		Fields: gql.Fields{
			"register": &gql.Field{
				Type: gql.NewNonNull(authPayloadType),
				Args: gql.FieldConfigArgument{
					"email":    &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"password": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"name":     &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: r.resolveRegister,
			},
			"login": &gql.Field{
				Type: gql.NewNonNull(authPayloadType),
				Args: gql.FieldConfigArgument{
					"email":    &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"password": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: r.resolveLogin,
			},
			"logout": &gql.Field{
				Type:    gql.NewNonNull(gql.Boolean),
				Resolve: r.resolveLogout,
			},
			"createCategory": &gql.Field{
				Type: gql.NewNonNull(categoryType),
				Args: gql.FieldConfigArgument{
					"name":  &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"color": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: r.resolveCreateCategory,
			},
			"updateCategory": &gql.Field{
				Type: categoryType,
				Args: gql.FieldConfigArgument{
					"id":    &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
					"name":  &gql.ArgumentConfig{Type: gql.String},
					"color": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: r.resolveUpdateCategory,
			},
			"deleteCategory": &gql.Field{
				Type: gql.NewNonNull(gql.Boolean),
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
				},
				Resolve: r.resolveDeleteCategory,
			},
			"createItem": &gql.Field{
				Type: gql.NewNonNull(itemType),
				Args: gql.FieldConfigArgument{
					"title":           &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"categoryId":      &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
					"description":     &gql.ArgumentConfig{Type: gql.String},
					"favicon":         &gql.ArgumentConfig{Type: gql.String},
					"url":             &gql.ArgumentConfig{Type: gql.String},
					"linkDescription": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: r.resolveCreateItem,
			},
			"updateItem": &gql.Field{
				Type: itemType,
				Args: gql.FieldConfigArgument{
					"id":          &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
					"title":       &gql.ArgumentConfig{Type: gql.String},
					"categoryId":  &gql.ArgumentConfig{Type: gql.ID},
					"description": &gql.ArgumentConfig{Type: gql.String},
					"favicon":     &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: r.resolveUpdateItem,
			},
			"deleteItem": &gql.Field{
				Type: gql.NewNonNull(gql.Boolean),
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
				},
				Resolve: r.resolveDeleteItem,
			},
			"addItemLink": &gql.Field{
				Type: gql.NewNonNull(linkType),
				Args: gql.FieldConfigArgument{
					"itemId":      &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
					"url":         &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"description": &gql.ArgumentConfig{Type: gql.String},
					"isPrimary":   &gql.ArgumentConfig{Type: gql.Boolean},
				},
				Resolve: r.resolveAddItemLink,
			},
			"updateItemLink": &gql.Field{
				Type: linkType,
				Args: gql.FieldConfigArgument{
					"linkId":      &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
					"url":         &gql.ArgumentConfig{Type: gql.String},
					"description": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: r.resolveUpdateItemLink,
			},
			"deleteItemLink": &gql.Field{
				Type: gql.NewNonNull(gql.Boolean),
				Args: gql.FieldConfigArgument{
					"linkId": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
				},
				Resolve: r.resolveDeleteItemLink,
			},
			"setPrimaryLink": &gql.Field{
				Type: gql.NewNonNull(linkType),
				Args: gql.FieldConfigArgument{
					"itemId": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
					"linkId": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
				},
				Resolve: r.resolveSetPrimaryLink,
			},
			"batchDeleteItems": &gql.Field{
				Type: gql.NewNonNull(batchResultType),
				Args: gql.FieldConfigArgument{
					"input": &gql.ArgumentConfig{Type: gql.NewNonNull(batchDeleteInput)},
				},
				Resolve: r.resolveBatchDeleteItems,
			},
			"batchMoveItems": &gql.Field{
				Type: gql.NewNonNull(batchResultType),
				Args: gql.FieldConfigArgument{
					"input": &gql.ArgumentConfig{Type: gql.NewNonNull(batchMoveInput)},
				},
				Resolve: r.resolveBatchMoveItems,
			},
		},
	})

	return gql.NewSchema(gql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// internalError logs the real error and returns the generic message exposed
// to the client.
func internalError(action string, err error) error {
	slog.Error(action+" failed", "error", err)
	return errors.New("Failed to " + action)
}
