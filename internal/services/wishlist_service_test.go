package services

import (
	"errors"
	"testing"
	"time"

	"corvus/internal/models"
)

func TestGetUserCategoriesScopedAndOrdered(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"Books", "Games", "Tools"} {
		category := models.Category{
			ID:        name + "-id",
			UserID:    alice.ID,
			Name:      name,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&category).Error; err != nil {
			t.Fatal(err)
		}
	}
	createTestCategory(t, db, bob.ID, "Bob's stuff")

	categories, err := svc.GetUserCategories(alice.ID)
	if err != nil {
		t.Fatalf("GetUserCategories: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("categories = %d, want 3", len(categories))
	}
	for i, want := range []string{"Books", "Games", "Tools"} {
		if categories[i].Name != want {
			t.Errorf("categories[%d] = %q, want %q (created_at ascending)", i, categories[i].Name, want)
		}
		if categories[i].UserID != alice.ID {
			t.Errorf("categories[%d] belongs to user %d", i, categories[i].UserID)
		}
	}
}

func TestDeleteLastCategoryRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "solo@example.com")
	category := createTestCategory(t, db, user.ID, "Only one")
	item := createTestItem(t, db, user.ID, &category.ID, "keepsake")

	err := svc.DeleteCategory(category.ID, user.ID)
	if !errors.Is(err, ErrLastCategory) {
		t.Fatalf("DeleteCategory error = %v, want ErrLastCategory", err)
	}

	var count int64
	db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
	if count != 1 {
		t.Error("category was deleted despite rejection")
	}
	var got models.Item
	if err := db.First(&got, "id = ?", item.ID).Error; err != nil || got.CategoryID == nil || *got.CategoryID != category.ID {
		t.Error("item changed despite rejection")
	}
}

func TestDeleteCategoryReassignsItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "mover@example.com")

	keep := models.Category{ID: "keep", UserID: user.ID, Name: "Keep", CreatedAt: time.Now().Add(-time.Hour)}
	doomed := models.Category{ID: "doomed", UserID: user.ID, Name: "Doomed", CreatedAt: time.Now()}
	for _, c := range []*models.Category{&keep, &doomed} {
		if err := db.Create(c).Error; err != nil {
			t.Fatal(err)
		}
	}
	itemIDs := seedItems(t, db, user.ID, &doomed.ID, 3)

	if err := svc.DeleteCategory(doomed.ID, user.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	var remaining int64
	db.Model(&models.Category{}).Where("id = ?", doomed.ID).Count(&remaining)
	if remaining != 0 {
		t.Error("category row still present")
	}

	var orphans int64
	db.Model(&models.Item{}).Where("user_id = ? AND category_id = ?", user.ID, doomed.ID).Count(&orphans)
	if orphans != 0 {
		t.Errorf("%d items still reference the deleted category", orphans)
	}
	var moved int64
	db.Model(&models.Item{}).Where("id IN ? AND category_id = ?", itemIDs, keep.ID).Count(&moved)
	if moved != int64(len(itemIDs)) {
		t.Errorf("moved = %d, want %d (items reassigned to the fallback category)", moved, len(itemIDs))
	}
}

func TestDeleteCategoryUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "ghost@example.com")
	createTestCategory(t, db, user.ID, "A")
	createTestCategory(t, db, user.ID, "B")

	if err := svc.DeleteCategory("no-such-category", user.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("error = %v, want ErrCategoryNotFound", err)
	}
}

func TestUpdateCategoryNotOwned(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	category := createTestCategory(t, db, owner.ID, "Private")

	name := "Hijacked"
	got, err := svc.UpdateCategory(category.ID, intruder.ID, &name, nil)
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if got != nil {
		t.Error("cross-tenant update returned a category, want nil")
	}

	var check models.Category
	db.First(&check, "id = ?", category.ID)
	if check.Name != "Private" {
		t.Error("cross-tenant update mutated the row")
	}
}

func TestGetUserItemsSearchAndSort(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "search@example.com")

	desc := "A MECHANICAL keyboard"
	for _, item := range []models.Item{
		{ID: "i1", UserID: user.ID, Title: "Espresso machine"},
		{ID: "i2", UserID: user.ID, Title: "Keyboard", Description: &desc},
		{ID: "i3", UserID: user.ID, Title: "Standing desk"},
	} {
		if err := db.Create(&item).Error; err != nil {
			t.Fatal(err)
		}
	}

	items, err := svc.GetUserItems(user.ID, ItemFilter{Search: "mechanical"})
	if err != nil {
		t.Fatalf("GetUserItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != "i2" {
		t.Errorf("search matched %d items, want description match on i2", len(items))
	}

	items, err = svc.GetUserItems(user.ID, ItemFilter{SortBy: "TITLE", SortDir: "ASC"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Espresso machine", "Keyboard", "Standing desk"}
	for i := range want {
		if items[i].Title != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Title, want[i])
		}
	}
}

func TestGetUserItemsCountMatchesFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "count@example.com")
	category := createTestCategory(t, db, user.ID, "Gifts")
	seedItems(t, db, user.ID, &category.ID, 7)
	seedItems(t, db, user.ID, nil, 4)

	filter := ItemFilter{CategoryID: &category.ID, Limit: 2}
	total, err := svc.GetUserItemsCount(user.ID, filter)
	if err != nil {
		t.Fatal(err)
	}
	if total != 7 {
		t.Errorf("count = %d, want 7 (independent of the page size)", total)
	}

	items, err := svc.GetUserItems(user.ID, filter)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("page = %d items, want 2", len(items))
	}
}

func TestGetUserWishlistDataSkipsLinksQueryWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "empty@example.com")
	createTestCategory(t, db, user.ID, "Wishlist")

	// With the links table gone, any links query would fail loudly.
	if err := db.Migrator().DropTable(&models.ItemLink{}); err != nil {
		t.Fatal(err)
	}

	data, err := svc.GetUserWishlistData(user.ID, ItemFilter{Limit: 10})
	if err != nil {
		t.Fatalf("GetUserWishlistData issued a links query for an empty page: %v", err)
	}
	if len(data.Items) != 0 || data.Total != 0 {
		t.Errorf("items = %d, total = %d, want empty", len(data.Items), data.Total)
	}
	if len(data.Categories) != 1 {
		t.Errorf("categories = %d, want 1", len(data.Categories))
	}
}

func TestGetUserWishlistDataAttachesLinksPrimaryFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "links@example.com")
	category := createTestCategory(t, db, user.ID, "Wishlist")
	item := createTestItem(t, db, user.ID, &category.ID, "camera")
	createTestLink(t, db, item.ID, "https://a.example", false)
	primary := createTestLink(t, db, item.ID, "https://b.example", true)

	data, err := svc.GetUserWishlistData(user.ID, ItemFilter{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(data.Items))
	}
	links := data.Items[0].Links
	if len(links) != 2 {
		t.Fatalf("links = %d, want 2", len(links))
	}
	if links[0].ID != primary.ID || !links[0].IsPrimary {
		t.Error("primary link is not first")
	}
}

func TestCreateItemWithInlinePrimaryLink(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "inline@example.com")
	category := createTestCategory(t, db, user.ID, "Wishlist")

	url := "https://shop.example/widget"
	item, err := svc.CreateItem(CreateItemParams{
		UserID:     user.ID,
		CategoryID: &category.ID,
		Title:      "Widget",
		URL:        &url,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if len(item.Links) != 1 || !item.Links[0].IsPrimary || item.Links[0].URL != url {
		t.Errorf("inline link = %+v, want one primary link with the given URL", item.Links)
	}
}

func TestUpdateItemNotOwned(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	owner := createTestUser(t, db, "o@example.com")
	intruder := createTestUser(t, db, "i@example.com")
	item := createTestItem(t, db, owner.ID, nil, "mine")

	title := "stolen"
	got, err := svc.UpdateItem(item.ID, intruder.ID, UpdateItemParams{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("cross-tenant item update returned a row, want nil")
	}
}

func TestDeleteItemIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "del@example.com")
	item := createTestItem(t, db, user.ID, nil, "doomed")
	createTestLink(t, db, item.ID, "https://x.example", true)

	if err := svc.DeleteItem(item.ID, user.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	// Second delete of a missing item still succeeds.
	if err := svc.DeleteItem(item.ID, user.ID); err != nil {
		t.Fatalf("repeat DeleteItem: %v", err)
	}

	var links int64
	db.Model(&models.ItemLink{}).Where("item_id = ?", item.ID).Count(&links)
	if links != 0 {
		t.Error("links survived item deletion")
	}
}

func TestGetItemLinksRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	owner := createTestUser(t, db, "owner2@example.com")
	intruder := createTestUser(t, db, "intruder2@example.com")
	item := createTestItem(t, db, owner.ID, nil, "secret")
	createTestLink(t, db, item.ID, "https://x.example", true)

	if _, err := svc.GetItemLinks(intruder.ID, item.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("foreign item error = %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.GetItemLinks(owner.ID, "no-such-item"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("missing item error = %v, want ErrNotAuthorized", err)
	}
}

func TestDeleteItemLinkStrict(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "strict@example.com")
	other := createTestUser(t, db, "other@example.com")
	item := createTestItem(t, db, other.ID, nil, "theirs")
	link := createTestLink(t, db, item.ID, "https://x.example", false)

	// Unlike item deletion, a missing or foreign link is an error.
	if err := svc.DeleteItemLink(user.ID, link.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("foreign link error = %v, want ErrNotAuthorized", err)
	}
	if err := svc.DeleteItemLink(user.ID, "no-such-link"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("missing link error = %v, want ErrNotAuthorized", err)
	}

	if err := svc.DeleteItemLink(other.ID, link.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestSetPrimaryLink(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "primary@example.com")
	item := createTestItem(t, db, user.ID, nil, "camera")
	old := createTestLink(t, db, item.ID, "https://old.example", true)
	target := createTestLink(t, db, item.ID, "https://new.example", false)
	createTestLink(t, db, item.ID, "https://third.example", false)

	link, err := svc.SetPrimaryLink(user.ID, item.ID, target.ID)
	if err != nil {
		t.Fatalf("SetPrimaryLink: %v", err)
	}
	if link.ID != target.ID || !link.IsPrimary {
		t.Errorf("promoted link = %+v", link)
	}

	var primaries []models.ItemLink
	db.Where("item_id = ? AND is_primary = ?", item.ID, true).Find(&primaries)
	if len(primaries) != 1 || primaries[0].ID != target.ID {
		t.Errorf("primary links = %d (%v), want exactly the promoted one", len(primaries), primaries)
	}

	var demoted models.ItemLink
	db.First(&demoted, "id = ?", old.ID)
	if demoted.IsPrimary {
		t.Error("previous primary was not demoted")
	}
}

func TestSetPrimaryLinkErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "pl-errors@example.com")
	intruder := createTestUser(t, db, "pl-intruder@example.com")
	item := createTestItem(t, db, user.ID, nil, "camera")
	link := createTestLink(t, db, item.ID, "https://x.example", false)

	if _, err := svc.SetPrimaryLink(intruder.ID, item.ID, link.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("foreign item error = %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.SetPrimaryLink(user.ID, item.ID, "no-such-link"); !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("missing link error = %v, want ErrLinkNotFound", err)
	}
}

func TestBatchDeleteItemsEmptyInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "batch0@example.com")

	// Empty input must not touch the store at all.
	if err := db.Migrator().DropTable(&models.Item{}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.BatchDeleteItems(nil, user.ID)
	if err != nil {
		t.Fatalf("BatchDeleteItems hit the store on empty input: %v", err)
	}
	if result.Processed != 0 || result.Failed != 0 || len(result.Errors) != 0 {
		t.Errorf("result = %+v, want zero counts and no errors", result)
	}
}

func TestBatchDeleteItemsPartialOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "batch1@example.com")
	other := createTestUser(t, db, "batch2@example.com")

	a := createTestItem(t, db, user.ID, nil, "a")
	b := createTestItem(t, db, user.ID, nil, "b")
	c := createTestItem(t, db, other.ID, nil, "c")

	result, err := svc.BatchDeleteItems([]string{a.ID, b.ID, c.ID}, user.ID)
	if err != nil {
		t.Fatalf("BatchDeleteItems: %v", err)
	}
	if result.Processed != 2 || result.Failed != 1 {
		t.Errorf("counts = %d/%d, want 2 processed, 1 failed", result.Processed, result.Failed)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "1 items not found or unauthorized" {
		t.Errorf("errors = %v", result.Errors)
	}

	var mine, theirs int64
	db.Model(&models.Item{}).Where("user_id = ?", user.ID).Count(&mine)
	db.Model(&models.Item{}).Where("id = ?", c.ID).Count(&theirs)
	if mine != 0 {
		t.Error("owned items survived the batch delete")
	}
	if theirs != 1 {
		t.Error("foreign item was deleted")
	}
}

func TestBatchDeleteItemsNoneOwned(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "batch3@example.com")

	result, err := svc.BatchDeleteItems([]string{"x", "y"}, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Processed != 0 || result.Failed != 2 {
		t.Errorf("counts = %d/%d, want 0/2", result.Processed, result.Failed)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "No valid items to delete" {
		t.Errorf("errors = %v", result.Errors)
	}
}

func TestBatchMoveItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "move@example.com")
	from := createTestCategory(t, db, user.ID, "From")
	to := createTestCategory(t, db, user.ID, "To")
	ids := seedItems(t, db, user.ID, &from.ID, 2)

	result, err := svc.BatchMoveItems(ids, user.ID, &to.ID)
	if err != nil {
		t.Fatalf("BatchMoveItems: %v", err)
	}
	if result.Processed != 2 || result.Failed != 0 || len(result.Errors) != 0 {
		t.Errorf("result = %+v", result)
	}

	var moved int64
	db.Model(&models.Item{}).Where("id IN ? AND category_id = ?", ids, to.ID).Count(&moved)
	if moved != 2 {
		t.Errorf("moved = %d, want 2", moved)
	}

	// Moving to nil clears the category.
	if _, err := svc.BatchMoveItems(ids, user.ID, nil); err != nil {
		t.Fatal(err)
	}
	var uncategorized int64
	db.Model(&models.Item{}).Where("id IN ? AND category_id IS NULL", ids).Count(&uncategorized)
	if uncategorized != 2 {
		t.Errorf("uncategorized = %d, want 2", uncategorized)
	}
}

func TestBatchMoveItemsUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)
	user := createTestUser(t, db, "move2@example.com")
	other := createTestUser(t, db, "move3@example.com")
	foreign := createTestCategory(t, db, other.ID, "Foreign")
	ids := seedItems(t, db, user.ID, nil, 2)

	for _, categoryID := range []string{"no-such-category", foreign.ID} {
		id := categoryID
		result, err := svc.BatchMoveItems(ids, user.ID, &id)
		if err != nil {
			t.Fatal(err)
		}
		if result.Processed != 0 || result.Failed != 2 {
			t.Errorf("counts = %d/%d, want 0/2", result.Processed, result.Failed)
		}
		if len(result.Errors) != 1 || result.Errors[0] != "Category not found or unauthorized" {
			t.Errorf("errors = %v", result.Errors)
		}
	}

	var touched int64
	db.Model(&models.Item{}).Where("id IN ? AND category_id IS NOT NULL", ids).Count(&touched)
	if touched != 0 {
		t.Error("items were moved despite category validation failure")
	}
}
