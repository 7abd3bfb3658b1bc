// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

func catalogParams() CatalogParams {
	return CatalogParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
	}
}

func TestCatalogResolvesImageURLs(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewCatalogService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	product := createTestProduct(t, db, admin.ID, "thinkpad", 500000, 2)

	views, total, err := svc.ListProducts(catalogParams())
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, product.ID, views[0].ID)
	require.Len(t, views[0].ImageURLs, 1)
	assert.Equal(t, "https://cdn.example.com/products/thinkpad.jpg", views[0].ImageURLs[0])
	assert.Equal(t, "admin", views[0].CreatedByName)
}

func TestCatalogFallsBackToUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewCatalogService(db, blobs)
	admin := createTestUser(t, db, "departed", models.UserRoleAdmin)

	createTestProduct(t, db, admin.ID, "orphaned", 100000, 1)

	// The creator account goes away; the listing must still render.
	require.NoError(t, db.Delete(&models.User{}, admin.ID).Error)

	views, _, err := svc.ListProducts(catalogParams())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Unknown User", views[0].CreatedByName)
}

func TestCatalogHidesInactiveProducts(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewCatalogService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	visible := createTestProduct(t, db, admin.ID, "visible", 1000, 1)
	draft := createTestProduct(t, db, admin.ID, "draft", 1000, 1)
	require.NoError(t, db.Model(draft).Update("status", models.ProductStatusDraft).Error)

	views, total, err := svc.ListProducts(catalogParams())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, visible.ID, views[0].ID)

	_, err = svc.GetProduct(draft.ID)
	assert.Error(t, err)
}

func TestCatalogDealsFilterByBadge(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewCatalogService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	sale := createTestProduct(t, db, admin.ID, "on-sale", 900, 1)
	require.NoError(t, db.Model(sale).Update("badge", models.ProductBadgeSale).Error)
	createTestProduct(t, db, admin.ID, "regular", 900, 1)

	deals, err := svc.GetDeals(10)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, sale.ID, deals[0].ID)
}

func TestCatalogCategories(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewCatalogService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	createTestProduct(t, db, admin.ID, "p1", 100, 1)
	p2 := createTestProduct(t, db, admin.ID, "p2", 100, 1)
	require.NoError(t, db.Model(p2).Update("category", "phones").Error)

	categories, err := svc.GetCategories()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"laptops", "phones"}, categories)
}
