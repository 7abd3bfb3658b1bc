// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

func TestCreateProductRequiresImage(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewProductService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	_, err := svc.CreateProduct(admin.ID, &CreateProductRequest{
		Name:        "Dell Latitude 5420",
		Description: "Refurbished business laptop with warranty",
		Category:    "laptops",
		Price:       450000,
		Stock:       3,
		Images:      []string{},
	})
	assert.Error(t, err)
}

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewProductService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	product, err := svc.CreateProduct(admin.ID, &CreateProductRequest{
		Name:        "Dell Latitude 5420",
		Description: "Refurbished business laptop with warranty",
		Category:    "laptops",
		Price:       450000,
		Stock:       3,
		Images:      []string{"products/latitude-front.jpg", "products/latitude-back.jpg"},
		Badge:       models.ProductBadgeNew,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ProductStatusActive, product.Status)
	assert.Equal(t, models.ProductConditionNew, product.Condition)
	assert.Len(t, product.Images, 2)
	assert.Equal(t, admin.ID, product.CreatedBy)
	assert.Equal(t, "admin", product.Creator.Username)
}

func TestUpdateProductImagePatch(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewProductService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	product, err := svc.CreateProduct(admin.ID, &CreateProductRequest{
		Name:        "iPhone 13",
		Description: "Like new, unlocked, 128GB storage",
		Category:    "phones",
		Price:       700000,
		Stock:       1,
		Images:      []string{"products/a.jpg", "products/b.jpg", "products/c.jpg"},
	})
	require.NoError(t, err)

	// One patch drops b.jpg and adds d.jpg: the caller sends the full
	// merged list.
	updated, err := svc.UpdateProduct(product.ID, admin.ID, &UpdateProductRequest{
		Images: []string{"products/a.jpg", "products/c.jpg", "products/d.jpg"},
	})
	require.NoError(t, err)

	require.Len(t, updated.Images, 3)
	assert.Contains(t, updated.Images, "products/d.jpg")
	assert.NotContains(t, updated.Images, "products/b.jpg")

	// The dropped ref was reclaimed from blob storage.
	assert.Equal(t, []string{"products/b.jpg"}, blobs.deleted)
}

func TestUpdateProductPartialFieldsLeaveImagesAlone(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewProductService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	product, err := svc.CreateProduct(admin.ID, &CreateProductRequest{
		Name:        "Samsung monitor",
		Description: "27 inch display, minor scratches on the stand",
		Category:    "monitors",
		Price:       120000,
		Stock:       5,
		Images:      []string{"products/monitor.jpg"},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(product.ID, admin.ID, &UpdateProductRequest{
		Price: 100000,
	})
	require.NoError(t, err)

	assert.Equal(t, 100000.0, updated.Price)
	assert.Len(t, updated.Images, 1)
	assert.Empty(t, blobs.deleted)
}

func TestDeleteProductReclaimsBlobs(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewProductService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	product, err := svc.CreateProduct(admin.ID, &CreateProductRequest{
		Name:        "Router",
		Description: "Dual band WiFi 6 router, barely used",
		Category:    "networking",
		Price:       80000,
		Stock:       2,
		Images:      []string{"products/router-1.jpg", "products/router-2.jpg"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(product.ID))

	assert.ElementsMatch(t, []string{"products/router-1.jpg", "products/router-2.jpg"}, blobs.deleted)

	_, err = svc.GetProduct(product.ID, nil)
	assert.Error(t, err)
}

func TestSearchProductsDefaultsToActive(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewProductService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	active := createTestProduct(t, db, admin.ID, "active-one", 1000, 5)
	inactive := createTestProduct(t, db, admin.ID, "hidden-one", 2000, 5)
	require.NoError(t, db.Model(inactive).Update("status", models.ProductStatusInactive).Error)

	products, total, err := svc.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, active.ID, products[0].ID)
}

func TestLikeProduct(t *testing.T) {
	db := setupTestDB(t)
	blobs := &memoryBlobStore{}
	svc := NewProductService(db, blobs)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)

	product := createTestProduct(t, db, admin.ID, "likeable", 1000, 1)

	require.NoError(t, svc.LikeProduct(product.ID))
	require.NoError(t, svc.LikeProduct(product.ID))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, int64(2), reloaded.LikeCount)
}
