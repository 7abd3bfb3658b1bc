// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyfix/electrox-backend/internal/models"
)

func TestAddToCartUpserts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, &memoryBlobStore{})
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	client := createTestUser(t, db, "shopper", models.UserRoleClient)
	product := createTestProduct(t, db, admin.ID, "mouse", 15000, 10)

	first, err := svc.AddToCart(client.ID, &AddToCartRequest{ProductID: product.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)

	// Adding the same product again increments instead of duplicating.
	second, err := svc.AddToCart(client.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", client.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddToCartRejectsInactiveProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, &memoryBlobStore{})
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	client := createTestUser(t, db, "shopper", models.UserRoleClient)
	product := createTestProduct(t, db, admin.ID, "gone", 15000, 10)
	require.NoError(t, db.Model(product).Update("status", models.ProductStatusInactive).Error)

	_, err := svc.AddToCart(client.ID, &AddToCartRequest{ProductID: product.ID})
	assert.Error(t, err)
}

func TestUpdateCartQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, &memoryBlobStore{})
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	client := createTestUser(t, db, "shopper", models.UserRoleClient)
	product := createTestProduct(t, db, admin.ID, "keyboard", 45000, 10)

	_, err := svc.AddToCart(client.ID, &AddToCartRequest{ProductID: product.ID})
	require.NoError(t, err)

	item, err := svc.UpdateQuantity(client.ID, product.ID, &UpdateCartItemRequest{Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}

func TestCartSummaryTotals(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, &memoryBlobStore{})
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	client := createTestUser(t, db, "shopper", models.UserRoleClient)
	laptop := createTestProduct(t, db, admin.ID, "laptop", 500000, 10)
	mouse := createTestProduct(t, db, admin.ID, "mouse", 15000, 10)

	_, err := svc.AddToCart(client.ID, &AddToCartRequest{ProductID: laptop.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddToCart(client.ID, &AddToCartRequest{ProductID: mouse.ID, Quantity: 2})
	require.NoError(t, err)

	cart, err := svc.GetCart(client.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.ItemCount)
	assert.Equal(t, 530000.0, cart.TotalPrice)
	assert.Len(t, cart.Items, 2)
}

func TestRemoveAndClearCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, &memoryBlobStore{})
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	client := createTestUser(t, db, "shopper", models.UserRoleClient)
	p1 := createTestProduct(t, db, admin.ID, "p1", 100, 10)
	p2 := createTestProduct(t, db, admin.ID, "p2", 100, 10)

	_, err := svc.AddToCart(client.ID, &AddToCartRequest{ProductID: p1.ID})
	require.NoError(t, err)
	_, err = svc.AddToCart(client.ID, &AddToCartRequest{ProductID: p2.ID})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromCart(client.ID, p1.ID))
	assert.Error(t, svc.RemoveFromCart(client.ID, p1.ID))

	require.NoError(t, svc.ClearCart(client.ID))

	cart, err := svc.GetCart(client.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
