// internal/services/checkout_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyfix/electrox-backend/internal/models"
)

// Tests run with an empty Stripe key, so checkout stops at the pending
// order and never calls out to the payment provider.

func TestCheckoutSnapshotsCartIntoOrder(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	carts := NewCartService(db, &memoryBlobStore{})
	svc := NewCheckoutService(db, cfg)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	buyer := createTestUser(t, db, "buyer", models.UserRoleClient)
	laptop := createTestProduct(t, db, admin.ID, "laptop", 500000, 5)
	mouse := createTestProduct(t, db, admin.ID, "mouse", 15000, 10)

	_, err := carts.AddToCart(buyer.ID, &AddToCartRequest{ProductID: laptop.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = carts.AddToCart(buyer.ID, &AddToCartRequest{ProductID: mouse.ID, Quantity: 1})
	require.NoError(t, err)

	resp, err := svc.Checkout(buyer.ID)
	require.NoError(t, err)

	order := resp.Order
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 1015000.0, order.Amount)
	assert.Equal(t, "rwf", order.Currency)
	assert.Empty(t, resp.ClientSecret)
	require.Len(t, order.Lines, 2)

	// Line items keep the name and price at purchase time.
	var laptopLine *models.OrderLine
	for i := range order.Lines {
		if order.Lines[i].ProductID == laptop.ID {
			laptopLine = &order.Lines[i]
		}
	}
	require.NotNil(t, laptopLine)
	assert.Equal(t, "laptop", laptopLine.ProductName)
	assert.Equal(t, 500000.0, laptopLine.UnitPrice)
	assert.Equal(t, 2, laptopLine.Quantity)
	assert.Equal(t, 1000000.0, laptopLine.LineTotal)

	// Stock went down and the cart is gone.
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, laptop.ID).Error)
	assert.Equal(t, 3, reloaded.Stock)

	cart, err := carts.GetCart(buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutInsufficientStockAbortsEverything(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	carts := NewCartService(db, &memoryBlobStore{})
	svc := NewCheckoutService(db, cfg)
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	buyer := createTestUser(t, db, "buyer", models.UserRoleClient)
	plenty := createTestProduct(t, db, admin.ID, "plenty", 1000, 10)
	scarce := createTestProduct(t, db, admin.ID, "scarce", 1000, 1)

	_, err := carts.AddToCart(buyer.ID, &AddToCartRequest{ProductID: plenty.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = carts.AddToCart(buyer.ID, &AddToCartRequest{ProductID: scarce.ID, Quantity: 3})
	require.NoError(t, err)

	_, err = svc.Checkout(buyer.ID)
	require.Error(t, err)

	// Nothing moved: no order, stock intact, cart intact.
	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(0), orderCount)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, plenty.ID).Error)
	assert.Equal(t, 10, reloaded.Stock)

	cart, err := carts.GetCart(buyer.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckoutService(db, testConfig())
	buyer := createTestUser(t, db, "buyer", models.UserRoleClient)

	_, err := svc.Checkout(buyer.ID)
	assert.Error(t, err)
}

func TestCheckoutSuspendedBuyer(t *testing.T) {
	db := setupTestDB(t)
	carts := NewCartService(db, &memoryBlobStore{})
	svc := NewCheckoutService(db, testConfig())
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	buyer := createTestUser(t, db, "buyer", models.UserRoleClient)
	product := createTestProduct(t, db, admin.ID, "item", 1000, 5)

	_, err := carts.AddToCart(buyer.ID, &AddToCartRequest{ProductID: product.ID})
	require.NoError(t, err)

	require.NoError(t, db.Model(buyer).Update("status", models.UserStatusSuspended).Error)

	_, err = svc.Checkout(buyer.ID)
	assert.Error(t, err)
}

func TestRefundRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	carts := NewCartService(db, &memoryBlobStore{})
	svc := NewCheckoutService(db, testConfig())
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	buyer := createTestUser(t, db, "buyer", models.UserRoleClient)
	product := createTestProduct(t, db, admin.ID, "refundable", 2000, 5)

	_, err := carts.AddToCart(buyer.ID, &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	resp, err := svc.Checkout(buyer.ID)
	require.NoError(t, err)

	// Mark the order paid; no payment reference means no Stripe call.
	require.NoError(t, db.Model(resp.Order).Update("status", models.OrderStatusPaid).Error)

	require.NoError(t, svc.Refund(&RefundRequest{
		OrderID: resp.Order.ID,
		Reason:  "customer returned the device",
	}))

	var order models.Order
	require.NoError(t, db.First(&order, resp.Order.ID).Error)
	assert.Equal(t, models.OrderStatusRefunded, order.Status)
	assert.NotNil(t, order.RefundedAt)
	assert.Equal(t, "customer returned the device", order.RefundReason)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 5, reloaded.Stock)
}

func TestRefundRequiresPaidOrder(t *testing.T) {
	db := setupTestDB(t)
	carts := NewCartService(db, &memoryBlobStore{})
	svc := NewCheckoutService(db, testConfig())
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	buyer := createTestUser(t, db, "buyer", models.UserRoleClient)
	product := createTestProduct(t, db, admin.ID, "item", 2000, 5)

	_, err := carts.AddToCart(buyer.ID, &AddToCartRequest{ProductID: product.ID})
	require.NoError(t, err)

	resp, err := svc.Checkout(buyer.ID)
	require.NoError(t, err)

	err = svc.Refund(&RefundRequest{OrderID: resp.Order.ID, Reason: "changed my mind"})
	assert.Error(t, err)
}

func TestGetOrderIsBuyerScoped(t *testing.T) {
	db := setupTestDB(t)
	carts := NewCartService(db, &memoryBlobStore{})
	svc := NewCheckoutService(db, testConfig())
	admin := createTestUser(t, db, "admin", models.UserRoleAdmin)
	buyer := createTestUser(t, db, "buyer", models.UserRoleClient)
	other := createTestUser(t, db, "other", models.UserRoleClient)
	product := createTestProduct(t, db, admin.ID, "item", 2000, 5)

	_, err := carts.AddToCart(buyer.ID, &AddToCartRequest{ProductID: product.ID})
	require.NoError(t, err)

	resp, err := svc.Checkout(buyer.ID)
	require.NoError(t, err)

	found, err := svc.GetOrder(resp.Order.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Order.ID, found.ID)

	_, err = svc.GetOrder(resp.Order.ID, other.ID)
	assert.Error(t, err)
}
