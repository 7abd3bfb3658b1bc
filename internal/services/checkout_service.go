// internal/services/checkout_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/easyfix/electrox-backend/internal/config"
	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

// CheckoutService turns a cart into an order and collects payment
// through Stripe.
type CheckoutService struct {
	db     *gorm.DB
	config *config.Config
}

type CheckoutResponse struct {
	Order        *models.Order `json:"order"`
	ClientSecret string        `json:"client_secret,omitempty"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	OrderID         uuid.UUID `json:"order_id" validate:"required"`
}

type RefundRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Reason  string    `json:"reason" validate:"required"`
}

func NewCheckoutService(db *gorm.DB, config *config.Config) *CheckoutService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &CheckoutService{
		db:     db,
		config: config,
	}
}

// Checkout snapshots the buyer's cart into an order, decrements stock
// under row locks, clears the cart, and opens a payment intent. Stock
// never goes negative; any shortfall aborts the whole transaction.
func (s *CheckoutService) Checkout(buyerID uuid.UUID) (*CheckoutResponse, error) {
	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var buyer models.User
		if err := tx.First(&buyer, buyerID).Error; err != nil {
			return fmt.Errorf("buyer not found: %w", err)
		}
		if buyer.Status != models.UserStatusActive {
			return errors.New("buyer account is not active")
		}

		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", buyerID).Find(&cartItems).Error; err != nil {
			return fmt.Errorf("failed to fetch cart: %w", err)
		}
		if len(cartItems) == 0 {
			return errors.New("cart is empty")
		}

		lines := make(models.OrderLines, 0, len(cartItems))
		var amount float64

		for _, item := range cartItems {
			// Lock the product row for the stock check
			var product models.Product
			if err := tx.Set("gorm:query_option", "FOR UPDATE").
				First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New("product no longer exists")
				}
				return fmt.Errorf("database error: %w", err)
			}

			if product.Status != models.ProductStatusActive {
				return fmt.Errorf("product %s is not available", product.Name)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("insufficient stock for %s", product.Name)
			}

			if err := tx.Model(&product).UpdateColumn("stock",
				gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update stock: %w", err)
			}

			lineTotal := product.Price * float64(item.Quantity)
			lines = append(lines, models.OrderLine{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
				LineTotal:   lineTotal,
			})
			amount += lineTotal
		}

		order = &models.Order{
			BuyerID:  buyerID,
			Lines:    lines,
			Amount:   amount,
			Currency: s.config.Payment.Currency,
			Status:   models.OrderStatusPending,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Cart is consumed by the order
		if err := tx.Where("user_id = ?", buyerID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &CheckoutResponse{Order: order}

	// Open the payment intent outside the transaction; a Stripe
	// failure leaves a pending order the buyer can retry.
	if s.config.Payment.StripeSecretKey != "" {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(int64(order.Amount * 100)),
			Currency: stripe.String(s.config.Payment.Currency),
		}
		params.AddMetadata("order_id", order.ID.String())
		params.AddMetadata("buyer_id", buyerID.String())

		pi, err := paymentintent.New(params)
		if err != nil {
			return nil, fmt.Errorf("failed to create payment intent: %w", err)
		}

		order.PaymentReference = pi.ID
		if err := s.db.Save(order).Error; err != nil {
			logrus.WithError(err).WithField("order_id", order.ID).
				Warn("Failed to persist payment reference")
		}

		resp.ClientSecret = pi.ClientSecret
	}

	return resp, nil
}

func (s *CheckoutService) ConfirmPayment(req *ConfirmPaymentRequest) error {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Get payment intent from Stripe
	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return fmt.Errorf("failed to get payment intent: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		return fmt.Errorf("order not found: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		now := time.Now()
		order.Status = models.OrderStatusPaid
		order.ProcessedAt = &now
		order.PaymentReference = pi.ID

	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		order.Status = models.OrderStatusPending

	default:
		order.Status = models.OrderStatusFailed
	}

	if err := s.db.Save(&order).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// Refund reverses a paid order and restores product stock.
func (s *CheckoutService) Refund(req *RefundRequest) error {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("order not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if order.Status != models.OrderStatusPaid {
		return errors.New("only paid orders can be refunded")
	}

	if order.PaymentReference != "" && s.config.Payment.StripeSecretKey != "" {
		refundParams := &stripe.RefundParams{
			PaymentIntent: stripe.String(order.PaymentReference),
		}
		if _, err := refund.New(refundParams); err != nil {
			return fmt.Errorf("failed to process refund: %w", err)
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		order.Status = models.OrderStatusRefunded
		order.RefundedAt = &now
		order.RefundReason = req.Reason

		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		// Restock the refunded items
		for _, line := range order.Lines {
			if err := tx.Model(&models.Product{}).Where("id = ?", line.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", line.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}

		return nil
	})
}

func (s *CheckoutService) GetOrder(orderID, buyerID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Buyer").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.BuyerID != buyerID {
		return nil, errors.New("order not found")
	}

	return &order, nil
}

func (s *CheckoutService) ListOrders(buyerID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("buyer_id = ?", buyerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}
