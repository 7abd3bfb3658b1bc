// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthPasswordReset      = "auth.password_reset"

	// User Management
	KeyUserNotFound = "user.not_found"

	// Products
	KeyProductCreated       = "product.created"
	KeyProductUpdated       = "product.updated"
	KeyProductDeleted       = "product.deleted"
	KeyProductNotFound      = "product.not_found"
	KeyProductOutOfStock    = "product.out_of_stock"
	KeyProductImageRequired = "product.image_required"

	// Invoicing
	KeyFactureCreated  = "facture.created"
	KeyFactureUpdated  = "facture.updated"
	KeyFactureDeleted  = "facture.deleted"
	KeyFactureNotFound = "facture.not_found"
	KeyInvoiceCreated  = "invoice.created"
	KeyInvoiceUpdated  = "invoice.updated"
	KeyInvoiceDeleted  = "invoice.deleted"
	KeyInvoiceNotFound = "invoice.not_found"

	// Cart / Wishlist
	KeyCartItemAdded     = "cart.item_added"
	KeyCartItemRemoved   = "cart.item_removed"
	KeyCartCleared       = "cart.cleared"
	KeyCartEmpty         = "cart.empty"
	KeyWishlistItemAdded   = "wishlist.item_added"
	KeyWishlistItemRemoved = "wishlist.item_removed"

	// Orders / Payments
	KeyOrderCreated   = "order.created"
	KeyOrderNotFound  = "order.not_found"
	KeyPaymentSuccess = "payment.success"
	KeyPaymentFailed  = "payment.failed"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"
	KeyAdminAccessDenied  = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
