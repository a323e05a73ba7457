package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Catalog Routes
	RouteProducts        = "/api/products"
	RouteProductsRefresh = "/api/products/refresh"
	RouteProduct         = "/api/products/{id}"
	RouteProductRating   = "/api/products/{id}/rating"
	RouteCategories      = "/api/categories"
	RouteCatalogFilter   = "/api/products/filter"

	// Cart Routes
	RouteCart             = "/api/cart"
	RouteCartItems        = "/api/cart/items"
	RouteCartItem         = "/api/cart/items/{id}"
	RouteCartItemDecrease = "/api/cart/items/{id}/decrease"
	RouteCartCoupon       = "/api/cart/coupon"
	RouteCartQuote        = "/api/cart/quote"

	// Checkout
	RouteCheckout = "/api/checkout"

	// Auth Routes
	RouteAuthLogin         = "/api/auth/login"
	RouteAuthAdminLogin    = "/api/auth/admin-login"
	RouteAuthRegister      = "/api/auth/register"
	RouteAuthLogout        = "/api/auth/logout"
	RouteAuthSession       = "/api/auth/session"
	RouteAuthForgotPasswd  = "/api/auth/forgot-password"
	RouteAuthResetPassword = "/api/auth/reset-password/{token}"

	// Account Routes
	RouteProfile         = "/api/profile"
	RouteProfilePassword = "/api/profile/password"
	RouteOrders          = "/api/orders"
	RouteOrder           = "/api/orders/{id}"

	// Wishlist Routes
	RouteWishlist       = "/api/wishlist"
	RouteWishlistToggle = "/api/wishlist/toggle"

	// Admin Routes
	RouteAdminProducts    = "/api/admin/products"
	RouteAdminProduct     = "/api/admin/products/{id}"
	RouteAdminOrders      = "/api/admin/orders"
	RouteAdminOrderStatus = "/api/admin/orders/{id}/status"
	RouteAdminUsers       = "/api/admin/users"
	RouteAdminUser        = "/api/admin/users/{id}"
)
