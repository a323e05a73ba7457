package server

import (
	"fmt"
	"log"
)

func (s *Server) initRoutes() {
	api := s.APIMiddleware()

	// Catalog
	s.RegisterRouteHandler("GET "+RouteProducts, ChainMiddleware(s.ProductsHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteProductsRefresh, ChainMiddleware(s.RefreshCatalogHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteProduct, ChainMiddleware(s.ProductHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteCategories, ChainMiddleware(s.CategoriesHandler(), api...))
	s.RegisterRouteHandler("PUT "+RouteCatalogFilter, ChainMiddleware(s.UpdateFilterHandler(), api...))
	s.RegisterRouteHandler("DELETE "+RouteCatalogFilter, ChainMiddleware(s.ResetFilterHandler(), api...))

	// Ratings need a session
	s.RegisterRouteHandler("POST "+RouteProductRating, ChainMiddleware(s.RateProductHandler(), s.SessionMiddleware(api)...))
	s.RegisterRouteHandler("GET "+RouteProductRating, ChainMiddleware(s.UserRatingHandler(), s.SessionMiddleware(api)...))

	// Cart
	s.RegisterRouteHandler("GET "+RouteCart, ChainMiddleware(s.CartHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteCartItems, ChainMiddleware(s.AddCartItemHandler(), api...))
	s.RegisterRouteHandler("DELETE "+RouteCartItem, ChainMiddleware(s.RemoveCartItemHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteCartItemDecrease, ChainMiddleware(s.DecreaseCartItemHandler(), api...))
	s.RegisterRouteHandler("DELETE "+RouteCart, ChainMiddleware(s.ClearCartHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteCartCoupon, ChainMiddleware(s.ApplyCouponHandler(), api...))
	s.RegisterRouteHandler("DELETE "+RouteCartCoupon, ChainMiddleware(s.RemoveCouponHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteCartQuote, ChainMiddleware(s.QuoteHandler(), api...))

	// Checkout
	s.RegisterRouteHandler("POST "+RouteCheckout, ChainMiddleware(s.CheckoutHandler(), s.SessionMiddleware(api)...))

	// Auth
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthAdminLogin, ChainMiddleware(s.AdminLoginHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthSession, ChainMiddleware(s.SessionHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthForgotPasswd, ChainMiddleware(s.ForgotPasswordHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteAuthResetPassword, ChainMiddleware(s.ResetPasswordHandler(), api...))

	// Account
	s.RegisterRouteHandler("GET "+RouteProfile, ChainMiddleware(s.ProfileHandler(), s.SessionMiddleware(api)...))
	s.RegisterRouteHandler("PUT "+RouteProfile, ChainMiddleware(s.UpdateProfileHandler(), s.SessionMiddleware(api)...))
	s.RegisterRouteHandler("PUT "+RouteProfilePassword, ChainMiddleware(s.ChangePasswordHandler(), s.SessionMiddleware(api)...))
	s.RegisterRouteHandler("DELETE "+RouteProfile, ChainMiddleware(s.DeleteAccountHandler(), s.SessionMiddleware(api)...))
	s.RegisterRouteHandler("GET "+RouteOrders, ChainMiddleware(s.OrdersHandler(), s.SessionMiddleware(api)...))
	s.RegisterRouteHandler("GET "+RouteOrder, ChainMiddleware(s.OrderHandler(), s.SessionMiddleware(api)...))

	// Wishlist
	s.RegisterRouteHandler("GET "+RouteWishlist, ChainMiddleware(s.WishlistHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteWishlistToggle, ChainMiddleware(s.ToggleWishlistHandler(), api...))
	s.RegisterRouteHandler("DELETE "+RouteWishlist, ChainMiddleware(s.ClearWishlistHandler(), api...))

	// Admin (admin session required)
	admin := s.AdminMiddleware(api)
	s.RegisterRouteHandler("GET "+RouteAdminProducts, ChainMiddleware(s.AdminProductsHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteAdminProducts, ChainMiddleware(s.AdminCreateProductHandler(), admin...))
	s.RegisterRouteHandler("PUT "+RouteAdminProduct, ChainMiddleware(s.AdminUpdateProductHandler(), admin...))
	s.RegisterRouteHandler("DELETE "+RouteAdminProduct, ChainMiddleware(s.AdminDeleteProductHandler(), admin...))
	s.RegisterRouteHandler("GET "+RouteAdminOrders, ChainMiddleware(s.AdminOrdersHandler(), admin...))
	s.RegisterRouteHandler("PUT "+RouteAdminOrderStatus, ChainMiddleware(s.AdminOrderStatusHandler(), admin...))
	s.RegisterRouteHandler("GET "+RouteAdminUsers, ChainMiddleware(s.AdminUsersHandler(), admin...))
	s.RegisterRouteHandler("PUT "+RouteAdminUser, ChainMiddleware(s.AdminUpdateUserHandler(), admin...))
	s.RegisterRouteHandler("DELETE "+RouteAdminUser, ChainMiddleware(s.AdminDeleteUserHandler(), admin...))
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	errorString := Red + error + ResetColor
	log.Printf("[%-19s] %s %s\n", displayMethod, path, errorString)
}
