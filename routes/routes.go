package routes

import (
	"net/http"

	"shutterbay-backend/controllers"
	"shutterbay-backend/middleware"
	"shutterbay-backend/services"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything Register needs to wire the API surface.
type Controllers struct {
	Auth    *controllers.AuthController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Product *controllers.ProductController
	Upload  *controllers.UploadController
	Contact *controllers.ContactController
	Banner  *controllers.BannerController
}

// Register wires the full HTTP surface onto the router.
func Register(r *gin.Engine, c Controllers, tokens *services.TokenService) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public
	api.POST("/auth/register", c.Auth.Register)
	api.POST("/auth/login", middleware.RateLimit(), c.Auth.Login)
	api.GET("/products", c.Product.List)
	api.GET("/products/:id", c.Product.Get)
	api.POST("/contact", c.Contact.Create)
	api.GET("/banners", c.Banner.List)

	// Authenticated users
	authed := api.Group("")
	authed.Use(middleware.Auth(tokens))
	{
		authed.GET("/users/me", c.Auth.GetProfile)
		authed.PUT("/users/me", c.Auth.UpdateProfile)
		authed.GET("/users/me/favorites", c.Auth.ListFavorites)
		authed.POST("/users/me/favorites/:productId", c.Auth.AddFavorite)
		authed.DELETE("/users/me/favorites/:productId", c.Auth.RemoveFavorite)

		authed.GET("/cart", c.Cart.GetCart)
		authed.POST("/cart", c.Cart.UpsertItem)
		authed.DELETE("/cart/:productId", c.Cart.RemoveItem)

		authed.POST("/orders", c.Order.CreateOrder)
		authed.GET("/orders", c.Order.GetOrders)
		authed.GET("/orders/:id", c.Order.GetOrderByID)
		authed.GET("/orders/by-orderid/:orderId", c.Order.GetOrderByOrderID)

		// Admin-only order status writes are authorized inside the order
		// service itself; the route only requires a valid token.
		authed.PUT("/orders/status/:orderId", c.Order.UpdateStatus)
	}

	// Admin
	admin := api.Group("")
	admin.Use(middleware.Auth(tokens), middleware.RequireAdmin())
	{
		admin.POST("/products", c.Product.Create)
		admin.PUT("/products/:id", c.Product.Update)
		admin.DELETE("/products/:id", c.Product.Delete)
		admin.PATCH("/products/:id/stock", c.Product.UpdateStock)

		admin.POST("/uploads/images", c.Upload.UploadImage)
		admin.GET("/uploads/presign", c.Upload.PresignUpload)

		admin.GET("/contact", c.Contact.List)
		admin.DELETE("/contact/:id", c.Contact.Delete)

		admin.GET("/banners/all", c.Banner.ListAll)
		admin.POST("/banners", c.Banner.Create)
		admin.PUT("/banners/:id", c.Banner.Update)
		admin.DELETE("/banners/:id", c.Banner.Delete)
	}
}
