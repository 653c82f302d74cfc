// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/storefront"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/notify"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

// Dependencies are the services the view routes are served from
type Dependencies struct {
	Storefront *storefront.Storefront
	Users      *user.Service
	Addresses  *user.AddressService
	Receipts   *pdf.Service
	Inbox      *notify.Inbox
	Logger     *logrus.Logger
}

// SetupProductRoutes sets up the product grid, search and page reload routes
func SetupProductRoutes(rg *gin.RouterGroup, deps Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Storefront)

	rg.GET("/products", productHandler.GetProducts)
	rg.POST("/search", productHandler.Search)
	rg.POST("/reload", productHandler.Reload)
}

// SetupCartRoutes sets up cart routes. Login checks happen in the cart
// service so that logged-out attempts still produce the login notification.
func SetupCartRoutes(rg *gin.RouterGroup, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Storefront)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/:id", cartHandler.SetQuantity)
		cart.POST("/:id/add", cartHandler.AddToCart)
		cart.POST("/:id/increment", cartHandler.Increment)
		cart.POST("/:id/decrement", cartHandler.Decrement)
	}
}

// SetupAuthRoutes sets up registration, login and logout routes
func SetupAuthRoutes(rg *gin.RouterGroup, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Storefront, deps.Logger)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/session", authHandler.GetSession)
	}
}

// SetupCheckoutRoutes sets up order summary, checkout, receipt and address routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, deps Dependencies) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Storefront)
	receiptHandler := handlers.NewReceiptHandler(checkoutHandler, deps.Addresses, deps.Receipts, deps.Logger)
	addressHandler := handlers.NewAddressHandler(deps.Addresses)

	rg.GET("/checkout/summary", checkoutHandler.GetSummary)

	protected := rg.Group("")
	protected.Use(middleware.RequireSession(deps.Storefront, "Login to proceed to checkout"))
	{
		protected.POST("/checkout", checkoutHandler.PlaceOrder)
		protected.GET("/checkout/receipt", receiptHandler.GetReceipt)

		protected.GET("/addresses", addressHandler.GetAddresses)
		protected.POST("/addresses", addressHandler.CreateAddress)
		protected.DELETE("/addresses/:id", addressHandler.DeleteAddress)
	}
}

// SetupNotificationRoutes sets up the notification inbox route
func SetupNotificationRoutes(rg *gin.RouterGroup, deps Dependencies) {
	notificationHandler := handlers.NewNotificationHandler(deps.Inbox)

	rg.GET("/notifications", notificationHandler.GetNotifications)
}

// SetupRoutes mounts every view route on rg
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	SetupProductRoutes(rg, deps)
	SetupCartRoutes(rg, deps)
	SetupAuthRoutes(rg, deps)
	SetupCheckoutRoutes(rg, deps)
	SetupNotificationRoutes(rg, deps)
}
