package router

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var Router *gin.Engine

func InitEngine() {
	Router = gin.Default()
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	Router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "https://carhive.vn"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func InitializeRoutes() {
	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", Signup)
			authGroup.POST("/login", Login)
		}

		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("/", GetAllVehicles)
			vehicles.GET("/:id", GetVehicleByID)
			vehicles.POST("/", AuthRequired(), RequirePermission("manage_vehicles"), CreateVehicle)
			vehicles.PUT("/:id", AuthRequired(), RequirePermission("manage_vehicles"), EditVehicleByID)
			vehicles.DELETE("/:id", AuthRequired(), RequirePermission("manage_vehicles"), DeleteVehicleByID)
		}

		dealers := api.Group("/dealers")
		{
			dealers.GET("/", GetAllDealers)
			dealers.POST("/", AuthRequired(), RequirePermission("manage_dealers"), CreateDealer)
		}

		cart := api.Group("/cart")
		cart.Use(AuthRequired())
		{
			cart.GET("/", GetCart)
			cart.POST("/items", AddToCart)
			cart.PUT("/items/:itemId", UpdateCartItem)
			cart.DELETE("/items/:itemId", RemoveFromCart)
			cart.DELETE("/clear", ClearCart)
			cart.POST("/checkout", CheckoutCart)
		}

		orders := api.Group("/orders")
		orders.Use(AuthRequired())
		{
			orders.GET("/my", GetMyOrders)
			orders.POST("/bookings", CreateDirectBooking)
			orders.GET("/", RequireCapability(canViewAll), GetAllOrders)
			orders.GET("/:id", GetOrderByID)
			orders.PUT("/:id/items/:itemId/status", RequireCapability(canManageStatus), UpdateOrderItemStatus)
			orders.PUT("/:id/assign", RequireCapability(canAssign), AssignOrder)
			orders.PUT("/:id/notes", RequireCapability(canEdit), UpdateOrderNotes)
		}

		users := api.Group("/users")
		users.Use(AuthRequired())
		{
			users.GET("/me", GetMyProfile)
			users.GET("/", RequireAdmin(), GetAllUsers)
			users.POST("/", RequireAdmin(), CreateUserAccount)
			users.PUT("/:uid/role", RequireAdmin(), UpdateUserRole)
			users.PUT("/:uid/deactivate", RequireAdmin(), DeactivateUser)
		}

		analytics := api.Group("/analytics")
		analytics.Use(AuthRequired())
		{
			analytics.GET("/sales", RequirePermission("view_analytics"), GetSalesAnalytics)
		}
	}
}
