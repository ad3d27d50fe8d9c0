package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"limo-backend/controllers"
	"limo-backend/middleware"
	"limo-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the route surface.
func SetupRouter(
	ac *controllers.AuthController,
	bc *controllers.BookingController,
	vc *controllers.VehicleController,
	blc *controllers.BlogController,
	adc *controllers.AdminController,
	uc *controllers.UploadController,
	sc *controllers.SettingsController,
	adminSvc *services.AdminService,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := middleware.Authenticate()
	adminOnly := middleware.RequireAdmin(adminSvc)
	throttled := limiter.Middleware()

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", throttled, ac.Signup)
			auth.POST("/signin", throttled, ac.Signin)
			auth.POST("/signout", ac.Signout)
			auth.POST("/reset", throttled, ac.ResetPassword)
			auth.GET("/me", authed, ac.Me)
			auth.PATCH("/me", authed, ac.UpdateMe)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", throttled, bc.CreateBooking)
			bookings.GET("/mine", authed, bc.GetMyBookings)
			bookings.GET("", authed, adminOnly, bc.GetBookings)
			bookings.GET("/:id", authed, bc.GetBooking)
			bookings.PATCH("/:id/status", authed, adminOnly, bc.UpdateBookingStatus)
			bookings.DELETE("/:id", authed, adminOnly, bc.DeleteBooking)
		}

		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("", vc.GetVehicles)
			vehicles.GET("/:id", vc.GetVehicle)
			vehicles.GET("/type/:type", vc.GetVehiclesByType)
			vehicles.POST("", authed, adminOnly, vc.CreateVehicle)
			vehicles.PUT("/:id", authed, adminOnly, vc.UpdateVehicle)
			vehicles.PATCH("/:id", authed, adminOnly, vc.UpdateVehicle)
			vehicles.DELETE("/:id", authed, adminOnly, vc.DeleteVehicle)
		}

		blogs := api.Group("/blogs")
		{
			blogs.GET("", blc.GetPosts)
			blogs.GET("/:id", blc.GetPost)
			blogs.GET("/slug/:slug", blc.GetPostBySlug)
			blogs.POST("", authed, adminOnly, blc.CreatePost)
			blogs.PATCH("/:id", authed, adminOnly, blc.UpdatePost)
			blogs.DELETE("/:id", authed, adminOnly, blc.DeletePost)
		}

		admins := api.Group("/admins", authed, adminOnly)
		{
			admins.GET("", adc.GetAdmins)
			admins.POST("", adc.CreateAdmin)
			admins.DELETE("/:id", adc.DeleteAdmin)
			admins.GET("/users", adc.GetUsers)
		}

		uploads := api.Group("/uploads")
		{
			uploads.POST("/:prefix", authed, uc.Upload)
			uploads.GET("/:prefix", authed, adminOnly, uc.List)
			uploads.GET("/:prefix/:name", authed, adminOnly, uc.Metadata)
			uploads.DELETE("/:prefix/:name", authed, adminOnly, uc.Delete)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/company", sc.GetCompanySettings)
			settings.PUT("/company", authed, adminOnly, sc.UpdateCompanySettings)
		}
	}

	return r
}
