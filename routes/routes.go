package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"leasely/handlers"
	"leasely/utils"
)

// RegisterSearchRoutes registers the search and availability endpoints.
func RegisterSearchRoutes(r *gin.Engine, sh *handlers.SearchHandler) {
	api := r.Group("/api")
	api.GET("/search", sh.Search)
	api.GET("/autocomplete", sh.Autocomplete)
	api.GET("/spaces/:id/calendar", sh.SpaceCalendar)
	api.POST("/bookings/check", sh.CheckBooking)
}

// RegisterHealthRoute exposes the stored health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, sh *handlers.SearchHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSearchRoutes(r, sh)
	RegisterHealthRoute(r)
}
