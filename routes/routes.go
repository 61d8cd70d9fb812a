package routes

import (
	"net/http"
	"time"

	"lanspeech/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPracticeRoutes registers the AI practice session endpoints.
func RegisterPracticeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/practice")
	{
		api.POST("/session", hb.Practice.StartSessionHandler)
		api.POST("/message", hb.Practice.SendMessageHandler)
		api.POST("/audio", hb.Practice.PushAudioHandler)
		api.GET("/session/:userID", hb.Practice.GetStateHandler)
		api.POST("/session/:userID/listen", hb.Practice.StartListeningHandler)
		api.DELETE("/session/:userID/listen", hb.Practice.StopListeningHandler)
		api.DELETE("/session/:userID", hb.Practice.EndSessionHandler)
		api.GET("/summaries/:userID", hb.Practice.ListSummariesHandler)
	}
}

// RegisterBookingRoutes registers availability and booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/therapists/:therapistID/availability", hb.Booking.GetAvailabilityHandler)
		api.POST("/bookings", hb.Booking.BookHandler)
		api.DELETE("/bookings/:bookingID", hb.Booking.CancelHandler)
		api.PUT("/bookings/:bookingID/reschedule", hb.Booking.RescheduleHandler)
	}
}

// RegisterMeetingRoutes registers meeting provisioning endpoints.
func RegisterMeetingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/meetings")
	{
		api.POST("", hb.Meeting.CreateMeetingHandler)
		api.GET("/validate", hb.Meeting.ValidateMeetingURLHandler)
		api.GET("/:meetingID", hb.Meeting.GetMeetingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm LanSpeech"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPracticeRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterMeetingRoutes(r, hb)
	RegisterHealthRoute(r)
}
