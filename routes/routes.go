package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"agendabot/handlers"
	"agendabot/middleware"
)

// Bundle collects the handlers the router wires up.
type Bundle struct {
	Auth         *handlers.AuthHandler
	Admin        *handlers.AdminHandler
	Booking      *handlers.BookingHandler
	Conversation *handlers.ConversationHandler
	Chat         *handlers.ChatHandler
}

// Register mounts all routes. The chat endpoints stay open for the local
// transport process; everything the admin panel uses sits behind the admin
// token.
func Register(r *gin.Engine, b *Bundle, jwtSecret []byte) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.POST("/admin/login", b.Auth.Login)

		// Transport collaborator endpoints.
		api.POST("/chat/inbound", b.Chat.Inbound)
		api.POST("/chat/ack", b.Chat.Ack)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminAuthMiddleware(jwtSecret))
	{
		admin.GET("/stats", b.Admin.Stats)
		admin.GET("/config", b.Admin.GetConfig)
		admin.PUT("/config", b.Admin.UpdateConfig)

		admin.GET("/bookings", b.Booking.ListBookings)
		admin.POST("/bookings", b.Booking.CreateBooking)
		admin.DELETE("/bookings", b.Booking.CancelBooking)
		admin.GET("/availability/:date", b.Booking.Availability)

		admin.GET("/conversations", b.Conversation.ListConversations)
		admin.GET("/conversations/:client/messages", b.Conversation.Messages)
	}
}
