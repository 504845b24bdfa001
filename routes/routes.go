package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pg-backend/controllers"
	"pg-backend/middleware"
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

// SetupRouter wires the controllers onto the HTTP surface. Everything under
// /api requires a verified principal; mutations additionally pass the
// capability check.
func SetupRouter(
	rc *controllers.RoomController,
	gc *controllers.GuestController,
	pc *controllers.PaymentController,
	repc *controllers.ReportController,
	ac *controllers.ActivityController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

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
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.BearerAuth())
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.ListRooms)
			rooms.GET("/:room_number", rc.GetRoom)
			rooms.POST("", middleware.RequireCapability(middleware.CapManageRooms), rc.CreateRoom)
			rooms.PUT("/:room_number", middleware.RequireCapability(middleware.CapManageRooms), rc.UpdateRoom)
			rooms.DELETE("/:room_number", middleware.RequireCapability(middleware.CapManageRooms), rc.DeleteRoom)

			rooms.GET("/:room_number/guests", gc.ListGuests)
			rooms.POST("/:room_number/guests",
				middleware.RequireCapability(middleware.CapManageGuests), gc.AddGuest)
			rooms.PUT("/:room_number/guests/:user_id",
				middleware.RequireCapability(middleware.CapManageGuests), gc.UpdateGuest)
			rooms.DELETE("/:room_number/guests/:user_id",
				middleware.RequireCapability(middleware.CapManageGuests), gc.RemoveGuest)

			rooms.POST("/:room_number/guests/:user_id/payments",
				middleware.RequireCapability(middleware.CapRecordPayments), pc.AddPayment)
		}

		payments := api.Group("/payments")
		{
			payments.GET("/details", repc.PaymentDetails)
			payments.GET("/overdue", repc.OverduePayments)
			payments.GET("/analytics", repc.PaymentAnalytics)
			payments.GET("/notifications", repc.PaymentNotifications)
			payments.GET("/monthly-pending", repc.PendingMonthlyGuests)

			payments.GET("/export/csv", repc.ExportCSV)
			payments.GET("/export/pdf", repc.ExportPDF)
			payments.GET("/export/xlsx", repc.ExportXLSX)

			payments.POST("/send-notifications",
				middleware.RequireCapability(middleware.CapSendNotifications), repc.SendBulkNotifications)
			payments.POST("/send-monthly-reminders",
				middleware.RequireCapability(middleware.CapSendNotifications), repc.SendMonthlyReminders)
		}

		all := api.Group("/all/rooms")
		{
			all.GET("/statistics", rc.Statistics)
			all.GET("/available", rc.AvailableRooms)
			all.GET("/occupied", rc.OccupiedRooms)
			all.GET("/search", rc.SearchRooms)
		}

		api.GET("/activities/recent", ac.Recent)
	}

	return r
}
