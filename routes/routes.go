package routes

import (
	"net/http"

	"rihla/auth"
	"rihla/bookings"
	"rihla/flags"
	"rihla/middleware"
	"rihla/profile"
	"rihla/ratelim"
	"rihla/requests"
	"rihla/settings"
	"rihla/stats"
	"rihla/trips"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/trippic/*filepath", http.Dir("static/trippic"))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(h.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(h.RefreshToken))
	router.POST("/api/auth/forgot-password", rl.Limit(h.ForgotPassword))
	router.POST("/api/auth/reset-password/:token", rl.Limit(h.ResetPassword))

	router.GET("/api/auth/admins", middleware.Authenticate(middleware.RequireAdmin(h.ListAdmins)))
	router.POST("/api/auth/admins", middleware.Authenticate(middleware.RequireAdmin(h.CreateAdmin)))
	router.DELETE("/api/auth/admins/:id", middleware.Authenticate(middleware.RequireAdmin(h.DeleteAdmin)))
}

func AddTripRoutes(router *httprouter.Router, h *trips.Handler) {
	router.GET("/api/trips", middleware.OptionalAuth(h.GetTrips))
	router.GET("/api/trips/:id", middleware.OptionalAuth(h.GetTrip))
	router.POST("/api/trips", middleware.Authenticate(middleware.RequireAdmin(h.CreateTrip)))
	router.PUT("/api/trips/:id", middleware.Authenticate(middleware.RequireAdmin(h.UpdateTrip)))
	router.DELETE("/api/trips/:id", middleware.Authenticate(middleware.RequireAdmin(h.DeleteTrip)))
	router.POST("/api/trips/:id/image", middleware.Authenticate(middleware.RequireAdmin(h.UploadImage)))
}

func AddBookingRoutes(router *httprouter.Router, h *bookings.Handler, hub *bookings.Hub, rl *ratelim.RateLimiter) {
	router.POST("/api/bookings", rl.Limit(h.CreateBooking))
	router.GET("/api/bookings", middleware.Authenticate(middleware.RequireAdmin(h.GetBookings)))
	// separate prefixes: httprouter rejects static children next to :id
	router.GET("/api/export/bookings", middleware.Authenticate(middleware.RequireAdmin(h.ExportCSV)))
	router.POST("/api/checkin", middleware.Authenticate(middleware.RequireAdmin(h.Checkin)))
	router.GET("/api/live/bookings", hub.ServeLive)
	router.GET("/api/bookings/:id", middleware.Authenticate(middleware.RequireAdmin(h.GetBooking)))
	router.GET("/api/bookings/:id/ticket", middleware.Authenticate(h.PrintTicket))
	router.PUT("/api/bookings/:id/status", middleware.Authenticate(middleware.RequireAdmin(h.UpdateStatus)))
	router.DELETE("/api/bookings/:id", middleware.Authenticate(middleware.RequireAdmin(h.DeleteBooking)))
}

func AddFlagRoutes(router *httprouter.Router, h *flags.Handler) {
	router.GET("/api/flags/:cin", middleware.Authenticate(middleware.RequireAdmin(h.GetFlag)))
	router.PUT("/api/flags/:cin", middleware.Authenticate(middleware.RequireAdmin(h.SetFlag)))
}

func AddRequestRoutes(router *httprouter.Router, h *requests.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/requests", rl.Limit(h.CreateRequest))
	router.GET("/api/requests", middleware.Authenticate(middleware.RequireAdmin(h.GetRequests)))
}

func AddSettingsRoutes(router *httprouter.Router, h *settings.Handler) {
	router.GET("/api/settings/whatsapp", h.GetWhatsappNumber)
	router.POST("/api/settings/whatsapp", middleware.Authenticate(middleware.RequireAdmin(h.SetWhatsappNumber)))
}

func AddStatsRoutes(router *httprouter.Router, h *stats.Handler) {
	router.GET("/api/stats", middleware.Authenticate(middleware.RequireAdmin(h.GetStats)))
}

func AddProfileRoutes(router *httprouter.Router, h *profile.Handler) {
	router.GET("/api/profile", middleware.Authenticate(h.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(h.UpdateProfile))
}
