package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jxeer/Harmonia/models"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	loginLimit := limitRateForLogin(newRateLimitStore(time.Minute, 10))
	resetLimit := limitRateForPasswordReset(newRateLimitStore(time.Minute, 3))

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", loginLimit, s.handleLogin())
	apirouter.POST("/password/forgot", resetLimit, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())
	apirouter.GET("/providers/:providerID/reviews", s.handleGetProviderReviews())

	router.GET("/ws", s.handleWebSocket())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())

	authorized.POST("/onboarding/patient", s.handlePatientOnboarding())
	authorized.POST("/onboarding/provider", s.handleProviderOnboarding())
	authorized.GET("/profile/patient", s.handleGetPatientProfile())
	authorized.PUT("/profile/patient", s.handleUpdatePatientProfile())
	authorized.GET("/profile/provider", s.handleGetProviderProfile())
	authorized.PUT("/profile/provider", s.handleUpdateProviderProfile())
	authorized.GET("/providers/search", s.handleSearchProviders())
	authorized.PUT("/me/image", s.handleUpdateUserImage())

	authorized.POST("/appointments", s.handleBookAppointment())
	authorized.GET("/appointments", s.handleGetAppointments())
	authorized.PATCH("/appointments/:appointmentID", s.handleUpdateAppointment())

	authorized.POST("/messages", s.handleSendMessage())
	authorized.GET("/messages/recent", s.handleGetRecentMessages())
	authorized.GET("/messages/:otherUserID", s.handleGetThread())

	authorized.POST("/journal", s.handleCreateJournalEntry())
	authorized.GET("/journal", s.handleGetJournalEntries())

	authorized.POST("/records", s.handleCreateMedicalRecord())
	authorized.GET("/records", s.handleGetMedicalRecords())

	authorized.POST("/reviews", s.handleCreateReview())

	authorized.GET("/analytics/provider", s.RequireRole(models.RoleProvider), s.handleProviderAnalytics())

	admin := authorized.Group("/admin")
	admin.Use(s.RequireRole(models.RoleAdmin))
	admin.GET("/stats", s.handleAdminStats())
	admin.GET("/users", s.handleGetAllUsers())
}
