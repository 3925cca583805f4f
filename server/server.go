package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/jxeer/Harmonia/config"
	"github.com/jxeer/Harmonia/db"
	"github.com/jxeer/Harmonia/mailingservices"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/realtime"
	"github.com/jxeer/Harmonia/services"
)

type Server struct {
	Config                *config.Config
	Mail                  mailingservices.Mailer
	Bridge                *realtime.Bridge
	AuthRepository        db.AuthRepository
	ProfileRepository     db.ProfileRepository
	AppointmentRepository db.AppointmentRepository
	MessageRepository     db.MessageRepository
	JournalRepository     db.JournalRepository
	RecordRepository      db.RecordRepository
	ReviewRepository      db.ReviewRepository
	AuthService           services.AuthService
	ProfileService        services.ProfileService
	AppointmentService    services.AppointmentService
	MessageService        services.MessageService
	JournalService        services.JournalService
	RecordService         services.RecordService
	ReviewService         services.ReviewService
	AnalyticsService      services.AnalyticsService
	MediaService          services.MediaService
	DB                    db.GormDB
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains websocket
// connections and shuts down gracefully.
func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if portEnv := os.Getenv("PORT"); portEnv != "" {
		fmt.Sscanf(portEnv, "%d", &port)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("Harmonia server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	if s.Bridge != nil {
		s.Bridge.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}

var trans ut.Translator

func init() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = entranslations.RegisterDefaultTranslations(v, trans)
	}
}

// decode binds the request body to v and translates validator errors
// into field-level messages.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			translated := models.TranslateError(err, trans)
			return fmt.Errorf("%v", translated)
		}
		return err
	}
	return nil
}
