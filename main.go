package main

import (
	"log"

	"github.com/jxeer/Harmonia/config"
	"github.com/jxeer/Harmonia/db"
	"github.com/jxeer/Harmonia/mailingservices"
	"github.com/jxeer/Harmonia/realtime"
	"github.com/jxeer/Harmonia/server"
	"github.com/jxeer/Harmonia/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	gormDB := db.GetDB(conf)

	authRepo := db.NewAuthRepo(gormDB)
	profileRepo := db.NewProfileRepo(gormDB)
	appointmentRepo := db.NewAppointmentRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)
	journalRepo := db.NewJournalRepo(gormDB)
	recordRepo := db.NewRecordRepo(gormDB)
	reviewRepo := db.NewReviewRepo(gormDB)

	bridge := realtime.NewBridge()

	mediaService := services.NewMediaService(conf)
	authService := services.NewAuthService(authRepo, conf)
	profileService := services.NewProfileService(profileRepo, authRepo, conf)
	appointmentService := services.NewAppointmentService(appointmentRepo, profileRepo)
	messageService := services.NewMessageService(messageRepo, authRepo, bridge)
	journalService := services.NewJournalService(journalRepo, profileRepo)
	recordService := services.NewRecordService(recordRepo, profileRepo, mediaService)
	reviewService := services.NewReviewService(reviewRepo, profileRepo)
	analyticsService := services.NewAnalyticsService(appointmentRepo, profileRepo, authRepo)

	s := &server.Server{
		Config:                conf,
		Mail:                  mailgunClient,
		Bridge:                bridge,
		AuthRepository:        authRepo,
		ProfileRepository:     profileRepo,
		AppointmentRepository: appointmentRepo,
		MessageRepository:     messageRepo,
		JournalRepository:     journalRepo,
		RecordRepository:      recordRepo,
		ReviewRepository:      reviewRepo,
		AuthService:           authService,
		ProfileService:        profileService,
		AppointmentService:    appointmentService,
		MessageService:        messageService,
		JournalService:        journalService,
		RecordService:         recordService,
		ReviewService:         reviewService,
		AnalyticsService:      analyticsService,
		MediaService:          mediaService,
		DB:                    db.GormDB{},
	}

	s.Start()
}
