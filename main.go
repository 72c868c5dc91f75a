package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	appointmentRepoPkg "medibook/database/repository/appointment"
	providerRepoPkg "medibook/database/repository/provider"
	subjectRepoPkg "medibook/database/repository/subject"
	"medibook/handlers"
	"medibook/routes"
	"medibook/services/booking"
	"medibook/services/dashboard"
	"medibook/services/payment"
	providerSvc "medibook/services/provider"
	subjectSvc "medibook/services/subject"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	subjRepo := subjectRepoPkg.NewMongoSubjectRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// services.
	reminderScheduler := tasks.NewAsynqReminderScheduler(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	bookingService := &booking.DefaultBookingService{
		Providers:    provRepo,
		Subjects:     subjRepo,
		Appointments: apptRepo,
		Reminders:    reminderScheduler,
		Logger:       logger,
	}

	paymentService := &payment.DefaultPaymentService{
		Appointments:  apptRepo,
		Gateway:       payment.NewRazorpayGateway(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpayKeySecret),
		Orders:        &payment.RedisOrderStore{Client: utils.GetCacheClient()},
		KeySecret:     config.AppConfig.RazorpayKeySecret,
		WebhookSecret: config.AppConfig.StripeWebhookSecret,
		Currency:      config.AppConfig.Currency,
		Logger:        logger,
	}

	dashboardService := &dashboard.DefaultDashboardService{
		Appointments: apptRepo,
	}

	subjectService := &subjectSvc.DefaultSubjectService{
		Repo: subjRepo,
	}
	providerService := &providerSvc.DefaultProviderService{
		Repo: provRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking:   bookingService,
		Payment:   paymentService,
		Dashboard: dashboardService,
		Subjects:  subjectService,
		Providers: providerService,
		Storage:   storageService,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the reminder worker.
	cron.InitReminderWorker()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
