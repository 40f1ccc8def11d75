package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barbershop-backend/config"
	"barbershop-backend/controllers"
	"barbershop-backend/routes"
	"barbershop-backend/services"
	"barbershop-backend/store"
	"barbershop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1], os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}

// runCommand handles the helper subcommands used while provisioning.
func runCommand(name string, args []string) error {
	switch name {
	case "gen-secret":
		secret, err := utils.GenerateJWTSecret()
		if err != nil {
			return err
		}
		fmt.Println(secret)
		return nil
	case "hash-password":
		if len(args) != 1 {
			return errors.New("usage: hash-password <password>")
		}
		hash, err := utils.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	appointmentStore, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	checks := []controllers.ReadyCheck{{Name: "store", Check: appointmentStore.Ping}}

	var limiter utils.RateLimiter
	if cfg.RedisURL != "" {
		rdb, err := config.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = utils.NewRedisRateLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow, "barbershop:appointments")
		checks = append(checks, controllers.ReadyCheck{Name: "redis", Check: redisCheck(rdb)})
		logger.Info("rate limiting through redis")
	} else {
		limiter = utils.NewMemoryRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	var mailer services.ConfirmationSender = services.NewNoopEmailSender(logger)
	if cfg.EmailEnabled() {
		mailer = services.NewSMTPEmailSender(services.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			Business: cfg.BusinessName,
		}, logger)
	} else {
		logger.Warn("GMAIL_USER/GMAIL_PASS not set, confirmation emails disabled")
	}

	var texter services.ReminderSender = services.NewNoopSMSSender(logger)
	if cfg.SMSEnabled() {
		texter = services.NewTwilioSMSSender(services.TwilioConfig{
			AccountSID:  cfg.TwilioAccountSID,
			AuthToken:   cfg.TwilioAuthToken,
			FromNumber:  cfg.TwilioPhoneNumber,
			CountryCode: cfg.PhoneCountryCode,
			Business:    cfg.BusinessName,
			Contact:     cfg.BusinessPhone,
		}, logger)
	} else {
		logger.Warn("Twilio credentials not set, SMS reminders disabled")
	}

	apiDocs, err := controllers.NewDocsController()
	if err != nil {
		return err
	}

	appointments := services.NewAppointmentService(appointmentStore, cfg.Location(), logger)

	scheduler, err := services.NewScheduler(services.SchedulerConfig{
		CleanupSchedule:  cfg.CleanupSchedule,
		ReminderSchedule: cfg.ReminderSchedule,
		Location:         cfg.BusinessLocation,
	}, appointments, texter, logger)
	if err != nil {
		return err
	}
	if cfg.CleanupOnStart {
		scheduler.RunCleanup(ctx)
	}
	scheduler.Start()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.SetupRouter(routes.Dependencies{
		Appointments: controllers.NewAppointmentController(appointments, mailer, cfg.BusinessLocation, logger),
		Auth:         controllers.NewAuthController(cfg.DashboardUser, cfg.DashboardPass, cfg.JWTSecret, cfg.JWTExpiry(), logger),
		Dashboard:    controllers.NewDashboardController(appointments, logger),
		Reminders:    controllers.NewReminderController(scheduler, logger),
		Docs:         apiDocs,
		Health:       controllers.NewHealthController(checks...),
		Limiter:      limiter,
		JWTSecret:    cfg.JWTSecret,
		CORSOrigins:  cfg.CORSOrigins,
		Logger:       logger,
	})
	printRoutes(r, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}

// openStore connects the backend named by STORE_DRIVER. The returned func
// releases its connections.
func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (services.AppointmentStore, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		db, err := config.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewPostgresStore(db)
		if err := s.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrate appointments: %w", err)
		}
		logger.Info("connected to postgres")
		return s, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil

	case "mongo":
		client, err := config.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewMongoStore(client.Database(cfg.MongoDatabase).Collection("appointments"))
		if err := s.EnsureIndexes(ctx); err != nil {
			return nil, nil, fmt.Errorf("create appointment indexes: %w", err)
		}
		logger.WithField("database", cfg.MongoDatabase).Info("connected to mongodb")
		return s, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}, nil

	default:
		logger.Warn("using in-memory store, appointments are lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}
}

func redisCheck(rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

func printRoutes(r *gin.Engine, logger *logrus.Logger) {
	for _, route := range r.Routes() {
		logger.Debugf("%-6s %s", route.Method, route.Path)
	}
}
