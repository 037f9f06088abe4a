package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/truelife/learningapp/internal/app/controllers"
	"github.com/truelife/learningapp/internal/app/migrations"
	"github.com/truelife/learningapp/internal/app/repositories"
	"github.com/truelife/learningapp/internal/app/routes"
	"github.com/truelife/learningapp/internal/app/services"
	"github.com/truelife/learningapp/internal/config"
	"github.com/truelife/learningapp/internal/db"
	"github.com/truelife/learningapp/internal/middleware"
	"github.com/truelife/learningapp/internal/notifications"
	"github.com/truelife/learningapp/internal/pkg/auth"
	"github.com/truelife/learningapp/internal/pkg/events"
	"github.com/truelife/learningapp/internal/pkg/helpers"
	"github.com/truelife/learningapp/internal/pkg/logger"
	"github.com/truelife/learningapp/internal/pkg/mailer"
	"github.com/truelife/learningapp/internal/seed"
	"github.com/truelife/learningapp/internal/server"

	_ "github.com/truelife/learningapp/docs" // swagger docs
)

// App holds the assembled application
type App struct {
	Config   *config.Config
	Database *db.PostgresDB
	Server   *server.Server
}

// New builds the application: database, repositories, event bus, services,
// controllers and router, wired explicitly in one place.
func New(cfg *config.Config) (*App, error) {
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	if err := migrations.Run(ctx, database.Pool); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if cfg.Server.Mode == "development" {
		if err := seed.Run(ctx, database.Pool); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	repos := repositories.NewRepositories(database.Pool)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		FromName:    cfg.SMTP.FromName,
		FromAddress: cfg.SMTP.FromAddress,
	}, logger.Get())

	bus := events.NewBus(logger.Get())
	dispatcher := notifications.NewDispatcher(sender, notifications.Config{
		AppTitle:           cfg.Notifications.AppTitle,
		ResetPasswordURL:   cfg.Notifications.ResetPasswordURL,
		AdminEnrollmentURL: cfg.Notifications.AdminEnrollmentURL,
		OperatorEmail:      cfg.Notifications.OperatorEmail,
	}, logger.Get())
	dispatcher.Register(bus)

	authService := services.NewAuthService(
		repos.UserRepository,
		repos.PasswordResetTokenRepository,
		jwtService,
		bus,
		helpers.ParseDuration(cfg.Notifications.ResetTokenExpiration, 24*time.Hour),
	)
	catalogService := services.NewCatalogService(
		repos.CategoryRepository,
		repos.CourseRepository,
		repos.DiscountRepository,
		repos.SliderRepository,
		repos.SectionRepository,
	)
	studentService := services.NewStudentService(repos.StudentRepository)
	enrollmentService := services.NewEnrollmentService(
		database,
		repos.EnrollmentRepository,
		repos.StudentRepository,
		repos.CourseRepository,
		bus,
	)
	reviewService := services.NewReviewService(
		repos.ReviewRepository,
		repos.StudentRepository,
		repos.CourseRepository,
	)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, routes.Controllers{
		Auth:       controllers.NewAuthController(authService),
		Catalog:    controllers.NewCatalogController(catalogService),
		Student:    controllers.NewStudentController(studentService),
		Enrollment: controllers.NewEnrollmentController(enrollmentService),
		Review:     controllers.NewReviewController(reviewService),
	}, jwtService)

	return &App{
		Config:   cfg,
		Database: database,
		Server:   server.New(cfg, router),
	}, nil
}

// Close releases application resources
func (a *App) Close() {
	if a.Database != nil {
		a.Database.Close()
	}
}
