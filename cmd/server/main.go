package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/ats-interviewer/internal/config"
	"github.com/fadilmartias/ats-interviewer/internal/domain/fiber/handler"
	"github.com/fadilmartias/ats-interviewer/internal/logger"
	"github.com/fadilmartias/ats-interviewer/internal/middleware"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/fadilmartias/ats-interviewer/internal/repository"
	"github.com/fadilmartias/ats-interviewer/internal/service"
	"github.com/fadilmartias/ats-interviewer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		fmt.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	log := logger.New(appConfig.Env, "info")
	defer log.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(requestid.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))
	app.Use(middleware.ResolveActor())

	db := connectDB(log)

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	gemini, err := service.NewGeminiService(ctx, log)
	if err != nil {
		log.Fatal("gemini init failed", zap.Error(err))
	}
	questionBank := service.NewQuestionBank(questionRepo, gemini, log)

	evaluatorConfig := config.LoadEvaluatorConfig()
	var evaluator usecase.Evaluator
	switch evaluatorConfig.Provider {
	case "openrouter":
		evaluator = service.NewOpenRouterEvaluator(log)
	default:
		evaluator = service.NewGeminiEvaluator(gemini)
	}

	appUC := usecase.NewApplicationUsecase(appRepo, jobRepo, questionBank, log)
	coordinator := usecase.NewCompletionCoordinator(interviewRepo, appRepo, jobRepo, evaluator, appUC, evaluatorConfig.Timeout, log)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, appRepo, coordinator, log)
	jobUC := usecase.NewJobUsecase(jobRepo, appRepo, interviewRepo, userRepo, gemini, log)
	adminUC := usecase.NewAdminUsecase(appRepo, interviewRepo, jobRepo, userRepo)

	handler.NewCandidateHandler(appUC, interviewUC, jobUC).RegisterRoutes(app)
	handler.NewRecruiterHandler(jobUC, appUC).RegisterRoutes(app)
	handler.NewAdminHandler(adminUC).RegisterRoutes(app)

	if appConfig.Env != "production" {
		if err := questionBank.SeedDefaults(ctx); err != nil {
			log.Warn("question bank seeding failed", zap.Error(err))
		}
	}

	log.Info("server running", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func connectDB(log *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	// TranslateError turns postgres unique violations into
	// gorm.ErrDuplicatedKey, which the repositories rely on for the
	// duplicate-application and one-interview-per-application guards.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	for _, ext := range []string{"uuid-ossp", "vector"} {
		if err := db.Exec(fmt.Sprintf(`CREATE EXTENSION IF NOT EXISTS %q`, ext)).Error; err != nil {
			log.Fatal("extension setup failed", zap.String("extension", ext), zap.Error(err))
		}
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Job{},
		&model.QuestionTemplate{},
		&model.Application{},
		&model.Interview{},
	)
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	return db
}
