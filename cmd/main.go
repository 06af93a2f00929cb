package main

import (
	"context"
	"net/http"
	"time"

	"github.com/dterira/Quorable/config"
	"github.com/dterira/Quorable/database"
	_ "github.com/dterira/Quorable/docs" // Swagger docs
	"github.com/dterira/Quorable/internal/controller"
	"github.com/dterira/Quorable/internal/logger"
	"github.com/dterira/Quorable/internal/mail"
	"github.com/dterira/Quorable/internal/model"
	"github.com/dterira/Quorable/internal/mq"
	"github.com/dterira/Quorable/internal/repository"
	"github.com/dterira/Quorable/internal/resource"
	"github.com/dterira/Quorable/internal/service"
	"github.com/dterira/Quorable/internal/upload"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quorable API
// @version 1.0
// @description Q&A marketplace API: questions, priced answers, votes and paid access.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			database.NewRedis,
			NewGinEngine,
			mail.NewMailer,
			NewStorage,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuestionRepository,
			repository.NewAnswerRepository,
			repository.NewVoteRepository,
			repository.NewTransactionRepository,
		),

		// Services layer
		fx.Provide(
			resource.NewFormatter,
			service.NewModerationService,
			service.NewAnswerService,
			service.NewQuestionService,
			service.NewVoteService,
			service.NewUserService,
			service.NewFeedService,
			mq.NewConsumer,
		),

		// Controllers layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewQuestionController,
			controller.NewAnswerController,
			controller.NewUserController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(StartApprovalConsumer),
		fx.Invoke(RegisterModerationShutdown),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewStorage(cfg *config.Config) upload.Storage {
	return upload.NewDiskStorage(cfg.Upload.Dir)
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *controller.AuthController,
	questionCtrl *controller.QuestionController,
	answerCtrl *controller.AnswerController,
	userCtrl *controller.UserController,
) {
	api := router.Group("/api/v1")

	// Reads are open; an optional token upgrades the request to a viewer.
	viewer := controller.Auth(cfg, false)
	authed := controller.Auth(cfg, true)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/verify-email", authed, authCtrl.VerifyEmail)
	}

	questions := api.Group("/questions")
	{
		questions.GET("", viewer, questionCtrl.ListQuestions)
		questions.GET("/:id", viewer, questionCtrl.GetQuestion)
		questions.POST("", authed, questionCtrl.CreateQuestion)
		questions.PUT("/:id", authed, questionCtrl.UpdateQuestion)
		questions.DELETE("/:id", authed, questionCtrl.DeleteQuestion)
		questions.POST("/:id/restore", authed, questionCtrl.RestoreQuestion)
	}

	answers := api.Group("/answers")
	{
		answers.GET("/:id", viewer, answerCtrl.GetAnswer)
		answers.POST("", authed, answerCtrl.CreateAnswer)
		answers.PUT("/:id", authed, answerCtrl.UpdateAnswer)
		answers.DELETE("/:id", authed, answerCtrl.DeleteAnswer)
		answers.POST("/:id/restore", authed, answerCtrl.RestoreAnswer)
		answers.PUT("/:id/best", authed, answerCtrl.SetBestAnswer)
		answers.POST("/:id/vote", authed, answerCtrl.VoteAnswer)
	}

	users := api.Group("/users")
	{
		users.GET("/:id", userCtrl.GetUser)
		users.GET("/:id/questions-feed", viewer, userCtrl.QuestionsFeed)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quorable API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func StartApprovalConsumer(lc fx.Lifecycle, consumer *mq.Consumer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return consumer.Start(context.Background())
		},
		OnStop: func(ctx context.Context) error {
			consumer.Close()
			return nil
		},
	})
}

func RegisterModerationShutdown(lc fx.Lifecycle, moderation service.ModerationService) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return moderation.Close()
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Answer{},
		&model.Vote{},
		&model.Transaction{},
		&model.Tag{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
