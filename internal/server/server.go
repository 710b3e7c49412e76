package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskapi/internal/config"
	"taskapi/internal/handler"
	"taskapi/internal/middleware"
	"taskapi/internal/model"
	"taskapi/internal/repository"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM. The connection is lazy: a dead database at startup is
	// logged, not fatal — individual requests fail until it comes back.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN()), &gorm.Config{
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to open database handle: %w", err)
	}

	if sqlDB, dbErr := db.DB(); dbErr == nil {
		if pingErr := sqlDB.Ping(); pingErr != nil {
			log.Printf("⚠️  Database unreachable at startup: %v", pingErr)
		} else {
			log.Println("✅ Connected to database")
			if migErr := db.AutoMigrate(&model.Task{}); migErr != nil {
				log.Printf("⚠️  Auto-migration failed: %v", migErr)
			}
		}
	}

	// Setup Gin
	r := gin.New()
	r.Use(gin.Logger(), middleware.Recovery(), middleware.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	taskRepo := repository.NewTaskRepository(db)
	taskHandler := handler.NewTaskHandler(taskRepo)

	r.GET("/", handler.ServiceInfo)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	tasks := r.Group("/api/tasks")
	{
		tasks.POST("",
			middleware.Validate(middleware.Schemas{Body: middleware.CreateTaskBody()}),
			taskHandler.Create)
		tasks.GET("",
			middleware.Validate(middleware.Schemas{Query: middleware.ListTasksQuery()}),
			taskHandler.List)
		tasks.GET("/:id",
			middleware.Validate(middleware.Schemas{Params: middleware.TaskIDParams()}),
			taskHandler.GetByID)
		tasks.PUT("/:id",
			middleware.Validate(middleware.Schemas{Body: middleware.UpdateTaskBody(), Params: middleware.TaskIDParams()}),
			taskHandler.Update)
		tasks.DELETE("/:id",
			middleware.Validate(middleware.Schemas{Params: middleware.TaskIDParams()}),
			taskHandler.Delete)
	}

	r.NoRoute(middleware.NotFound())

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
