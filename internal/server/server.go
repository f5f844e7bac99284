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

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Apply schema migrations before opening the GORM connection
	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	columnRepo := repository.NewColumnRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	boardHandler := handler.NewBoardHandler(boardRepo)
	columnHandler := handler.NewColumnHandler(columnRepo, boardRepo)
	ticketHandler := handler.NewTicketHandler(ticketRepo, columnRepo, boardRepo)

	// Public routes
	r.POST("/api/user/register", userHandler.Register)
	r.POST("/api/user/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		authorized.GET("/api/users/profile", userHandler.Profile)
		authorized.PUT("/api/users/edit", userHandler.UpdateProfile)

		// Board routes
		authorized.POST("/api/boards/add", boardHandler.Create)
		authorized.GET("/api/boards/get", boardHandler.Get)
		authorized.PUT("/api/boards/:id", boardHandler.Update)

		// Column routes
		authorized.POST("/api/columns/add", columnHandler.Create)
		authorized.PUT("/api/columns/:id", columnHandler.Update)
		authorized.DELETE("/api/columns/:id", columnHandler.Delete)
		authorized.POST("/api/columns/reorder", columnHandler.Reorder)

		// Ticket routes
		authorized.POST("/api/tickets/add", ticketHandler.Create)
		authorized.PUT("/api/tickets/:id", ticketHandler.Update)
		authorized.DELETE("/api/tickets/:id", ticketHandler.Delete)
		authorized.POST("/api/tickets/reorder", ticketHandler.Reorder)
	}

	return &Server{
		Engine: r,
		DB:     gormDB,
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
