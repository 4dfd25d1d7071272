package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vsit/placement-hub/config"
	"github.com/vsit/placement-hub/internal/api/handlers"
	"github.com/vsit/placement-hub/internal/api/middleware"
	"github.com/vsit/placement-hub/internal/api/routes"
	"github.com/vsit/placement-hub/internal/cache"
	"github.com/vsit/placement-hub/internal/logger"
	"github.com/vsit/placement-hub/internal/models"
	"github.com/vsit/placement-hub/internal/providers/resume"
	pgrepo "github.com/vsit/placement-hub/internal/repositories/postgres"
	"github.com/vsit/placement-hub/internal/services"
	"github.com/vsit/placement-hub/internal/storage"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()
	ctx := context.Background()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	if err := config.PostgresDB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Student{},
		&models.JobPosting{},
		&models.Application{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	var directoryCache cache.Cache
	if err := config.InitRedis(); err != nil {
		l.WithError(err).Warn("Redis unavailable, directory caching disabled")
	} else {
		l.Info("Redis connected")
		directoryCache = cache.NewRedisCache(config.RedisClient)
	}

	uploader, localDir, err := buildUploader(ctx)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}

	var generator resume.Generator
	if project := os.Getenv("VERTEX_PROJECT_ID"); project != "" {
		g, err := resume.NewVertexGemini(ctx, project, os.Getenv("VERTEX_LOCATION"), os.Getenv("VERTEX_MODEL"))
		if err != nil {
			log.Fatalf("vertex init error: %v", err)
		}
		defer g.Close()
		generator = g
	} else {
		l.Warn("VERTEX_PROJECT_ID not set, resume generation disabled")
	}

	userRepo := pgrepo.NewUserRepo(config.PostgresDB)
	profileRepo := pgrepo.NewProfileRepo(config.PostgresDB)
	studentRepo := pgrepo.NewStudentRepo(config.PostgresDB)
	postingRepo := pgrepo.NewJobPostingRepo(config.PostgresDB)
	applicationRepo := pgrepo.NewApplicationRepo(config.PostgresDB)

	roleSvc := services.NewRoleService(profileRepo)
	authSvc := services.NewAuthService(userRepo, profileRepo, roleSvc)
	studentSvc := services.NewStudentService(studentRepo, roleSvc, uploader, directoryCache, generator)
	directorySvc := services.NewDirectoryService(studentRepo, roleSvc, directoryCache, time.Minute)
	jobSvc := services.NewJobService(postingRepo, applicationRepo)

	r := gin.New()
	r.Use(middleware.RequestLogger(l), gin.Recovery())
	if localDir != "" {
		r.Static("/uploads", localDir)
	}

	routes.RegisterRoutes(r, routes.Deps{
		Auth:      handlers.NewAuthHandler(authSvc),
		Role:      handlers.NewRoleHandler(roleSvc),
		Profile:   handlers.NewProfileHandler(studentSvc),
		Directory: handlers.NewDirectoryHandler(directorySvc),
		Jobs:      handlers.NewJobHandler(jobSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func buildUploader(ctx context.Context) (storage.Uploader, string, error) {
	if os.Getenv("STORAGE_BACKEND") == "local" {
		dir := os.Getenv("UPLOADS_DIR")
		if dir == "" {
			dir = "uploads"
		}
		base := os.Getenv("UPLOADS_BASE_URL")
		if base == "" {
			base = "http://localhost:8080/uploads"
		}
		u, err := storage.NewLocalUploader(dir, base)
		return u, dir, err
	}
	u, err := storage.NewGCSUploader(ctx, os.Getenv("GCS_BUCKET"))
	return u, "", err
}
