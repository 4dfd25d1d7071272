package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vsit/placement-hub/internal/api/handlers"
	"github.com/vsit/placement-hub/internal/api/middleware"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Role      *handlers.RoleHandler
	Profile   *handlers.ProfileHandler
	Directory *handlers.DirectoryHandler
	Jobs      *handlers.JobHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/auth/signup", d.Auth.SignUp)
	r.POST("/auth/login", d.Auth.Login)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.GET("/me/role", d.Role.Resolve)

	auth.GET("/profile/me", d.Profile.Me)
	auth.POST("/profile/save", d.Profile.Save)
	auth.POST("/profile/resume", d.Profile.GenerateResume)

	// The middleware gate is the fast path; DirectoryService checks
	// the stored role again before releasing records.
	staff := auth.Group("/directory")
	staff.Use(middleware.RequireStaff())
	staff.GET("/students", d.Directory.List)
	staff.GET("/students/:id/export", d.Directory.Export)

	auth.GET("/jobs", d.Jobs.ListActive)
	auth.POST("/jobs", middleware.RequireStaff(), d.Jobs.Create)
	auth.POST("/jobs/:id/apply", d.Jobs.Apply)
	auth.GET("/jobs/applications", d.Jobs.MyApplications)
}
