package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/intern-allocation-api/internal/middleware"
	"github.com/yukikurage/intern-allocation-api/internal/models"
)

// Handlers groups every HTTP handler the router serves
type Handlers struct {
	Auth       *AuthHandler
	Skill      *SkillHandler
	Project    *ProjectHandler
	Intern     *InternHandler
	Assignment *AssignmentHandler
	Allocation *AllocationHandler
	Report     *ReportHandler
	// Metrics is optional
	Metrics http.Handler
}

// RegisterRoutes mounts the API on r. Session middleware must already be
// installed.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Intern Allocation API is running",
		})
	})
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())

		skills := protected.Group("/skills")
		{
			skills.GET("", h.Skill.ListSkills)
			skills.POST("", middleware.RequireRole(models.RoleAdmin), h.Skill.CreateSkill)
		}

		// Intern self-service routes
		me := protected.Group("/me")
		me.Use(middleware.RequireRole(models.RoleIntern))
		{
			me.GET("/profile", h.Intern.GetProfile)
			me.PUT("/profile", h.Intern.UpdateProfile)
			me.GET("/assignments", h.Intern.ListAssignments)
			me.POST("/assignments/:project_id/complete", h.Intern.CompleteProject)
			me.GET("/completed", h.Intern.ListCompleted)
		}

		// Admin routes
		admin := protected.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/projects", h.Project.CreateProject)
			admin.GET("/projects", h.Project.ListProjects)
			admin.POST("/projects/generate", h.Project.GenerateProjects)

			admin.POST("/allocate", h.Allocation.RunAllocation)
			admin.POST("/assignments", h.Assignment.AssignProject)

			admin.GET("/interns", h.Report.ListInterns)
			admin.GET("/reports/completed", h.Report.CompletedReport)
			admin.GET("/reports/interns", h.Report.InternReport)
		}
	}
}
