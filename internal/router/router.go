package router

import (
	"time"

	"github.com/forgeboard-dev/forgeboard/internal/handlers"
	"github.com/forgeboard-dev/forgeboard/internal/middleware"
	"github.com/forgeboard-dev/forgeboard/internal/store"
	"github.com/forgeboard-dev/forgeboard/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *handlers.Handler, users *store.UserStore) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.AuthMiddleware(users)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/contact", h.SendContactEmail)
		api.POST("/newsletter/subscribe", h.SubscribeToNewsletter)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", authRequired, h.Me)
		}

		userRoutes := api.Group("/users", authRequired)
		{
			userRoutes.GET("", h.ListUsers)
			userRoutes.PATCH("/:user_id/role", h.UpdateUserRole)
			userRoutes.DELETE("/:user_id", h.DeleteUser)
			userRoutes.GET("/:user_id/projects", h.ListProjectsForUser)
		}

		taskRoutes := api.Group("/tasks", authRequired)
		{
			taskRoutes.GET("/:task_id", h.GetTaskDetails)
		}

		projects := api.Group("/projects", authRequired)
		{
			projects.POST("", h.CreateProject)
			projects.GET("", h.ListProjects)
			projects.GET("/:project_id", h.GetProject)
			projects.DELETE("/:project_id", h.DeleteProject)
			projects.PATCH("/:project_id/status", h.UpdateProjectStatus)
			projects.PATCH("/:project_id/deadline", h.UpdateProjectDeadline)
			projects.PATCH("/:project_id/description", h.UpdateProjectDescription)
			projects.PATCH("/:project_id/managers", h.AddManager)
			projects.DELETE("/:project_id/managers/:user_id", h.RemoveManager)

			// Columns
			projects.GET("/:project_id/columns", h.GetColumns)
			projects.POST("/:project_id/columns", h.CreateColumn)
			projects.POST("/:project_id/columns/batch", h.SeedColumns)
			projects.PATCH("/:project_id/columns/positions", h.RepositionColumns)
			projects.PATCH("/:project_id/columns/:column_id", h.UpdateColumnTitle)
			projects.DELETE("/:project_id/columns/:column_id", h.DeleteColumn)

			// Tasks
			projects.POST("/:project_id/columns/:column_id/tasks", h.CreateTask)
			projects.PATCH("/:project_id/columns/:column_id/tasks/:task_id", h.UpdateTaskCompletion)
			projects.PATCH("/:project_id/columns/:column_id/tasks/:task_id/title", h.UpdateTaskTitle)
			projects.PATCH("/:project_id/columns/:column_id/tasks/:task_id/date", h.UpdateTaskDate)
			projects.PATCH("/:project_id/columns/:column_id/tasks/:task_id/description", h.UpdateTaskDescription)
			projects.PATCH("/:project_id/columns/:column_id/tasks/:task_id/assign", h.AssignTask)
			projects.DELETE("/:project_id/columns/:column_id/tasks/:task_id", h.DeleteTask)
			projects.POST("/:project_id/columns/:column_id/tasks/:task_id/move/:to_column_id", h.MoveTask)
			projects.POST("/:project_id/columns/:column_id/tasks/:task_id/reorder", h.ReorderTask)
			projects.GET("/:project_id/tasks", h.GetAllTasks)
			projects.GET("/:project_id/tasks/assigned/:user_id", h.GetAssignedTasks)
			projects.POST("/:project_id/auto-assign", h.AutoAssignTasks)

			// Subtasks
			projects.GET("/:project_id/columns/:column_id/tasks/:task_id/subtasks", h.GetSubtasks)
			projects.POST("/:project_id/columns/:column_id/tasks/:task_id/subtasks", h.CreateSubtask)
			projects.PATCH("/:project_id/columns/:column_id/tasks/:task_id/subtasks/:subtask_id/title", h.UpdateSubtaskTitle)
			projects.PATCH("/:project_id/columns/:column_id/tasks/:task_id/subtasks/:subtask_id/completion", h.UpdateSubtaskCompletion)
			projects.DELETE("/:project_id/columns/:column_id/tasks/:task_id/subtasks/:subtask_id", h.DeleteSubtask)

			// Templates
			projects.GET("/:project_id/templates", h.GetTemplates)
			projects.POST("/:project_id/templates", h.CreateTemplate)
			projects.PATCH("/:project_id/templates/:template_id", h.UpdateTemplate)
			projects.DELETE("/:project_id/templates/:template_id", h.DeleteTemplate)
			projects.POST("/:project_id/templates/:template_id/columns", h.AddTemplateColumn)
			projects.PATCH("/:project_id/templates/:template_id/columns/:column_id", h.ReplaceTemplateTasks)
			projects.DELETE("/:project_id/templates/:template_id/columns/:column_id", h.DeleteTemplateColumn)
			projects.POST("/:project_id/templates/:template_id/columns/:column_id/tasks", h.AddTemplateTask)
			projects.PATCH("/:project_id/templates/:template_id/columns/:column_id/tasks/:task_id", h.UpdateTemplateTask)

			// Milestones
			projects.GET("/:project_id/milestones", h.GetMilestones)
			projects.POST("/:project_id/milestones", h.CreateMilestone)
			projects.PATCH("/:project_id/milestones/:milestone_id", h.UpdateMilestoneCompletion)
			projects.DELETE("/:project_id/milestones/:milestone_id", h.DeleteMilestone)
		}
	}

	return r
}
