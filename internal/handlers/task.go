package handlers

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/forgeboard-dev/forgeboard/internal/models"
	"github.com/forgeboard-dev/forgeboard/internal/store"
	"github.com/forgeboard-dev/forgeboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Assignees   []uint     `json:"assignees"`
	IsCompleted bool       `json:"is_completed"`
}

type UpdateTaskCompletionRequest struct {
	IsCompleted *bool `json:"is_completed" binding:"required"`
}

type UpdateTaskTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateTaskDateRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

type UpdateTaskDescriptionRequest struct {
	Description string `json:"description"`
}

type AssignTaskRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
}

type MoveTaskRequest struct {
	NewPosition int `json:"new_position"`
}

func (h *Handler) CreateTask(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")

	var req CreateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if len(req.Assignees) > 0 {
		found, err := h.Users.FindByIDs(req.Assignees)
		if err != nil {
			log.Printf("Failed to validate assignees: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if len(found) != len(req.Assignees) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "One or more user ids are invalid"})
			return
		}
	}

	var created board.Task
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		task, err := agg.Doc.AddTask(columnID, board.TaskDraft{
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			Assignees:   req.Assignees,
			IsCompleted: req.IsCompleted,
		})
		if err != nil {
			return err
		}
		created = *task
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    created,
	})
}

func (h *Handler) UpdateTaskCompletion(ctx *gin.Context) {
	h.updateTask(ctx, func(ctx *gin.Context, task *board.Task) error {
		var req UpdateTaskCompletionRequest
		if err := ctx.BindJSON(&req); err != nil {
			return &board.ValidationError{Message: "is_completed is required"}
		}
		task.IsCompleted = *req.IsCompleted
		return nil
	})
}

func (h *Handler) UpdateTaskTitle(ctx *gin.Context) {
	h.updateTask(ctx, func(ctx *gin.Context, task *board.Task) error {
		var req UpdateTaskTitleRequest
		if err := ctx.BindJSON(&req); err != nil {
			return &board.ValidationError{Message: "title is required"}
		}
		task.Title = req.Title
		return nil
	})
}

func (h *Handler) UpdateTaskDate(ctx *gin.Context) {
	h.updateTask(ctx, func(ctx *gin.Context, task *board.Task) error {
		var req UpdateTaskDateRequest
		if err := ctx.BindJSON(&req); err != nil {
			return &board.ValidationError{Message: "date is required"}
		}
		task.DueDate = &req.Date
		return nil
	})
}

func (h *Handler) UpdateTaskDescription(ctx *gin.Context) {
	h.updateTask(ctx, func(ctx *gin.Context, task *board.Task) error {
		var req UpdateTaskDescriptionRequest
		if err := ctx.BindJSON(&req); err != nil {
			return &board.ValidationError{Message: "Invalid request"}
		}
		task.Description = req.Description
		return nil
	})
}

// updateTask runs a single-field task mutation addressed by the
// project/column/task path parameters.
func (h *Handler) updateTask(ctx *gin.Context, apply func(*gin.Context, *board.Task) error) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")
	taskID := ctx.Param("task_id")

	var updated board.Task
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		task, err := agg.Doc.Task(columnID, taskID)
		if err != nil {
			return err
		}
		if err := apply(ctx, task); err != nil {
			return err
		}
		updated = *task
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    updated,
	})
}

// AssignTask replaces a task's assignee list. Every id must resolve to an
// existing user or the whole operation is rejected with no partial
// assignment.
func (h *Handler) AssignTask(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")
	taskID := ctx.Param("task_id")

	var req AssignTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	found, err := h.Users.FindByIDs(req.UserIDs)

	if err != nil {
		log.Printf("Failed to validate assignees: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if len(found) != len(req.UserIDs) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "One or more user ids are invalid"})
		return
	}

	var updated board.Task
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		task, err := agg.Doc.AssignTask(columnID, taskID, req.UserIDs)
		if err != nil {
			return err
		}
		updated = *task
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Users assigned successfully",
		"task":    updated,
	})
}

// AutoAssignTasks gives every unassigned task in the project one randomly
// chosen developer.
func (h *Handler) AutoAssignTasks(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	developers, err := h.Users.FindByRole(models.RoleDeveloper)

	if err != nil {
		log.Printf("Failed to list developers: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	developerIDs := make([]uint, 0, len(developers))
	for i := range developers {
		developerIDs = append(developerIDs, developers[i].ID)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		return agg.Doc.AutoAssign(developerIDs, rng)
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Tasks have been auto-assigned. Please review the changes.",
	})
}

func (h *Handler) DeleteTask(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")
	taskID := ctx.Param("task_id")

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		return agg.Doc.RemoveTask(columnID, taskID)
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// MoveTask drags a task from one column into another at a target index.
// The removal and the insertion land in the same aggregate save.
func (h *Handler) MoveTask(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fromColumnID := ctx.Param("column_id")
	toColumnID := ctx.Param("to_column_id")
	taskID := ctx.Param("task_id")

	var req MoveTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		return agg.Doc.MoveTask(fromColumnID, toColumnID, taskID, req.NewPosition)
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Task moved successfully",
		"columns": agg.Doc.Columns,
	})
}

func (h *Handler) ReorderTask(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")
	taskID := ctx.Param("task_id")

	var req MoveTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		return agg.Doc.ReorderTask(columnID, taskID, req.NewPosition)
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Task reordered successfully within the column",
		"columns": agg.Doc.Columns,
	})
}

func (h *Handler) GetAllTasks(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agg, err := h.Projects.Load(projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	tasks := agg.Doc.AllTasks()
	if tasks == nil {
		tasks = []board.Task{}
	}

	ctx.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) GetAssignedTasks(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetUserIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agg, err := h.Projects.Load(projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	tasks := agg.Doc.TasksAssignedTo(userID)
	if tasks == nil {
		tasks = []board.Task{}
	}

	ctx.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GetTaskDetails looks a task up by id alone, scanning across projects.
func (h *Handler) GetTaskDetails(ctx *gin.Context) {
	taskID := ctx.Param("task_id")

	_, task, err := h.Projects.FindByTask(taskID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"task": task})
}
