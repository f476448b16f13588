package handlers

import (
	"net/http"

	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/forgeboard-dev/forgeboard/internal/store"
	"github.com/forgeboard-dev/forgeboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateSubtaskRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateSubtaskTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateSubtaskCompletionRequest struct {
	IsCompleted *bool `json:"is_completed" binding:"required"`
}

func (h *Handler) GetSubtasks(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")
	taskID := ctx.Param("task_id")

	agg, err := h.Projects.Load(projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	task, err := agg.Doc.Task(columnID, taskID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	subtasks := task.Subtasks
	if subtasks == nil {
		subtasks = []board.Subtask{}
	}

	ctx.JSON(http.StatusOK, gin.H{"subtasks": subtasks})
}

func (h *Handler) CreateSubtask(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")
	taskID := ctx.Param("task_id")

	var req CreateSubtaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var parent board.Task
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		task, err := agg.Doc.AddSubtask(columnID, taskID, req.Title)
		if err != nil {
			return err
		}
		parent = *task
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"task": parent})
}

func (h *Handler) UpdateSubtaskTitle(ctx *gin.Context) {
	h.updateSubtask(ctx, func(ctx *gin.Context, subtask *board.Subtask) error {
		var req UpdateSubtaskTitleRequest
		if err := ctx.BindJSON(&req); err != nil {
			return &board.ValidationError{Message: "title is required"}
		}
		subtask.Title = req.Title
		return nil
	})
}

func (h *Handler) UpdateSubtaskCompletion(ctx *gin.Context) {
	h.updateSubtask(ctx, func(ctx *gin.Context, subtask *board.Subtask) error {
		var req UpdateSubtaskCompletionRequest
		if err := ctx.BindJSON(&req); err != nil {
			return &board.ValidationError{Message: "is_completed is required"}
		}
		subtask.IsCompleted = *req.IsCompleted
		return nil
	})
}

func (h *Handler) updateSubtask(ctx *gin.Context, apply func(*gin.Context, *board.Subtask) error) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")
	taskID := ctx.Param("task_id")
	subtaskID := ctx.Param("subtask_id")

	var updated board.Subtask
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		subtask, err := agg.Doc.Subtask(columnID, taskID, subtaskID)
		if err != nil {
			return err
		}
		if err := apply(ctx, subtask); err != nil {
			return err
		}
		updated = *subtask
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Subtask updated successfully",
		"subtask": updated,
	})
}

func (h *Handler) DeleteSubtask(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")
	taskID := ctx.Param("task_id")
	subtaskID := ctx.Param("subtask_id")

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		return agg.Doc.RemoveSubtask(columnID, taskID, subtaskID)
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Subtask deleted successfully"})
}
