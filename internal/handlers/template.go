package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/forgeboard-dev/forgeboard/internal/store"
	"github.com/forgeboard-dev/forgeboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateTemplateRequest struct {
	Title   string                 `json:"title" binding:"required"`
	Columns []board.TemplateColumn `json:"columns"`
}

// UpdateTemplateRequest is the whitelist of updatable template fields.
// Requests carrying any other field are rejected outright rather than
// merged.
type UpdateTemplateRequest struct {
	Title   *string                `json:"title"`
	Columns []board.TemplateColumn `json:"columns"`
}

// UpdateTemplateTaskRequest whitelists the updatable template task fields.
type UpdateTemplateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type AddTemplateColumnRequest struct {
	Column board.TemplateColumn `json:"column" binding:"required"`
}

type ReplaceTemplateTasksRequest struct {
	Tasks []board.TemplateTask `json:"tasks" binding:"required"`
}

type AddTemplateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// bindStrict decodes the request body rejecting unknown fields, so
// partial updates can only touch whitelisted attributes.
func bindStrict(ctx *gin.Context, dst interface{}) error {
	dec := json.NewDecoder(ctx.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (h *Handler) GetTemplates(ctx *gin.Context) {
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

	templates := agg.Doc.Templates
	if templates == nil {
		templates = []board.Template{}
	}

	ctx.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *Handler) CreateTemplate(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreateTemplateRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var created board.Template
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		created = *agg.Doc.AddTemplate(board.Template{
			Title:   req.Title,
			Columns: req.Columns,
		})
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Template added successfully",
		"template": created,
	})
}

func (h *Handler) UpdateTemplate(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	templateID := ctx.Param("template_id")

	var req UpdateTemplateRequest

	if err := bindStrict(ctx, &req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var updated board.Template
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		tpl, err := agg.Doc.UpdateTemplate(templateID, board.TemplateUpdate{
			Title:   req.Title,
			Columns: req.Columns,
		})
		if err != nil {
			return err
		}
		updated = *tpl
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Template updated successfully",
		"template": updated,
	})
}

func (h *Handler) DeleteTemplate(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	templateID := ctx.Param("template_id")

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		return agg.Doc.RemoveTemplate(templateID)
	})
	if agg == nil {
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *Handler) AddTemplateColumn(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	templateID := ctx.Param("template_id")

	var req AddTemplateColumnRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var created board.TemplateColumn
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		col, err := agg.Doc.AddTemplateColumn(templateID, req.Column)
		if err != nil {
			return err
		}
		created = *col
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Column added successfully",
		"column":  created,
	})
}

func (h *Handler) DeleteTemplateColumn(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	templateID := ctx.Param("template_id")
	columnID := ctx.Param("column_id")

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		return agg.Doc.RemoveTemplateColumn(templateID, columnID)
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}

// ReplaceTemplateTasks swaps a template column's task list wholesale.
func (h *Handler) ReplaceTemplateTasks(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	templateID := ctx.Param("template_id")
	columnID := ctx.Param("column_id")

	var req ReplaceTemplateTasksRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var updated board.TemplateColumn
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		col, err := agg.Doc.ReplaceTemplateColumnTasks(templateID, columnID, req.Tasks)
		if err != nil {
			return err
		}
		updated = *col
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Tasks updated successfully",
		"tasks":   updated.Tasks,
	})
}

func (h *Handler) AddTemplateTask(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	templateID := ctx.Param("template_id")
	columnID := ctx.Param("column_id")

	var req AddTemplateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var created board.TemplateTask
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		task, err := agg.Doc.AddTemplateTask(templateID, columnID, board.TemplateTask{
			Title:       req.Title,
			Description: req.Description,
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
		"message": "Task added successfully",
		"task":    created,
	})
}

func (h *Handler) UpdateTemplateTask(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	templateID := ctx.Param("template_id")
	columnID := ctx.Param("column_id")
	taskID := ctx.Param("task_id")

	var req UpdateTemplateTaskRequest

	if err := bindStrict(ctx, &req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var updated board.TemplateTask
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		task, err := agg.Doc.UpdateTemplateTask(templateID, columnID, taskID, board.TemplateTaskUpdate{
			Title:       req.Title,
			Description: req.Description,
		})
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
		"message": "Task updated successfully",
		"task":    updated,
	})
}
