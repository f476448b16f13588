package handlers

import (
	"net/http"

	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/forgeboard-dev/forgeboard/internal/store"
	"github.com/forgeboard-dev/forgeboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateColumnRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateColumnTitleRequest struct {
	Title string `json:"title" binding:"required"`
}

type RepositionColumnsRequest struct {
	ColumnPositions []board.ColumnPosition `json:"column_positions" binding:"required"`
}

type SeedColumnRequest struct {
	Title string `json:"title" binding:"required"`
	Tasks []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"tasks"`
}

type SeedColumnsRequest struct {
	Columns []SeedColumnRequest `json:"columns" binding:"required,min=1"`
}

func (h *Handler) GetColumns(ctx *gin.Context) {
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

	columns := agg.Doc.Columns
	if columns == nil {
		columns = []board.Column{}
	}

	ctx.JSON(http.StatusOK, gin.H{"columns": columns})
}

func (h *Handler) CreateColumn(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreateColumnRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var created board.Column
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		created = *agg.Doc.AddColumn(req.Title)
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"column": created})
}

// SeedColumns appends a batch of columns with their tasks, used to
// materialize a template skeleton onto the live board.
func (h *Handler) SeedColumns(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req SeedColumnsRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	seeds := make([]board.ColumnSeed, 0, len(req.Columns))
	for _, col := range req.Columns {
		seed := board.ColumnSeed{Title: col.Title}
		for _, task := range col.Tasks {
			seed.Tasks = append(seed.Tasks, board.TaskDraft{
				Title:       task.Title,
				Description: task.Description,
			})
		}
		seeds = append(seeds, seed)
	}

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		agg.Doc.SeedColumns(seeds)
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"columns": agg.Doc.Columns})
}

func (h *Handler) UpdateColumnTitle(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")

	var req UpdateColumnTitleRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var updated board.Column
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		col, err := agg.Doc.Column(columnID)
		if err != nil {
			return err
		}
		col.Title = req.Title
		updated = *col
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"column": updated})
}

func (h *Handler) DeleteColumn(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columnID := ctx.Param("column_id")

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		return agg.Doc.RemoveColumn(columnID)
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Column deleted successfully",
		"columns": agg.Doc.Columns,
	})
}

func (h *Handler) RepositionColumns(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req RepositionColumnsRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		agg.Doc.RepositionColumns(req.ColumnPositions)
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"columns": agg.Doc.Columns})
}
