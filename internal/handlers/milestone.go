package handlers

import (
	"net/http"
	"strconv"

	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/forgeboard-dev/forgeboard/internal/store"
	"github.com/forgeboard-dev/forgeboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateMilestoneRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
}

type UpdateMilestoneRequest struct {
	IsCompleted *bool `json:"is_completed" binding:"required"`
}

func (h *Handler) CreateMilestone(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreateMilestoneRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var created board.Milestone
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		m, err := agg.Doc.AddMilestone(req.UserID, req.Text, req.IsCompleted)
		if err != nil {
			return err
		}
		created = *m
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"milestone": created})
}

// GetMilestones lists the milestones owned by the user named in the
// user_id query parameter. Other users' milestones never leak into the
// result, even within the same project.
func (h *Handler) GetMilestones(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rawUserID := ctx.Query("user_id")
	userID, err := strconv.ParseUint(rawUserID, 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}

	agg, err := h.Projects.Load(projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	milestones := agg.Doc.MilestonesFor(uint(userID))

	ctx.JSON(http.StatusOK, gin.H{
		"count":      len(milestones),
		"milestones": milestones,
	})
}

func (h *Handler) UpdateMilestoneCompletion(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestoneID := ctx.Param("milestone_id")

	var req UpdateMilestoneRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "is_completed is required"})
		return
	}

	var updated board.Milestone
	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		m, err := agg.Doc.SetMilestoneCompleted(milestoneID, *req.IsCompleted)
		if err != nil {
			return err
		}
		updated = *m
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"milestone": updated})
}

func (h *Handler) DeleteMilestone(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestoneID := ctx.Param("milestone_id")

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		return agg.Doc.RemoveMilestone(milestoneID)
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Milestone deleted successfully"})
}
