package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/forgeboard-dev/forgeboard/internal/store"
	"github.com/forgeboard-dev/forgeboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateProjectRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Status      string    `json:"status" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Managers    []uint    `json:"managers"`
}

type UpdateStatusRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
}

type UpdateDeadlineRequest struct {
	NewDeadline time.Time `json:"new_deadline" binding:"required"`
}

type UpdateDescriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

type ManagerRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type ProjectSummary struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Managers    []uint    `json:"managers"`
}

type ProjectResponse struct {
	ProjectSummary
	Columns    []board.Column    `json:"columns"`
	Templates  []board.Template  `json:"templates"`
	Milestones []board.Milestone `json:"milestones"`
}

func projectSummary(agg *store.Aggregate) ProjectSummary {
	managers := agg.Doc.Managers
	if managers == nil {
		managers = []uint{}
	}
	return ProjectSummary{
		ID:          agg.ID,
		Title:       agg.Title,
		Description: agg.Description,
		Status:      agg.Status,
		StartDate:   agg.StartDate,
		EndDate:     agg.EndDate,
		Managers:    managers,
	}
}

func projectResponse(agg *store.Aggregate) ProjectResponse {
	resp := ProjectResponse{
		ProjectSummary: projectSummary(agg),
		Columns:        agg.Doc.Columns,
		Templates:      agg.Doc.Templates,
		Milestones:     agg.Doc.Milestones,
	}
	if resp.Columns == nil {
		resp.Columns = []board.Column{}
	}
	if resp.Templates == nil {
		resp.Templates = []board.Template{}
	}
	if resp.Milestones == nil {
		resp.Milestones = []board.Milestone{}
	}
	return resp
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if len(req.Managers) > 0 {
		found, err := h.Users.FindByIDs(req.Managers)
		if err != nil {
			log.Printf("Failed to validate managers: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if len(found) != len(req.Managers) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "One or more manager ids are invalid"})
			return
		}
	}

	agg := &store.Aggregate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Doc: board.Document{
			Managers:   req.Managers,
			Columns:    []board.Column{},
			Templates:  []board.Template{},
			Milestones: []board.Milestone{},
		},
	}
	if agg.Doc.Managers == nil {
		agg.Doc.Managers = []uint{}
	}

	if err := h.Projects.Create(agg); err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"project": projectResponse(agg)})
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	aggs, err := h.Projects.List()

	if err != nil {
		log.Printf("Failed to list projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	summaries := make([]ProjectSummary, 0, len(aggs))
	for _, agg := range aggs {
		summaries = append(summaries, projectSummary(agg))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"results":  len(summaries),
		"projects": summaries,
	})
}

func (h *Handler) GetProject(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, gin.H{"project": projectResponse(agg)})
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Projects.Delete(projectID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project successfully deleted"})
}

func (h *Handler) UpdateProjectStatus(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateStatusRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		agg.Status = req.NewStatus
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"project": projectResponse(agg)})
}

// UpdateProjectDeadline persists the new end date first and only then
// compares it against the start date. An inconsistent deadline yields a
// client error, but the write stands: the check is advisory, matching
// the system this behavior was ported from.
func (h *Handler) UpdateProjectDeadline(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateDeadlineRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		agg.EndDate = req.NewDeadline
		return nil
	})
	if agg == nil {
		return
	}

	if agg.EndDate.Before(agg.StartDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Deadline cannot be earlier than the start date."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"project": projectResponse(agg)})
}

func (h *Handler) UpdateProjectDescription(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateDescriptionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		agg.Description = req.Description
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"project": projectResponse(agg)})
}

// AddManager records a manager reference, set-style.
func (h *Handler) AddManager(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req ManagerRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	exists, err := h.Users.Exists(req.UserID)

	if err != nil {
		log.Printf("Failed to validate manager: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !exists {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Manager id is invalid"})
		return
	}

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		agg.Doc.AddManager(req.UserID)
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"project": projectResponse(agg)})
}

func (h *Handler) RemoveManager(ctx *gin.Context) {
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

	agg := h.withProject(ctx, projectID, func(agg *store.Aggregate) error {
		agg.Doc.RemoveManager(userID)
		return nil
	})
	if agg == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"project": projectResponse(agg)})
}

// ListProjectsForUser returns the projects relevant to a user: admins see
// everything, everyone else sees projects they manage or hold a task in.
func (h *Handler) ListProjectsForUser(ctx *gin.Context) {
	userID, err := utils.GetUserIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.Users.IsAdmin(userID)

	if err != nil {
		log.Printf("Failed to check role: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var aggs []*store.Aggregate
	if admin {
		aggs, err = h.Projects.List()
	} else {
		aggs, err = h.Projects.ListForUser(userID)
	}

	if err != nil {
		log.Printf("Failed to list projects for user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	projects := make([]ProjectResponse, 0, len(aggs))
	for _, agg := range aggs {
		projects = append(projects, projectResponse(agg))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"results":  len(projects),
		"projects": projects,
	})
}
