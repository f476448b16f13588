package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/forgeboard-dev/forgeboard/internal/services"
	"github.com/forgeboard-dev/forgeboard/internal/store"
	"github.com/gin-gonic/gin"
)

// Handler holds the injected collaborators every endpoint works against.
type Handler struct {
	Projects *store.ProjectStore
	Users    *store.UserStore
	Mailer   *services.Mailer
}

func New(projects *store.ProjectStore, users *store.UserStore, mailer *services.Mailer) *Handler {
	return &Handler{
		Projects: projects,
		Users:    users,
		Mailer:   mailer,
	}
}

// respondError maps core and store errors onto HTTP statuses: per-level
// not-found conditions to 404, validation rejections to 400, stale-write
// conflicts to 409 and everything else to a generic 500.
func respondError(ctx *gin.Context, err error) {
	var nf *board.NotFoundError
	var ve *board.ValidationError

	switch {
	case errors.As(err, &nf):
		ctx.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.As(err, &ve):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, store.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	case errors.Is(err, store.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, store.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Project was modified concurrently, retry the operation"})
	default:
		log.Printf("Unexpected error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// withProject runs one load-mutate-save cycle against a project
// aggregate. The mutation happens entirely in memory; a single save
// persists the whole document. Returns the saved aggregate, or nil after
// having written the error response.
func (h *Handler) withProject(ctx *gin.Context, projectID uint, mutate func(*store.Aggregate) error) *store.Aggregate {
	agg, err := h.Projects.Load(projectID)

	if err != nil {
		respondError(ctx, err)
		return nil
	}

	if err := mutate(agg); err != nil {
		respondError(ctx, err)
		return nil
	}

	if err := h.Projects.Save(agg); err != nil {
		respondError(ctx, err)
		return nil
	}

	return agg
}
