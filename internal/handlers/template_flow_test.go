package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/forgeboard-dev/forgeboard/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createTemplate(t *testing.T, token string, projectID uint) board.Template {
	t.Helper()

	rec := e.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/templates", projectID), token, gin.H{
		"title": "Sprint skeleton",
		"columns": []gin.H{
			{"title": "Todo", "tasks": []gin.H{{"title": "Plan", "description": "Kickoff"}}},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Template board.Template `json:"template"`
	}
	decode(t, rec, &resp)
	return resp.Template
}

func TestTemplateUpdateIsWhitelisted(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "Ada", "ada@example.com", models.RoleManager)

	project := env.createProject(t, token, "Templates")
	template := env.createTemplate(t, token, project.ID)
	require.NotEmpty(t, template.ID)
	require.NotEmpty(t, template.Columns[0].Tasks[0].ID, "template entity ids are minted on create")

	path := fmt.Sprintf("/api/projects/%d/templates/%s", project.ID, template.ID)

	// Unknown fields are rejected outright rather than merged.
	rec := env.do(t, http.MethodPatch, path, token, gin.H{"title": "Renamed", "owner": "ada"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, path, token, gin.H{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated struct {
		Template board.Template `json:"template"`
	}
	decode(t, rec, &updated)
	require.Equal(t, "Renamed", updated.Template.Title)
	require.Len(t, updated.Template.Columns, 1, "omitting columns leaves them untouched")
}

func TestTemplateColumnAndTaskRoutes(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "Ada", "ada@example.com", models.RoleManager)

	project := env.createProject(t, token, "Templates")
	template := env.createTemplate(t, token, project.ID)

	base := fmt.Sprintf("/api/projects/%d/templates/%s", project.ID, template.ID)

	rec := env.do(t, http.MethodPost, base+"/columns", token, gin.H{
		"column": gin.H{"title": "Doing"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var added struct {
		Column board.TemplateColumn `json:"column"`
	}
	decode(t, rec, &added)
	require.NotEmpty(t, added.Column.ID)

	rec = env.do(t, http.MethodPost, base+"/columns/"+added.Column.ID+"/tasks", token, gin.H{
		"title": "Review",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var task struct {
		Task board.TemplateTask `json:"task"`
	}
	decode(t, rec, &task)

	rec = env.do(t, http.MethodPatch,
		base+"/columns/"+added.Column.ID+"/tasks/"+task.Task.ID, token,
		gin.H{"description": "Check the diff"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var patched struct {
		Task board.TemplateTask `json:"task"`
	}
	decode(t, rec, &patched)
	require.Equal(t, "Review", patched.Task.Title, "omitted title is preserved")
	require.Equal(t, "Check the diff", patched.Task.Description)

	rec = env.do(t, http.MethodDelete, base+"/columns/"+added.Column.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, base, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, base, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "template not found")
}
