package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/forgeboard-dev/forgeboard/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createColumn(t *testing.T, token string, projectID uint, title string) board.Column {
	t.Helper()

	rec := e.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/columns", projectID), token, gin.H{"title": title})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Column board.Column `json:"column"`
	}
	decode(t, rec, &resp)
	return resp.Column
}

func (e *testEnv) createTask(t *testing.T, token string, projectID uint, columnID string, payload gin.H) board.Task {
	t.Helper()

	rec := e.do(t, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/columns/%s/tasks", projectID, columnID), token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Task board.Task `json:"task"`
	}
	decode(t, rec, &resp)
	return resp.Task
}

func TestBoardLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "Ada", "ada@example.com", models.RoleManager)

	project := env.createProject(t, token, "Website relaunch")
	column := env.createColumn(t, token, project.ID, "Todo")
	task := env.createTask(t, token, project.ID, column.ID, gin.H{"title": "Write spec"})

	rec := env.do(t, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/columns/%s/tasks/%s/subtasks", project.ID, column.ID, task.ID),
		token, gin.H{"title": "Draft outline"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Task board.Task `json:"task"`
	}
	decode(t, rec, &created)
	require.Len(t, created.Task.Subtasks, 1)
	subtaskID := created.Task.Subtasks[0].ID

	rec = env.do(t, http.MethodPatch,
		fmt.Sprintf("/api/projects/%d/columns/%s/tasks/%s/subtasks/%s/completion",
			project.ID, column.ID, task.ID, subtaskID),
		token, gin.H{"is_completed": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Completing the subtask does not ripple up to the parent task.
	loaded := env.getProject(t, token, project.ID)
	require.Len(t, loaded.Columns, 1)
	require.Len(t, loaded.Columns[0].Tasks, 1)

	got := loaded.Columns[0].Tasks[0]
	require.False(t, got.IsCompleted)
	require.Len(t, got.Subtasks, 1)
	require.True(t, got.Subtasks[0].IsCompleted)

	// The task is reachable by id alone, without its project coordinates.
	rec = env.do(t, http.MethodGet, "/api/tasks/"+task.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Task board.Task `json:"task"`
	}
	decode(t, rec, &detail)
	require.Equal(t, "Write spec", detail.Task.Title)
}

func TestAssignTaskIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "Ada", "ada@example.com", models.RoleManager)
	dev, _ := env.createUser(t, "Dev", "dev@example.com", models.RoleDeveloper)
	other, _ := env.createUser(t, "Other", "other@example.com", models.RoleDeveloper)

	project := env.createProject(t, token, "Assignment")
	column := env.createColumn(t, token, project.ID, "Todo")
	task := env.createTask(t, token, project.ID, column.ID, gin.H{
		"title":     "Fix bug",
		"assignees": []uint{dev.ID},
	})

	assignPath := fmt.Sprintf("/api/projects/%d/columns/%s/tasks/%s/assign", project.ID, column.ID, task.ID)

	rec := env.do(t, http.MethodPatch, assignPath, token, gin.H{
		"user_ids": []uint{other.ID, 99999},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "One or more user ids are invalid")

	// The rejected assignment left the existing list untouched.
	loaded := env.getProject(t, token, project.ID)
	require.Equal(t, []uint{dev.ID}, loaded.Columns[0].Tasks[0].Assignees)

	rec = env.do(t, http.MethodPatch, assignPath, token, gin.H{
		"user_ids": []uint{other.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	loaded = env.getProject(t, token, project.ID)
	require.Equal(t, []uint{other.ID}, loaded.Columns[0].Tasks[0].Assignees)
}

func TestDeadlineCheckIsAdvisory(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "Ada", "ada@example.com", models.RoleManager)

	project := env.createProject(t, token, "Deadline")

	rec := env.do(t, http.MethodPatch, fmt.Sprintf("/api/projects/%d/deadline", project.ID), token, gin.H{
		"new_deadline": "2023-06-01T00:00:00Z",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Deadline cannot be earlier than the start date.")

	// The write stands despite the client error.
	loaded := env.getProject(t, token, project.ID)
	require.True(t, loaded.EndDate.Equal(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMilestonesAreScopedPerUser(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "Ada", "ada@example.com", models.RoleManager)
	alice, _ := env.createUser(t, "Alice", "alice@example.com", models.RoleDeveloper)
	bob, _ := env.createUser(t, "Bob", "bob@example.com", models.RoleDeveloper)

	project := env.createProject(t, token, "Milestones")
	base := fmt.Sprintf("/api/projects/%d/milestones", project.ID)

	rec := env.do(t, http.MethodPost, base, token, gin.H{"user_id": alice.ID, "text": "Ship the MVP"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, base, token, gin.H{"user_id": bob.ID, "text": "Review backlog"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, base, token, gin.H{"user_id": alice.ID, "text": "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code, "blank milestone text is rejected")

	rec = env.do(t, http.MethodGet, fmt.Sprintf("%s?user_id=%d", base, alice.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Count      int               `json:"count"`
		Milestones []board.Milestone `json:"milestones"`
	}
	decode(t, rec, &listed)
	require.Equal(t, 1, listed.Count)
	require.Equal(t, "Ship the MVP", listed.Milestones[0].Text)
	require.Equal(t, alice.ID, listed.Milestones[0].UserID)
}

func TestMoveTaskAndDeleteColumnKeepOrder(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "Ada", "ada@example.com", models.RoleManager)

	project := env.createProject(t, token, "Ordering")

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/columns/batch", project.ID), token, gin.H{
		"columns": []gin.H{
			{"title": "Todo", "tasks": []gin.H{{"title": "A"}, {"title": "B"}}},
			{"title": "Doing", "tasks": []gin.H{{"title": "C"}}},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	loaded := env.getProject(t, token, project.ID)
	require.Len(t, loaded.Columns, 2)
	todo, doing := loaded.Columns[0], loaded.Columns[1]

	rec = env.do(t, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/columns/%s/tasks/%s/move/%s",
			project.ID, todo.ID, todo.Tasks[0].ID, doing.ID),
		token, gin.H{"new_position": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	loaded = env.getProject(t, token, project.ID)
	require.Len(t, loaded.Columns[0].Tasks, 1)
	require.Equal(t, "B", loaded.Columns[0].Tasks[0].Title)
	require.Equal(t, 0, loaded.Columns[0].Tasks[0].Position)
	require.Equal(t, "A", loaded.Columns[1].Tasks[0].Title)
	require.Equal(t, "C", loaded.Columns[1].Tasks[1].Title)

	rec = env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/projects/%d/columns/%s", project.ID, todo.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	loaded = env.getProject(t, token, project.ID)
	require.Len(t, loaded.Columns, 1)
	require.Equal(t, 0, loaded.Columns[0].Position)
}

func TestAutoAssignEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "Ada", "ada@example.com", models.RoleManager)

	project := env.createProject(t, token, "Auto assign")
	path := fmt.Sprintf("/api/projects/%d/auto-assign", project.ID)

	// No tasks yet.
	rec := env.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "create tasks before assigning members")

	column := env.createColumn(t, token, project.ID, "Todo")
	env.createTask(t, token, project.ID, column.ID, gin.H{"title": "Unassigned"})

	// Tasks exist but nobody holds the developer role.
	rec = env.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "no developers found")

	dev, _ := env.createUser(t, "Dev", "dev@example.com", models.RoleDeveloper)

	rec = env.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	loaded := env.getProject(t, token, project.ID)
	require.Equal(t, []uint{dev.ID}, loaded.Columns[0].Tasks[0].Assignees)
}

func TestMissingLevelsMapToNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "Ada", "ada@example.com", models.RoleManager)

	rec := env.do(t, http.MethodGet, "/api/projects/4242", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	project := env.createProject(t, token, "Sparse")

	rec = env.do(t, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/columns/%s/tasks", project.ID, "no-such-column"),
		token, gin.H{"title": "Orphan"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "column not found")

	column := env.createColumn(t, token, project.ID, "Todo")

	rec = env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/projects/%d/columns/%s/tasks/%s", project.ID, column.ID, "no-such-task"),
		token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "task not found")
}

func TestListProjectsForUserFiltersByRelevance(t *testing.T) {
	env := newTestEnv(t)
	admin, adminToken := env.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	dev, devToken := env.createUser(t, "Dev", "dev@example.com", models.RoleDeveloper)

	managed := env.createProject(t, adminToken, "Managed")
	rec := env.do(t, http.MethodPatch,
		fmt.Sprintf("/api/projects/%d/managers", managed.ID), adminToken, gin.H{"user_id": dev.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	env.createProject(t, adminToken, "Unrelated")

	var listed struct {
		Results int `json:"results"`
	}

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d/projects", dev.ID), devToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &listed)
	require.Equal(t, 1, listed.Results)

	// Admins see everything.
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d/projects", admin.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &listed)
	require.Equal(t, 2, listed.Results)
}
