package board

import (
	"time"

	"github.com/google/uuid"
)

// Document is the mutable interior of a project aggregate: the ordered
// column tree with its tasks and subtasks, the template skeletons and the
// per-user milestones. It is persisted as a single JSON document, so every
// mutation rewrites the whole aggregate in one store round trip.
type Document struct {
	Managers   []uint      `json:"managers"`
	Columns    []Column    `json:"columns"`
	Templates  []Template  `json:"templates"`
	Milestones []Milestone `json:"milestones"`
}

// Column owns an ordered list of tasks. Position is a denormalized hint
// kept in sync with array order; the array is authoritative.
type Column struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
	Tasks    []Task `json:"tasks"`
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Assignees   []uint     `json:"assignees"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	Position    int        `json:"position"`
	Description string     `json:"description"`
	Subtasks    []Subtask  `json:"subtasks"`
}

type Subtask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
}

// Template mirrors the column/task structure but carries no completion,
// assignment or scheduling state. It is a reusable skeleton.
type Template struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Columns []TemplateColumn `json:"columns"`
}

type TemplateColumn struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Tasks []TemplateTask `json:"tasks"`
}

type TemplateTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Milestone is a per-user checklist item scoped to one project.
type Milestone struct {
	ID          string `json:"id"`
	UserID      uint   `json:"user_id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
}

// NewID mints an identifier for a nested entity.
func NewID() string {
	return uuid.NewString()
}

// AddManager records a manager reference, set-style: adding an id that is
// already present is a no-op.
func (d *Document) AddManager(userID uint) {
	for _, id := range d.Managers {
		if id == userID {
			return
		}
	}
	d.Managers = append(d.Managers, userID)
}

// RemoveManager drops a manager reference if present.
func (d *Document) RemoveManager(userID uint) {
	out := d.Managers[:0]
	for _, id := range d.Managers {
		if id != userID {
			out = append(out, id)
		}
	}
	d.Managers = out
}

// RelevantTo reports whether the user manages the project or is assigned
// to any task in it.
func (d *Document) RelevantTo(userID uint) bool {
	for _, id := range d.Managers {
		if id == userID {
			return true
		}
	}
	for i := range d.Columns {
		for j := range d.Columns[i].Tasks {
			for _, id := range d.Columns[i].Tasks[j].Assignees {
				if id == userID {
					return true
				}
			}
		}
	}
	return false
}
