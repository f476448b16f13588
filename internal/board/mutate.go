package board

import (
	"math/rand"
	"time"
)

// TaskDraft carries the caller-supplied fields of a new task.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     *time.Time
	Assignees   []uint
	IsCompleted bool
}

// AddTask appends a task at the end of the column's list.
func (d *Document) AddTask(columnID string, draft TaskDraft) (*Task, error) {
	col, err := d.Column(columnID)
	if err != nil {
		return nil, err
	}
	task := Task{
		ID:          NewID(),
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Assignees:   draft.Assignees,
		IsCompleted: draft.IsCompleted,
		Position:    len(col.Tasks),
		Subtasks:    []Subtask{},
	}
	if task.Assignees == nil {
		task.Assignees = []uint{}
	}
	col.Tasks = append(col.Tasks, task)
	return &col.Tasks[len(col.Tasks)-1], nil
}

// RemoveTask deletes a task from the stated column.
func (d *Document) RemoveTask(columnID, taskID string) error {
	col, err := d.Column(columnID)
	if err != nil {
		return err
	}
	for i := range col.Tasks {
		if col.Tasks[i].ID == taskID {
			col.Tasks = append(col.Tasks[:i], col.Tasks[i+1:]...)
			col.renumberTasks()
			return nil
		}
	}
	return notFound(LevelTask)
}

// AssignTask replaces the task's assignee list wholesale. Callers must
// validate every id against the user directory first; the whole set is
// applied or none of it.
func (d *Document) AssignTask(columnID, taskID string, userIDs []uint) (*Task, error) {
	task, err := d.Task(columnID, taskID)
	if err != nil {
		return nil, err
	}
	if userIDs == nil {
		userIDs = []uint{}
	}
	task.Assignees = userIDs
	return task, nil
}

// AutoAssign gives every unassigned task exactly one developer picked
// uniformly at random. Tasks that already have assignees are untouched.
// Rejected before any mutation when the board has no tasks or the
// developer pool is empty.
func (d *Document) AutoAssign(developerIDs []uint, rng *rand.Rand) error {
	total := 0
	for i := range d.Columns {
		total += len(d.Columns[i].Tasks)
	}
	if total == 0 {
		return invalid("create tasks before assigning members to them")
	}
	if len(developerIDs) == 0 {
		return invalid("no developers found")
	}

	for i := range d.Columns {
		for j := range d.Columns[i].Tasks {
			task := &d.Columns[i].Tasks[j]
			if len(task.Assignees) == 0 {
				task.Assignees = []uint{developerIDs[rng.Intn(len(developerIDs))]}
			}
		}
	}
	return nil
}

// AddSubtask appends a subtask and returns the parent task.
func (d *Document) AddSubtask(columnID, taskID, title string) (*Task, error) {
	task, err := d.Task(columnID, taskID)
	if err != nil {
		return nil, err
	}
	task.Subtasks = append(task.Subtasks, Subtask{ID: NewID(), Title: title})
	return task, nil
}

// RemoveSubtask deletes a subtask from its parent task.
func (d *Document) RemoveSubtask(columnID, taskID, subtaskID string) error {
	task, err := d.Task(columnID, taskID)
	if err != nil {
		return err
	}
	for i := range task.Subtasks {
		if task.Subtasks[i].ID == subtaskID {
			task.Subtasks = append(task.Subtasks[:i], task.Subtasks[i+1:]...)
			return nil
		}
	}
	return notFound(LevelSubtask)
}

// AllTasks flattens every column's task list in board order.
func (d *Document) AllTasks() []Task {
	var tasks []Task
	for i := range d.Columns {
		tasks = append(tasks, d.Columns[i].Tasks...)
	}
	return tasks
}

// TasksAssignedTo collects every task assigned to the user.
func (d *Document) TasksAssignedTo(userID uint) []Task {
	var tasks []Task
	for i := range d.Columns {
		for j := range d.Columns[i].Tasks {
			for _, id := range d.Columns[i].Tasks[j].Assignees {
				if id == userID {
					tasks = append(tasks, d.Columns[i].Tasks[j])
					break
				}
			}
		}
	}
	return tasks
}

// ColumnSeed is one column of a batch create, typically materialized
// from a template skeleton.
type ColumnSeed struct {
	Title string
	Tasks []TaskDraft
}

// SeedColumns appends a batch of columns with their tasks.
func (d *Document) SeedColumns(seeds []ColumnSeed) {
	for _, seed := range seeds {
		col := d.AddColumn(seed.Title)
		for _, draft := range seed.Tasks {
			col.Tasks = append(col.Tasks, Task{
				ID:          NewID(),
				Title:       draft.Title,
				Description: draft.Description,
				DueDate:     draft.DueDate,
				Assignees:   []uint{},
				Position:    len(col.Tasks),
				Subtasks:    []Subtask{},
			})
		}
	}
}
