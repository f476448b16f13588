package board

import "sort"

// AddColumn appends an empty column at the end of the board. Its position
// is the previous list length, keeping positions a dense 0-based sequence.
func (d *Document) AddColumn(title string) *Column {
	col := Column{
		ID:       NewID(),
		Title:    title,
		Position: len(d.Columns),
		Tasks:    []Task{},
	}
	d.Columns = append(d.Columns, col)
	return &d.Columns[len(d.Columns)-1]
}

// RemoveColumn deletes a column together with everything it owns and
// renumbers the survivors so positions stay 0..n-1. The renumbering is
// mandatory, not opportunistic.
func (d *Document) RemoveColumn(id string) error {
	for i := range d.Columns {
		if d.Columns[i].ID == id {
			d.Columns = append(d.Columns[:i], d.Columns[i+1:]...)
			d.renumberColumns()
			return nil
		}
	}
	return notFound(LevelColumn)
}

func (d *Document) renumberColumns() {
	for i := range d.Columns {
		d.Columns[i].Position = i
	}
}

func (c *Column) renumberTasks() {
	for i := range c.Tasks {
		c.Tasks[i].Position = i
	}
}

// ColumnPosition is one entry of a bulk reposition request.
type ColumnPosition struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// RepositionColumns applies the given positions to matching columns,
// silently skipping unknown ids, then re-sorts the list so array order
// matches the position values.
func (d *Document) RepositionColumns(positions []ColumnPosition) {
	for _, p := range positions {
		for i := range d.Columns {
			if d.Columns[i].ID == p.ID {
				d.Columns[i].Position = p.Position
				break
			}
		}
	}
	sort.SliceStable(d.Columns, func(i, j int) bool {
		return d.Columns[i].Position < d.Columns[j].Position
	})
}

// MoveTask transfers a task from one column to another, splicing it into
// the destination at newPosition. A position past the end appends. The
// task must live in the stated source column; otherwise this is a
// task-level miss even if the id exists elsewhere. Both lists change in
// the same in-memory document, so the single aggregate save keeps the
// transfer atomic: no reader ever sees the task in neither or both.
func (d *Document) MoveTask(fromColumnID, toColumnID, taskID string, newPosition int) error {
	from, err := d.Column(fromColumnID)
	if err != nil {
		return err
	}
	to, err := d.Column(toColumnID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range from.Tasks {
		if from.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFound(LevelTask)
	}

	task := from.Tasks[idx]
	from.Tasks = append(from.Tasks[:idx], from.Tasks[idx+1:]...)

	insertTask(to, task, newPosition)
	from.renumberTasks()
	to.renumberTasks()
	return nil
}

// ReorderTask moves a task to a new index within its own column.
func (d *Document) ReorderTask(columnID, taskID string, newPosition int) error {
	col, err := d.Column(columnID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range col.Tasks {
		if col.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFound(LevelTask)
	}

	task := col.Tasks[idx]
	col.Tasks = append(col.Tasks[:idx], col.Tasks[idx+1:]...)
	insertTask(col, task, newPosition)
	col.renumberTasks()
	return nil
}

func insertTask(col *Column, task Task, position int) {
	if position < 0 {
		position = 0
	}
	if position >= len(col.Tasks) {
		col.Tasks = append(col.Tasks, task)
		return
	}
	col.Tasks = append(col.Tasks[:position], append([]Task{task}, col.Tasks[position:]...)...)
}
