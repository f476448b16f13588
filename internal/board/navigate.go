package board

// Column resolves a column by id.
func (d *Document) Column(id string) (*Column, error) {
	for i := range d.Columns {
		if d.Columns[i].ID == id {
			return &d.Columns[i], nil
		}
	}
	return nil, notFound(LevelColumn)
}

// Task resolves a task inside the stated column. A task living in some
// other column is still a task-level miss.
func (d *Document) Task(columnID, taskID string) (*Task, error) {
	col, err := d.Column(columnID)
	if err != nil {
		return nil, err
	}
	for i := range col.Tasks {
		if col.Tasks[i].ID == taskID {
			return &col.Tasks[i], nil
		}
	}
	return nil, notFound(LevelTask)
}

// Subtask resolves a subtask under its column/task path.
func (d *Document) Subtask(columnID, taskID, subtaskID string) (*Subtask, error) {
	task, err := d.Task(columnID, taskID)
	if err != nil {
		return nil, err
	}
	for i := range task.Subtasks {
		if task.Subtasks[i].ID == subtaskID {
			return &task.Subtasks[i], nil
		}
	}
	return nil, notFound(LevelSubtask)
}

// FindTask scans every column for the task id.
func (d *Document) FindTask(taskID string) (*Task, error) {
	for i := range d.Columns {
		for j := range d.Columns[i].Tasks {
			if d.Columns[i].Tasks[j].ID == taskID {
				return &d.Columns[i].Tasks[j], nil
			}
		}
	}
	return nil, notFound(LevelTask)
}

// Template resolves a template by id.
func (d *Document) Template(id string) (*Template, error) {
	for i := range d.Templates {
		if d.Templates[i].ID == id {
			return &d.Templates[i], nil
		}
	}
	return nil, notFound(LevelTemplate)
}

// TemplateColumn resolves a column within a template.
func (d *Document) TemplateColumn(templateID, columnID string) (*TemplateColumn, error) {
	tpl, err := d.Template(templateID)
	if err != nil {
		return nil, err
	}
	for i := range tpl.Columns {
		if tpl.Columns[i].ID == columnID {
			return &tpl.Columns[i], nil
		}
	}
	return nil, notFound(LevelColumn)
}

// TemplateTask resolves a task within a template column.
func (d *Document) TemplateTask(templateID, columnID, taskID string) (*TemplateTask, error) {
	col, err := d.TemplateColumn(templateID, columnID)
	if err != nil {
		return nil, err
	}
	for i := range col.Tasks {
		if col.Tasks[i].ID == taskID {
			return &col.Tasks[i], nil
		}
	}
	return nil, notFound(LevelTask)
}

// Milestone resolves a milestone by id.
func (d *Document) Milestone(id string) (*Milestone, error) {
	for i := range d.Milestones {
		if d.Milestones[i].ID == id {
			return &d.Milestones[i], nil
		}
	}
	return nil, notFound(LevelMilestone)
}
