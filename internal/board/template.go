package board

// AddTemplate appends a template skeleton. Incoming columns and tasks are
// re-minted with fresh ids so callers cannot smuggle in duplicates.
func (d *Document) AddTemplate(tpl Template) *Template {
	tpl.ID = NewID()
	for i := range tpl.Columns {
		tpl.Columns[i].ID = NewID()
		for j := range tpl.Columns[i].Tasks {
			tpl.Columns[i].Tasks[j].ID = NewID()
		}
	}
	d.Templates = append(d.Templates, tpl)
	return &d.Templates[len(d.Templates)-1]
}

// RemoveTemplate deletes a template by id.
func (d *Document) RemoveTemplate(id string) error {
	for i := range d.Templates {
		if d.Templates[i].ID == id {
			d.Templates = append(d.Templates[:i], d.Templates[i+1:]...)
			return nil
		}
	}
	return notFound(LevelTemplate)
}

// TemplateUpdate whitelists the updatable template fields. Nil fields are
// left untouched; a non-nil Columns slice replaces the tree wholesale.
type TemplateUpdate struct {
	Title   *string
	Columns []TemplateColumn
}

// UpdateTemplate applies a whitelisted partial update.
func (d *Document) UpdateTemplate(id string, upd TemplateUpdate) (*Template, error) {
	tpl, err := d.Template(id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		tpl.Title = *upd.Title
	}
	if upd.Columns != nil {
		cols := make([]TemplateColumn, len(upd.Columns))
		copy(cols, upd.Columns)
		for i := range cols {
			if cols[i].ID == "" {
				cols[i].ID = NewID()
			}
			for j := range cols[i].Tasks {
				if cols[i].Tasks[j].ID == "" {
					cols[i].Tasks[j].ID = NewID()
				}
			}
		}
		tpl.Columns = cols
	}
	return tpl, nil
}

// AddTemplateColumn appends a column skeleton to a template.
func (d *Document) AddTemplateColumn(templateID string, col TemplateColumn) (*TemplateColumn, error) {
	tpl, err := d.Template(templateID)
	if err != nil {
		return nil, err
	}
	col.ID = NewID()
	for i := range col.Tasks {
		col.Tasks[i].ID = NewID()
	}
	tpl.Columns = append(tpl.Columns, col)
	return &tpl.Columns[len(tpl.Columns)-1], nil
}

// RemoveTemplateColumn deletes a column from a template.
func (d *Document) RemoveTemplateColumn(templateID, columnID string) error {
	tpl, err := d.Template(templateID)
	if err != nil {
		return err
	}
	for i := range tpl.Columns {
		if tpl.Columns[i].ID == columnID {
			tpl.Columns = append(tpl.Columns[:i], tpl.Columns[i+1:]...)
			return nil
		}
	}
	return notFound(LevelColumn)
}

// ReplaceTemplateColumnTasks swaps a template column's task list
// wholesale, minting ids for entries that arrive without one.
func (d *Document) ReplaceTemplateColumnTasks(templateID, columnID string, tasks []TemplateTask) (*TemplateColumn, error) {
	col, err := d.TemplateColumn(templateID, columnID)
	if err != nil {
		return nil, err
	}
	replaced := make([]TemplateTask, len(tasks))
	copy(replaced, tasks)
	for i := range replaced {
		if replaced[i].ID == "" {
			replaced[i].ID = NewID()
		}
	}
	col.Tasks = replaced
	return col, nil
}

// AddTemplateTask appends a task skeleton to a template column.
func (d *Document) AddTemplateTask(templateID, columnID string, task TemplateTask) (*TemplateTask, error) {
	col, err := d.TemplateColumn(templateID, columnID)
	if err != nil {
		return nil, err
	}
	task.ID = NewID()
	col.Tasks = append(col.Tasks, task)
	return &col.Tasks[len(col.Tasks)-1], nil
}

// TemplateTaskUpdate whitelists the updatable template task fields.
type TemplateTaskUpdate struct {
	Title       *string
	Description *string
}

// UpdateTemplateTask applies a whitelisted partial update to a template task.
func (d *Document) UpdateTemplateTask(templateID, columnID, taskID string, upd TemplateTaskUpdate) (*TemplateTask, error) {
	task, err := d.TemplateTask(templateID, columnID, taskID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	return task, nil
}
