package board

import "fmt"

// Level names which link of a nested path failed to resolve. Template
// columns and tasks report the plain column/task levels, matching the
// per-level messages callers surface.
type Level string

const (
	LevelProject   Level = "project"
	LevelColumn    Level = "column"
	LevelTask      Level = "task"
	LevelSubtask   Level = "subtask"
	LevelTemplate  Level = "template"
	LevelMilestone Level = "milestone"
)

// NotFoundError reports the first level of a nested path that could not
// be resolved by id within its parent.
type NotFoundError struct {
	Level Level
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Level)
}

func notFound(level Level) *NotFoundError {
	return &NotFoundError{Level: level}
}

// ValidationError rejects an operation before any mutation is applied.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
