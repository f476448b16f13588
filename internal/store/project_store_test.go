package store

import (
	"testing"
	"time"

	"github.com/forgeboard-dev/forgeboard/db"
	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T) *ProjectStore {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.MigrateDatabase(gormDB))

	return NewProjectStore(gormDB)
}

func newAggregate(title string) *Aggregate {
	return &Aggregate{
		Title:       title,
		Description: "desc",
		Status:      "active",
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Doc: board.Document{
			Managers:   []uint{},
			Columns:    []board.Column{},
			Templates:  []board.Template{},
			Milestones: []board.Milestone{},
		},
	}
}

func TestCreateLoadRoundtrip(t *testing.T) {
	s := setupStore(t)

	agg := newAggregate("Website relaunch")
	col := agg.Doc.AddColumn("Todo")
	_, err := agg.Doc.AddTask(col.ID, board.TaskDraft{Title: "Write spec", Description: "everything"})
	require.NoError(t, err)

	require.NoError(t, s.Create(agg))
	require.NotZero(t, agg.ID)

	loaded, err := s.Load(agg.ID)
	require.NoError(t, err)
	require.Equal(t, "Website relaunch", loaded.Title)
	require.Len(t, loaded.Doc.Columns, 1)
	require.Equal(t, "Write spec", loaded.Doc.Columns[0].Tasks[0].Title)
}

func TestLoadMissingProject(t *testing.T) {
	s := setupStore(t)

	_, err := s.Load(12345)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveRejectsStaleSnapshot(t *testing.T) {
	s := setupStore(t)

	agg := newAggregate("Race")
	require.NoError(t, s.Create(agg))

	first, err := s.Load(agg.ID)
	require.NoError(t, err)
	second, err := s.Load(agg.ID)
	require.NoError(t, err)

	first.Doc.AddColumn("From first writer")
	require.NoError(t, s.Save(first))

	second.Doc.AddColumn("From second writer")
	require.ErrorIs(t, s.Save(second), ErrConflict)

	// The first writer's change survived.
	loaded, err := s.Load(agg.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Doc.Columns, 1)
	require.Equal(t, "From first writer", loaded.Doc.Columns[0].Title)
}

func TestSaveAfterDeleteReportsNotFound(t *testing.T) {
	s := setupStore(t)

	agg := newAggregate("Doomed")
	require.NoError(t, s.Create(agg))

	loaded, err := s.Load(agg.ID)
	require.NoError(t, err)

	require.NoError(t, s.Delete(agg.ID))
	require.ErrorIs(t, s.Delete(agg.ID), ErrNotFound)

	loaded.Status = "archived"
	require.ErrorIs(t, s.Save(loaded), ErrNotFound)
}

func TestSavedWriterCanSaveAgain(t *testing.T) {
	s := setupStore(t)

	agg := newAggregate("Serial")
	require.NoError(t, s.Create(agg))

	agg.Doc.AddColumn("One")
	require.NoError(t, s.Save(agg))

	agg.Doc.AddColumn("Two")
	require.NoError(t, s.Save(agg))

	loaded, err := s.Load(agg.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Doc.Columns, 2)
}

func TestListForUser(t *testing.T) {
	s := setupStore(t)

	managed := newAggregate("Managed")
	managed.Doc.AddManager(7)
	require.NoError(t, s.Create(managed))

	assigned := newAggregate("Assigned")
	col := assigned.Doc.AddColumn("Todo")
	_, err := assigned.Doc.AddTask(col.ID, board.TaskDraft{Title: "Fix bug", Assignees: []uint{7}})
	require.NoError(t, err)
	require.NoError(t, s.Create(assigned))

	unrelated := newAggregate("Unrelated")
	require.NoError(t, s.Create(unrelated))

	relevant, err := s.ListForUser(7)
	require.NoError(t, err)
	require.Len(t, relevant, 2)

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestFindByTask(t *testing.T) {
	s := setupStore(t)

	agg := newAggregate("Holder")
	col := agg.Doc.AddColumn("Todo")
	created, err := agg.Doc.AddTask(col.ID, board.TaskDraft{Title: "Needle"})
	require.NoError(t, err)
	require.NoError(t, s.Create(agg))

	require.NoError(t, s.Create(newAggregate("Haystack")))

	found, task, err := s.FindByTask(created.ID)
	require.NoError(t, err)
	require.Equal(t, agg.ID, found.ID)
	require.Equal(t, "Needle", task.Title)

	_, _, err = s.FindByTask("missing-task")
	var nf *board.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, board.LevelTask, nf.Level)
}
