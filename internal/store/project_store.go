package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/forgeboard-dev/forgeboard/internal/board"
	"github.com/forgeboard-dev/forgeboard/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports a missing project aggregate.
	ErrNotFound = errors.New("project not found")

	// ErrConflict reports a save against a stale aggregate snapshot.
	ErrConflict = errors.New("project was modified concurrently")
)

// Aggregate pairs a project row with its decoded board document. Load
// one, mutate the document in memory, then Save the whole thing back in
// a single row update.
type Aggregate struct {
	ID          uint
	Title       string
	Description string
	Status      string
	StartDate   time.Time
	EndDate     time.Time
	Doc         board.Document

	version uint
}

type ProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Create inserts a new aggregate and fills in its assigned id.
func (s *ProjectStore) Create(agg *Aggregate) error {
	raw, err := json.Marshal(agg.Doc)
	if err != nil {
		return err
	}

	row := models.Project{
		Title:       agg.Title,
		Description: agg.Description,
		Status:      agg.Status,
		StartDate:   agg.StartDate,
		EndDate:     agg.EndDate,
		Document:    datatypes.JSON(raw),
	}

	if err := s.db.Create(&row).Error; err != nil {
		return err
	}

	agg.ID = row.ID
	agg.version = row.Version
	return nil
}

// Load fetches one aggregate by id.
func (s *ProjectStore) Load(id uint) (*Aggregate, error) {
	var row models.Project

	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return decode(&row)
}

// Save rewrites the whole aggregate in one row update. The version column
// fences out writers holding a stale snapshot.
func (s *ProjectStore) Save(agg *Aggregate) error {
	raw, err := json.Marshal(agg.Doc)
	if err != nil {
		return err
	}

	res := s.db.Model(&models.Project{}).
		Where("id = ? AND version = ?", agg.ID, agg.version).
		Updates(map[string]interface{}{
			"title":       agg.Title,
			"description": agg.Description,
			"status":      agg.Status,
			"start_date":  agg.StartDate,
			"end_date":    agg.EndDate,
			"document":    datatypes.JSON(raw),
			"version":     agg.version + 1,
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		// Either the row is gone or another writer got there first.
		var count int64
		if err := s.db.Model(&models.Project{}).Where("id = ?", agg.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}

	agg.version++
	return nil
}

// Delete removes an aggregate by id.
func (s *ProjectStore) Delete(id uint) error {
	res := s.db.Delete(&models.Project{}, id)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// List returns every aggregate.
func (s *ProjectStore) List() ([]*Aggregate, error) {
	var rows []models.Project

	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	aggs := make([]*Aggregate, 0, len(rows))
	for i := range rows {
		agg, err := decode(&rows[i])
		if err != nil {
			return nil, err
		}
		aggs = append(aggs, agg)
	}
	return aggs, nil
}

// ListForUser returns the aggregates relevant to a user: those they
// manage plus those holding a task assigned to them. Documents are
// filtered after decoding, which keeps the query portable across the
// runtime and test drivers; project counts are small by assumption.
func (s *ProjectStore) ListForUser(userID uint) ([]*Aggregate, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	relevant := make([]*Aggregate, 0, len(all))
	for _, agg := range all {
		if agg.Doc.RelevantTo(userID) {
			relevant = append(relevant, agg)
		}
	}
	return relevant, nil
}

// FindByTask locates the aggregate containing the task id, scanning every
// project's columns.
func (s *ProjectStore) FindByTask(taskID string) (*Aggregate, *board.Task, error) {
	all, err := s.List()
	if err != nil {
		return nil, nil, err
	}

	for _, agg := range all {
		if task, err := agg.Doc.FindTask(taskID); err == nil {
			return agg, task, nil
		}
	}
	return nil, nil, &board.NotFoundError{Level: board.LevelTask}
}

func decode(row *models.Project) (*Aggregate, error) {
	agg := &Aggregate{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      row.Status,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		version:     row.Version,
	}

	if len(row.Document) > 0 {
		if err := json.Unmarshal(row.Document, &agg.Doc); err != nil {
			return nil, err
		}
	}

	return agg, nil
}
