package store

import (
	"errors"

	"github.com/forgeboard-dev/forgeboard/internal/models"
	"gorm.io/gorm"
)

// ErrUserNotFound reports a missing user row.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the user directory: the aggregate core only consults it to
// validate assignment and management references.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User

	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User

	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// FindByIDs returns the subset of users matching the given ids.
func (s *UserStore) FindByIDs(ids []uint) ([]models.User, error) {
	var users []models.User

	if len(ids) == 0 {
		return users, nil
	}

	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserStore) FindByRole(role string) ([]models.User, error) {
	var users []models.User

	if err := s.db.Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserStore) Exists(id uint) (bool, error) {
	var count int64

	if err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *UserStore) IsAdmin(id uint) (bool, error) {
	user, err := s.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	return user.Role == models.RoleAdmin, nil
}

func (s *UserStore) All() ([]models.User, error) {
	var users []models.User

	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserStore) UpdateRole(id uint, role string) (*models.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserStore) Delete(id uint) error {
	res := s.db.Delete(&models.User{}, id)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
