// Package store owns every read and write against the users table.
// Nothing else in the application touches gorm directly, so the schema
// and the duplicate-key translation live here.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/go-profiles/internal/models"
)

// ErrNotFound is returned by Update when the target row does not exist.
var ErrNotFound = errors.New("user not found")

// ConflictError reports a unique-constraint violation. Field is
// "username" or "email" when the driver message names the column,
// empty when it cannot be attributed.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "duplicate value"
	}
	return e.Field + " already exists"
}

// UserStore is the single gateway to persisted profiles.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{db: db} }

// Migrate creates or updates the users table. Safe to run repeatedly.
func (s *UserStore) Migrate() error {
	return s.db.AutoMigrate(&models.User{})
}

// ByID returns the user with the given id, or nil when absent.
func (s *UserStore) ByID(id uint) (*models.User, error) {
	var u models.User
	err := s.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ByUsername returns the user owning the username, or nil when absent.
func (s *UserStore) ByUsername(username string) (*models.User, error) {
	return s.one("username = ?", username)
}

// ByEmail returns the user owning the email, or nil when absent.
func (s *UserStore) ByEmail(email string) (*models.User, error) {
	return s.one("email = ?", email)
}

// ByUsernameExcluding looks the username up while ignoring one row,
// so an update does not collide with the record being updated.
func (s *UserStore) ByUsernameExcluding(username string, id uint) (*models.User, error) {
	return s.one("username = ? AND id <> ?", username, id)
}

// ByEmailExcluding is ByUsernameExcluding for the email column.
func (s *UserStore) ByEmailExcluding(email string, id uint) (*models.User, error) {
	return s.one("email = ? AND id <> ?", email, id)
}

func (s *UserStore) one(query string, args ...any) (*models.User, error) {
	var u models.User
	err := s.db.Where(query, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Insert persists a new user and assigns its id. A unique-constraint
// violation comes back as *ConflictError; the row is not written.
func (s *UserStore) Insert(u *models.User) error {
	if err := s.db.Create(u).Error; err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		return err
	}
	return nil
}

// updateColumns lists every caller-editable column. Password is included
// so a hash change rides the same path; CreatedAt never changes and
// UpdatedAt is maintained by gorm.
var updateColumns = []string{"username", "email", "full_name", "age", "bio", "password"}

// Update rewrites the full row for u.ID. Selecting the columns explicitly
// makes zero values (cleared bio, nil age) overwrite what was stored,
// which plain struct updates would skip. Returns ErrNotFound when no row
// matches and *ConflictError on a duplicate username or email.
func (s *UserStore) Update(u *models.User) error {
	tx := s.db.Model(&models.User{}).Where("id = ?", u.ID).Select(updateColumns).Updates(u)
	if tx.Error != nil {
		if conflict := asConflict(tx.Error); conflict != nil {
			return conflict
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// All returns every profile, most recently registered first.
func (s *UserStore) All() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of stored profiles.
func (s *UserStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// asConflict recognizes duplicate-key failures across drivers. With
// TranslateError gorm raises ErrDuplicatedKey; without it sqlite says
// "UNIQUE constraint failed: users.username" and postgres "duplicate key
// value violates unique constraint ...". Both message forms carry the
// column name, which gives us the field attribution.
func asConflict(err error) *ConflictError {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if !errors.Is(err, gorm.ErrDuplicatedKey) &&
		!strings.Contains(msg, "duplicate") &&
		!strings.Contains(msg, "unique") {
		return nil
	}
	switch {
	case strings.Contains(msg, "username"):
		return &ConflictError{Field: "username"}
	case strings.Contains(msg, "email"):
		return &ConflictError{Field: "email"}
	}
	return &ConflictError{}
}
