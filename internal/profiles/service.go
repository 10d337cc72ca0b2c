// Package profiles implements the profile rules: field validation,
// uniqueness, normalization and password handling. It sits between the
// HTTP handlers and the store and is the only place that decides whether
// a submission is acceptable.
package profiles

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/diewo77/go-profiles/internal/config"
	"github.com/diewo77/go-profiles/internal/models"
	"github.com/diewo77/go-profiles/internal/store"
)

// Service validates submissions and drives the store.
type Service struct {
	store *store.UserStore
	cfg   config.ProfileConfig
}

func New(st *store.UserStore, cfg config.ProfileConfig) *Service {
	return &Service{store: st, cfg: cfg}
}

// Config exposes the active bounds, mostly for handlers rendering forms.
func (s *Service) Config() config.ProfileConfig { return s.cfg }

// Register validates a submission and inserts the new profile. On rule
// failures it returns *ValidationError with every violated field; a
// storage-level duplicate that slipped past the lookups comes back as
// *ConflictError.
func (s *Service) Register(in Input) (*models.User, error) {
	in = in.normalized()
	v := s.staticChecks(in, forRegister)
	if v.Empty() {
		// uniqueness is only worth asking once the fields themselves hold up
		if err := s.uniqueChecks(in, 0, true, v); err != nil {
			return nil, err
		}
	}
	if !v.Empty() {
		return nil, &ValidationError{Fields: v}
	}

	u := &models.User{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
		Age:      parseAge(in.Age),
		Bio:      optional(in.Bio),
	}
	if s.cfg.WithAuth {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hash)
	}

	if err := s.store.Insert(u); err != nil {
		return nil, translateStoreErr(err)
	}
	return u, nil
}

// Update validates a submission against an existing profile and rewrites
// it. The row must exist first; a missing id is ErrNotFound before any
// validation runs. With accounts enabled the submitted username is
// ignored and the stored one kept.
func (s *Service) Update(id uint, in Input) (*models.User, error) {
	current, err := s.store.ByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}

	in = in.normalized()
	if s.cfg.WithAuth {
		in.Username = current.Username
	}

	v := s.staticChecks(in, forUpdate)
	if v.Empty() {
		if err := s.uniqueChecks(in, id, !s.cfg.WithAuth, v); err != nil {
			return nil, err
		}
	}
	if !v.Empty() {
		return nil, &ValidationError{Fields: v}
	}

	current.Username = in.Username
	current.Email = in.Email
	current.FullName = in.FullName
	current.Age = parseAge(in.Age)
	current.Bio = optional(in.Bio)

	if err := s.store.Update(current); err != nil {
		return nil, translateStoreErr(err)
	}
	return current, nil
}

// Get returns one profile or ErrNotFound.
func (s *Service) Get(id uint) (*models.User, error) {
	u, err := s.store.ByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// List returns every profile, most recently registered first.
func (s *Service) List() ([]models.User, error) {
	return s.store.All()
}

// Authenticate checks a username/password pair against the stored hash.
func (s *Service) Authenticate(username, password string) (*models.User, error) {
	u, err := s.store.ByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// ChangePassword verifies the current password and stores a new hash.
// All failures are collected into one *ValidationError keyed by the form
// field ("current", "password", "confirm").
func (s *Service) ChangePassword(id uint, current, next, confirm string) error {
	u, err := s.store.ByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}

	v := newPasswordChecks(current, next, confirm, u.Password, s.cfg.PasswordMin)
	if !v.Empty() {
		return &ValidationError{Fields: v}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	if err := s.store.Update(u); err != nil {
		return translateStoreErr(err)
	}
	return nil
}

func (s *Service) lookupUsername(username string, selfID uint) (*models.User, error) {
	if selfID == 0 {
		return s.store.ByUsername(username)
	}
	return s.store.ByUsernameExcluding(username, selfID)
}

func (s *Service) lookupEmail(email string, selfID uint) (*models.User, error) {
	if selfID == 0 {
		return s.store.ByEmail(email)
	}
	return s.store.ByEmailExcluding(email, selfID)
}

// translateStoreErr maps storage failures onto the service error set so
// no raw driver error ever reaches a handler.
func translateStoreErr(err error) error {
	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		return &ConflictError{Field: conflict.Field}
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
