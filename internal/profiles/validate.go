package profiles

import (
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/diewo77/go-profiles/validation"
)

// Input is the raw field set a handler collects from a form or JSON body.
// Everything arrives as text; the service trims, parses and validates.
type Input struct {
	Username string
	Email    string
	FullName string
	Age      string
	Bio      string
	Password string
}

// normalized returns a copy with every profile field trimmed. The password
// is left alone: surrounding whitespace there is part of the secret.
func (in Input) normalized() Input {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Age = strings.TrimSpace(in.Age)
	in.Bio = strings.TrimSpace(in.Bio)
	return in
}

type checkMode int

const (
	forRegister checkMode = iota
	forUpdate
)

// staticChecks runs every per-field rule and collects all failures in one
// pass, so a submission with three bad fields reports three errors at
// once. A field that fails required is not checked further; the remaining
// fields always are.
func (s *Service) staticChecks(in Input, mode checkMode) validation.Violations {
	v := validation.Violations{}

	// With accounts enabled the username is fixed at registration, so an
	// update neither validates nor changes it.
	if !(s.cfg.WithAuth && mode == forUpdate) {
		validation.Required("username", in.Username, v)
		if !v.Has("username") {
			validation.MinLength("username", in.Username, s.cfg.UsernameMin, v)
			validation.MaxLength("username", in.Username, s.cfg.UsernameMax, v)
		}
	}

	validation.Required("email", in.Email, v)
	if !v.Has("email") {
		validation.Email("email", in.Email, v)
		validation.MaxLength("email", in.Email, s.cfg.EmailMax, v)
	}

	validation.Required("full_name", in.FullName, v)
	if !v.Has("full_name") {
		validation.MinLength("full_name", in.FullName, s.cfg.FullNameMin, v)
		validation.MaxLength("full_name", in.FullName, s.cfg.FullNameMax, v)
	}

	if in.Age != "" {
		if n, err := strconv.Atoi(in.Age); err != nil {
			v.Add("age", "not_a_number")
		} else {
			validation.IntInRange("age", n, s.cfg.AgeMin, s.cfg.AgeMax, v)
		}
	}

	validation.MaxLength("bio", in.Bio, s.cfg.BioMax, v)

	if s.cfg.WithAuth && mode == forRegister {
		validation.Required("password", in.Password, v)
		if !v.Has("password") {
			validation.MinLength("password", in.Password, s.cfg.PasswordMin, v)
		}
	}

	return v
}

// uniqueChecks runs the collision lookups against the store. selfID is 0
// on registration; on update it excludes the row being updated so keeping
// your own email is never a collision. Returns a non-nil error only for
// storage failures; collisions land in v as "taken".
func (s *Service) uniqueChecks(in Input, selfID uint, checkUsername bool, v validation.Violations) error {
	if checkUsername {
		existing, err := s.lookupUsername(in.Username, selfID)
		if err != nil {
			return err
		}
		if existing != nil {
			v.Add("username", "taken")
		}
	}

	existing, err := s.lookupEmail(in.Email, selfID)
	if err != nil {
		return err
	}
	if existing != nil {
		v.Add("email", "taken")
	}
	return nil
}

// newPasswordChecks validates a password-change form against the stored
// hash, collecting all failures keyed by form field.
func newPasswordChecks(current, next, confirm, storedHash string, minLen int) validation.Violations {
	v := validation.Violations{}
	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(current)) != nil {
		v.Add("current", "invalid_password")
	}
	validation.Required("password", next, v)
	if !v.Has("password") {
		validation.MinLength("password", next, minLen, v)
	}
	if next != confirm {
		v.Add("confirm", "mismatch")
	}
	return v
}

func parseAge(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// optional maps an empty trimmed string to absent.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
