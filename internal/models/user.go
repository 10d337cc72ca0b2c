package models

import "time"

// User is one profile row. The same table backs both variants: with
// accounts enabled Password holds a bcrypt hash, without them it stays
// empty and the timestamps are simply not rendered.
//
// Age and Bio are pointers because "not provided" is distinct from zero:
// a missing age renders as a placeholder, age 0 is a real (public
// variant) value.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:30;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Age       *int      `json:"age,omitempty"`
	Bio       *string   `gorm:"size:500" json:"bio,omitempty"`
	Password  string    `gorm:"size:255" json:"-"` // Hashed, never exposed in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasAge reports whether an age was provided.
func (u *User) HasAge() bool { return u.Age != nil }

// AgeValue returns the stored age, or 0 when absent.
func (u *User) AgeValue() int {
	if u.Age == nil {
		return 0
	}
	return *u.Age
}

// HasBio reports whether a bio was provided.
func (u *User) HasBio() bool { return u.Bio != nil && *u.Bio != "" }

// BioValue returns the stored bio, or "".
func (u *User) BioValue() string {
	if u.Bio == nil {
		return ""
	}
	return *u.Bio
}
