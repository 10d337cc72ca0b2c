package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOptionalAccessors(t *testing.T) {
	age := 34
	bio := "A short bio about John."

	tests := []struct {
		name   string
		user   User
		hasAge bool
		ageVal int
		hasBio bool
		bioVal string
	}{
		{"both set", User{Age: &age, Bio: &bio}, true, 34, true, bio},
		{"both absent", User{}, false, 0, false, ""},
		{"empty bio counts as absent", User{Bio: new(string)}, false, 0, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.HasAge(); got != tt.hasAge {
				t.Errorf("HasAge() = %v, want %v", got, tt.hasAge)
			}
			if got := tt.user.AgeValue(); got != tt.ageVal {
				t.Errorf("AgeValue() = %d, want %d", got, tt.ageVal)
			}
			if got := tt.user.HasBio(); got != tt.hasBio {
				t.Errorf("HasBio() = %v, want %v", got, tt.hasBio)
			}
			if got := tt.user.BioValue(); got != tt.bioVal {
				t.Errorf("BioValue() = %q, want %q", got, tt.bioVal)
			}
		})
	}
}

func TestPasswordNeverMarshalled(t *testing.T) {
	u := User{ID: 1, Username: "jdoe", Email: "jdoe@example.com", Password: "$2a$10$hash"}
	out, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "hash") || strings.Contains(string(out), "password") {
		t.Fatalf("password leaked into JSON: %s", out)
	}
}
