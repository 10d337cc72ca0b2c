package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/diewo77/go-profiles/internal/config"
	"github.com/diewo77/go-profiles/internal/models"
	"github.com/diewo77/go-profiles/internal/store"
)

// Seed inserts the sample profiles when DB_SEED asks for it. It only
// applies to the public variant; seeded accounts would have no password
// to log in with.
func Seed(conn *gorm.DB, cfg *config.Config) error {
	if !cfg.App.Seed || cfg.Profile.WithAuth {
		return nil
	}
	return SeedSamples(conn)
}

// SeedSamples writes the demo profiles. Idempotent: existing usernames
// are left alone, so running it twice changes nothing.
func SeedSamples(conn *gorm.DB) error {
	st := store.NewUserStore(conn)

	age1, age2 := 34, 28
	bio1 := "A short bio about John."
	bio2 := "Alice loves coding and coffee."
	samples := []models.User{
		{Username: "jdoe", FullName: "John Doe", Email: "jdoe@example.com", Age: &age1, Bio: &bio1},
		{Username: "asmith", FullName: "Alice Smith", Email: "alice@example.com", Age: &age2, Bio: &bio2},
	}

	created := 0
	for i := range samples {
		existing, err := st.ByUsername(samples[i].Username)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := st.Insert(&samples[i]); err != nil {
			return err
		}
		created++
	}
	if created > 0 {
		log.Printf("[db] seeded %d sample profiles", created)
	}
	return nil
}
