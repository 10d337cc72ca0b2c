package config

import "testing"

func TestDefaultProfileVariants(t *testing.T) {
	withAuth := DefaultProfile(true)
	if withAuth.UsernameMax != 20 || withAuth.AgeMin != 1 || withAuth.AgeMax != 150 {
		t.Fatalf("unexpected auth bounds: %+v", withAuth)
	}
	public := DefaultProfile(false)
	if public.UsernameMax != 30 || public.AgeMin != 0 || public.AgeMax != 120 {
		t.Fatalf("unexpected public bounds: %+v", public)
	}
	// shared bounds
	for _, p := range []ProfileConfig{withAuth, public} {
		if p.UsernameMin != 3 || p.EmailMax != 120 || p.BioMax != 500 || p.PasswordMin != 6 {
			t.Fatalf("unexpected shared bounds: %+v", p)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if !cfg.Profile.WithAuth {
		t.Fatalf("expected WITH_AUTH to default to true")
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "profiles.db" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Server.Port != "8080" || cfg.Server.IdleTimeout != 60 {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.App.Migrations || cfg.App.Seed {
		t.Fatalf("migrations and seed should be off by default")
	}
}

func TestLoadPublicVariant(t *testing.T) {
	t.Setenv("WITH_AUTH", "false")
	cfg := Load()
	if cfg.Profile.WithAuth {
		t.Fatalf("expected public variant")
	}
	if cfg.Profile.UsernameMax != 30 || cfg.Profile.AgeMin != 0 || cfg.Profile.AgeMax != 120 {
		t.Fatalf("unexpected public bounds: %+v", cfg.Profile)
	}
}

func TestLoadBoundOverrides(t *testing.T) {
	t.Setenv("WITH_AUTH", "false")
	t.Setenv("AGE_MAX", "99")
	t.Setenv("USERNAME_MAX", "16")
	t.Setenv("PASSWORD_MIN", "10")
	cfg := Load()
	if cfg.Profile.AgeMax != 99 || cfg.Profile.UsernameMax != 16 || cfg.Profile.PasswordMin != 10 {
		t.Fatalf("overrides not applied: %+v", cfg.Profile)
	}
	// untouched bounds keep variant defaults
	if cfg.Profile.AgeMin != 0 || cfg.Profile.UsernameMin != 3 {
		t.Fatalf("unexpected defaults after override: %+v", cfg.Profile)
	}
}

func TestDatabaseDSNForms(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "profiles", SSLMode: "disable"}
	wantKV := "host=db port=5433 user=u password=p dbname=profiles sslmode=disable"
	if got := d.DSN(); got != wantKV {
		t.Fatalf("DSN() = %q, want %q", got, wantKV)
	}
	wantURL := "postgres://u:p@db:5433/profiles?sslmode=disable"
	if got := d.URL(); got != wantURL {
		t.Fatalf("URL() = %q, want %q", got, wantURL)
	}
}
