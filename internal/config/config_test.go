package config

import "testing"

func TestLoad_RequiresADataSource(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATA_FILE", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error with no data source configured")
	}
}

func TestLoad_DatabaseTakesPrecedence(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("DATA_FILE", "data.xlsx")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.UsesDatabase() {
		t.Fatalf("database source must take precedence when both are set")
	}
}

func TestConnectionURL_AppliesSSLMode(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("SSL_MODE", "")
	t.Setenv("DATA_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.ConnectionURL(); got != "postgres://localhost/db?sslmode=disable" {
		t.Fatalf("unexpected connection URL %q", got)
	}

	cfg.Database.URL = "postgres://localhost/db?sslmode=require"
	if got := cfg.ConnectionURL(); got != "postgres://localhost/db?sslmode=require" {
		t.Fatalf("explicit sslmode must be kept, got %q", got)
	}
}
