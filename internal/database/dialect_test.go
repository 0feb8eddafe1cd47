package database

import (
	"testing"
)

func TestDialectBasics(t *testing.T) {
	tests := []struct {
		name          string
		dialect       Dialect
		driver        string
		lastInsertID  bool
		migrationsDir string
	}{
		{"sqlite", NewSQLiteDialect(), "sqlite3", true, "sqlite"},
		{"postgres", NewPostgresDialect(), "postgres", false, "postgres"},
		{"mysql", NewMySQLDialect(), "mysql", true, "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastInsertID {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastInsertID)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrationsDir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrationsDir)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM words WHERE id = ?",
			expected: "SELECT * FROM words WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM words WHERE id = ?",
			expected: "SELECT * FROM words WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO words (language, level, text) VALUES (?, ?, ?)",
			expected: "INSERT INTO words (language, level, text) VALUES ($1, $2, $3)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE players SET name = ?, reading_level = ? WHERE id = ?",
			expected: "UPDATE players SET name = ?, reading_level = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestBoolValue(t *testing.T) {
	if got := NewSQLiteDialect().BoolValue(true); got != "1" {
		t.Errorf("sqlite BoolValue(true) = %q, want %q", got, "1")
	}
	if got := NewPostgresDialect().BoolValue(false); got != "FALSE" {
		t.Errorf("postgres BoolValue(false) = %q, want %q", got, "FALSE")
	}
}

func TestRandomFunc(t *testing.T) {
	if got := NewSQLiteDialect().RandomFunc(); got != "RANDOM()" {
		t.Errorf("sqlite RandomFunc() = %q, want RANDOM()", got)
	}
	if got := NewMySQLDialect().RandomFunc(); got != "RAND()" {
		t.Errorf("mysql RandomFunc() = %q, want RAND()", got)
	}
}
