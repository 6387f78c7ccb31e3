package database

import "fmt"

// Config holds local database settings shared across bots.
type Config struct {
	Path          string `yaml:"path" envconfig:"DB_PATH"`
	MigrationsDir string `yaml:"migrations_dir" envconfig:"DB_MIGRATIONS_DIR"`
}

// DSN returns the sqlite3 driver connection string with WAL and a busy timeout.
func (c Config) DSN() string {
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", c.Path)
}
