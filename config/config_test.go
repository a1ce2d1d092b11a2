package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "SUBJECT_SOURCE", "SUBJECTS_FILE", "SUBJECTS_CSV_DELIMITER",
		"SOURCE_MAX_ATTEMPTS", "SOURCE_TIMEOUT", "DATABASE_URL", "DB_HOST", "DB_USER",
		"SUBJECTS_TABLE", "DB_MIGRATE", "REDIS_HOST", "REDIS_PORT", "REDIS_DB",
		"SUBJECTS_REDIS_KEY", "SQLITE_PATH", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, SourceCSV, cfg.Subjects.Source)
	assert.Equal(t, "subjects.csv", cfg.Subjects.File)
	assert.Equal(t, ',', cfg.Subjects.Delimiter)
	assert.Equal(t, 3, cfg.Subjects.MaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.Subjects.Timeout)
	assert.Equal(t, "subject_catalog", cfg.Database.Table)
	assert.Equal(t, "gradebook:subjects", cfg.Redis.Key)
	assert.Equal(t, "gradebook.db", cfg.Subjects.SQLitePath)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUBJECT_SOURCE", "Postgres")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_USER", "gradebook")
	t.Setenv("DB_MIGRATE", "true")
	t.Setenv("SUBJECTS_CSV_DELIMITER", ";")
	t.Setenv("SOURCE_TIMEOUT", "2s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, SourcePostgres, cfg.Subjects.Source)
	assert.Equal(t, "postgres://gradebook:@db.local:5432/postgres?sslmode=disable", cfg.Database.URL)
	assert.True(t, cfg.Database.Migrate)
	assert.Equal(t, ';', cfg.Subjects.Delimiter)
	assert.Equal(t, 2*time.Second, cfg.Subjects.Timeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are present, even empty ones.
	require.NoError(t, os.Unsetenv("SUBJECT_SOURCE"))
	require.NoError(t, os.Unsetenv("SUBJECTS_REDIS_KEY"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SUBJECT_SOURCE=redis\nSUBJECTS_REDIS_KEY=school:subjects\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SourceRedis, cfg.Subjects.Source)
	assert.Equal(t, "school:subjects", cfg.Redis.Key)
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := &Config{
		Subjects:      SubjectsConfig{Source: SourcePostgres, MaxAttempts: 0},
		Redis:         RedisConfig{DB: 42},
		Observability: ObservabilityConfig{LogFormat: "xml"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
	assert.Contains(t, err.Error(), "SOURCE_MAX_ATTEMPTS")
	assert.Contains(t, err.Error(), "REDIS_DB")
	assert.Contains(t, err.Error(), "LOG_FORMAT")

	cfg.Subjects.Source = SourceSQLite
	assert.ErrorContains(t, cfg.Validate(), "SQLITE_PATH is required")

	cfg.Subjects.Source = "ftp"
	assert.ErrorContains(t, cfg.Validate(), "SUBJECT_SOURCE")
}
