package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
)

type fakeRow struct {
	subjects []string
	err      error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]string)) = r.subjects
	return nil
}

type fakeQuerier struct {
	row     fakeRow
	execErr error

	lastSQL  string
	lastArgs []interface{}
	execs    []string
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	q.lastSQL = sql
	q.lastArgs = args
	q.execs = append(q.execs, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), q.execErr
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, _ ...interface{}) pgx.Row {
	q.lastSQL = sql
	return q.row
}

func TestSubjectCatalog_LoadSubjects(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{subjects: []string{"Math", " Physics", "History"}}}

	subjects, err := NewSubjectCatalog(q, "").LoadSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Physics", "History"}, subjects)
	assert.Equal(t, `SELECT subjects FROM "subject_catalog" ORDER BY id LIMIT 1`, q.lastSQL)
}

func TestSubjectCatalog_TableNameIsQuoted(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{subjects: []string{"Math"}}}

	_, err := NewSubjectCatalog(q, `x"; DROP TABLE y; --`).LoadSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `SELECT subjects FROM "x""; DROP TABLE y; --" ORDER BY id LIMIT 1`, q.lastSQL)
}

func TestSubjectCatalog_NoRows(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}

	_, err := NewSubjectCatalog(q, "").LoadSubjects(context.Background())
	assert.ErrorIs(t, err, shared.ErrSourceFormat)
	assert.False(t, shared.IsRetryable(err))
}

func TestSubjectCatalog_EmptyOrBlankSubjects(t *testing.T) {
	_, err := NewSubjectCatalog(&fakeQuerier{row: fakeRow{subjects: nil}}, "").LoadSubjects(context.Background())
	assert.ErrorIs(t, err, shared.ErrSourceFormat)

	_, err = NewSubjectCatalog(&fakeQuerier{row: fakeRow{subjects: []string{"Math", "  "}}}, "").LoadSubjects(context.Background())
	assert.ErrorIs(t, err, shared.ErrSourceFormat)
}

func TestSubjectCatalog_QueryFailureIsRetryable(t *testing.T) {
	cause := errors.New("connection reset by peer")
	q := &fakeQuerier{row: fakeRow{err: cause}}

	_, err := NewSubjectCatalog(q, "").LoadSubjects(context.Background())
	assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.True(t, shared.IsRetryable(err))
}

func TestSubjectCatalog_Seed(t *testing.T) {
	q := &fakeQuerier{}
	catalog := NewSubjectCatalog(q, "subjects_2024")

	require.NoError(t, catalog.Seed(context.Background(), []string{"Math", "Art"}))
	assert.Equal(t, `WITH cleared AS (DELETE FROM "subjects_2024") INSERT INTO "subjects_2024" (subjects) VALUES ($1)`, q.lastSQL)
	assert.Equal(t, []interface{}{[]string{"Math", "Art"}}, q.lastArgs)

	assert.ErrorIs(t, catalog.Seed(context.Background(), nil), shared.ErrSourceFormat)

	q.execErr = errors.New("permission denied")
	assert.ErrorIs(t, catalog.Seed(context.Background(), []string{"Math"}), shared.ErrSourceUnavailable)
}

func TestSubjectCatalog_SeedCreatesConfiguredTable(t *testing.T) {
	q := &fakeQuerier{}
	catalog := NewSubjectCatalog(q, "subjects_2024")

	require.NoError(t, catalog.Seed(context.Background(), []string{"Math"}))
	require.Len(t, q.execs, 2)
	assert.Contains(t, q.execs[0], `CREATE TABLE IF NOT EXISTS "subjects_2024"`)
	assert.NotContains(t, q.execs[0], DefaultCatalogTable)
	assert.Contains(t, q.execs[1], `INSERT INTO "subjects_2024"`)
}

func TestSubjectCatalog_EnsureSchemaFailure(t *testing.T) {
	q := &fakeQuerier{execErr: errors.New("permission denied")}

	err := NewSubjectCatalog(q, "").EnsureSchema(context.Background())
	assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
}

func TestGetMigrations(t *testing.T) {
	migrations := GetMigrations()
	require.Len(t, migrations, 1)
	assert.Equal(t, "create_subject_catalog", migrations[0].Name)
	assert.Contains(t, migrations[0].UpSQL, DefaultCatalogTable)
	assert.Contains(t, migrations[0].UpSQL, "CREATE TABLE IF NOT EXISTS")
}
