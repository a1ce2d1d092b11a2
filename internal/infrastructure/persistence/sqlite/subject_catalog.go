// Package sqlite implements an embedded subject catalog on top of SQLite.
//
// SQLite has no array type, so the catalog keeps one subject per row and
// the position column fixes the order.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
)

const (
	domain = "sqlite"

	// DefaultCatalogTable is the table used when none is configured.
	DefaultCatalogTable = "subject_catalog"
)

// Open opens the database file and pings it.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, shared.WrapError(domain, "Open", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot open %s", path), err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, shared.WrapError(domain, "Open", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot open %s", path), err)
	}

	return db, nil
}

// SubjectCatalog reads and writes the subject list. It implements student.SubjectSource.
type SubjectCatalog struct {
	db    *sql.DB
	table string
}

// NewSubjectCatalog creates a catalog over table. An empty name falls back
// to DefaultCatalogTable.
func NewSubjectCatalog(db *sql.DB, table string) *SubjectCatalog {
	if table == "" {
		table = DefaultCatalogTable
	}
	return &SubjectCatalog{db: db, table: table}
}

// quoteIdent quotes an SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// EnsureSchema creates the catalog table if it does not exist.
func (c *SubjectCatalog) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  position INTEGER PRIMARY KEY,
  name TEXT NOT NULL CHECK (length(trim(name)) > 0)
);`, quoteIdent(c.table))

	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return shared.WrapError(domain, "EnsureSchema", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot create table %s", c.table), err)
	}
	return nil
}

// LoadSubjects returns every subject ordered by position.
func (c *SubjectCatalog) LoadSubjects(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT name FROM %s ORDER BY position", quoteIdent(c.table))

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, shared.WrapError(domain, "LoadSubjects", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot read table %s", c.table), err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, shared.WrapError(domain, "LoadSubjects", shared.ErrSourceFormat,
				fmt.Sprintf("cannot scan table %s", c.table), err)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, shared.NewDomainError(domain, "LoadSubjects", shared.ErrSourceFormat,
				fmt.Sprintf("empty subject name at row %d of %s", len(subjects)+1, c.table))
		}
		subjects = append(subjects, name)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.WrapError(domain, "LoadSubjects", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot read table %s", c.table), err)
	}

	if len(subjects) == 0 {
		return nil, shared.NewDomainError(domain, "LoadSubjects", shared.ErrSourceFormat,
			fmt.Sprintf("table %s has no subjects", c.table))
	}

	return subjects, nil
}

// Seed replaces the catalog content in one transaction.
func (c *SubjectCatalog) Seed(ctx context.Context, subjects []string) (err error) {
	if len(subjects) == 0 {
		return shared.NewDomainError(domain, "Seed", shared.ErrSourceFormat, "nothing to seed")
	}
	if err := c.EnsureSchema(ctx); err != nil {
		return err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return shared.WrapError(domain, "Seed", shared.ErrSourceUnavailable, "cannot begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	table := quoteIdent(c.table)
	if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return shared.WrapError(domain, "Seed", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot clear table %s", c.table), err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (position, name) VALUES (?, ?)", table)
	for i, name := range subjects {
		if _, err = tx.ExecContext(ctx, insert, i+1, name); err != nil {
			return shared.WrapError(domain, "Seed", shared.ErrSourceFormat,
				fmt.Sprintf("cannot store subject %q", name), err)
		}
	}

	if err = tx.Commit(); err != nil {
		return shared.WrapError(domain, "Seed", shared.ErrSourceUnavailable, "cannot commit", err)
	}
	return nil
}
