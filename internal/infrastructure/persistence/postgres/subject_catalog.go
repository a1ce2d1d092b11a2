package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
)

const (
	domain = "postgres"

	// DefaultCatalogTable is the table created by migration 001.
	DefaultCatalogTable = "subject_catalog"
)

// SubjectCatalog reads the reference subject list from a catalog table.
// It implements student.SubjectSource.
type SubjectCatalog struct {
	db    Querier
	table string
}

// NewSubjectCatalog creates a catalog source over the given table.
// An empty table name falls back to DefaultCatalogTable.
func NewSubjectCatalog(db Querier, table string) *SubjectCatalog {
	if table == "" {
		table = DefaultCatalogTable
	}
	return &SubjectCatalog{db: db, table: table}
}

func (c *SubjectCatalog) tableIdent() string {
	return pgx.Identifier{c.table}.Sanitize()
}

// EnsureSchema creates the configured catalog table if it does not exist.
// Migration 001 covers only DefaultCatalogTable.
func (c *SubjectCatalog) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.Exec(ctx, catalogDDL(c.tableIdent())); err != nil {
		return shared.WrapError(domain, "EnsureSchema", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot create table %s", c.table), err)
	}
	return nil
}

// LoadSubjects returns the subjects of the first catalog row.
func (c *SubjectCatalog) LoadSubjects(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT subjects FROM %s ORDER BY id LIMIT 1", c.tableIdent())

	var subjects []string
	err := c.db.QueryRow(ctx, query).Scan(&subjects)
	if IsNoRows(err) {
		return nil, shared.NewDomainError(domain, "LoadSubjects", shared.ErrSourceFormat,
			fmt.Sprintf("table %s has no subject rows", c.table))
	}
	if err != nil {
		return nil, shared.WrapError(domain, "LoadSubjects", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot read table %s", c.table), err)
	}

	if len(subjects) == 0 {
		return nil, shared.NewDomainError(domain, "LoadSubjects", shared.ErrSourceFormat,
			fmt.Sprintf("first row of %s has no subjects", c.table))
	}
	for i, s := range subjects {
		subjects[i] = strings.TrimSpace(s)
		if subjects[i] == "" {
			return nil, shared.NewDomainError(domain, "LoadSubjects", shared.ErrSourceFormat,
				fmt.Sprintf("empty subject name at position %d of %s", i+1, c.table))
		}
	}

	return subjects, nil
}

// Seed replaces the catalog content with a single subject row.
func (c *SubjectCatalog) Seed(ctx context.Context, subjects []string) error {
	if len(subjects) == 0 {
		return shared.NewDomainError(domain, "Seed", shared.ErrSourceFormat, "nothing to seed")
	}
	if err := c.EnsureSchema(ctx); err != nil {
		return err
	}

	ident := c.tableIdent()
	query := fmt.Sprintf("WITH cleared AS (DELETE FROM %s) INSERT INTO %s (subjects) VALUES ($1)", ident, ident)
	if _, err := c.db.Exec(ctx, query, subjects); err != nil {
		return shared.WrapError(domain, "Seed", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot seed table %s", c.table), err)
	}

	return nil
}
