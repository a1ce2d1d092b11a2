package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MiracleAriel/seminar12-gb-hw/config"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/application/gradebook"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/infrastructure/persistence/postgres"
)

// ═══════════════════════════════════════════════════════════════════════════════
// REPORT
// ═══════════════════════════════════════════════════════════════════════════════

type reportOptions struct {
	firstName  string
	lastName   string
	patronymic string
	scores     []string
}

func newReportCommand(a *app) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Create a student record, add scores and print the averages",
		Example: `  gradebook report --first John --last Doe --patronymic Smith \
    --score Math:5:90 --score Physics:4:85 --score History:3:78`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runReport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.firstName, "first", "", "first name")
	cmd.Flags().StringVar(&opts.lastName, "last", "", "last name")
	cmd.Flags().StringVar(&opts.patronymic, "patronymic", "", "patronymic")
	cmd.Flags().StringArrayVar(&opts.scores, "score", nil, "score as Subject:grade:result (repeatable)")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	_ = cmd.MarkFlagRequired("patronymic")

	return cmd
}

func (a *app) runReport(cmd *cobra.Command, opts *reportOptions) error {
	ctx := cmd.Context()

	// Разбираем оценки до обращения к источнику
	scores := make([]gradebook.RecordScoreCommand, 0, len(opts.scores))
	for _, raw := range opts.scores {
		score, err := gradebook.ParseScore(raw)
		if err != nil {
			return err
		}
		scores = append(scores, score)
	}

	opened, err := openStore(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}
	defer opened.close()

	svc := gradebook.NewService(opened.Source(a.cfg, a.log), gradebook.WithLogger(a.log))

	st, err := svc.Enroll(ctx, gradebook.EnrollCommand{
		FirstName:  opts.firstName,
		LastName:   opts.lastName,
		Patronymic: opts.patronymic,
	})
	if err != nil {
		return err
	}

	for _, score := range scores {
		if err := svc.RecordScore(ctx, st, score); err != nil {
			return err
		}
	}

	return printReport(cmd.OutOrStdout(), svc.Report(st))
}

// printReport печатает отчёт таблицей.
func printReport(w io.Writer, r gradebook.Report) error {
	fmt.Fprintln(w, r.Student)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBJECT\tGRADES\tAVG GRADE\tAVG TEST")
	for _, s := range r.Subjects {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\n", s.Subject, s.Grades, s.AverageGrade, s.AverageTestResult)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Overall average grade: %.2f\n", r.Overall)
	return err
}

// ═══════════════════════════════════════════════════════════════════════════════
// MIGRATE
// ═══════════════════════════════════════════════════════════════════════════════

var errNotPostgres = errors.New("migrate requires SUBJECT_SOURCE=postgres")

func newMigrateCommand(a *app) *cobra.Command {
	var seed []string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply subject catalog migrations to PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Subjects.Source != config.SourcePostgres {
				return errNotPostgres
			}

			ctx := cmd.Context()
			conn, err := postgres.NewConnectionFromURL(ctx, a.cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer conn.Close()

			catalog := postgres.NewSubjectCatalog(conn, a.cfg.Database.Table)
			if err := runMigrations(ctx, conn, catalog, a.log); err != nil {
				return err
			}

			if len(seed) == 0 {
				return nil
			}

			if err := catalog.Seed(ctx, seed); err != nil {
				return err
			}
			a.log.Info("subject catalog seeded", "subjects", len(seed))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&seed, "seed", nil, "subjects to store after migrating, e.g. Math,Physics")

	return cmd
}

// ═══════════════════════════════════════════════════════════════════════════════
// SEED
// ═══════════════════════════════════════════════════════════════════════════════

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "seed SUBJECT...",
		Short:   "Replace the subject list in the configured source",
		Example: "  gradebook seed Math Physics History",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opened, err := openStore(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer opened.close()

			if err := opened.store.Seed(cmd.Context(), args); err != nil {
				return err
			}

			a.log.Info("subjects seeded",
				"source", a.cfg.Subjects.Source,
				"subjects", len(args),
			)
			return nil
		},
	}
}
