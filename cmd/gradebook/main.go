// Package main запускает CLI журнала успеваемости.
//
// Команды:
//   - report: создаёт запись студента, выставляет оценки и печатает средние
//   - migrate: применяет миграции каталога предметов в PostgreSQL
//   - seed: записывает список предметов в настроенный источник
//   - version: печатает версию
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MiracleAriel/seminar12-gb-hw/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// ROOT COMMAND
// ═══════════════════════════════════════════════════════════════════════════════

// app хранит состояние, общее для всех подкоманд.
type app struct {
	envFile      string
	source       string
	subjectsFile string
	logLevel     string

	cfg *config.Config
	log *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "gradebook",
		Short:         "Student gradebook: names, subjects, grades and test results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.StringVar(&a.source, "source", "", "subject source: csv, postgres, redis or sqlite (overrides SUBJECT_SOURCE)")
	flags.StringVar(&a.subjectsFile, "subjects", "", "CSV file with subjects in the first row (overrides SUBJECTS_FILE)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	root.AddCommand(
		newReportCommand(a),
		newMigrateCommand(a),
		newSeedCommand(a),
		newVersionCommand(a),
	)

	return root
}

// load загружает конфигурацию и применяет флаги поверх переменных окружения.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	if a.source != "" {
		cfg.Subjects.Source = config.SourceKind(strings.ToLower(a.source))
	}
	if a.subjectsFile != "" {
		cfg.Subjects.File = a.subjectsFile
	}
	if a.logLevel != "" {
		cfg.Observability.LogLevel = a.logLevel
	}

	// Флаги могли сломать то, что прошло проверку при загрузке
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = setupLogger(cfg, cmd.ErrOrStderr())
	a.log.Debug("configuration loaded",
		"env", cfg.App.Environment,
		"source", cfg.Subjects.Source,
	)

	return nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// VERSION
// ═══════════════════════════════════════════════════════════════════════════════

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", a.cfg.App.Name, a.cfg.App.Version)
			return nil
		},
	}
}
