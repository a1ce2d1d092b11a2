// Package gradebook contains the application use cases around a student record:
// enrolment with a configured subject source, score recording and reporting.
package gradebook

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// EnrollCommand contains the data to create a student record.
type EnrollCommand struct {
	FirstName  string
	LastName   string
	Patronymic string
}

// RecordScoreCommand contains one grade and test result for a subject.
type RecordScoreCommand struct {
	Subject    string
	Grade      int
	TestResult int
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVICE
// ══════════════════════════════════════════════════════════════════════════════

// Service runs the gradebook use cases.
type Service struct {
	source student.SubjectSource
	logger *slog.Logger
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the UUID generator for record IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService creates a Service reading subjects from source.
func NewService(source student.SubjectSource, opts ...Option) *Service {
	s := &Service{
		source: source,
		logger: slog.Default(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enroll creates a student record, loading subjects from the configured source.
func (s *Service) Enroll(ctx context.Context, cmd EnrollCommand) (*student.Student, error) {
	id := s.newID()
	log := s.logger.With("student_id", id)

	st, err := student.NewStudent(ctx, student.NewStudentParams{
		ID:         id,
		FirstName:  cmd.FirstName,
		LastName:   cmd.LastName,
		Patronymic: cmd.Patronymic,
	}, s.source)
	if err != nil {
		if shared.IsValidation(err) {
			log.Warn("student rejected", "error", err)
		} else {
			log.Error("failed to load subjects", "error", err)
		}
		return nil, err
	}

	log.Info("student enrolled",
		"student", st.String(),
		"subjects", st.Subjects(),
	)
	return st, nil
}

// RecordScore adds a grade and test result to the record.
func (s *Service) RecordScore(ctx context.Context, st *student.Student, cmd RecordScoreCommand) error {
	log := s.logger.With(
		"student_id", st.ID,
		"subject", cmd.Subject,
		"grade", cmd.Grade,
		"test_result", cmd.TestResult,
	)

	if err := st.AddScore(cmd.Subject, cmd.Grade, cmd.TestResult); err != nil {
		log.WarnContext(ctx, "score rejected", "error", err)
		return err
	}

	log.DebugContext(ctx, "score recorded")
	return nil
}
