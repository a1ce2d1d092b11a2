package student

import (
	"context"
	"fmt"
	"time"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student - запись одного студента: ФИО, допустимые предметы и журнал оценок.
// Запись принадлежит одному владельцу и не синхронизирована.
type Student struct {
	// ID - идентификатор записи для логов (UUID в строковом формате).
	ID string

	firstName  string
	lastName   string
	patronymic string

	subjects SubjectSet
	ledger   *Ledger

	// CreatedAt - время создания записи.
	CreatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewStudentParams содержит параметры для создания нового студента.
type NewStudentParams struct {
	ID         string
	FirstName  string
	LastName   string
	Patronymic string
}

// NewStudent создаёт студента: проверяет имя, фамилию и отчество (в этом
// порядке, до первой ошибки), загружает предметы из источника и заводит
// пустой журнал по каждому предмету.
//
// Загруженный список сам становится справочным множеством предметов:
// проверка принадлежности применяется только к последующим AddScore и
// AverageGradeFor.
func NewStudent(ctx context.Context, params NewStudentParams, source SubjectSource) (*Student, error) {
	s := &Student{ID: params.ID}

	if err := s.SetFirstName(params.FirstName); err != nil {
		return nil, err
	}
	if err := s.SetLastName(params.LastName); err != nil {
		return nil, err
	}
	if err := s.SetPatronymic(params.Patronymic); err != nil {
		return nil, err
	}

	if source == nil {
		return nil, shared.NewDomainError("student", "New", shared.ErrSourceUnavailable, "subject source is not configured")
	}

	loaded, err := source.LoadSubjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(loaded) == 0 {
		return nil, shared.NewDomainError("student", "New", shared.ErrSourceFormat, "subject source returned no subjects")
	}

	s.subjects = NewSubjectSet(loaded)
	s.ledger = NewLedger(s.subjects)
	s.CreatedAt = time.Now().UTC()

	return s, nil
}

// SetFirstName проверяет и сохраняет имя. При ошибке прежнее значение остаётся.
func (s *Student) SetFirstName(value string) error {
	if err := ValidateName("SetFirstName", FieldFirstName, value); err != nil {
		return err
	}
	s.firstName = value
	return nil
}

// SetLastName проверяет и сохраняет фамилию.
func (s *Student) SetLastName(value string) error {
	if err := ValidateName("SetLastName", FieldLastName, value); err != nil {
		return err
	}
	s.lastName = value
	return nil
}

// SetPatronymic проверяет и сохраняет отчество.
func (s *Student) SetPatronymic(value string) error {
	if err := ValidateName("SetPatronymic", FieldPatronymic, value); err != nil {
		return err
	}
	s.patronymic = value
	return nil
}

// FirstName возвращает имя.
func (s *Student) FirstName() string { return s.firstName }

// LastName возвращает фамилию.
func (s *Student) LastName() string { return s.lastName }

// Patronymic возвращает отчество.
func (s *Student) Patronymic() string { return s.patronymic }

// Subjects возвращает предметы в порядке источника.
func (s *Student) Subjects() []string { return s.subjects.List() }


// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS (Business Logic)
// ══════════════════════════════════════════════════════════════════════════════

// AddScore добавляет оценку и результат теста по предмету.
// Сначала проверяются диапазоны (ErrInvalidGrade), затем предмет
// (ErrUnknownSubject). Журнал меняется только после всех проверок.
func (s *Student) AddScore(subject string, grade, testResult int) error {
	g, err := shared.NewGrade(grade)
	if err != nil {
		return err
	}
	r, err := shared.NewTestResult(testResult)
	if err != nil {
		return err
	}
	if err := s.subjects.Validate("AddScore", subject); err != nil {
		return err
	}

	if !s.ledger.Append(subject, g, r) {
		return shared.NewUnknownSubjectError("AddScore", subject)
	}
	return nil
}

// AverageGradeFor возвращает средний балл по предмету.
// Пустой журнал даёт 0 - это маркер «оценок нет», а не настоящее среднее.
func (s *Student) AverageGradeFor(subject string) (float64, error) {
	if err := s.subjects.Validate("AverageGrade", subject); err != nil {
		return 0, err
	}
	scores, _ := s.ledger.Scores(subject)
	return shared.AverageGrade(scores.Grades), nil
}

// AverageGrade возвращает средний балл по всем оценкам всех предметов, 0 если оценок нет.
func (s *Student) AverageGrade() float64 {
	return shared.AverageGrade(s.ledger.AllGrades())
}

// AverageTestResultFor возвращает средний результат тестов по предмету, 0 если тестов нет.
func (s *Student) AverageTestResultFor(subject string) (float64, error) {
	if err := s.subjects.Validate("AverageTestResult", subject); err != nil {
		return 0, err
	}
	scores, _ := s.ledger.Scores(subject)
	return shared.AverageTestResult(scores.TestResults), nil
}

// Scores возвращает копию журнала по предмету.
func (s *Student) Scores(subject string) (SubjectScores, error) {
	scores, ok := s.ledger.Scores(subject)
	if !ok {
		return SubjectScores{}, shared.NewUnknownSubjectError("Scores", subject)
	}
	return scores, nil
}

// String возвращает "<фамилия> <имя> <отчество>" для вывода и логов.
func (s *Student) String() string {
	return fmt.Sprintf("%s %s %s", s.lastName, s.firstName, s.patronymic)
}
