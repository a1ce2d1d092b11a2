package student

import "github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"

// ══════════════════════════════════════════════════════════════════════════════
// SCORING LEDGER
// ══════════════════════════════════════════════════════════════════════════════

// SubjectScores - оценки и результаты тестов по одному предмету.
// Последовательности только дополняются.
type SubjectScores struct {
	Grades      []shared.Grade
	TestResults []shared.TestResult
}

// clone возвращает независимую копию, чтобы снаружи нельзя было изменить журнал.
func (s *SubjectScores) clone() SubjectScores {
	out := SubjectScores{
		Grades:      make([]shared.Grade, len(s.Grades)),
		TestResults: make([]shared.TestResult, len(s.TestResults)),
	}
	copy(out.Grades, s.Grades)
	copy(out.TestResults, s.TestResults)
	return out
}

// Ledger - журнал оценок, ключи которого совпадают с множеством предметов.
type Ledger struct {
	order   []string
	entries map[string]*SubjectScores
}

// NewLedger создаёт пустые записи для каждого предмета.
func NewLedger(subjects SubjectSet) *Ledger {
	l := &Ledger{
		order:   subjects.List(),
		entries: make(map[string]*SubjectScores, subjects.Len()),
	}
	for _, s := range l.order {
		l.entries[s] = &SubjectScores{
			Grades:      []shared.Grade{},
			TestResults: []shared.TestResult{},
		}
	}
	return l
}

// Append добавляет оценку и результат теста. Возвращает false, если
// предмета нет в журнале; журнал при этом не меняется.
func (l *Ledger) Append(subject string, grade shared.Grade, result shared.TestResult) bool {
	if l == nil {
		return false
	}
	entry, ok := l.entries[subject]
	if !ok {
		return false
	}
	entry.Grades = append(entry.Grades, grade)
	entry.TestResults = append(entry.TestResults, result)
	return true
}

// Scores возвращает копию записей по предмету.
func (l *Ledger) Scores(subject string) (SubjectScores, bool) {
	if l == nil {
		return SubjectScores{}, false
	}
	entry, ok := l.entries[subject]
	if !ok {
		return SubjectScores{}, false
	}
	return entry.clone(), true
}

// AllGrades возвращает все оценки всех предметов в порядке предметов.
func (l *Ledger) AllGrades() []shared.Grade {
	if l == nil {
		return nil
	}
	var all []shared.Grade
	for _, s := range l.order {
		all = append(all, l.entries[s].Grades...)
	}
	return all
}
