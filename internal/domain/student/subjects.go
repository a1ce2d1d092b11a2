package student

import (
	"context"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBJECT SOURCE
// Внешний источник списка предметов. Реализации находятся в infrastructure.
// ══════════════════════════════════════════════════════════════════════════════

// SubjectSource возвращает упорядоченный список предметов - первую запись
// табличного источника.
//
// Ошибки источника (shared.ErrSourceUnavailable, shared.ErrSourceFormat)
// пробрасываются вызывающему как есть.
type SubjectSource interface {
	LoadSubjects(ctx context.Context) ([]string, error)
}

// SubjectSourceFunc позволяет использовать функцию как SubjectSource.
type SubjectSourceFunc func(ctx context.Context) ([]string, error)

// LoadSubjects вызывает f(ctx).
func (f SubjectSourceFunc) LoadSubjects(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// StaticSubjects - источник с фиксированным списком (для тестов и демо).
type StaticSubjects []string

// LoadSubjects возвращает копию списка.
func (s StaticSubjects) LoadSubjects(context.Context) ([]string, error) {
	out := make([]string, len(s))
	copy(out, s)
	return out, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SUBJECT SET
// ══════════════════════════════════════════════════════════════════════════════

// SubjectSet - неизменяемое множество допустимых предметов с сохранением
// порядка первого появления.
type SubjectSet struct {
	ordered []string
	index   map[string]struct{}
}

// NewSubjectSet строит множество из загруженного списка. Повторы схлопываются.
func NewSubjectSet(subjects []string) SubjectSet {
	set := SubjectSet{
		ordered: make([]string, 0, len(subjects)),
		index:   make(map[string]struct{}, len(subjects)),
	}
	for _, s := range subjects {
		if _, ok := set.index[s]; ok {
			continue
		}
		set.index[s] = struct{}{}
		set.ordered = append(set.ordered, s)
	}
	return set
}

// Contains проверяет принадлежность предмета множеству.
func (s SubjectSet) Contains(subject string) bool {
	_, ok := s.index[subject]
	return ok
}

// Validate - вариант Field Validator для предметов: ErrUnknownSubject,
// если предмета нет в справочном множестве.
func (s SubjectSet) Validate(op, subject string) error {
	if !s.Contains(subject) {
		return shared.NewUnknownSubjectError(op, subject)
	}
	return nil
}

// Len возвращает количество предметов.
func (s SubjectSet) Len() int {
	return len(s.ordered)
}

// List возвращает копию предметов в исходном порядке.
func (s SubjectSet) List() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}
