// Package student содержит доменную модель студента и его журнала оценок.
//
// Пакет определяет:
//
//   - Сущность Student: ФИО, множество предметов и журнал оценок
//   - Field Validator: ValidateName для имён и SubjectSet.Validate для предметов
//   - Ledger: оценки (2-5) и результаты тестов (0-100) по каждому предмету
//   - Интерфейс SubjectSource: внешний источник списка предметов
//
// # Архитектурные принципы
//
//  1. Никаких зависимостей от инфраструктуры - источники предметов
//     реализуются в internal/infrastructure
//  2. Проверка до изменения - значение сохраняется только после валидации,
//     иначе прежнее значение остаётся
//  3. Ошибки - shared.DomainError с видами ErrInvalidFormat,
//     ErrUnknownSubject и ErrInvalidGrade
//
// # Пример использования
//
//	st, err := student.NewStudent(ctx, student.NewStudentParams{
//	    ID:         uuid.NewString(),
//	    FirstName:  "John",
//	    LastName:   "Doe",
//	    Patronymic: "Smith",
//	}, student.StaticSubjects{"Math", "Physics", "History"})
//	if err != nil {
//	    return err
//	}
//
//	_ = st.AddScore("Math", 5, 90)
//	avg, _ := st.AverageGradeFor("Math") // 5.0
//	fmt.Println(st, avg, st.AverageGrade())
//
// # Справочное множество предметов
//
// Список, полученный от SubjectSource, сам становится справочным множеством.
// Повторяющиеся предметы схлопываются в одну запись журнала.
package student
