package student

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FIELD VALIDATOR: ИМЕНА
// ══════════════════════════════════════════════════════════════════════════════

// Имена полей, которые попадают в сообщения об ошибках.
const (
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldPatronymic = "patronymic"
)

// IsTitleAlpha возвращает true, если значение состоит только из букв
// и записано с заглавной буквы (остальные строчные).
func IsTitleAlpha(value string) bool {
	if value == "" {
		return false
	}
	for i, r := range value {
		if !unicode.IsLetter(r) {
			return false
		}
		// Первая буква заглавная, остальные не заглавные. Буквы без регистра
		// (иероглифы, ª) не проходят на первой позиции.
		upper := unicode.IsUpper(r) || unicode.IsTitle(r)
		if (i == 0) != upper {
			return false
		}
	}
	// Caser хранит состояние, поэтому создаётся на каждый вызов.
	return cases.Title(language.Und).String(value) == value
}

// ValidateName проверяет значение поля имени.
// Ошибка имеет вид ErrInvalidFormat и называет поле.
func ValidateName(op, field, value string) error {
	if !IsTitleAlpha(value) {
		return shared.NewInvalidNameError(op, field)
	}
	return nil
}
