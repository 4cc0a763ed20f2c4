// Package validation проверяет идентификаторы, которые приходят извне:
// из командной строки клиента и из пакетов синхронизации.
package validation

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidID indicates that identifier has wrong format
var ErrInvalidID = errors.New("invalid identifier")

// IDPattern определяет допустимый формат идентификатора.
// Латинские буквы, цифры и символы _ . : -, первый символ буква или цифра.
// Под формат подходят UUID и короткие ключи вида E1.
var IDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.:-]*$`)

// MaxIDLen максимальная длина идентификатора
const MaxIDLen = 128

// ValidateID проверяет, что идентификатор соответствует требованиям.
// kind попадает в текст ошибки ("record id", "change id").
func ValidateID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidID, kind)
	}

	if len(id) > MaxIDLen {
		return fmt.Errorf("%w: %s must not exceed %d characters", ErrInvalidID, kind, MaxIDLen)
	}

	if !IDPattern.MatchString(id) {
		return fmt.Errorf("%w: %s %q can only contain letters, numbers and _ . : -", ErrInvalidID, kind, id)
	}

	return nil
}
