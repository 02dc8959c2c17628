package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Rule проверка значения поля. Возвращает сообщение об ошибке или пустую строку.
// Все правила, кроме Required, пропускают пустое значение.
type Rule func(label, value string) string

// Required поле обязательно
func Required() Rule {
	return func(label, value string) string {
		if validate.Var(strings.TrimSpace(value), "required") != nil {
			return fmt.Sprintf("%s is required", label)
		}
		return ""
	}
}

// MinLength минимальная длина в символах без крайних пробелов
func MinLength(n int) Rule {
	tag := fmt.Sprintf("min=%d", n)
	return func(label, value string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return ""
		}
		if validate.Var(value, tag) != nil {
			return fmt.Sprintf("%s must be at least %d characters", label, n)
		}
		return ""
	}
}

// MaxLength максимальная длина в символах без крайних пробелов
func MaxLength(n int) Rule {
	tag := fmt.Sprintf("max=%d", n)
	return func(label, value string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return ""
		}
		if validate.Var(value, tag) != nil {
			return fmt.Sprintf("%s must not exceed %d characters", label, n)
		}
		return ""
	}
}

// Email корректный адрес почты
func Email() Rule {
	return func(_, value string) string {
		if value == "" {
			return ""
		}
		if validate.Var(value, "email") != nil {
			return "Please enter a valid email address"
		}
		return ""
	}
}

// Pattern значение должно соответствовать выражению
func Pattern(re *regexp.Regexp, message string) Rule {
	return func(_, value string) string {
		if value == "" {
			return ""
		}
		if !re.MatchString(value) {
			return message
		}
		return ""
	}
}

// AllOf значение должно соответствовать каждому выражению.
// Заменяет look-ahead выражения, которых нет в regexp.
func AllOf(message string, res ...*regexp.Regexp) Rule {
	return func(_, value string) string {
		if value == "" {
			return ""
		}
		for _, re := range res {
			if !re.MatchString(value) {
				return message
			}
		}
		return ""
	}
}

// MinNumber числовое значение не меньше min
func MinNumber(min float64) Rule {
	return func(label, value string) string {
		if value == "" {
			return ""
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Sprintf("%s must be a number", label)
		}
		if n < min {
			return fmt.Sprintf("%s must be at least %s", label, strconv.FormatFloat(min, 'f', -1, 64))
		}
		return ""
	}
}

// OneOf значение из фиксированного списка
func OneOf(options ...string) Rule {
	return func(label, value string) string {
		if value == "" {
			return ""
		}
		for _, option := range options {
			if value == option {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(options, ", "))
	}
}
