package forms

import "regexp"

// Общие выражения для полей рейсов
var (
	DatePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	TimePattern     = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
	DurationPattern = regexp.MustCompile(`^(\d{1,2}h\s?\d{0,2}m?|\d{1,2}h)$`)
	PricePattern    = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	CodePattern     = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Выражения для учётных записей
var (
	UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	NamePattern     = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	PhonePattern    = regexp.MustCompile(`^[+]?[1-9]\d{1,14}$`)

	HasLower   = regexp.MustCompile(`[a-z]`)
	HasUpper   = regexp.MustCompile(`[A-Z]`)
	HasDigit   = regexp.MustCompile(`\d`)
	HasSpecial = regexp.MustCompile(`[@$!%*?&]`)

	// ClientPasswordCharset пароль клиента состоит только из букв, цифр и @$!%*?&
	ClientPasswordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]+$`)
)

// Правила полей рейсов
var (
	DateRules     = []Rule{Required(), Pattern(DatePattern, "Date must be in YYYY-MM-DD format")}
	TimeRules     = []Rule{Required(), Pattern(TimePattern, "Time must be in HH:MM format")}
	DurationRules = []Rule{Required(), Pattern(DurationPattern, "Duration must look like 2h 30m or 2h")}
	PriceRules    = []Rule{Required(), MinNumber(0), Pattern(PricePattern, "Price must be a non-negative amount with at most two decimals")}
)
