package domain

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPhoneDigits = 7

func checkEmail(field, v string) (FieldError, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return FieldError{Field: field, Msg: "is required"}, false
	}
	if !emailPattern.MatchString(v) {
		return FieldError{Field: field, Msg: "is not a valid email address"}, false
	}
	return FieldError{}, true
}

// checkPhone accepts any formatting as long as enough digits are present.
func checkPhone(field, v string) (FieldError, bool) {
	if strings.TrimSpace(v) == "" {
		return FieldError{Field: field, Msg: "is required"}, false
	}
	digits := 0
	for _, r := range v {
		switch {
		case unicode.IsDigit(r):
			digits++
		case strings.ContainsRune(" +-().", r):
		default:
			return FieldError{Field: field, Msg: "contains invalid characters"}, false
		}
	}
	if digits < minPhoneDigits {
		return FieldError{Field: field, Msg: "must contain at least 7 digits"}, false
	}
	return FieldError{}, true
}

func checkPercent(field string, v int) (FieldError, bool) {
	if v < 0 || v > 100 {
		return FieldError{Field: field, Msg: "must be between 0 and 100"}, false
	}
	return FieldError{}, true
}
