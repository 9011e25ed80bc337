package utils

import (
	"strconv"
	"strings"
)

// ParseOptionalInt coerces a form value into an optional integer the way a
// browser parseInt does: an optional sign followed by leading digits, the
// rest is ignored ("25.5" is 25). Empty, non-numeric and zero inputs, and
// values outside the 32-bit GraphQL Int range, all yield nil so that an age
// is never sent as 0.
func ParseOptionalInt(value string) *int {
	value = strings.TrimSpace(value)
	end := 0
	if end < len(value) && (value[end] == '+' || value[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return nil
	}
	parsed, err := strconv.ParseInt(value[:end], 10, 32)
	if err != nil || parsed == 0 {
		return nil
	}
	result := int(parsed)
	return &result
}

// OptionalString maps an empty form value to nil.
func OptionalString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func StringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func IntOrEmpty(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
