package vars

import "strings"

func DerefOrZero[T any](ptr *T) (ret T) {
	if ptr == nil {
		return
	}
	return *ptr
}

func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}

// MinNonZero returns the smallest non-zero value, or zero if all are zero.
// Zero means unlimited for the limits it is used on.
func MinNonZero[T int | int64](values ...T) (ret T) {
	for _, value := range values {
		if value == 0 {
			continue
		}
		if ret == 0 || value < ret {
			ret = value
		}
	}
	return
}

func StrToBool(str string) bool {
	str = strings.ToLower(strings.TrimSpace(str))
	switch str {
	case "true", "t", "yes", "y", "on", "1":
		return true
	case "false", "f", "no", "n", "off", "0":
		return false
	}
	return false
}
