package money

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const WonSuffix = "원"

var printer = message.NewPrinter(language.Korean)

// ParseDigits keeps only ASCII digits from raw and parses them.
// It returns 0 when nothing is left or the value overflows int64.
func ParseDigits(raw string) int64 {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// Group formats n with thousands separators: 1234567 -> "1,234,567".
func Group(n int64) string {
	return printer.Sprintf("%d", n)
}

func Won(n int64) string {
	return Group(n) + WonSuffix
}

// Reformat normalizes a typed numeral into its grouped form. Zero renders
// as an empty string so an untouched field stays blank.
func Reformat(raw string) string {
	value := ParseDigits(raw)
	if value == 0 {
		return ""
	}
	return Group(value)
}
