package numbering

import (
	"strconv"
	"strings"
)

// Format is a numeral system used to display a counter value
type Format int

// Supported numeral systems. Every other w:numFmt value maps to Other and
// renders as decimal.
const (
	Decimal Format = iota
	LowerLetter
	UpperLetter
	LowerRoman
	UpperRoman
	ChineseCounting
	Other
)

// ParseFormat maps a w:numFmt value to a Format
func ParseFormat(s string) Format {
	switch s {
	case "decimal":
		return Decimal
	case "lowerLetter":
		return LowerLetter
	case "upperLetter":
		return UpperLetter
	case "lowerRoman":
		return LowerRoman
	case "upperRoman":
		return UpperRoman
	case "chineseCounting":
		return ChineseCounting
	default:
		return Other
	}
}

// String returns the OOXML name of the format
func (f Format) String() string {
	switch f {
	case Decimal:
		return "decimal"
	case LowerLetter:
		return "lowerLetter"
	case UpperLetter:
		return "upperLetter"
	case LowerRoman:
		return "lowerRoman"
	case UpperRoman:
		return "upperRoman"
	case ChineseCounting:
		return "chineseCounting"
	case Other:
		return "other"
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Render converts a counter value to its display form. Zero is valid input:
// decimal renders "0", letters and Roman numerals render nothing.
// Negative values are treated as zero.
func (f Format) Render(n int) string {
	if n < 0 {
		n = 0
	}

	switch f {
	case Decimal, Other:
		return strconv.Itoa(n)
	case LowerLetter:
		return strings.ToLower(toLetters(n))
	case UpperLetter:
		return toLetters(n)
	case LowerRoman:
		return strings.ToLower(toRoman(n))
	case UpperRoman:
		return toRoman(n)
	case ChineseCounting:
		return toChineseCounting(n)
	}
	return strconv.Itoa(n)
}

// toLetters is bijective base-26: 1=A, 26=Z, 27=AA
func toLetters(n int) string {
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

var (
	romanValues  = []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	romanSymbols = []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
)

// toRoman converts a number to subtractive Roman numerals.
// Values above 3999 keep repeating M.
func toRoman(n int) string {
	var result strings.Builder
	for i, v := range romanValues {
		for n >= v {
			result.WriteString(romanSymbols[i])
			n -= v
		}
	}
	return result.String()
}

var chineseDigits = []string{"〇", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// toChineseCounting covers 0-19 with counting characters; larger values
// fall back to decimal digits.
func toChineseCounting(n int) string {
	switch {
	case n < 10:
		return chineseDigits[n]
	case n < 20:
		if n == 10 {
			return "十"
		}
		return "十" + chineseDigits[n-10]
	default:
		return strconv.Itoa(n)
	}
}
