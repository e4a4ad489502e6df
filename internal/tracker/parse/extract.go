package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// numberRegex matches the first number-looking substring in noisy text:
// an optional sign, digits, optionally followed by a fractional part
// separated by a dot or a comma ("7", "+7", "7.5", "40,5", "7 kg").
// The comma is a decimal separator, never a thousands separator.
var numberRegex = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)

// strictIntegerRegex accepts only a bare repetition count, nothing else.
var strictIntegerRegex = regexp.MustCompile(`^\d+$`)

// ExtractNumber returns the first number found anywhere in the given text.
// Later numbers in the same text are ignored. The second return value is
// false when no number is present.
func ExtractNumber(text string) (float64, bool) {
	match := numberRegex.FindString(text)
	if match == "" {
		return 0, false
	}

	number, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, false
	}

	return number, true
}

// ExtractNumbers scans the whole text left to right and returns up to
// maxCount numbers (all of them when maxCount <= 0). Substrings that
// look numeric but fail to parse are skipped.
func ExtractNumbers(text string, maxCount int) []float64 {
	matches := numberRegex.FindAllString(text, -1)
	if matches == nil {
		return nil
	}

	var numbers []float64
	for _, match := range matches {
		number, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, number)
		if maxCount > 0 && len(numbers) == maxCount {
			break
		}
	}

	return numbers
}

// ExtractIntegerStrict requires the entire trimmed text to be digits only,
// no sign and no decimal part. Used where the protocol demands an
// unambiguous repetition count.
func ExtractIntegerStrict(text string) (int, bool) {
	trimmed := strings.TrimSpace(text)
	if !strictIntegerRegex.MatchString(trimmed) {
		return 0, false
	}

	number, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}

	return number, true
}
