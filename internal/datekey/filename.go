package datekey

import (
	"path/filepath"
	"regexp"
	"strconv"
)

// filenameDatePattern finds a YYYY-MM-DD sequence in a filename.
var filenameDatePattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

// FilenameDate derives the key from a YYYY-MM-DD date embedded in the
// filename, e.g. "Invoice 2024-03-15 Final.pdf". The date must be a
// real calendar date; impossible dates fall through.
func FilenameDate() Strategy {
	return func(path string) (string, bool) {
		matches := filenameDatePattern.FindStringSubmatch(filepath.Base(path))
		if matches == nil {
			return "", false
		}

		year, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		day, _ := strconv.Atoi(matches[3])

		if month < 1 || month > 12 {
			return "", false
		}
		if day < 1 || day > daysInMonth(year, month) {
			return "", false
		}
		return matches[0], true
	}
}

// daysInMonth returns the number of days in the given month for the given year.
func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// isLeapYear returns true if the given year is a leap year.
func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || (year%400 == 0)
}
