package person

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// CalculateAge returns the number of whole years between birth and today,
// counting the current year only once the birthday has been reached.
func CalculateAge(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// ParseBirthDate parses a YYYY-MM-DD date.
func ParseBirthDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date of birth %q, want YYYY-MM-DD: %w", s, err)
	}
	return d, nil
}
