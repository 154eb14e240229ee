package person

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Filter narrows a people listing. Name terms are case-insensitive substring
// matches joined with AND; Age is OR-ed with the name terms.
type Filter struct {
	FirstName string
	LastName  string
	Age       *int
}

func NewFilter(firstName, lastName string, age *int) Filter {
	return Filter{
		FirstName: NormalizeName(firstName),
		LastName:  NormalizeName(lastName),
		Age:       age,
	}
}

func (f Filter) IsEmpty() bool {
	return f.FirstName == "" && f.LastName == "" && f.Age == nil
}

// NormalizeName trims and NFC-composes a name so stored values and search
// terms compare equal regardless of how accents were encoded.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
