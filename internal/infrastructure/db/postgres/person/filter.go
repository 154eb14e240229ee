package person

import (
	"fmt"
	"strings"

	domain "person-manager-api/internal/domain/person"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhere renders the filter as a WHERE clause. Name terms are AND-ed and
// the age term is OR-ed onto them, so with only an age the clause is just the
// age match.
func buildWhere(f domain.Filter) (string, []any) {
	var (
		args  []any
		terms []string
	)

	if f.FirstName != "" {
		args = append(args, containsPattern(f.FirstName))
		terms = append(terms, fmt.Sprintf(`p.first_name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if f.LastName != "" {
		args = append(args, containsPattern(f.LastName))
		terms = append(terms, fmt.Sprintf(`p.last_name ILIKE $%d ESCAPE '\'`, len(args)))
	}

	cond := strings.Join(terms, " AND ")
	if f.Age != nil {
		args = append(args, *f.Age)
		ageCond := fmt.Sprintf("p.age = $%d", len(args))
		if cond == "" {
			cond = ageCond
		} else {
			cond = "(" + cond + ") OR " + ageCond
		}
	}

	if cond == "" {
		return "", nil
	}

	return " WHERE " + cond, args
}

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
