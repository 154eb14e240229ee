package role

import "time"

type (
	Role struct {
		ID          uint64
		Name        string
		Description *string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Roles []*Role
)
