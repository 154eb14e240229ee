package role

import (
	domain "person-manager-api/internal/domain/role"
)

func ToMap(r *domain.Role) map[string]any {
	var description any
	if r.Description != nil {
		description = *r.Description
	}

	return map[string]any{
		"id":           uint64(r.ID),
		"name":         string(r.Name),
		"display_name": r.Name.Label(),
		"description":  description,
	}
}
