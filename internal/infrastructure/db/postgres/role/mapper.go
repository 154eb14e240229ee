package role

import (
	domain "person-manager-api/internal/domain/role"
)

func fromDBModel(model *Role) *domain.Role {
	return &domain.Role{
		ID:          domain.ID(model.ID),
		Name:        domain.Name(model.Name),
		Description: model.Description,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func fromDBModels(models Roles) domain.Roles {
	rs := make(domain.Roles, len(models))
	for idx, r := range models {
		rs[idx] = fromDBModel(r)
	}

	return rs
}
