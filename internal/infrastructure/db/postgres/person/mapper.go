package person

import (
	domain "person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
)

func fromDBModel(model *Person) *domain.Person {
	p := &domain.Person{
		ID:           domain.ID(model.ID),
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		Email:        model.Email,
		PhoneNumber:  model.PhoneNumber,
		DateOfBirth:  model.DateOfBirth,
		Age:          model.Age,

		IsActive:    model.IsActive,
		IsStaff:     model.IsStaff,
		IsSuperuser: model.IsSuperuser,

		LastLogin:  model.LastLogin,
		DateJoined: model.DateJoined,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}

	if model.RoleID != nil && model.RoleName != nil {
		r := &role.Role{
			ID:          role.ID(*model.RoleID),
			Name:        role.Name(*model.RoleName),
			Description: model.RoleDescription,
		}
		if model.RoleCreatedAt != nil {
			r.CreatedAt = *model.RoleCreatedAt
		}
		if model.RoleUpdatedAt != nil {
			r.UpdatedAt = *model.RoleUpdatedAt
		}
		p.Role = r
	}

	return p
}

func fromDBModels(models People) []*domain.Person {
	ps := make([]*domain.Person, len(models))
	for idx, m := range models {
		ps[idx] = fromDBModel(m)
	}

	return ps
}

// roleIDArg maps an optional role to the role_id column value.
func roleIDArg(r *role.Role) *uint64 {
	if r == nil {
		return nil
	}
	id := uint64(r.ID)
	return &id
}
