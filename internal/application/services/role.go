package services

import (
	"context"

	"person-manager-api/internal/application/ports"
	"person-manager-api/internal/domain/role"
)

type RoleService struct {
	roleRepository role.Repository
}

func NewRoleService(roleRepository role.Repository) ports.RoleService {
	return &RoleService{roleRepository: roleRepository}
}

func (rs *RoleService) FindRoles(ctx context.Context) (role.Roles, error) {
	return rs.roleRepository.FetchRoles(ctx)
}

// DeleteRole removes the role; people holding it keep a NULL role and are
// treated as guests from then on.
func (rs *RoleService) DeleteRole(ctx context.Context, id role.ID) error {
	deleted, err := rs.roleRepository.DeleteRole(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return role.ErrRoleNotFound
	}

	return nil
}
