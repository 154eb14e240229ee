package ports

import (
	"context"

	"person-manager-api/internal/domain/role"
)

type RoleService interface {
	FindRoles(ctx context.Context) (role.Roles, error)
	DeleteRole(ctx context.Context, id role.ID) error
}
