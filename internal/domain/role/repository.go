package role

import "context"

type Repository interface {
	FetchRoles(ctx context.Context) (Roles, error)
	FetchRoleByID(ctx context.Context, id ID) (*Role, error)
	GetOrCreateRole(ctx context.Context, name Name, description string) (*Role, error)
	DeleteRole(ctx context.Context, id ID) (bool, error)
}
