package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"person-manager-api/internal/application/permission"
	"person-manager-api/internal/application/ports"
	domain "person-manager-api/internal/domain/role"
	"person-manager-api/internal/interface/api/rest/dto/role"
	"person-manager-api/internal/interface/api/rest/middleware"
	"person-manager-api/internal/interface/api/rest/pagination"
	"person-manager-api/internal/interface/api/rest/validator"
)

type RoleController struct {
	roleService ports.RoleService
	logger      *zap.Logger
}

func NewRoleController(
	r gin.IRouter,
	roleService ports.RoleService,
	logger *zap.Logger,
	paginator pagination.Paginator,
) *RoleController {
	rc := &RoleController{
		roleService: roleService,
		logger:      logger,
	}

	isAdmin := middleware.RequirePermission(permission.IsAdmin)

	r.GET(RouteRoles, isAdmin, pagination.Paginate(paginator, rc.roles, role.ToMap))
	r.DELETE(RouteRole, isAdmin, rc.DeleteRoleHandler)

	return rc
}

func (rc *RoleController) roles(c *gin.Context) (pagination.Collection[*domain.Role], error) {
	rs, err := rc.roleService.FindRoles(c.Request.Context())
	if err != nil {
		rc.logger.Error("FindRoles() error", zap.Error(err))
		return nil, err
	}

	return pagination.SliceCollection[*domain.Role](rs), nil
}

// DeleteRoleHandler removes a role. People holding it fall back to guest.
func (rc *RoleController) DeleteRoleHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("role_id"))
	if !ok {
		_ = c.Error(domain.ErrRoleNotFound)
		return
	}

	if err := rc.roleService.DeleteRole(c.Request.Context(), domain.ID(id)); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
