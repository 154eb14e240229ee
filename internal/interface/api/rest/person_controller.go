package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"person-manager-api/internal/application/permission"
	"person-manager-api/internal/application/ports"
	domain "person-manager-api/internal/domain/person"
	"person-manager-api/internal/interface/api/rest/dto/person"
	"person-manager-api/internal/interface/api/rest/middleware"
	"person-manager-api/internal/interface/api/rest/pagination"
	"person-manager-api/internal/interface/api/rest/validator"
)

type PersonController struct {
	personService ports.PersonService
	logger        *zap.Logger
}

func NewPersonController(
	r gin.IRouter,
	personService ports.PersonService,
	logger *zap.Logger,
	paginator pagination.Paginator,
) *PersonController {
	pc := &PersonController{
		personService: personService,
		logger:        logger,
	}

	isAdmin := middleware.RequirePermission(permission.IsAdmin)

	r.GET(RouteFilterPeople,
		middleware.RequirePermission(permission.IsAdminOrGuest),
		pagination.Paginate(paginator, pc.filterPeople, person.Projection(person.FieldUsername)),
	)
	r.GET(RoutePeople, isAdmin, pagination.Paginate(paginator, pc.allPeople, person.Projection()))
	r.POST(RoutePeople, isAdmin, pc.CreatePersonHandler)
	r.GET(RoutePerson, isAdmin, pc.GetPersonHandler)
	r.PUT(RoutePerson, isAdmin, pc.UpdatePersonHandler)
	r.PATCH(RoutePerson, isAdmin, pc.PartialUpdatePersonHandler)
	r.DELETE(RoutePerson, isAdmin, pc.DeletePersonHandler)

	return pc
}

func (pc *PersonController) allPeople(*gin.Context) (pagination.Collection[*domain.Person], error) {
	return pc.personService.QueryPeople(domain.Filter{}), nil
}

// filterPeople reads first_name, last_name and age from the query string.
func (pc *PersonController) filterPeople(c *gin.Context) (pagination.Collection[*domain.Person], error) {
	age, err := validator.ParseAge(c.Query("age"))
	if err != nil {
		return nil, err
	}

	return pc.personService.QueryPeople(domain.NewFilter(c.Query("first_name"), c.Query("last_name"), age)), nil
}

func (pc *PersonController) GetPersonHandler(c *gin.Context) {
	id, ok := personID(c)
	if !ok {
		return
	}

	p, err := pc.personService.FindPersonByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, person.ToMap(p))
}

func (pc *PersonController) CreatePersonHandler(c *gin.Context) {
	var req person.CreateRequest
	changes, ok := bindChanges(c, &req, func() (domain.Changes, error) { return req.ToDomain() })
	if !ok {
		return
	}

	p, err := pc.personService.CreatePerson(c.Request.Context(), changes)
	if err != nil {
		pc.fail(c, "CreatePerson() error", err)
		return
	}

	c.JSON(http.StatusCreated, person.ToMap(p))
}

func (pc *PersonController) UpdatePersonHandler(c *gin.Context) {
	var req person.CreateRequest
	pc.update(c, &req, func() (domain.Changes, error) { return req.ToDomain() })
}

func (pc *PersonController) PartialUpdatePersonHandler(c *gin.Context) {
	var req person.UpdateRequest
	pc.update(c, &req, func() (domain.Changes, error) { return req.ToDomain() })
}

func (pc *PersonController) DeletePersonHandler(c *gin.Context) {
	id, ok := personID(c)
	if !ok {
		return
	}

	if err := pc.personService.DeletePerson(c.Request.Context(), id); err != nil {
		pc.fail(c, "DeletePerson() error", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (pc *PersonController) update(c *gin.Context, req any, toDomain func() (domain.Changes, error)) {
	id, ok := personID(c)
	if !ok {
		return
	}
	changes, ok := bindChanges(c, req, toDomain)
	if !ok {
		return
	}

	p, err := pc.personService.UpdatePerson(c.Request.Context(), id, changes)
	if err != nil {
		pc.fail(c, "UpdatePerson() error", err)
		return
	}

	c.JSON(http.StatusOK, person.ToMap(p))
}

// fail records err for the error envelope, logging the ones that are not a
// client mistake.
func (pc *PersonController) fail(c *gin.Context, msg string, err error) {
	if !errors.Is(err, domain.ErrPersonNotFound) &&
		!errors.Is(err, domain.ErrUsernameTaken) &&
		!errors.Is(err, domain.ErrInvalidPhoneNumber) {
		pc.logger.Error(msg, zap.Error(err))
	}
	_ = c.Error(err)
}

func bindChanges(c *gin.Context, req any, toDomain func() (domain.Changes, error)) (domain.Changes, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(validator.BindError(err))
		return domain.Changes{}, false
	}
	if err := validator.Struct(req); err != nil {
		_ = c.Error(err)
		return domain.Changes{}, false
	}

	changes, err := toDomain()
	if err != nil {
		_ = c.Error(err)
		return domain.Changes{}, false
	}

	return changes, true
}

// personID parses the path id. Ids that cannot exist are reported as not
// found.
func personID(c *gin.Context) (domain.ID, bool) {
	id, ok := validator.ParseID(c.Param("person_id"))
	if !ok {
		_ = c.Error(domain.ErrPersonNotFound)
		return 0, false
	}
	return domain.ID(id), true
}
