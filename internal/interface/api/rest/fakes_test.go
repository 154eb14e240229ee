package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
	"person-manager-api/internal/interface/api/rest/middleware"
)

const (
	adminToken  = "admin-token"
	guestToken  = "guest-token"
	noRoleToken = "no-role-token"
	cookieName  = "sessionid"
)

var (
	adminPerson  = &person.Person{ID: 1, Username: "adminuser", IsActive: true, Role: &role.Role{ID: 1, Name: role.Admin}}
	guestPerson  = &person.Person{ID: 2, Username: "test_guest", IsActive: true, Role: &role.Role{ID: 2, Name: role.Guest}}
	noRolePerson = &person.Person{ID: 3, Username: "orphan", IsActive: true}
)

type FakeAuthService struct {
	LoginFunc  func(ctx context.Context, username, password string) (string, time.Time, error)
	LogoutFunc func(ctx context.Context, token string) error
}

func (f *FakeAuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	return f.LoginFunc(ctx, username, password)
}

func (f *FakeAuthService) Logout(ctx context.Context, token string) error {
	if f.LogoutFunc == nil {
		return nil
	}
	return f.LogoutFunc(ctx, token)
}

func (f *FakeAuthService) Authenticate(_ context.Context, token string) (*person.Person, error) {
	switch token {
	case adminToken:
		return adminPerson, nil
	case guestToken:
		return guestPerson, nil
	case noRoleToken:
		return noRolePerson, nil
	}
	return nil, nil
}

type FakePersonService struct {
	FindPersonByIDFunc func(ctx context.Context, id person.ID) (*person.Person, error)
	QueryPeopleFunc    func(filter person.Filter) person.Collection
	CreatePersonFunc   func(ctx context.Context, in person.Changes) (*person.Person, error)
	UpdatePersonFunc   func(ctx context.Context, id person.ID, in person.Changes) (*person.Person, error)
	DeletePersonFunc   func(ctx context.Context, id person.ID) error
}

func (f *FakePersonService) FindPersonByID(ctx context.Context, id person.ID) (*person.Person, error) {
	return f.FindPersonByIDFunc(ctx, id)
}

func (f *FakePersonService) QueryPeople(filter person.Filter) person.Collection {
	return f.QueryPeopleFunc(filter)
}

func (f *FakePersonService) CreatePerson(ctx context.Context, in person.Changes) (*person.Person, error) {
	return f.CreatePersonFunc(ctx, in)
}

func (f *FakePersonService) UpdatePerson(ctx context.Context, id person.ID, in person.Changes) (*person.Person, error) {
	return f.UpdatePersonFunc(ctx, id, in)
}

func (f *FakePersonService) DeletePerson(ctx context.Context, id person.ID) error {
	return f.DeletePersonFunc(ctx, id)
}

type FakeRoleService struct {
	FindRolesFunc  func(ctx context.Context) (role.Roles, error)
	DeleteRoleFunc func(ctx context.Context, id role.ID) error
}

func (f *FakeRoleService) FindRoles(ctx context.Context) (role.Roles, error) {
	return f.FindRolesFunc(ctx)
}

func (f *FakeRoleService) DeleteRole(ctx context.Context, id role.ID) error {
	return f.DeleteRoleFunc(ctx, id)
}

// newTestEngine mirrors the production middleware chain.
func newTestEngine(t *testing.T, auth *FakeAuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if auth == nil {
		auth = &FakeAuthService{}
	}

	r := gin.New()
	r.Use(middleware.Base(zap.NewNop(), nil)...)
	r.Use(middleware.Session(auth, cookieName))
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m), rr.Body.String())
	return m
}
