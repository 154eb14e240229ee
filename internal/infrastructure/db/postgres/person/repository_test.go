package person

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
)

var (
	personCols = []string{
		"id", "username", "password_hash", "first_name", "last_name", "email",
		"phone_number", "date_of_birth", "age", "is_active", "is_staff", "is_superuser",
		"last_login", "date_joined", "created_at", "updated_at",
		"role_id", "role_name", "role_description", "role_created_at", "role_updated_at",
	}
	roleCols = []string{"id", "name", "description", "created_at", "updated_at"}
	fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T { return &v }

func newTestRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &Repository{db: mock, now: func() time.Time { return fixedNow }}, mock
}

func personRow(rows *pgxmock.Rows, id uint64, username string, roleID *uint64, roleName *string) *pgxmock.Rows {
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, username, "hash", "Python", "Dev", username+"@example.com",
		ptr("+442071234567"), &dob, ptr(25), true, false, false,
		(*time.Time)(nil), fixedNow, fixedNow, fixedNow,
		roleID, roleName, (*string)(nil), (*time.Time)(nil), (*time.Time)(nil),
	)
}

func TestRepository_FetchPersonByID(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`WHERE p.id = \$1`).
		WithArgs(domain.ID(1)).
		WillReturnRows(personRow(pgxmock.NewRows(personCols), 1, "adminuser", ptr(uint64(1)), ptr("admin")))

	p, err := repo.FetchPersonByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "adminuser", p.Username)
	require.NotNil(t, p.Role)
	assert.Equal(t, role.Admin, p.Role.Name)
	require.NotNil(t, p.Age)
	assert.Equal(t, 25, *p.Age)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchPersonByID_NullRole(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`WHERE p.id = \$1`).
		WithArgs(domain.ID(5)).
		WillReturnRows(personRow(pgxmock.NewRows(personCols), 5, "orphan", nil, nil))

	p, err := repo.FetchPersonByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Nil(t, p.Role)
	assert.Equal(t, role.Guest, p.RoleName())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchPersonByUsername_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`WHERE p.username = \$1`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(personCols))

	p, err := repo.FetchPersonByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, p)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreatePerson_DefaultsToGuest(t *testing.T) {
	repo, mock := newTestRepo(t)

	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	req := domain.Person{
		Username:     "newbie",
		PasswordHash: "hash",
		FirstName:    "Python",
		LastName:     "Dev",
		DateOfBirth:  &dob,
		IsActive:     true,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO roles").
		WithArgs("guest", "Guest with limited access").
		WillReturnRows(pgxmock.NewRows(roleCols).
			AddRow(uint64(2), "guest", ptr("Guest with limited access"), fixedNow, fixedNow))
	mock.ExpectQuery("INSERT INTO people").
		WithArgs("newbie", "hash", "Python", "Dev", "", (*string)(nil),
			&dob, ptr(25), true, false, false, ptr(uint64(2))).
		WillReturnRows(personRow(pgxmock.NewRows(personCols), 9, "newbie", ptr(uint64(2)), ptr("guest")))
	mock.ExpectCommit()

	p, err := repo.CreatePerson(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.EqualValues(t, 9, p.ID)
	require.NotNil(t, p.Role)
	assert.Equal(t, role.Guest, p.Role.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreatePerson_UsernameTaken(t *testing.T) {
	repo, mock := newTestRepo(t)

	req := domain.Person{
		Username:     "adminuser",
		PasswordHash: "hash",
		Role:         &role.Role{ID: 1, Name: role.Admin},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO people").
		WithArgs("adminuser", "hash", "", "", "", (*string)(nil),
			(*time.Time)(nil), (*int)(nil), false, false, false, ptr(uint64(1))).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.CreatePerson(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdatePerson_RecomputesAge(t *testing.T) {
	repo, mock := newTestRepo(t)

	dob := time.Date(1995, 9, 1, 0, 0, 0, 0, time.UTC)
	req := domain.Person{
		ID:           3,
		Username:     "test_guest",
		PasswordHash: "hash",
		DateOfBirth:  &dob,
		Age:          ptr(1),
		Role:         &role.Role{ID: 2, Name: role.Guest},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE people").
		WithArgs("test_guest", "hash", "", "", "", (*string)(nil),
			&dob, ptr(29), false, false, false, ptr(uint64(2)), domain.ID(3)).
		WillReturnRows(personRow(pgxmock.NewRows(personCols), 3, "test_guest", ptr(uint64(2)), ptr("guest")))
	mock.ExpectCommit()

	p, err := repo.UpdatePerson(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdatePerson_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE people").
		WillReturnRows(pgxmock.NewRows(personCols))
	mock.ExpectRollback()

	p, err := repo.UpdatePerson(context.Background(), domain.Person{ID: 404, Role: &role.Role{ID: 2, Name: role.Guest}})
	require.NoError(t, err)
	assert.Nil(t, p)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeletePerson(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("DELETE FROM people").
		WithArgs(domain.ID(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM people").
		WithArgs(domain.ID(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	ok, err := repo.DeletePerson(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeletePerson(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateLastLogin(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("UPDATE people SET last_login").
		WithArgs(fixedNow, domain.ID(1)).
		WillReturnError(errors.New("conn reset"))

	err := repo.UpdateLastLogin(context.Background(), 1, fixedNow)
	require.ErrorContains(t, err, "update last_login")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPeopleQuery_CountAndSlice(t *testing.T) {
	repo, mock := newTestRepo(t)

	q := repo.QueryPeople(domain.NewFilter("python", "", nil))

	mock.ExpectQuery(`SELECT count\(\*\) FROM people p WHERE p.first_name ILIKE \$1`).
		WithArgs("%python%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`WHERE p.first_name ILIKE \$1 .* ORDER BY p.id LIMIT \$2 OFFSET \$3`).
		WithArgs("%python%", 10, 0).
		WillReturnRows(personRow(pgxmock.NewRows(personCols), 3, "test_guest", ptr(uint64(2)), ptr("guest")))

	n, err := q.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ps, err := q.Slice(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Python", ps[0].FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPeopleQuery_All(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`LEFT JOIN roles r ON r.id = p.role_id ORDER BY p.id$`).
		WillReturnRows(personRow(personRow(pgxmock.NewRows(personCols),
			1, "adminuser", ptr(uint64(1)), ptr("admin")),
			2, "guestuser", ptr(uint64(2)), ptr("guest")))

	ps, err := repo.QueryPeople(domain.Filter{}).All(context.Background())
	require.NoError(t, err)
	assert.Len(t, ps, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}
