package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"person-manager-api/internal/domain/role"
)

func TestSeeder_Seed(t *testing.T) {
	roles := newMemRoles()
	people := newMemPeople(roles)
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewSeeder(people, roles, zap.New(core))
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, DefaultAccounts("admin123", "guest123")))

	admin, err := people.FetchPersonByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, role.Admin, admin.RoleName())
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)
	assert.Equal(t, "1995-09-01", admin.DateOfBirth.Format("2006-01-02"))
	require.NotNil(t, admin.Age)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	guest, err := people.FetchPersonByUsername(ctx, "guest")
	require.NoError(t, err)
	require.NotNil(t, guest)
	assert.Equal(t, role.Guest, guest.RoleName())
	assert.False(t, guest.IsStaff)

	rs, err := roles.FetchRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, rs, 2)
	assert.Equal(t, 2, logs.FilterMessage("person created").Len())

	// second run leaves everything in place
	require.NoError(t, s.Seed(ctx, DefaultAccounts("other", "other")))
	assert.Len(t, people.people, 2)
	assert.Equal(t, 2, logs.FilterMessage("person already exists").Len())

	admin, err = people.FetchPersonByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))
}
