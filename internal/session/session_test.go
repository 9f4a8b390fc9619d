package session

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/sedp-portal/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthClient struct {
	mock.Mock
}

func (m *MockAuthClient) GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.UserRecord), args.Error(1)
}

func (m *MockAuthClient) CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.UserRecord), args.Error(1)
}

func (m *MockAuthClient) SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error {
	return m.Called(ctx, uid, claims).Error(0)
}

type fakeRoles struct {
	grants []models.UserRole
	err    error
}

func (f *fakeRoles) HasRole(ctx context.Context, userID, role string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, g := range f.grants {
		if g.UserID == userID && g.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoles) Grant(ctx context.Context, role *models.UserRole) error {
	if f.err != nil {
		return f.err
	}
	f.grants = append(f.grants, *role)
	return nil
}

func (f *fakeRoles) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	for _, g := range f.grants {
		if g.Role == role {
			n++
		}
	}
	return n, f.err
}

func record(uid, email string) *auth.UserRecord {
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid, Email: email}}
}

func TestResolve_AdminFlagFromRoleTable(t *testing.T) {
	roles := &fakeRoles{grants: []models.UserRole{{UserID: "u-admin", Role: models.RoleAdmin}}}
	m := NewManager(new(MockAuthClient), roles, PrimaryAdmin{})
	ctx := context.Background()

	admin := m.Resolve(ctx, models.Identity{ID: "u-admin", Email: "a@sedp.example"})
	user := m.Resolve(ctx, models.Identity{ID: "u-plain", Email: "p@sedp.example"})

	assert.True(t, admin.IsAdmin())
	assert.Equal(t, "u-admin", admin.CurrentUser().ID)
	assert.False(t, user.IsAdmin())
}

func TestResolve_RoleLookupFailureIsNotAdmin(t *testing.T) {
	m := NewManager(new(MockAuthClient), &fakeRoles{err: errors.New("connection refused")}, PrimaryAdmin{})

	s := m.Resolve(context.Background(), models.Identity{ID: "u1"})

	assert.False(t, s.IsAdmin())
	assert.NotNil(t, s.CurrentUser())
}

func TestAnonymous(t *testing.T) {
	m := NewManager(new(MockAuthClient), &fakeRoles{}, PrimaryAdmin{})

	s := m.Anonymous()

	assert.Nil(t, s.CurrentUser())
	assert.False(t, s.IsAdmin())
}

func TestMakeUserAdmin_GrantsRoleAndClaim(t *testing.T) {
	client := new(MockAuthClient)
	roles := &fakeRoles{}
	m := NewManager(client, roles, PrimaryAdmin{})
	ctx := context.Background()

	client.On("GetUserByEmail", ctx, "staff@sedp.example").Return(record("u-staff", "staff@sedp.example"), nil)
	client.On("SetCustomUserClaims", ctx, "u-staff", map[string]interface{}{"admin": true}).Return(nil)

	err := m.MakeUserAdmin(ctx, "  Staff@SEDP.example ")

	require.NoError(t, err)
	require.Len(t, roles.grants, 1)
	assert.Equal(t, "u-staff", roles.grants[0].UserID)
	assert.Equal(t, models.RoleAdmin, roles.grants[0].Role)
	client.AssertExpectations(t)
}

func TestMakeUserAdmin_EmptyEmail(t *testing.T) {
	client := new(MockAuthClient)
	m := NewManager(client, &fakeRoles{}, PrimaryAdmin{})

	err := m.MakeUserAdmin(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmailRequired)
	client.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
}

func TestMakeUserAdmin_LookupFailure(t *testing.T) {
	client := new(MockAuthClient)
	roles := &fakeRoles{}
	m := NewManager(client, roles, PrimaryAdmin{})
	ctx := context.Background()

	client.On("GetUserByEmail", ctx, "ghost@sedp.example").Return(nil, errors.New("lookup failed"))

	err := m.MakeUserAdmin(ctx, "ghost@sedp.example")

	assert.Error(t, err)
	assert.Empty(t, roles.grants)
}

func TestInitializeAdminUser_ExistingAccount(t *testing.T) {
	client := new(MockAuthClient)
	roles := &fakeRoles{}
	m := NewManager(client, roles, PrimaryAdmin{Email: "owner@sedp.example", Password: "change-me"})
	ctx := context.Background()

	client.On("GetUserByEmail", ctx, "owner@sedp.example").Return(record("u-owner", "owner@sedp.example"), nil)
	client.On("SetCustomUserClaims", ctx, "u-owner", mock.Anything).Return(nil)

	require.NoError(t, m.InitializeAdminUser(ctx))

	has, err := m.HasAdmins(ctx)
	require.NoError(t, err)
	assert.True(t, has)
	client.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestInitializeAdminUser_NotConfigured(t *testing.T) {
	m := NewManager(new(MockAuthClient), &fakeRoles{}, PrimaryAdmin{Email: "owner@sedp.example"})

	err := m.InitializeAdminUser(context.Background())

	assert.ErrorIs(t, err, ErrPrimaryAdminNotConfigured)
}

func TestStatic(t *testing.T) {
	anon := Static{Admin: true}
	admin := Static{User: &models.Identity{ID: "u1"}, Admin: true}

	assert.False(t, anon.IsAdmin())
	assert.True(t, admin.IsAdmin())
	assert.Error(t, admin.MakeUserAdmin(context.Background(), "x@sedp.example"))
}
