package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockroom-api/pkg/jwt"
)

const secret = "test-secret-auth"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	s := memory.NewStore()
	stores := memory.NewStoreRepository(s)
	now := time.Now()
	require.NoError(t, stores.Create(context.Background(), &entity.Store{
		ID: "S-07", PlantID: "P1", Code: "S-07", Name: "Tienda 7",
		StockOutMode: entity.StockOutModeCasual, Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	users := memory.NewUserRepository(s)
	return auth.NewAuthUseCase(users, stores, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "stockroom-test"}), users
}

func TestCreateUser(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()

	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: " bodega7 ", Password: "secreto123", Role: entity.RoleStorekeeper, StoreIDs: []string{"S-07"}})
	require.NoError(t, err)
	assert.Equal(t, "bodega7", u.Username)
	assert.Equal(t, "bodega7", u.Name, "el nombre por defecto es el usuario")
	assert.Equal(t, []string{"S-07"}, u.StoreIDs)

	stored, err := users.GetByUsername(ctx, "bodega7")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash)

	cases := []struct {
		name string
		in   dto.CreateUserRequest
		kind domain.Kind
	}{
		{"duplicado", dto.CreateUserRequest{Username: "bodega7", Password: "secreto123", Role: entity.RoleViewer}, domain.KindDuplicate},
		{"password corto", dto.CreateUserRequest{Username: "x1", Password: "123", Role: entity.RoleViewer}, domain.KindInvalidAttributes},
		{"rol inválido", dto.CreateUserRequest{Username: "x2", Password: "secreto123", Role: "root"}, domain.KindInvalidAttributes},
		{"tienda inexistente", dto.CreateUserRequest{Username: "x3", Password: "secreto123", Role: entity.RoleStorekeeper, StoreIDs: []string{"S-99"}}, domain.KindStoreNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateUser(ctx, tc.in)
			assert.Equal(t, tc.kind, domain.KindOf(err))
		})
	}
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "bodega7", Password: "secreto123", Role: entity.RoleStorekeeper, StoreIDs: []string{"S-07"}})
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "bodega7", Password: "secreto123"})
	require.NoError(t, err)
	id, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id.UserID)
	assert.Equal(t, entity.RoleStorekeeper, id.Role)
	assert.Equal(t, []string{"S-07"}, id.StoreIDs)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "bodega7", Password: "otra-clave"})
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestEnsureAdmin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "admin", "admin12345")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin", "otra-clave-123")
	require.NoError(t, err)
	assert.False(t, created, "segunda llamada no toca al usuario existente")

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin12345"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)
}
