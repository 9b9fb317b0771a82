package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

func ptr[T any](v T) *T { return &v }

func TestListAndGetUsers(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "ana", Password: "secreto123", Role: entity.RoleAdmin, Email: "ana@planta.co"})
	require.NoError(t, err)
	beto, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "beto", Password: "secreto123", Role: entity.RoleStorekeeper, StoreIDs: []string{"S-07"}})
	require.NoError(t, err)

	all, err := uc.ListUsers(ctx, repository.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	keepers, err := uc.ListUsers(ctx, repository.UserFilter{Role: entity.RoleStorekeeper})
	require.NoError(t, err)
	require.Len(t, keepers.Items, 1)
	assert.Equal(t, beto.ID, keepers.Items[0].ID)

	byMail, err := uc.ListUsers(ctx, repository.UserFilter{Search: "PLANTA"})
	require.NoError(t, err)
	require.Len(t, byMail.Items, 1)
	assert.Equal(t, "ana", byMail.Items[0].Username)

	_, err = uc.ListUsers(ctx, repository.UserFilter{Role: "root"})
	assert.Equal(t, domain.KindInvalidAttributes, domain.KindOf(err))

	got, err := uc.GetUser(ctx, beto.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"S-07"}, got.StoreIDs)
	_, err = uc.GetUser(ctx, "nope")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	me, err := uc.Me(ctx, entity.Actor{UserID: beto.ID})
	require.NoError(t, err)
	assert.Equal(t, "beto", me.Username)
}

func TestUpdateUser(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()
	beto, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "beto", Password: "secreto123", Role: entity.RoleViewer})
	require.NoError(t, err)

	upd, err := uc.UpdateUser(ctx, beto.ID, dto.UpdateUserRequest{
		Role: ptr(entity.RoleStorekeeper), StoreIDs: ptr([]string{"S-07"}), Name: ptr("Beto Ruiz"), Password: ptr("nuevaClave9"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStorekeeper, upd.Role)
	assert.Equal(t, []string{"S-07"}, upd.StoreIDs)
	assert.Equal(t, "Beto Ruiz", upd.Name)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "beto", Password: "secreto123"})
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err), "la contraseña anterior deja de valer")
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "beto", Password: "nuevaClave9"})
	require.NoError(t, err)

	_, err = uc.UpdateUser(ctx, beto.ID, dto.UpdateUserRequest{StoreIDs: ptr([]string{"S-99"})})
	assert.Equal(t, domain.KindStoreNotFound, domain.KindOf(err))
	_, err = uc.UpdateUser(ctx, beto.ID, dto.UpdateUserRequest{Role: ptr("root")})
	assert.Equal(t, domain.KindInvalidAttributes, domain.KindOf(err))
	_, err = uc.UpdateUser(ctx, beto.ID, dto.UpdateUserRequest{Password: ptr("corta")})
	assert.Equal(t, domain.KindInvalidAttributes, domain.KindOf(err))

	_, err = uc.UpdateUser(ctx, beto.ID, dto.UpdateUserRequest{Status: ptr(entity.StatusInactive)})
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "beto", Password: "nuevaClave9"})
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	stored, err := users.GetByID(ctx, beto.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"S-07"}, stored.StoreIDs, "los intentos rechazados no tocan lo guardado")
}

func TestProfileAndPassword(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "carla", Password: "secreto123", Role: entity.RoleManager})
	require.NoError(t, err)
	actor := entity.Actor{UserID: u.ID, Username: u.Username, Role: u.Role}

	prof, err := uc.UpdateProfile(ctx, actor, dto.UpdateProfileRequest{Email: ptr(" carla@planta.co "), Name: ptr(" ")})
	require.NoError(t, err)
	assert.Equal(t, "carla@planta.co", prof.Email)
	assert.Equal(t, "carla", prof.Name, "un nombre en blanco no reemplaza el actual")
	assert.Equal(t, entity.RoleManager, prof.Role)

	err = uc.ChangePassword(ctx, actor, dto.ChangePasswordRequest{CurrentPassword: "equivocada", NewPassword: "otraClave77"})
	assert.Equal(t, domain.KindInvalidAttributes, domain.KindOf(err))

	require.NoError(t, uc.ChangePassword(ctx, actor, dto.ChangePasswordRequest{CurrentPassword: "secreto123", NewPassword: "otraClave77"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "carla", Password: "otraClave77"})
	require.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	admin, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "ana", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)
	beto, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "beto", Password: "secreto123", Role: entity.RoleViewer})
	require.NoError(t, err)
	actor := entity.Actor{UserID: admin.ID, Role: entity.RoleAdmin}

	err = uc.DeleteUser(ctx, actor, admin.ID)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	require.NoError(t, uc.DeleteUser(ctx, actor, beto.ID))
	_, err = uc.GetUser(ctx, beto.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	err = uc.DeleteUser(ctx, actor, beto.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
