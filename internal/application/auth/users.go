package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers lista usuarios filtrando por rol, estado y búsqueda.
func (uc *AuthUseCase) ListUsers(ctx context.Context, filter repository.UserFilter) (*dto.UserListResponse, error) {
	if filter.Role != "" && !entity.ValidRole(filter.Role) {
		return nil, domain.InvalidAttributes("rol inválido")
	}
	list, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset}}, nil
}

// GetUser obtiene un usuario por ID.
func (uc *AuthUseCase) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.requireUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Me devuelve el usuario de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, actor entity.Actor) (*dto.UserResponse, error) {
	return uc.GetUser(ctx, actor.UserID)
}

// UpdateUser cambios de administración: rol, tiendas, estado, perfil y contraseña.
// El token vigente del usuario conserva rol y tiendas hasta que vuelva a iniciar sesión.
func (uc *AuthUseCase) UpdateUser(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.requireUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.InvalidAttributes("rol inválido")
		}
		u.Role = *in.Role
	}
	if in.StoreIDs != nil {
		if err := uc.requireStores(ctx, *in.StoreIDs); err != nil {
			return nil, err
		}
		u.StoreIDs = *in.StoreIDs
	}
	if in.Status != nil {
		if *in.Status != entity.StatusActive && *in.Status != entity.StatusInactive {
			return nil, domain.InvalidAttributes("status inválido")
		}
		u.Status = *in.Status
	}
	applyProfile(u, in.Email, in.Name)
	if in.Password != nil {
		if err := setPassword(u, *in.Password); err != nil {
			return nil, err
		}
	}
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// UpdateProfile el usuario de la sesión edita su email y nombre.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, actor entity.Actor, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	u, err := uc.requireUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	applyProfile(u, in.Email, in.Name)
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// ChangePassword exige la contraseña actual antes de reemplazarla.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, actor entity.Actor, in dto.ChangePasswordRequest) error {
	u, err := uc.requireUser(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.InvalidAttributes("la contraseña actual no coincide")
	}
	if err := setPassword(u, in.NewPassword); err != nil {
		return err
	}
	u.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, u)
}

// DeleteUser borra un usuario; nadie puede borrar su propia cuenta.
func (uc *AuthUseCase) DeleteUser(ctx context.Context, actor entity.Actor, id string) error {
	if actor.UserID == id {
		return domain.Conflict("no puedes eliminar tu propia cuenta")
	}
	if _, err := uc.requireUser(ctx, id); err != nil {
		return err
	}
	return uc.userRepo.Delete(ctx, id)
}

func (uc *AuthUseCase) requireUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("usuario")
	}
	return u, nil
}

func (uc *AuthUseCase) requireStores(ctx context.Context, ids []string) error {
	for _, id := range ids {
		s, err := uc.storeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.StoreNotFound(id)
		}
	}
	return nil
}

func applyProfile(u *entity.User, email, name *string) {
	if email != nil {
		u.Email = strings.TrimSpace(*email)
	}
	if name != nil && strings.TrimSpace(*name) != "" {
		u.Name = strings.TrimSpace(*name)
	}
}

func setPassword(u *entity.User, password string) error {
	if len(password) < 8 {
		return domain.InvalidAttributes("la contraseña debe tener al menos 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}
