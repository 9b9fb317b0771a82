package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y alta de usuarios.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, storeRepo repository.StoreRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, storeRepo: storeRepo, jwtCfg: jwtCfg}
}

// CreateUser crea un usuario: hashea password con bcrypt y persiste.
// Las tiendas asignadas deben existir.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < 8 {
		return nil, domain.InvalidAttributes("username y password (mínimo 8 caracteres) son requeridos")
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.InvalidAttributes("rol inválido")
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("el usuario ya existe")
	}
	if err := uc.requireStores(ctx, in.StoreIDs); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = username
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		StoreIDs:     in.StoreIDs,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// EnsureAdmin crea el administrador inicial si no existe. Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{
		Username: username,
		Password: password,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Login verifica usuario/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Unauthorized("credenciales inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.Unauthorized("credenciales inválidas")
	}
	if user.Status != entity.StatusActive {
		return nil, domain.Forbidden("usuario inactivo")
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		StoreIDs: user.StoreIDs,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	storeIDs := u.StoreIDs
	if storeIDs == nil {
		storeIDs = []string{}
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		StoreIDs:  storeIDs,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
