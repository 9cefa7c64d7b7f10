package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/domain"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
	"github.com/tu-usuario/crm-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para emisión de tokens.
type JWTConfig struct {
	Secret     string
	SessionTTL int // minutos
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y verificación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: resuelve el rol por nombre, hashea password con
// bcrypt y persiste. El email duplicado lo detecta el constraint único
// (ErrEmailAlreadyExists), no un check previo. Devuelve token + usuario.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	roleName := in.RoleName
	if roleName == "" {
		roleName = entity.DefaultRoleName
	}
	role, err := uc.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issueToken(user, role)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	resp.RoleName = role.Name
	return &dto.LoginResponse{Token: token, User: *resp}, nil
}

// Login verifica email/password, genera el token de sesión y retorna token + usuario.
// Usuario inexistente es ErrUserNotFound (el handler responde 404 para que el
// frontend dirija al registro); password incorrecto es ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	role, err := uc.ResolveRole(ctx, user)
	if err != nil {
		return nil, err
	}
	token, err := uc.issueToken(user, role)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	if role != nil {
		resp.RoleName = role.Name
	}
	return &dto.LoginResponse{Token: token, User: *resp}, nil
}

// Verify devuelve el usuario vivo, su rol resuelto y la matriz de permisos
// efectiva. Siempre consulta el estado actual: el snapshot del token nunca
// decide permisos.
func (uc *AuthUseCase) Verify(ctx context.Context, userID string) (*dto.VerifyResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	role, err := uc.ResolveRole(ctx, user)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	out := &dto.VerifyResponse{User: *resp}
	if role != nil {
		out.User.RoleName = role.Name
		out.Role = dto.RoleResponse{
			ID:          role.ID,
			Name:        role.Name,
			DisplayName: role.DisplayName,
			Description: role.Description,
			Permissions: role.Permissions,
			CreatedAt:   role.CreatedAt,
			UpdatedAt:   role.UpdatedAt,
		}
		out.Permissions = role.Permissions
	}
	return out, nil
}

// ResolveRole resuelve el rol vivo del usuario. Sin rol asignado (o rol
// borrado) cae al rol por defecto en lugar de fallar.
func (uc *AuthUseCase) ResolveRole(ctx context.Context, user *entity.User) (*entity.Role, error) {
	if user.RoleID != "" {
		role, err := uc.roleRepo.GetByID(ctx, user.RoleID)
		if err != nil {
			return nil, err
		}
		if role != nil {
			return role, nil
		}
	}
	return uc.roleRepo.GetByName(ctx, entity.DefaultRoleName)
}

func (uc *AuthUseCase) issueToken(user *entity.User, role *entity.Role) (string, error) {
	roleID, roleName := "", ""
	if role != nil {
		roleID, roleName = role.ID, role.Name
	}
	return jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, roleID, roleName, uc.jwtCfg.Issuer, uc.jwtCfg.SessionTTL)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		RoleID:    u.RoleID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
