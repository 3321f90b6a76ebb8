package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juju/clock"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Garantias-api/internal/application/dto"
	"github.com/jhoicas/Garantias-api/internal/domain"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/domain/policy"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
	"github.com/jhoicas/Garantias-api/pkg/jwt"
	"github.com/jhoicas/Garantias-api/pkg/timeutil"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration // 0 = jwt.DefaultTTL (7 días)
	Issuer string
}

// TokenDenylist lista de tokens revocados por logout. Implementación opcional (Redis).
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: login, verificación de token y bootstrap.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	clock    clock.Clock
	denylist TokenDenylist
}

// NewAuthUseCase construye el caso de uso de auth. denylist puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, clk clock.Clock, denylist TokenDenylist) *AuthUseCase {
	if jwtCfg.TTL <= 0 {
		jwtCfg.TTL = jwt.DefaultTTL
	}
	if clk == nil {
		clk = clock.WallClock
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, clock: clk, denylist: denylist}
}

// HashPassword genera el hash bcrypt (salado, costo por defecto) de password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password admite máximo 72 bytes", domain.ErrInvalidInput)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifica username/password, genera JWT y retorna token + rol.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := uc.IssueToken(user.Username)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Username: user.Username, Role: user.Role}, nil
}

// IssueToken firma un token para username con la vigencia configurada.
func (uc *AuthUseCase) IssueToken(username string) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, username, uc.jwtCfg.Issuer, uc.jwtCfg.TTL, timeutil.Now(uc.clock))
}

// VerifyToken valida formato, firma, vencimiento y revocación. Solo autentica; no autoriza.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, raw string) (*jwt.Claims, error) {
	if raw == "" {
		return nil, domain.ErrMissingToken
	}
	claims, err := jwt.ParseAt(uc.jwtCfg.Secret, raw, timeutil.Now(uc.clock))
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, fmt.Errorf("%w: %v", domain.ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if uc.denylist != nil && claims.ID != "" {
		revoked, err := uc.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("consultar revocación: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revocado", domain.ErrInvalidToken)
		}
	}
	return claims, nil
}

// Identify autentica el token y resuelve el rol vigente del usuario en la BD.
func (uc *AuthUseCase) Identify(ctx context.Context, raw string) (policy.Actor, error) {
	claims, err := uc.VerifyToken(ctx, raw)
	if err != nil {
		return policy.Actor{}, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, claims.Username)
	if err != nil {
		return policy.Actor{}, err
	}
	if user == nil {
		return policy.Actor{}, fmt.Errorf("%w: usuario inválido", domain.ErrUnauthorized)
	}
	return policy.Actor{Username: user.Username, Role: user.Role}, nil
}

// Logout revoca el token hasta su vencimiento. Sin lista de revocación es un no-op.
func (uc *AuthUseCase) Logout(ctx context.Context, raw string) error {
	claims, err := uc.VerifyToken(ctx, raw)
	if err != nil {
		return err
	}
	if uc.denylist == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(timeutil.Now(uc.clock))
	if ttl <= 0 {
		return nil
	}
	return uc.denylist.Revoke(ctx, claims.ID, ttl)
}

// EnsureAdmin garantiza que exista la cuenta admin. Devuelve true si la creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, defaultPassword string) (bool, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, entity.ProtectedUsername)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if existing.Role != entity.RoleAdmin {
			// Una fila heredada con otro rol se corrige: la cuenta admin siempre es admin.
			existing.Role = entity.RoleAdmin
			return false, uc.userRepo.Update(ctx, existing)
		}
		return false, nil
	}
	hash, err := HashPassword(defaultPassword)
	if err != nil {
		return false, err
	}
	admin := &entity.User{
		Username:     entity.ProtectedUsername,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		CreatedAt:    timeutil.Now(uc.clock),
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil // otra instancia lo creó primero
		}
		return false, err
	}
	return true, nil
}
