package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/juju/clock"

	"github.com/jhoicas/Garantias-api/internal/application/auth"
	"github.com/jhoicas/Garantias-api/internal/application/dto"
	"github.com/jhoicas/Garantias-api/internal/application/validation"
	"github.com/jhoicas/Garantias-api/internal/domain"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/domain/policy"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
	"github.com/jhoicas/Garantias-api/pkg/timeutil"
)

// UserUseCase aplica reglas de negocio para usuarios. Todas las operaciones son solo admin.
type UserUseCase struct {
	repo  repository.UserRepository
	clock clock.Clock
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, clk clock.Clock) *UserUseCase {
	return &UserUseCase{repo: repo, clock: clk}
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context, actor policy.Actor) ([]dto.UserResponse, error) {
	if err := policy.Authorize(actor, policy.ActionListUsers, ""); err != nil {
		return nil, err
	}
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario. Rol por defecto: tecnico. Devuelve domain.ErrConflict si el username existe.
func (uc *UserUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := policy.Authorize(actor, policy.ActionManageUsers, ""); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = entity.RoleTecnico
	}
	existing, err := uc.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el usuario %q ya existe", domain.ErrConflict, in.Username)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    timeutil.Now(uc.clock),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el usuario %q ya existe", domain.ErrConflict, in.Username)
		}
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Update renombra, cambia password o rol. La cuenta admin no puede perder el rol ni renombrarse.
func (uc *UserUseCase) Update(ctx context.Context, actor policy.Actor, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := policy.Authorize(actor, policy.ActionManageUsers, ""); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, validation.Required("username")
		}
		if name != user.Username {
			if user.IsProtected() {
				return nil, domain.ErrProtectedAccount
			}
			other, err := uc.repo.GetByUsername(ctx, name)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, fmt.Errorf("%w: el usuario %q ya existe", domain.ErrConflict, name)
			}
			user.Username = name
		}
	}
	if in.Role != nil && *in.Role != user.Role {
		if user.IsProtected() {
			return nil, domain.ErrProtectedAccount
		}
		user.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := uc.repo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el usuario %q ya existe", domain.ErrConflict, user.Username)
		}
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Delete elimina un usuario. La cuenta admin no se elimina.
func (uc *UserUseCase) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	if err := policy.Authorize(actor, policy.ActionManageUsers, ""); err != nil {
		return err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.IsProtected() {
		return domain.ErrProtectedAccount
	}
	return uc.repo.Delete(ctx, id)
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: timeutil.In(u.CreatedAt),
	}
}
