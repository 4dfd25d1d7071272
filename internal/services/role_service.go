package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vsit/placement-hub/internal/models"
	pgrepo "github.com/vsit/placement-hub/internal/repositories/postgres"
	"github.com/vsit/placement-hub/internal/utils"
	"gorm.io/gorm"
)

type RoleService interface {
	// Resolve returns the acting user's role, lazily creating the
	// profile row with RoleStudent on first visit.
	Resolve(ctx context.Context, userID string) (models.Role, error)
}

type roleService struct {
	profiles pgrepo.ProfileRepository
}

func NewRoleService(profiles pgrepo.ProfileRepository) RoleService {
	return &roleService{profiles: profiles}
}

func (s *roleService) Resolve(ctx context.Context, userID string) (models.Role, error) {
	const op = "RoleService.Resolve"

	if userID == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return p.Role, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return "", utils.E(utils.CodeInternal, op, "failed to look up profile", err)
	}

	now := time.Now().UTC()
	insertErr := s.profiles.Insert(ctx, &models.Profile{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      models.RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if insertErr == nil {
		return models.RoleStudent, nil
	}

	// Two sessions racing the first visit: the loser's insert hits the
	// user_id uniqueness constraint. Treat it as already created and
	// read back whatever role won.
	if errors.Is(insertErr, gorm.ErrDuplicatedKey) {
		p, err := s.profiles.GetByUserID(ctx, userID)
		if err != nil {
			return "", utils.E(utils.CodeInternal, op, "profile exists but could not be read back", err)
		}
		return p.Role, nil
	}

	// Not retried automatically; the caller surfaces a "setting up"
	// state and the user re-triggers.
	return "", utils.E(utils.CodeInternal, op, "failed to create initial profile", insertErr)
}
