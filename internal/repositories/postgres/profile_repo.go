package postgres

import (
	"context"
	"errors"

	"github.com/vsit/placement-hub/internal/models"
	"github.com/vsit/placement-hub/internal/utils"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// Insert returns gorm.ErrDuplicatedKey when a row for the same
	// user_id already exists; callers treat that as "already created".
	Insert(ctx context.Context, p *models.Profile) error
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) Insert(ctx context.Context, p *models.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}
