package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/vsit/placement-hub/internal/models"
	"github.com/vsit/placement-hub/internal/utils"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Insert returns gorm.ErrDuplicatedKey for an already registered
	// email.
	Insert(ctx context.Context, u *models.User) error
	TouchLastSignIn(ctx context.Context, userID string, at time.Time) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}

func (r *userRepo) Insert(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) TouchLastSignIn(ctx context.Context, userID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_sign_in_at", at).Error
}
