package postgres

import (
	"context"
	"errors"

	"github.com/vsit/placement-hub/internal/models"
	"github.com/vsit/placement-hub/internal/utils"
	"gorm.io/gorm"
)

type JobPostingRepository interface {
	Insert(ctx context.Context, p *models.JobPosting) error
	GetByID(ctx context.Context, id string) (*models.JobPosting, error)
	ListActive(ctx context.Context) ([]models.JobPosting, error)
}

type jobPostingRepo struct {
	db *gorm.DB
}

func NewJobPostingRepo(db *gorm.DB) JobPostingRepository {
	return &jobPostingRepo{db: db}
}

func (r *jobPostingRepo) Insert(ctx context.Context, p *models.JobPosting) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *jobPostingRepo) GetByID(ctx context.Context, id string) (*models.JobPosting, error) {
	var p models.JobPosting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *jobPostingRepo) ListActive(ctx context.Context) ([]models.JobPosting, error) {
	var out []models.JobPosting
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

type ApplicationRepository interface {
	// Insert returns gorm.ErrDuplicatedKey when the student already
	// applied to the posting.
	Insert(ctx context.Context, a *models.Application) error
	ListByStudent(ctx context.Context, studentUserID string) ([]models.Application, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Insert(ctx context.Context, a *models.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentUserID string) ([]models.Application, error) {
	var out []models.Application
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentUserID).
		Order("applied_at DESC").
		Find(&out).Error
	return out, err
}
