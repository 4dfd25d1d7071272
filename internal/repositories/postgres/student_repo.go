package postgres

import (
	"context"
	"errors"

	"github.com/vsit/placement-hub/internal/models"
	"github.com/vsit/placement-hub/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	Upsert(ctx context.Context, s *models.Student) error
	// ListActive returns active students newest-first; the directory
	// preserves this order through filtering.
	ListActive(ctx context.Context) ([]models.Student, error)
}

type studentRepo struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) GetByUserID(ctx context.Context, userID string) (*models.Student, error) {
	var s models.Student
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var s models.Student
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *studentRepo) Upsert(ctx context.Context, s *models.Student) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "about_yourself", "email", "phone",
				"college_roll_no", "stream", "year",
				"skills", "expertise", "courses",
				"past_experience", "preferred_job_role", "past_education",
				"certificate_urls", "profile_image_url", "resume_url",
				"is_active", "updated_at",
			}),
		}).
		Create(s).Error
}

func (r *studentRepo) ListActive(ctx context.Context) ([]models.Student, error) {
	var out []models.Student
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
