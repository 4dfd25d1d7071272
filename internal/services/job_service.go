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

// NewJobPosting is the payload faculty submit to publish an opening.
type NewJobPosting struct {
	Title               string     `json:"title" binding:"required"`
	CompanyName         string     `json:"company_name" binding:"required"`
	Description         string     `json:"description"`
	Location            string     `json:"location"`
	JobType             string     `json:"job_type"`
	SalaryRange         string     `json:"salary_range"`
	Requirements        []string   `json:"requirements"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}

type JobService interface {
	CreatePosting(ctx context.Context, postedBy string, in NewJobPosting) (*models.JobPosting, error)
	ListActive(ctx context.Context) ([]models.JobPosting, error)
	// Apply records a student's application; applying twice to the
	// same posting is a conflict.
	Apply(ctx context.Context, studentUserID, postingID string) (*models.Application, error)
	ListApplications(ctx context.Context, studentUserID string) ([]models.Application, error)
}

type jobService struct {
	postings     pgrepo.JobPostingRepository
	applications pgrepo.ApplicationRepository
}

func NewJobService(postings pgrepo.JobPostingRepository, applications pgrepo.ApplicationRepository) JobService {
	return &jobService{postings: postings, applications: applications}
}

func (s *jobService) CreatePosting(ctx context.Context, postedBy string, in NewJobPosting) (*models.JobPosting, error) {
	const op = "JobService.CreatePosting"

	if postedBy == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "posted_by is required", nil)
	}

	now := time.Now().UTC()
	p := &models.JobPosting{
		ID:                  uuid.NewString(),
		Title:               in.Title,
		CompanyName:         in.CompanyName,
		Description:         in.Description,
		Location:            in.Location,
		JobType:             in.JobType,
		SalaryRange:         in.SalaryRange,
		Requirements:        in.Requirements,
		ApplicationDeadline: in.ApplicationDeadline,
		IsActive:            true,
		PostedBy:            postedBy,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.postings.Insert(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job posting", err)
	}
	return p, nil
}

func (s *jobService) ListActive(ctx context.Context) ([]models.JobPosting, error) {
	const op = "JobService.ListActive"

	out, err := s.postings.ListActive(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list job postings", err)
	}
	return out, nil
}

func (s *jobService) Apply(ctx context.Context, studentUserID, postingID string) (*models.Application, error) {
	const op = "JobService.Apply"

	if studentUserID == "" || postingID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student and posting ids are required", nil)
	}

	posting, err := s.postings.GetByID(ctx, postingID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "job posting not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load job posting", err)
	}
	if !posting.IsActive {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job posting is no longer active", nil)
	}

	now := time.Now().UTC()
	a := &models.Application{
		ID:           uuid.NewString(),
		JobPostingID: postingID,
		StudentID:    studentUserID,
		Status:       "applied",
		AppliedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.applications.Insert(ctx, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.E(utils.CodeConflict, op, "you have already applied to this posting", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to record application", err)
	}
	return a, nil
}

func (s *jobService) ListApplications(ctx context.Context, studentUserID string) ([]models.Application, error) {
	const op = "JobService.ListApplications"

	if studentUserID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "student id is required", nil)
	}
	out, err := s.applications.ListByStudent(ctx, studentUserID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return out, nil
}
