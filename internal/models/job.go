package models

import (
	"time"

	"github.com/lib/pq"
)

// JobPosting is a placement opening published by faculty.
type JobPosting struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string `gorm:"column:title;type:text" json:"title"`
	CompanyName string `gorm:"column:company_name;type:text" json:"company_name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Location    string `gorm:"column:location;type:text" json:"location"`
	JobType     string `gorm:"column:job_type;type:text" json:"job_type"`
	SalaryRange string `gorm:"column:salary_range;type:text" json:"salary_range"`

	Requirements pq.StringArray `gorm:"column:requirements;type:text[]" json:"requirements"`

	ApplicationDeadline *time.Time `gorm:"column:application_deadline;type:timestamptz" json:"application_deadline,omitempty"`
	IsActive            bool       `gorm:"column:is_active;default:true" json:"is_active"`
	PostedBy            string     `gorm:"column:posted_by;type:uuid" json:"posted_by"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (JobPosting) TableName() string { return "job_postings" }

// Application links a student to a posting. One application per
// (student, posting) pair.
type Application struct {
	ID           string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobPostingID string `gorm:"column:job_posting_id;type:uuid;uniqueIndex:idx_applications_posting_student" json:"job_posting_id"`
	StudentID    string `gorm:"column:student_id;type:uuid;uniqueIndex:idx_applications_posting_student" json:"student_id"`
	Status       string `gorm:"column:status;type:text;default:applied" json:"status"`

	AppliedAt time.Time `gorm:"column:applied_at;type:timestamptz" json:"applied_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }
