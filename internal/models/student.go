package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Student is the placement profile a student maintains. One row per
// user_id, matching exactly one Profile; every save is an upsert on
// user_id (last write wins, no merge).
type Student struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;uniqueIndex" json:"user_id"`

	FullName      string `gorm:"column:full_name;type:text" json:"full_name"`
	AboutYourself string `gorm:"column:about_yourself;type:text" json:"about_yourself"`
	Email         string `gorm:"column:email;type:text" json:"email"`
	Phone         string `gorm:"column:phone;type:text" json:"phone"`
	CollegeRollNo string `gorm:"column:college_roll_no;type:text" json:"college_roll_no"`
	Stream        string `gorm:"column:stream;type:text" json:"stream"`
	Year          int    `gorm:"column:year" json:"year"` // 1..4

	// Tag sets: stored as text[] but semantically unordered.
	Skills    pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`
	Expertise pq.StringArray `gorm:"column:expertise;type:text[]" json:"expertise"`
	Courses   pq.StringArray `gorm:"column:courses;type:text[]" json:"courses"`

	PastExperience   string         `gorm:"column:past_experience;type:text" json:"past_experience"`
	PreferredJobRole string         `gorm:"column:preferred_job_role;type:text" json:"preferred_job_role"`
	PastEducation    datatypes.JSON `gorm:"column:past_education;type:jsonb" json:"past_education"`

	CertificateURLs pq.StringArray `gorm:"column:certificate_urls;type:text[]" json:"certificate_urls"`
	ProfileImageURL string         `gorm:"column:profile_image_url;type:text" json:"profile_image_url"`
	ResumeURL       string         `gorm:"column:resume_url;type:text" json:"resume_url"`

	IsActive bool `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Student) TableName() string { return "students" }
