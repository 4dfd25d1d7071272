package services

import (
	"context"
	"errors"
	"time"

	"github.com/vsit/placement-hub/internal/cache"
	"github.com/vsit/placement-hub/internal/models"
	pgrepo "github.com/vsit/placement-hub/internal/repositories/postgres"
	"github.com/vsit/placement-hub/internal/utils"
)

// DirectoryStats summarizes the fetched student list for the faculty
// dashboard header.
type DirectoryStats struct {
	TotalStudents  int      `json:"total_students"`
	ActiveProfiles int      `json:"active_profiles"`
	Streams        []string `json:"streams"`
}

// StudentExport is the placement-relevant subset faculty may download
// for one student.
type StudentExport struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	RollNo        string   `json:"roll_no"`
	Stream        string   `json:"stream"`
	Year          int      `json:"year"`
	Skills        []string `json:"skills"`
	Expertise     []string `json:"expertise"`
	PreferredRole string   `json:"preferred_role"`
	ResumeURL     string   `json:"resume_url,omitempty"`
}

type DirectoryService interface {
	// List returns active students newest-first for a faculty or
	// admin actor. Any other role gets a permission error and no data.
	List(ctx context.Context, actorUserID string) ([]models.Student, DirectoryStats, error)

	Export(ctx context.Context, actorUserID, studentID string) (*StudentExport, error)
}

type directoryService struct {
	students pgrepo.StudentRepository
	roles    RoleService
	cache    cache.Cache
	ttl      time.Duration
}

func NewDirectoryService(students pgrepo.StudentRepository, roles RoleService, c cache.Cache, ttl time.Duration) DirectoryService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &directoryService{students: students, roles: roles, cache: c, ttl: ttl}
}

// requireStaff mirrors the backend policy: the role check runs here,
// on the server, not only in whatever client renders the directory.
func (s *directoryService) requireStaff(ctx context.Context, op, actorUserID string) error {
	role, err := s.roles.Resolve(ctx, actorUserID)
	if err != nil {
		return err
	}
	if !role.IsStaff() {
		return utils.E(utils.CodeForbidden, op, "you don't have permission to access the student directory", nil)
	}
	return nil
}

func (s *directoryService) List(ctx context.Context, actorUserID string) ([]models.Student, DirectoryStats, error) {
	const op = "DirectoryService.List"

	if err := s.requireStaff(ctx, op, actorUserID); err != nil {
		return nil, DirectoryStats{}, err
	}

	var records []models.Student
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, directoryCacheKey, &records); err == nil && hit {
			return records, buildStats(records), nil
		}
	}

	records, err := s.students.ListActive(ctx)
	if err != nil {
		return nil, DirectoryStats{}, utils.E(utils.CodeInternal, op, "failed to load student directory", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, directoryCacheKey, records, s.ttl)
	}
	return records, buildStats(records), nil
}

func (s *directoryService) Export(ctx context.Context, actorUserID, studentID string) (*StudentExport, error) {
	const op = "DirectoryService.Export"

	if err := s.requireStaff(ctx, op, actorUserID); err != nil {
		return nil, err
	}

	row, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "student not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load student", err)
	}

	return &StudentExport{
		Name:          row.FullName,
		Email:         row.Email,
		RollNo:        row.CollegeRollNo,
		Stream:        row.Stream,
		Year:          row.Year,
		Skills:        row.Skills,
		Expertise:     row.Expertise,
		PreferredRole: row.PreferredJobRole,
		ResumeURL:     row.ResumeURL,
	}, nil
}

func buildStats(records []models.Student) DirectoryStats {
	stats := DirectoryStats{TotalStudents: len(records), Streams: []string{}}
	seen := map[string]struct{}{}
	for _, r := range records {
		if r.FullName != "" && r.CollegeRollNo != "" {
			stats.ActiveProfiles++
		}
		if _, ok := seen[r.Stream]; !ok && r.Stream != "" {
			seen[r.Stream] = struct{}{}
			stats.Streams = append(stats.Streams, r.Stream)
		}
	}
	return stats
}
