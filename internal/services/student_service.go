package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vsit/placement-hub/internal/cache"
	"github.com/vsit/placement-hub/internal/listcodec"
	"github.com/vsit/placement-hub/internal/models"
	"github.com/vsit/placement-hub/internal/providers/resume"
	pgrepo "github.com/vsit/placement-hub/internal/repositories/postgres"
	"github.com/vsit/placement-hub/internal/storage"
	"github.com/vsit/placement-hub/internal/utils"
	"github.com/vsit/placement-hub/internal/validation"
	"golang.org/x/sync/errgroup"
)

// FileUpload is a user-selected file that has not been persisted yet.
// It only becomes durable once the owning Save completes.
type FileUpload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

type StudentService interface {
	// Load fetches the caller's student row. A first-time user gets
	// (nil, nil); only transport/storage failures are errors.
	Load(ctx context.Context, userID string) (*models.Student, error)

	// ToForm flattens a row into its editable representation.
	ToForm(s *models.Student) (validation.StudentProfileForm, error)

	// Save reconciles the edited form back into the stored row:
	// profile row ensured first, new files uploaded (all of them, or
	// the save aborts before any row write), certificates appended,
	// row upserted on user_id, then re-fetched.
	Save(ctx context.Context, userID string, form validation.StudentProfileForm, profileImage *FileUpload, certificates []FileUpload) (*models.Student, error)

	// GenerateResume dispatches one generation request built from the
	// form, stores the result, and records it as the student's resume.
	GenerateResume(ctx context.Context, userID string, form validation.StudentProfileForm) (resumeURL string, markdown string, err error)
}

type studentService struct {
	students  pgrepo.StudentRepository
	roles     RoleService
	uploader  storage.Uploader
	cache     cache.Cache
	generator resume.Generator
}

func NewStudentService(students pgrepo.StudentRepository, roles RoleService, uploader storage.Uploader, c cache.Cache, generator resume.Generator) StudentService {
	return &studentService{students: students, roles: roles, uploader: uploader, cache: c, generator: generator}
}

func (s *studentService) Load(ctx context.Context, userID string) (*models.Student, error) {
	const op = "StudentService.Load"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	row, err := s.students.GetByUserID(ctx, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, nil // first-time user, not an error
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load student profile", err)
	}
	return row, nil
}

func (s *studentService) ToForm(row *models.Student) (validation.StudentProfileForm, error) {
	const op = "StudentService.ToForm"

	entries, err := models.UnmarshalEducation(row.PastEducation)
	if err != nil {
		return validation.StudentProfileForm{}, utils.E(utils.CodeInternal, op, "failed to decode stored education", err)
	}

	return validation.StudentProfileForm{
		FullName:         row.FullName,
		AboutYourself:    row.AboutYourself,
		Email:            row.Email,
		Phone:            row.Phone,
		CollegeRollNo:    row.CollegeRollNo,
		Stream:           row.Stream,
		Year:             row.Year,
		Skills:           listcodec.Join(row.Skills),
		Expertise:        listcodec.Join(row.Expertise),
		PastExperience:   row.PastExperience,
		PreferredJobRole: row.PreferredJobRole,
		PastEducation:    models.FormatEducationText(entries),
		Courses:          listcodec.Join(row.Courses),
	}, nil
}

// fromForm is the inverse transform. An education parse error fails
// the whole conversion; nothing is written partially.
func fromForm(form validation.StudentProfileForm) (*models.Student, error) {
	entries, err := models.ParseEducationText(form.PastEducation)
	if err != nil {
		return nil, err
	}
	blob, err := models.MarshalEducation(entries)
	if err != nil {
		return nil, err
	}

	return &models.Student{
		FullName:         strings.TrimSpace(form.FullName),
		AboutYourself:    form.AboutYourself,
		Email:            strings.TrimSpace(form.Email),
		Phone:            strings.TrimSpace(form.Phone),
		CollegeRollNo:    strings.TrimSpace(form.CollegeRollNo),
		Stream:           form.Stream,
		Year:             form.Year,
		Skills:           listcodec.Split(form.Skills),
		Expertise:        listcodec.Split(form.Expertise),
		PastExperience:   form.PastExperience,
		PreferredJobRole: form.PreferredJobRole,
		PastEducation:    blob,
		Courses:          listcodec.Split(form.Courses),
		IsActive:         true,
	}, nil
}

const directoryCacheKey = "directory:students"

func (s *studentService) Save(ctx context.Context, userID string, form validation.StudentProfileForm, profileImage *FileUpload, certificates []FileUpload) (*models.Student, error) {
	const op = "StudentService.Save"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	row, err := fromForm(form)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid past education", err)
	}

	// The profile row must exist before the student row references it.
	if _, err := s.roles.Resolve(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := s.students.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to load current student row", err)
	}

	// Fan out every upload of this save, join before the row write.
	// One failure aborts the save with stored data untouched.
	var imageURL string
	certURLs := make([]string, len(certificates))

	g, gctx := errgroup.WithContext(ctx)
	if profileImage != nil {
		img := profileImage
		g.Go(func() error {
			object := fmt.Sprintf("profiles/%s/%d%s", userID, time.Now().UnixNano(), ext(img.Name))
			url, err := s.uploader.Upload(gctx, object, img.ContentType, img.Reader)
			if err != nil {
				return err
			}
			imageURL = url
			return nil
		})
	}
	for i := range certificates {
		i, cert := i, certificates[i]
		g.Go(func() error {
			object := fmt.Sprintf("certificates/%s/%s%s", userID, uuid.NewString(), ext(cert.Name))
			url, err := s.uploader.Upload(gctx, object, cert.ContentType, cert.Reader)
			if err != nil {
				return err
			}
			certURLs[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "file upload failed, profile not saved", err)
	}

	now := time.Now().UTC()
	if existing != nil {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		row.ProfileImageURL = existing.ProfileImageURL
		row.ResumeURL = existing.ResumeURL
		row.CertificateURLs = existing.CertificateURLs
	} else {
		row.ID = uuid.NewString()
		row.CreatedAt = now
	}
	row.UserID = userID
	row.UpdatedAt = now
	if imageURL != "" {
		row.ProfileImageURL = imageURL
	}
	// certificates are additive, never replacing earlier uploads
	row.CertificateURLs = append(row.CertificateURLs, certURLs...)

	if err := s.students.Upsert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save student profile", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, directoryCacheKey)
	}

	// Read-after-write: the caller's state comes from the store, not
	// from an optimistic local merge.
	saved, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "saved but failed to re-read student profile", err)
	}
	return saved, nil
}

func (s *studentService) GenerateResume(ctx context.Context, userID string, form validation.StudentProfileForm) (string, string, error) {
	const op = "StudentService.GenerateResume"

	if userID == "" {
		return "", "", utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if s.generator == nil {
		return "", "", utils.E(utils.CodeUnavailable, op, "resume generation is not configured", nil)
	}

	existing, err := s.students.GetByUserID(ctx, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return "", "", utils.E(utils.CodeNotFound, op, "save your profile before generating a resume", err)
	}
	if err != nil {
		return "", "", utils.E(utils.CodeInternal, op, "failed to load student profile", err)
	}

	prompt := resume.BuildPrompt(resume.Input{
		FullName:         form.FullName,
		Email:            form.Email,
		Phone:            form.Phone,
		Stream:           form.Stream,
		Year:             form.Year,
		AboutYourself:    form.AboutYourself,
		Skills:           listcodec.Split(form.Skills),
		Expertise:        listcodec.Split(form.Expertise),
		Courses:          listcodec.Split(form.Courses),
		PastExperience:   form.PastExperience,
		PreferredJobRole: form.PreferredJobRole,
		Education:        form.PastEducation,
	})

	markdown, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", "", utils.E(utils.CodeUnavailable, op, "resume generation failed", err)
	}

	object := fmt.Sprintf("resumes/%s/%d.md", userID, time.Now().UnixNano())
	url, err := s.uploader.Upload(ctx, object, "text/markdown", strings.NewReader(markdown))
	if err != nil {
		return "", "", utils.E(utils.CodeUnavailable, op, "failed to store generated resume", err)
	}

	existing.ResumeURL = url
	existing.UpdatedAt = time.Now().UTC()
	if err := s.students.Upsert(ctx, existing); err != nil {
		return "", "", utils.E(utils.CodeInternal, op, "failed to record resume url", err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, directoryCacheKey)
	}

	return url, markdown, nil
}

func ext(name string) string {
	return strings.ToLower(path.Ext(name))
}
