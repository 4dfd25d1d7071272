package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vsit/placement-hub/internal/models"
	"github.com/vsit/placement-hub/internal/utils"
	"github.com/vsit/placement-hub/internal/validation"
)

type studentFixture struct {
	svc      StudentService
	students *fakeStudentRepo
	profiles *fakeProfileRepo
	uploader *fakeUploader
	cache    *fakeCache
	gen      *fakeGenerator
}

func newStudentFixture() *studentFixture {
	f := &studentFixture{
		students: newFakeStudentRepo(),
		profiles: newFakeProfileRepo(),
		uploader: &fakeUploader{},
		cache:    newFakeCache(),
		gen:      &fakeGenerator{out: "# Priya Nair\n"},
	}
	f.svc = NewStudentService(f.students, NewRoleService(f.profiles), f.uploader, f.cache, f.gen)
	return f
}

func seededStudent() models.Student {
	blob, _ := models.MarshalEducation([]models.EducationEntry{
		{Institution: "Nalanda High School", Degree: "SSC", Year: "2019"},
	})
	return models.Student{
		ID:              "s1",
		UserID:          "u1",
		FullName:        "Priya Nair",
		Email:           "priya@vsit.edu.in",
		CollegeRollNo:   "2024/CS/117",
		Stream:          "Computer Science",
		Year:            2,
		Skills:          []string{"React", "Node"},
		Expertise:       []string{"Web Development"},
		Courses:         []string{"AWS Cloud Practitioner"},
		PastEducation:   blob,
		ProfileImageURL: "https://cdn.test/profiles/u1/old.png",
		CertificateURLs: []string{"https://cdn.test/certificates/u1/first.pdf"},
		IsActive:        true,
	}
}

func validForm() validation.StudentProfileForm {
	return validation.StudentProfileForm{
		FullName:      "Priya Nair",
		Email:         "priya@vsit.edu.in",
		CollegeRollNo: "2024/CS/117",
		Stream:        "Computer Science",
		Year:          2,
		Skills:        "React, Node",
	}
}

func TestLoadDistinguishesAbsenceFromFailure(t *testing.T) {
	f := newStudentFixture()

	// no row yet: valid first-time state, not an error
	row, err := f.svc.Load(context.Background(), "u1")
	require.NoError(t, err)
	require.Nil(t, row)

	// transport failure is an error
	f.students.getErr = errors.New("connection refused")
	_, err = f.svc.Load(context.Background(), "u1")
	require.Error(t, err)
	require.True(t, utils.IsCode(err, utils.CodeInternal))
}

func TestFormRoundTripPreservesTagSets(t *testing.T) {
	f := newStudentFixture()
	seed := seededStudent()
	f.students.seed(seed)

	form, err := f.svc.ToForm(&seed)
	require.NoError(t, err)
	require.Equal(t, "React, Node", form.Skills)
	require.Equal(t, "Nalanda High School | SSC | 2019", form.PastEducation)

	saved, err := f.svc.Save(context.Background(), "u1", form, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []string(seed.Skills), []string(saved.Skills))
	require.Equal(t, []string(seed.Expertise), []string(saved.Expertise))
	require.Equal(t, []string(seed.Courses), []string(saved.Courses))

	entries, err := models.UnmarshalEducation(saved.PastEducation)
	require.NoError(t, err)
	require.Equal(t, []models.EducationEntry{{Institution: "Nalanda High School", Degree: "SSC", Year: "2019"}}, entries)
}

func TestSaveEnsuresProfileRowFirst(t *testing.T) {
	f := newStudentFixture()

	saved, err := f.svc.Save(context.Background(), "u1", validForm(), nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Equal(t, "u1", saved.UserID)
	require.True(t, saved.IsActive)

	require.Equal(t, 1, f.profiles.count())
	require.Equal(t, models.RoleStudent, f.profiles.rows["u1"].Role)
}

func TestSaveUploadsImageAndUsesPublicURL(t *testing.T) {
	f := newStudentFixture()

	image := &FileUpload{Name: "me.png", ContentType: "image/png", Reader: strings.NewReader("png-bytes")}
	saved, err := f.svc.Save(context.Background(), "u1", validForm(), image, nil)
	require.NoError(t, err)

	require.Equal(t, 1, f.uploader.count())
	obj := f.uploader.objects[0]
	require.True(t, strings.HasPrefix(obj.Name, "profiles/u1/"))
	require.True(t, strings.HasSuffix(obj.Name, ".png"))
	require.Equal(t, "https://cdn.test/"+obj.Name, saved.ProfileImageURL)
}

func TestSaveAbortsWhenImageUploadFails(t *testing.T) {
	f := newStudentFixture()
	f.students.seed(seededStudent())
	f.uploader.failWhen = "profiles/"
	f.uploader.err = errors.New("bucket unavailable")

	image := &FileUpload{Name: "me.png", ContentType: "image/png", Reader: strings.NewReader("png-bytes")}
	_, err := f.svc.Save(context.Background(), "u1", validForm(), image, nil)
	require.Error(t, err)
	require.True(t, utils.IsCode(err, utils.CodeUnavailable))

	// no row write, prior stored image untouched
	require.Equal(t, 0, f.students.upserts)
	require.Equal(t, "https://cdn.test/profiles/u1/old.png", f.students.rows["u1"].ProfileImageURL)
}

func TestSaveAbortsWhenAnyCertificateUploadFails(t *testing.T) {
	f := newStudentFixture()
	f.students.seed(seededStudent())
	f.uploader.failWhen = "certificates/"
	f.uploader.err = errors.New("bucket unavailable")

	certs := []FileUpload{
		{Name: "aws.pdf", ContentType: "application/pdf", Reader: strings.NewReader("pdf")},
		{Name: "gcp.pdf", ContentType: "application/pdf", Reader: strings.NewReader("pdf")},
	}
	_, err := f.svc.Save(context.Background(), "u1", validForm(), nil, certs)
	require.Error(t, err)
	require.True(t, utils.IsCode(err, utils.CodeUnavailable))
	require.Equal(t, 0, f.students.upserts)
	require.Equal(t, []string{"https://cdn.test/certificates/u1/first.pdf"}, []string(f.students.rows["u1"].CertificateURLs))
}

func TestSaveAppendsCertificates(t *testing.T) {
	f := newStudentFixture()
	f.students.seed(seededStudent())

	certs := []FileUpload{
		{Name: "aws.pdf", ContentType: "application/pdf", Reader: strings.NewReader("pdf-a")},
		{Name: "gcp.pdf", ContentType: "application/pdf", Reader: strings.NewReader("pdf-b")},
	}
	saved, err := f.svc.Save(context.Background(), "u1", validForm(), nil, certs)
	require.NoError(t, err)

	require.Len(t, saved.CertificateURLs, 3)
	require.Equal(t, "https://cdn.test/certificates/u1/first.pdf", saved.CertificateURLs[0])
	for _, url := range saved.CertificateURLs[1:] {
		require.Contains(t, url, "certificates/u1/")
	}
}

func TestSaveRejectsMalformedEducationBeforeAnyWrite(t *testing.T) {
	f := newStudentFixture()
	form := validForm()
	form.PastEducation = "too | many | fields | here"

	image := &FileUpload{Name: "me.png", ContentType: "image/png", Reader: strings.NewReader("png")}
	_, err := f.svc.Save(context.Background(), "u1", form, image, nil)
	require.Error(t, err)
	require.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	require.Equal(t, 0, f.uploader.count())
	require.Equal(t, 0, f.students.upserts)
	require.Equal(t, 0, f.profiles.count())
}

func TestSaveInvalidatesDirectoryCache(t *testing.T) {
	f := newStudentFixture()
	require.NoError(t, f.cache.SetJSON(context.Background(), directoryCacheKey, []models.Student{}, 0))

	_, err := f.svc.Save(context.Background(), "u1", validForm(), nil, nil)
	require.NoError(t, err)
	require.Contains(t, f.cache.deleted, directoryCacheKey)
}

func TestGenerateResumeRequiresSavedProfile(t *testing.T) {
	f := newStudentFixture()

	_, _, err := f.svc.GenerateResume(context.Background(), "u1", validForm())
	require.Error(t, err)
	require.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestGenerateResumeStoresAndRecordsResult(t *testing.T) {
	f := newStudentFixture()
	f.students.seed(seededStudent())

	url, markdown, err := f.svc.GenerateResume(context.Background(), "u1", validForm())
	require.NoError(t, err)
	require.Equal(t, "# Priya Nair\n", markdown)
	require.Contains(t, url, "resumes/u1/")

	// derived fields reach the generation request: skills split to a list
	require.Contains(t, f.gen.prompt, "Skills: React, Node")

	require.Equal(t, url, f.students.rows["u1"].ResumeURL)
}

func TestGenerateResumeFailureReportedWithoutRetry(t *testing.T) {
	f := newStudentFixture()
	f.students.seed(seededStudent())
	f.gen.err = errors.New("model quota exceeded")

	_, _, err := f.svc.GenerateResume(context.Background(), "u1", validForm())
	require.Error(t, err)
	require.True(t, utils.IsCode(err, utils.CodeUnavailable))
	require.Equal(t, 0, f.uploader.count())
	require.Empty(t, f.students.rows["u1"].ResumeURL)
}
