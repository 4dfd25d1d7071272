package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vsit/placement-hub/internal/services"
	"github.com/vsit/placement-hub/internal/utils"
	"github.com/vsit/placement-hub/internal/validation"
)

type ProfileHandler struct {
	svc services.StudentService
}

func NewProfileHandler(svc services.StudentService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Me returns the caller's student profile in its editable form. A
// first-time user gets 204 so the client renders an empty form.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	row, err := h.svc.Load(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	if row == nil {
		c.Status(http.StatusNoContent)
		return
	}

	form, err := h.svc.ToForm(row)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": row, "form": form})
}

// Save accepts the profile form as multipart: text fields plus an
// optional "profile_image" part and any number of "certificates"
// parts.
func (h *ProfileHandler) Save(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	form, ok := bindProfileForm(c)
	if !ok {
		return
	}

	image, ok := openProfileImage(c)
	if !ok {
		return
	}
	if image != nil {
		defer image.close()
	}

	certs, ok := openCertificates(c)
	if !ok {
		return
	}
	for _, f := range certs {
		defer f.close()
	}

	var imageUpload *services.FileUpload
	if image != nil {
		imageUpload = &image.FileUpload
	}
	certUploads := make([]services.FileUpload, len(certs))
	for i, f := range certs {
		certUploads[i] = f.FileUpload
	}

	saved, err := h.svc.Save(c.Request.Context(), userID, form, imageUpload, certUploads)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (h *ProfileHandler) GenerateResume(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var form validation.StudentProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.GenerateResume", "invalid request body", err))
		return
	}

	url, markdown, err := h.svc.GenerateResume(c.Request.Context(), userID, form)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resume_url": url, "content": markdown})
}

func bindProfileForm(c *gin.Context) (validation.StudentProfileForm, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(c.PostForm("year")))
	if err != nil {
		writeViolations(c, []validation.FieldViolation{{Field: "year", Message: "must be a number between 1 and 4"}})
		return validation.StudentProfileForm{}, false
	}

	form := validation.StudentProfileForm{
		FullName:         c.PostForm("full_name"),
		AboutYourself:    c.PostForm("about_yourself"),
		Email:            c.PostForm("email"),
		Phone:            c.PostForm("phone"),
		CollegeRollNo:    c.PostForm("college_roll_no"),
		Stream:           c.PostForm("stream"),
		Year:             year,
		Skills:           c.PostForm("skills"),
		Expertise:        c.PostForm("expertise"),
		PastExperience:   c.PostForm("past_experience"),
		PreferredJobRole: c.PostForm("preferred_job_role"),
		PastEducation:    c.PostForm("past_education"),
		Courses:          c.PostForm("courses"),
	}

	if violations := validation.Check(form); len(violations) > 0 {
		writeViolations(c, violations)
		return validation.StudentProfileForm{}, false
	}
	return form, true
}

type openedFile struct {
	services.FileUpload
	close func() error
}

func openProfileImage(c *gin.Context) (*openedFile, bool) {
	const op = "ProfileHandler.Save"

	fh, err := c.FormFile("profile_image")
	if err != nil {
		return nil, true // image is optional
	}

	f, ok := sniffOpen(c, op, fh, func(ct string) bool {
		return strings.HasPrefix(ct, "image/")
	}, "profile image must be an image file")
	return f, ok
}

func openCertificates(c *gin.Context) ([]*openedFile, bool) {
	const op = "ProfileHandler.Save"

	mf, err := c.MultipartForm()
	if err != nil || mf == nil {
		return nil, true
	}

	allowed := func(ct string) bool {
		return ct == "application/pdf" || ct == "image/jpeg" || ct == "image/png"
	}

	var out []*openedFile
	for _, fh := range mf.File["certificates"] {
		f, ok := sniffOpen(c, op, fh, allowed, "certificates must be pdf, jpg, or png")
		if !ok {
			for _, opened := range out {
				_ = opened.close()
			}
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

// sniffOpen opens an upload and checks its real content type from the
// first 512 bytes, not the client-supplied header.
func sniffOpen(c *gin.Context, op string, fh *multipart.FileHeader, allowed func(string) bool, denyMsg string) (*openedFile, bool) {
	if fh.Size <= 0 || fh.Size > 10<<20 {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil))
		return nil, false
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return nil, false
	}

	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	ct := http.DetectContentType(head)
	if !allowed(ct) {
		_ = file.Close()
		writeError(c, utils.E(utils.CodeInvalidArgument, op, denyMsg, nil))
		return nil, false
	}

	// re-compose stream: head + remaining file
	return &openedFile{
		FileUpload: services.FileUpload{
			Name:        fh.Filename,
			ContentType: ct,
			Reader:      &readJoin{a: bytes.NewReader(head), b: file},
		},
		close: file.Close,
	}, true
}

type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
