package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/vsit/placement-hub/internal/models"
	"github.com/vsit/placement-hub/internal/utils"
	"gorm.io/gorm"
)

type fakeProfileRepo struct {
	mu        sync.Mutex
	rows      map[string]*models.Profile // keyed by user_id
	insertErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{rows: map[string]*models.Profile{}}
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Insert(_ context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, exists := r.rows[p.UserID]; exists {
		return gorm.ErrDuplicatedKey
	}
	cp := *p
	r.rows[p.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeStudentRepo struct {
	mu      sync.Mutex
	rows    map[string]*models.Student // keyed by user_id
	order   []string                   // insertion order, newest appended
	getErr  error
	listErr error
	upserts int
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{rows: map[string]*models.Student{}}
}

func (r *fakeStudentRepo) seed(s models.Student) {
	r.rows[s.UserID] = &s
	r.order = append(r.order, s.UserID)
}

func (r *fakeStudentRepo) GetByUserID(_ context.Context, userID string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.rows[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.rows {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeStudentRepo) Upsert(_ context.Context, s *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if _, exists := r.rows[s.UserID]; !exists {
		r.order = append(r.order, s.UserID)
	}
	cp := *s
	r.rows[s.UserID] = &cp
	return nil
}

func (r *fakeStudentRepo) ListActive(_ context.Context) ([]models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	// newest first, matching the created_at DESC query
	out := make([]models.Student, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		s := r.rows[r.order[i]]
		if s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

type uploadedObject struct {
	Name        string
	ContentType string
	Body        string
}

type fakeUploader struct {
	mu      sync.Mutex
	objects []uploadedObject
	// failWhen makes Upload fail for object names containing the value
	failWhen string
	err      error
}

func (u *fakeUploader) Upload(_ context.Context, objectName, contentType string, r io.Reader) (string, error) {
	if u.failWhen != "" && strings.Contains(objectName, u.failWhen) {
		return "", u.err
	}
	b, _ := io.ReadAll(r)
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects = append(u.objects, uploadedObject{Name: objectName, ContentType: contentType, Body: string(b)})
	return "https://cdn.test/" + objectName, nil
}

func (u *fakeUploader) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.objects)
}

type fakeCache struct {
	mu      sync.Mutex
	store   map[string]any
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]any{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if records, ok := v.([]models.Student); ok {
		if p, ok := dst.(*[]models.Student); ok {
			*p = records
			return true, nil
		}
	}
	return false, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = val
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.store, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

type fakeGenerator struct {
	prompt string
	out    string
	err    error
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.out, nil
}

func (g *fakeGenerator) Close() error { return nil }
