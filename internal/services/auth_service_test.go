package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/vsit/placement-hub/internal/models"
	"github.com/vsit/placement-hub/internal/utils"
	"github.com/vsit/placement-hub/internal/validation"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	mu   sync.Mutex
	rows map[string]*models.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: map[string]*models.User{}}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[email]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Insert(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rows[u.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	cp := *u
	r.rows[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) TouchLastSignIn(_ context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.ID == userID {
			t := at
			u.LastSignInAt = &t
		}
	}
	return nil
}

func signupReq() validation.SignupRequest {
	return validation.SignupRequest{
		Email:           "meera@vsit.edu.in",
		Password:        "secret12",
		ConfirmPassword: "secret12",
		FullName:        "Meera Joshi",
		RollNo:          "2023/IT/055",
		Role:            "faculty",
	}
}

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *fakeProfileRepo) {
	t.Setenv("JWT_SECRET", "test-secret")
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	return NewAuthService(users, profiles, NewRoleService(profiles)), users, profiles
}

func TestSignUpCreatesUserAndProfileWithRequestedRole(t *testing.T) {
	svc, users, profiles := newAuthFixture(t)

	user, err := svc.SignUp(context.Background(), signupReq())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, user.PasswordHash)
	require.Len(t, users.rows, 1)

	require.Equal(t, models.RoleFaculty, profiles.rows[user.ID].Role)
}

func TestSignUpDuplicateEmailIsConflict(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.SignUp(context.Background(), signupReq())
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), signupReq())
	require.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestLoginIssuesTokenWithProfileRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	user, err := svc.SignUp(context.Background(), signupReq())
	require.NoError(t, err)

	token, loggedIn, err := svc.Login(context.Background(), validation.LoginRequest{
		Email:    "meera@vsit.edu.in",
		Password: "secret12",
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.NotNil(t, loggedIn.LastSignInAt)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, user.ID, claims["sub"])
	meta := claims["app_metadata"].(map[string]any)
	require.Equal(t, "faculty", meta["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.SignUp(context.Background(), signupReq())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), validation.LoginRequest{Email: "meera@vsit.edu.in", Password: "wrong-pass"})
	require.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, _, err = svc.Login(context.Background(), validation.LoginRequest{Email: "nobody@vsit.edu.in", Password: "secret12"})
	require.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}
