package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vsit/placement-hub/internal/models"
	pgrepo "github.com/vsit/placement-hub/internal/repositories/postgres"
	"github.com/vsit/placement-hub/internal/utils"
	"github.com/vsit/placement-hub/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuthService interface {
	// SignUp creates the auth user and its profile row with the
	// requested role (student or faculty; admin is assigned out of
	// band).
	SignUp(ctx context.Context, req validation.SignupRequest) (*models.User, error)

	// Login verifies credentials and issues an HS256 token whose
	// subject is the user id and whose app_metadata carries the role.
	Login(ctx context.Context, req validation.LoginRequest) (token string, user *models.User, err error)
}

type authService struct {
	users    pgrepo.UserRepository
	profiles pgrepo.ProfileRepository
	roles    RoleService

	secret   string
	issuer   string
	audience string
	tokenTTL time.Duration
}

func NewAuthService(users pgrepo.UserRepository, profiles pgrepo.ProfileRepository, roles RoleService) AuthService {
	return &authService{
		users:    users,
		profiles: profiles,
		roles:    roles,
		secret:   os.Getenv("JWT_SECRET"),
		issuer:   os.Getenv("JWT_ISSUER"),
		audience: os.Getenv("JWT_AUDIENCE"),
		tokenTTL: 24 * time.Hour,
	}
}

func (s *authService) SignUp(ctx context.Context, req validation.SignupRequest) (*models.User, error) {
	const op = "AuthService.SignUp"

	if violations := validation.Check(req); len(violations) > 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, violations[0].Field+": "+violations[0].Message, nil)
	}
	role, _ := models.ParseRole(req.Role)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	meta, _ := json.Marshal(map[string]string{
		"full_name": req.FullName,
		"roll_no":   req.RollNo,
		"role":      role.String(),
	})

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		UserMetadata: datatypes.JSON(meta),
		CreatedAt:    now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.E(utils.CodeConflict, op, "an account with this email already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create account", err)
	}

	profileErr := s.profiles.Insert(ctx, &models.Profile{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if profileErr != nil && !errors.Is(profileErr, gorm.ErrDuplicatedKey) {
		// the user exists without a profile; the role resolver will
		// lazily create a student profile on first visit
		return nil, utils.E(utils.CodeInternal, op, "account created but profile setup failed", profileErr)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req validation.LoginRequest) (string, *models.User, error) {
	const op = "AuthService.Login"

	if violations := validation.Check(req); len(violations) > 0 {
		return "", nil, utils.E(utils.CodeInvalidArgument, op, violations[0].Field+": "+violations[0].Message, nil)
	}
	if s.secret == "" {
		return "", nil, utils.E(utils.CodeInternal, op, "JWT_SECRET is not set", nil)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, utils.ErrNotFound) {
		return "", nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
	}
	if err != nil {
		return "", nil, utils.E(utils.CodeInternal, op, "failed to look up account", err)
	}
	if err := utils.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return "", nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
	}

	role, err := s.roles.Resolve(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":          user.ID,
		"role":         "authenticated",
		"app_metadata": map[string]any{"role": role.String()},
		"iat":          now.Unix(),
		"exp":          now.Add(s.tokenTTL).Unix(),
	}
	if s.issuer != "" {
		claims["iss"] = s.issuer
	}
	if s.audience != "" {
		claims["aud"] = s.audience
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", nil, utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}

	_ = s.users.TouchLastSignIn(ctx, user.ID, now)
	user.LastSignInAt = &now
	return token, user, nil
}
