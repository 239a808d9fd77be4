package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth failures
var (
	ErrNoSession    = errors.New("no valid session")
	ErrNotAdminUser = errors.New("identity has no admin access")
)

const sessionTTL = 24 * time.Hour

// AuthService resolves admin identities. Credential verification itself is
// delegated to the external identity platform; a row in admin_users is what
// grants console access.
type AuthService struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store *store.Store, redis *redisclient.Client) *AuthService {
	return &AuthService{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// Login exchanges a platform-verified email for a session token. Fails when
// the identity has no admin_users row.
func (s *AuthService) Login(ctx context.Context, email string) (string, *models.AdminUser, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.store.GetAdminUserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up admin user: %w", err)
	}
	if user == nil {
		return "", nil, ErrNotAdminUser
	}

	token := uuid.New().String()
	if err := s.redis.CreateSession(ctx, token, user.ID, sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Admin session created",
		zap.Int64("admin_user_id", user.ID),
		zap.String("role", user.Role))
	return token, user, nil
}

// ResolveSession maps a bearer token to its admin user. The result is
// carried in the request context by the auth middleware; nothing ambient.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.AdminUser, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	userID, found, err := s.redis.GetSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	if !found {
		return nil, ErrNoSession
	}

	user, err := s.store.GetAdminUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin user: %w", err)
	}
	if user == nil {
		return nil, ErrNotAdminUser
	}
	return user, nil
}

// Logout revokes a session token
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.redis.DeleteSession(ctx, token)
}

// CreateAdminUser adds a console user (super_admin only, enforced at the
// API boundary)
func (s *AuthService) CreateAdminUser(ctx context.Context, user *models.AdminUser) error {
	if !models.ValidRole(user.Role) {
		return fmt.Errorf("invalid role: %s", user.Role)
	}
	return s.store.CreateAdminUser(ctx, user)
}

// ListAdminUsers lists console users
func (s *AuthService) ListAdminUsers(ctx context.Context) ([]models.AdminUser, error) {
	return s.store.ListAdminUsers(ctx)
}

// DeleteAdminUser removes a console user
func (s *AuthService) DeleteAdminUser(ctx context.Context, id int64) error {
	return s.store.DeleteAdminUser(ctx, id)
}
