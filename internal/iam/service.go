// Package iam implements authentication for system users: bcrypt password
// verification and JWT access tokens. Authorization beyond role claims is
// out of scope; the role travels in the token and enforcement is left to
// the consumer.
package iam

import (
	"github.com/CrissP24/clinica-joya-sub000/internal/store"
	"github.com/CrissP24/clinica-joya-sub000/pkg/config"
	"github.com/CrissP24/clinica-joya-sub000/pkg/logger"
	"github.com/CrissP24/clinica-joya-sub000/pkg/metrics"
	"github.com/CrissP24/clinica-joya-sub000/pkg/types"
)

// Service implements user authentication against the store
type Service struct {
	store     *store.Store
	passwords *PasswordManager
	tokens    *TokenManager
	logger    *logger.Logger
}

// NewService creates a new IAM service
func NewService(st *store.Store, jwtCfg config.JWTConfig, log *logger.Logger) *Service {
	return &Service{
		store:     st,
		passwords: NewPasswordManager(),
		tokens:    NewTokenManager(jwtCfg),
		logger:    log,
	}
}

// Authenticate verifies credentials and issues an access token. Unknown
// emails, wrong passwords and inactive accounts all produce the same
// authentication error so the response does not leak which accounts exist.
func (s *Service) Authenticate(creds *types.Credentials) (*types.SystemUser, *types.AuthToken, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, nil, types.NewValidationError(types.ErrCodeInvalidInput, "email and password are required")
	}

	user, err := s.store.GetUserByEmail(creds.Email)
	if err != nil {
		if types.IsNotFound(err) {
			metrics.RecordAuthAttempt(false)
			return nil, nil, types.NewAuthenticationError(types.ErrCodeAuthFailed, "invalid credentials")
		}
		return nil, nil, err
	}

	if !user.IsActive {
		metrics.RecordAuthAttempt(false)
		s.logger.WithField("user_id", user.ID).Warn("login attempt on inactive account")
		return nil, nil, types.NewAuthenticationError(types.ErrCodeAuthFailed, "invalid credentials")
	}

	ok, err := s.passwords.VerifyPassword(user.PasswordHash, creds.Password)
	if err != nil {
		return nil, nil, types.NewStorageError(types.ErrCodeStorageFailed, "password verification failed", err)
	}
	if !ok {
		metrics.RecordAuthAttempt(false)
		s.logger.WithField("user_id", user.ID).Warn("failed login attempt")
		return nil, nil, types.NewAuthenticationError(types.ErrCodeAuthFailed, "invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, types.NewStorageError(types.ErrCodeStorageFailed, "failed to issue token", err)
	}

	metrics.RecordAuthAttempt(true)
	s.logger.Audit(user.ID, "login", "session", true, map[string]interface{}{"role": user.Role})
	return user, token, nil
}

// VerifyToken validates an access token and returns its claims
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	return s.tokens.Verify(tokenString)
}

// CreateUser hashes the plaintext password and persists the user. This is
// the only path that accepts a plaintext password on user creation.
func (s *Service) CreateUser(user *types.SystemUser, password string) (*types.SystemUser, error) {
	if user.Email == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "email is required")
	}
	if password == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "password is required")
	}

	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		return nil, types.NewStorageError(types.ErrCodeStorageFailed, "failed to hash password", err)
	}

	user.PasswordHash = hash
	return s.store.AddUser(user)
}

// ChangePassword re-hashes and stores a new password for an existing user
func (s *Service) ChangePassword(userID, newPassword string) error {
	if newPassword == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "password is required")
	}

	hash, err := s.passwords.HashPassword(newPassword)
	if err != nil {
		return types.NewStorageError(types.ErrCodeStorageFailed, "failed to hash password", err)
	}

	_, err = s.store.UpdateUser(userID, &types.SystemUserUpdates{PasswordHash: &hash})
	return err
}
