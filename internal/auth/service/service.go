// Package service implements the credential gate: registration, login, and
// bearer token verification.
//
// Registration and login are split into phases so the resolver can run
// bcrypt and JWT signing outside its lock while keeping credential lookup and
// insertion inside it:
//
//	register: Prepare (hash) -> Save (lock) -> IssueToken
//	login:    Lookup (lock) -> CheckPassword -> IssueToken
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"campus/internal/auth/models"
	"campus/internal/ids"
	jwttoken "campus/internal/jwt_token"
	"campus/internal/platform/metrics"
	dErrors "campus/pkg/domain-errors"
	"campus/pkg/platform/sentinel"
	"campus/pkg/secrets"
)

const invalidCredentials = "invalid email or password"

type UserStore interface {
	CreateIfEmailAvailable(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) int
	Reset()
}

// TokenIssuer signs and validates bearer tokens.
type TokenIssuer interface {
	GenerateToken(userID, email string) (string, time.Time, error)
	ValidateToken(token string) (*jwttoken.Claims, error)
}

type Service struct {
	users   UserStore
	ids     *ids.Allocator
	tokens  TokenIssuer
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(users UserStore, allocator *ids.Allocator, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		users:  users,
		ids:    allocator,
		tokens: tokens,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	allocator.Seed(ids.KindCredential, users.Count(context.Background()))
	return s
}

// Prepare validates a registration request and hashes the password. The
// returned user has no ID yet. It touches no state.
func (s *Service) Prepare(req models.CredentialRequest) (*models.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	hash, err := secrets.Hash(req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	return &models.User{
		Email:        req.Email,
		PasswordHash: hash,
	}, nil
}

// EmailTaken reports whether a credential already uses the email. It lets
// callers fail fast before paying for a hash.
func (s *Service) EmailTaken(ctx context.Context, email string) bool {
	_, err := s.users.FindByEmail(ctx, email)
	return err == nil
}

// Save assigns an ID and inserts a prepared user. The email uniqueness check
// and the insert happen together.
func (s *Service) Save(ctx context.Context, user *models.User) error {
	if s.EmailTaken(ctx, user.Email) {
		return dErrors.New(dErrors.CodeConflict, "email already registered")
	}
	user.ID = s.ids.Next(ids.KindCredential)
	user.CreatedAt = s.now()
	if err := s.users.CreateIfEmailAvailable(ctx, *user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save credential")
	}
	s.logger.InfoContext(ctx, "credential registered", "user_id", user.ID)
	if s.metrics != nil {
		s.metrics.IncrementCredentialsRegistered()
	}
	return nil
}

// Lookup returns the credential for the email, or nil when there is none.
func (s *Service) Lookup(ctx context.Context, email string) *models.User {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}
	return user
}

// CheckPassword compares the password with the user's hash. A nil user still
// costs one bcrypt comparison, and every failure carries the same message.
func (s *Service) CheckPassword(ctx context.Context, user *models.User, password string) error {
	if user == nil {
		secrets.VerifyDummy(password)
		return s.authFailure(ctx, "unknown email")
	}
	if err := secrets.Verify(password, user.PasswordHash); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeInvalidCredentials) {
			s.logger.ErrorContext(ctx, "password verification failed", "error", err)
		}
		return s.authFailure(ctx, "wrong password")
	}
	return nil
}

func (s *Service) authFailure(ctx context.Context, reason string) error {
	s.logger.WarnContext(ctx, "authentication failed", "reason", reason)
	if s.metrics != nil {
		s.metrics.IncrementAuthFailures()
	}
	return dErrors.New(dErrors.CodeInvalidCredentials, invalidCredentials)
}

// IssueToken signs a bearer token for the user.
func (s *Service) IssueToken(user *models.User) (*models.AuthResult, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return &models.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.CurrentUser{ID: user.ID, Email: user.Email},
	}, nil
}

// Verify returns the identity carried by a valid token. Malformed, expired,
// or foreign tokens yield nil.
func (s *Service) Verify(ctx context.Context, token string) *models.CurrentUser {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		s.logger.DebugContext(ctx, "token rejected", "error", err)
		return nil
	}
	return &models.CurrentUser{ID: claims.UserID, Email: claims.Email}
}

// Reset removes every credential.
func (s *Service) Reset() {
	s.users.Reset()
}
