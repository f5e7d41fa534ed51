package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LordKisik/yamdb-final/internal/data/entity"
	"github.com/LordKisik/yamdb-final/internal/data/repository"
	"github.com/LordKisik/yamdb-final/internal/dto/request"
	"github.com/LordKisik/yamdb-final/internal/dto/response"
	"github.com/LordKisik/yamdb-final/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CodeSender delivers confirmation codes out-of-band.
type CodeSender interface {
	SendConfirmationCode(email, username, code string) error
}

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   CodeSender
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail CodeSender,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Signup registers a user by username and email and mails a
// confirmation code. Re-posting the exact same pair is a no-op that
// still succeeds, so the endpoint is safe to retry.
func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Username == "me" {
		return nil, fmt.Errorf("username 'me' is not allowed")
	}

	// Exact pair already registered: succeed without a duplicate.
	existing, err := s.repo.User.FindByUsernameAndEmail(ctx, req.Username, req.Email)
	if err != nil {
		s.log.Error("Failed to check existing signup", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to check registration")
	}
	if existing != nil {
		s.log.Info("Signup repeated for registered user", zap.String("username", req.Username))
		return &response.SignupResponse{Username: existing.Username, Email: existing.Email}, nil
	}

	// Partial collisions are conflicts, not retries.
	byUsername, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to check username")
	}
	if byUsername != nil {
		return nil, fmt.Errorf("username already taken")
	}

	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if byEmail != nil {
		return nil, fmt.Errorf("email already registered")
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: req.Username,
		Email:    req.Email,
		Role:     entity.RoleUser,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to create account")
	}

	if err := s.issueConfirmationCode(ctx, user); err != nil {
		// The account exists; delivery problems should not fail signup.
		s.log.Warn("Failed to issue confirmation code",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.SignupResponse{Username: user.Username, Email: user.Email}, nil
}

// IssueToken exchanges a valid confirmation code for a JWT access token.
func (s *authService) IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for token", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", req.Username)
	}

	code, err := s.repo.Confirmation.FindLatestActive(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to find confirmation code", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to check confirmation code")
	}
	if code == nil {
		return nil, fmt.Errorf("invalid or expired confirmation code")
	}

	if bcrypt.CompareHashAndPassword([]byte(code.CodeHash), []byte(req.ConfirmationCode)) != nil {
		s.log.Warn("Confirmation code mismatch", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid or expired confirmation code")
	}

	token, expiresAt, err := utils.GenerateAccessToken(s.config.JWT, user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to sign access token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to issue token")
	}

	// Consume the code only once the token is signed, so a signing
	// failure does not burn the single-use code.
	if err := s.repo.Confirmation.MarkAsUsed(ctx, code.ID); err != nil {
		s.log.Error("Failed to consume confirmation code", zap.Error(err), zap.String("code_id", code.ID.String()))
		return nil, fmt.Errorf("failed to issue token")
	}

	s.log.Info("Access token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) issueConfirmationCode(ctx context.Context, user *entity.User) error {
	clearCode := utils.GenerateConfirmationCode(s.config.Confirmation.Length)

	hash, err := bcrypt.GenerateFromPassword([]byte(clearCode), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash confirmation code: %w", err)
	}

	code := &entity.ConfirmationCode{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Email:     user.Email,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(time.Duration(s.config.Confirmation.ExpiryMinutes) * time.Minute),
	}

	if err := s.repo.Confirmation.Create(ctx, code); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}

	if err := s.mail.SendConfirmationCode(user.Email, user.Username, clearCode); err != nil {
		return fmt.Errorf("deliver confirmation code: %w", err)
	}

	return nil
}
