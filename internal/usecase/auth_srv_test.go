package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LordKisik/yamdb-final/internal/data/entity"
	"github.com/LordKisik/yamdb-final/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (AuthService, *fakeSender, *fakeUserRepo, *fakeConfirmationRepo) {
	t.Helper()
	repo := newTestRepo()
	mail := &fakeSender{}
	svc := NewAuthService(repo, testConfig(), mail, zap.NewNop())
	return svc, mail, repo.User.(*fakeUserRepo), repo.Confirmation.(*fakeConfirmationRepo)
}

func TestSignupCreatesUserAndSendsCode(t *testing.T) {
	svc, mail, users, codes := newAuthService(t)

	resp, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "reader", resp.Username)
	assert.Equal(t, "reader@example.com", resp.Email)

	require.Len(t, users.users, 1)
	assert.Equal(t, entity.RoleUser, users.users[0].Role)

	require.Len(t, codes.codes, 1)
	require.Equal(t, 1, mail.sent)
	assert.Equal(t, "reader@example.com", mail.lastTo)
	assert.Len(t, mail.lastCode, 6)

	// Only the hash is persisted.
	assert.NotEqual(t, mail.lastCode, codes.codes[0].CodeHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(codes.codes[0].CodeHash), []byte(mail.lastCode)))
}

func TestSignupRepeatedPairIsIdempotent(t *testing.T) {
	svc, mail, users, codes := newAuthService(t)

	req := &request.SignupRequest{Username: "reader", Email: "reader@example.com"}

	_, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	resp, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "reader", resp.Username)
	assert.Len(t, users.users, 1)
	// The repeat does not mint a second code.
	assert.Len(t, codes.codes, 1)
	assert.Equal(t, 1, mail.sent)
}

func TestSignupPartialCollisions(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "other@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username already taken")

	_, err = svc.Signup(context.Background(), &request.SignupRequest{
		Username: "other",
		Email:    "reader@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestSignupRejectsReservedUsername(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "me",
		Email:    "me@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestIssueTokenHappyPath(t *testing.T) {
	svc, mail, _, codes := newAuthService(t)

	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)

	resp, err := svc.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: mail.lastCode,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
	assert.True(t, codes.codes[0].IsUsed)
}

func TestIssueTokenCodeIsSingleUse(t *testing.T) {
	svc, mail, _, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)

	req := &request.TokenRequest{Username: "reader", ConfirmationCode: mail.lastCode}

	_, err = svc.IssueToken(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.IssueToken(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired")
}

func TestIssueTokenKeepsCodeOnConsumeFailure(t *testing.T) {
	svc, mail, _, codes := newAuthService(t)

	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)

	req := &request.TokenRequest{Username: "reader", ConfirmationCode: mail.lastCode}

	codes.markErr = errors.New("connection reset")
	_, err = svc.IssueToken(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to issue token")
	// The failed attempt must not burn the single-use code.
	assert.False(t, codes.codes[0].IsUsed)

	codes.markErr = nil
	resp, err := svc.IssueToken(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, codes.codes[0].IsUsed)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, err := svc.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "123456",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestIssueTokenWrongCode(t *testing.T) {
	svc, mail, _, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)

	wrong := "000000"
	if mail.lastCode == wrong {
		wrong = "111111"
	}

	_, err = svc.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: wrong,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired")
}

func TestIssueTokenExpiredCode(t *testing.T) {
	repo := newTestRepo()
	mail := &fakeSender{}
	svc := NewAuthService(repo, testConfig(), mail, zap.NewNop())

	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)

	// Mark the stored code used, as the database expiry filter would
	// hide a stale row.
	codes := repo.Confirmation.(*fakeConfirmationRepo)
	codes.codes[0].IsUsed = true

	_, err = svc.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: mail.lastCode,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired")
}

func seedUser(t *testing.T, users *fakeUserRepo, username string, role entity.UserRole) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}
