package adaptor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LordKisik/yamdb-final/internal/dto/request"
	"github.com/LordKisik/yamdb-final/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAuthService struct {
	signupErr error
	tokenErr  error
}

func (s *stubAuthService) Signup(_ context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &response.SignupResponse{Username: req.Username, Email: req.Email}, nil
}

func (s *stubAuthService) IssueToken(_ context.Context, _ *request.TokenRequest) (*response.TokenResponse, error) {
	if s.tokenErr != nil {
		return nil, s.tokenErr
	}
	return &response.TokenResponse{Token: "signed", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSignupStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{
			name: "success answers 200 even for a fresh account",
			body: `{"username":"reader","email":"reader@example.com"}`,
			want: http.StatusOK,
		},
		{
			name: "invalid json",
			body: `{`,
			want: http.StatusBadRequest,
		},
		{
			name: "missing email",
			body: `{"username":"reader"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "reserved username",
			body: `{"username":"mee","email":"me@example.com"}`,
			err:  fmt.Errorf("username 'me' is not allowed"),
			want: http.StatusBadRequest,
		},
		{
			name: "username collision",
			body: `{"username":"reader","email":"new@example.com"}`,
			err:  fmt.Errorf("username already taken"),
			want: http.StatusBadRequest,
		},
		{
			name: "backend failure",
			body: `{"username":"reader","email":"reader@example.com"}`,
			err:  fmt.Errorf("failed to create account"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&stubAuthService{signupErr: tt.err}, zap.NewNop())
			rec := postJSON(t, handler.Signup, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestTokenStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{
			name: "success",
			body: `{"username":"reader","confirmation_code":"123456"}`,
			want: http.StatusOK,
		},
		{
			name: "missing code",
			body: `{"username":"reader"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown user answers 404",
			body: `{"username":"ghost","confirmation_code":"123456"}`,
			err:  fmt.Errorf("user ghost not found"),
			want: http.StatusNotFound,
		},
		{
			name: "bad code answers 400",
			body: `{"username":"reader","confirmation_code":"000000"}`,
			err:  fmt.Errorf("invalid or expired confirmation code"),
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&stubAuthService{tokenErr: tt.err}, zap.NewNop())
			rec := postJSON(t, handler.Token, tt.body)
			assert.Equal(t, tt.want, rec.Code)

			if tt.want == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "signed")
			}
		})
	}
}
