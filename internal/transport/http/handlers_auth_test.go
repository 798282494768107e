package httptransport

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	authModels "campus/internal/auth/models"
	"campus/internal/transport/http/mocks"
	dErrors "campus/pkg/domain-errors"
	"campus/pkg/testutil"
)

type AuthHandlerSuite struct {
	suite.Suite
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) newHandler(t *testing.T) (*mocks.MockAuthService, *chi.Mux) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockAuthService(ctrl)
	r := chi.NewRouter()
	NewAuthHandler(mockService, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return mockService, r
}

func (s *AuthHandlerSuite) TestRegister() {
	validRequest := authModels.CredentialRequest{Email: "registrar@campus.edu", Password: "s3cret-pass"}

	s.T().Run("created - 201", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		expected := &authModels.AuthResult{
			Token:     "signed",
			ExpiresAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
			User:      authModels.CurrentUser{ID: "1", Email: validRequest.Email},
		}
		mockService.EXPECT().RegisterCredential(gomock.Any(), validRequest).Return(expected, nil)

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", validRequest))

		testutil.AssertStatus(t, rr, http.StatusCreated)
		got := testutil.UnmarshalResponse[authModels.AuthResult](t, rr)
		assert.Equal(t, expected.Token, got.Token)
		assert.Equal(t, expected.User, got.User)
		assert.True(t, expected.ExpiresAt.Equal(got.ExpiresAt))
	})

	s.T().Run("invalid json - 400", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().RegisterCredential(gomock.Any(), gomock.Any()).Times(0)

		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/auth/register", "{not json"))

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	s.T().Run("unknown field - 400", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().RegisterCredential(gomock.Any(), gomock.Any()).Times(0)

		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/auth/register",
			`{"email":"a@b.com","password":"long-enough","role":"admin"}`))

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	tests := []struct {
		name   string
		err    error
		status int
		code   dErrors.Code
	}{
		{"validation - 400", dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters"), http.StatusBadRequest, dErrors.CodeValidation},
		{"duplicate - 409", dErrors.New(dErrors.CodeConflict, "email already registered"), http.StatusConflict, dErrors.CodeConflict},
		{"unexpected - 500", errors.New("disk on fire"), http.StatusInternalServerError, dErrors.CodeInternal},
	}
	for _, tt := range tests {
		s.T().Run(tt.name, func(t *testing.T) {
			mockService, router := s.newHandler(t)
			mockService.EXPECT().RegisterCredential(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", validRequest))

			testutil.AssertStatusAndError(t, rr, tt.status, string(tt.code))
		})
	}

	s.T().Run("internal errors hide their description", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().RegisterCredential(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk on fire"))

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", validRequest))

		assert.NotContains(t, rr.Body.String(), "disk on fire")
	})
}

func (s *AuthHandlerSuite) TestLogin() {
	req := authModels.CredentialRequest{Email: "registrar@campus.edu", Password: "wrong-pass"}

	s.T().Run("success - 200", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().AuthenticateCredential(gomock.Any(), req).
			Return(&authModels.AuthResult{Token: "t", User: authModels.CurrentUser{ID: "1", Email: req.Email}}, nil)

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", req))

		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.Equal(t, "t", testutil.UnmarshalResponse[authModels.AuthResult](t, rr).Token)
	})

	s.T().Run("bad credentials - 401 with generic message", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().AuthenticateCredential(gomock.Any(), req).
			Return(nil, dErrors.New(dErrors.CodeInvalidCredentials, "invalid email or password"))

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", req))

		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
		body := testutil.UnmarshalErrorResponse(t, rr)
		assert.Equal(t, "invalid_credentials", body["error"])
		assert.Equal(t, "invalid email or password", body["error_description"])
	})

	s.T().Run("empty body - 400", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().AuthenticateCredential(gomock.Any(), gomock.Any()).Times(0)

		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/auth/login", ""))

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})
}
