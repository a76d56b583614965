package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "bazaar/internal/errors"
	"bazaar/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

func TestAuthHandler_Signup(t *testing.T) {
	userID := uuid.New()

	t.Run("created with token", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Signup", mock.Anything, "al", "al@x.com", "secret1").Return(&model.User{
			ID:       userID,
			Username: "al",
			Email:    "al@x.com",
		}, "signed-token", nil)

		e := newEcho()
		h := NewAuthHandler(mockSvc)
		e.POST("/api/auth/signup", h.Signup)

		body := `{"username":"al","email":"al@x.com","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "signed-token")
		assert.Contains(t, rec.Body.String(), userID.String())
		assert.NotContains(t, rec.Body.String(), "password")
		mockSvc.AssertExpectations(t)
	})

	t.Run("short password rejected before the service runs", func(t *testing.T) {
		mockSvc := new(MockAuthService)

		e := newEcho()
		h := NewAuthHandler(mockSvc)
		e.POST("/api/auth/signup", h.Signup)

		body := `{"username":"al","email":"al@x.com","password":"short"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate signup conflicts", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Signup", mock.Anything, "al", "al@x.com", "secret1").Return(nil, "", apperrors.ErrUserExists)

		e := newEcho()
		h := NewAuthHandler(mockSvc)
		e.POST("/api/auth/signup", h.Signup)

		body := `{"username":"al","email":"al@x.com","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	userID := uuid.New()

	t.Run("wrong password", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "al@x.com", "wrong").Return(nil, "", apperrors.ErrInvalidCredentials)

		e := newEcho()
		h := NewAuthHandler(mockSvc)
		e.POST("/api/auth/login", h.Login)

		body := `{"email":"al@x.com","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("correct password resolves to the same user", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "al@x.com", "secret1").Return(&model.User{
			ID:       userID,
			Username: "al",
			Email:    "al@x.com",
		}, "signed-token", nil)

		e := newEcho()
		h := NewAuthHandler(mockSvc)
		e.POST("/api/auth/login", h.Login)

		body := `{"email":"al@x.com","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), userID.String())
		assert.Contains(t, rec.Body.String(), "signed-token")
	})
}
