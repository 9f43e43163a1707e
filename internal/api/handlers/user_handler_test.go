package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"api_ledger/internal/custom_err"
	"api_ledger/internal/models"
	"api_ledger/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var _ service.UserServicer = (*mockUserService)(nil)

type mockUserService struct {
	OnboardUserFunc func(ctx context.Context, req models.OnboardUserRequest) (*models.User, error)
}

func (m *mockUserService) OnboardUser(ctx context.Context, req models.OnboardUserRequest) (*models.User, error) {
	if m.OnboardUserFunc != nil {
		return m.OnboardUserFunc(ctx, req)
	}
	return nil, nil
}

func TestUserHandler_Onboard(t *testing.T) {
	mockService := &mockUserService{}
	handler := NewUserHandler(mockService)

	testCases := []struct {
		name           string
		inputBody      string
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			inputBody:      `{"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com"}`,
			mockError:      nil,
			expectedStatus: http.StatusCreated,
			expectedBody:   `"email":"ada@example.com"`,
		},
		{
			name:           "Error - Blacklisted",
			inputBody:      `{"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com"}`,
			mockError:      custom_err.ErrBlacklisted,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"blacklisted","message":"User is blacklisted"}`,
		},
		{
			name:           "Error - Duplicate Email",
			inputBody:      `{"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com"}`,
			mockError:      custom_err.ErrUserExists,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"user_exists","message":"User with this email already exists"}`,
		},
		{
			name:           "Error - Missing Field",
			inputBody:      `{"last_name": "Lovelace", "email": "ada@example.com"}`,
			mockError:      custom_err.NewValidationError("first_name is required"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid_field","message":"first_name is required"}`,
		},
		{
			name:           "Error - Invalid JSON",
			inputBody:      `{`,
			mockError:      nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid_json","message":"Invalid JSON body"}`,
		},
		{
			name:           "Error - Internal Server Error",
			inputBody:      `{"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com"}`,
			mockError:      errors.New("database unavailable"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal_error","message":"An internal error occurred"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService.OnboardUserFunc = func(ctx context.Context, req models.OnboardUserRequest) (*models.User, error) {
				if tc.mockError != nil {
					return nil, tc.mockError
				}
				return &models.User{ID: uuid.New(), FirstName: req.FirstName, LastName: req.LastName, Email: req.Email}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(tc.inputBody))
			rr := httptest.NewRecorder()

			handler.Onboard(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}
