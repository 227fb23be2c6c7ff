package insert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/user-manager/internal/models"
	"github.com/magabrotheeeer/user-manager/internal/storage/repository"
)

// MockService реализует интерфейс insert.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.DummyUser) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func validBody() models.DummyUser {
	return models.DummyUser{
		Name:    "Alice",
		Email:   "alice@example.com",
		Age:     30,
		Country: "Canada",
		Role:    "user",
	}
}

func TestInsertHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		dev            bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное создание пользователя",
			requestBody: validBody(),
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, validBody()).
					Return(&models.User{ID: 1, Name: "Alice", Email: "alice@example.com", Age: 30, Country: "Canada", Role: "user", IsActive: true}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"message":"User created successfully"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid request body"`,
		},
		{
			name: "ошибки валидации по всем полям сразу",
			requestBody: models.DummyUser{
				Name:    "",
				Email:   "broken",
				Age:     0,
				Country: "",
				Role:    "superadmin",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"name":"Name is required"`,
		},
		{
			name:        "конфликт по почте",
			requestBody: validBody(),
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, validBody()).
					Return(nil, repository.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"email":"This email is already registered"`,
		},
		{
			name:        "внутренняя ошибка без деталей",
			requestBody: validBody(),
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, validBody()).
					Return(nil, errors.New("db connection lost"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"Something went wrong"`,
		},
		{
			name:        "внутренняя ошибка с деталями в dev-режиме",
			requestBody: validBody(),
			dev:         true,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, validBody()).
					Return(nil, errors.New("db connection lost"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"db connection lost"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, tt.dev)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}

func TestInsertHandler_ValidationCollectsEveryField(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	handler := New(logger, new(MockService), false)

	body, err := json.Marshal(models.DummyUser{Email: "broken", Role: "superadmin"})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	for _, fragment := range []string{
		`"name":"Name is required"`,
		`"email":"Invalid email format"`,
		`"age":"Age must be a number between 1 and 120"`,
		`"country":"Country is required"`,
		`"role":"Invalid role. Must be user, moderator, or admin"`,
	} {
		assert.Contains(t, w.Body.String(), fragment)
	}
}
