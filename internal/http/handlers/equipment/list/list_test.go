package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, f models.EquipmentFilter) ([]*models.Equipment, int, error) {
	args := m.Called(ctx, f)
	if res := args.Get(0); res != nil {
		return res.([]*models.Equipment), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "список без параметров",
			url:  "/equipment",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.EquipmentFilter{}).
					Return([]*models.Equipment{{ID: "1", Name: "Pump"}}, 1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Pump"`,
		},
		{
			name: "фильтр и пагинация",
			url:  "/equipment?status=maintenance&q=+pump+&limit=5&offset=10",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.EquipmentFilter{
					Status: models.StatusMaintenance, Query: "pump", Limit: 5, Offset: 10,
				}).Return([]*models.Equipment{}, 12, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":12`,
		},
		{
			name: "status=all и некорректный limit",
			url:  "/equipment?status=all&limit=-3&offset=abc",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.EquipmentFilter{}).Return([]*models.Equipment{}, 0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":0`,
		},
		{
			name:           "неизвестный статус",
			url:            "/equipment?status=broken",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid status"}`,
		},
		{
			name: "ошибка сервиса",
			url:  "/equipment",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, mock.Anything).Return(nil, 0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to list"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
