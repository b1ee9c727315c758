package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "gostitut/infras/otel/mocks"
	adminMocks "gostitut/internal/domains/admin/mocks"
	"gostitut/internal/domains/admin/model"
	"gostitut/internal/domains/admin/model/dto"
	"gostitut/internal/domains/admin/service"
	"gostitut/shared/credential"
	"gostitut/shared/failure"
)

func TestAdminService_Verify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := adminMocks.NewMockAdmin(ctrl)

	svc := service.New(mockRepo, otelMocks.NewOtel())

	stored := model.Admin{
		ID:           "admin-id",
		Username:     "admin",
		PasswordHash: credential.Hash("admin"),
		FirstName:    "System",
		LastName:     "Administrator",
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "valid credentials",
			req:  dto.LoginRequest{Username: "admin", Password: "admin"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByUsername(gomock.Any(), "admin").
					Return(stored, nil)
			},
			wantErr: false,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "admin", Password: "nope"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByUsername(gomock.Any(), "admin").
					Return(stored, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "ghost", Password: "admin"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByUsername(gomock.Any(), "ghost").
					Return(model.Admin{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Username: "admin", Password: "admin"},
			setupMock: func() {
				mockRepo.EXPECT().
					GetByUsername(gomock.Any(), "admin").
					Return(model.Admin{}, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Verify(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "admin-id", res.ID)
			}
		})
	}
}
